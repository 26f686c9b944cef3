package reliability

import (
	"math"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/linker"
	"github.com/banshee-data/sofind/internal/workerpool"
)

// Params configures Run (spec.md §4.7 and §6's reliability.* keys).
type Params struct {
	ScaleKernel float64
	Threshold   float64
	FMin        float64
	Pool        *workerpool.Pool
}

// Run computes a reliability score for every positive object in
// objects, then emits a densely renumbered label map containing only
// positive objects with R >= Params.Threshold (spec.md §4.7 "filter
// construction"). objects is mutated in place: every positive object
// above the fmin gate has its Rel field set to its score; objects below
// the fmin gate keep the default Rel of 0. Objects scoring below the
// threshold keep their computed Rel and are absent from the returned
// label map, as are all negative objects.
//
// The double loop over positive objects runs concurrently via
// internal/workerpool (spec.md §5's "reliability double loop" parallel
// region); each worker computes its own feature-vector comparisons
// independently, writing only to its own object's Rel field.
func Run(objects []*linker.ObjectParams, p Params) (map[int32]int32, error) {
	var negatives []Feature
	var positives []*linker.ObjectParams
	posFeatures := make(map[int32]Feature)

	for _, o := range objects {
		f, ok := BuildFeature(o)
		if !ok {
			continue
		}
		if o.FSum < 0 {
			negatives = append(negatives, f)
		} else {
			positives = append(positives, o)
			posFeatures[o.Label] = f
		}
	}

	kernel, err := FitKernel(negatives, p.ScaleKernel)
	if err != nil {
		return nil, err
	}

	fminGate := 2 * math.Log(p.FMin)

	pool := p.Pool
	if pool == nil {
		pool = workerpool.New(0)
	}

	var progress workerpool.Progress
	pool.Parallel(len(positives), func(i int) {
		defer progress.Add(1)
		o := positives[i]
		v := posFeatures[o.Label]
		gate := math.Log(o.FSum) + math.Log(o.FSum/float64(o.NPix))
		if gate <= fminGate {
			return
		}

		var pSum, nSum float64
		for _, other := range positives {
			ov, ok := posFeatures[other.Label]
			if !ok {
				continue
			}
			pSum += kernel.densityTerm(v, ov)
		}
		for _, nv := range negatives {
			nSum += kernel.densityTerm(v, nv)
		}

		if pSum <= 0 {
			o.Rel = 0
			return
		}
		r := (pSum - nSum) / pSum
		if r < 0 {
			r = 0
		}
		o.Rel = r
	})

	labelMap := make(map[int32]int32)
	var next int32 = 1
	for _, o := range objects {
		if o.FSum > 0 && o.Rel >= p.Threshold {
			labelMap[o.Label] = next
			next++
		}
	}
	return labelMap, nil
}

// ApplyFilter relabels the 32-bit label mask densely using labelMap
// (spec.md §4.7 "Apply that label map to the 32-bit mask cube via the
// Cube container's filter_mask_32").
func ApplyFilter(labels *cube.MaskCube[int32], labelMap map[int32]int32) {
	cube.FilterMask32(labels, labelMap)
}
