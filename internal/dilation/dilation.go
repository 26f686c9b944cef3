// Package dilation implements spec.md §4.8's iterative mask growth: each
// object's mask is grown first along z, then in the (x, y) plane,
// committing a pass only while the newly added flux shell exceeds a
// fractional threshold of the object's current total.
package dilation

import (
	"math"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/linker"
)

// Params configures Run (spec.md §4.8 and §6's dilation.* keys).
type Params struct {
	IterationsZ  int
	IterationsXY int
	Threshold    float64 // fractional threshold tau in (0, 1)
}

// Run grows every object in objects into the unlabelled voxels of
// labels, in place, subject to Params. data supplies flux values for
// the shell-flux test and for updating each object's statistics after
// a committed pass. Two objects dilating into the same voxel in the
// same pass are resolved deterministically in favour of the
// numerically smaller label (spec.md §4.8), since passes walk objects
// in ascending label order and a voxel claimed by an earlier object is
// no longer a candidate for a later one.
func Run(data *cube.DataCube, labels *cube.MaskCube[int32], objects []*linker.ObjectParams, p Params) {
	byLabel := make(map[int32]*linker.ObjectParams, len(objects))
	for _, o := range objects {
		byLabel[o.Label] = o
	}

	for iter := 0; iter < p.IterationsZ; iter++ {
		if !dilatePass(data, labels, byLabel, zOffsets, p.Threshold) {
			break
		}
	}
	for iter := 0; iter < p.IterationsXY; iter++ {
		if !dilatePass(data, labels, byLabel, xyOffsets, p.Threshold) {
			break
		}
	}
}

type offset struct{ dx, dy, dz int }

var zOffsets = []offset{{0, 0, -1}, {0, 0, 1}}

var xyOffsets = []offset{
	{-1, -1, 0}, {0, -1, 0}, {1, -1, 0},
	{-1, 0, 0}, {1, 0, 0},
	{-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
}

// dilatePass performs one growth pass over every object in ascending
// label order, returning true if at least one object committed growth.
func dilatePass(data *cube.DataCube, labels *cube.MaskCube[int32], byLabel map[int32]*linker.ObjectParams, offsets []offset, threshold float64) bool {
	anyCommitted := false

	for _, label := range sortedLabels(byLabel) {
		o := byLabel[label]
		candidates := growthCandidates(data, labels, o, offsets)
		if len(candidates) == 0 {
			continue
		}

		var deltaFlux float64
		for _, c := range candidates {
			deltaFlux += c.flux
		}
		if o.FSum == 0 || math.Abs(deltaFlux) <= threshold*math.Abs(o.FSum) {
			continue
		}

		for _, c := range candidates {
			labels.Set(c.x, c.y, c.z, label)
			o.Accumulate(c.x, c.y, c.z, c.flux, false)
		}
		anyCommitted = true
	}

	return anyCommitted
}

type voxel struct {
	x, y, z int
	flux    float64
}

// growthCandidates enumerates, for every voxel currently labelled as
// o, every unlabelled finite neighbour along offsets, de-duplicated,
// without committing anything.
func growthCandidates(data *cube.DataCube, labels *cube.MaskCube[int32], o *linker.ObjectParams, offsets []offset) []voxel {
	var out []voxel
	seen := make(map[[3]int]bool)

	for z := o.ZMin; z <= o.ZMax; z++ {
		for y := o.YMin; y <= o.YMax; y++ {
			for x := o.XMin; x <= o.XMax; x++ {
				if labels.Get(x, y, z) != o.Label {
					continue
				}
				for _, off := range offsets {
					nx, ny, nz := x+off.dx, y+off.dy, z+off.dz
					if !labels.InBounds(nx, ny, nz) {
						continue
					}
					if labels.Get(nx, ny, nz) != 0 {
						continue
					}
					key := [3]int{nx, ny, nz}
					if seen[key] {
						continue
					}
					flux := float64(data.Get(nx, ny, nz))
					if math.IsNaN(flux) || math.IsInf(flux, 0) {
						continue
					}
					seen[key] = true
					out = append(out, voxel{nx, ny, nz, flux})
				}
			}
		}
	}
	return out
}

func sortedLabels(byLabel map[int32]*linker.ObjectParams) []int32 {
	labels := make([]int32, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && labels[j-1] > labels[j]; j-- {
			labels[j-1], labels[j] = labels[j], labels[j-1]
		}
	}
	return labels
}
