// Package threshold implements the simple single-cut finder named
// alongside the S+C finder in spec.md §2's data flow ("S+C and/or
// threshold finder producing an 8-bit mask") and configured by the
// threshold.* keys of spec.md §6. Unlike scfind, it performs no
// smoothing and no per-kernel noise re-estimation: it clips the cube
// once, either against a literal flux value or against a multiple of
// a single noise estimate.
package threshold

import (
	"fmt"
	"math"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/noise"
	"github.com/banshee-data/sofind/internal/stats"
)

// Mode selects how Params.Threshold is interpreted.
type Mode int

const (
	// ModeRelative multiplies Threshold by a noise estimate over the
	// whole cube (spec.md §6 "threshold.mode ∈ {absolute, relative}").
	ModeRelative Mode = iota
	// ModeAbsolute takes Threshold as a literal flux cut.
	ModeAbsolute
)

// Params configures Run.
type Params struct {
	Mode      Mode
	Threshold float64
	Statistic noise.Statistic
	FluxRange stats.Range
}

// Run clips data against a single cut and unions the result into
// mask. mask is not reset first, so this can be combined with scfind's
// output by running both finders against the same mask cube.
func Run(data *cube.DataCube, mask *cube.MaskCube[int8], p Params) error {
	if math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) {
		return fmt.Errorf("threshold: threshold must be finite")
	}

	cut := p.Threshold
	if p.Mode == ModeRelative {
		sigma := noise.Estimate(p.Statistic, data.Buf, p.FluxRange)
		if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma <= 0 {
			return fmt.Errorf("threshold: relative mode produced no usable noise estimate")
		}
		cut = p.Threshold * sigma
	}

	for i, v := range data.Buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if math.Abs(f) > cut {
			mask.Buf[i] = 1
		}
	}
	return nil
}
