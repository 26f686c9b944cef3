// Package linker implements spec.md §4.6's connected-component
// labelling: a LIFO flood fill over an 8-bit detection mask under a
// Chebyshev-neighbourhood adjacency rule, producing a 32-bit label
// mask and a per-object parameter table.
package linker

import "math"

// Flag bits for ObjectParams.Flags (spec.md §3 "Object parameter record").
const (
	FlagTouchesSpatialEdge  = 1 << 0
	FlagTouchesSpectralEdge = 1 << 1
	FlagNonFinite           = 1 << 2
	FlagMerged              = 1 << 3
)

// ObjectParams is the per-label structure spec.md §3 names "Object
// parameter record", extended with the flux-weighted centroid
// restored from original_source/src/LinkerPar.c (SPEC_FULL.md §3.6).
type ObjectParams struct {
	Label      int32
	NPix       int64
	XMin, XMax int
	YMin, YMax int
	ZMin, ZMax int
	FMin, FMax float64
	FSum       float64
	Rel        float64
	Flags      uint8

	// centroidSum accumulates flux-weighted position; Centroid()
	// divides it by FSum on demand, so further accumulation (e.g. from
	// the dilation stage growing an already-linked object) stays exact
	// without needing to undo a prior division.
	centroidSum [3]float64
}

func newObjectParams(label int32) *ObjectParams {
	return &ObjectParams{
		Label: label,
		XMin:  1 << 30, YMin: 1 << 30, ZMin: 1 << 30,
		XMax: -1, YMax: -1, ZMax: -1,
		FMin: math.Inf(1), FMax: math.Inf(-1),
	}
}

// Accumulate folds one more voxel into the object's running statistics
// (pixel count, bounding box, flux extremes/sum, weighted centroid).
// Exported so later stages — dilation in particular — can extend an
// already-linked object with newly committed voxels.
func (o *ObjectParams) Accumulate(x, y, z int, flux float64, nonFinite bool) {
	o.NPix++
	if x < o.XMin {
		o.XMin = x
	}
	if x > o.XMax {
		o.XMax = x
	}
	if y < o.YMin {
		o.YMin = y
	}
	if y > o.YMax {
		o.YMax = y
	}
	if z < o.ZMin {
		o.ZMin = z
	}
	if z > o.ZMax {
		o.ZMax = z
	}
	if flux < o.FMin {
		o.FMin = flux
	}
	if flux > o.FMax {
		o.FMax = flux
	}
	o.FSum += flux
	o.centroidSum[0] += flux * float64(x)
	o.centroidSum[1] += flux * float64(y)
	o.centroidSum[2] += flux * float64(z)
	if nonFinite {
		o.Flags |= FlagNonFinite
	}
}

// Centroid returns the flux-weighted position, dividing the
// accumulated sum by FSum. Returns the zero vector if FSum is zero.
func (o *ObjectParams) Centroid() [3]float64 {
	if o.FSum == 0 {
		return [3]float64{}
	}
	return [3]float64{
		o.centroidSum[0] / o.FSum,
		o.centroidSum[1] / o.FSum,
		o.centroidSum[2] / o.FSum,
	}
}
