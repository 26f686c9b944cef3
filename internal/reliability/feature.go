// Package reliability implements the multivariate kernel-density
// reliability estimator of spec.md §4.7: a 3×3 Gaussian kernel is
// fitted to the negative-detection population and used to score every
// positive object by how far it stands out from that noise model.
package reliability

import (
	"math"

	"github.com/banshee-data/sofind/internal/linker"
)

// Feature is the dimension-3 vector spec.md §4.7 assigns each object:
// (log|f_max_or_min|, log|f_sum|, log|f_sum/n_pix|), sign-dependent.
type Feature [3]float64

// BuildFeature computes the feature vector for an object, or reports
// ok=false when f_sum is zero (spec.md §4.7 "each retained object with
// f_sum != 0").
func BuildFeature(o *linker.ObjectParams) (Feature, bool) {
	if o.FSum == 0 {
		return Feature{}, false
	}
	var peak float64
	if o.FSum < 0 {
		peak = o.FMin
	} else {
		peak = o.FMax
	}
	if peak == 0 {
		return Feature{}, false
	}
	n := float64(o.NPix)
	if n <= 0 {
		return Feature{}, false
	}
	f := Feature{
		math.Log(math.Abs(peak)),
		math.Log(math.Abs(o.FSum)),
		math.Log(math.Abs(o.FSum / n)),
	}
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Feature{}, false
		}
	}
	return f, true
}
