package reliability

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Kernel holds the inverted, scaled 3x3 covariance ("bandwidth
// matrix") of the negative population, grounded on
// original_source/src/Matrix.c's Matrix_invert/Matrix_prob_dens
// contract but computed with gonum.org/v1/gonum/mat instead of a
// hand-rolled Gauss-Jordan routine (DESIGN.md).
type Kernel struct {
	inv *mat.Dense
}

// FitKernel computes the 3x3 covariance of the negative features
// (population divisor n, matching LinkerPar.c:974's
// Matrix_mul_value(covar, i, j, scale_kernel*scale_kernel/n_neg) rather
// than the Bessel-corrected n-1 estimator), scales it by
// scaleKernel^2, and inverts it. Returns an error if the covariance is
// singular (spec.md §4.7 "reject if not invertible") or if fewer than
// two negative samples are available.
func FitKernel(negatives []Feature, scaleKernel float64) (*Kernel, error) {
	if len(negatives) < 2 {
		return nil, fmt.Errorf("reliability: need at least 2 negative objects to fit a covariance, got %d", len(negatives))
	}

	var mean [3]float64
	for _, f := range negatives {
		for i := 0; i < 3; i++ {
			mean[i] += f[i]
		}
	}
	n := float64(len(negatives))
	for i := range mean {
		mean[i] /= n
	}

	cov := mat.NewDense(3, 3, nil)
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			var sum float64
			for _, f := range negatives {
				sum += (f[a] - mean[a]) * (f[b] - mean[b])
			}
			cov.Set(a, b, scaleKernel*scaleKernel*sum/n)
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(cov); err != nil {
		return nil, fmt.Errorf("reliability: negative-population covariance is singular or not invertible: %w", err)
	}

	return &Kernel{inv: &inv}, nil
}

// densityTerm returns exp(-1/2 (a-b)^T Sigma^-1 (a-b)), the unnormalised
// Gaussian kernel weight spec.md §4.7 sums over the comparison
// population. The normalising prefactor is omitted as it cancels
// between numerator and denominator in the reliability ratio.
func (k *Kernel) densityTerm(a, b Feature) float64 {
	diff := mat.NewVecDense(3, []float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]})

	var tmp mat.VecDense
	tmp.MulVec(k.inv, diff)

	quad := mat.Dot(diff, &tmp)
	return math.Exp(-0.5 * quad)
}
