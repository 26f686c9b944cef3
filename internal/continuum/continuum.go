// Package continuum implements the continuum-subtraction stage
// supplemented from original_source/sofia.c's cont_sub call path
// (SPEC_FULL.md §3.10): a low-order polynomial fit per spatial pixel's
// spectrum, followed by a shift-and-subtract ripple filter.
package continuum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/filter"
)

// Params configures Subtract.
type Params struct {
	// PolyOrder is the polynomial order fitted per spectrum, 0-2.
	PolyOrder int
	// RippleShift is the shift-and-subtract lag applied after the
	// polynomial fit; zero disables the ripple filter.
	RippleShift int
}

// Subtract removes a low-order polynomial continuum from every spatial
// pixel's spectrum, then optionally applies a shift-and-subtract
// ripple filter, mutating c in place.
func Subtract(c *cube.DataCube, p Params) error {
	if p.PolyOrder < 0 || p.PolyOrder > 2 {
		return fmt.Errorf("continuum: polynomial order must be 0, 1, or 2, got %d", p.PolyOrder)
	}

	spectrum := make([]float64, c.NZ)
	fitted := make([]float64, c.NZ)

	for y := 0; y < c.NY; y++ {
		for x := 0; x < c.NX; x++ {
			for z := 0; z < c.NZ; z++ {
				spectrum[z] = float64(c.Get(x, y, z))
			}

			coeffs, ok := fitPolynomial(spectrum, p.PolyOrder)
			if ok {
				for z := 0; z < c.NZ; z++ {
					fitted[z] = evalPolynomial(coeffs, float64(z))
					spectrum[z] -= fitted[z]
				}
			}

			if p.RippleShift > 0 && p.RippleShift < c.NZ {
				filter.ShiftAndSubtract(spectrum, p.RippleShift)
			}

			for z := 0; z < c.NZ; z++ {
				c.Set(x, y, z, float32(spectrum[z]))
			}
		}
	}
	return nil
}

// fitPolynomial fits a degree-order polynomial to y[i] = f(i) via the
// normal equations, skipping non-finite samples. Returns ok=false if
// fewer than order+1 finite samples are available.
func fitPolynomial(y []float64, order int) ([]float64, bool) {
	n := order + 1
	var xs, ys []float64
	for i, v := range y {
		if v != v { // NaN
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	if len(xs) < n {
		return nil, false
	}

	design := mat.NewDense(len(xs), n, nil)
	for r, x := range xs {
		p := 1.0
		for c := 0; c < n; c++ {
			design.Set(r, c, p)
			p *= x
		}
	}
	target := mat.NewVecDense(len(ys), ys)

	var ata mat.Dense
	ata.Mul(design.T(), design)
	var aty mat.VecDense
	aty.MulVec(design.T(), target)

	var coeffs mat.Dense
	if err := coeffs.Solve(&ata, &aty); err != nil {
		return nil, false
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = coeffs.At(i, 0)
	}
	return out, true
}

func evalPolynomial(coeffs []float64, x float64) float64 {
	var v, p float64
	p = 1.0
	for _, c := range coeffs {
		v += c * p
		p *= x
	}
	return v
}
