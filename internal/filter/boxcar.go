// Package filter implements the in-place separable boxcar filter, the
// 2-D pseudo-Gaussian built from iterated boxcars, and the
// shift-and-subtract continuum primitive (spec.md §4.2), all
// operating on pre-allocated scratch buffers chosen by the caller.
package filter

import "math"

// Boxcar1D applies an in-place boxcar filter of radius r to data,
// using scratch (length len(data)+2*r) as working storage. Non-finite
// input values are treated as zero, per spec.md §1 ("treats a
// non-finite voxel as... zero for filtering"). The recurrence is
// computed from the rightmost output leftwards using the rolling-sum
// identity, exactly in the order spec.md §4.2 mandates, to avoid error
// accumulation.
func Boxcar1D(data, scratch []float64, r int) {
	n := len(data)
	if r <= 0 {
		return
	}
	if len(scratch) != n+2*r {
		panic("filter: scratch must have length len(data)+2*r")
	}

	for i := 0; i < n; i++ {
		v := data[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		scratch[r+i] = v
	}
	for i := 0; i < r; i++ {
		scratch[i] = 0
		scratch[n+r+i] = 0
	}

	filterSize := 2*r + 1
	invFilterSize := 1.0 / float64(filterSize)

	var last float64
	for i := 0; i < filterSize; i++ {
		last += scratch[n+i-1]
	}
	data[n-1] = last * invFilterSize

	for i := n - 2; i >= 0; i-- {
		data[i] = data[i+1] + (scratch[i]-scratch[filterSize+i])*invFilterSize
	}
}

// ShiftAndSubtract computes data[i] -= data[i-shift] for i in
// [shift, n), processed from high i to low i, in place (spec.md
// §4.2). Used as the building block of the continuum-subtraction
// ripple filter.
func ShiftAndSubtract(data []float64, shift int) {
	for i := len(data) - 1; i >= shift; i-- {
		data[i] -= data[i-shift]
	}
}

// BoxcarMinIter and BoxcarMaxIter bound the search for the optimal
// (radius, iterations) pair in OptimalFilterSize (spec.md §4.2).
const (
	BoxcarMinIter = 2
	BoxcarMaxIter = 8
)

// OptimalFilterSize chooses (radius, iterations) approximating a
// Gaussian of the given standard deviation by minimising
// |radius - round(radius)| for radius = sqrt(3*sigma^2/n + 1/4) - 1/2
// over n in [BoxcarMinIter, BoxcarMaxIter] (spec.md §4.2).
func OptimalFilterSize(sigma float64) (radius, iterations int) {
	best := -1.0
	for n := BoxcarMinIter; n <= BoxcarMaxIter; n++ {
		r := math.Sqrt(3.0*sigma*sigma/float64(n)+0.25) - 0.5
		diff := math.Abs(r - math.Round(r))
		if best < 0 || diff < best {
			best = diff
			iterations = n
			radius = int(math.Round(r))
		}
	}
	return
}
