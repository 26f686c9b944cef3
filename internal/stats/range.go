// Package stats implements the robust statistics kernel of spec.md
// §4.1: min/max, mean, standard deviation, MAD, a Gaussian fit to a
// histogram, skewness/kurtosis, and an N-th-order selection, all over
// a contiguous voxel buffer with a configurable stride and flux-range
// selector. Every function skips non-finite samples and signals "no
// admissible samples" by returning math.NaN() (spec.md §7) rather
// than raising — callers must test the sentinel explicitly.
package stats

// Range selects which voxels a statistic admits, mirroring
// original_source's `range` parameter: negative-only, any finite
// value, or positive-only.
type Range int

const (
	RangeNegative Range = -1
	RangeFull     Range = 0
	RangePositive Range = 1
)

func (r Range) admits(v float64) bool {
	switch r {
	case RangeNegative:
		return v < 0
	case RangePositive:
		return v > 0
	default:
		return true
	}
}

// MADToStd converts a median absolute deviation to a Gaussian-
// equivalent standard deviation (spec.md GLOSSARY).
const MADToStd = 1.4826
