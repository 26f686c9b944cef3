package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const histBins = 101

// GaussFit builds a 101-bin histogram over [-L, L] initialised from
// MinMax, rescales L so the sample standard deviation covers one
// fifth of the histogram width, then fits ln(h_i) = a*(i-centre)^2 + b
// by linear regression (excluding the two outermost bins and any
// empty bin), and returns the fitted sigma converted back to the
// cube's flux units (spec.md §4.1, grounded on
// original_source's gaufit_SFX). Returns NaN if the sample has no
// dynamic range in the requested direction.
func GaussFit(buf []float32, stride int, r Range) float64 {
	vals := admissible(buf, stride, r)
	if len(vals) == 0 {
		return math.NaN()
	}

	dataMin, dataMax := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if v < dataMin {
			dataMin = v
		}
		if v > dataMax {
			dataMax = v
		}
	}
	switch r {
	case RangeNegative:
		if dataMin >= 0 {
			return math.NaN()
		}
		dataMax = 0
	case RangePositive:
		if dataMax <= 0 {
			return math.NaN()
		}
		dataMin = 0
	default:
		if dataMin >= 0 || dataMax <= 0 {
			return math.NaN()
		}
		limit := math.Min(math.Abs(dataMin), math.Abs(dataMax))
		dataMin, dataMax = -limit, limit
	}

	origin := histBins / 2
	switch r {
	case RangeNegative:
		origin = histBins - 1
	case RangePositive:
		origin = 0
	}
	const invOptimalMom2 = 5.0 / histBins

	hist := histogram(vals, histBins, dataMin, dataMax)
	mom1, mom0 := 0.0, 0.0
	for i, h := range hist {
		mom0 += float64(h)
		mom1 += float64(h) * float64(i)
	}
	if mom0 == 0 {
		return math.NaN()
	}
	mom1 /= mom0
	mom2 := 0.0
	for i, h := range hist {
		d := mom1 - float64(i)
		mom2 += float64(h) * d * d
	}
	mom2 = math.Sqrt(mom2 / mom0)

	switch r {
	case RangeNegative:
		dataMin *= mom2 * invOptimalMom2
	case RangePositive:
		dataMax *= mom2 * invOptimalMom2
	default:
		dataMin *= mom2 * invOptimalMom2
		dataMax *= mom2 * invOptimalMom2
	}

	hist = histogram(vals, histBins, dataMin, dataMax)

	var xs, ys []float64
	for i := 1; i < histBins-1; i++ {
		if hist[i] == 0 {
			continue
		}
		ii := float64(i - origin)
		xs = append(xs, ii*ii)
		ys = append(ys, math.Log(float64(hist[i])))
	}
	if len(xs) < 2 {
		return math.NaN()
	}

	_, beta := stat.LinearRegression(xs, ys, nil, false)
	if beta >= 0 {
		return math.NaN()
	}
	sigma := math.Sqrt(-0.5/beta) * (dataMax - dataMin) / (histBins - 1)
	return sigma
}

// histogram bins vals into n bins over [lo, hi], matching
// original_source's create_histogram_SFX rounding convention.
func histogram(vals []float64, n int, lo, hi float64) []int {
	h := make([]int, n)
	if hi <= lo {
		return h
	}
	slope := float64(n-1) / (hi - lo)
	offset := 0.5 - slope*lo
	for _, v := range vals {
		if v < lo || v > hi {
			continue
		}
		bin := int(slope*v + offset)
		if bin < 0 {
			bin = 0
		}
		if bin >= n {
			bin = n - 1
		}
		h[bin]++
	}
	return h
}
