package stats

import "math"

// MinMax returns the minimum and maximum of buf, skipping non-finite
// samples. Returns (NaN, NaN) if no admissible sample remains
// (spec.md §4.1, §8 property 1).
func MinMax(buf []float32) (min, max float64) {
	min, max = math.NaN(), math.NaN()
	first := true
	for _, v := range buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if first {
			min, max = f, f
			first = false
			continue
		}
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	return
}

// Sum returns the sum of finite samples in buf.
func Sum(buf []float32) float64 {
	var sum float64
	for _, v := range buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		sum += f
	}
	return sum
}

// Mean returns the arithmetic mean of finite samples, or NaN if none
// are admissible.
func Mean(buf []float32) float64 {
	var sum float64
	var n int64
	for _, v := range buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		sum += f
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// admissible walks buf with the given stride, returning the finite
// samples selected by r as float64 (used by the strided/ranged
// statistics below).
func admissible(buf []float32, stride int, r Range) []float64 {
	if stride < 1 {
		stride = 1
	}
	out := make([]float64, 0, len(buf)/stride+1)
	for i := 0; i < len(buf); i += stride {
		f := float64(buf[i])
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if !r.admits(f) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// StdDevAbout returns sqrt(sum((x-mu)^2) / k), where k is the count of
// samples admitted by r and by striding every stride-th element
// (spec.md §4.1). Returns NaN if no admissible sample remains.
func StdDevAbout(buf []float32, mu float64, stride int, r Range) float64 {
	vals := admissible(buf, stride, r)
	if len(vals) == 0 {
		return math.NaN()
	}
	var sumSq float64
	for _, v := range vals {
		d := v - mu
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(vals)))
}

// StdDev returns the standard deviation of buf about its own mean,
// using every element (stride 1, full range).
func StdDev(buf []float32) float64 {
	mu := Mean(buf)
	if math.IsNaN(mu) {
		return math.NaN()
	}
	return StdDevAbout(buf, mu, 1, RangeFull)
}

// Skewness returns the standardised third central moment of the
// finite samples selected by r with the given stride (spec.md §2 item
// 1 names skewness; original_source/src/templates/statistics.c's
// skewness_SFX/kurtosis_SFX ground the moment definitions).
func Skewness(buf []float32, stride int, r Range) float64 {
	vals := admissible(buf, stride, r)
	if len(vals) == 0 {
		return math.NaN()
	}
	mu := meanOf(vals)
	var m2, m3 float64
	for _, v := range vals {
		d := v - mu
		m2 += d * d
		m3 += d * d * d
	}
	n := float64(len(vals))
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return math.NaN()
	}
	return m3 / math.Pow(m2, 1.5)
}

// Kurtosis returns the standardised fourth central moment (excess
// kurtosis is NOT subtracted, matching original_source's
// mom4/mom2^2 definition).
func Kurtosis(buf []float32, stride int, r Range) float64 {
	vals := admissible(buf, stride, r)
	if len(vals) == 0 {
		return math.NaN()
	}
	mu := meanOf(vals)
	var m2, m4 float64
	for _, v := range vals {
		d := v - mu
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	n := float64(len(vals))
	m2 /= n
	m4 /= n
	if m2 == 0 {
		return math.NaN()
	}
	return m4 / (m2 * m2)
}

func meanOf(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
