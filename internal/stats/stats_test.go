package stats

import (
	"math"
	"math/rand"
	"testing"
)

func TestMinMax(t *testing.T) {
	buf := []float32{3, 1, float32(math.NaN()), 7, -2}
	min, max := MinMax(buf)
	if min != -2 || max != 7 {
		t.Fatalf("expected (-2, 7), got (%v, %v)", min, max)
	}
}

func TestMinMaxAllNaN(t *testing.T) {
	buf := []float32{float32(math.NaN()), float32(math.NaN())}
	min, max := MinMax(buf)
	if !math.IsNaN(min) || !math.IsNaN(max) {
		t.Fatalf("expected (NaN, NaN), got (%v, %v)", min, max)
	}
}

func TestMeanMatchesNaiveSum(t *testing.T) {
	buf := make([]float32, 1000)
	r := rand.New(rand.NewSource(1))
	var naiveSum float64
	for i := range buf {
		v := r.NormFloat64()
		buf[i] = float32(v)
		naiveSum += v
	}
	mean := Mean(buf)
	expect := naiveSum / float64(len(buf))
	if math.Abs(mean-expect) > 1e-6 {
		t.Fatalf("mean %v too far from naive %v", mean, expect)
	}
}

func TestNthElementPartitions(t *testing.T) {
	buf := []float64{5, 3, 8, 1, 9, 2, 7}
	k := 3
	v := NthElement(append([]float64(nil), buf...), k)
	cp := append([]float64(nil), buf...)
	got := NthElement(cp, k)
	if got != v {
		t.Fatalf("inconsistent result")
	}
	for i := 0; i < k; i++ {
		if cp[i] > cp[k] {
			t.Fatalf("buf[%d]=%v > buf[k]=%v", i, cp[i], cp[k])
		}
	}
	for i := k + 1; i < len(cp); i++ {
		if cp[i] < cp[k] {
			t.Fatalf("buf[%d]=%v < buf[k]=%v", i, cp[i], cp[k])
		}
	}
}

func TestMedianOddEven(t *testing.T) {
	odd := []float64{5, 1, 3}
	if m := Median(append([]float64(nil), odd...), false); m != 3 {
		t.Errorf("expected median 3, got %v", m)
	}
	even := []float64{1, 2, 3, 4}
	if m := Median(append([]float64(nil), even...), false); m != 2.5 {
		t.Errorf("expected exact median 2.5, got %v", m)
	}
}

func TestMADKnownValue(t *testing.T) {
	buf := []float32{1, 1, 1, 1, 10}
	m := MAD(buf)
	if m != 0 {
		t.Errorf("expected MAD 0 for four equal values dominating median, got %v", m)
	}
}

func TestRobustNoiseNeg(t *testing.T) {
	buf := []float32{-1, -2, -3, 1, 2, 3, float32(math.NaN())}
	sigma := RobustNoiseNeg(buf)
	if math.IsNaN(sigma) || sigma <= 0 {
		t.Fatalf("expected positive sigma, got %v", sigma)
	}
}

func TestRobustNoiseNegNoNegatives(t *testing.T) {
	buf := []float32{1, 2, 3}
	if !math.IsNaN(RobustNoiseNeg(buf)) {
		t.Fatal("expected NaN sentinel when no negative samples exist")
	}
}

func TestGaussFitRecoversKnownSigma(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	const sigma = 2.0
	buf := make([]float32, 200000)
	for i := range buf {
		buf[i] = float32(r.NormFloat64() * sigma)
	}
	fit := GaussFit(buf, 1, RangeFull)
	if math.IsNaN(fit) {
		t.Fatal("expected a finite fit")
	}
	if math.Abs(fit-sigma)/sigma > 0.1 {
		t.Fatalf("fitted sigma %v too far from true sigma %v", fit, sigma)
	}
}

func TestStdDevAboutRangeSelectors(t *testing.T) {
	buf := []float32{-2, -1, 1, 2}
	neg := StdDevAbout(buf, 0, 1, RangeNegative)
	pos := StdDevAbout(buf, 0, 1, RangePositive)
	if math.IsNaN(neg) || math.IsNaN(pos) {
		t.Fatal("expected finite results")
	}
	if neg != pos {
		t.Errorf("expected symmetric std devs, got %v vs %v", neg, pos)
	}
}
