// Package scfind implements the multi-scale Smooth-and-Clip finder of
// spec.md §4.5: an ordered list of (spatial sigma, spectral kernel
// length) pairs is applied to a copy of the data cube, each smoothed
// copy is re-thresholded against a freshly estimated noise floor, and
// the resulting detections are unioned into an output 8-bit mask.
package scfind

import (
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/filter"
	"github.com/banshee-data/sofind/internal/noise"
	"github.com/banshee-data/sofind/internal/obslog"
	"github.com/banshee-data/sofind/internal/stats"
	"github.com/banshee-data/sofind/internal/workerpool"
)

// Kernels describes the ordered spatial-sigma and spectral-length
// kernel lists of spec.md §3 "Kernel descriptors". Sort orders both
// lists ascending and promotes even spectral lengths to the next odd
// value, warning as it does so (spec.md §4.5 edge-case policies).
type Kernels struct {
	SpatialSigmas   []float64
	SpectralLengths []int
}

// Sort orders both lists ascending in place and promotes any even
// spectral length > 0 to length+1.
func (k *Kernels) Sort() {
	sort.Float64s(k.SpatialSigmas)
	for i, l := range k.SpectralLengths {
		if l > 1 && l%2 == 0 {
			obslog.Warnf("scfind: spectral kernel length %d is even, promoting to %d", l, l+1)
			k.SpectralLengths[i] = l + 1
		}
	}
	sort.Ints(k.SpectralLengths)
}

// Params configures Run (spec.md §4.5 and §6's scfind.* keys).
type Params struct {
	Kernels          Kernels
	Threshold        float64
	Replacement      float64
	Statistic        noise.Statistic
	FluxRange        stats.Range
	RescaleNoiseLocal bool
	Pool             *workerpool.Pool
}

// Run performs the nested Smooth-and-Clip loop described by spec.md
// §4.5, writing detections into mask (mask is not reset first, so
// repeated runs accumulate — the caller is expected to start from a
// zero-filled mask). data is read but not mutated; Run allocates its
// own smoothed working copy per kernel pair.
func Run(data *cube.DataCube, mask *cube.MaskCube[int8], p Params) error {
	if err := validate(p); err != nil {
		return err
	}
	p.Kernels.Sort()

	pool := p.Pool
	if pool == nil {
		pool = workerpool.New(0)
	}

	globalSigma := stats.RobustNoiseNeg(data.Buf)

	for _, sigma := range p.Kernels.SpatialSigmas {
		for _, length := range p.Kernels.SpectralLengths {
			working := data.Clone()
			applyReplacement(working, mask, p.Replacement, globalSigma)

			if sigma > 0 {
				smoothSpatial(working, sigma, pool)
			}
			if length >= 3 {
				smoothSpectral(working, (length-1)/2, pool)
			}

			noiseSigma := estimateNoise(working, p)
			if math.IsNaN(noiseSigma) || noiseSigma <= 0 {
				obslog.Warnf("scfind: kernel (sigma=%.3f, length=%d) produced no usable noise estimate, skipping", sigma, length)
				continue
			}

			threshold(working, mask, p.Threshold*noiseSigma)
		}
	}
	return nil
}

func validate(p Params) error {
	if math.IsNaN(p.Threshold) || math.IsInf(p.Threshold, 0) {
		return fmt.Errorf("scfind: threshold must be finite")
	}
	for _, s := range p.Kernels.SpatialSigmas {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return fmt.Errorf("scfind: spatial sigma must be finite and >= 0")
		}
	}
	return nil
}

// ValidateAgainstShape checks the input-error policy that a spatial
// sigma must be strictly less than min(nx, ny) (spec.md §4.5).
func ValidateAgainstShape(k Kernels, nx, ny int) error {
	limit := float64(min(nx, ny))
	for _, s := range k.SpatialSigmas {
		if !(s < limit) {
			return fmt.Errorf("scfind: spatial sigma %v is not strictly less than min(nx,ny)=%v", s, limit)
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// applyReplacement clamps any already-flagged voxel in working to
// sign(value) * replacement * globalSigma, so earlier, narrower
// kernels don't bias the noise estimate of later, wider ones (spec.md
// §4.5 ordering guarantee).
func applyReplacement(working *cube.DataCube, mask *cube.MaskCube[int8], replacement, globalSigma float64) {
	if math.IsNaN(globalSigma) {
		return
	}
	for i, m := range mask.Buf {
		if m == 0 {
			continue
		}
		v := float64(working.Buf[i])
		sign := 1.0
		if v < 0 {
			sign = -1.0
		}
		working.Buf[i] = float32(sign * replacement * globalSigma)
	}
}

func smoothSpatial(working *cube.DataCube, sigma float64, pool *workerpool.Pool) {
	radius, n := filter.OptimalFilterSize(sigma)
	if radius <= 0 {
		return
	}
	planeSize := working.NX * working.NY
	pool.Parallel(working.NZ, func(z int) {
		plane := make([]float64, planeSize)
		for i, v := range working.Buf[z*planeSize : (z+1)*planeSize] {
			plane[i] = float64(v)
		}
		scratch := filter.NewScratch2D(working.NX, working.NY, radius)
		filter.Gaussian2D(plane, working.NX, working.NY, radius, n, scratch)
		for i, v := range plane {
			working.Buf[z*planeSize+i] = float32(v)
		}
	})
}

func smoothSpectral(working *cube.DataCube, radius int, pool *workerpool.Pool) {
	planeSize := working.NX * working.NY
	pool.Parallel(planeSize, func(p int) {
		x := p % working.NX
		y := p / working.NX
		col := make([]float64, working.NZ)
		for z := 0; z < working.NZ; z++ {
			col[z] = float64(working.Get(x, y, z))
		}
		scratch := make([]float64, working.NZ+2*radius)
		filter.Boxcar1D(col, scratch, radius)
		for z := 0; z < working.NZ; z++ {
			working.Set(x, y, z, float32(col[z]))
		}
	})
}

// estimateNoise returns the sigma the threshold cut should be
// multiplied by. When RescaleNoiseLocal is set (spec.md §4.5
// "optionally re-estimated locally"), working is rescaled in place,
// per spectral plane, to unit noise before the cut is applied, so the
// returned sigma is always 1; otherwise a single global noise
// estimate is returned and working is left untouched.
func estimateNoise(working *cube.DataCube, p Params) float64 {
	if !p.RescaleNoiseLocal {
		return noise.Estimate(p.Statistic, working.Buf, p.FluxRange)
	}
	noise.ScaleNoiseSpec(working, p.Statistic, p.FluxRange)
	return 1.0
}

func threshold(working *cube.DataCube, mask *cube.MaskCube[int8], cut float64) {
	for i, v := range working.Buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if math.Abs(f) > cut {
			mask.Buf[i] = 1
		}
	}
}
