// Package noise implements spec.md §4.4's spectral and local
// noise-scaling stages: normalising a data cube so its noise has unit
// standard deviation everywhere, either per spectral plane or over a
// spatial/spectral grid of tiles, optionally trilinearly interpolated.
package noise

import (
	"math"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/stats"
)

// Statistic selects the noise estimator used by both scaling modes
// (spec.md §4.4 and §6's scaleNoise.statistic closed set).
type Statistic int

const (
	StatisticStd Statistic = iota
	StatisticMAD
	StatisticGauss
)

// Estimate computes the chosen statistic over buf restricted by r,
// returning NaN if the sample admits no value (spec.md §7).
func Estimate(stat_ Statistic, buf []float32, r stats.Range) float64 {
	switch stat_ {
	case StatisticMAD:
		return stats.MADToStd * stats.MADAboutValue(buf, 0, 1, r)
	case StatisticGauss:
		return stats.GaussFit(buf, 1, r)
	default:
		return stats.StdDevAbout(buf, 0, 1, r)
	}
}

// ScaleNoiseSpec normalises each z-plane of c by its own noise
// estimate, computed with the chosen statistic and flux range. A
// plane with no admissible samples (NaN estimate) or a non-finite/zero
// estimate is left unchanged (spec.md §4.4 policy).
func ScaleNoiseSpec(c *cube.DataCube, statistic Statistic, r stats.Range) {
	planeSize := c.NX * c.NY
	for z := 0; z < c.NZ; z++ {
		plane := c.Buf[z*planeSize : (z+1)*planeSize]
		sigma := Estimate(statistic, plane, r)
		if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma == 0 {
			continue
		}
		for i := range plane {
			plane[i] = float32(float64(plane[i]) / sigma)
		}
	}
}
