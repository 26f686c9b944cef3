package noise

import (
	"math"
	"math/rand"
	"testing"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/stats"
)

func TestScaleNoiseSpecNormalisesToUnitStd(t *testing.T) {
	const nx, ny, nz = 20, 20, 5
	c := cube.NewBlank(nx, ny, nz)
	r := rand.New(rand.NewSource(7))
	const sigma = 3.0
	for i := range c.Buf {
		c.Buf[i] = float32(r.NormFloat64() * sigma)
	}

	ScaleNoiseSpec(c, StatisticStd, stats.RangeFull)

	planeSize := nx * ny
	for z := 0; z < nz; z++ {
		plane := c.Buf[z*planeSize : (z+1)*planeSize]
		std := stats.StdDev(plane)
		if math.Abs(std-1.0) > 0.05 {
			t.Fatalf("plane %d: expected std~1, got %v", z, std)
		}
	}
}

func TestScaleNoiseSpecLeavesEmptyPlaneUnchanged(t *testing.T) {
	c := cube.NewBlank(4, 4, 2)
	for i := range c.Buf[:16] {
		c.Buf[i] = float32(math.NaN())
	}
	before := append([]float32(nil), c.Buf...)
	ScaleNoiseSpec(c, StatisticStd, stats.RangeFull)
	for i, v := range c.Buf[:16] {
		if !math.IsNaN(float64(v)) || !math.IsNaN(float64(before[i])) {
			t.Fatalf("expected untouched NaN plane at %d", i)
		}
	}
}

func TestScaleNoiseLocalProducesCongruentNoiseCube(t *testing.T) {
	const nx, ny, nz = 16, 16, 8
	c := cube.NewBlank(nx, ny, nz)
	r := rand.New(rand.NewSource(11))
	for i := range c.Buf {
		c.Buf[i] = float32(r.NormFloat64())
	}

	noiseCube := ScaleNoiseLocal(c, LocalParams{
		Statistic:   StatisticStd,
		Range:       stats.RangeFull,
		WindowXY:    8,
		WindowZ:     4,
		GridXY:      4,
		GridZ:       2,
		Interpolate: true,
	})

	if noiseCube.NX != nx || noiseCube.NY != ny || noiseCube.NZ != nz {
		t.Fatalf("expected noise cube congruent with data cube, got (%d,%d,%d)", noiseCube.NX, noiseCube.NY, noiseCube.NZ)
	}
	for _, v := range noiseCube.Buf {
		if math.IsNaN(float64(v)) {
			t.Fatal("expected fully populated noise cube after nearest-valid fill-in")
		}
	}
}
