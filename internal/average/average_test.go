package average

import (
	"math"
	"testing"

	"github.com/banshee-data/sofind/internal/cube"
)

func TestRunSmoothsSpatialSpike(t *testing.T) {
	const n = 9
	c := cube.NewBlank(n, n, 1)
	c.Set(n/2, n/2, 0, 81.0)

	Run(c, Params{Radius: 2})

	if c.Get(n/2, n/2, 0) >= 81.0 {
		t.Fatal("expected the spike to be spread out by spatial averaging")
	}
	var total float64
	for _, v := range c.Buf {
		total += float64(v)
	}
	if math.Abs(total-81.0) > 1e-3 {
		t.Fatalf("expected total flux to be conserved, got %v", total)
	}
}

func TestRunZeroRadiusIsNoop(t *testing.T) {
	c := cube.NewBlank(4, 4, 1)
	c.Set(1, 1, 0, 5.0)
	Run(c, Params{Radius: 0})
	if c.Get(1, 1, 0) != 5.0 {
		t.Fatal("expected a zero radius to leave the cube untouched")
	}
}
