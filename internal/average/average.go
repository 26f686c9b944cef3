// Package average implements the flux-range spatial averaging stage
// supplemented in SPEC_FULL.md §3.11: a thin wrapper over
// internal/filter's boxcar primitive, restricted to the spatial axes,
// used to produce a lower-resolution working cube ahead of the S+C
// finder.
package average

import (
	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/filter"
)

// Params configures Run.
type Params struct {
	// Radius is the boxcar half-width applied along x and then y.
	Radius int
}

// Run applies a 2-D spatial boxcar smooth to every z-plane of c, in
// place. A Radius of zero is a no-op.
func Run(c *cube.DataCube, p Params) {
	if p.Radius <= 0 {
		return
	}
	planeSize := c.NX * c.NY
	scratch := filter.NewScratch2D(c.NX, c.NY, p.Radius)
	plane := make([]float64, planeSize)

	for z := 0; z < c.NZ; z++ {
		for i, v := range c.Buf[z*planeSize : (z+1)*planeSize] {
			plane[i] = float64(v)
		}
		filter.Gaussian2D(plane, c.NX, c.NY, p.Radius, 1, scratch)
		for i, v := range plane {
			c.Buf[z*planeSize+i] = float32(v)
		}
	}
}
