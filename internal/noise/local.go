package noise

import (
	"math"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/stats"
)

// LocalParams configures ScaleNoiseLocal (spec.md §4.4).
type LocalParams struct {
	Statistic     Statistic
	Range         stats.Range
	WindowXY      int
	WindowZ       int
	GridXY        int
	GridZ         int
	Interpolate   bool
}

// ScaleNoiseLocal tiles c into boxes of size (WindowXY, WindowXY,
// WindowZ) on a coarser grid spaced (GridXY, GridZ) apart, estimates
// the chosen statistic at each grid node over the window centred on
// it, projects the resulting sparse lattice to every voxel (nearest
// neighbour, or trilinear if Interpolate is set), divides the data
// cube by the dense noise cube, and returns the noise cube so callers
// may optionally emit it (spec.md §4.4). Non-finite voxels are left
// untouched. A tile whose statistic is zero or non-finite is skipped
// and filled from the nearest valid grid node (spec.md §4.4 policy).
func ScaleNoiseLocal(c *cube.DataCube, p LocalParams) *cube.DataCube {
	gridXY := p.GridXY
	if gridXY < 1 {
		gridXY = 1
	}
	gridZ := p.GridZ
	if gridZ < 1 {
		gridZ = 1
	}

	nxg := (c.NX + gridXY - 1) / gridXY
	nyg := (c.NY + gridXY - 1) / gridXY
	nzg := (c.NZ + gridZ - 1) / gridZ

	lattice := make([][][]float64, nxg)
	for i := range lattice {
		lattice[i] = make([][]float64, nyg)
		for j := range lattice[i] {
			lattice[i][j] = make([]float64, nzg)
			for k := range lattice[i][j] {
				lattice[i][j][k] = math.NaN()
			}
		}
	}

	halfXY := p.WindowXY / 2
	halfZ := p.WindowZ / 2

	for gz := 0; gz < nzg; gz++ {
		cz := gz * gridZ
		z0, z1 := clampRange(cz-halfZ, cz+halfZ, c.NZ)
		for gy := 0; gy < nyg; gy++ {
			cy := gy * gridXY
			y0, y1 := clampRange(cy-halfXY, cy+halfXY, c.NY)
			for gx := 0; gx < nxg; gx++ {
				cx := gx * gridXY
				x0, x1 := clampRange(cx-halfXY, cx+halfXY, c.NX)

				window := windowVoxels(c, x0, x1, y0, y1, z0, z1)
				sigma := Estimate(p.Statistic, window, p.Range)
				if math.IsNaN(sigma) || math.IsInf(sigma, 0) || sigma == 0 {
					continue
				}
				lattice[gx][gy][gz] = sigma
			}
		}
	}

	fillNearestValid(lattice, nxg, nyg, nzg)

	noiseCube := cube.NewBlank(c.NX, c.NY, c.NZ)
	for z := 0; z < c.NZ; z++ {
		for y := 0; y < c.NY; y++ {
			for x := 0; x < c.NX; x++ {
				var sigma float64
				if p.Interpolate {
					sigma = trilinear(lattice, nxg, nyg, nzg, float64(x)/float64(gridXY), float64(y)/float64(gridXY), float64(z)/float64(gridZ))
				} else {
					sigma = lattice[nearestGridIndex(x, gridXY, nxg)][nearestGridIndex(y, gridXY, nyg)][nearestGridIndex(z, gridZ, nzg)]
				}
				noiseCube.Set(x, y, z, float32(sigma))

				idx := c.Index(x, y, z)
				v := float64(c.Buf[idx])
				if math.IsNaN(v) || math.IsInf(v, 0) || math.IsNaN(sigma) || sigma == 0 {
					continue
				}
				c.Buf[idx] = float32(v / sigma)
			}
		}
	}

	return noiseCube
}

func windowVoxels(c *cube.DataCube, x0, x1, y0, y1, z0, z1 int) []float32 {
	out := make([]float32, 0, (x1-x0+1)*(y1-y0+1)*(z1-z0+1))
	for z := z0; z <= z1; z++ {
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				out = append(out, c.Get(x, y, z))
			}
		}
	}
	return out
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func nearestGridIndex(voxel, spacing, n int) int {
	idx := (voxel + spacing/2) / spacing
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// fillNearestValid replaces every NaN lattice cell with the value of
// the nearest (Manhattan distance, ties broken by scan order) valid
// cell, per spec.md §4.4's "filled from the nearest valid grid node"
// policy.
func fillNearestValid(lattice [][][]float64, nxg, nyg, nzg int) {
	type coord struct{ x, y, z int }
	var valid []coord
	for x := 0; x < nxg; x++ {
		for y := 0; y < nyg; y++ {
			for z := 0; z < nzg; z++ {
				if !math.IsNaN(lattice[x][y][z]) {
					valid = append(valid, coord{x, y, z})
				}
			}
		}
	}
	if len(valid) == 0 {
		for x := 0; x < nxg; x++ {
			for y := 0; y < nyg; y++ {
				for z := 0; z < nzg; z++ {
					lattice[x][y][z] = math.NaN()
				}
			}
		}
		return
	}
	for x := 0; x < nxg; x++ {
		for y := 0; y < nyg; y++ {
			for z := 0; z < nzg; z++ {
				if !math.IsNaN(lattice[x][y][z]) {
					continue
				}
				best := -1
				bestDist := math.MaxInt64
				for i, v := range valid {
					d := absInt(v.x-x) + absInt(v.y-y) + absInt(v.z-z)
					if d < bestDist {
						bestDist = d
						best = i
					}
				}
				lattice[x][y][z] = lattice[valid[best].x][valid[best].y][valid[best].z]
			}
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// trilinear interpolates the sparse lattice at fractional grid
// coordinates (fx, fy, fz).
func trilinear(lattice [][][]float64, nxg, nyg, nzg int, fx, fy, fz float64) float64 {
	x0 := clampIdx(int(math.Floor(fx)), nxg)
	y0 := clampIdx(int(math.Floor(fy)), nyg)
	z0 := clampIdx(int(math.Floor(fz)), nzg)
	x1 := clampIdx(x0+1, nxg)
	y1 := clampIdx(y0+1, nyg)
	z1 := clampIdx(z0+1, nzg)

	tx := fx - math.Floor(fx)
	ty := fy - math.Floor(fy)
	tz := fz - math.Floor(fz)

	c00 := lerp(lattice[x0][y0][z0], lattice[x1][y0][z0], tx)
	c10 := lerp(lattice[x0][y1][z0], lattice[x1][y1][z0], tx)
	c01 := lerp(lattice[x0][y0][z1], lattice[x1][y0][z1], tx)
	c11 := lerp(lattice[x0][y1][z1], lattice[x1][y1][z1], tx)

	c0 := lerp(c00, c10, ty)
	c1 := lerp(c01, c11, ty)

	return lerp(c0, c1, tz)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
