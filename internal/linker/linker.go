package linker

import (
	"github.com/banshee-data/sofind/internal/cube"
)

// Params configures Run (spec.md §4.6 and §6's linker.* keys).
type Params struct {
	RadiusX, RadiusY, RadiusZ int
	MinSizeX, MinSizeY, MinSizeZ int
	MaxSizeX, MaxSizeY, MaxSizeZ int
	KeepNegative                 bool
}

func (p Params) sizeOK(o *ObjectParams) bool {
	dx := o.XMax - o.XMin + 1
	dy := o.YMax - o.YMin + 1
	dz := o.ZMax - o.ZMin + 1
	if p.MinSizeX > 0 && dx < p.MinSizeX {
		return false
	}
	if p.MinSizeY > 0 && dy < p.MinSizeY {
		return false
	}
	if p.MinSizeZ > 0 && dz < p.MinSizeZ {
		return false
	}
	if p.MaxSizeX > 0 && dx > p.MaxSizeX {
		return false
	}
	if p.MaxSizeY > 0 && dy > p.MaxSizeY {
		return false
	}
	if p.MaxSizeZ > 0 && dz > p.MaxSizeZ {
		return false
	}
	return true
}

// seed is a single pending voxel on the flood-fill stack.
type seed struct{ x, y, z int }

// lifoStack is the single reusable growable buffer DESIGN NOTES §9
// calls for: allocated once per Run call and reset between seeds
// rather than reallocated, growth doubles capacity.
type lifoStack struct {
	buf []seed
}

func (s *lifoStack) push(x, y, z int) {
	s.buf = append(s.buf, seed{x, y, z})
}

func (s *lifoStack) pop() (seed, bool) {
	n := len(s.buf)
	if n == 0 {
		return seed{}, false
	}
	v := s.buf[n-1]
	s.buf = s.buf[:n-1]
	return v, true
}

func (s *lifoStack) reset() {
	s.buf = s.buf[:0]
}

// Run performs the connected-component labelling of spec.md §4.6: mask
// is an 8-bit detection mask (nonzero marks a candidate voxel); labels
// receives a 32-bit signed label per retained object (positive
// sequential labels starting at 1); data supplies flux values for
// per-object statistics. Run is strictly serial (spec.md §5) — the
// flood fill is order-dependent and never parallelised.
//
// Objects failing the size or positivity gates are discarded and their
// voxels zeroed in labels; the 8-bit mask is not modified.
func Run(data *cube.DataCube, mask *cube.MaskCube[int8], labels *cube.MaskCube[int32], p Params) []*ObjectParams {
	nx, ny, nz := data.NX, data.NY, data.NZ
	var objects []*ObjectParams
	var nextLabel int32 = 1

	stack := &lifoStack{}

	for z0 := 0; z0 < nz; z0++ {
		for y0 := 0; y0 < ny; y0++ {
			for x0 := 0; x0 < nx; x0++ {
				if mask.Get(x0, y0, z0) == 0 || labels.Get(x0, y0, z0) != 0 {
					continue
				}

				label := nextLabel
				obj := newObjectParams(label)
				stack.reset()
				stack.push(x0, y0, z0)
				labels.Set(x0, y0, z0, label)

				for {
					s, ok := stack.pop()
					if !ok {
						break
					}
					flux := float64(data.Get(s.x, s.y, s.z))
					nonFinite := isNonFinite(flux)
					obj.Accumulate(s.x, s.y, s.z, flux, nonFinite)

					for dz := -p.RadiusZ; dz <= p.RadiusZ; dz++ {
						for dy := -p.RadiusY; dy <= p.RadiusY; dy++ {
							for dx := -p.RadiusX; dx <= p.RadiusX; dx++ {
								if dx == 0 && dy == 0 && dz == 0 {
									continue
								}
								nxp, nyp, nzp := s.x+dx, s.y+dy, s.z+dz
								if nxp < 0 || nxp >= nx || nyp < 0 || nyp >= ny || nzp < 0 || nzp >= nz {
									continue
								}
								if mask.Get(nxp, nyp, nzp) == 0 || labels.Get(nxp, nyp, nzp) != 0 {
									continue
								}
								labels.Set(nxp, nyp, nzp, label)
								stack.push(nxp, nyp, nzp)
							}
						}
					}
				}

				setEdgeFlags(obj, nx, ny, nz)

				if !p.sizeOK(obj) || (!p.KeepNegative && obj.FSum < 0) {
					eraseLabel(labels, label, obj)
					continue
				}

				obj.Label = nextLabel
				nextLabel++
				objects = append(objects, obj)
			}
		}
	}

	return objects
}

func isNonFinite(v float64) bool {
	return v != v || v > 1e300 || v < -1e300
}

func setEdgeFlags(o *ObjectParams, nx, ny, nz int) {
	if o.XMin == 0 || o.YMin == 0 || o.XMax == nx-1 || o.YMax == ny-1 {
		o.Flags |= FlagTouchesSpatialEdge
	}
	if o.ZMin == 0 || o.ZMax == nz-1 {
		o.Flags |= FlagTouchesSpectralEdge
	}
}

// eraseLabel zeroes every labelled voxel in the object's bounding box
// that carries this label, reclaiming it for a future seed.
func eraseLabel(labels *cube.MaskCube[int32], label int32, o *ObjectParams) {
	for z := o.ZMin; z <= o.ZMax; z++ {
		for y := o.YMin; y <= o.YMax; y++ {
			for x := o.XMin; x <= o.XMax; x++ {
				if labels.Get(x, y, z) == label {
					labels.Set(x, y, z, 0)
				}
			}
		}
	}
}

// NormalizeFlux divides every object's flux statistics by the global
// RMS of data, per spec.md §4.6's final normalisation step.
func NormalizeFlux(objects []*ObjectParams, data *cube.DataCube) {
	rms := data.GlobalRMS()
	if rms == 0 || rms != rms {
		return
	}
	for _, o := range objects {
		o.FMin /= rms
		o.FMax /= rms
		o.FSum /= rms
		for i := range o.centroidSum {
			o.centroidSum[i] /= rms
		}
	}
}
