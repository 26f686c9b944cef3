// Package cube implements the three-axis voxel container (spec.md
// §4.3): a single-precision DataCube for intensities and a generic
// MaskCube for 8-bit detection masks and 32-bit label masks, both
// indexed as buf[x + nx*(y + ny*z)] with x fastest (spec.md §3).
package cube

import "math"

// DataCube owns a contiguous float32 voxel buffer plus a header
// keyword map. A non-finite voxel represents "missing" data (spec.md
// §3 "Voxel").
type DataCube struct {
	Buf            []float32
	NX, NY, NZ     int
	Header         *Header
}

// NewBlank constructs a zero-filled cube of the given shape.
func NewBlank(nx, ny, nz int) *DataCube {
	if nx < 1 || ny < 1 || nz < 1 {
		panic("cube: axis sizes must be >= 1")
	}
	return &DataCube{
		Buf:    make([]float32, nx*ny*nz),
		NX:     nx,
		NY:     ny,
		NZ:     nz,
		Header: NewHeader(),
	}
}

// NewFromBuffer wraps a pre-allocated buffer without copying
// (memory-mode ingestion, spec.md §6). The buffer length must equal
// nx*ny*nz.
func NewFromBuffer(buf []float32, nx, ny, nz int) *DataCube {
	if len(buf) != nx*ny*nz {
		panic("cube: buffer length does not match axis sizes")
	}
	return &DataCube{Buf: buf, NX: nx, NY: ny, NZ: nz, Header: NewHeader()}
}

// Clone returns a deep copy of the cube, including the header.
func (c *DataCube) Clone() *DataCube {
	out := &DataCube{
		Buf:    make([]float32, len(c.Buf)),
		NX:     c.NX,
		NY:     c.NY,
		NZ:     c.NZ,
		Header: c.Header.Clone(),
	}
	copy(out.Buf, c.Buf)
	return out
}

// Index returns the flat buffer offset for voxel (x, y, z).
func (c *DataCube) Index(x, y, z int) int {
	return x + c.NX*(y+c.NY*z)
}

// InBounds reports whether (x, y, z) addresses a voxel of the cube.
func (c *DataCube) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.NX && y >= 0 && y < c.NY && z >= 0 && z < c.NZ
}

// Get returns the voxel value at (x, y, z).
func (c *DataCube) Get(x, y, z int) float32 {
	return c.Buf[c.Index(x, y, z)]
}

// Set writes the voxel value at (x, y, z).
func (c *DataCube) Set(x, y, z int, v float32) {
	c.Buf[c.Index(x, y, z)] = v
}

// Fill sets every voxel to v.
func (c *DataCube) Fill(v float32) {
	for i := range c.Buf {
		c.Buf[i] = v
	}
}

// Add adds other element-wise in place. Panics if shapes differ.
func (c *DataCube) Add(other *DataCube) {
	c.mustMatch(other)
	for i := range c.Buf {
		c.Buf[i] += other.Buf[i]
	}
}

// MultiplyByScalar multiplies every voxel by k in place.
func (c *DataCube) MultiplyByScalar(k float32) {
	for i := range c.Buf {
		c.Buf[i] *= k
	}
}

// Divide divides c by other element-wise in place, with plain IEEE
// division: a zero divisor gives +/-Inf (NaN for 0/0), a NaN divisor
// gives NaN, and an infinite divisor gives zero.
func (c *DataCube) Divide(other *DataCube) {
	c.mustMatch(other)
	for i := range c.Buf {
		c.Buf[i] /= other.Buf[i]
	}
}

// ApplyWeights multiplies every voxel by sqrt(w), element-wise
// (spec.md §4.3 "apply_weights... element-wise multiply by sqrt(w)").
func (c *DataCube) ApplyWeights(w *DataCube) {
	c.mustMatch(w)
	for i := range c.Buf {
		c.Buf[i] *= float32(math.Sqrt(float64(w.Buf[i])))
	}
}

func (c *DataCube) mustMatch(other *DataCube) {
	if c.NX != other.NX || c.NY != other.NY || c.NZ != other.NZ {
		panic("cube: shape mismatch")
	}
}

// Cutout extracts the sub-volume described by r as a new cube, with
// CRPIXn/NAXISn rewritten on the copied header (spec.md §6).
func (c *DataCube) Cutout(r Region) *DataCube {
	clipped, ok := r.Clip(c.NX, c.NY, c.NZ)
	if !ok {
		panic("cube: empty region cutout")
	}
	nx := clipped.XMax - clipped.XMin + 1
	ny := clipped.YMax - clipped.YMin + 1
	nz := clipped.ZMax - clipped.ZMin + 1
	out := NewBlank(nx, ny, nz)
	out.Header = c.Header.Clone()
	out.Header.RewriteRegionKeywords(clipped)
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				out.Set(x, y, z, c.Get(x+clipped.XMin, y+clipped.YMin, z+clipped.ZMin))
			}
		}
	}
	return out
}

// FlagRegions sets every voxel within each region to non-finite
// (spec.md §4.3). Regions exceeding the cube are clipped silently.
// Applying the same region set twice is idempotent (spec.md §8
// property 6): a voxel already NaN stays NaN.
func (c *DataCube) FlagRegions(regions []Region) {
	for _, r := range regions {
		clipped, ok := r.Clip(c.NX, c.NY, c.NZ)
		if !ok {
			continue
		}
		for z := clipped.ZMin; z <= clipped.ZMax; z++ {
			for y := clipped.YMin; y <= clipped.YMax; y++ {
				for x := clipped.XMin; x <= clipped.XMax; x++ {
					c.Set(x, y, z, float32(math.NaN()))
				}
			}
		}
	}
}

// FlagInfinity walks the cube, replaces any +/-Inf voxel with NaN, and
// returns one Region per spectral plane that contained at least one
// infinity (spec.md §4.3 "flag_infinity").
func (c *DataCube) FlagInfinity() []Region {
	var flagged []Region
	for z := 0; z < c.NZ; z++ {
		found := false
		for y := 0; y < c.NY; y++ {
			for x := 0; x < c.NX; x++ {
				idx := c.Index(x, y, z)
				if math.IsInf(float64(c.Buf[idx]), 0) {
					c.Buf[idx] = float32(math.NaN())
					found = true
				}
			}
		}
		if found {
			flagged = append(flagged, Region{XMin: 0, XMax: c.NX - 1, YMin: 0, YMax: c.NY - 1, ZMin: z, ZMax: z})
		}
	}
	return flagged
}

// GlobalRMS returns the root-mean-square of every finite voxel, used
// by the linker to normalise flux to unitless signal-to-noise
// (spec.md §4.6).
func (c *DataCube) GlobalRMS() float64 {
	var sumSq float64
	var n int64
	for _, v := range c.Buf {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		sumSq += f * f
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return math.Sqrt(sumSq / float64(n))
}

// TwoDimMask is defined in mask.go, since it takes and returns a
// MaskCube.
