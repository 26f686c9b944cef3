package cube

// MaskElement is the constraint on mask voxel types: the transient
// 8-bit detection mask and the signed 32-bit label mask (spec.md §3).
// A generic type is used instead of a tagged variant per DESIGN NOTES
// §9, to keep the hot linker/S+C loops monomorphic.
type MaskElement interface {
	~int8 | ~int32
}

// MaskCube is a three-axis mask buffer parameterised over its element
// kind. The reserved "blank" code written by FlagRegions on a mask
// cube is supplied by the caller.
type MaskCube[T MaskElement] struct {
	Buf        []T
	NX, NY, NZ int
}

// NewMaskCube constructs a zero-filled mask cube of the given shape.
func NewMaskCube[T MaskElement](nx, ny, nz int) *MaskCube[T] {
	if nx < 1 || ny < 1 || nz < 1 {
		panic("cube: axis sizes must be >= 1")
	}
	return &MaskCube[T]{Buf: make([]T, nx*ny*nz), NX: nx, NY: ny, NZ: nz}
}

func (m *MaskCube[T]) Index(x, y, z int) int {
	return x + m.NX*(y+m.NY*z)
}

func (m *MaskCube[T]) InBounds(x, y, z int) bool {
	return x >= 0 && x < m.NX && y >= 0 && y < m.NY && z >= 0 && z < m.NZ
}

func (m *MaskCube[T]) Get(x, y, z int) T {
	return m.Buf[m.Index(x, y, z)]
}

func (m *MaskCube[T]) Set(x, y, z int, v T) {
	m.Buf[m.Index(x, y, z)] = v
}

func (m *MaskCube[T]) Fill(v T) {
	for i := range m.Buf {
		m.Buf[i] = v
	}
}

// FlagRegions sets every voxel within each region to blank, the
// caller's reserved "blank" code. Regions exceeding the cube are
// clipped silently (spec.md §4.3).
func (m *MaskCube[T]) FlagRegions(regions []Region, blank T) {
	for _, r := range regions {
		clipped, ok := r.Clip(m.NX, m.NY, m.NZ)
		if !ok {
			continue
		}
		for z := clipped.ZMin; z <= clipped.ZMax; z++ {
			for y := clipped.YMin; y <= clipped.YMax; y++ {
				for x := clipped.XMin; x <= clipped.XMax; x++ {
					m.Set(x, y, z, blank)
				}
			}
		}
	}
}

// CopyMask8To32 marks every nonzero voxel of an 8-bit detection mask
// as -1 in the corresponding position of a 32-bit label mask, without
// overwriting an existing negative label. Returns the number of
// voxels newly marked (spec.md §4.3 "copy_mask_8_to_32").
func CopyMask8To32(src *MaskCube[int8], dst *MaskCube[int32]) int {
	if src.NX != dst.NX || src.NY != dst.NY || src.NZ != dst.NZ {
		panic("cube: shape mismatch")
	}
	n := 0
	for i, v := range src.Buf {
		if v != 0 && dst.Buf[i] >= 0 {
			dst.Buf[i] = -1
			n++
		}
	}
	return n
}

// FilterMask32 relabels dst in place using labelMap: every voxel whose
// current label is a key of labelMap is replaced by the mapped value;
// every other positive label is zeroed out (spec.md §4.3
// "filter_mask_32", used to relabel after reliability filtering).
func FilterMask32(dst *MaskCube[int32], labelMap map[int32]int32) {
	for i, v := range dst.Buf {
		if v <= 0 {
			continue
		}
		if newLabel, ok := labelMap[v]; ok {
			dst.Buf[i] = newLabel
		} else {
			dst.Buf[i] = 0
		}
	}
}

// TwoDimMask collapses a mask cube along z, producing a new (nx, ny,
// 1) cube whose value at (x, y) is the maximum of |mask[x, y, z]|
// over z (spec.md §4.3 "two_dim_mask").
func TwoDimMask[T MaskElement](src *MaskCube[T]) *MaskCube[T] {
	out := NewMaskCube[T](src.NX, src.NY, 1)
	for y := 0; y < src.NY; y++ {
		for x := 0; x < src.NX; x++ {
			var best T
			for z := 0; z < src.NZ; z++ {
				v := src.Get(x, y, z)
				if v < 0 {
					v = -v
				}
				if v > best {
					best = v
				}
			}
			out.Set(x, y, 0, best)
		}
	}
	return out
}
