package cube

// Region is an inclusive six-tuple (x_min, x_max, y_min, y_max, z_min,
// z_max), used for both sub-cube extraction (one Region) and flagging
// (many). Axis-collapsed regions (equal min and max on z, or on both x
// and y) are permitted and interpreted as channel or pixel flags
// (spec.md §3).
type Region struct {
	XMin, XMax int
	YMin, YMax int
	ZMin, ZMax int
}

// Valid reports whether min <= max on every axis.
func (r Region) Valid() bool {
	return r.XMin <= r.XMax && r.YMin <= r.YMax && r.ZMin <= r.ZMax
}

// Clip restricts r to the bounds of a cube of the given shape. The
// second return value is false if the clipped region is empty.
func (r Region) Clip(nx, ny, nz int) (Region, bool) {
	out := Region{
		XMin: max(r.XMin, 0), XMax: min(r.XMax, nx-1),
		YMin: max(r.YMin, 0), YMax: min(r.YMax, ny-1),
		ZMin: max(r.ZMin, 0), ZMax: min(r.ZMax, nz-1),
	}
	return out, out.Valid()
}

// TouchesSpatialEdge reports whether the region touches x=0, x=nx-1,
// y=0, or y=ny-1 (linker flag bit 1, spec.md §4.6).
func (r Region) TouchesSpatialEdge(nx, ny int) bool {
	return r.XMin == 0 || r.XMax == nx-1 || r.YMin == 0 || r.YMax == ny-1
}

// TouchesSpectralEdge reports whether the region touches z=0 or
// z=nz-1 (linker flag bit 2, spec.md §4.6).
func (r Region) TouchesSpectralEdge(nz int) bool {
	return r.ZMin == 0 || r.ZMax == nz-1
}
