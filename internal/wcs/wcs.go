// Package wcs realises spec.md §6's "World-coordinate conversion"
// collaborator interface: converting (longitude, latitude) to pixel
// (x, y) using the cube's header. The core treats a failed conversion
// as non-fatal — the caller discards the affected catalogue entry with
// a warning rather than aborting.
package wcs

// Converter converts a world-coordinate position to a pixel position.
// ok is false when the conversion cannot be performed (e.g. the header
// lacks the necessary keywords, or the projection is singular at that
// position); the caller treats this as non-fatal.
type Converter interface {
	ToPixel(longitude, latitude float64) (x, y float64, ok bool)
}

// Identity is the pixel-is-world Converter used by tests and by
// callers with no real WCS: it treats (longitude, latitude) as
// already being in pixel units.
type Identity struct{}

func (Identity) ToPixel(longitude, latitude float64) (float64, float64, bool) {
	return longitude, latitude, true
}
