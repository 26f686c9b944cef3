package wcs

import "testing"

func TestIdentityPassesThrough(t *testing.T) {
	var c Converter = Identity{}
	x, y, ok := c.ToPixel(12.5, -3.25)
	if !ok {
		t.Fatal("expected Identity conversion to always succeed")
	}
	if x != 12.5 || y != -3.25 {
		t.Fatalf("expected pixel-is-world passthrough, got (%v, %v)", x, y)
	}
}
