package cube

import (
	"math"
	"testing"
)

func TestNewBlankAndIndex(t *testing.T) {
	c := NewBlank(3, 4, 5)
	if len(c.Buf) != 60 {
		t.Fatalf("expected buffer length 60, got %d", len(c.Buf))
	}
	c.Set(1, 2, 3, 7.5)
	if got := c.Get(1, 2, 3); got != 7.5 {
		t.Errorf("expected 7.5, got %v", got)
	}
	if idx := c.Index(1, 2, 3); idx != 1+3*(2+4*3) {
		t.Errorf("unexpected index %d", idx)
	}
}

func TestFlagRegionsIdempotent(t *testing.T) {
	c := NewBlank(8, 8, 8)
	c.Fill(1.0)
	region := []Region{{XMin: 2, XMax: 3, YMin: 0, YMax: 7, ZMin: 0, ZMax: 7}}

	c.FlagRegions(region)
	first := c.Clone()

	c.FlagRegions(region)
	for i := range c.Buf {
		aNaN := math.IsNaN(float64(c.Buf[i]))
		bNaN := math.IsNaN(float64(first.Buf[i]))
		if aNaN != bNaN || (!aNaN && c.Buf[i] != first.Buf[i]) {
			t.Fatalf("second application of FlagRegions changed voxel %d", i)
		}
	}

	for x := 2; x <= 3; x++ {
		for y := 0; y < 8; y++ {
			for z := 0; z < 8; z++ {
				if !math.IsNaN(float64(c.Get(x, y, z))) {
					t.Fatalf("voxel (%d,%d,%d) should be flagged", x, y, z)
				}
			}
		}
	}
	if math.IsNaN(float64(c.Get(0, 0, 0))) {
		t.Fatal("voxel (0,0,0) should not be flagged")
	}
}

func TestCutoutRewritesHeader(t *testing.T) {
	c := NewBlank(10, 10, 10)
	c.Header.Set("CRPIX1", HeaderFloat(5.0))
	c.Header.Set("CRPIX2", HeaderFloat(5.0))
	c.Header.Set("CRPIX3", HeaderFloat(5.0))
	c.Set(4, 4, 4, 42)

	sub := c.Cutout(Region{XMin: 2, XMax: 6, YMin: 2, YMax: 6, ZMin: 2, ZMax: 6})
	if sub.NX != 5 || sub.NY != 5 || sub.NZ != 5 {
		t.Fatalf("unexpected cutout shape (%d,%d,%d)", sub.NX, sub.NY, sub.NZ)
	}
	if got := sub.Get(2, 2, 2); got != 42 {
		t.Errorf("expected 42 at cutout-local (2,2,2), got %v", got)
	}
	v, _ := sub.Header.Get("CRPIX1")
	if f, _ := v.Float(); f != 3.0 {
		t.Errorf("expected CRPIX1=3.0 after cutout, got %v", f)
	}
	naxis, ok := sub.Header.Get("NAXIS1")
	if !ok {
		t.Fatal("expected NAXIS1 to be set")
	}
	if i, _ := naxis.Int(); i != 5 {
		t.Errorf("expected NAXIS1=5, got %v", i)
	}
}

func TestCopyMask8To32(t *testing.T) {
	m8 := NewMaskCube[int8](4, 4, 4)
	m32 := NewMaskCube[int32](4, 4, 4)
	m8.Set(1, 1, 1, 1)
	m32.Set(2, 2, 2, -1) // pre-existing negative label

	n := CopyMask8To32(m8, m32)
	if n != 1 {
		t.Errorf("expected 1 newly marked voxel, got %d", n)
	}
	if m32.Get(1, 1, 1) != -1 {
		t.Errorf("expected (1,1,1) marked -1, got %d", m32.Get(1, 1, 1))
	}
	if m32.Get(2, 2, 2) != -1 {
		t.Errorf("pre-existing negative label should be untouched")
	}
}

func TestFilterMask32(t *testing.T) {
	m := NewMaskCube[int32](2, 2, 2)
	m.Set(0, 0, 0, 1)
	m.Set(1, 0, 0, 2)
	m.Set(0, 1, 0, 3)

	FilterMask32(m, map[int32]int32{1: 1, 3: 2})

	if m.Get(0, 0, 0) != 1 {
		t.Errorf("expected label 1 preserved")
	}
	if m.Get(1, 0, 0) != 0 {
		t.Errorf("expected label 2 dropped to 0")
	}
	if m.Get(0, 1, 0) != 2 {
		t.Errorf("expected label 3 remapped to 2")
	}
}

func TestTwoDimMask(t *testing.T) {
	m := NewMaskCube[int32](2, 2, 3)
	m.Set(0, 0, 0, 1)
	m.Set(0, 0, 1, -5)
	m.Set(0, 0, 2, 2)

	out := TwoDimMask(m)
	if out.NZ != 1 {
		t.Fatalf("expected collapsed z axis of 1, got %d", out.NZ)
	}
	if got := out.Get(0, 0, 0); got != 5 {
		t.Errorf("expected max abs value 5, got %d", got)
	}
}
