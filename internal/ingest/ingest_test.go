package ingest

import (
	"testing"

	"github.com/banshee-data/sofind/internal/cube"
)

func TestLoadMemoryWrapsBuffer(t *testing.T) {
	buf := make([]float64, 2*2*2)
	for i := range buf {
		buf[i] = float64(i)
	}
	var src Source = MemorySource{}
	c, err := src.LoadMemory(buf, 2, 2, 2, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Get(1, 1, 1) != 7.0 {
		t.Fatalf("expected voxel (1,1,1)=7, got %v", c.Get(1, 1, 1))
	}
}

func TestLoadMemoryRejectsLengthMismatch(t *testing.T) {
	var src Source = MemorySource{}
	_, err := src.LoadMemory(make([]float64, 3), 2, 2, 2, nil)
	if err == nil {
		t.Fatal("expected an error for a mismatched buffer length")
	}
}

func TestLoadMemoryAppliesRegion(t *testing.T) {
	buf := make([]float64, 4*4*4)
	for i := range buf {
		buf[i] = float64(i)
	}
	var src Source = MemorySource{}
	region := &cube.Region{XMin: 1, XMax: 2, YMin: 1, YMax: 2, ZMin: 0, ZMax: 3}
	c, err := src.LoadMemory(buf, 4, 4, 4, region)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.NX != 2 || c.NY != 2 || c.NZ != 4 {
		t.Fatalf("expected a (2,2,4) cut-out, got (%d,%d,%d)", c.NX, c.NY, c.NZ)
	}
}

func TestLoadFITSIsUnimplemented(t *testing.T) {
	var src Source = MemorySource{}
	if _, err := src.LoadFITS("foo.fits", nil); err == nil {
		t.Fatal("expected LoadFITS to report it is out of scope")
	}
}
