// Package ingest realises spec.md §6's "Cube ingestion" collaborator
// interface: either FITS-mode (reader supplies the buffer, header, and
// axis sizes) or memory-mode (caller supplies a pre-allocated buffer
// and expected axis sizes). FITS I/O itself is out of core scope
// (spec.md §1); Source.LoadFITS is an interface method with no
// concrete implementation in this module.
package ingest

import (
	"fmt"

	"github.com/banshee-data/sofind/internal/cube"
)

// Source is the minimal ingestion surface the core consumes.
type Source interface {
	// LoadMemory wraps a pre-allocated double-precision voxel buffer
	// as a DataCube, optionally restricted to region.
	LoadMemory(buf []float64, nx, ny, nz int, region *cube.Region) (*cube.DataCube, error)

	// LoadFITS is a collaborator-supplied FITS reader; this module
	// provides no concrete implementation (spec.md §1 excludes FITS
	// I/O from core scope).
	LoadFITS(path string, region *cube.Region) (*cube.DataCube, error)
}

// MemorySource is the concrete, in-scope half of Source: it accepts an
// already-resident voxel buffer and produces a DataCube, rewriting
// CRPIXn/NAXISn on a region cut per spec.md §6.
type MemorySource struct{}

func (MemorySource) LoadMemory(buf []float64, nx, ny, nz int, region *cube.Region) (*cube.DataCube, error) {
	if len(buf) != nx*ny*nz {
		return nil, fmt.Errorf("ingest: buffer length %d does not match nx*ny*nz=%d", len(buf), nx*ny*nz)
	}
	full := cube.NewBlank(nx, ny, nz)
	for i, v := range buf {
		full.Buf[i] = float32(v)
	}
	if region == nil {
		return full, nil
	}
	clipped, ok := region.Clip(nx, ny, nz)
	if !ok {
		return nil, fmt.Errorf("ingest: region %+v does not intersect cube (%d,%d,%d)", *region, nx, ny, nz)
	}
	return full.Cutout(clipped), nil
}

func (MemorySource) LoadFITS(path string, region *cube.Region) (*cube.DataCube, error) {
	return nil, fmt.Errorf("ingest: FITS loading is out of scope; supply a collaborator Source implementation")
}
