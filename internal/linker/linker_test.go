package linker

import (
	"testing"

	"github.com/banshee-data/sofind/internal/cube"
)

func TestRunLabelsSingleVoxelSource(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	data.Set(4, 4, 4, 100.0)

	mask := cube.NewMaskCube[int8](n, n, n)
	mask.Set(4, 4, 4, 1)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1})
	if len(objs) != 1 {
		t.Fatalf("expected exactly one object, got %d", len(objs))
	}
	if objs[0].NPix != 1 {
		t.Fatalf("expected a single-voxel object, got NPix=%d", objs[0].NPix)
	}
	if labels.Get(4, 4, 4) != objs[0].Label {
		t.Fatalf("expected label cube to carry the object's label")
	}
}

func TestRunMergesChebyshevNeighbours(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	mask := cube.NewMaskCube[int8](n, n, n)
	// Two voxels diagonally adjacent (Chebyshev distance 1) should
	// merge into a single object under radius (1,1,1).
	mask.Set(2, 2, 2, 1)
	mask.Set(3, 3, 3, 1)
	data.Set(2, 2, 2, 5.0)
	data.Set(3, 3, 3, 5.0)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1})
	if len(objs) != 1 {
		t.Fatalf("expected the diagonal pair to merge into one object, got %d", len(objs))
	}
	if objs[0].NPix != 2 {
		t.Fatalf("expected NPix=2, got %d", objs[0].NPix)
	}
}

func TestRunRespectsMinSizeFilter(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	mask := cube.NewMaskCube[int8](n, n, n)
	mask.Set(1, 1, 1, 1)
	data.Set(1, 1, 1, 5.0)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1, MinSizeX: 2, MinSizeY: 2, MinSizeZ: 2})
	if len(objs) != 0 {
		t.Fatalf("expected the single-voxel object to be filtered out, got %d", len(objs))
	}
	if labels.Get(1, 1, 1) != 0 {
		t.Fatal("expected the discarded object's label to be erased from the label cube")
	}
}

func TestRunDiscardsNegativeUnlessKept(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	mask := cube.NewMaskCube[int8](n, n, n)
	mask.Set(1, 1, 1, 1)
	data.Set(1, 1, 1, -5.0)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1})
	if len(objs) != 0 {
		t.Fatalf("expected a negative-flux object to be discarded by default, got %d", len(objs))
	}

	labels2 := cube.NewMaskCube[int32](n, n, n)
	objs2 := Run(data, mask, labels2, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1, KeepNegative: true})
	if len(objs2) != 1 {
		t.Fatalf("expected a negative-flux object to be kept with KeepNegative, got %d", len(objs2))
	}
}

func TestRunFlagsSpatialAndSpectralEdges(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	mask := cube.NewMaskCube[int8](n, n, n)
	mask.Set(0, 3, 0, 1)
	data.Set(0, 3, 0, 5.0)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1})
	if len(objs) != 1 {
		t.Fatalf("expected one object, got %d", len(objs))
	}
	if objs[0].Flags&FlagTouchesSpatialEdge == 0 {
		t.Error("expected spatial edge flag to be set")
	}
	if objs[0].Flags&FlagTouchesSpectralEdge == 0 {
		t.Error("expected spectral edge flag to be set")
	}
}

func TestRunComputesFluxWeightedCentroid(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	mask := cube.NewMaskCube[int8](n, n, n)
	mask.Set(2, 2, 2, 1)
	mask.Set(3, 2, 2, 1)
	data.Set(2, 2, 2, 1.0)
	data.Set(3, 2, 2, 3.0)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1})
	if len(objs) != 1 {
		t.Fatalf("expected one object, got %d", len(objs))
	}
	// Weighted mean x = (1*2 + 3*3) / 4 = 2.75
	want := 2.75
	if got := objs[0].Centroid()[0]; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("expected flux-weighted centroid x=%.4f, got %.4f", want, got)
	}
}

func TestRunTracksFluxExtremesForAllPositiveObject(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	mask := cube.NewMaskCube[int8](n, n, n)
	mask.Set(2, 2, 2, 1)
	mask.Set(3, 2, 2, 1)
	data.Set(2, 2, 2, 1.0)
	data.Set(3, 2, 2, 3.0)
	labels := cube.NewMaskCube[int32](n, n, n)

	objs := Run(data, mask, labels, Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1})
	if len(objs) != 1 {
		t.Fatalf("expected one object, got %d", len(objs))
	}
	// Every voxel in this object carries positive flux, so f_min must
	// track the smallest observed flux (1.0), not an unconditional 0.
	if got := objs[0].FMin; got != 1.0 {
		t.Errorf("expected f_min=1.0, got %v", got)
	}
	if got := objs[0].FMax; got != 3.0 {
		t.Errorf("expected f_max=3.0, got %v", got)
	}
}

func TestNormalizeFluxDividesByGlobalRMS(t *testing.T) {
	data := cube.NewBlank(4, 4, 4)
	for i := range data.Buf {
		data.Buf[i] = 2.0
	}
	objs := []*ObjectParams{{FMin: 4.0, FMax: 4.0, FSum: 8.0}}
	NormalizeFlux(objs, data)
	if objs[0].FSum != 4.0 {
		t.Fatalf("expected FSum normalised by RMS=2, got %v", objs[0].FSum)
	}
}
