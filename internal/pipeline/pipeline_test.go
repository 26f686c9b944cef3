package pipeline

import (
	"math/rand"
	"testing"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/linker"
	"github.com/banshee-data/sofind/internal/noise"
	"github.com/banshee-data/sofind/internal/scfind"
	"github.com/banshee-data/sofind/internal/stats"
)

func defaultOptions() Options {
	return Options{
		SCFindEnable: true,
		SCFind: scfind.Params{
			Kernels:     scfind.Kernels{SpatialSigmas: []float64{0}, SpectralLengths: []int{0}},
			Threshold:   5.0,
			Replacement: 2.0,
			Statistic:   noise.StatisticStd,
			FluxRange:   stats.RangeFull,
		},
		Linker: linker.Params{RadiusX: 1, RadiusY: 1, RadiusZ: 1},
	}
}

func TestRunDetectsSingleVoxelSource(t *testing.T) {
	const n = 10
	data := cube.NewBlank(n, n, n)
	r := rand.New(rand.NewSource(5))
	for i := range data.Buf {
		data.Buf[i] = float32(r.NormFloat64())
	}
	data.Set(5, 5, 5, 100.0)

	ctx := NewContext(0, 1)
	result, err := Run(ctx, data, defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Objects) == 0 {
		t.Fatal("expected at least one retained object")
	}
	if result.Labels.Get(5, 5, 5) == 0 {
		t.Error("expected the injected source to carry a positive label")
	}
}

func TestRunReturnsNoSourceOnEmptyMask(t *testing.T) {
	const n = 8
	data := cube.NewBlank(n, n, n)
	for i := range data.Buf {
		data.Buf[i] = 0
	}

	opts := defaultOptions()
	opts.SCFind.Threshold = 1e9 // impossibly high, nothing will ever be flagged

	ctx := NewContext(0, 1)
	_, err := Run(ctx, data, opts)
	if err == nil {
		t.Fatal("expected a no-source error")
	}
	pipelineErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected a *pipeline.Error, got %T", err)
	}
	if pipelineErr.Kind() != KindNoSource {
		t.Fatalf("expected KindNoSource, got %v", pipelineErr.Kind())
	}
	if pipelineErr.ExitCode() != 8 {
		t.Fatalf("expected exit code 8, got %d", pipelineErr.ExitCode())
	}
}

func TestRunRejectsReliabilityWithKeepNegative(t *testing.T) {
	opts := defaultOptions()
	opts.Linker.KeepNegative = true
	opts.ReliabilityEnable = true

	ctx := NewContext(0, 1)
	data := cube.NewBlank(4, 4, 4)
	_, err := Run(ctx, data, opts)
	if err == nil {
		t.Fatal("expected a user-input error")
	}
	pipelineErr, ok := err.(*Error)
	if !ok || pipelineErr.Kind() != KindUserInput {
		t.Fatalf("expected a KindUserInput *pipeline.Error, got %v", err)
	}
}

func TestRunRejectsNilCube(t *testing.T) {
	ctx := NewContext(0, 1)
	_, err := Run(ctx, nil, defaultOptions())
	if err == nil {
		t.Fatal("expected an error for a nil cube")
	}
}
