package pipeline

import (
	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/dilation"
	"github.com/banshee-data/sofind/internal/linker"
	"github.com/banshee-data/sofind/internal/noise"
	"github.com/banshee-data/sofind/internal/reliability"
	"github.com/banshee-data/sofind/internal/scfind"
	"github.com/banshee-data/sofind/internal/stats"
	"github.com/banshee-data/sofind/internal/threshold"
)

// Options is the Go-native configuration entry point for Run,
// constructed either directly or via paramstore.Store.Options()
// (SPEC_FULL.md §3.9).
type Options struct {
	Region *cube.Region

	FlagInfinity bool

	ContinuumEnable bool
	ContinuumOrder  int
	ContinuumRipple int

	ScaleNoiseEnable bool
	ScaleNoiseMode   string // "spectral" or "local"
	ScaleNoiseLocal  noise.LocalParams
	ScaleNoiseSpec   noise.Statistic
	ScaleNoiseRange  stats.Range

	AverageEnable bool
	AverageRadius int

	SCFindEnable bool
	SCFind       scfind.Params

	ThresholdEnable bool
	Threshold       threshold.Params

	Linker linker.Params

	ReliabilityEnable bool
	Reliability       reliability.Params

	DilationEnable bool
	Dilation       dilation.Params
}

// Validate checks the cross-stage invariants spec.md §7 names as
// user-input errors — in particular, reliability filtering is
// incompatible with linker.keepNegative, since a reliability model
// fitted on a negative population makes no sense once negative objects
// are retained as candidate sources, and at least one finder must run
// or the linker would always see an empty mask.
func (o *Options) Validate() error {
	if o.ReliabilityEnable && o.Linker.KeepNegative {
		return NewError(KindUserInput, "reliability filtering is incompatible with linker.keepNegative")
	}
	if !o.SCFindEnable && !o.ThresholdEnable {
		return NewError(KindUserInput, "at least one of scfind or threshold must be enabled")
	}
	return nil
}
