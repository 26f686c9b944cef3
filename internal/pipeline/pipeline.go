// Package pipeline sequences the core's stages per spec.md §2's data
// flow: ingested cube -> optional flagging -> optional continuum
// subtraction -> optional noise-scaling -> optional spatial averaging
// -> S+C and/or threshold finder -> linker -> optional reliability
// filter -> optional mask dilation -> parameterisation -> emission.
package pipeline

import (
	"github.com/banshee-data/sofind/internal/average"
	"github.com/banshee-data/sofind/internal/continuum"
	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/dilation"
	"github.com/banshee-data/sofind/internal/linker"
	"github.com/banshee-data/sofind/internal/noise"
	"github.com/banshee-data/sofind/internal/reliability"
	"github.com/banshee-data/sofind/internal/scfind"
	"github.com/banshee-data/sofind/internal/threshold"
)

// Result is everything Run hands back to a caller: the final labelled
// mask, the (possibly transformed) data cube, and the retained object
// table (spec.md §6 "Mask emission ... the core exposes the final
// labelled mask cube and the cube buffer; emission of derivative
// artefacts is delegated").
type Result struct {
	Data    *cube.DataCube
	Mask8   *cube.MaskCube[int8]
	Labels  *cube.MaskCube[int32]
	Objects []*linker.ObjectParams
}

// Run sequences the full pipeline over data, owning exactly one
// working data cube and one working mask cube from this point until
// the caller emits the result (spec.md §3 "Lifecycle"). data is
// mutated in place by every enabled transform stage.
func Run(ctx *Context, data *cube.DataCube, opts Options) (*Result, error) {
	if data == nil {
		return nil, NewError(KindNullArgument, "pipeline: data cube is nil")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ctx.logf("starting run on cube (%d,%d,%d)", data.NX, data.NY, data.NZ)

	if opts.FlagInfinity {
		regions := data.FlagInfinity()
		if len(regions) > 0 {
			ctx.logf("flagged %d plane(s) containing infinities", len(regions))
		}
	}

	if opts.ContinuumEnable {
		if err := continuum.Subtract(data, continuum.Params{
			PolyOrder:   opts.ContinuumOrder,
			RippleShift: opts.ContinuumRipple,
		}); err != nil {
			return nil, WrapError(KindUserInput, err, "pipeline: continuum subtraction failed")
		}
	}

	if opts.ScaleNoiseEnable {
		switch opts.ScaleNoiseMode {
		case "local":
			noise.ScaleNoiseLocal(data, opts.ScaleNoiseLocal)
		default:
			noise.ScaleNoiseSpec(data, opts.ScaleNoiseSpec, opts.ScaleNoiseRange)
		}
	}

	if opts.AverageEnable {
		average.Run(data, average.Params{Radius: opts.AverageRadius})
	}

	mask := cube.NewMaskCube[int8](data.NX, data.NY, data.NZ)
	if opts.SCFindEnable {
		opts.SCFind.Pool = ctx.Pool
		if err := scfind.Run(data, mask, opts.SCFind); err != nil {
			return nil, WrapError(KindUserInput, err, "pipeline: scfind stage failed")
		}
	}
	if opts.ThresholdEnable {
		if err := threshold.Run(data, mask, opts.Threshold); err != nil {
			return nil, WrapError(KindUserInput, err, "pipeline: threshold stage failed")
		}
	}

	labels := cube.NewMaskCube[int32](data.NX, data.NY, data.NZ)
	objects := linker.Run(data, mask, labels, opts.Linker)
	linker.NormalizeFlux(objects, data)

	if len(objects) == 0 {
		return nil, NewError(KindNoSource, "pipeline: linker produced no objects")
	}

	if opts.ReliabilityEnable {
		opts.Reliability.Pool = ctx.Pool
		labelMap, err := reliability.Run(objects, opts.Reliability)
		if err != nil {
			return nil, WrapError(KindUserInput, err, "pipeline: reliability stage failed")
		}
		reliability.ApplyFilter(labels, labelMap)
		objects = filterObjects(objects, labelMap)

		if len(objects) == 0 {
			return nil, NewError(KindNoSource, "pipeline: reliability filter produced no objects")
		}
	}

	if opts.DilationEnable {
		dilation.Run(data, labels, objects, opts.Dilation)
	}

	ctx.logf("finished run: %d object(s) retained", len(objects))

	return &Result{
		Data:    data,
		Mask8:   mask,
		Labels:  labels,
		Objects: objects,
	}, nil
}

func filterObjects(objects []*linker.ObjectParams, labelMap map[int32]int32) []*linker.ObjectParams {
	kept := objects[:0]
	for _, o := range objects {
		if newLabel, ok := labelMap[o.Label]; ok {
			o.Label = newLabel
			kept = append(kept, o)
		}
	}
	return kept
}
