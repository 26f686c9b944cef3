package paramstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/sofind/internal/cube"
	"github.com/banshee-data/sofind/internal/dilation"
	"github.com/banshee-data/sofind/internal/linker"
	"github.com/banshee-data/sofind/internal/noise"
	"github.com/banshee-data/sofind/internal/pipeline"
	"github.com/banshee-data/sofind/internal/reliability"
	"github.com/banshee-data/sofind/internal/scfind"
	"github.com/banshee-data/sofind/internal/stats"
	"github.com/banshee-data/sofind/internal/threshold"
)

// Options translates the closed key = value set into pipeline.Options
// (SPEC_FULL.md §3.9). It is the sole place the string-keyed store
// meets the core's typed Go API.
func (s *Store) Options() (pipeline.Options, error) {
	var opts pipeline.Options

	// Cube ingestion always runs flag_infinity as a safety pass
	// (spec.md §6 "a dedicated flag_infinity ... walks the cube");
	// unlike the other stages it is not user-toggleable, so it has no
	// key of its own.
	opts.FlagInfinity = true

	if region := strings.TrimSpace(s.GetString("input.region")); region != "" {
		r, err := parseRegion(region)
		if err != nil {
			return opts, pipeline.NewError(pipeline.KindUserInput, "input.region: %v", err)
		}
		opts.Region = &r
	}

	opts.ContinuumEnable = s.GetBool("continuum.enable")
	opts.ContinuumOrder = int(s.GetInt("continuum.order"))
	opts.ContinuumRipple = int(s.GetInt("continuum.rippleShift"))

	opts.AverageEnable = s.GetBool("average.enable")
	opts.AverageRadius = int(s.GetInt("average.radius"))

	opts.ScaleNoiseEnable = s.GetBool("scaleNoise.enable")
	opts.ScaleNoiseMode = s.GetString("scaleNoise.mode")
	opts.ScaleNoiseSpec = statisticFromString(s.GetString("scaleNoise.statistic"))
	opts.ScaleNoiseRange = rangeFromString(s.GetString("scaleNoise.fluxRange"))
	opts.ScaleNoiseLocal = noise.LocalParams{
		Statistic:   opts.ScaleNoiseSpec,
		Range:       opts.ScaleNoiseRange,
		WindowXY:    int(s.GetInt("scaleNoise.windowXY")),
		WindowZ:     int(s.GetInt("scaleNoise.windowZ")),
		GridXY:      int(s.GetInt("scaleNoise.gridXY")),
		GridZ:       int(s.GetInt("scaleNoise.gridZ")),
		Interpolate: s.GetBool("scaleNoise.interpolate"),
	}

	opts.SCFindEnable = s.GetBool("scfind.enable")
	sigmas, err := parseFloatList(s.GetString("scfind.kernelsXY"))
	if err != nil {
		return opts, pipeline.NewError(pipeline.KindUserInput, "scfind.kernelsXY: %v", err)
	}
	lengths, err := parseIntList(s.GetString("scfind.kernelsZ"))
	if err != nil {
		return opts, pipeline.NewError(pipeline.KindUserInput, "scfind.kernelsZ: %v", err)
	}
	opts.SCFind = scfind.Params{
		Kernels:     scfind.Kernels{SpatialSigmas: sigmas, SpectralLengths: lengths},
		Threshold:   s.GetFloat("scfind.threshold"),
		Replacement: s.GetFloat("scfind.replacement"),
		Statistic:   statisticFromString(s.GetString("scfind.statistic")),
		FluxRange:   rangeFromString(s.GetString("scfind.fluxRange")),
	}

	opts.ThresholdEnable = s.GetBool("threshold.enable")
	opts.Threshold = threshold.Params{
		Mode:      thresholdModeFromString(s.GetString("threshold.mode")),
		Threshold: s.GetFloat("threshold.threshold"),
		Statistic: opts.SCFind.Statistic,
		FluxRange: opts.SCFind.FluxRange,
	}

	radiusXY := int(s.GetInt("linker.radiusXY"))
	minSizeXY := int(s.GetInt("linker.minSizeXY"))
	maxSizeXY := int(s.GetInt("linker.maxSizeXY"))
	opts.Linker = linker.Params{
		RadiusX: radiusXY, RadiusY: radiusXY, RadiusZ: int(s.GetInt("linker.radiusZ")),
		MinSizeX: minSizeXY, MinSizeY: minSizeXY, MinSizeZ: int(s.GetInt("linker.minSizeZ")),
		MaxSizeX: maxSizeXY, MaxSizeY: maxSizeXY, MaxSizeZ: int(s.GetInt("linker.maxSizeZ")),
		KeepNegative: s.GetBool("linker.keepNegative"),
	}

	opts.ReliabilityEnable = s.GetBool("reliability.enable")
	opts.Reliability = reliability.Params{
		ScaleKernel: s.GetFloat("reliability.scaleKernel"),
		Threshold:   s.GetFloat("reliability.threshold"),
		FMin:        s.GetFloat("reliability.fmin"),
	}

	opts.DilationEnable = s.GetBool("dilation.enable")
	opts.Dilation = dilation.Params{
		IterationsXY: int(s.GetInt("dilation.iterationsXY")),
		IterationsZ:  int(s.GetInt("dilation.iterationsZ")),
		Threshold:    s.GetFloat("dilation.threshold"),
	}

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

func statisticFromString(s string) noise.Statistic {
	switch s {
	case "mad":
		return noise.StatisticMAD
	case "gauss":
		return noise.StatisticGauss
	default:
		return noise.StatisticStd
	}
}

func thresholdModeFromString(s string) threshold.Mode {
	if s == "absolute" {
		return threshold.ModeAbsolute
	}
	return threshold.ModeRelative
}

// parseRegion parses spec.md §3's ordered six-tuple
// "x_min,x_max,y_min,y_max,z_min,z_max" syntax for input.region.
func parseRegion(s string) (cube.Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 6 {
		return cube.Region{}, fmt.Errorf("expected 6 comma-separated integers, got %q", s)
	}
	var vals [6]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return cube.Region{}, fmt.Errorf("expected an integer six-tuple, got %q", s)
		}
		vals[i] = v
	}
	r := cube.Region{
		XMin: vals[0], XMax: vals[1],
		YMin: vals[2], YMax: vals[3],
		ZMin: vals[4], ZMax: vals[5],
	}
	if !r.Valid() {
		return cube.Region{}, fmt.Errorf("region %q has min > max on some axis", s)
	}
	return r, nil
}

func rangeFromString(s string) stats.Range {
	switch s {
	case "negative":
		return stats.RangeNegative
	case "positive":
		return stats.RangePositive
	default:
		return stats.RangeFull
	}
}

func parseFloatList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("expected a comma-separated float list, got %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseIntList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("expected a comma-separated integer list, got %q", s)
		}
		out = append(out, v)
	}
	return out, nil
}
