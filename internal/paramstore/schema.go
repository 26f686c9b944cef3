package paramstore

// schema enumerates the closed set of recognised keys of spec.md §6,
// each seeded with a default value before user overrides are applied.
// A key absent here is a caller bug, not a user error: Get* panics on
// an unknown key, since every recognised key is always seeded.
var schema = map[string]Value{
	"input.data":    stringValue(""),
	"input.region":  stringValue(""),
	"input.noise":   stringValue(""),
	"input.weights": stringValue(""),
	"input.mask":    stringValue(""),
	"input.invert":  boolValue(false),

	"scaleNoise.enable":      boolValue(false),
	"scaleNoise.mode":        stringValue("spectral"),
	"scaleNoise.statistic":   stringValue("std"),
	"scaleNoise.fluxRange":   stringValue("full"),
	"scaleNoise.windowXY":    intValue(20),
	"scaleNoise.windowZ":     intValue(20),
	"scaleNoise.gridXY":      intValue(0),
	"scaleNoise.gridZ":       intValue(0),
	"scaleNoise.interpolate": boolValue(true),

	"scfind.enable":      boolValue(true),
	"scfind.kernelsXY":   stringValue("0,3,6"),
	"scfind.kernelsZ":    stringValue("0,3,7"),
	"scfind.threshold":   floatValue(5.0),
	"scfind.replacement": floatValue(2.0),
	"scfind.statistic":   stringValue("std"),
	"scfind.fluxRange":   stringValue("full"),

	"threshold.enable":    boolValue(false),
	"threshold.mode":      stringValue("relative"),
	"threshold.threshold": floatValue(5.0),

	// continuum.* and average.* supplement spec.md §6's closed set
	// (SPEC_FULL.md §3.10/§3.11): spec.md §2's data flow names both
	// stages but spec.md §6 never gives either one a key namespace.
	"continuum.enable":      boolValue(false),
	"continuum.order":       intValue(1),
	"continuum.rippleShift": intValue(0),

	"average.enable": boolValue(false),
	"average.radius": intValue(0),

	"linker.radiusXY":     intValue(1),
	"linker.radiusZ":      intValue(1),
	"linker.minSizeXY":    intValue(0),
	"linker.minSizeZ":     intValue(0),
	"linker.maxSizeXY":    intValue(0),
	"linker.maxSizeZ":     intValue(0),
	"linker.keepNegative": boolValue(false),

	"reliability.enable":      boolValue(false),
	"reliability.threshold":   floatValue(0.9),
	"reliability.scaleKernel": floatValue(1.0),
	"reliability.fmin":        floatValue(10.0),
	"reliability.plot":        boolValue(false),
	"reliability.catalog":     stringValue(""),

	"dilation.enable":       boolValue(false),
	"dilation.iterationsXY": intValue(0),
	"dilation.iterationsZ":  intValue(0),
	"dilation.threshold":    floatValue(0.05),

	"parameter.enable":  boolValue(true),
	"parameter.wcs":     boolValue(false),
	"parameter.physical": boolValue(false),
	"parameter.offset":  boolValue(false),

	"output.overwrite":     boolValue(false),
	"output.writeMask":     boolValue(true),
	"output.writeMask2d":   boolValue(false),
	"output.writeRawMask":  boolValue(false),
	"output.writeMoments":  boolValue(false),
	"output.writeCubelets": boolValue(false),
	"output.writeNoise":    boolValue(false),
	"output.writeFiltered": boolValue(false),
}
