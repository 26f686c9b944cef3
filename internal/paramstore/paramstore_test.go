package paramstore

import (
	"strings"
	"testing"
)

func TestNewSeedsEveryKey(t *testing.T) {
	s := New()
	if got := s.GetBool("scaleNoise.enable"); got != false {
		t.Fatalf("expected the default scaleNoise.enable=false, got %v", got)
	}
	if got := s.GetFloat("scfind.threshold"); got != 5.0 {
		t.Fatalf("expected the default scfind.threshold=5.0, got %v", got)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	s := New()
	text := `
# a comment
scfind.threshold = 3.5
linker.keepNegative = true

reliability.fmin = 12
`
	if err := s.Parse(strings.NewReader(text)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.GetFloat("scfind.threshold"); got != 3.5 {
		t.Fatalf("expected overridden threshold=3.5, got %v", got)
	}
	if got := s.GetBool("linker.keepNegative"); got != true {
		t.Fatal("expected linker.keepNegative to be overridden to true")
	}
	if got := s.GetFloat("reliability.fmin"); got != 12 {
		t.Fatalf("expected reliability.fmin=12, got %v", got)
	}
}

func TestParseRejectsUnrecognisedKey(t *testing.T) {
	s := New()
	err := s.Parse(strings.NewReader("bogus.key = 1\n"))
	if err == nil {
		t.Fatal("expected an error for an unrecognised key")
	}
}

func TestParseRejectsTypeMismatch(t *testing.T) {
	s := New()
	err := s.Parse(strings.NewReader("scfind.threshold = not-a-number\n"))
	if err == nil {
		t.Fatal("expected an error for a malformed float value")
	}
}

func TestGetPanicsOnTypeMismatch(t *testing.T) {
	s := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected GetBool on a float key to panic")
		}
	}()
	s.GetBool("scfind.threshold")
}

func TestOptionsTranslatesKernelLists(t *testing.T) {
	s := New()
	if err := s.SetString("scfind.kernelsXY", "0,3,6"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := s.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.SCFind.Kernels.SpatialSigmas) != 3 {
		t.Fatalf("expected 3 spatial sigmas, got %v", opts.SCFind.Kernels.SpatialSigmas)
	}
}

func TestOptionsRejectsReliabilityWithKeepNegative(t *testing.T) {
	s := New()
	if err := s.SetBool("reliability.enable", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetBool("linker.keepNegative", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Options(); err == nil {
		t.Fatal("expected Options to reject reliability+keepNegative")
	}
}

func TestOptionsParsesRegion(t *testing.T) {
	s := New()
	if err := s.SetString("input.region", "1,2,3,4,5,6"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := s.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Region == nil || opts.Region.XMax != 2 || opts.Region.ZMax != 6 {
		t.Fatalf("expected a parsed region, got %+v", opts.Region)
	}
}

func TestOptionsRejectsMalformedRegion(t *testing.T) {
	s := New()
	if err := s.SetString("input.region", "1,2,3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Options(); err == nil {
		t.Fatal("expected Options to reject a malformed region string")
	}
}

func TestOptionsWiresContinuumAndAverage(t *testing.T) {
	s := New()
	if err := s.SetBool("continuum.enable", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetInt("continuum.order", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetBool("average.enable", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.SetInt("average.radius", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts, err := s.Options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.ContinuumEnable || opts.ContinuumOrder != 2 {
		t.Fatalf("expected continuum enabled at order 2, got %+v", opts)
	}
	if !opts.AverageEnable || opts.AverageRadius != 3 {
		t.Fatalf("expected average enabled at radius 3, got %+v", opts)
	}
}

func TestOptionsRejectsNoFinderEnabled(t *testing.T) {
	s := New()
	if err := s.SetBool("scfind.enable", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Options(); err == nil {
		t.Fatal("expected Options to reject a configuration with no finder enabled")
	}
}
