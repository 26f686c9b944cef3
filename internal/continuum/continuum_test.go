package continuum

import (
	"math"
	"testing"

	"github.com/banshee-data/sofind/internal/cube"
)

func TestSubtractRemovesLinearRamp(t *testing.T) {
	const nz = 20
	c := cube.NewBlank(2, 2, nz)
	for z := 0; z < nz; z++ {
		c.Set(0, 0, z, float32(2.0+0.5*float64(z)))
	}

	if err := Subtract(c, Params{PolyOrder: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for z := 0; z < nz; z++ {
		if math.Abs(float64(c.Get(0, 0, z))) > 1e-6 {
			t.Fatalf("expected a pure linear ramp to be fully removed at z=%d, got %v", z, c.Get(0, 0, z))
		}
	}
}

func TestSubtractRejectsInvalidOrder(t *testing.T) {
	c := cube.NewBlank(2, 2, 4)
	if err := Subtract(c, Params{PolyOrder: 3}); err == nil {
		t.Fatal("expected an error for polynomial order outside [0,2]")
	}
}

func TestSubtractAppliesRippleFilter(t *testing.T) {
	const nz = 10
	c := cube.NewBlank(1, 1, nz)
	for z := 0; z < nz; z++ {
		c.Set(0, 0, z, float32(z))
	}
	if err := Subtract(c, Params{PolyOrder: 0, RippleShift: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// After removing the mean (4.5) the profile is z-4.5; shift-and-
	// subtracting by 2 turns every sample from z=2 on into the constant
	// 2, while the leading two samples are untouched by the ripple step.
	if c.Get(0, 0, 0) == c.Get(0, 0, 5) {
		t.Error("expected the ripple filter to have changed the profile shape")
	}
	if got := float64(c.Get(0, 0, 0)); math.Abs(got+4.5) > 1e-6 {
		t.Errorf("expected z=0 to keep its mean-subtracted value -4.5, got %v", got)
	}
	for z := 2; z < nz; z++ {
		if got := float64(c.Get(0, 0, z)); math.Abs(got-2) > 1e-6 {
			t.Errorf("expected the ripple step to leave 2 at z=%d, got %v", z, got)
		}
	}
}
