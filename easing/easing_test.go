package easing

import (
	"math"
	"testing"
)

func TestCurvesEndpoints(t *testing.T) {
	for _, name := range Names() {
		fn, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) not found", name)
		}
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestByName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{"empty is linear", "", true},
		{"camel case", "cubicOut", true},
		{"snake case", "cubic_in_out", true},
		{"kebab case", "sine-in", true},
		{"unknown", "bounce", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ByName(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ByName(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
		})
	}
}

func TestLerpAndClamp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp = %v, want 3", got)
	}
	if got := Clamp01(-10); got != 0 {
		t.Errorf("Clamp01(-10) = %v", got)
	}
	if got := Clamp01(10); got != 1 {
		t.Errorf("Clamp01(10) = %v", got)
	}
	if got := Clamp01(math.NaN()); got != 0 {
		t.Errorf("Clamp01(NaN) = %v", got)
	}
}
