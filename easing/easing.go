// Package easing provides the curves used by weight and time-scale
// interpolation. Every curve maps progress t in [0,1] to an eased value,
// with f(0) == 0 and f(1) == 1.
package easing

import (
	"math"
	"sort"
	"strings"
)

// Func maps linear progress to eased progress
type Func func(t float64) float64

// Linear is the default curve
func Linear(t float64) float64 { return t }

func QuadIn(t float64) float64 { return t * t }

func QuadOut(t float64) float64 { return t * (2 - t) }

func QuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func CubicIn(t float64) float64 { return t * t * t }

// CubicOut starts fast and settles slowly. f(t) = 1 - (1-t)^3
func CubicOut(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func CubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func SineIn(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

func SineOut(t float64) float64 { return math.Sin(t * math.Pi / 2) }

func SineInOut(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

// ExpoOut is clamped to exactly 1 at the end of the curve
func ExpoOut(t float64) float64 {
	if t >= 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

// BackOut overshoots the target slightly before settling
func BackOut(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// Smoothstep is an S-curve with zero slope at both ends
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// Lerp interpolates between a and b. t=0 returns a, t=1 returns b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]. NaN clamps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

var registry = map[string]Func{
	"linear":     Linear,
	"quadin":     QuadIn,
	"quadout":    QuadOut,
	"quadinout":  QuadInOut,
	"cubicin":    CubicIn,
	"cubicout":   CubicOut,
	"cubicinout": CubicInOut,
	"sinein":     SineIn,
	"sineout":    SineOut,
	"sineinout":  SineInOut,
	"expoout":    ExpoOut,
	"backout":    BackOut,
	"smoothstep": Smoothstep,
}

// ByName looks up a curve by case-insensitive name ("cubicOut", "linear").
// An empty name resolves to Linear.
func ByName(name string) (Func, bool) {
	if name == "" {
		return Linear, true
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	fn, ok := registry[key]
	return fn, ok
}

// Names lists the registered curve names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
