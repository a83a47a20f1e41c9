// Package testutil builds deterministic synthetic spectra and provides
// tolerance helpers shared by package tests.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-spectra/spectra/signal"
)

// Grid returns n wavelengths starting at start with uniform spacing step.
func Grid(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

// GaussianBand adds a Gaussian emission band to y, evaluated over the
// wavelength grid x. width is the standard deviation in nanometers.
func GaussianBand(y, x []float64, center, amplitude, width float64) {
	for i := range y {
		d := x[i] - center
		y[i] += amplitude * math.Exp(-d*d/(2*width*width))
	}
}

// AddNoise adds seeded uniform noise in [-amplitude, amplitude] to y.
func AddNoise(y []float64, seed int64, amplitude float64) {
	rng := rand.New(rand.NewSource(seed))
	for i := range y {
		y[i] += (rng.Float64()*2 - 1) * amplitude
	}
}

// Spectrum assembles a signal from parallel wavelength and intensity slices.
func Spectrum(x, y []float64) signal.Signal {
	out := make(signal.Signal, len(x))
	for i := range x {
		out[i] = signal.Sample{Wavelength: x[i], Intensity: y[i]}
	}
	return out
}

// RequireNearlyEqual fails t if got and want differ in length or if any
// element pair exceeds eps (absolute tolerance).
func RequireNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
