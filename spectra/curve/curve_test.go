package curve

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/spectra/signal"
)

func testCurve(intensities ...float64) signal.Signal {
	out := make(signal.Signal, len(intensities))
	for i, v := range intensities {
		out[i] = signal.Sample{Wavelength: 300 + 10*float64(i), Intensity: v}
	}
	return out
}

func TestNormalize(t *testing.T) {
	s := testCurve(5, 20, 10)

	out, err := Normalize(s)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := []float64{0.25, 1, 0.5}
	for i := range out {
		if math.Abs(out[i].Intensity-want[i]) > 1e-12 {
			t.Fatalf("normalized intensity %d mismatch: got %g want %g", i, out[i].Intensity, want[i])
		}
	}
	if s[1].Intensity != 20 {
		t.Fatalf("input curve was modified: %v", s)
	}
}

func TestNormalizeZeroMax(t *testing.T) {
	_, err := Normalize(testCurve(-3, 0, -1))
	if !errors.Is(err, ErrZeroMaximum) {
		t.Fatalf("expected ErrZeroMaximum, got %v", err)
	}
}

func TestAddOffset(t *testing.T) {
	out := AddOffset(testCurve(1, 2, 3), 10)
	for i, want := range []float64{11, 12, 13} {
		if out[i].Intensity != want {
			t.Fatalf("offset intensity %d mismatch: got %g want %g", i, out[i].Intensity, want)
		}
	}
}

func TestSubtract(t *testing.T) {
	a := testCurve(10, 20, 30)
	b := testCurve(1, 2, 3)

	out, err := Subtract(a, b, 2)
	if err != nil {
		t.Fatalf("Subtract failed: %v", err)
	}
	for i, want := range []float64{8, 16, 24} {
		if math.Abs(out[i].Intensity-want) > 1e-12 {
			t.Fatalf("difference %d mismatch: got %g want %g", i, out[i].Intensity, want)
		}
	}
}

func TestSubtractLengthMismatch(t *testing.T) {
	_, err := Subtract(testCurve(1, 2, 3), testCurve(1, 2), 1)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestSubtractGridMismatch(t *testing.T) {
	a := testCurve(1, 2, 3)
	b := testCurve(1, 2, 3)
	b[1].Wavelength += 1

	_, err := Subtract(a, b, 1)
	if !errors.Is(err, ErrGridMismatch) {
		t.Fatalf("expected ErrGridMismatch, got %v", err)
	}
}
