// Package curve provides arithmetic on prepared spectra: normalization,
// vertical offsets, and scaled subtraction of a reference curve.
package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectra/spectra/signal"
)

var (
	ErrEmptyCurve     = errors.New("curve: curve is empty")
	ErrZeroMaximum    = errors.New("curve: cannot normalize, maximum intensity is zero")
	ErrGridMismatch   = errors.New("curve: wavelength grids do not match")
	ErrLengthMismatch = errors.New("curve: curves have different lengths")
)

// gridTolerance is the relative tolerance when comparing wavelength grids.
const gridTolerance = 1e-5

// Normalize returns a copy of s with intensities scaled so the maximum is 1.
func Normalize(s signal.Signal) (signal.Signal, error) {
	if len(s) == 0 {
		return nil, ErrEmptyCurve
	}

	_, max := s.IntensityRange()
	if max == 0 {
		return nil, ErrZeroMaximum
	}

	scaled := make([]float64, len(s))
	vecmath.ScaleBlock(scaled, s.Intensities(), 1/max)

	out := make(signal.Signal, len(s))
	for i := range s {
		out[i] = signal.Sample{Wavelength: s[i].Wavelength, Intensity: scaled[i]}
	}
	return out, nil
}

// AddOffset returns a copy of s with offset added to every intensity.
func AddOffset(s signal.Signal, offset float64) signal.Signal {
	out := make(signal.Signal, len(s))
	for i := range s {
		out[i] = signal.Sample{Wavelength: s[i].Wavelength, Intensity: s[i].Intensity + offset}
	}
	return out
}

// Subtract returns a - factor*b. Both curves must share the same length
// and, within a small relative tolerance, the same wavelength grid.
func Subtract(a, b signal.Signal, factor float64) (signal.Signal, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyCurve
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	for i := range a {
		if !nearlyEqual(a[i].Wavelength, b[i].Wavelength) {
			return nil, fmt.Errorf("%w at index %d: %g vs %g", ErrGridMismatch, i, a[i].Wavelength, b[i].Wavelength)
		}
	}

	diff := make([]float64, len(a))
	vecmath.ScaleBlock(diff, b.Intensities(), -factor)
	vecmath.AddBlockInPlace(diff, a.Intensities())

	out := make(signal.Signal, len(a))
	for i := range a {
		out[i] = signal.Sample{Wavelength: a[i].Wavelength, Intensity: diff[i]}
	}
	return out, nil
}

func nearlyEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= 1e-8 {
		return true
	}
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= gridTolerance*largest
}
