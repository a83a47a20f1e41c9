package signal

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-spectra/spectra/smooth"
)

// ErrInvalidSignal indicates the input cannot support any detection:
// fewer than two usable samples, or a perfectly flat intensity trace.
var ErrInvalidSignal = errors.New("signal: invalid signal")

const defaultSmoothWindow = 3

// Sample is one (wavelength, intensity) pair of a spectrum.
type Sample struct {
	Wavelength float64
	Intensity  float64
}

// Signal is a prepared spectrum: samples strictly increasing in wavelength.
type Signal []Sample

// Config controls signal preparation.
type Config struct {
	// Smooth enables moving-average smoothing after sorting.
	// Disabled by default to preserve small peaks.
	Smooth bool
	// SmoothWindow is the smoothing window in samples. Even values are
	// rounded up to the next odd value. Defaults to 3.
	SmoothWindow int
}

// Prepare validates and canonicalizes raw samples into a Signal.
//
// Rows with non-finite wavelength or intensity are dropped, the remainder
// is sorted ascending by wavelength, and duplicate wavelengths keep the
// first occurrence. The caller's slice is never modified.
//
// Returns an error wrapping [ErrInvalidSignal] when fewer than two usable
// samples remain or when all intensities are identical.
func Prepare(samples []Sample, cfg Config) (Signal, error) {
	out := make(Signal, 0, len(samples))
	for _, s := range samples {
		if !isFinite(s.Wavelength) || !isFinite(s.Intensity) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Wavelength < out[j].Wavelength
	})

	// Keep the first occurrence of duplicate wavelengths. This is a policy
	// choice: instrument exports occasionally repeat a grid point, and the
	// first row is the one the instrument reported first.
	dedup := out[:0]
	for i, s := range out {
		if i > 0 && s.Wavelength == out[i-1].Wavelength {
			continue
		}
		dedup = append(dedup, s)
	}
	out = dedup

	if len(out) < 2 {
		return nil, fmt.Errorf("%w: %d usable samples, need at least 2", ErrInvalidSignal, len(out))
	}

	flat := true
	for _, s := range out[1:] {
		if s.Intensity != out[0].Intensity {
			flat = false
			break
		}
	}
	if flat {
		return nil, fmt.Errorf("%w: flat signal, all intensities equal %g", ErrInvalidSignal, out[0].Intensity)
	}

	if cfg.Smooth {
		window := cfg.SmoothWindow
		if window <= 0 {
			window = defaultSmoothWindow
		}
		smoothed := smooth.MovingAverage(out.Intensities(), window)
		for i := range out {
			out[i].Intensity = smoothed[i]
		}
	}

	return out, nil
}

// Wavelengths returns a copy of the wavelength column.
func (s Signal) Wavelengths() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Wavelength
	}
	return out
}

// Intensities returns a copy of the intensity column.
func (s Signal) Intensities() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Intensity
	}
	return out
}

// Region returns the contiguous samples with wavelength in [lo, hi],
// inclusive on both ends. The result shares the receiver's backing array.
// An empty window yields nil.
func (s Signal) Region(lo, hi float64) Signal {
	i := sort.Search(len(s), func(k int) bool { return s[k].Wavelength >= lo })
	j := sort.Search(len(s), func(k int) bool { return s[k].Wavelength > hi })
	if i >= j {
		return nil
	}
	return s[i:j]
}

// IntensityRange returns the minimum and maximum intensity.
func (s Signal) IntensityRange() (min, max float64) {
	if len(s) == 0 {
		return 0, 0
	}
	min, max = s[0].Intensity, s[0].Intensity
	for _, v := range s[1:] {
		if v.Intensity < min {
			min = v.Intensity
		}
		if v.Intensity > max {
			max = v.Intensity
		}
	}
	return min, max
}

// Quantile returns the q-quantile (0..1) of the intensity column using
// linear interpolation between order statistics.
func (s Signal) Quantile(q float64) float64 {
	if len(s) == 0 {
		return 0
	}
	sorted := s.Intensities()
	sort.Float64s(sorted)
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Gradient computes dy/dx over non-uniformly spaced points using centered
// differences for interior points and one-sided differences at the ends.
//
// x must be strictly increasing and have the same length as y; callers are
// expected to pass the columns of a prepared Signal.
func Gradient(x, y []float64) []float64 {
	n := len(y)
	if n < 2 || len(x) != n {
		return nil
	}
	out := make([]float64, n)
	out[0] = (y[1] - y[0]) / (x[1] - x[0])
	out[n-1] = (y[n-1] - y[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		// Non-uniform centered difference: weights the two one-sided slopes
		// by the opposite interval so uniform grids reduce to (y[i+1]-y[i-1])/(2h).
		hL := x[i] - x[i-1]
		hR := x[i+1] - x[i]
		sL := (y[i] - y[i-1]) / hL
		sR := (y[i+1] - y[i]) / hR
		out[i] = (hR*sL + hL*sR) / (hL + hR)
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
