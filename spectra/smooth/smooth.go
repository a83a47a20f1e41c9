// Package smooth provides low-pass smoothing primitives for sampled spectra.
//
// Moving average and Savitzky-Golay operate on the intensity column alone
// and assume an approximately uniform wavelength grid. LowpassFFT offers a
// frequency-domain alternative for heavily oversampled spectra.
package smooth

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Savitzky-Golay convolution coefficients for quadratic/cubic fits.
// Closed-form values; see Savitzky & Golay (1964), table I.
var (
	savgolWindow5 = []float64{-3. / 35, 12. / 35, 17. / 35, 12. / 35, -3. / 35}
	savgolWindow7 = []float64{-2. / 21, 3. / 21, 6. / 21, 7. / 21, 6. / 21, 3. / 21, -2. / 21}
)

// MovingAverage returns a centered moving average of y with the given
// window. Even windows are rounded up to the next odd value; edges average
// over the part of the window that exists. The input is never modified.
func MovingAverage(y []float64, window int) []float64 {
	out := make([]float64, len(y))
	if len(y) == 0 {
		return out
	}
	if window < 1 {
		window = 1
	}
	if window%2 == 0 {
		window++
	}
	half := window / 2

	for i := range y {
		lo := i - half
		if lo < 0 {
			lo = 0
		}
		hi := i + half
		if hi >= len(y) {
			hi = len(y) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += y[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// SavitzkyGolay smooths y with a polynomial least-squares filter.
//
// Windows 5 and 7 use exact quadratic/cubic coefficients; other window
// sizes fall back to [MovingAverage]. Inputs shorter than the window are
// returned as a plain copy.
func SavitzkyGolay(y []float64, window int) []float64 {
	var coeffs []float64
	switch window {
	case 5:
		coeffs = savgolWindow5
	case 7:
		coeffs = savgolWindow7
	default:
		return MovingAverage(y, window)
	}

	if len(y) < window {
		out := make([]float64, len(y))
		copy(out, y)
		return out
	}

	out := make([]float64, len(y))
	half := window / 2
	for i := range y {
		if i < half || i >= len(y)-half {
			out[i] = y[i]
			continue
		}
		acc := 0.0
		for k, c := range coeffs {
			acc += c * y[i-half+k]
		}
		out[i] = acc
	}
	return out
}

// LowpassFFT smooths y by zeroing spectral bins above the normalized
// cutoff in (0, 1], where 1 corresponds to the Nyquist bin.
//
// The signal is zero-padded to a power of two, transformed, filtered, and
// transformed back; only the original length is returned.
func LowpassFFT(y []float64, cutoff float64) ([]float64, error) {
	if len(y) == 0 {
		return nil, fmt.Errorf("smooth: lowpass input is empty")
	}
	if cutoff <= 0 || cutoff > 1 {
		return nil, fmt.Errorf("smooth: lowpass cutoff must be in (0, 1]: %g", cutoff)
	}

	fftSize := nextPowerOf2(len(y))
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: lowpass plan: %w", err)
	}

	inData := make([]complex128, fftSize)
	for i, v := range y {
		inData[i] = complex(v, 0)
	}

	freq := make([]complex128, fftSize)
	if err := plan.Forward(freq, inData); err != nil {
		return nil, fmt.Errorf("smooth: lowpass forward FFT: %w", err)
	}

	// Zero bins above the cutoff, keeping conjugate symmetry so the inverse
	// transform stays real-valued.
	nyquist := fftSize / 2
	cutBin := int(cutoff * float64(nyquist))
	for k := cutBin + 1; k <= nyquist; k++ {
		freq[k] = 0
		if k != 0 && k != nyquist {
			freq[fftSize-k] = 0
		}
	}

	timeOut := make([]complex128, fftSize)
	if err := plan.Inverse(timeOut, freq); err != nil {
		return nil, fmt.Errorf("smooth: lowpass inverse FFT: %w", err)
	}

	out := make([]float64, len(y))
	for i := range out {
		out[i] = real(timeOut[i])
	}
	return out, nil
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
