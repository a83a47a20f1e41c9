// Package shoulders finds inflection-type features on monotonic slopes via
// first/second derivative analysis. It runs as the second stage after
// classical peak detection and never reports inside a claimed peak region.
package shoulders

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/spectra/feature"
	"github.com/cwbudde/algo-spectra/spectra/signal"
	"github.com/cwbudde/algo-spectra/spectra/smooth"
)

const (
	defaultSensitivity     = 0.1
	defaultExclusionRadius = 6.0 // nm
	defaultMinSeparation   = 5.0 // nm
	smoothWindow           = 7
)

// Config controls shoulder detection. The zero value selects the defaults.
type Config struct {
	// Sensitivity is the curvature threshold as a fraction of the maximum
	// curvature magnitude, in (0, 1]. Lower values are more sensitive.
	// Defaults to 0.1.
	Sensitivity float64
	// ExclusionRadius is the wavelength distance (nm) around a classical
	// peak inside which shoulder candidates are discarded. Defaults to 6.
	ExclusionRadius float64
	// MinSeparation is the minimum wavelength distance (nm) between
	// reported shoulders; the stronger candidate wins. Defaults to 5.
	MinSeparation float64
	// NoSmoothing disables the Savitzky-Golay pre-filter applied before
	// differentiation. Derivatives of raw instrument noise are rarely
	// useful, so smoothing is on by default.
	NoSmoothing bool
}

func (cfg Config) withDefaults() Config {
	if cfg.Sensitivity == 0 {
		cfg.Sensitivity = defaultSensitivity
	}
	if cfg.ExclusionRadius == 0 {
		cfg.ExclusionRadius = defaultExclusionRadius
	}
	if cfg.MinSeparation == 0 {
		cfg.MinSeparation = defaultMinSeparation
	}
	return cfg
}

// Validate reports the first invalid parameter, if any.
func (cfg Config) Validate() error {
	if cfg.Sensitivity < 0 || cfg.Sensitivity > 1 {
		return fmt.Errorf("shoulders: Sensitivity must be in [0, 1]: %g", cfg.Sensitivity)
	}
	if cfg.ExclusionRadius < 0 {
		return fmt.Errorf("shoulders: ExclusionRadius must be >= 0: %g", cfg.ExclusionRadius)
	}
	if cfg.MinSeparation < 0 {
		return fmt.Errorf("shoulders: MinSeparation must be >= 0: %g", cfg.MinSeparation)
	}
	return nil
}

// Detect returns shoulder features of a prepared signal.
//
// exclude lists wavelengths already claimed by classical peaks; candidates
// within cfg.ExclusionRadius of any of them are dropped, which is the
// mechanism preventing one spectral event from being reported twice.
//
// A candidate is a local maximum of the second derivative's magnitude at
// which the first derivative does not cross zero, i.e. the signal passes
// through monotonically. Reported intensity is read from the unsmoothed
// signal; prominence is the curvature magnitude normalized to the maximum
// over the signal.
//
// Signals with fewer than three samples yield no shoulders without error.
func Detect(sig signal.Signal, exclude []float64, cfg Config) ([]feature.Feature, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	n := len(sig)
	if n < 3 {
		return nil, nil
	}

	x := sig.Wavelengths()
	y := sig.Intensities()

	smoothed := y
	if !cfg.NoSmoothing && n >= smoothWindow {
		smoothed = smooth.SavitzkyGolay(y, smoothWindow)
	}

	d1 := signal.Gradient(x, smoothed)
	d2 := signal.Gradient(x, d1)

	maxCurvature := 0.0
	for _, v := range d2 {
		if a := math.Abs(v); a > maxCurvature {
			maxCurvature = a
		}
	}
	if maxCurvature == 0 {
		return nil, nil
	}
	threshold := cfg.Sensitivity * maxCurvature

	var out []feature.Feature
	for i := 1; i < n-1; i++ {
		mag := math.Abs(d2[i])
		if mag < threshold {
			continue
		}
		if mag < math.Abs(d2[i-1]) || mag < math.Abs(d2[i+1]) {
			continue
		}

		// True peaks and valleys belong to the classical detector: require
		// the slope to keep its sign through the candidate.
		if d1[i-1]*d1[i+1] <= 0 {
			continue
		}

		if inExclusionZone(x[i], exclude, cfg.ExclusionRadius) {
			continue
		}

		cand := feature.Feature{
			Wavelength: x[i],
			Intensity:  y[i],
			Kind:       feature.KindShoulder,
			Prominence: mag / maxCurvature,
		}

		// Adjacent curvature extrema within MinSeparation describe the
		// same shoulder; keep the stronger one.
		if len(out) > 0 && cand.Wavelength-out[len(out)-1].Wavelength < cfg.MinSeparation {
			if cand.Prominence > out[len(out)-1].Prominence {
				out[len(out)-1] = cand
			}
			continue
		}
		out = append(out, cand)
	}
	return out, nil
}

// DetectInRange restricts shoulder detection to the wavelength window
// [lo, hi]. Derivatives and the curvature reference come from the windowed
// samples only.
func DetectInRange(sig signal.Signal, lo, hi float64, exclude []float64, cfg Config) ([]feature.Feature, error) {
	return Detect(sig.Region(lo, hi), exclude, cfg)
}

func inExclusionZone(wavelength float64, exclude []float64, radius float64) bool {
	for _, w := range exclude {
		if math.Abs(wavelength-w) <= radius {
			return true
		}
	}
	return false
}
