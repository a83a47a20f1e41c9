// Package peaks finds classical local-maximum features in a prepared
// spectrum using a cascade of increasingly permissive parameter tiers.
package peaks

import (
	"fmt"
	"io"
	"sort"

	"github.com/cwbudde/algo-spectra/spectra/feature"
	"github.com/cwbudde/algo-spectra/spectra/signal"
)

// CascadeConfig controls the adaptive tier cascade.
type CascadeConfig struct {
	// Target is the desired feature count; the cascade stops at the first
	// tier that reaches it. Defaults to 1.
	Target int
	// DisableForceDetect skips the noise-prone last-resort tier.
	DisableForceDetect bool
	// Trace, when non-nil, receives per-tier diagnostics.
	Trace io.Writer
}

// Detect runs a single-tier pass over a prepared signal and returns the
// classical features in wavelength order.
//
// An empty result is a valid outcome, not an error; the only error source
// is an invalid parameter set.
func Detect(sig signal.Signal, p Params) ([]feature.Feature, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return detect(sig, p), nil
}

// DetectTier runs a single pass with the tier's default parameters.
func DetectTier(sig signal.Signal, tier Tier) ([]feature.Feature, error) {
	return Detect(sig, ParamsFor(tier))
}

// DetectInRange runs a single pass restricted to the wavelength window
// [lo, hi]. Height and prominence thresholds derive from the windowed
// samples only, so a feature too weak for the full-spectrum pass can still
// stand out inside its own region.
func DetectInRange(sig signal.Signal, lo, hi float64, p Params) ([]feature.Feature, error) {
	return Detect(sig.Region(lo, hi), p)
}

// DetectAdaptive tries each tier in order of increasing permissiveness,
// keeping the best result so far and stopping at the first tier that
// yields at least cfg.Target features. It returns the winning feature list
// and the tier that produced it.
func DetectAdaptive(sig signal.Signal, cfg CascadeConfig) ([]feature.Feature, Tier, error) {
	target := cfg.Target
	if target < 1 {
		target = 1
	}

	var (
		best     []feature.Feature
		bestTier = TierStandard
	)
	for _, tier := range Tiers {
		if tier == TierForceDetect && cfg.DisableForceDetect {
			break
		}

		found, err := DetectTier(sig, tier)
		if err != nil {
			return nil, tier, err
		}
		if cfg.Trace != nil {
			fmt.Fprintf(cfg.Trace, "peaks: tier %s found %d feature(s)\n", tier, len(found))
		}

		if len(found) > len(best) {
			best = found
			bestTier = tier
		}
		if len(best) >= target {
			break
		}
	}
	return best, bestTier, nil
}

type candidate struct {
	index      int
	prominence float64
}

func detect(sig signal.Signal, p Params) []feature.Feature {
	n := len(sig)
	if n < 3 {
		return nil
	}

	x := sig.Wavelengths()
	y := sig.Intensities()

	min, max := sig.IntensityRange()
	rng := max - min

	height := sig.Quantile(p.HeightQuantile) + p.HeightMargin*rng
	promThreshold := prominenceThreshold(p, rng, max)

	half := p.Window / 2
	if p.Window == 0 {
		half = autoWindow(n) / 2
	}

	var cands []candidate
	for i := 1; i < n-1; {
		if y[i] <= y[i-1] {
			i++
			continue
		}

		// Plateau-tolerant maximum: a flat top counts once, at its first
		// index. A plateau running into the boundary is not a maximum.
		j := i
		for j+1 < n && y[j+1] == y[i] {
			j++
		}
		if j+1 >= n || y[j+1] >= y[i] {
			i = j + 1
			continue
		}

		if y[i] >= height {
			prom := prominence(y, i, half)
			if prom >= promThreshold {
				cands = append(cands, candidate{index: i, prominence: prom})
			}
		}
		i = j + 1
	}

	kept := filterByDistance(cands, p.MinDistance)

	out := make([]feature.Feature, 0, len(kept))
	for _, c := range kept {
		out = append(out, feature.Feature{
			Wavelength: x[c.index],
			Intensity:  y[c.index],
			Kind:       feature.KindClassical,
			Prominence: c.prominence,
		})
	}
	return out
}

func prominenceThreshold(p Params, rng, max float64) float64 {
	threshold := p.RelRangeProminence * rng
	if v := p.RelMaxProminence * max; v > threshold {
		threshold = v
	}
	if p.AbsProminenceFloor > threshold {
		threshold = p.AbsProminenceFloor
	}
	return threshold
}

// autoWindow mirrors the bounded search window used for capture-region
// estimation: roughly one sixth of the signal, clamped to [11, 61] samples.
func autoWindow(n int) int {
	w := n / 6
	if w < 11 {
		w = 11
	}
	if w > 61 {
		w = 61
	}
	return w
}

// prominence returns the height of the maximum at index i above the higher
// of the two nearest bounding minima. Each side is scanned outward up to
// half samples, stopping early at a sample higher than the peak.
func prominence(y []float64, i, half int) float64 {
	peak := y[i]

	leftMin := peak
	for j, steps := i-1, 0; j >= 0 && steps < half; j, steps = j-1, steps+1 {
		if y[j] > peak {
			break
		}
		if y[j] < leftMin {
			leftMin = y[j]
		}
	}

	rightMin := peak
	for j, steps := i+1, 0; j < len(y) && steps < half; j, steps = j+1, steps+1 {
		if y[j] > peak {
			break
		}
		if y[j] < rightMin {
			rightMin = y[j]
		}
	}

	valley := leftMin
	if rightMin > valley {
		valley = rightMin
	}
	return peak - valley
}

// filterByDistance enforces the minimum index distance between accepted
// maxima, keeping higher-prominence candidates first. The survivors are
// returned in index order.
func filterByDistance(cands []candidate, minDistance int) []candidate {
	if len(cands) == 0 || minDistance <= 1 {
		return cands
	}

	byProminence := make([]candidate, len(cands))
	copy(byProminence, cands)
	sort.SliceStable(byProminence, func(i, j int) bool {
		return byProminence[i].prominence > byProminence[j].prominence
	})

	var kept []candidate
	for _, c := range byProminence {
		ok := true
		for _, k := range kept {
			d := c.index - k.index
			if d < 0 {
				d = -d
			}
			if d < minDistance {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, c)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].index < kept[j].index })
	return kept
}
