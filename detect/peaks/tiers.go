package peaks

import "fmt"

// Tier names an ordered detection parameter set. Tiers are strictly ordered
// by permissiveness: every feature acceptable under TierStandard is
// acceptable under TierSensitive, and so on.
type Tier int

const (
	// TierStandard uses balanced thresholds that reject noise.
	TierStandard Tier = iota
	// TierSensitive halves the prominence requirement and allows closer peaks.
	TierSensitive
	// TierUltraSensitive accepts near-floor prominences for very weak peaks.
	TierUltraSensitive
	// TierForceDetect accepts any strict local maximum. Noise-prone; used
	// as a last resort when no other tier finds anything.
	TierForceDetect
)

// Tiers lists all tiers in cascade order.
var Tiers = []Tier{TierStandard, TierSensitive, TierUltraSensitive, TierForceDetect}

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierSensitive:
		return "sensitive"
	case TierUltraSensitive:
		return "ultra-sensitive"
	case TierForceDetect:
		return "force-detect"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// Params is an immutable detection parameter set. The prominence threshold
// for a signal is the largest of the three prominence terms; a term of zero
// does not participate.
//
// The numeric defaults below are tunable starting points calibrated on
// fluorescence spectra, not exact constants.
type Params struct {
	// MinDistance is the minimum index distance between accepted maxima.
	MinDistance int
	// RelRangeProminence is the prominence threshold as a fraction of the
	// intensity range (max - min).
	RelRangeProminence float64
	// RelMaxProminence is the prominence threshold as a fraction of the
	// maximum intensity.
	RelMaxProminence float64
	// AbsProminenceFloor is an absolute lower bound on the prominence
	// threshold, in intensity units.
	AbsProminenceFloor float64
	// HeightQuantile selects the intensity quantile used as baseline for
	// the minimum-height threshold.
	HeightQuantile float64
	// HeightMargin is added to the baseline as a fraction of the range.
	HeightMargin float64
	// Window bounds the prominence search to Window/2 samples on each side
	// of a maximum. Zero derives a window from the signal length.
	Window int
}

// ParamsFor returns the default parameter set for a tier.
func ParamsFor(tier Tier) Params {
	switch tier {
	case TierSensitive:
		return Params{
			MinDistance:        2,
			RelRangeProminence: 0.015,
			HeightQuantile:     0.05,
			HeightMargin:       0.005,
		}
	case TierUltraSensitive:
		return Params{
			MinDistance:        1,
			RelMaxProminence:   0.001,
			AbsProminenceFloor: 0.5,
			HeightQuantile:     0.05,
			HeightMargin:       0.001,
		}
	case TierForceDetect:
		return Params{
			MinDistance:  1,
			HeightMargin: 0.0001,
		}
	default:
		return Params{
			MinDistance:        3,
			RelRangeProminence: 0.03,
			HeightQuantile:     0.05,
			HeightMargin:       0.005,
		}
	}
}

// Validate reports the first invalid parameter, if any.
func (p Params) Validate() error {
	if p.MinDistance < 1 {
		return fmt.Errorf("peaks: MinDistance must be >= 1: %d", p.MinDistance)
	}
	if p.RelRangeProminence < 0 {
		return fmt.Errorf("peaks: RelRangeProminence must be >= 0: %g", p.RelRangeProminence)
	}
	if p.RelMaxProminence < 0 {
		return fmt.Errorf("peaks: RelMaxProminence must be >= 0: %g", p.RelMaxProminence)
	}
	if p.AbsProminenceFloor < 0 {
		return fmt.Errorf("peaks: AbsProminenceFloor must be >= 0: %g", p.AbsProminenceFloor)
	}
	if p.HeightQuantile < 0 || p.HeightQuantile > 1 {
		return fmt.Errorf("peaks: HeightQuantile must be in [0, 1]: %g", p.HeightQuantile)
	}
	if p.HeightMargin < 0 {
		return fmt.Errorf("peaks: HeightMargin must be >= 0: %g", p.HeightMargin)
	}
	if p.Window < 0 {
		return fmt.Errorf("peaks: Window must be >= 0: %d", p.Window)
	}
	return nil
}
