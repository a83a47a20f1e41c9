package peaks

import (
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/cwbudde/algo-spectra/spectra/signal"
)

// scenarioSignal is the reference fluorescence trace with two clear maxima
// (360 and 420 nm) and one weak local rise at 375 nm.
func scenarioSignal() signal.Signal {
	return signal.Signal{
		{Wavelength: 350, Intensity: 10},
		{Wavelength: 360, Intensity: 20},
		{Wavelength: 370, Intensity: 12},
		{Wavelength: 375, Intensity: 13},
		{Wavelength: 380, Intensity: 9},
		{Wavelength: 420, Intensity: 50},
		{Wavelength: 430, Intensity: 15},
	}
}

func wavelengthsOf(sig signal.Signal, tier Tier, t *testing.T) []float64 {
	t.Helper()
	found, err := DetectTier(sig, tier)
	if err != nil {
		t.Fatalf("tier %s failed: %v", tier, err)
	}
	out := make([]float64, len(found))
	for i, f := range found {
		out[i] = f.Wavelength
	}
	return out
}

func TestStandardTierFindsTwoPeaks(t *testing.T) {
	got := wavelengthsOf(scenarioSignal(), TierStandard, t)
	want := []float64{360, 420}
	if len(got) != len(want) {
		t.Fatalf("peak count mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("peak %d mismatch: got %g want %g", i, got[i], want[i])
		}
	}
}

func TestUltraSensitiveSurfacesWeakRise(t *testing.T) {
	got := wavelengthsOf(scenarioSignal(), TierUltraSensitive, t)
	want := []float64{360, 375, 420}
	if len(got) != len(want) {
		t.Fatalf("peak count mismatch: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("peak %d mismatch: got %g want %g", i, got[i], want[i])
		}
	}
}

func TestTierRelaxationIsMonotonic(t *testing.T) {
	sig := scenarioSignal()

	var prev []float64
	for _, tier := range Tiers {
		got := wavelengthsOf(sig, tier, t)
		for _, w := range prev {
			found := false
			for _, g := range got {
				if g == w {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("tier %s dropped feature at %g nm found by a stricter tier", tier, w)
			}
		}
		prev = got
	}
}

func TestProminenceValues(t *testing.T) {
	found, err := DetectTier(scenarioSignal(), TierStandard)
	if err != nil {
		t.Fatalf("DetectTier failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("peak count mismatch: got %d want 2", len(found))
	}
	if math.Abs(found[0].Prominence-10) > 1e-12 {
		t.Fatalf("prominence of 360 nm peak: got %g want 10", found[0].Prominence)
	}
	if math.Abs(found[1].Prominence-35) > 1e-12 {
		t.Fatalf("prominence of 420 nm peak: got %g want 35", found[1].Prominence)
	}
}

func TestDetectInRangeSurfacesWeakRise(t *testing.T) {
	// The 375 nm rise is below the standard prominence threshold of the full
	// spectrum but dominates its own window.
	found, err := DetectInRange(scenarioSignal(), 370, 385, ParamsFor(TierStandard))
	if err != nil {
		t.Fatalf("DetectInRange failed: %v", err)
	}
	if len(found) != 1 || found[0].Wavelength != 375 {
		t.Fatalf("windowed detection mismatch: %+v", found)
	}

	none, err := DetectInRange(scenarioSignal(), 381, 415, ParamsFor(TierStandard))
	if err != nil {
		t.Fatalf("DetectInRange failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("empty window must yield no features: %+v", none)
	}
}

func TestStandardTierOnGaussianBands(t *testing.T) {
	x := testutil.Grid(300, 1, 201)
	y := make([]float64, len(x))
	testutil.GaussianBand(y, x, 360, 20, 8)
	testutil.GaussianBand(y, x, 420, 50, 10)

	found, err := DetectTier(testutil.Spectrum(x, y), TierStandard)
	if err != nil {
		t.Fatalf("DetectTier failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("band count mismatch: got %d want 2 (%+v)", len(found), found)
	}
	if found[0].Wavelength != 360 || found[1].Wavelength != 420 {
		t.Fatalf("band positions mismatch: %+v", found)
	}
}

func TestPlateauCountsOnceAtFirstIndex(t *testing.T) {
	sig := signal.Signal{
		{Wavelength: 1, Intensity: 0},
		{Wavelength: 2, Intensity: 1},
		{Wavelength: 3, Intensity: 3},
		{Wavelength: 4, Intensity: 3},
		{Wavelength: 5, Intensity: 3},
		{Wavelength: 6, Intensity: 1},
		{Wavelength: 7, Intensity: 0},
	}

	found, err := DetectTier(sig, TierStandard)
	if err != nil {
		t.Fatalf("DetectTier failed: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("plateau must count once: got %d features", len(found))
	}
	if found[0].Wavelength != 3 {
		t.Fatalf("plateau maximum must sit at its first index: got %g want 3", found[0].Wavelength)
	}
}

func TestBoundariesAreNeverMaxima(t *testing.T) {
	sig := signal.Signal{
		{Wavelength: 1, Intensity: 5},
		{Wavelength: 2, Intensity: 4},
		{Wavelength: 3, Intensity: 3},
		{Wavelength: 4, Intensity: 2},
		{Wavelength: 5, Intensity: 1},
	}

	for _, tier := range Tiers {
		found, err := DetectTier(sig, tier)
		if err != nil {
			t.Fatalf("tier %s failed: %v", tier, err)
		}
		if len(found) != 0 {
			t.Fatalf("tier %s reported a boundary maximum: %+v", tier, found)
		}
	}
}

func TestEmptyResultIsNotAnError(t *testing.T) {
	sig := signal.Signal{
		{Wavelength: 1, Intensity: 1},
		{Wavelength: 2, Intensity: 2},
		{Wavelength: 3, Intensity: 3},
		{Wavelength: 4, Intensity: 4},
	}

	found, err := DetectTier(sig, TierForceDetect)
	if err != nil {
		t.Fatalf("monotonic signal must not error: %v", err)
	}
	if len(found) != 0 {
		t.Fatalf("monotonic signal has no maxima, got %+v", found)
	}
}

func TestDetectAdaptiveStopsAtFirstSufficientTier(t *testing.T) {
	found, tier, err := DetectAdaptive(scenarioSignal(), CascadeConfig{})
	if err != nil {
		t.Fatalf("DetectAdaptive failed: %v", err)
	}
	if tier != TierStandard {
		t.Fatalf("cascade tier mismatch: got %s want %s", tier, TierStandard)
	}
	if len(found) != 2 {
		t.Fatalf("cascade result mismatch: got %d features", len(found))
	}
}

func TestDetectAdaptiveEscalatesForTarget(t *testing.T) {
	var trace strings.Builder
	found, tier, err := DetectAdaptive(scenarioSignal(), CascadeConfig{Target: 3, Trace: &trace})
	if err != nil {
		t.Fatalf("DetectAdaptive failed: %v", err)
	}
	if len(found) != 3 {
		t.Fatalf("cascade did not reach target: got %d features via %s", len(found), tier)
	}
	if tier == TierStandard {
		t.Fatalf("cascade should have escalated past the standard tier")
	}
	if !strings.Contains(trace.String(), "tier standard") {
		t.Fatalf("trace missing cascade diagnostics: %q", trace.String())
	}
}

func TestDetectAdaptiveDisableForceDetect(t *testing.T) {
	sig := signal.Signal{
		{Wavelength: 1, Intensity: 1},
		{Wavelength: 2, Intensity: 2},
		{Wavelength: 3, Intensity: 1},
	}

	found, _, err := DetectAdaptive(sig, CascadeConfig{Target: 5, DisableForceDetect: true})
	if err != nil {
		t.Fatalf("DetectAdaptive failed: %v", err)
	}
	// The single maximum survives even without the last-resort tier.
	if len(found) != 1 {
		t.Fatalf("feature count mismatch: got %d want 1", len(found))
	}
}

func TestParamsValidation(t *testing.T) {
	cases := []struct {
		name string
		p    Params
	}{
		{"distance", Params{MinDistance: 0}},
		{"negative prominence", Params{MinDistance: 1, RelRangeProminence: -1}},
		{"quantile", Params{MinDistance: 1, HeightQuantile: 2}},
		{"window", Params{MinDistance: 1, Window: -1}},
	}
	for _, tc := range cases {
		if err := tc.p.Validate(); err == nil {
			t.Fatalf("%s: expected validation error for %+v", tc.name, tc.p)
		}
	}
	if err := ParamsFor(TierStandard).Validate(); err != nil {
		t.Fatalf("default params must validate: %v", err)
	}
}

func TestTierStrings(t *testing.T) {
	want := map[Tier]string{
		TierStandard:       "standard",
		TierSensitive:      "sensitive",
		TierUltraSensitive: "ultra-sensitive",
		TierForceDetect:    "force-detect",
	}
	for tier, name := range want {
		if tier.String() != name {
			t.Fatalf("tier name mismatch: got %q want %q", tier.String(), name)
		}
	}
}
