// Package analysis ties the pipeline together: signal preparation,
// classical peak detection, shoulder detection over the remaining regions,
// unification, and statistics.
//
// The engine is a pure synchronous computation. Each call owns its inputs
// and outputs; no state is shared between invocations, so independent
// analyses may run concurrently.
package analysis

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-spectra/detect/peaks"
	"github.com/cwbudde/algo-spectra/detect/shoulders"
	"github.com/cwbudde/algo-spectra/spectra/feature"
	"github.com/cwbudde/algo-spectra/spectra/signal"
	featstats "github.com/cwbudde/algo-spectra/stats/features"
)

// Config controls one analysis run. The zero value runs the adaptive
// cascade with shoulder detection enabled and no feature cap.
type Config struct {
	// Tier selects a fixed detection tier. Ignored unless FixedTier is set.
	Tier peaks.Tier
	// FixedTier disables the adaptive cascade and runs Tier alone.
	FixedTier bool
	// MaxFeatures truncates the unified list to the first N features by
	// wavelength. Zero means unlimited.
	MaxFeatures int
	// DisableShoulders skips the shoulder detection stage.
	DisableShoulders bool
	// DisableForceDetect keeps the cascade from reaching the noise-prone
	// last-resort tier.
	DisableForceDetect bool

	// Signal configures preparation (smoothing).
	Signal signal.Config
	// Shoulders configures the shoulder detector.
	Shoulders shoulders.Config
	// DedupTolerance is the wavelength distance (nm) below which two
	// unified features count as one. Zero keeps the unifier default.
	DedupTolerance float64

	// Trace, when non-nil, receives cascade and stage diagnostics. This
	// replaces a process-wide debug mode so the engine stays reentrant.
	Trace io.Writer
}

// Result is the outcome of one analysis run.
type Result struct {
	// Features is the unified, wavelength-ordered, labeled feature list.
	// Empty is a valid outcome and distinct from an invalid signal.
	Features []feature.Feature
	// Tier is the classical tier that produced the peaks.
	Tier peaks.Tier
	// Stats aggregates the unified list.
	Stats featstats.Stats
}

// Analyze runs the full pipeline over raw two-column samples.
//
// Errors cross this boundary only for an invalid signal or invalid
// configuration; "no features found" is reported as an empty list.
func Analyze(samples []signal.Sample, cfg Config) (Result, error) {
	sig, err := signal.Prepare(samples, cfg.Signal)
	if err != nil {
		return Result{}, err
	}
	return AnalyzeSignal(sig, cfg)
}

// AnalyzeSignal runs detection and unification over an already prepared
// signal.
func AnalyzeSignal(sig signal.Signal, cfg Config) (Result, error) {
	var (
		classical []feature.Feature
		tier      peaks.Tier
		err       error
	)
	if cfg.FixedTier {
		tier = cfg.Tier
		classical, err = peaks.DetectTier(sig, tier)
	} else {
		classical, tier, err = peaks.DetectAdaptive(sig, peaks.CascadeConfig{
			Target:             cfg.MaxFeatures,
			DisableForceDetect: cfg.DisableForceDetect,
			Trace:              cfg.Trace,
		})
	}
	if err != nil {
		return Result{}, err
	}
	if cfg.Trace != nil {
		fmt.Fprintf(cfg.Trace, "analysis: %d classical feature(s) via tier %s\n", len(classical), tier)
	}

	var found []feature.Feature
	if !cfg.DisableShoulders {
		exclude := make([]float64, len(classical))
		for i, f := range classical {
			exclude[i] = f.Wavelength
		}
		found, err = shoulders.Detect(sig, exclude, cfg.Shoulders)
		if err != nil {
			return Result{}, err
		}
		if cfg.Trace != nil {
			fmt.Fprintf(cfg.Trace, "analysis: %d shoulder feature(s)\n", len(found))
		}
	}

	opts := []feature.Option{feature.WithMaxFeatures(cfg.MaxFeatures)}
	if cfg.DedupTolerance > 0 {
		opts = append(opts, feature.WithTolerance(cfg.DedupTolerance))
	}
	unified := feature.Unify(classical, found, opts...)

	return Result{
		Features: unified,
		Tier:     tier,
		Stats:    featstats.Calculate(unified),
	}, nil
}

// Remove drops the labeled feature from a previous result and relabels the
// remainder. It recomputes statistics but never re-runs detection.
func (r Result) Remove(label int) Result {
	remaining := feature.Remove(r.Features, label)
	return Result{
		Features: remaining,
		Tier:     r.Tier,
		Stats:    featstats.Calculate(remaining),
	}
}
