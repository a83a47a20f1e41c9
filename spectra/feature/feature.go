// Package feature defines the detected spectral feature record and the
// merge/dedupe/labeling logic that unifies classical peaks and shoulders
// into one wavelength-ordered list.
package feature

import (
	"fmt"
	"sort"
)

// Kind distinguishes how a feature was detected.
type Kind int

const (
	// KindClassical marks a local intensity maximum.
	KindClassical Kind = iota
	// KindShoulder marks a curvature extremum on a monotonic slope.
	KindShoulder
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindClassical:
		return "peak"
	case KindShoulder:
		return "shoulder"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Feature is one detected spectral event. It is an immutable value record:
// Unify and Remove return new slices and never mutate a Feature in place.
//
// Prominence is detector-specific: height above the bounding valleys for
// classical peaks, normalized curvature magnitude for shoulders. The two
// are never compared numerically, only positionally.
type Feature struct {
	Wavelength float64
	Intensity  float64
	Kind       Kind
	Label      int
	Prominence float64
}

// DisplayLabel returns the UI label for the feature ("P1", "P2", ...).
func (f Feature) DisplayLabel() string {
	return fmt.Sprintf("P%d", f.Label)
}

const defaultTolerance = 1.0 // nm

type unifyConfig struct {
	maxFeatures int
	tolerance   float64
}

// Option configures Unify.
type Option func(*unifyConfig)

// WithMaxFeatures truncates the unified list to the first n features by
// wavelength. Zero or negative means unlimited.
func WithMaxFeatures(n int) Option {
	return func(cfg *unifyConfig) {
		cfg.maxFeatures = n
	}
}

// WithTolerance sets the wavelength distance (in nm) below which two
// features are considered the same spectral event. Defaults to 1 nm.
func WithTolerance(nm float64) Option {
	return func(cfg *unifyConfig) {
		if nm >= 0 {
			cfg.tolerance = nm
		}
	}
}

// Unify merges classical and shoulder features into one ordered, labeled
// list.
//
// Features are sorted by wavelength; features within the tolerance of one
// another collapse to a single entry, preferring the classical one (the
// shoulder detector already excludes claimed regions, so this is a guard
// against configuration drift, not the primary dedup mechanism). When a
// maximum count is set, the list is truncated to the first N entries by
// wavelength, never by intensity. Labels are assigned 1..N in final order.
func Unify(classical, shoulders []Feature, opts ...Option) []Feature {
	cfg := unifyConfig{tolerance: defaultTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	merged := make([]Feature, 0, len(classical)+len(shoulders))
	for _, f := range classical {
		f.Kind = KindClassical
		merged = append(merged, f)
	}
	for _, f := range shoulders {
		f.Kind = KindShoulder
		merged = append(merged, f)
	}

	// Classical before shoulder at equal wavelength, so the dedup pass
	// below keeps the classical one.
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Wavelength != merged[j].Wavelength {
			return merged[i].Wavelength < merged[j].Wavelength
		}
		return merged[i].Kind < merged[j].Kind
	})

	deduped := merged[:0]
	for _, f := range merged {
		if len(deduped) > 0 {
			prev := &deduped[len(deduped)-1]
			if f.Wavelength-prev.Wavelength <= cfg.tolerance {
				if prev.Kind == KindShoulder && f.Kind == KindClassical {
					*prev = f
				}
				continue
			}
		}
		deduped = append(deduped, f)
	}

	if cfg.maxFeatures > 0 && len(deduped) > cfg.maxFeatures {
		deduped = deduped[:cfg.maxFeatures]
	}

	out := make([]Feature, len(deduped))
	copy(out, deduped)
	for i := range out {
		out[i].Label = i + 1
	}
	return out
}

// Remove drops the feature carrying the given label and relabels the rest
// 1..N-1 in wavelength order. Removing an absent label is a no-op; the
// operation is idempotent and never re-runs detection.
func Remove(features []Feature, label int) []Feature {
	out := make([]Feature, 0, len(features))
	for _, f := range features {
		if f.Label == label {
			continue
		}
		out = append(out, f)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Wavelength < out[j].Wavelength
	})
	for i := range out {
		out[i].Label = i + 1
	}
	return out
}
