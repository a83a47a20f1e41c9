// Package features computes descriptive statistics over a unified feature
// list. It contains no detection logic; it is a read-only view used by
// tables, exports, and reports.
package features

import (
	"math"

	"github.com/cwbudde/algo-spectra/spectra/feature"
)

// Stats holds aggregate values of a unified feature list.
type Stats struct {
	Total     int
	Classical int
	Shoulder  int

	MaxIntensity  float64
	MinIntensity  float64
	MeanIntensity float64
	StdIntensity  float64

	WavelengthSpan float64 // max - min wavelength
	MeanWavelength float64

	// FirstToThirdRatio and FirstToThirdSeparation compare the first and
	// third feature by wavelength; both are zero when fewer than three
	// features exist. The ratio alone is zero when the third intensity is
	// zero, while the separation is still reported.
	FirstToThirdRatio      float64
	FirstToThirdSeparation float64
}

// Calculate computes statistics over feats. A nil or empty list yields the
// zero Stats; it is never an error.
func Calculate(feats []feature.Feature) Stats {
	n := len(feats)
	if n == 0 {
		return Stats{}
	}

	s := Stats{
		Total:        n,
		MaxIntensity: feats[0].Intensity,
		MinIntensity: feats[0].Intensity,
	}

	var (
		sumIntensity  float64
		sumWavelength float64
		minWavelength = feats[0].Wavelength
		maxWavelength = feats[0].Wavelength
	)
	for _, f := range feats {
		switch f.Kind {
		case feature.KindShoulder:
			s.Shoulder++
		default:
			s.Classical++
		}

		sumIntensity += f.Intensity
		sumWavelength += f.Wavelength

		if f.Intensity > s.MaxIntensity {
			s.MaxIntensity = f.Intensity
		}
		if f.Intensity < s.MinIntensity {
			s.MinIntensity = f.Intensity
		}
		if f.Wavelength > maxWavelength {
			maxWavelength = f.Wavelength
		}
		if f.Wavelength < minWavelength {
			minWavelength = f.Wavelength
		}
	}

	nf := float64(n)
	s.MeanIntensity = sumIntensity / nf
	s.MeanWavelength = sumWavelength / nf
	s.WavelengthSpan = maxWavelength - minWavelength

	var sumSq float64
	for _, f := range feats {
		d := f.Intensity - s.MeanIntensity
		sumSq += d * d
	}
	s.StdIntensity = math.Sqrt(sumSq / nf)

	if n >= 3 {
		first, third := feats[0], feats[2]
		if third.Intensity != 0 {
			s.FirstToThirdRatio = first.Intensity / third.Intensity
		}
		s.FirstToThirdSeparation = third.Wavelength - first.Wavelength
	}
	return s
}
