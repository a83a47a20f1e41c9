// Command peakscan analyzes two-column spectrum files for peaks and
// shoulders and prints a labeled feature table.
//
// Usage:
//
//	peakscan [flags] file...
//
// Examples:
//
//	peakscan spectrum.txt
//	peakscan -tier ultra-sensitive spectrum.csv
//	peakscan -max 3 -smooth spectrum.txt
//	peakscan -csv peaks.csv spectrum.txt
//	peakscan -no-shoulders -no-force spectrum.txt
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-spectra/detect/peaks"
	"github.com/cwbudde/algo-spectra/detect/shoulders"
	"github.com/cwbudde/algo-spectra/export"
	"github.com/cwbudde/algo-spectra/load"
	"github.com/cwbudde/algo-spectra/measure/analysis"
	"github.com/cwbudde/algo-spectra/spectra/curve"
	"github.com/cwbudde/algo-spectra/spectra/signal"
)

var tierNames = map[string]peaks.Tier{
	"standard":        peaks.TierStandard,
	"sensitive":       peaks.TierSensitive,
	"ultra-sensitive": peaks.TierUltraSensitive,
	"force-detect":    peaks.TierForceDetect,
}

func main() {
	tierName := flag.String("tier", "", "fixed detection tier (standard, sensitive, ultra-sensitive, force-detect); empty runs the adaptive cascade")
	maxFeatures := flag.Int("max", 0, "maximum number of features to report (0 = unlimited)")
	smooth := flag.Bool("smooth", false, "apply moving-average smoothing before detection")
	smoothWindow := flag.Int("smooth-window", 3, "smoothing window in samples")
	noShoulders := flag.Bool("no-shoulders", false, "skip shoulder detection")
	noForce := flag.Bool("no-force", false, "disable the force-detect cascade tier")
	sensitivity := flag.Float64("sensitivity", 0, "shoulder curvature sensitivity in (0, 1]; 0 uses the default")
	exclusion := flag.Float64("exclusion", 0, "shoulder exclusion radius around peaks in nm; 0 uses the default")
	normalize := flag.Bool("normalize", false, "rescale intensities to a maximum of 1 before detection")
	csvOut := flag.String("csv", "", "write the feature list to this CSV file")
	verbose := flag.Bool("v", false, "print cascade diagnostics to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: peakscan [flags] file...\n\n")
		fmt.Fprintf(os.Stderr, "Analyzes two-column (wavelength, intensity) spectrum files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  peakscan spectrum.txt\n")
		fmt.Fprintf(os.Stderr, "  peakscan -tier ultra-sensitive spectrum.csv\n")
		fmt.Fprintf(os.Stderr, "  peakscan -max 3 -csv peaks.csv spectrum.txt\n")
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := analysis.Config{
		MaxFeatures:        *maxFeatures,
		DisableShoulders:   *noShoulders,
		DisableForceDetect: *noForce,
		Signal: signal.Config{
			Smooth:       *smooth,
			SmoothWindow: *smoothWindow,
		},
		Shoulders: shoulders.Config{
			Sensitivity:     *sensitivity,
			ExclusionRadius: *exclusion,
		},
	}
	if *tierName != "" {
		tier, ok := tierNames[*tierName]
		if !ok {
			fmt.Fprintf(os.Stderr, "error: unknown tier %q\n", *tierName)
			os.Exit(2)
		}
		cfg.FixedTier = true
		cfg.Tier = tier
	}
	if *verbose {
		cfg.Trace = os.Stderr
	}

	exitCode := 0
	for _, path := range flag.Args() {
		if err := scanFile(path, cfg, *normalize, *csvOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

func scanFile(path string, cfg analysis.Config, normalize bool, csvOut string) error {
	samples, err := load.ReadFile(path)
	if err != nil {
		return err
	}
	if normalize {
		normalized, err := curve.Normalize(samples)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		samples = normalized
	}

	res, err := analysis.Analyze(samples, cfg)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	fmt.Printf("%s: %d feature(s) [tier %s]\n", path, len(res.Features), res.Tier)
	if len(res.Features) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Label\tWavelength [nm]\tIntensity [a.u.]\tKind\tProminence\n")
	for _, f := range res.Features {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%s\t%.4g\n",
			f.DisplayLabel(), f.Wavelength, f.Intensity, f.Kind, f.Prominence)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	st := res.Stats
	fmt.Printf("peaks: %d, shoulders: %d, mean intensity: %.1f, span: %.1f nm\n",
		st.Classical, st.Shoulder, st.MeanIntensity, st.WavelengthSpan)

	if csvOut != "" {
		f, err := os.Create(csvOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", csvOut, err)
		}
		defer f.Close()
		if err := export.WriteCSV(f, res.Features); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOut)
	}
	return nil
}
