package shoulders

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/cwbudde/algo-spectra/spectra/signal"
)

func benchSpectrum(n int) (signal.Signal, []float64) {
	x := testutil.Grid(300, 0.5, n)
	y := make([]float64, n)
	span := x[n-1] - x[0]

	main := x[0] + span*0.5
	testutil.GaussianBand(y, x, main, 50, 8)
	// Secondary band close enough to ride the main slope as a shoulder.
	testutil.GaussianBand(y, x, main+12, 10, 4)
	testutil.AddNoise(y, 3, 0.02)

	return testutil.Spectrum(x, y), []float64{main}
}

func BenchmarkDetect(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		sig, exclude := benchSpectrum(n)
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := Detect(sig, exclude, Config{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
