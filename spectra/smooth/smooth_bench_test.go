package smooth

import (
	"math"
	"strconv"
	"testing"
)

func benchTrace(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(float64(i)*0.05) + 0.3*math.Sin(float64(i)*0.4)
	}
	return out
}

func BenchmarkMovingAverage(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		y := benchTrace(n)
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_ = MovingAverage(y, 5)
			}
		})
	}
}

func BenchmarkSavitzkyGolay(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		y := benchTrace(n)
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				_ = SavitzkyGolay(y, 7)
			}
		})
	}
}

func BenchmarkLowpassFFT(b *testing.B) {
	for _, n := range []int{256, 1024, 4096} {
		y := benchTrace(n)
		b.Run("n_"+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := LowpassFFT(y, 0.1); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
