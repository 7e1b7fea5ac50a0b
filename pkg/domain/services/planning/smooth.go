package planning

import (
	"iter"
	"slices"
)

// DefaultSmoothingWindow is the window used by the forecast view
const DefaultSmoothingWindow = 7

// Smooth returns a centred moving average of series, one value per input
// point, each rounded to two decimals. Near the ends the window is clipped to
// the series instead of padded, so the first and last points average fewer
// observations.
//
// The series is copied when Smooth is called; the returned sequence can be
// ranged over any number of times and always yields the same values.
// windowSize must be positive; smaller values behave like a window of 1.
func Smooth(series []float64, windowSize int) iter.Seq[float64] {
	data := slices.Clone(series)
	half := max(windowSize, 1) / 2

	return func(yield func(float64) bool) {
		for i := range data {
			lo := max(0, i-half)
			hi := min(len(data), i+half+1)

			var sum float64
			for _, v := range data[lo:hi] {
				sum += v
			}

			if !yield(roundPlaces(sum/float64(hi-lo), 2)) {
				return
			}
		}
	}
}

// SmoothSeries collects Smooth into a slice
func SmoothSeries(series []float64, windowSize int) []float64 {
	out := make([]float64, 0, len(series))
	for v := range Smooth(series, windowSize) {
		out = append(out, v)
	}
	return out
}
