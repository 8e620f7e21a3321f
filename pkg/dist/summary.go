package dist

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive statistics of a value sequence, as reported
// by the pipeline after each stage.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Median float64
}

// Summarize computes the summary statistics of a value sequence. The input
// is not modified. An empty input yields a zero Summary.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Count:  len(values),
		Mean:   stat.Mean(values, nil),
		StdDev: stat.StdDev(values, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
	}
}

// UniformBins builds count+1 evenly spaced bin bounds spanning [low, high].
// The last bound is nudged above high so that the maximum value falls into
// the last half-open bin.
func UniformBins(low, high float64, count int) []float64 {
	if count < 1 {
		count = 1
	}
	bins := make([]float64, count+1)
	width := (high - low) / float64(count)
	for i := range bins {
		bins[i] = low + float64(i)*width
	}
	// Half-open bins would otherwise exclude the maximum itself
	bins[count] = high + width*1e-9
	if bins[count] <= high {
		bins[count] = high + 1
	}
	return bins
}
