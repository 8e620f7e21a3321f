package dist

import (
	"math"
	"testing"
)

// TestSummarizeKnownValues verifies the summary statistics on a small
// hand-checked sequence
func TestSummarizeKnownValues(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	s := Summarize(values)

	if s.Count != 8 {
		t.Errorf("Expected count 8, got %d", s.Count)
	}
	if s.Mean != 5 {
		t.Errorf("Expected mean 5, got %f", s.Mean)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("Expected min 2 and max 9, got %f and %f", s.Min, s.Max)
	}
	// Sample standard deviation of the sequence
	expectedStd := math.Sqrt(32.0 / 7.0)
	if math.Abs(s.StdDev-expectedStd) > 1e-12 {
		t.Errorf("Expected stddev %f, got %f", expectedStd, s.StdDev)
	}
	if s.Median < 4 || s.Median > 5 {
		t.Errorf("Expected median between 4 and 5, got %f", s.Median)
	}
}

// TestSummarizeEmpty verifies the zero summary for empty input
func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.Mean != 0 || s.Min != 0 || s.Max != 0 {
		t.Errorf("Expected zero summary, got %+v", s)
	}
}

// TestSummarizeDoesNotModifyInput verifies the input stays untouched
func TestSummarizeDoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Summarize(values)

	expected := []float64{3, 1, 2}
	for i, v := range expected {
		if values[i] != v {
			t.Errorf("Expected input untouched at %d, got %f", i, values[i])
		}
	}
}

// TestUniformBins verifies evenly spaced bounds covering the maximum
func TestUniformBins(t *testing.T) {
	bins := UniformBins(0, 10, 5)

	if len(bins) != 6 {
		t.Fatalf("Expected 6 bounds, got %d", len(bins))
	}
	for i := 0; i < 5; i++ {
		if math.Abs(bins[i]-float64(i)*2) > 1e-12 {
			t.Errorf("Expected bound %f at index %d, got %f", float64(i)*2, i, bins[i])
		}
	}
	if bins[5] <= 10 {
		t.Errorf("Expected last bound above the maximum, got %f", bins[5])
	}
}
