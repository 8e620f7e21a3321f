// Package dist provides value-distribution tools over rasters: exact
// histograms with caller-defined bin bounds, and summary statistics for
// reporting.
package dist

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/constraints"

	"ndfilter/pkg/raster"
)

// Histogram counts the elements of a raster into half-open bins: counts[i]
// is the number of values v with bins[i] <= v < bins[i+1]. Values below
// bins[0] or at/above the last bound are excluded from every count; this is
// by design, not an error.
//
// The bin bounds must be monotonically non-decreasing and define at least
// one bin. Bounds are scanned linearly per element, which is the right
// trade-off for the small bin counts this is meant for; counters are
// incremented atomically so chunks can be processed concurrently.
// workers <= 0 uses all available cores.
func Histogram[T constraints.Integer | constraints.Float](in *raster.Raster[T], bins []T, workers int) ([]int64, error) {
	if err := validateBins(bins); err != nil {
		return nil, err
	}

	binCount := len(bins) - 1
	counts := make([]int64, binCount)
	data := in.Data()

	forEachChunk(len(data), workers, func(start, stop int) {
		for _, value := range data[start:stop] {
			if value < bins[0] || value >= bins[binCount] {
				continue
			}
			index := 0
			for index < binCount && value >= bins[index+1] {
				index++
			}
			atomic.AddInt64(&counts[index], 1)
		}
	})

	return counts, nil
}

func validateBins[T constraints.Integer | constraints.Float](bins []T) error {
	if len(bins) < 2 {
		return errors.New("histogram needs at least two bin bounds")
	}
	for i := 1; i < len(bins); i++ {
		if bins[i] < bins[i-1] {
			return fmt.Errorf("bin bounds must be non-decreasing, got %v < %v at index %d", bins[i], bins[i-1], i)
		}
	}
	return nil
}

// forEachChunk runs body over contiguous index ranges of a flat buffer, one
// goroutine per range.
func forEachChunk(size, workers int, body func(start, stop int)) {
	if workers < 1 {
		workers = 1
	}
	if workers > size {
		workers = size
	}
	if workers <= 1 {
		if size > 0 {
			body(0, size)
		}
		return
	}

	per := (size + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < size; start += per {
		stop := min(start+per, size)
		wg.Add(1)
		go func(a, b int) {
			defer wg.Done()
			body(a, b)
		}(start, stop)
	}
	wg.Wait()
}
