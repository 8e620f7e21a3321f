package pipeline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"ndfilter/pkg/dist"
	"ndfilter/pkg/raster"
)

// Metrics holds the quality and distribution measurements reported after a
// pipeline run. Comparisons are computed between the loaded volume and the
// denoised volume, aligned on the denoised domain.
type Metrics struct {
	// RMSE is the root mean square difference between the aligned input
	// and denoised intensities. Lower values mean the filter changed less.
	RMSE float64

	// Correlation is the Pearson correlation between the aligned input and
	// denoised intensities. Values near 1 indicate structure was preserved.
	Correlation float64

	// Input and Output summarize the intensity distributions before and
	// after denoising.
	Input  dist.Summary
	Output dist.Summary

	// HistogramBins are the bin bounds used for Histogram, covering [0, 1].
	HistogramBins []float64

	// Histogram counts denoised intensities per bin.
	Histogram []int64

	// MaskFraction is the share of mask voxels set after thresholding and
	// morphology.
	MaskFraction float64
}

// cropCenter copies the centered window of the given shape out of a raster.
// It aligns a full-size volume with one shrunk by filtering, where each axis
// loses the same margin on both sides.
func cropCenter(src *raster.Raster[float64], shape []int) (*raster.Raster[float64], error) {
	if len(shape) != src.Rank() {
		return nil, fmt.Errorf("crop shape has rank %d, raster has rank %d", len(shape), src.Rank())
	}

	start := make(raster.Position, src.Rank())
	stop := make(raster.Position, src.Rank())
	for i := range shape {
		margin := src.Extent(i) - shape[i]
		if margin < 0 || margin%2 != 0 {
			return nil, fmt.Errorf("cannot center a window of extent %d in extent %d on axis %d",
				shape[i], src.Extent(i), i)
		}
		start[i] = margin / 2
		stop[i] = start[i] + shape[i]
	}

	out, err := raster.New[float64](shape...)
	if err != nil {
		return nil, err
	}

	window := raster.Box{Start: start, Stop: stop}
	window.ForEach(func(p raster.Position) {
		out.Set(p.Sub(start), src.At(p))
	})
	return out, nil
}

// rmse computes the root mean square difference between two equal-length
// sequences
func rmse(a, b []float64) float64 {
	n := len(a)
	if n == 0 || n != len(b) {
		return 0
	}

	mse := 0.0
	for i := range a {
		diff := a[i] - b[i]
		mse += diff * diff
	}
	return math.Sqrt(mse / float64(n))
}

// computeMetrics fills in the run metrics from the aligned volumes and the
// final mask
func (p *Pipeline) computeMetrics(input, denoised *raster.Raster[float64], mask *raster.Raster[bool]) error {
	aligned, err := cropCenter(input, denoised.Shape())
	if err != nil {
		return fmt.Errorf("failed to align volumes: %w", err)
	}

	p.metrics.RMSE = rmse(aligned.Data(), denoised.Data())
	p.metrics.Correlation = stat.Correlation(aligned.Data(), denoised.Data(), nil)
	p.metrics.Input = dist.Summarize(aligned.Data())
	p.metrics.Output = dist.Summarize(denoised.Data())

	p.metrics.HistogramBins = dist.UniformBins(0, 1, p.params.HistogramBins)
	counts, err := dist.Histogram(denoised, p.metrics.HistogramBins, p.params.Workers)
	if err != nil {
		return fmt.Errorf("failed to compute histogram: %w", err)
	}
	p.metrics.Histogram = counts

	set := 0
	for _, v := range mask.Data() {
		if v {
			set++
		}
	}
	if mask.Size() > 0 {
		p.metrics.MaskFraction = float64(set) / float64(mask.Size())
	}

	return nil
}
