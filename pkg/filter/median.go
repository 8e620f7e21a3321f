package filter

import (
	"golang.org/x/exp/constraints"

	"ndfilter/pkg/rank"
	"ndfilter/pkg/raster"
)

// MedianFilterTo computes the exact median filter of src: each output
// element is the median of the neighbors selected by the structuring
// element. See ErodeTo for the output shape contract.
//
// Neighbor values are gathered into a scratch buffer owned by the worker
// goroutine, then partially sorted by the selection routine; each concurrent
// chunk gets an independent buffer, so no synchronization is needed beyond
// the disjoint output writes.
func MedianFilterTo[T constraints.Integer | constraints.Float](dst, src *raster.Raster[T], strel raster.Box, workers int) error {
	table, err := prepareFilter(dst.Shape(), src.Shape(), src.Strides(), strel)
	if err != nil {
		return err
	}

	in := src.Data()
	parallelFor(dst.Domain(), workers, func(chunk raster.Box) {
		neighbors := make([]T, table.Len())
		chunk.ForEach(func(p raster.Position) {
			base := src.Index(p)
			for i, off := range table.offsets {
				neighbors[i] = in[base+off]
			}
			dst.Set(p, rank.Median(neighbors))
		})
	})
	return nil
}

// MedianFilter allocates the shrunk output raster and median-filters src
// into it.
func MedianFilter[T constraints.Integer | constraints.Float](src *raster.Raster[T], strel raster.Box, workers int) (*raster.Raster[T], error) {
	dst, err := newOutput[T](src.Shape(), strel)
	if err != nil {
		return nil, err
	}
	if err := MedianFilterTo(dst, src, strel, workers); err != nil {
		return nil, err
	}
	return dst, nil
}

// MedianFilterRadius median-filters with the symmetric (2*radius+1)-cube
// structuring element.
func MedianFilterRadius[T constraints.Integer | constraints.Float](src *raster.Raster[T], radius, workers int) (*raster.Raster[T], error) {
	return MedianFilter(src, raster.CenteredBox(src.Rank(), radius), workers)
}
