package filter

import "ndfilter/pkg/raster"

// ErodeTo computes the morphological erosion of a binary raster: each
// output element is true iff every neighbor selected by the structuring
// element is true (a logical AND over the neighborhood, short-circuiting on
// the first false neighbor).
//
// dst must be caller-allocated with the shrunk shape
// src.Extent(a) - strel.Shape()[a] + 1 along every axis. workers <= 0 uses
// all available cores.
func ErodeTo(dst, src *raster.Raster[bool], strel raster.Box, workers int) error {
	table, err := prepareFilter(dst.Shape(), src.Shape(), src.Strides(), strel)
	if err != nil {
		return err
	}

	in := src.Data()
	parallelFor(dst.Domain(), workers, func(chunk raster.Box) {
		chunk.ForEach(func(p raster.Position) {
			base := src.Index(p)
			value := true
			for _, off := range table.offsets {
				if !in[base+off] {
					value = false
					break
				}
			}
			dst.Set(p, value)
		})
	})
	return nil
}

// DilateTo computes the morphological dilation of a binary raster: each
// output element is true iff at least one neighbor selected by the
// structuring element is true (a logical OR over the neighborhood,
// short-circuiting on the first true neighbor). See ErodeTo for the output
// shape contract.
func DilateTo(dst, src *raster.Raster[bool], strel raster.Box, workers int) error {
	table, err := prepareFilter(dst.Shape(), src.Shape(), src.Strides(), strel)
	if err != nil {
		return err
	}

	in := src.Data()
	parallelFor(dst.Domain(), workers, func(chunk raster.Box) {
		chunk.ForEach(func(p raster.Position) {
			base := src.Index(p)
			value := false
			for _, off := range table.offsets {
				if in[base+off] {
					value = true
					break
				}
			}
			dst.Set(p, value)
		})
	})
	return nil
}

// Erode allocates the shrunk output raster and erodes src into it.
func Erode(src *raster.Raster[bool], strel raster.Box, workers int) (*raster.Raster[bool], error) {
	dst, err := newOutput[bool](src.Shape(), strel)
	if err != nil {
		return nil, err
	}
	if err := ErodeTo(dst, src, strel, workers); err != nil {
		return nil, err
	}
	return dst, nil
}

// Dilate allocates the shrunk output raster and dilates src into it.
func Dilate(src *raster.Raster[bool], strel raster.Box, workers int) (*raster.Raster[bool], error) {
	dst, err := newOutput[bool](src.Shape(), strel)
	if err != nil {
		return nil, err
	}
	if err := DilateTo(dst, src, strel, workers); err != nil {
		return nil, err
	}
	return dst, nil
}

// ErodeRadius erodes with the symmetric (2*radius+1)-cube structuring
// element.
func ErodeRadius(src *raster.Raster[bool], radius, workers int) (*raster.Raster[bool], error) {
	return Erode(src, raster.CenteredBox(src.Rank(), radius), workers)
}

// DilateRadius dilates with the symmetric (2*radius+1)-cube structuring
// element.
func DilateRadius(src *raster.Raster[bool], radius, workers int) (*raster.Raster[bool], error) {
	return Dilate(src, raster.CenteredBox(src.Rank(), radius), workers)
}

// prepareFilter validates the output shape and compiles the offset table of
// the zero-based structuring element.
func prepareFilter(dstShape, srcShape, srcStrides []int, strel raster.Box) (*OffsetTable, error) {
	if err := checkOutputShape(dstShape, srcShape, strel); err != nil {
		return nil, err
	}
	return CompileOffsets(srcStrides, zeroBased(strel))
}

// newOutput allocates the shrunk output raster for an input shape and a
// structuring element.
func newOutput[T any](srcShape []int, strel raster.Box) (*raster.Raster[T], error) {
	shape, err := outputShape(srcShape, strel)
	if err != nil {
		return nil, err
	}
	return raster.New[T](shape...)
}
