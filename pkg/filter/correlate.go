package filter

import (
	"golang.org/x/exp/constraints"

	"ndfilter/pkg/raster"
)

// CorrelateTo correlates src with a kernel raster: each output element is
// the dot product of the kernel values with the input neighborhood. The
// kernel's domain plays the role of the structuring element, so the output
// shrinks by kernel extent - 1 along every axis (see ErodeTo).
//
// Kernel values are paired with offsets in the kernel's own memory order,
// which is also the order the offset table is compiled in.
func CorrelateTo[T constraints.Integer | constraints.Float](dst, src, kernel *raster.Raster[T], workers int) error {
	table, err := prepareFilter(dst.Shape(), src.Shape(), src.Strides(), kernel.Domain())
	if err != nil {
		return err
	}

	in := src.Data()
	values := kernel.Data()
	parallelFor(dst.Domain(), workers, func(chunk raster.Box) {
		chunk.ForEach(func(p raster.Position) {
			base := src.Index(p)
			var acc T
			for i, off := range table.offsets {
				acc += values[i] * in[base+off]
			}
			dst.Set(p, acc)
		})
	})
	return nil
}

// Correlate allocates the shrunk output raster and correlates src with the
// kernel into it.
func Correlate[T constraints.Integer | constraints.Float](src, kernel *raster.Raster[T], workers int) (*raster.Raster[T], error) {
	dst, err := newOutput[T](src.Shape(), kernel.Domain())
	if err != nil {
		return nil, err
	}
	if err := CorrelateTo(dst, src, kernel, workers); err != nil {
		return nil, err
	}
	return dst, nil
}
