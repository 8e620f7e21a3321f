// Package filter implements neighborhood filters over rasters: morphological
// erosion and dilation, rank/median filtering and correlation.
//
// All filters share the same engine. The structuring element (or kernel
// domain) is compiled once into a table of flat memory offsets relative to a
// base element; the table is then reused at every output position, which is
// valid because raster layouts are translation-invariant. Because
// structuring elements extend around the output position and no border
// extrapolation is performed, the output domain is the input domain shrunk
// by the structuring element: output extent = input extent - strel extent + 1
// along every axis.
package filter

import (
	"errors"
	"fmt"

	"ndfilter/pkg/raster"
)

// OffsetTable is the ordered sequence of flat memory displacements from a
// base element to each point of a structuring element, in the element's
// memory-order traversal (first axis fastest). It is immutable once built
// and reusable at every valid output position.
type OffsetTable struct {
	offsets []int
}

// CompileOffsets builds the offset table of a structuring element for a
// container layout given by its per-axis strides.
//
// The layout must be contiguous with a single stride pattern across the
// whole extent, so that displacements are position-independent; this is a
// documented precondition, not a runtime check. The structuring element
// must be non-empty and of the same rank as the layout.
func CompileOffsets(strides []int, strel raster.Box) (*OffsetTable, error) {
	if strel.Rank() != len(strides) {
		return nil, fmt.Errorf("structuring element rank %d does not match layout rank %d", strel.Rank(), len(strides))
	}
	if strel.IsEmpty() {
		return nil, errors.New("empty structuring element")
	}
	offsets := make([]int, 0, strel.Size())
	strel.ForEach(func(p raster.Position) {
		off := 0
		for i, c := range p {
			off += c * strides[i]
		}
		offsets = append(offsets, off)
	})
	return &OffsetTable{offsets: offsets}, nil
}

// Len returns the number of structuring-element points.
func (t *OffsetTable) Len() int {
	return len(t.offsets)
}

// At returns the i-th displacement.
func (t *OffsetTable) At(i int) int {
	return t.offsets[i]
}

// zeroBased shifts a structuring element so that its start corner sits at
// the origin. Filters anchor the output grid at the first valid input
// position, so only the element's shape matters, not where it sits.
func zeroBased(strel raster.Box) raster.Box {
	shift := make(raster.Position, strel.Rank())
	for i := range shift {
		shift[i] = -strel.Start[i]
	}
	return strel.Translate(shift)
}

// outputShape computes the shrunk output shape for an input shape and a
// structuring element: out = in - strel + 1 along every axis.
func outputShape(inShape []int, strel raster.Box) ([]int, error) {
	if len(inShape) != strel.Rank() {
		return nil, fmt.Errorf("structuring element rank %d does not match input rank %d", strel.Rank(), len(inShape))
	}
	strelShape := strel.Shape()
	out := make([]int, len(inShape))
	for axis := range inShape {
		out[axis] = inShape[axis] - strelShape[axis] + 1
		if out[axis] <= 0 {
			return nil, fmt.Errorf("structuring element extent %d exceeds input extent %d along axis %d",
				strelShape[axis], inShape[axis], axis)
		}
	}
	return out, nil
}

// checkOutputShape validates a caller-allocated output raster against the
// shrinkage formula.
func checkOutputShape(dstShape, srcShape []int, strel raster.Box) error {
	expected, err := outputShape(srcShape, strel)
	if err != nil {
		return err
	}
	if len(dstShape) != len(expected) {
		return fmt.Errorf("output rank %d does not match expected rank %d", len(dstShape), len(expected))
	}
	for axis := range expected {
		if dstShape[axis] != expected[axis] {
			return fmt.Errorf("output extent %d along axis %d, expected %d", dstShape[axis], axis, expected[axis])
		}
	}
	return nil
}
