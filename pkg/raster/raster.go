package raster

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Raster is a contiguous N-dimensional container with a fixed row-major
// layout (first axis fastest). The stride pattern is identical across the
// whole extent, so flat displacements between neighboring elements are
// translation-invariant; the filter package relies on this to precompute
// neighborhood offset tables.
type Raster[T any] struct {
	shape   []int
	strides []int
	data    []T
}

// New allocates a zero-filled raster of the given shape.
// Every extent must be non-negative.
func New[T any](shape ...int) (*Raster[T], error) {
	size := 1
	for axis, e := range shape {
		if e < 0 {
			return nil, fmt.Errorf("negative extent %d along axis %d", e, axis)
		}
		size *= e
	}
	return wrap(make([]T, size), shape), nil
}

// FromSlice wraps an existing flat buffer, which must hold exactly one
// element per position of the shape. The raster aliases the buffer; it does
// not copy.
func FromSlice[T any](data []T, shape ...int) (*Raster[T], error) {
	size := 1
	for axis, e := range shape {
		if e < 0 {
			return nil, fmt.Errorf("negative extent %d along axis %d", e, axis)
		}
		size *= e
	}
	if len(data) != size {
		return nil, fmt.Errorf("buffer length %d does not match shape size %d", len(data), size)
	}
	return wrap(data, shape), nil
}

func wrap[T any](data []T, shape []int) *Raster[T] {
	s := make([]int, len(shape))
	copy(s, shape)
	strides := make([]int, len(shape))
	stride := 1
	for i := range shape {
		strides[i] = stride
		stride *= shape[i]
	}
	return &Raster[T]{shape: s, strides: strides, data: data}
}

// Rank returns the number of axes.
func (r *Raster[T]) Rank() int {
	return len(r.shape)
}

// Shape returns a copy of the extent along each axis.
func (r *Raster[T]) Shape() []int {
	out := make([]int, len(r.shape))
	copy(out, r.shape)
	return out
}

// Extent returns the extent along one axis.
func (r *Raster[T]) Extent(axis int) int {
	return r.shape[axis]
}

// Strides returns a copy of the flat stride along each axis.
func (r *Raster[T]) Strides() []int {
	out := make([]int, len(r.strides))
	copy(out, r.strides)
	return out
}

// Size returns the total number of elements.
func (r *Raster[T]) Size() int {
	return len(r.data)
}

// Data returns the underlying flat buffer in memory order.
func (r *Raster[T]) Data() []T {
	return r.data
}

// Index returns the flat offset of a position. The position must lie
// inside the domain; this is not checked.
func (r *Raster[T]) Index(p Position) int {
	idx := 0
	for i, c := range p {
		idx += c * r.strides[i]
	}
	return idx
}

// At returns the element at a position.
func (r *Raster[T]) At(p Position) T {
	return r.data[r.Index(p)]
}

// Set writes the element at a position.
func (r *Raster[T]) Set(p Position, v T) {
	r.data[r.Index(p)] = v
}

// Domain returns the box of valid positions, anchored at the origin.
func (r *Raster[T]) Domain() Box {
	stop := make(Position, len(r.shape))
	copy(stop, r.shape)
	return Box{Start: make(Position, len(r.shape)), Stop: stop}
}

// Fill sets every element to the same value.
func (r *Raster[T]) Fill(v T) {
	for i := range r.data {
		r.data[i] = v
	}
}

// Clone returns a deep copy of the raster.
func (r *Raster[T]) Clone() *Raster[T] {
	data := make([]T, len(r.data))
	copy(data, r.data)
	return wrap(data, r.shape)
}

// Map applies fn to every element in place.
func (r *Raster[T]) Map(fn func(T) T) {
	for i, v := range r.data {
		r.data[i] = fn(v)
	}
}

// FillWithOffsets sets every element to its own flat index, which gives a
// raster where all values are distinct and ordered in memory order. Mostly
// useful to build deterministic test fixtures.
func FillWithOffsets[T constraints.Integer | constraints.Float](r *Raster[T]) {
	for i := range r.Data() {
		r.Data()[i] = T(i)
	}
}
