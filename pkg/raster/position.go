// Package raster provides N-dimensional containers and the domain algebra
// (positions, boxes) used by the filtering and distribution packages.
//
// Rasters are contiguous, row-major containers with the first axis varying
// fastest, so a 2D raster of shape (width, height) stores the element at
// position (x, y) at flat index y*width + x. All domain traversals follow
// this memory order, which keeps neighborhood offset tables deterministic
// and reproducible.
package raster

// Position addresses one element of an N-dimensional container, or a
// relative displacement when used as a structuring-element coordinate
// (components may then be negative).
type Position []int

// Clone returns an independent copy of the position.
func (p Position) Clone() Position {
	out := make(Position, len(p))
	copy(out, p)
	return out
}

// Add returns the component-wise sum p + q.
// Both positions must have the same rank.
func (p Position) Add(q Position) Position {
	out := make(Position, len(p))
	for i := range p {
		out[i] = p[i] + q[i]
	}
	return out
}

// Sub returns the component-wise difference p - q.
// Both positions must have the same rank.
func (p Position) Sub(q Position) Position {
	out := make(Position, len(p))
	for i := range p {
		out[i] = p[i] - q[i]
	}
	return out
}

// Equal reports whether p and q have the same rank and components.
func (p Position) Equal(q Position) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Uniform returns a position of the given rank with every component set
// to the same value.
func Uniform(rank, value int) Position {
	p := make(Position, rank)
	for i := range p {
		p[i] = value
	}
	return p
}
