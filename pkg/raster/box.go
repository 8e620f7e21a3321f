package raster

import "fmt"

// Box is an axis-aligned, half-open region of positions: Start is included,
// Stop is excluded, along every axis. Boxes describe both container domains
// and structuring elements (in the latter case coordinates are relative to
// the filter's current output position and may be negative).
type Box struct {
	Start Position
	Stop  Position
}

// NewBox builds a box from its inclusive start and exclusive stop corners.
// Both corners must have the same rank.
func NewBox(start, stop Position) (Box, error) {
	if len(start) != len(stop) {
		return Box{}, fmt.Errorf("box corners have mismatched ranks: %d vs %d", len(start), len(stop))
	}
	return Box{Start: start.Clone(), Stop: stop.Clone()}, nil
}

// CenteredBox builds the symmetric structuring element of the given radius:
// a (2*radius+1)-cube spanning [-radius, radius] along every axis.
func CenteredBox(rank, radius int) Box {
	return Box{
		Start: Uniform(rank, -radius),
		Stop:  Uniform(rank, radius+1),
	}
}

// Rank returns the number of axes.
func (b Box) Rank() int {
	return len(b.Start)
}

// Shape returns the extent of the box along each axis.
// Extents of empty boxes are clamped to zero.
func (b Box) Shape() []int {
	shape := make([]int, b.Rank())
	for i := range shape {
		if e := b.Stop[i] - b.Start[i]; e > 0 {
			shape[i] = e
		}
	}
	return shape
}

// Size returns the number of positions in the box.
func (b Box) Size() int {
	size := 1
	for _, e := range b.Shape() {
		size *= e
	}
	if b.Rank() == 0 {
		return 0
	}
	return size
}

// IsEmpty reports whether the box contains no position.
func (b Box) IsEmpty() bool {
	return b.Size() == 0
}

// Equal reports whether two boxes have the same corners.
func (b Box) Equal(o Box) bool {
	return b.Start.Equal(o.Start) && b.Stop.Equal(o.Stop)
}

// Contains reports whether the position lies inside the box.
func (b Box) Contains(p Position) bool {
	if len(p) != b.Rank() {
		return false
	}
	for i := range p {
		if p[i] < b.Start[i] || p[i] >= b.Stop[i] {
			return false
		}
	}
	return true
}

// Translate returns the box shifted by the given displacement.
func (b Box) Translate(by Position) Box {
	return Box{Start: b.Start.Add(by), Stop: b.Stop.Add(by)}
}

// Grow returns the box extended by the given margin on every side.
// A negative margin shrinks the box.
func (b Box) Grow(margin int) Box {
	start := make(Position, b.Rank())
	stop := make(Position, b.Rank())
	for i := range start {
		start[i] = b.Start[i] - margin
		stop[i] = b.Stop[i] + margin
	}
	return Box{Start: start, Stop: stop}
}

// Intersect returns the overlap of two boxes of equal rank.
// The result may be empty.
func (b Box) Intersect(o Box) Box {
	start := make(Position, b.Rank())
	stop := make(Position, b.Rank())
	for i := range start {
		start[i] = max(b.Start[i], o.Start[i])
		stop[i] = min(b.Stop[i], o.Stop[i])
	}
	return Box{Start: start, Stop: stop}
}

// ForEach visits every position of the box in memory order, first axis
// fastest. The position passed to fn is reused between calls and must not
// be retained; clone it if needed.
func (b Box) ForEach(fn func(p Position)) {
	if b.IsEmpty() {
		return
	}
	rank := b.Rank()
	p := b.Start.Clone()
	for {
		fn(p)
		axis := 0
		for axis < rank {
			p[axis]++
			if p[axis] < b.Stop[axis] {
				break
			}
			p[axis] = b.Start[axis]
			axis++
		}
		if axis == rank {
			return
		}
	}
}
