package raster

import "testing"

// TestNewBoxRankMismatch ensures mismatched corner ranks are rejected
func TestNewBoxRankMismatch(t *testing.T) {
	if _, err := NewBox(Position{0}, Position{1, 1}); err == nil {
		t.Errorf("Expected error for mismatched ranks, got nil")
	}
}

// TestCenteredBox verifies the radius-based structuring element
func TestCenteredBox(t *testing.T) {
	b := CenteredBox(2, 1)

	if !b.Start.Equal(Position{-1, -1}) {
		t.Errorf("Expected start (-1,-1), got %v", b.Start)
	}
	if !b.Stop.Equal(Position{2, 2}) {
		t.Errorf("Expected stop (2,2), got %v", b.Stop)
	}
	if b.Size() != 9 {
		t.Errorf("Expected size 9, got %d", b.Size())
	}

	shape := b.Shape()
	for axis, e := range shape {
		if e != 3 {
			t.Errorf("Expected extent 3 along axis %d, got %d", axis, e)
		}
	}
}

// TestBoxContains verifies half-open membership
func TestBoxContains(t *testing.T) {
	b := Box{Start: Position{0, 0}, Stop: Position{4, 3}}

	if !b.Contains(Position{0, 0}) {
		t.Errorf("Expected box to contain its start corner")
	}
	if !b.Contains(Position{3, 2}) {
		t.Errorf("Expected box to contain (3,2)")
	}
	if b.Contains(Position{4, 2}) {
		t.Errorf("Expected box to exclude its stop corner along axis 0")
	}
	if b.Contains(Position{-1, 0}) {
		t.Errorf("Expected box to exclude negative positions")
	}
}

// TestBoxTranslate verifies displacement
func TestBoxTranslate(t *testing.T) {
	b := CenteredBox(2, 1).Translate(Position{1, 1})

	if !b.Start.Equal(Position{0, 0}) {
		t.Errorf("Expected start (0,0), got %v", b.Start)
	}
	if !b.Stop.Equal(Position{3, 3}) {
		t.Errorf("Expected stop (3,3), got %v", b.Stop)
	}
}

// TestBoxIntersect verifies overlaps, including empty results
func TestBoxIntersect(t *testing.T) {
	a := Box{Start: Position{0, 0}, Stop: Position{4, 4}}
	b := Box{Start: Position{2, 2}, Stop: Position{6, 6}}

	overlap := a.Intersect(b)
	if !overlap.Start.Equal(Position{2, 2}) || !overlap.Stop.Equal(Position{4, 4}) {
		t.Errorf("Expected overlap [(2,2),(4,4)), got [%v,%v)", overlap.Start, overlap.Stop)
	}

	far := Box{Start: Position{10, 10}, Stop: Position{12, 12}}
	if !a.Intersect(far).IsEmpty() {
		t.Errorf("Expected empty intersection with a disjoint box")
	}
}

// TestBoxForEachOrder verifies first-axis-fastest traversal order
func TestBoxForEachOrder(t *testing.T) {
	b := Box{Start: Position{0, 0}, Stop: Position{2, 2}}

	var visited []Position
	b.ForEach(func(p Position) {
		visited = append(visited, p.Clone())
	})

	expected := []Position{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(visited) != len(expected) {
		t.Fatalf("Expected %d positions, got %d", len(expected), len(visited))
	}
	for i, p := range expected {
		if !visited[i].Equal(p) {
			t.Errorf("Expected position %v at step %d, got %v", p, i, visited[i])
		}
	}
}

// TestBoxForEachEmpty verifies that empty boxes are never visited
func TestBoxForEachEmpty(t *testing.T) {
	b := Box{Start: Position{0, 0}, Stop: Position{0, 3}}

	count := 0
	b.ForEach(func(Position) { count++ })
	if count != 0 {
		t.Errorf("Expected no visits for an empty box, got %d", count)
	}
}

// TestBoxGrow verifies symmetric growth and shrinkage
func TestBoxGrow(t *testing.T) {
	b := Box{Start: Position{1, 1}, Stop: Position{3, 3}}

	grown := b.Grow(1)
	if !grown.Start.Equal(Position{0, 0}) || !grown.Stop.Equal(Position{4, 4}) {
		t.Errorf("Expected grown box [(0,0),(4,4)), got [%v,%v)", grown.Start, grown.Stop)
	}

	if !b.Grow(-1).IsEmpty() {
		t.Errorf("Expected shrinking to empty")
	}
}
