package main

import "testing"

func testGridConfig() GridConfig {
	return GridConfig{OriginX: 0, OriginZ: 0, CellSize: 5, Cols: 20, Rows: 20}
}

func TestCellIndexMapping(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)

	if got := g.CellIndex(0, 0); got != 0 {
		t.Errorf("CellIndex(0,0) = %d, want 0", got)
	}
	if got := g.CellIndex(4.9, 0); got != 0 {
		t.Errorf("CellIndex(4.9,0) = %d, want 0", got)
	}
	if got := g.CellIndex(5, 0); got != 1 {
		t.Errorf("CellIndex(5,0) = %d, want 1", got)
	}
	if got := g.CellIndex(12, 12); got != 2*20+2 {
		t.Errorf("CellIndex(12,12) = %d, want %d", got, 2*20+2)
	}
	if got := g.CellIndex(99.9, 99.9); got != 19*20+19 {
		t.Errorf("CellIndex(99.9,99.9) = %d, want %d", got, 19*20+19)
	}
}

func TestCellIndexOutOfBounds(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)

	cases := [][2]float32{
		{-0.1, 0},
		{0, -0.1},
		{100, 0},
		{0, 100},
		{-50, -50},
		{1000, 1000},
	}
	for _, c := range cases {
		if got := g.CellIndex(c[0], c[1]); got != NoCell {
			t.Errorf("CellIndex(%v,%v) = %d, want NoCell", c[0], c[1], got)
		}
	}
}

func TestCellIndexNegativeOrigin(t *testing.T) {
	cfg := GridConfig{OriginX: -250, OriginZ: -250, CellSize: 5, Cols: 100, Rows: 100}
	g := NewUniformGrid(cfg, 16)

	if got := g.CellIndex(-250, -250); got != 0 {
		t.Errorf("CellIndex at origin = %d, want 0", got)
	}
	// Just left of the world center: col = floor(249.9/5) = 49
	if got := g.CellIndex(-0.5, -250); got != 49 {
		t.Errorf("CellIndex(-0.5,-250) = %d, want 49", got)
	}
	if got := g.CellIndex(-250.1, 0); got != NoCell {
		t.Errorf("CellIndex left of origin = %d, want NoCell", got)
	}
}

func TestBucketTraversalOrder(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)
	cell := g.CellIndex(7, 7)

	g.Insert(cell, 0)
	g.Insert(cell, 1)
	g.Insert(cell, 2)

	// Prepend insertion: traversal sees the most recent first
	want := []int32{2, 1, 0}
	var got []int32
	for idx := g.Bucket(cell); idx != NoIndex; idx = g.Next(idx) {
		got = append(got, idx)
	}
	if len(got) != len(want) {
		t.Fatalf("traversed %d objects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("traversal[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestBucketIsolation(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)

	g.Insert(g.CellIndex(2, 2), 0)
	g.Insert(g.CellIndex(52, 52), 1)

	if got := g.Bucket(g.CellIndex(2, 2)); got != 0 {
		t.Errorf("bucket(2,2) head = %d, want 0", got)
	}
	if got := g.Bucket(g.CellIndex(52, 52)); got != 1 {
		t.Errorf("bucket(52,52) head = %d, want 1", got)
	}
	if got := g.Next(0); got != NoIndex {
		t.Errorf("next(0) = %d, want NoIndex", got)
	}
}

func TestNeighborCellsInterior(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)

	cells := g.NeighborCells(12, 12, nil)
	if len(cells) != 9 {
		t.Fatalf("interior point has %d neighbor cells, want 9", len(cells))
	}
	seen := make(map[int32]bool)
	for _, c := range cells {
		if c < 0 || c >= 400 {
			t.Errorf("neighbor cell %d out of range", c)
		}
		if seen[c] {
			t.Errorf("duplicate neighbor cell %d", c)
		}
		seen[c] = true
	}
}

func TestNeighborCellsCorner(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)

	if cells := g.NeighborCells(1, 1, nil); len(cells) != 4 {
		t.Errorf("corner point has %d neighbor cells, want 4", len(cells))
	}
	if cells := g.NeighborCells(99, 1, nil); len(cells) != 4 {
		t.Errorf("corner point has %d neighbor cells, want 4", len(cells))
	}
	if cells := g.NeighborCells(1, 50, nil); len(cells) != 6 {
		t.Errorf("edge point has %d neighbor cells, want 6", len(cells))
	}
}

func TestNeighborCellsOutsideGrid(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)

	// A point one cell outside still sees the border row
	cells := g.NeighborCells(-2, 50, nil)
	if len(cells) != 3 {
		t.Errorf("just-outside point has %d neighbor cells, want 3", len(cells))
	}
	// Far outside: nothing reachable
	if cells := g.NeighborCells(-100, -100, nil); len(cells) != 0 {
		t.Errorf("far-outside point has %d neighbor cells, want 0", len(cells))
	}
}

func TestGridClear(t *testing.T) {
	g := NewUniformGrid(testGridConfig(), 16)
	cell := g.CellIndex(7, 7)
	g.Insert(cell, 0)
	g.Insert(cell, 1)

	g.Clear()

	if got := g.Bucket(cell); got != NoIndex {
		t.Errorf("bucket after Clear = %d, want NoIndex", got)
	}
}
