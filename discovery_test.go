package main

import "testing"

func newTestRegistry(maxItems int) *DiscoveryRegistry {
	return NewDiscoveryRegistry(testGridConfig(), maxItems)
}

func TestDiscoveryWithinRadius(t *testing.T) {
	d := newTestRegistry(16)
	idx := d.Register(10, 0, 10, 3)

	got := d.CheckSpatial(12, 0, 12, 0, 1)
	if got != idx {
		t.Fatalf("CheckSpatial = %d, want %d", got, idx)
	}
	if !d.Object(idx).Discovered {
		t.Error("found item must be flagged Discovered")
	}
	if d.Object(idx).LastChecked != 1 {
		t.Errorf("LastChecked = %d, want 1", d.Object(idx).LastChecked)
	}
}

func TestDiscoveryOutOfRadius(t *testing.T) {
	d := newTestRegistry(16)
	idx := d.Register(10, 0, 10, 3)

	// 3D distance: 6 units straight up is out of the 5-unit range
	if got := d.CheckSpatial(10, 6, 10, 0, 1); got != NoIndex {
		t.Errorf("vertical probe = %d, want NoIndex", got)
	}
	if d.Object(idx).Discovered {
		t.Error("out-of-range item must stay undiscovered")
	}

	// Horizontal: items two cells away are outside the 3x3 block
	if got := d.CheckSpatial(25, 0, 10, 0, 1); got != NoIndex {
		t.Errorf("distant probe = %d, want NoIndex", got)
	}
}

func TestDiscoveryMonotonic(t *testing.T) {
	d := newTestRegistry(16)
	idx := d.Register(10, 0, 10, 3)

	if got := d.CheckSpatial(10, 0, 10, 0, 1); got != idx {
		t.Fatalf("first probe = %d, want %d", got, idx)
	}
	// Same spot: already discovered, nothing new to find
	if got := d.CheckSpatial(10, 0, 10, 0, 2); got != NoIndex {
		t.Errorf("repeat probe = %d, want NoIndex", got)
	}
	if !d.Object(idx).Discovered {
		t.Error("Discovered flag must never revert")
	}
}

func TestDiscoveryTypeFilter(t *testing.T) {
	d := newTestRegistry(16)
	apple := d.Register(10, 0, 10, 1)
	berry := d.Register(11, 0, 10, 2)

	// Filter matches only the earlier-registered item; the filter must
	// skip the later one even though traversal visits it first.
	if got := d.CheckSpatial(10, 0, 10, 1, 1); got != apple {
		t.Errorf("filtered probe = %d, want %d", got, apple)
	}
	if d.Object(berry).Discovered {
		t.Error("filtered-out item must stay undiscovered")
	}
	// Zero filter matches anything still left
	if got := d.CheckSpatial(10, 0, 10, 0, 2); got != berry {
		t.Errorf("unfiltered probe = %d, want %d", got, berry)
	}
}

func TestDiscoveryNoMatchingType(t *testing.T) {
	d := newTestRegistry(16)
	idx := d.Register(10, 0, 10, 1)

	if got := d.CheckSpatial(10, 0, 10, 7, 1); got != NoIndex {
		t.Errorf("probe for absent type = %d, want NoIndex", got)
	}
	if d.Object(idx).Discovered {
		t.Error("type-mismatched item must stay undiscovered")
	}
}

func TestDiscoveryCapacity(t *testing.T) {
	d := newTestRegistry(2)

	if idx := d.Register(10, 0, 10, 1); idx != 0 {
		t.Fatalf("index = %d, want 0", idx)
	}
	if idx := d.Register(20, 0, 20, 1); idx != 1 {
		t.Fatalf("index = %d, want 1", idx)
	}
	if idx := d.Register(30, 0, 30, 1); idx != NoIndex {
		t.Errorf("over-capacity index = %d, want NoIndex", idx)
	}
	if d.Count() != 2 {
		t.Errorf("Count = %d, want 2", d.Count())
	}
}

func TestDiscoveryProbeOutsideGrid(t *testing.T) {
	d := newTestRegistry(16)
	d.Register(10, 0, 10, 1)

	if got := d.CheckSpatial(-300, 0, -300, 0, 1); got != NoIndex {
		t.Errorf("off-grid probe = %d, want NoIndex", got)
	}
}

func TestBatchCheck(t *testing.T) {
	d := newTestRegistry(16)
	d.Register(10, 0, 10, 4)
	d.Register(60, 0, 60, 7)

	positions := []float32{
		10, 0, 10, // on the first item
		90, 0, 90, // empty area
		60, 0, 60, // on the second item
	}
	out := make([]int32, 3)
	d.BatchCheck(positions, 3, out, 5)

	if out[0] != 4 {
		t.Errorf("out[0] = %d, want type 4", out[0])
	}
	if out[1] != 0 {
		t.Errorf("out[1] = %d, want 0 (nothing found)", out[1])
	}
	if out[2] != 7 {
		t.Errorf("out[2] = %d, want type 7", out[2])
	}
}

func TestBatchCheckEarlierProbeWins(t *testing.T) {
	d := newTestRegistry(16)
	d.Register(10, 0, 10, 4)

	positions := []float32{
		10, 0, 10,
		11, 0, 10,
	}
	out := make([]int32, 2)
	d.BatchCheck(positions, 2, out, 1)

	if out[0] != 4 || out[1] != 0 {
		t.Errorf("out = %v, want [4 0]: one item credits one probe", out)
	}
}

func TestDiscoveryReset(t *testing.T) {
	d := newTestRegistry(4)
	d.Register(10, 0, 10, 1)
	d.CheckSpatial(10, 0, 10, 0, 1)

	d.Reset()

	if d.Count() != 0 {
		t.Errorf("Count after reset = %d, want 0", d.Count())
	}
	if got := d.CheckSpatial(10, 0, 10, 0, 2); got != NoIndex {
		t.Errorf("probe after reset = %d, want NoIndex", got)
	}
	// Capacity survives a reset
	if idx := d.Register(15, 0, 15, 2); idx != 0 {
		t.Errorf("register after reset = %d, want 0", idx)
	}
}
