package main

// DiscoveryRadius is the pick-up range for discoverable items
const DiscoveryRadius = 5.0

const discoveryRadiusSq = DiscoveryRadius * DiscoveryRadius

// DiscoveryObject is a findable item placed during world generation.
// Discovered is monotonic: once set it never reverts for the lifetime
// of the world.
type DiscoveryObject struct {
	X, Y, Z      float32
	TypeID       int32
	Discoverable bool
	Discovered   bool
	LastChecked  uint64 // frame of the most recent spatial probe nearby
}

// DiscoveryRegistry stores discoverable items and indexes them in its
// own grid instance, structurally identical to the collision registry
// but with a state-flip response instead of a physical one.
type DiscoveryRegistry struct {
	grid    *UniformGrid
	objects []DiscoveryObject // fixed capacity, append-only
	cellBuf []int32
}

// NewDiscoveryRegistry allocates a registry for at most maxItems items
func NewDiscoveryRegistry(grid GridConfig, maxItems int) *DiscoveryRegistry {
	return &DiscoveryRegistry{
		grid:    NewUniformGrid(grid, maxItems),
		objects: make([]DiscoveryObject, 0, maxItems),
		cellBuf: make([]int32, 0, 9),
	}
}

// Reset drops every item and clears the grid in place
func (d *DiscoveryRegistry) Reset() {
	d.grid.Clear()
	d.objects = d.objects[:0]
}

// Count returns the number of registered items
func (d *DiscoveryRegistry) Count() int {
	return len(d.objects)
}

// Object returns a pointer to item idx for read access
func (d *DiscoveryRegistry) Object(idx int32) *DiscoveryObject {
	return &d.objects[idx]
}

// Register adds a discoverable item and indexes it at (x,z).
// Returns the item index, or NoIndex when the registry is full.
// An item outside grid bounds is stored but unreachable by probes.
func (d *DiscoveryRegistry) Register(x, y, z float32, typeID int32) int32 {
	if len(d.objects) >= cap(d.objects) {
		return NoIndex
	}
	idx := int32(len(d.objects))
	d.objects = append(d.objects, DiscoveryObject{
		X:            x,
		Y:            y,
		Z:            z,
		TypeID:       typeID,
		Discoverable: true,
	})
	if cell := d.grid.CellIndex(x, z); cell != NoCell {
		d.grid.Insert(cell, idx)
	}
	return idx
}

// CheckSpatial probes the 3x3 cell block around (x,y,z) and returns
// the first undiscovered, discoverable item within DiscoveryRadius
// that matches typeFilter (0 = any type), flipping its Discovered flag
// as a side effect. Returns NoIndex when nothing qualifies.
//
// "First" means first in bucket traversal order: the most recently
// registered item in a cell, not the nearest.
func (d *DiscoveryRegistry) CheckSpatial(x, y, z float32, typeFilter int32, frame uint64) int32 {
	d.cellBuf = d.grid.NeighborCells(x, z, d.cellBuf[:0])
	for _, cell := range d.cellBuf {
		for idx := d.grid.Bucket(cell); idx != NoIndex; idx = d.grid.Next(idx) {
			obj := &d.objects[idx]
			if !obj.Discoverable || obj.Discovered {
				continue
			}
			obj.LastChecked = frame
			if typeFilter != 0 && obj.TypeID != typeFilter {
				continue
			}
			dx := x - obj.X
			dy := y - obj.Y
			dz := z - obj.Z
			if dx*dx+dy*dy+dz*dz < discoveryRadiusSq {
				obj.Discovered = true
				return idx
			}
		}
	}
	return NoIndex
}

// BatchCheck runs CheckSpatial for count probe positions held in a
// flat x,y,z array, writing each probe's discovered item TypeID (or 0)
// to the parallel out slice. Probes are processed in order, so an item
// reachable from two probes in the same batch credits the earlier one.
func (d *DiscoveryRegistry) BatchCheck(positions []float32, count int, out []int32, frame uint64) {
	for i := 0; i < count; i++ {
		x := positions[i*3]
		y := positions[i*3+1]
		z := positions[i*3+2]
		out[i] = 0
		if idx := d.CheckSpatial(x, y, z, 0, frame); idx != NoIndex {
			out[i] = d.objects[idx].TypeID
		}
	}
}
