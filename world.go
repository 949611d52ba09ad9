package main

// ObjectType tags a collision object record
type ObjectType int32

const (
	ObjectMushroom   ObjectType = 1
	ObjectCloud      ObjectType = 2
	ObjectGate       ObjectType = 3
	ObjectTrampoline ObjectType = 4
)

// Collision records live in one flat []float32, ObjectStride slots each.
// The layout is a contract shared with anything reading the buffer:
// slot 0 type tag, 1-3 position, 4-6 shape params, 7 flag bits.
const (
	ObjectStride = 8

	slotType  = 0
	slotX     = 1
	slotY     = 2
	slotZ     = 3
	slotP1    = 4 // radius (all types)
	slotP2    = 5 // cap height / vertical scale
	slotP3    = 6 // type-specific extra (mushroom stem radius)
	slotFlags = 7
)

// Player body records: BodyStride float32 slots per player.
// Slot 7 is reserved padding so records stay power-of-two sized.
const (
	BodyStride = 8

	bodyX        = 0
	bodyY        = 1
	bodyZ        = 2
	bodyVX       = 3
	bodyVY       = 4
	bodyVZ       = 5
	bodyGrounded = 6 // 0.0 or 1.0
)

// World owns all spatial state for one session: the collision object
// registry with its grid, the discovery registry with an independent
// grid instance, and the flat player body buffer. Exactly one writer,
// the session's game loop, touches a World; no locking inside.
type World struct {
	cfg WorldConfig

	grid        *UniformGrid
	objectData  []float32 // ObjectStride * MaxObjects
	objectCount int

	discovery *DiscoveryRegistry

	bodyData []float32 // BodyStride * MaxBodies
	bodyUsed []bool

	cellBuf []int32 // scratch for 3x3 traversals, reused every call
}

// NewWorld allocates a world with fixed capacities from cfg.
// All steady-state operation is allocation-free after this point.
func NewWorld(cfg WorldConfig) *World {
	w := &World{
		cfg:        cfg,
		grid:       NewUniformGrid(cfg.Grid, cfg.MaxObjects),
		objectData: make([]float32, ObjectStride*cfg.MaxObjects),
		discovery:  NewDiscoveryRegistry(cfg.Grid, cfg.MaxItems),
		bodyData:   make([]float32, BodyStride*cfg.MaxBodies),
		bodyUsed:   make([]bool, cfg.MaxBodies),
		cellBuf:    make([]int32, 0, 9),
	}
	return w
}

// Reset reinitializes buffers in place for a fresh world on the same
// allocation. Registered objects, items and bodies are all dropped.
func (w *World) Reset() {
	w.grid.Clear()
	w.objectCount = 0
	w.discovery.Reset()
	for i := range w.bodyUsed {
		w.bodyUsed[i] = false
	}
}

// ObjectCount returns the number of registered collision objects
func (w *World) ObjectCount() int {
	return w.objectCount
}

// AddCollisionObject appends an immutable typed object and indexes it
// in the grid bucket for (x,z). Returns the object index, or NoIndex
// when the registry is at capacity; past its object budget the world
// degrades to silent no-ops rather than erroring. Objects placed
// outside grid bounds are stored but never found by spatial queries.
func (w *World) AddCollisionObject(typ ObjectType, x, y, z, p1, p2, p3 float32, flags uint32) int32 {
	if w.objectCount >= w.cfg.MaxObjects {
		return NoIndex
	}
	idx := int32(w.objectCount)
	base := idx * ObjectStride
	w.objectData[base+slotType] = float32(typ)
	w.objectData[base+slotX] = x
	w.objectData[base+slotY] = y
	w.objectData[base+slotZ] = z
	w.objectData[base+slotP1] = p1
	w.objectData[base+slotP2] = p2
	w.objectData[base+slotP3] = p3
	w.objectData[base+slotFlags] = float32(flags)
	w.objectCount++

	if cell := w.grid.CellIndex(x, z); cell != NoCell {
		w.grid.Insert(cell, idx)
	}
	return idx
}

// Object returns the ObjectStride-float record slice for index idx
func (w *World) Object(idx int32) []float32 {
	base := idx * ObjectStride
	return w.objectData[base : base+ObjectStride]
}

// ObjectTypeAt returns the type tag of object idx
func (w *World) ObjectTypeAt(idx int32) ObjectType {
	return ObjectType(w.objectData[idx*ObjectStride+slotType])
}

// AllocBody reserves a player body slot and zeroes its record.
// Returns -1 when every slot is taken.
func (w *World) AllocBody() int {
	for i, used := range w.bodyUsed {
		if !used {
			w.bodyUsed[i] = true
			base := i * BodyStride
			for s := 0; s < BodyStride; s++ {
				w.bodyData[base+s] = 0
			}
			return i
		}
	}
	return -1
}

// FreeBody releases a body slot for reuse
func (w *World) FreeBody(i int) {
	if i >= 0 && i < len(w.bodyUsed) {
		w.bodyUsed[i] = false
	}
}

// Body returns the BodyStride-float record slice for body slot i.
// The record is pos x/y/z, vel x/y/z, grounded flag as 0.0/1.0.
func (w *World) Body(i int) []float32 {
	base := i * BodyStride
	return w.bodyData[base : base+BodyStride]
}

// CheckPositionValidity reports whether a disc of the given radius at
// (x,z) is clear of every collision object in the surrounding 3x3 cell
// block. World generation uses it to keep spawn points and item drops
// out of solid geometry. A probe outside the grid is trivially valid.
func (w *World) CheckPositionValidity(x, z, radius float32) bool {
	w.cellBuf = w.grid.NeighborCells(x, z, w.cellBuf[:0])
	for _, cell := range w.cellBuf {
		for idx := w.grid.Bucket(cell); idx != NoIndex; idx = w.grid.Next(idx) {
			obj := w.Object(idx)
			dx := x - obj[slotX]
			dz := z - obj[slotZ]
			reach := radius + obj[slotP1]
			if dx*dx+dz*dz < reach*reach {
				return false
			}
		}
	}
	return true
}
