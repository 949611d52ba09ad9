package main

import "math"

// NoCell is the sentinel returned for coordinates outside the grid,
// NoIndex the sentinel terminating bucket lists.
const (
	NoCell  int32 = -1
	NoIndex int32 = -1
)

// GridConfig describes the bounded cell layout of a world
type GridConfig struct {
	OriginX  float32
	OriginZ  float32
	CellSize float32
	Cols     int32
	Rows     int32
}

// UniformGrid maps continuous (x,z) coordinates to cell buckets.
// Buckets are intrusive singly linked lists held in two parallel int32
// arrays: head[cell] points at the first object index in that cell,
// next[objectIndex] at the one registered before it. Insertion prepends,
// so traversal visits objects in reverse-insertion order.
type UniformGrid struct {
	cfg  GridConfig
	head []int32 // rows*cols entries, NoIndex = empty bucket
	next []int32 // maxObjects entries, NoIndex = end of list
}

// NewUniformGrid allocates a grid for at most maxObjects resident objects
func NewUniformGrid(cfg GridConfig, maxObjects int) *UniformGrid {
	g := &UniformGrid{
		cfg:  cfg,
		head: make([]int32, cfg.Cols*cfg.Rows),
		next: make([]int32, maxObjects),
	}
	g.Clear()
	return g
}

// CellIndex returns the cell id for (x,z), or NoCell when the point
// lies outside the configured bounds. Floor semantics, no clamping.
func (g *UniformGrid) CellIndex(x, z float32) int32 {
	col := int32(math.Floor(float64(x-g.cfg.OriginX) / float64(g.cfg.CellSize)))
	row := int32(math.Floor(float64(z-g.cfg.OriginZ) / float64(g.cfg.CellSize)))
	if col < 0 || col >= g.cfg.Cols || row < 0 || row >= g.cfg.Rows {
		return NoCell
	}
	return row*g.cfg.Cols + col
}

// Insert prepends object index obj onto the bucket list of cell.
// O(1); the caller passes a cell id obtained from CellIndex.
func (g *UniformGrid) Insert(cell, obj int32) {
	g.next[obj] = g.head[cell]
	g.head[cell] = obj
}

// NeighborCells appends the ids of the up-to-9 cells in the 3x3 block
// around (x,z) to buf and returns the extended slice. Cells outside grid
// bounds are skipped, not errored; a point just outside the grid can
// still have in-bounds neighbors.
func (g *UniformGrid) NeighborCells(x, z float32, buf []int32) []int32 {
	col := int32(math.Floor(float64(x-g.cfg.OriginX) / float64(g.cfg.CellSize)))
	row := int32(math.Floor(float64(z-g.cfg.OriginZ) / float64(g.cfg.CellSize)))
	for dr := int32(-1); dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.cfg.Rows {
			continue
		}
		for dc := int32(-1); dc <= 1; dc++ {
			c := col + dc
			if c < 0 || c >= g.cfg.Cols {
				continue
			}
			buf = append(buf, r*g.cfg.Cols+c)
		}
	}
	return buf
}

// Bucket returns the first object index in cell, or NoIndex
func (g *UniformGrid) Bucket(cell int32) int32 {
	return g.head[cell]
}

// Next returns the object index linked after obj in its bucket
func (g *UniformGrid) Next(obj int32) int32 {
	return g.next[obj]
}

// Clear resets every bucket in place. No memory is released; the same
// arrays are reused across world resets.
func (g *UniformGrid) Clear() {
	for i := range g.head {
		g.head[i] = NoIndex
	}
	for i := range g.next {
		g.next[i] = NoIndex
	}
}
