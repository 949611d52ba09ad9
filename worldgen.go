package main

// WorldPreset selects the flavor of a generated world
type WorldPreset int

const (
	PresetMeadow WorldPreset = 0
	PresetForest WorldPreset = 1
	PresetPeaks  WorldPreset = 2
)

// WorldConfig holds the fixed capacities and generation budgets of one
// world. Capacities never grow after NewWorld; generation calls beyond
// a budget degrade to silent no-ops in the registries.
type WorldConfig struct {
	Preset WorldPreset
	Grid   GridConfig

	MaxObjects int
	MaxItems   int
	MaxBodies  int

	Mushrooms   int
	Clouds      int
	Gates       int
	Trampolines int
	Items       int
}

// DefaultWorldConfig returns the generation config for a preset
func DefaultWorldConfig(preset WorldPreset) WorldConfig {
	grid := GridConfig{OriginX: -250, OriginZ: -250, CellSize: 5, Cols: 100, Rows: 100}
	switch preset {
	case PresetForest:
		return WorldConfig{
			Preset: PresetForest, Grid: grid,
			MaxObjects: 512, MaxItems: 256, MaxBodies: maxPlayersPerWorld,
			Mushrooms: 160, Clouds: 20, Gates: 40, Trampolines: 12, Items: 140,
		}
	case PresetPeaks:
		return WorldConfig{
			Preset: PresetPeaks, Grid: grid,
			MaxObjects: 512, MaxItems: 256, MaxBodies: maxPlayersPerWorld,
			Mushrooms: 40, Clouds: 80, Gates: 25, Trampolines: 40, Items: 100,
		}
	default:
		return WorldConfig{
			Preset: PresetMeadow, Grid: grid,
			MaxObjects: 512, MaxItems: 256, MaxBodies: maxPlayersPerWorld,
			Mushrooms: 80, Clouds: 35, Gates: 30, Trampolines: 20, Items: 120,
		}
	}
}

// worldRand is a small xorshift generator so that a seed fully
// determines a generated world.
type worldRand struct {
	state uint32
}

func newWorldRand(seed uint32) *worldRand {
	if seed == 0 {
		seed = 12345
	}
	return &worldRand{state: seed}
}

func (r *worldRand) Float() float64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 17
	r.state ^= r.state << 5
	return float64(r.state) / float64(0xFFFFFFFF)
}

func (r *worldRand) Range(min, max float64) float64 {
	return min + r.Float()*(max-min)
}

// Generate populates an empty world from its config and a seed.
// Placement samples random points inside the grid, weights acceptance
// by an FBM density field so objects clump naturally, and rejects
// points that fail CheckPositionValidity against what is already
// placed. Items are registered last so they can spawn between objects
// but never inside gate geometry.
func Generate(w *World, seed uint32) {
	rng := newWorldRand(seed)
	cfg := w.cfg

	place := func(typ ObjectType, count int) {
		def := GetObjectTypeDef(typ)
		attempts := count * 8 // bail out on crowded worlds instead of spinning
		placed := 0
		for i := 0; i < attempts && placed < count; i++ {
			x, z := w.randomPoint(rng)

			// Density field: clumps where noise is high
			density := float64(FBM(x*0.01, z*0.01, 4)) + 0.5
			if rng.Float() > density {
				continue
			}
			if !w.CheckPositionValidity(x, z, def.MinSpace) {
				continue
			}

			y := GroundHeight(x, z)
			if typ == ObjectCloud {
				y += float32(rng.Range(float64(def.FloatsMin), float64(def.FloatsMax)))
			}
			if w.AddCollisionObject(typ, x, y, z, def.Radius, def.Height, def.Extra, 0) == NoIndex {
				return
			}
			placed++
		}
	}

	place(ObjectGate, cfg.Gates)
	place(ObjectMushroom, cfg.Mushrooms)
	place(ObjectTrampoline, cfg.Trampolines)
	place(ObjectCloud, cfg.Clouds)

	// Discoverable items sit on the terrain clear of object geometry
	attempts := cfg.Items * 8
	placed := 0
	for i := 0; i < attempts && placed < cfg.Items; i++ {
		x, z := w.randomPoint(rng)
		if !w.CheckPositionValidity(x, z, 1.0) {
			continue
		}
		typeID := RollItemType(rng.Float())
		if w.discovery.Register(x, GroundHeight(x, z)+0.5, z, typeID) == NoIndex {
			break
		}
		placed++
	}
}

// randomPoint returns a uniformly random in-bounds (x,z), inset half a
// cell so 3x3 queries at the point always have a center cell.
func (w *World) randomPoint(rng *worldRand) (float32, float32) {
	g := w.cfg.Grid
	width := float64(g.CellSize) * float64(g.Cols)
	depth := float64(g.CellSize) * float64(g.Rows)
	inset := float64(g.CellSize) / 2
	x := float64(g.OriginX) + inset + rng.Float()*(width-2*inset)
	z := float64(g.OriginZ) + inset + rng.Float()*(depth-2*inset)
	return float32(x), float32(z)
}

// SpawnPosition picks a clear spot near the world center for a new
// player, falling back to the exact center if the area is crowded.
func (w *World) SpawnPosition(rng *worldRand) (float32, float32, float32) {
	g := w.cfg.Grid
	cx := float64(g.OriginX) + float64(g.CellSize)*float64(g.Cols)/2
	cz := float64(g.OriginZ) + float64(g.CellSize)*float64(g.Rows)/2
	for i := 0; i < 16; i++ {
		x := float32(cx + rng.Range(-30, 30))
		z := float32(cz + rng.Range(-30, 30))
		if w.CheckPositionValidity(x, z, PlayerRadius*2) {
			return x, GroundHeight(x, z) + PlayerHeight, z
		}
	}
	x, z := float32(cx), float32(cz)
	return x, GroundHeight(x, z) + PlayerHeight, z
}
