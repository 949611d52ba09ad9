package main

import "testing"

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultWorldConfig(PresetMeadow)
	w1 := NewWorld(cfg)
	w2 := NewWorld(cfg)

	Generate(w1, 42)
	Generate(w2, 42)

	if w1.ObjectCount() != w2.ObjectCount() {
		t.Fatalf("object counts differ: %d vs %d", w1.ObjectCount(), w2.ObjectCount())
	}
	for i := int32(0); i < int32(w1.ObjectCount()); i++ {
		a, b := w1.Object(i), w2.Object(i)
		for s := 0; s < ObjectStride; s++ {
			if a[s] != b[s] {
				t.Fatalf("object %d slot %d differs: %v vs %v", i, s, a[s], b[s])
			}
		}
	}

	if w1.discovery.Count() != w2.discovery.Count() {
		t.Fatalf("item counts differ: %d vs %d", w1.discovery.Count(), w2.discovery.Count())
	}
	for i := int32(0); i < int32(w1.discovery.Count()); i++ {
		a, b := w1.discovery.Object(i), w2.discovery.Object(i)
		if a.X != b.X || a.Y != b.Y || a.Z != b.Z || a.TypeID != b.TypeID {
			t.Fatalf("item %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestGenerateSeedsDiffer(t *testing.T) {
	cfg := DefaultWorldConfig(PresetMeadow)
	w1 := NewWorld(cfg)
	w2 := NewWorld(cfg)

	Generate(w1, 1)
	Generate(w2, 2)

	if w1.ObjectCount() == 0 || w2.ObjectCount() == 0 {
		t.Fatal("generation produced empty worlds")
	}
	same := w1.ObjectCount() == w2.ObjectCount()
	if same {
		for i := int32(0); i < int32(w1.ObjectCount()); i++ {
			if w1.Object(i)[slotX] != w2.Object(i)[slotX] {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("different seeds produced identical worlds")
	}
}

func TestGenerateRespectsBudgets(t *testing.T) {
	for _, preset := range []WorldPreset{PresetMeadow, PresetForest, PresetPeaks} {
		cfg := DefaultWorldConfig(preset)
		w := NewWorld(cfg)
		Generate(w, 7)

		if w.ObjectCount() > cfg.MaxObjects {
			t.Errorf("preset %d: %d objects exceeds capacity %d", preset, w.ObjectCount(), cfg.MaxObjects)
		}
		if w.discovery.Count() > cfg.Items {
			t.Errorf("preset %d: %d items exceeds budget %d", preset, w.discovery.Count(), cfg.Items)
		}

		counts := map[ObjectType]int{}
		for i := int32(0); i < int32(w.ObjectCount()); i++ {
			counts[w.ObjectTypeAt(i)]++
		}
		if counts[ObjectMushroom] > cfg.Mushrooms {
			t.Errorf("preset %d: %d mushrooms exceeds budget %d", preset, counts[ObjectMushroom], cfg.Mushrooms)
		}
		if counts[ObjectCloud] > cfg.Clouds {
			t.Errorf("preset %d: %d clouds exceeds budget %d", preset, counts[ObjectCloud], cfg.Clouds)
		}
		if counts[ObjectGate] > cfg.Gates {
			t.Errorf("preset %d: %d gates exceeds budget %d", preset, counts[ObjectGate], cfg.Gates)
		}
		if counts[ObjectTrampoline] > cfg.Trampolines {
			t.Errorf("preset %d: %d trampolines exceeds budget %d", preset, counts[ObjectTrampoline], cfg.Trampolines)
		}
	}
}

func TestGeneratePlacementsInBounds(t *testing.T) {
	cfg := DefaultWorldConfig(PresetForest)
	w := NewWorld(cfg)
	Generate(w, 11)

	for i := int32(0); i < int32(w.ObjectCount()); i++ {
		obj := w.Object(i)
		if w.grid.CellIndex(obj[slotX], obj[slotZ]) == NoCell {
			t.Errorf("object %d at (%v,%v) outside the grid", i, obj[slotX], obj[slotZ])
		}
	}
	for i := int32(0); i < int32(w.discovery.Count()); i++ {
		item := w.discovery.Object(i)
		if w.grid.CellIndex(item.X, item.Z) == NoCell {
			t.Errorf("item %d at (%v,%v) outside the grid", i, item.X, item.Z)
		}
		if _, ok := ItemCatalogMap[item.TypeID]; !ok {
			t.Errorf("item %d has unknown type %d", i, item.TypeID)
		}
	}
}

func TestGenerateItemsClearOfObjects(t *testing.T) {
	cfg := DefaultWorldConfig(PresetMeadow)
	w := NewWorld(cfg)
	Generate(w, 23)

	for i := int32(0); i < int32(w.discovery.Count()); i++ {
		item := w.discovery.Object(i)
		if !w.CheckPositionValidity(item.X, item.Z, 1.0) {
			t.Errorf("item %d at (%v,%v) overlaps object geometry", i, item.X, item.Z)
		}
	}
}

func TestSpawnPositionClear(t *testing.T) {
	cfg := DefaultWorldConfig(PresetMeadow)
	w := NewWorld(cfg)
	Generate(w, 5)

	rng := newWorldRand(99)
	for i := 0; i < 10; i++ {
		x, y, z := w.SpawnPosition(rng)
		if w.grid.CellIndex(x, z) == NoCell {
			t.Errorf("spawn (%v,%v) outside the grid", x, z)
		}
		floor := GroundHeight(x, z) + PlayerHeight
		if y != floor {
			t.Errorf("spawn y = %v, want terrain floor %v", y, floor)
		}
	}
}

func TestWorldRandDeterministic(t *testing.T) {
	a := newWorldRand(123)
	b := newWorldRand(123)
	for i := 0; i < 100; i++ {
		if a.Float() != b.Float() {
			t.Fatal("same seed must produce the same sequence")
		}
	}
}

func TestWorldRandZeroSeed(t *testing.T) {
	r := newWorldRand(0)
	v := r.Float()
	if v < 0 || v > 1 {
		t.Errorf("Float() = %v, outside [0,1]", v)
	}
}

func TestRollItemTypeCoversCatalog(t *testing.T) {
	seen := map[int32]bool{}
	for roll := 0.0; roll < 1.0; roll += 0.001 {
		id := RollItemType(roll)
		if _, ok := ItemCatalogMap[id]; !ok {
			t.Fatalf("RollItemType(%v) = %d, not in catalog", roll, id)
		}
		seen[id] = true
	}
	// Commons dominate the weights; everything up to rare should appear
	for _, id := range []int32{1, 2, 3, 4, 5} {
		if !seen[id] {
			t.Errorf("type %d never rolled", id)
		}
	}
}
