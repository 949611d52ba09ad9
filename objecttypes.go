package main

// ObjectTypeDef holds the default shape parameters world generation
// uses when placing an object of a given type. Individual objects may
// still carry per-instance params in their record slots.
type ObjectTypeDef struct {
	Radius    float32 // horizontal collision radius (record param 1)
	Height    float32 // cap height / vertical scale (record param 2)
	Extra     float32 // type-specific (record param 3)
	MinSpace  float32 // clearance required around the placement point
	Landable  bool    // platform family: players can stand on it
	FloatsMin float32 // clouds: altitude range above terrain
	FloatsMax float32
}

var ObjectTypes = map[ObjectType]ObjectTypeDef{
	// Mushroom: landable cap on a stem; extra = stem radius
	ObjectMushroom: {
		Radius: 1.5, Height: 2.0, Extra: 0.4,
		MinSpace: 4.0, Landable: true,
	},
	// Cloud: soft floating platform, surface below its visual top
	ObjectCloud: {
		Radius: 3.0, Height: 1.5,
		MinSpace: 6.0, Landable: true,
		FloatsMin: 6.0, FloatsMax: 14.0,
	},
	// Gate: radial blocker, pure pushback
	ObjectGate: {
		Radius: 2.0, Height: 4.0,
		MinSpace: 5.0,
	},
	// Trampoline: low landable pad that launches instead of holding
	ObjectTrampoline: {
		Radius: 1.8, Height: 0.6,
		MinSpace: 4.5, Landable: true,
	},
}

// GetObjectTypeDef returns the definition for typ, defaulting to the
// mushroom shape for unknown tags.
func GetObjectTypeDef(typ ObjectType) ObjectTypeDef {
	if def, ok := ObjectTypes[typ]; ok {
		return def
	}
	return ObjectTypes[ObjectMushroom]
}
