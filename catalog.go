package main

// Rarity levels for discoverable items
const (
	RarityCommon    = 0
	RarityUncommon  = 1
	RarityRare      = 2
	RarityLegendary = 3
)

// ItemDef describes one discoverable item type. TypeID 0 is reserved
// for "nothing found" in batch discovery results.
type ItemDef struct {
	TypeID int32  `json:"type_id"`
	Name   string `json:"name"`
	Rarity int    `json:"rarity"`
	XP     int    `json:"xp"`     // awarded on discovery
	Weight int    `json:"weight"` // relative spawn weight during worldgen
	Color  string `json:"color"`  // hint for the client renderer (hex)
}

// ItemCatalog is the full list of discoverable item types
var ItemCatalog = []ItemDef{
	// Common ground cover
	{TypeID: 1, Name: "Candy Cane", Rarity: RarityCommon, XP: 10, Weight: 30, Color: "#ff4466"},
	{TypeID: 2, Name: "Gumdrop", Rarity: RarityCommon, XP: 10, Weight: 30, Color: "#44cc88"},
	{TypeID: 3, Name: "Sugar Berry", Rarity: RarityCommon, XP: 15, Weight: 20, Color: "#cc44aa"},

	// Uncommon
	{TypeID: 4, Name: "Taffy Flower", Rarity: RarityUncommon, XP: 25, Weight: 10, Color: "#ffaa33"},
	{TypeID: 5, Name: "Chocolate Acorn", Rarity: RarityUncommon, XP: 25, Weight: 8, Color: "#885522"},

	// Rare
	{TypeID: 6, Name: "Crystal Lollipop", Rarity: RarityRare, XP: 60, Weight: 4, Color: "#88ddff"},
	{TypeID: 7, Name: "Honey Geode", Rarity: RarityRare, XP: 60, Weight: 3, Color: "#ffcc00"},

	// Legendary
	{TypeID: 8, Name: "Star Sprinkle", Rarity: RarityLegendary, XP: 200, Weight: 1, Color: "#ffffff"},
}

// ItemCatalogMap provides O(1) lookup by type id
var ItemCatalogMap map[int32]ItemDef

// itemWeightTotal caches the summed spawn weights for worldgen rolls
var itemWeightTotal int

func init() {
	ItemCatalogMap = make(map[int32]ItemDef, len(ItemCatalog))
	for _, def := range ItemCatalog {
		ItemCatalogMap[def.TypeID] = def
		itemWeightTotal += def.Weight
	}
}

// RollItemType picks an item type by spawn weight from a roll in [0,1)
func RollItemType(roll float64) int32 {
	target := int(roll * float64(itemWeightTotal))
	for _, def := range ItemCatalog {
		target -= def.Weight
		if target < 0 {
			return def.TypeID
		}
	}
	return ItemCatalog[len(ItemCatalog)-1].TypeID
}

// DiscoveryXP returns the XP award for finding an item of typeID
func DiscoveryXP(typeID int32) int {
	if def, ok := ItemCatalogMap[typeID]; ok {
		return def.XP
	}
	return 0
}
