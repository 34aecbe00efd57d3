package catalog

import (
	"fmt"

	"github.com/talgya/hexfront/internal/world"
)

// Disaster is one entry of a terrain's disaster list.
type Disaster struct {
	Name   string `json:"name"`
	Damage int    `json:"damage"`
}

// TerrainSpec holds the gameplay rules for one terrain type: the
// harvest-pool distribution, the always-active flag, the per-round
// hazard and what protects against it, and the disaster list.
type TerrainSpec struct {
	// Distribution gives harvest-pool percentages per resource kind.
	// Pool population for a kind is floor(percent/100 * pool size).
	Distribution map[Resource]int

	// AlwaysActive terrain never deactivates after a harvest.
	AlwaysActive bool

	// PeriodicDamage is HP lost at the terrain_effects boundary, 0 for
	// harmless terrain. Checked item first (held, not spent), then the
	// protecting resource (one unit spent).
	PeriodicDamage     int
	HazardName         string
	ProtectingItem     *ItemID
	ProtectingResource *Resource

	Disasters []Disaster
}

// TerrainSpecFor looks up a terrain's rules. A miss is a data error
// and panics.
func TerrainSpecFor(t world.Terrain) TerrainSpec {
	spec, ok := Terrains[t]
	if !ok {
		panic(fmt.Sprintf("catalog: no spec for terrain %s", t))
	}
	return spec
}

func itemRef(id ItemID) *ItemID          { return &id }
func resourceRef(r Resource) *Resource   { return &r }

// Terrains is the static terrain rule table.
var Terrains = map[world.Terrain]TerrainSpec{
	world.TerrainForest: {
		Distribution: map[Resource]int{ResourceWood: 50, ResourceHerb: 30, ResourceFood: 20},
		Disasters:    []Disaster{{Name: "wildfire", Damage: 2}},
	},
	world.TerrainMountain: {
		Distribution: map[Resource]int{ResourceStone: 60, ResourceGold: 20, ResourceHide: 20},
		Disasters: []Disaster{
			{Name: "rockslide", Damage: 3},
			{Name: "avalanche", Damage: 2},
		},
	},
	world.TerrainPlains: {
		Distribution: map[Resource]int{ResourceFood: 50, ResourceHide: 30, ResourceWood: 20},
		Disasters:    []Disaster{{Name: "stampede", Damage: 1}},
	},
	world.TerrainSwamp: {
		Distribution:       map[Resource]int{ResourceHerb: 50, ResourceFood: 30, ResourceWater: 20},
		PeriodicDamage:     1,
		HazardName:         "swamp disease",
		ProtectingItem:     itemRef(ItemAntidote),
		ProtectingResource: resourceRef(ResourceHerb),
		Disasters:          []Disaster{{Name: "plague", Damage: 2}},
	},
	world.TerrainDesert: {
		Distribution:       map[Resource]int{ResourceStone: 40, ResourceGold: 30, ResourceHide: 30},
		PeriodicDamage:     1,
		HazardName:         "desert heat",
		ProtectingItem:     itemRef(ItemWaterskin),
		ProtectingResource: resourceRef(ResourceWater),
		Disasters:          []Disaster{{Name: "sandstorm", Damage: 2}},
	},
	world.TerrainLake: {
		Distribution: map[Resource]int{ResourceWater: 60, ResourceFood: 40},
		AlwaysActive: true,
		Disasters:    []Disaster{{Name: "flood", Damage: 1}},
	},
}
