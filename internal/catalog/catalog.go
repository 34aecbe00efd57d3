// Package catalog holds the immutable game data tables: resource
// kinds, item templates, building specs, and per-terrain harvest and
// hazard rules. Tables are closed, strongly typed sets validated once
// at startup; a lookup miss is a programming error and panics.
package catalog

import "fmt"

// Resource enumerates the harvestable resource kinds.
type Resource uint8

const (
	ResourceWood Resource = iota
	ResourceStone
	ResourceFood
	ResourceHerb
	ResourceHide
	ResourceWater
	ResourceGold
)

var resourceNames = map[Resource]string{
	ResourceWood:  "wood",
	ResourceStone: "stone",
	ResourceFood:  "food",
	ResourceHerb:  "herb",
	ResourceHide:  "hide",
	ResourceWater: "water",
	ResourceGold:  "gold",
}

func (r Resource) String() string {
	if s, ok := resourceNames[r]; ok {
		return s
	}
	panic(fmt.Sprintf("catalog: unknown resource %d", uint8(r)))
}

// Resources lists every resource kind in enum order.
func Resources() []Resource {
	return []Resource{
		ResourceWood, ResourceStone, ResourceFood, ResourceHerb,
		ResourceHide, ResourceWater, ResourceGold,
	}
}

// ItemID enumerates the craftable/harvestable item templates.
type ItemID uint8

const (
	ItemWaterskin ItemID = iota
	ItemAntidote
	ItemAxe
	ItemPickaxe
	ItemTorch
	ItemCharm
)

var itemNames = map[ItemID]string{
	ItemWaterskin: "waterskin",
	ItemAntidote:  "antidote",
	ItemAxe:       "axe",
	ItemPickaxe:   "pickaxe",
	ItemTorch:     "torch",
	ItemCharm:     "charm",
}

func (i ItemID) String() string {
	if s, ok := itemNames[i]; ok {
		return s
	}
	panic(fmt.Sprintf("catalog: unknown item %d", uint8(i)))
}

// Building enumerates the constructible building types.
type Building uint8

const (
	BuildingTownHall Building = iota
	BuildingSawmill
	BuildingQuarry
	BuildingFarm
	BuildingBarracks
	BuildingShrine
	BuildingWall
)

var buildingNames = map[Building]string{
	BuildingTownHall: "town_hall",
	BuildingSawmill:  "sawmill",
	BuildingQuarry:   "quarry",
	BuildingFarm:     "farm",
	BuildingBarracks: "barracks",
	BuildingShrine:   "shrine",
	BuildingWall:     "wall",
}

func (b Building) String() string {
	if s, ok := buildingNames[b]; ok {
		return s
	}
	panic(fmt.Sprintf("catalog: unknown building %d", uint8(b)))
}
