package catalog

import "fmt"

// ItemSpec is the template for a craftable or harvestable item. A new
// instance draws its uses uniformly from [MinUses, MaxUses] at the
// moment of creation.
type ItemSpec struct {
	ID      ItemID
	MinUses int
	MaxUses int
	Recipe  map[Resource]int
}

// ItemSpecFor looks up an item template. A miss is a data error and panics.
func ItemSpecFor(id ItemID) ItemSpec {
	spec, ok := Items[id]
	if !ok {
		panic(fmt.Sprintf("catalog: no spec for item %s", id))
	}
	return spec
}

// ItemIDs lists every item template in enum order.
func ItemIDs() []ItemID {
	return []ItemID{
		ItemWaterskin, ItemAntidote, ItemAxe,
		ItemPickaxe, ItemTorch, ItemCharm,
	}
}

// Items is the static item catalog.
var Items = map[ItemID]ItemSpec{
	ItemWaterskin: {
		ID: ItemWaterskin, MinUses: 2, MaxUses: 4,
		Recipe: map[Resource]int{ResourceWater: 2, ResourceHide: 1},
	},
	ItemAntidote: {
		ID: ItemAntidote, MinUses: 1, MaxUses: 2,
		Recipe: map[Resource]int{ResourceHerb: 3},
	},
	ItemAxe: {
		ID: ItemAxe, MinUses: 3, MaxUses: 6,
		Recipe: map[Resource]int{ResourceWood: 2, ResourceStone: 1},
	},
	ItemPickaxe: {
		ID: ItemPickaxe, MinUses: 3, MaxUses: 6,
		Recipe: map[Resource]int{ResourceWood: 1, ResourceStone: 2},
	},
	ItemTorch: {
		ID: ItemTorch, MinUses: 2, MaxUses: 5,
		Recipe: map[Resource]int{ResourceWood: 2, ResourceHerb: 1},
	},
	ItemCharm: {
		ID: ItemCharm, MinUses: 1, MaxUses: 3,
		Recipe: map[Resource]int{ResourceGold: 2, ResourceHerb: 1},
	},
}
