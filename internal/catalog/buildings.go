package catalog

import "fmt"

// Requirement names a building the city must own at or above a level
// before a construction or upgrade may start.
type Requirement struct {
	Building Building
	Level    int
}

func (r Requirement) String() string {
	return fmt.Sprintf("%s level %d", r.Building, r.Level)
}

// Effects are the bonuses a completed building level contributes to
// its city's aggregate totals.
type Effects struct {
	Production    map[Resource]int `json:"production,omitempty"`
	StorageCap    int              `json:"storage_cap,omitempty"`
	PopulationCap int              `json:"population_cap,omitempty"`
	Unlocks       []string         `json:"unlocks,omitempty"`
}

// LevelSpec describes one tier of a building: its cost, timing,
// constraints, and effects.
type LevelSpec struct {
	Level        int
	APCost       int
	BuildMinutes int
	Cost         map[Resource]int
	Requires     []Requirement
	Excludes     []Building
	Effects      Effects
}

// BuildingSpec is the full catalog entry for one building type.
type BuildingSpec struct {
	ID       Building
	MaxLevel int
	Levels   []LevelSpec
}

// LevelAt returns the spec for the given level. Panics on a level
// outside [1, MaxLevel]; callers validate gameplay bounds first.
func (s BuildingSpec) LevelAt(level int) LevelSpec {
	if level < 1 || level > s.MaxLevel {
		panic(fmt.Sprintf("catalog: %s has no level %d", s.ID, level))
	}
	return s.Levels[level-1]
}

// BuildingSpecFor looks up a building's catalog entry. A miss is a
// data error and panics.
func BuildingSpecFor(b Building) BuildingSpec {
	spec, ok := Buildings[b]
	if !ok {
		panic(fmt.Sprintf("catalog: no spec for building %s", b))
	}
	return spec
}

// Buildings is the static building catalog. The town hall is the root
// prerequisite; barracks and shrine are mutually exclusive.
var Buildings = map[Building]BuildingSpec{
	BuildingTownHall: {
		ID:       BuildingTownHall,
		MaxLevel: 3,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 2, BuildMinutes: 2,
				Cost:    map[Resource]int{ResourceWood: 4, ResourceStone: 2},
				Effects: Effects{PopulationCap: 4, StorageCap: 10},
			},
			{
				Level: 2, APCost: 3, BuildMinutes: 4,
				Cost:    map[Resource]int{ResourceWood: 6, ResourceStone: 4, ResourceFood: 2},
				Effects: Effects{PopulationCap: 6, StorageCap: 16},
			},
			{
				Level: 3, APCost: 4, BuildMinutes: 6,
				Cost:    map[Resource]int{ResourceWood: 8, ResourceStone: 8, ResourceGold: 2},
				Effects: Effects{PopulationCap: 8, StorageCap: 24, Unlocks: []string{"beacon"}},
			},
		},
	},
	BuildingSawmill: {
		ID:       BuildingSawmill,
		MaxLevel: 2,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 2, BuildMinutes: 3,
				Cost:     map[Resource]int{ResourceWood: 3, ResourceStone: 2},
				Requires: []Requirement{{BuildingTownHall, 1}},
				Effects:  Effects{Production: map[Resource]int{ResourceWood: 2}},
			},
			{
				Level: 2, APCost: 3, BuildMinutes: 4,
				Cost:     map[Resource]int{ResourceWood: 5, ResourceStone: 3},
				Requires: []Requirement{{BuildingTownHall, 2}},
				Effects:  Effects{Production: map[Resource]int{ResourceWood: 4}},
			},
		},
	},
	BuildingQuarry: {
		ID:       BuildingQuarry,
		MaxLevel: 2,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 2, BuildMinutes: 3,
				Cost:     map[Resource]int{ResourceWood: 2, ResourceStone: 3},
				Requires: []Requirement{{BuildingTownHall, 1}},
				Effects:  Effects{Production: map[Resource]int{ResourceStone: 2}},
			},
			{
				Level: 2, APCost: 3, BuildMinutes: 4,
				Cost:     map[Resource]int{ResourceWood: 3, ResourceStone: 5},
				Requires: []Requirement{{BuildingTownHall, 2}},
				Effects:  Effects{Production: map[Resource]int{ResourceStone: 4}},
			},
		},
	},
	BuildingFarm: {
		ID:       BuildingFarm,
		MaxLevel: 3,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 2, BuildMinutes: 2,
				Cost:     map[Resource]int{ResourceWood: 3},
				Requires: []Requirement{{BuildingTownHall, 1}},
				Effects:  Effects{Production: map[Resource]int{ResourceFood: 2}},
			},
			{
				Level: 2, APCost: 2, BuildMinutes: 3,
				Cost:     map[Resource]int{ResourceWood: 4, ResourceWater: 2},
				Requires: []Requirement{{BuildingTownHall, 1}},
				Effects:  Effects{Production: map[Resource]int{ResourceFood: 4}},
			},
			{
				Level: 3, APCost: 3, BuildMinutes: 5,
				Cost:     map[Resource]int{ResourceWood: 6, ResourceWater: 3, ResourceStone: 2},
				Requires: []Requirement{{BuildingTownHall, 2}},
				Effects:  Effects{Production: map[Resource]int{ResourceFood: 6}},
			},
		},
	},
	BuildingBarracks: {
		ID:       BuildingBarracks,
		MaxLevel: 2,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 3, BuildMinutes: 5,
				Cost:     map[Resource]int{ResourceWood: 4, ResourceStone: 4, ResourceHide: 2},
				Requires: []Requirement{{BuildingTownHall, 2}},
				Excludes: []Building{BuildingShrine},
				Effects:  Effects{PopulationCap: 2, Unlocks: []string{"militia"}},
			},
			{
				Level: 2, APCost: 4, BuildMinutes: 6,
				Cost:     map[Resource]int{ResourceWood: 6, ResourceStone: 6, ResourceHide: 4},
				Requires: []Requirement{{BuildingTownHall, 3}},
				Excludes: []Building{BuildingShrine},
				Effects:  Effects{PopulationCap: 3, Unlocks: []string{"raiders"}},
			},
		},
	},
	BuildingShrine: {
		ID:       BuildingShrine,
		MaxLevel: 2,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 3, BuildMinutes: 5,
				Cost:     map[Resource]int{ResourceStone: 4, ResourceHerb: 3, ResourceGold: 1},
				Requires: []Requirement{{BuildingTownHall, 2}},
				Excludes: []Building{BuildingBarracks},
				Effects:  Effects{Unlocks: []string{"blessing"}},
			},
			{
				Level: 2, APCost: 4, BuildMinutes: 6,
				Cost:     map[Resource]int{ResourceStone: 6, ResourceHerb: 5, ResourceGold: 2},
				Requires: []Requirement{{BuildingTownHall, 3}},
				Excludes: []Building{BuildingBarracks},
				Effects:  Effects{Production: map[Resource]int{ResourceHerb: 1}, Unlocks: []string{"ritual"}},
			},
		},
	},
	BuildingWall: {
		ID:       BuildingWall,
		MaxLevel: 3,
		Levels: []LevelSpec{
			{
				Level: 1, APCost: 2, BuildMinutes: 4,
				Cost:     map[Resource]int{ResourceStone: 5},
				Requires: []Requirement{{BuildingTownHall, 1}},
				Effects:  Effects{Unlocks: []string{"gate"}},
			},
			{
				Level: 2, APCost: 3, BuildMinutes: 5,
				Cost:     map[Resource]int{ResourceStone: 8},
				Requires: []Requirement{{BuildingTownHall, 2}},
				Effects:  Effects{Unlocks: []string{"rampart"}},
			},
			{
				Level: 3, APCost: 4, BuildMinutes: 7,
				Cost:     map[Resource]int{ResourceStone: 12, ResourceGold: 2},
				Requires: []Requirement{{BuildingTownHall, 3}},
				Effects:  Effects{Unlocks: []string{"bastion"}},
			},
		},
	},
}
