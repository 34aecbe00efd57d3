package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/world"
)

func TestValidateAcceptsShippedTables(t *testing.T) {
	assert.NotPanics(t, Validate)
}

func TestEveryTerrainHasRules(t *testing.T) {
	for _, terrain := range world.Terrains() {
		spec := TerrainSpecFor(terrain)
		total := 0
		for _, pct := range spec.Distribution {
			total += pct
		}
		assert.LessOrEqual(t, total, 100, "terrain %s over-distributes", terrain)
		assert.Positive(t, total, "terrain %s distributes nothing", terrain)
	}

	lake := TerrainSpecFor(world.TerrainLake)
	assert.True(t, lake.AlwaysActive, "lake must stay harvestable")
	assert.Zero(t, lake.PeriodicDamage)

	desert := TerrainSpecFor(world.TerrainDesert)
	require.NotNil(t, desert.ProtectingItem)
	require.NotNil(t, desert.ProtectingResource)
	assert.Equal(t, ItemWaterskin, *desert.ProtectingItem)
	assert.Equal(t, ResourceWater, *desert.ProtectingResource)
}

func TestBuildingLevelsContiguous(t *testing.T) {
	for b, spec := range Buildings {
		require.Len(t, spec.Levels, spec.MaxLevel, "building %s", b)
		for i, lvl := range spec.Levels {
			assert.Equal(t, i+1, lvl.Level, "building %s", b)
			assert.Equal(t, lvl, spec.LevelAt(i+1))
		}
	}
	assert.Panics(t, func() { BuildingSpecFor(BuildingTownHall).LevelAt(99) })
}

func TestMutualExclusion(t *testing.T) {
	barracks := BuildingSpecFor(BuildingBarracks).LevelAt(1)
	shrine := BuildingSpecFor(BuildingShrine).LevelAt(1)
	assert.Contains(t, barracks.Excludes, BuildingShrine)
	assert.Contains(t, shrine.Excludes, BuildingBarracks)
}

func TestItemUsesRanges(t *testing.T) {
	for _, id := range ItemIDs() {
		spec := ItemSpecFor(id)
		assert.GreaterOrEqual(t, spec.MinUses, 1, "item %s", id)
		assert.GreaterOrEqual(t, spec.MaxUses, spec.MinUses, "item %s", id)
		assert.NotEmpty(t, spec.Recipe, "item %s", id)
	}
}

func TestDefaultTuning(t *testing.T) {
	cfg := DefaultTuning()
	assert.Equal(t, 30, cfg.PlayerCap)
	assert.Equal(t, 3, cfg.TeamCount)
	assert.Equal(t, 2, cfg.APRenewalGrant)
	assert.Equal(t, 0.5, cfg.DisasterCap)
	require.Len(t, cfg.Phases, 7)

	interaction := cfg.PhaseFor("interaction")
	assert.False(t, interaction.Dismissible)
	assert.Panics(t, func() { cfg.PhaseFor("intermission") })
}

func TestTuningRejectsBadValues(t *testing.T) {
	cfg := DefaultTuning()
	cfg.DisasterCap = 1.5
	assert.Error(t, cfg.check())

	cfg = DefaultTuning()
	cfg.BoardRadius = 2 // outer ring of 12 cannot seat 30
	assert.Error(t, cfg.check())
}
