package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/hex"
)

// giveCosts credits exactly one level's resource cost plus its AP.
func giveCosts(t *testing.T, g *Game, playerID string, lvl catalog.LevelSpec) {
	t.Helper()
	for res, n := range lvl.Cost {
		require.NoError(t, g.AddResource(playerID, res, n))
	}
	require.NoError(t, g.GrantActionPoints(playerID, lvl.APCost))
}

// buildSite returns an empty tile for construction.
func buildSite(t *testing.T, g *Game) hex.Cube {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range hex.Spiral(hex.Origin, g.board.Radius) {
		if g.board.Get(c).Building == nil {
			return c
		}
	}
	t.Fatal("no free tile")
	return hex.Cube{}
}

func TestBuildPrerequisitesListEveryMiss(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *catalog.Tuning) { cfg.APRenewalGrant = 0 })
	p := startGame(t, g, "ada")[0]
	advanceTo(t, g, PhaseInteraction)

	// A shrine in the city makes the barracks attempt miss on both the
	// town hall requirement and the mutual exclusion.
	g.mu.Lock()
	city := g.cities[p.TeamID]
	city.Buildings[catalog.BuildingShrine] = &BuildingInstance{
		Type: catalog.BuildingShrine, Level: 1,
	}
	g.mu.Unlock()

	lvl := catalog.BuildingSpecFor(catalog.BuildingBarracks).LevelAt(1)
	giveCosts(t, g, p.ID, lvl)

	err := g.BuildStructure(p.ID, p.TeamID, catalog.BuildingBarracks, buildSite(t, g))
	var prereq *PrereqError
	require.ErrorAs(t, err, &prereq)
	require.Len(t, prereq.Missing, 2, "every unmet requirement is reported")
	assert.Contains(t, prereq.Missing, "requires town_hall level 2")
	assert.Contains(t, prereq.Missing, "conflicts with shrine")

	// The failed attempt deducted nothing.
	st, _ := g.PlayerStats(p.ID)
	assert.Equal(t, lvl.APCost, st.AP)
}

func TestBuildCostCheckIsAtomic(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *catalog.Tuning) { cfg.APRenewalGrant = 0 })
	p := startGame(t, g, "ada")[0]
	advanceTo(t, g, PhaseInteraction)
	site := buildSite(t, g)

	lvl := catalog.BuildingSpecFor(catalog.BuildingTownHall).LevelAt(1)

	// Resources short: nothing changes.
	require.NoError(t, g.AddResource(p.ID, catalog.ResourceWood, lvl.Cost[catalog.ResourceWood]))
	require.NoError(t, g.GrantActionPoints(p.ID, lvl.APCost))
	err := g.BuildStructure(p.ID, p.TeamID, catalog.BuildingTownHall, site)
	require.ErrorIs(t, err, ErrInsufficientResources)
	st, _ := g.PlayerStats(p.ID)
	assert.Equal(t, lvl.Cost[catalog.ResourceWood], st.Resources[catalog.ResourceWood])
	assert.Equal(t, lvl.APCost, st.AP)

	// AP short: nothing changes either.
	require.NoError(t, g.AddResource(p.ID, catalog.ResourceStone, lvl.Cost[catalog.ResourceStone]))
	require.NoError(t, g.SpendActionPoints(p.ID, lvl.APCost))
	err = g.BuildStructure(p.ID, p.TeamID, catalog.BuildingTownHall, site)
	require.ErrorIs(t, err, ErrInsufficientAP)
	st, _ = g.PlayerStats(p.ID)
	assert.Equal(t, lvl.Cost[catalog.ResourceStone], st.Resources[catalog.ResourceStone])

	// Fully funded: exact deduction, instance in progress, tile marked.
	require.NoError(t, g.GrantActionPoints(p.ID, lvl.APCost))
	require.NoError(t, g.BuildStructure(p.ID, p.TeamID, catalog.BuildingTownHall, site))
	st, _ = g.PlayerStats(p.ID)
	assert.Zero(t, st.Resources[catalog.ResourceWood])
	assert.Zero(t, st.Resources[catalog.ResourceStone])
	assert.Zero(t, st.AP)

	g.mu.Lock()
	inst := g.cities[p.TeamID].Buildings[catalog.BuildingTownHall]
	tile := g.board.Get(site)
	g.mu.Unlock()
	require.NotNil(t, inst)
	assert.True(t, inst.UnderConstruction)
	assert.Equal(t, 1, inst.Level)
	require.NotNil(t, tile.Building)
	assert.Equal(t, "town_hall", tile.Building.Building)

	// Second instance of the same type is rejected.
	giveCosts(t, g, p.ID, lvl)
	err = g.BuildStructure(p.ID, p.TeamID, catalog.BuildingTownHall, buildSite(t, g))
	require.ErrorIs(t, err, ErrBuildingExists)
}

func TestEffectsExcludedUntilCompletion(t *testing.T) {
	g, clock := newTestGame(t, nil)
	p := startGame(t, g, "ada")[0]
	advanceTo(t, g, PhaseInteraction)

	lvl := catalog.BuildingSpecFor(catalog.BuildingTownHall).LevelAt(1)
	giveCosts(t, g, p.ID, lvl)
	require.NoError(t, g.BuildStructure(p.ID, p.TeamID, catalog.BuildingTownHall, buildSite(t, g)))

	eff, err := g.CityEffects(p.TeamID)
	require.NoError(t, err)
	assert.Zero(t, eff.PopulationCap, "in-progress work contributes nothing")
	assert.Zero(t, eff.StorageCap)

	// The moment the completion timestamp passes, effects count —
	// even before any sweep runs.
	*clock = clock.Add(time.Duration(lvl.BuildMinutes)*time.Minute + time.Second)
	eff, err = g.CityEffects(p.TeamID)
	require.NoError(t, err)
	assert.Equal(t, lvl.Effects.PopulationCap, eff.PopulationCap)
	assert.Equal(t, lvl.Effects.StorageCap, eff.StorageCap)

	// The sweep finalizes the flags and scores the team.
	g.Tick(*clock)
	g.mu.Lock()
	inst := g.cities[p.TeamID].Buildings[catalog.BuildingTownHall]
	score := g.teams[p.TeamID].Score
	g.mu.Unlock()
	assert.False(t, inst.UnderConstruction)
	assert.Equal(t, scorePerLevel, score)
}

func TestUpgradePipeline(t *testing.T) {
	g, clock := newTestGame(t, nil)
	p := startGame(t, g, "ada")[0]
	advanceTo(t, g, PhaseInteraction)

	spec := catalog.BuildingSpecFor(catalog.BuildingTownHall)
	l1, l2 := spec.LevelAt(1), spec.LevelAt(2)

	giveCosts(t, g, p.ID, l1)
	require.NoError(t, g.BuildStructure(p.ID, p.TeamID, catalog.BuildingTownHall, buildSite(t, g)))

	// Upgrading while construction is in flight is rejected.
	giveCosts(t, g, p.ID, l2)
	err := g.UpgradeBuilding(p.ID, p.TeamID, catalog.BuildingTownHall)
	require.ErrorIs(t, err, ErrBuildingBusy)

	*clock = clock.Add(time.Duration(l1.BuildMinutes)*time.Minute + time.Second)
	require.NoError(t, g.UpgradeBuilding(p.ID, p.TeamID, catalog.BuildingTownHall))

	// An upgrading building drops out of the aggregates until done.
	eff, _ := g.CityEffects(p.TeamID)
	assert.Zero(t, eff.PopulationCap, "upgrading building is excluded from aggregates")

	*clock = clock.Add(time.Duration(l2.BuildMinutes)*time.Minute + time.Second)
	eff, _ = g.CityEffects(p.TeamID)
	assert.Equal(t, l2.Effects.PopulationCap, eff.PopulationCap)
	assert.Equal(t, l2.Effects.StorageCap, eff.StorageCap)

	g.Tick(*clock)
	g.mu.Lock()
	inst := g.cities[p.TeamID].Buildings[catalog.BuildingTownHall]
	g.mu.Unlock()
	assert.Equal(t, 2, inst.Level)
	assert.False(t, inst.Upgrading)
}

func TestUpgradeValidation(t *testing.T) {
	g, _ := newTestGame(t, nil)
	players := startGame(t, g, "ada", "bo")
	ada := players[0]
	advanceTo(t, g, PhaseInteraction)

	err := g.UpgradeBuilding(ada.ID, ada.TeamID, catalog.BuildingTownHall)
	require.ErrorIs(t, err, ErrNoBuilding)

	// bo is on another team and may not touch ada's city.
	bo := players[1]
	require.NotEqual(t, ada.TeamID, bo.TeamID)
	err = g.UpgradeBuilding(bo.ID, ada.TeamID, catalog.BuildingTownHall)
	require.ErrorIs(t, err, ErrNotTeamMember)

	err = g.UpgradeBuilding(ada.ID, 99, catalog.BuildingTownHall)
	require.ErrorIs(t, err, ErrUnknownCity)
}

func TestUpgradeMaxLevel(t *testing.T) {
	g, _ := newTestGame(t, nil)
	p := startGame(t, g, "ada")[0]
	advanceTo(t, g, PhaseInteraction)

	g.mu.Lock()
	g.cities[p.TeamID].Buildings[catalog.BuildingTownHall] = &BuildingInstance{
		Type:  catalog.BuildingTownHall,
		Level: catalog.BuildingSpecFor(catalog.BuildingTownHall).MaxLevel,
	}
	g.mu.Unlock()

	err := g.UpgradeBuilding(p.ID, p.TeamID, catalog.BuildingTownHall)
	require.ErrorIs(t, err, ErrMaxLevel)
}
