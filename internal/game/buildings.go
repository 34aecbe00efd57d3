package game

import (
	"fmt"
	"time"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/hex"
	"github.com/talgya/hexfront/internal/world"
)

// scorePerLevel is the team score awarded when a building level completes.
const scorePerLevel = 10

// City is a team's settlement: one building instance per type, never
// two concurrent instances of the same type.
type City struct {
	TeamID    int                                    `json:"team_id"`
	Site      hex.Cube                               `json:"site"`
	Buildings map[catalog.Building]*BuildingInstance `json:"buildings"`
}

func newCity(teamID int, site hex.Cube) *City {
	return &City{
		TeamID:    teamID,
		Site:      site,
		Buildings: make(map[catalog.Building]*BuildingInstance),
	}
}

// BuildingInstance tracks one building's level and any in-flight
// construction or upgrade. Completion is a wall-clock comparison
// against the stored start and duration, so it survives process
// pauses with no drift correction.
type BuildingInstance struct {
	Type  catalog.Building `json:"type"`
	Level int              `json:"level"`
	Coord hex.Cube         `json:"coord"`

	UnderConstruction    bool          `json:"under_construction"`
	ConstructionStart    time.Time     `json:"construction_start,omitempty"`
	ConstructionDuration time.Duration `json:"construction_duration,omitempty"`

	Upgrading       bool          `json:"upgrading"`
	UpgradeStart    time.Time     `json:"upgrade_start,omitempty"`
	UpgradeDuration time.Duration `json:"upgrade_duration,omitempty"`
	UpgradeTo       int           `json:"upgrade_to,omitempty"`
}

// Completed reports whether the instance has no unfinished work as of
// now. Due-but-unswept completions count as complete, so effects land
// the moment the timestamp passes.
func (b *BuildingInstance) Completed(now time.Time) bool {
	if b.UnderConstruction && now.Before(b.ConstructionStart.Add(b.ConstructionDuration)) {
		return false
	}
	if b.Upgrading && now.Before(b.UpgradeStart.Add(b.UpgradeDuration)) {
		return false
	}
	return true
}

// EffectiveLevel is the level whose effects apply as of now.
func (b *BuildingInstance) EffectiveLevel(now time.Time) int {
	if b.Upgrading && b.Completed(now) {
		return b.UpgradeTo
	}
	return b.Level
}

// BuildStructure starts constructing a new building in the team's
// city, placing it on the given tile. Prerequisite and cost checks
// fully precede the deduction.
func (g *Game) BuildStructure(playerID string, cityID int, b catalog.Building, at hex.Cube) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireInteraction(); err != nil {
		return err
	}
	p, city, err := g.actorAndCity(playerID, cityID)
	if err != nil {
		return err
	}
	if _, exists := city.Buildings[b]; exists {
		return ErrBuildingExists
	}
	tile := g.board.Get(at)
	if tile == nil {
		return ErrOutOfBounds
	}
	if tile.Building != nil {
		return ErrTileOccupied
	}

	now := g.now()
	lvl := catalog.BuildingSpecFor(b).LevelAt(1)
	if missing := g.checkPrerequisites(lvl, city, now); len(missing) > 0 {
		return &PrereqError{Missing: missing}
	}
	if err := g.checkCosts(playerID, lvl); err != nil {
		return err
	}

	g.deductCosts(playerID, lvl)
	city.Buildings[b] = &BuildingInstance{
		Type:                 b,
		Level:                1,
		Coord:                at,
		UnderConstruction:    true,
		ConstructionStart:    now,
		ConstructionDuration: time.Duration(lvl.BuildMinutes) * time.Minute,
	}
	tile.Building = &world.PlacedBuilding{TeamID: cityID, Building: b.String()}
	g.record("build", fmt.Sprintf("%s started a %s for team %s", p.Name, b, g.teams[cityID].Name))
	return nil
}

// UpgradeBuilding starts raising an existing building one level.
func (g *Game) UpgradeBuilding(playerID string, cityID int, b catalog.Building) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireInteraction(); err != nil {
		return err
	}
	p, city, err := g.actorAndCity(playerID, cityID)
	if err != nil {
		return err
	}
	inst, ok := city.Buildings[b]
	if !ok {
		return ErrNoBuilding
	}

	now := g.now()
	g.sweepCompletions(now)
	if inst.UnderConstruction || inst.Upgrading {
		return ErrBuildingBusy
	}

	spec := catalog.BuildingSpecFor(b)
	next := inst.Level + 1
	if next > spec.MaxLevel {
		return ErrMaxLevel
	}
	lvl := spec.LevelAt(next)
	if missing := g.checkPrerequisites(lvl, city, now); len(missing) > 0 {
		return &PrereqError{Missing: missing}
	}
	if err := g.checkCosts(playerID, lvl); err != nil {
		return err
	}

	g.deductCosts(playerID, lvl)
	inst.Upgrading = true
	inst.UpgradeStart = now
	inst.UpgradeDuration = time.Duration(lvl.BuildMinutes) * time.Minute
	inst.UpgradeTo = next
	g.record("build", fmt.Sprintf("%s started upgrading %s to level %d", p.Name, b, next))
	return nil
}

// CityEffects folds the current-level effects of every completed
// building into the city's aggregate totals. Recomputed on demand,
// never cached, so it cannot drift. In-progress work contributes
// nothing until its completion timestamp passes.
func (g *Game) CityEffects(cityID int) (catalog.Effects, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cityID < 0 || cityID >= len(g.cities) {
		return catalog.Effects{}, ErrUnknownCity
	}
	return cityEffects(g.cities[cityID], g.now()), nil
}

func cityEffects(city *City, now time.Time) catalog.Effects {
	total := catalog.Effects{Production: make(map[catalog.Resource]int)}
	for _, inst := range city.Buildings {
		if !inst.Completed(now) {
			continue
		}
		eff := catalog.BuildingSpecFor(inst.Type).LevelAt(inst.EffectiveLevel(now)).Effects
		for res, n := range eff.Production {
			total.Production[res] += n
		}
		total.StorageCap += eff.StorageCap
		total.PopulationCap += eff.PopulationCap
		total.Unlocks = append(total.Unlocks, eff.Unlocks...)
	}
	return total
}

// checkPrerequisites returns every unmet requirement of the level:
// required buildings below level or missing, and mutual-exclusion
// conflicts. Empty means the level may be built.
func (g *Game) checkPrerequisites(lvl catalog.LevelSpec, city *City, now time.Time) []string {
	var missing []string
	for _, req := range lvl.Requires {
		inst, ok := city.Buildings[req.Building]
		if !ok || !inst.Completed(now) || inst.EffectiveLevel(now) < req.Level {
			missing = append(missing, fmt.Sprintf("requires %s", req))
		}
	}
	for _, ex := range lvl.Excludes {
		if _, ok := city.Buildings[ex]; ok {
			missing = append(missing, fmt.Sprintf("conflicts with %s", ex))
		}
	}
	return missing
}

// checkCosts verifies the full resource cost and the AP cost are
// available. Nothing is deducted here, so a failure is side-effect
// free.
func (g *Game) checkCosts(playerID string, lvl catalog.LevelSpec) error {
	st := g.stats[playerID]
	for res, n := range lvl.Cost {
		if st.Resources[res] < n {
			return fmt.Errorf("%w: need %d %s", ErrInsufficientResources, n, res)
		}
	}
	if st.AP < lvl.APCost {
		return ErrInsufficientAP
	}
	return nil
}

// deductCosts spends the already-verified resources and AP. Callers
// run checkCosts first; partial deduction can never occur.
func (g *Game) deductCosts(playerID string, lvl catalog.LevelSpec) {
	st := g.stats[playerID]
	for res, n := range lvl.Cost {
		st.Resources[res] -= n
	}
	st.AP -= lvl.APCost
}

// sweepCompletions finalizes any due construction or upgrade: flips
// the in-progress flags, advances the level in place, and scores the
// owning team. Effects need no folding here — CityEffects recomputes
// from scratch. Callers hold g.mu.
func (g *Game) sweepCompletions(now time.Time) {
	for _, city := range g.cities {
		for _, inst := range city.Buildings {
			if inst.UnderConstruction && inst.Completed(now) {
				inst.UnderConstruction = false
				g.teams[city.TeamID].Score += inst.Level * scorePerLevel
				g.record("build", fmt.Sprintf("team %s completed a %s",
					g.teams[city.TeamID].Name, inst.Type))
			}
			if inst.Upgrading && inst.Completed(now) {
				inst.Level = inst.UpgradeTo
				inst.Upgrading = false
				inst.UpgradeTo = 0
				g.teams[city.TeamID].Score += inst.Level * scorePerLevel
				g.record("build", fmt.Sprintf("team %s upgraded %s to level %d",
					g.teams[city.TeamID].Name, inst.Type, inst.Level))
			}
		}
	}
}

func (g *Game) actorAndCity(playerID string, cityID int) (*Player, *City, error) {
	p, ok := g.players[playerID]
	if !ok {
		return nil, nil, ErrUnknownPlayer
	}
	if cityID < 0 || cityID >= len(g.cities) {
		return nil, nil, ErrUnknownCity
	}
	if p.TeamID != cityID {
		return nil, nil, ErrNotTeamMember
	}
	return p, g.cities[cityID], nil
}
