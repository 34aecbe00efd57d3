package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/world"
)

// advance moves to the next phase at the given instant and applies
// that phase's boundary effects atomically. Wrapping back to
// round_start increments the round number first. Callers hold g.mu.
func (g *Game) advance(at time.Time) {
	g.phase = g.phase.Next()
	g.phaseStarted = at
	g.dismissed = make(map[string]bool)

	if g.phase == PhaseRoundStart {
		g.round++
		g.record("game", fmt.Sprintf("round %d begins", g.round))
	}
	slog.Debug("phase advanced", "phase", g.phase, "round", g.round)

	switch g.phase {
	case PhaseAPRenewal:
		g.renewActionPoints()
	case PhaseTerrainEffects:
		g.applyTerrainEffects()
	case PhaseDisasterCheck:
		g.applyDisasters()
	case PhaseElimination:
		g.applyEliminations()
	}
}

// renewActionPoints grants the per-round AP allowance and clears the
// status effects accumulated during the prior round.
func (g *Game) renewActionPoints() {
	for _, p := range g.playersByNumber() {
		st := g.stats[p.ID]
		st.AP += g.cfg.APRenewalGrant
		st.StatusEffects = nil
	}
	g.record("economy", fmt.Sprintf("action points renewed (+%d)", g.cfg.APRenewalGrant))
}

// applyTerrainEffects applies each occupied tile's periodic hazard.
// A held protection item waives the damage without being spent; failing
// that, one unit of the protecting resource is spent to waive it.
func (g *Game) applyTerrainEffects() {
	for _, p := range g.playersByNumber() {
		tile := g.board.Get(p.Position)
		spec := catalog.TerrainSpecFor(tile.Terrain)
		if spec.PeriodicDamage == 0 {
			continue
		}
		st := g.stats[p.ID]

		if spec.ProtectingItem != nil && hasUsableItem(st, *spec.ProtectingItem) {
			continue
		}
		if spec.ProtectingResource != nil && st.Resources[*spec.ProtectingResource] > 0 {
			st.Resources[*spec.ProtectingResource]--
			g.record("hazard", fmt.Sprintf("%s spent %s to ward off %s",
				p.Name, *spec.ProtectingResource, spec.HazardName))
			continue
		}

		g.damage(p.ID, spec.PeriodicDamage)
		st.StatusEffects = append(st.StatusEffects, spec.HazardName)
		g.record("hazard", fmt.Sprintf("%s suffered %s (-%d HP)",
			p.Name, spec.HazardName, spec.PeriodicDamage))
	}
}

// applyDisasters rolls once per occupied terrain type. The hit chance
// is occupants/tiles of that terrain, capped; on a hit one disaster is
// drawn from the terrain's list and strikes every occupant.
func (g *Game) applyDisasters() {
	occupants := make(map[world.Terrain][]*Player)
	for _, p := range g.playersByNumber() {
		terrain := g.board.Get(p.Position).Terrain
		occupants[terrain] = append(occupants[terrain], p)
	}
	tiles := g.board.TerrainTiles()

	for _, terrain := range world.Terrains() {
		present := occupants[terrain]
		if len(present) == 0 {
			continue
		}
		prob := float64(len(present)) / float64(tiles[terrain])
		if prob > g.cfg.DisasterCap {
			prob = g.cfg.DisasterCap
		}
		if g.rng.Float64() >= prob {
			continue
		}

		list := catalog.TerrainSpecFor(terrain).Disasters
		disaster := list[g.rng.IntN(len(list))]
		for _, p := range present {
			g.damage(p.ID, disaster.Damage)
			g.stats[p.ID].StatusEffects = append(g.stats[p.ID].StatusEffects, disaster.Name)
		}
		g.record("disaster", fmt.Sprintf("%s struck the %s (%d players, -%d HP)",
			disaster.Name, terrain, len(present), disaster.Damage))
	}
}

// applyEliminations removes every player at 0 HP. Elimination happens
// only here, never mid-phase, so damage earlier in the round leaves
// players on the board until this boundary.
func (g *Game) applyEliminations() {
	for _, p := range g.playersByNumber() {
		if g.stats[p.ID].HP > 0 {
			continue
		}
		g.removePlayer(p, "eliminated")
	}
}

// damage lowers HP, clamping at zero. Death is not evaluated here;
// the elimination phase owns removal.
func (g *Game) damage(playerID string, amount int) {
	st := g.stats[playerID]
	st.HP -= amount
	if st.HP < 0 {
		st.HP = 0
	}
}
