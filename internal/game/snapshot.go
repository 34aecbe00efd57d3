package game

import (
	"time"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/hex"
	"github.com/talgya/hexfront/internal/world"
)

// Snapshot is the immutable read model handed to renderers. Every
// slice and map is a copy; holding a snapshot never observes later
// mutation.
type Snapshot struct {
	TakenAt time.Time `json:"taken_at"`
	State   string    `json:"state"`
	Round   int       `json:"round"`

	Phase            string  `json:"phase"`
	PhaseRemainingS  float64 `json:"phase_remaining_s"`
	PhaseOverlayS    int     `json:"phase_overlay_s"`
	PhaseDismissible bool    `json:"phase_dismissible"`
	DismissedBy      []string `json:"dismissed_by,omitempty"`

	CurrentPlayerID string `json:"current_player_id,omitempty"`

	Tiles   []world.Tile        `json:"tiles"`
	Players []PlayerView        `json:"players"`
	Teams   []Team              `json:"teams"`
	Cities  []CityView          `json:"cities,omitempty"`
	Events  []Event             `json:"events"`
	Pools   map[string][]string `json:"pools,omitempty"`

	Selected map[string]hex.Cube `json:"selected,omitempty"`
}

// PlayerView pairs a player with their ledger entry.
type PlayerView struct {
	Player Player `json:"player"`
	Stats  Stats  `json:"stats"`
}

// CityView exposes a city's buildings and its on-demand aggregate.
type CityView struct {
	TeamID    int                `json:"team_id"`
	Site      hex.Cube           `json:"site"`
	Buildings []BuildingInstance `json:"buildings"`
	Effects   catalog.Effects    `json:"effects"`
}

// TakeSnapshot builds the full read model under the lock.
func (g *Game) TakeSnapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	phaseTuning := g.cfg.PhaseFor(g.phase.String())

	snap := Snapshot{
		TakenAt:          now,
		State:            g.state.String(),
		Round:            g.round,
		Phase:            g.phase.String(),
		PhaseOverlayS:    phaseTuning.OverlayS,
		PhaseDismissible: phaseTuning.Dismissible,
		CurrentPlayerID:  g.currentID,
		Events:           eventsNewestFirst(g.events),
	}

	if g.state == LifecycleRunning {
		remaining := g.phaseDuration(g.phase) - now.Sub(g.phaseStarted)
		if remaining < 0 {
			remaining = 0
		}
		snap.PhaseRemainingS = remaining.Seconds()
		for id := range g.dismissed {
			snap.DismissedBy = append(snap.DismissedBy, id)
		}
	}

	// Tiles in spiral order: deterministic and render-friendly.
	for _, c := range hex.Spiral(hex.Origin, g.board.Radius) {
		tile := *g.board.Get(c)
		tile.Occupants = append([]string(nil), tile.Occupants...)
		if tile.Building != nil {
			b := *tile.Building
			tile.Building = &b
		}
		snap.Tiles = append(snap.Tiles, tile)
	}

	for _, p := range g.playersByNumber() {
		snap.Players = append(snap.Players, PlayerView{
			Player: *p,
			Stats:  copyStats(g.stats[p.ID]),
		})
	}

	for _, t := range g.teams {
		team := *t
		team.Members = append([]string(nil), t.Members...)
		snap.Teams = append(snap.Teams, team)
	}

	for _, city := range g.cities {
		view := CityView{
			TeamID:  city.TeamID,
			Site:    city.Site,
			Effects: cityEffects(city, now),
		}
		for _, b := range catalogBuildingOrder() {
			if inst, ok := city.Buildings[b]; ok {
				view.Buildings = append(view.Buildings, *inst)
			}
		}
		snap.Cities = append(snap.Cities, view)
	}

	if g.pools != nil {
		snap.Pools = make(map[string][]string, len(g.pools)+1)
		for _, terrain := range world.Terrains() {
			snap.Pools[terrain.String()] = slotNames(g.pools[terrain])
		}
		snap.Pools["items"] = itemSlotNames(g.itemPool)
	}

	if len(g.selected) > 0 {
		snap.Selected = make(map[string]hex.Cube, len(g.selected))
		for id, c := range g.selected {
			snap.Selected[id] = c
		}
	}
	return snap
}

// slotNames renders a pool's visible window; empty slots are "".
func slotNames(p *resourcePool) []string {
	out := make([]string, len(p.slots))
	for i, s := range p.slots {
		if s != nil {
			out[i] = s.String()
		}
	}
	return out
}

func itemSlotNames(p *itemPool) []string {
	out := make([]string, len(p.slots))
	for i, s := range p.slots {
		if s != nil {
			out[i] = s.String()
		}
	}
	return out
}

func catalogBuildingOrder() []catalog.Building {
	return []catalog.Building{
		catalog.BuildingTownHall, catalog.BuildingSawmill, catalog.BuildingQuarry,
		catalog.BuildingFarm, catalog.BuildingBarracks, catalog.BuildingShrine,
		catalog.BuildingWall,
	}
}
