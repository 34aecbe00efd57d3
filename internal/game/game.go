// Package game implements the authoritative game state: the player
// economy ledger, the round phase cycle, the building pipeline, and
// the harvest/crafting engine. All mutation is serialized through one
// mutex so commands and phase boundaries never interleave; validation
// fully precedes mutation, so a failed command changes nothing.
package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/entropy"
	"github.com/talgya/hexfront/internal/hex"
	"github.com/talgya/hexfront/internal/world"
)

// Lifecycle is the coarse game state around the round cycle.
type Lifecycle uint8

const (
	LifecycleLobby Lifecycle = iota
	LifecycleRunning
)

var lifecycleNames = map[Lifecycle]string{
	LifecycleLobby:   "lobby",
	LifecycleRunning: "running",
}

func (l Lifecycle) String() string { return lifecycleNames[l] }

// Team groups players; teams are created at construction time and
// their count never changes.
type Team struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Members []string `json:"members"`
	Score   int      `json:"score"`
}

var teamNames = []string{"Ember", "Tide", "Moss", "Dusk", "Gale"}
var teamColors = []string{"#d9534f", "#428bca", "#5cb85c", "#9b59b6", "#f0ad4e"}

var playerColors = []string{
	"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231",
	"#911eb4", "#46f0f0", "#f032e6", "#bcf60c", "#fabebe",
}

// Game owns the complete authoritative state. One instance per match.
type Game struct {
	mu  sync.Mutex
	cfg catalog.Tuning
	rng entropy.Source
	now func() time.Time

	board     *world.Map
	seats     []hex.Cube
	citySites []hex.Cube

	state        Lifecycle
	round        int
	phase        Phase
	phaseStarted time.Time
	dismissed    map[string]bool

	players   map[string]*Player
	stats     map[string]*Stats
	teams     []*Team
	cities    []*City
	currentID string

	pools    map[world.Terrain]*resourcePool
	itemPool *itemPool

	events  []Event
	publish func(Event)

	selected map[string]hex.Cube
}

// New builds a fresh game in the lobby state. The catalogs are
// validated once here; malformed data panics.
func New(cfg catalog.Tuning, rng entropy.Source) *Game {
	catalog.Validate()
	for _, p := range Phases() {
		cfg.PhaseFor(p.String()) // panics on a missing phase entry
	}

	board := world.Generate(cfg.BoardRadius)
	g := &Game{
		cfg:       cfg,
		rng:       rng,
		now:       time.Now,
		board:     board,
		seats:     world.StartingPositions(board, cfg.PlayerCap),
		citySites: world.CitySites(board, cfg.TeamCount),
		state:     LifecycleLobby,
		players:   make(map[string]*Player),
		stats:     make(map[string]*Stats),
		dismissed: make(map[string]bool),
		selected:  make(map[string]hex.Cube),
	}
	for i := 0; i < cfg.TeamCount; i++ {
		g.teams = append(g.teams, &Team{
			ID:    i,
			Name:  teamNames[i%len(teamNames)],
			Color: teamColors[i%len(teamColors)],
		})
	}
	return g
}

// StartGame moves the game from lobby to the first round. Requires at
// least one joined player and every player ready.
func (g *Game) StartGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LifecycleLobby {
		return ErrAlreadyStarted
	}
	if len(g.players) == 0 {
		return ErrNoPlayers
	}
	for _, p := range g.players {
		if !p.Ready {
			return ErrNotReady
		}
	}

	for _, t := range g.teams {
		g.cities = append(g.cities, newCity(t.ID, g.citySites[t.ID]))
	}
	g.buildPools()

	g.state = LifecycleRunning
	g.round = 1
	g.phase = PhaseRoundStart
	g.phaseStarted = g.now()
	g.currentID = g.firstPlayerID()

	slog.Info("game started", "players", len(g.players), "teams", len(g.teams), "tiles", g.board.TileCount())
	g.record("game", fmt.Sprintf("round 1 begins with %d players", len(g.players)))
	return nil
}

// Tick advances the phase clock. The scheduler loop calls this on a
// fixed cadence; boundary effects run here, atomically with respect to
// any command. Safe to call early or late — completion and phase
// deadlines are wall-clock comparisons, so pauses cause no drift.
func (g *Game) Tick(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LifecycleRunning {
		return
	}
	g.sweepCompletions(now)

	// Catch up if more than one phase deadline has passed.
	for {
		deadline := g.phaseStarted.Add(g.phaseDuration(g.phase))
		if now.Before(deadline) {
			return
		}
		g.advance(deadline)
	}
}

// AdvancePhase force-advances to the next phase immediately. Operator
// and test control; normal advancement is timer-driven through Tick.
func (g *Game) AdvancePhase() (Phase, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LifecycleRunning {
		return 0, ErrNotStarted
	}
	g.advance(g.now())
	return g.phase, nil
}

// DismissPhaseOverlay hides the current phase overlay for one player.
// Only phases in the configured dismissible set may be dismissed, and
// dismissal never skips the timer. Re-dismissal is a no-op.
func (g *Game) DismissPhaseOverlay(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LifecycleRunning {
		return ErrNotStarted
	}
	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if !g.cfg.PhaseFor(g.phase.String()).Dismissible {
		return ErrNotDismissible
	}
	g.dismissed[playerID] = true
	return nil
}

// CurrentPhase returns the current phase and the round number.
func (g *Game) CurrentPhase() (Phase, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase, g.round
}

// State returns the coarse game state.
func (g *Game) State() Lifecycle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// requireInteraction rejects gameplay commands outside the interaction
// phase with a phase-mismatch error, never silently.
func (g *Game) requireInteraction() error {
	if g.state != LifecycleRunning {
		return ErrNotStarted
	}
	if g.phase != PhaseInteraction {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
	}
	return nil
}

func (g *Game) phaseDuration(p Phase) time.Duration {
	return time.Duration(g.cfg.PhaseFor(p.String()).DurationS) * time.Second
}

// firstPlayerID returns the ID of the lowest-numbered player, or ""
// if none remain.
func (g *Game) firstPlayerID() string {
	best := ""
	bestNum := 0
	for id, p := range g.players {
		if best == "" || p.Number < bestNum {
			best, bestNum = id, p.Number
		}
	}
	return best
}

// playersByNumber returns the active players in seat order. Boundary
// effects iterate this so their application order is deterministic.
func (g *Game) playersByNumber() []*Player {
	out := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, p)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].Number > out[j].Number; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
