package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/entropy"
	"github.com/talgya/hexfront/internal/hex"
	"github.com/talgya/hexfront/internal/world"
)

// newTestGame builds a game with a seeded source and a settable clock.
func newTestGame(t *testing.T, mod func(*catalog.Tuning)) (*Game, *time.Time) {
	t.Helper()
	cfg := catalog.DefaultTuning()
	if mod != nil {
		mod(&cfg)
	}
	g := New(cfg, entropy.Seeded(1))
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return clock }
	return g, &clock
}

// startGame joins n ready players and starts the match.
func startGame(t *testing.T, g *Game, names ...string) []*Player {
	t.Helper()
	players := make([]*Player, 0, len(names))
	for _, name := range names {
		p, err := g.Join(name)
		require.NoError(t, err)
		require.NoError(t, g.ToggleReady(p.ID))
		players = append(players, p)
	}
	require.NoError(t, g.StartGame())
	return players
}

// advanceTo force-advances until the game sits in the target phase.
func advanceTo(t *testing.T, g *Game, target Phase) {
	t.Helper()
	for i := 0; i <= PhaseCount; i++ {
		if phase, _ := g.CurrentPhase(); phase == target {
			return
		}
		_, err := g.AdvancePhase()
		require.NoError(t, err)
	}
	t.Fatalf("never reached phase %s", target)
}

// placeOn moves a player onto the first board tile of the terrain.
func placeOn(t *testing.T, g *Game, playerID string, terrain world.Terrain) hex.Cube {
	t.Helper()
	g.mu.Lock()
	defer g.mu.Unlock()
	p := g.players[playerID]
	require.NotNil(t, p)
	for _, c := range hex.Spiral(hex.Origin, g.board.Radius) {
		tile := g.board.Get(c)
		if tile.Terrain != terrain {
			continue
		}
		g.board.Get(p.Position).RemoveOccupant(p.ID)
		tile.AddOccupant(p.ID)
		p.Position = c
		return c
	}
	t.Fatalf("no %s tile on the board", terrain)
	return hex.Cube{}
}

func TestStartGameRequiresReadyPlayers(t *testing.T) {
	g, _ := newTestGame(t, nil)
	require.ErrorIs(t, g.StartGame(), ErrNoPlayers)

	p, err := g.Join("ada")
	require.NoError(t, err)
	require.ErrorIs(t, g.StartGame(), ErrNotReady)

	require.NoError(t, g.ToggleReady(p.ID))
	require.NoError(t, g.StartGame())
	require.Equal(t, LifecycleRunning, g.State())
	require.ErrorIs(t, g.StartGame(), ErrAlreadyStarted)

	_, err = g.Join("late")
	require.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestSnapshotIsACopy(t *testing.T) {
	g, _ := newTestGame(t, nil)
	players := startGame(t, g, "ada", "bo")

	snap := g.TakeSnapshot()
	require.Equal(t, "running", snap.State)
	require.Equal(t, 1, snap.Round)
	require.Equal(t, "round_start", snap.Phase)
	require.Len(t, snap.Players, 2)
	require.Len(t, snap.Tiles, g.board.TileCount())
	require.Equal(t, players[0].ID, snap.CurrentPlayerID)

	// Later mutation must not show up in the captured snapshot.
	require.NoError(t, g.GrantActionPoints(players[0].ID, 5))
	require.Equal(t, 0, snap.Players[0].Stats.AP)

	// Nor may snapshot mutation leak into the game.
	snap.Teams[0].Members = nil
	require.NotEmpty(t, g.TakeSnapshot().Teams[0].Members)
}

func TestEventsNewestFirstAndCapped(t *testing.T) {
	g, _ := newTestGame(t, nil)
	p := startGame(t, g, "ada")[0]

	for i := 0; i < eventCap+20; i++ {
		require.NoError(t, g.PushStatusEffect(p.ID, "noise"))
		g.mu.Lock()
		g.record("test", "filler")
		g.mu.Unlock()
	}
	events := g.Events()
	require.Len(t, events, eventCap)
	require.Equal(t, "filler", events[0].Message)
}

func TestEventSinkReceivesEvents(t *testing.T) {
	g, _ := newTestGame(t, nil)
	var got []Event
	g.SetEventSink(func(ev Event) { got = append(got, ev) })

	startGame(t, g, "ada")
	require.NotEmpty(t, got)
	require.Equal(t, "lobby", got[0].Category)
}
