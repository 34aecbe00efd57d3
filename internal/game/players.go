package game

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/hex"
)

// Player is a participant. Numbers are unique in [1, cap] and map
// one-to-one onto the pre-assigned starting seats.
type Player struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Number    int      `json:"number"`
	TeamID    int      `json:"team_id"`
	Color     string   `json:"color"`
	Position  hex.Cube `json:"position"`
	Ready     bool     `json:"ready"`
	Connected bool     `json:"connected"`
}

// Stats is the economy ledger entry for one active player.
type Stats struct {
	HP            int                      `json:"hp"`
	AP            int                      `json:"ap"`
	Resources     map[catalog.Resource]int `json:"resources"`
	Items         []*ItemInstance          `json:"items"`
	StatusEffects []string                 `json:"status_effects"`
}

// ItemInstance is one held item. Uses are drawn from the template's
// range at creation and the instance is discarded when they reach zero.
type ItemInstance struct {
	ID            string         `json:"id"`
	Template      catalog.ItemID `json:"template"`
	UsesRemaining int            `json:"uses_remaining"`
}

// Join adds a player to the lobby. Rejected once the cap is reached.
// The new player gets the lowest unused number, the team with the
// fewest members (ties broken by team order), and that number's seat.
func (g *Game) Join(name string) (*Player, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LifecycleLobby {
		return nil, ErrAlreadyStarted
	}
	if len(g.players) >= g.cfg.PlayerCap {
		return nil, ErrGameFull
	}

	number := g.lowestUnusedNumber()
	team := g.smallestTeam()
	seat := g.seats[number-1]

	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		Number:    number,
		TeamID:    team.ID,
		Color:     playerColors[(number-1)%len(playerColors)],
		Position:  seat,
		Connected: true,
	}
	g.players[p.ID] = p
	g.stats[p.ID] = &Stats{
		HP:        g.cfg.MaxHP,
		Resources: make(map[catalog.Resource]int),
	}
	team.Members = append(team.Members, p.ID)
	g.board.Get(seat).AddOccupant(p.ID)

	slog.Info("player joined", "name", name, "number", number, "team", team.Name)
	g.record("lobby", fmt.Sprintf("%s joined as player %d (team %s)", name, number, team.Name))

	dup := *p
	return &dup, nil
}

// Leave removes a player entirely; allowed in any state.
func (g *Game) Leave(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	g.removePlayer(p, "left the game")
	return nil
}

// ToggleReady flips the player's lobby ready flag.
func (g *Game) ToggleReady(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	p, ok := g.players[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	p.Ready = !p.Ready
	return nil
}

// MovePlayer steps the player to an adjacent tile during interaction,
// spending the move AP cost atomically.
func (g *Game) MovePlayer(playerID string, target hex.Cube) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireInteraction(); err != nil {
		return err
	}
	p, ok := g.players[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if g.board.Get(target) == nil {
		return ErrOutOfBounds
	}
	if !hex.Adjacent(p.Position, target) {
		return ErrNotAdjacent
	}
	if err := g.spendAP(p.ID, g.cfg.MoveAPCost); err != nil {
		return err
	}

	g.board.Get(p.Position).RemoveOccupant(p.ID)
	g.board.Get(target).AddOccupant(p.ID)
	p.Position = target
	return nil
}

// SelectTile records the player's current selection for renderers.
func (g *Game) SelectTile(playerID string, coords hex.Cube) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if g.board.Get(coords) == nil {
		return ErrOutOfBounds
	}
	g.selected[playerID] = coords
	return nil
}

// GiveResources transfers resources between players during the
// bartering phase. The players must share a team or a tile.
func (g *Game) GiveResources(fromID, toID string, res catalog.Resource, amount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != LifecycleRunning {
		return ErrNotStarted
	}
	if g.phase != PhaseBartering {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.phase)
	}
	from, ok := g.players[fromID]
	if !ok {
		return ErrUnknownPlayer
	}
	to, ok := g.players[toID]
	if !ok {
		return ErrUnknownPlayer
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if from.TeamID != to.TeamID && from.Position != to.Position {
		return ErrNoTradeRoute
	}
	if g.stats[fromID].Resources[res] < amount {
		return ErrInsufficientResources
	}

	g.stats[fromID].Resources[res] -= amount
	g.stats[toID].Resources[res] += amount
	g.record("barter", fmt.Sprintf("%s gave %d %s to %s", from.Name, amount, res, to.Name))
	return nil
}

// GrantActionPoints adds AP to a player's ledger.
func (g *Game) GrantActionPoints(playerID string, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if n < 0 {
		return ErrInvalidAmount
	}
	g.stats[playerID].AP += n
	return nil
}

// SpendActionPoints deducts AP atomically: either the full amount is
// available and deducted, or nothing changes.
func (g *Game) SpendActionPoints(playerID string, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	return g.spendAP(playerID, n)
}

// AddResource credits a player's ledger.
func (g *Game) AddResource(playerID string, res catalog.Resource, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if n < 0 {
		return ErrInvalidAmount
	}
	g.stats[playerID].Resources[res] += n
	return nil
}

// ConsumeResource debits a player's ledger atomically.
func (g *Game) ConsumeResource(playerID string, res catalog.Resource, n int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.stats[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	if n < 0 {
		return ErrInvalidAmount
	}
	if st.Resources[res] < n {
		return ErrInsufficientResources
	}
	st.Resources[res] -= n
	return nil
}

// AddItem grants a freshly rolled instance of the template.
func (g *Game) AddItem(playerID string, id catalog.ItemID) (*ItemInstance, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.stats[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	item := g.rollItem(id)
	st.Items = append(st.Items, item)
	dup := *item
	return &dup, nil
}

// ApplyDamage lowers a player's HP. Removal waits for the elimination
// phase; a player at 0 HP stays on the board until then.
func (g *Game) ApplyDamage(playerID string, amount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.players[playerID]; !ok {
		return ErrUnknownPlayer
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	g.damage(playerID, amount)
	return nil
}

// PushStatusEffect appends to the player's status log; cleared at the
// next AP renewal.
func (g *Game) PushStatusEffect(playerID, effect string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.stats[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	st.StatusEffects = append(st.StatusEffects, effect)
	return nil
}

// ConsumeItemUse spends one use of a held item instance, discarding
// the instance when its uses reach zero.
func (g *Game) ConsumeItemUse(playerID, instanceID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.stats[playerID]
	if !ok {
		return ErrUnknownPlayer
	}
	for i, item := range st.Items {
		if item.ID != instanceID {
			continue
		}
		item.UsesRemaining--
		if item.UsesRemaining <= 0 {
			st.Items = append(st.Items[:i], st.Items[i+1:]...)
		}
		return nil
	}
	return ErrUnknownItem
}

// PlayerStats returns a copy of one player's ledger entry.
func (g *Game) PlayerStats(playerID string) (Stats, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	st, ok := g.stats[playerID]
	if !ok {
		return Stats{}, ErrUnknownPlayer
	}
	return copyStats(st), nil
}

// spendAP is the unlocked atomic deduction. Callers hold g.mu.
func (g *Game) spendAP(playerID string, n int) error {
	st := g.stats[playerID]
	if st.AP < n {
		return ErrInsufficientAP
	}
	st.AP -= n
	return nil
}

// removePlayer takes a player off the board, out of their team's
// roster, and out of the ledger. If they held the turn context it
// passes to the next remaining player. Callers hold g.mu.
func (g *Game) removePlayer(p *Player, reason string) {
	g.board.Get(p.Position).RemoveOccupant(p.ID)

	team := g.teams[p.TeamID]
	for i, id := range team.Members {
		if id == p.ID {
			team.Members = append(team.Members[:i], team.Members[i+1:]...)
			break
		}
	}

	delete(g.players, p.ID)
	delete(g.stats, p.ID)
	delete(g.selected, p.ID)
	delete(g.dismissed, p.ID)

	if g.currentID == p.ID {
		g.currentID = g.nextPlayerAfter(p.Number)
	}

	slog.Info("player removed", "name", p.Name, "number", p.Number, "reason", reason)
	g.record("roster", fmt.Sprintf("%s %s", p.Name, reason))
}

// nextPlayerAfter finds the next remaining player by seat number,
// wrapping around; "" if nobody remains.
func (g *Game) nextPlayerAfter(number int) string {
	bestWrap, bestAfter := "", ""
	wrapNum, afterNum := 0, 0
	for id, p := range g.players {
		if p.Number > number && (bestAfter == "" || p.Number < afterNum) {
			bestAfter, afterNum = id, p.Number
		}
		if bestWrap == "" || p.Number < wrapNum {
			bestWrap, wrapNum = id, p.Number
		}
	}
	if bestAfter != "" {
		return bestAfter
	}
	return bestWrap
}

func (g *Game) lowestUnusedNumber() int {
	used := make(map[int]bool, len(g.players))
	for _, p := range g.players {
		if used[p.Number] {
			panic(fmt.Sprintf("game: duplicate player number %d", p.Number))
		}
		used[p.Number] = true
	}
	for n := 1; n <= g.cfg.PlayerCap; n++ {
		if !used[n] {
			return n
		}
	}
	// Unreachable: Join checks the cap before assigning.
	panic("game: no player number available below cap")
}

// smallestTeam returns the team with the fewest members, ties broken
// by creation order.
func (g *Game) smallestTeam() *Team {
	best := g.teams[0]
	for _, t := range g.teams[1:] {
		if len(t.Members) < len(best.Members) {
			best = t
		}
	}
	return best
}

// hasUsableItem reports whether the ledger holds an instance of the
// template with at least one use left.
func hasUsableItem(st *Stats, id catalog.ItemID) bool {
	for _, item := range st.Items {
		if item.Template == id && item.UsesRemaining > 0 {
			return true
		}
	}
	return false
}

func copyStats(st *Stats) Stats {
	out := Stats{
		HP:        st.HP,
		AP:        st.AP,
		Resources: make(map[catalog.Resource]int, len(st.Resources)),
	}
	for r, n := range st.Resources {
		out.Resources[r] = n
	}
	for _, item := range st.Items {
		dup := *item
		out.Items = append(out.Items, &dup)
	}
	out.StatusEffects = append(out.StatusEffects, st.StatusEffects...)
	return out
}
