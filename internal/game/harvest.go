package game

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/talgya/hexfront/internal/catalog"
	"github.com/talgya/hexfront/internal/entropy"
	"github.com/talgya/hexfront/internal/world"
)

// itemPoolCopies is how many instances of each template seed the
// shared item bag.
const itemPoolCopies = 3

// resourcePool is one terrain's bag of harvestable resources plus the
// visible-slot window on top of it. A nil slot is empty; an exhausted
// bag yields nothing further, which is a normal empty result.
type resourcePool struct {
	slots []*catalog.Resource
	bag   []catalog.Resource
}

type itemPool struct {
	slots []*catalog.ItemID
	bag   []catalog.ItemID
}

// buildPools populates every terrain's resource bag in proportion to
// the catalog distribution (floor(percent/100 * pool size) per kind),
// shuffles with the injected source, and deals the visible slots.
// The shared item bag is dealt the same way. Callers hold g.mu.
func (g *Game) buildPools() {
	g.pools = make(map[world.Terrain]*resourcePool, world.TerrainCount)
	for _, terrain := range world.Terrains() {
		spec := catalog.TerrainSpecFor(terrain)
		var bag []catalog.Resource
		// Iterate kinds in enum order so the pre-shuffle bag is
		// deterministic for a given seed.
		for _, res := range catalog.Resources() {
			pct, ok := spec.Distribution[res]
			if !ok {
				continue
			}
			count := pct * g.cfg.PoolSize / 100
			for i := 0; i < count; i++ {
				bag = append(bag, res)
			}
		}
		entropy.Shuffle(g.rng, bag)

		p := &resourcePool{slots: make([]*catalog.Resource, g.cfg.VisibleSlots), bag: bag}
		for i := range p.slots {
			p.refill(i)
		}
		g.pools[terrain] = p
	}

	var items []catalog.ItemID
	for _, id := range catalog.ItemIDs() {
		for i := 0; i < itemPoolCopies; i++ {
			items = append(items, id)
		}
	}
	entropy.Shuffle(g.rng, items)
	g.itemPool = &itemPool{slots: make([]*catalog.ItemID, g.cfg.VisibleSlots), bag: items}
	for i := range g.itemPool.slots {
		g.itemPool.refill(i)
	}
}

func (p *resourcePool) refill(slot int) {
	if len(p.bag) == 0 {
		p.slots[slot] = nil
		return
	}
	res := p.bag[0]
	p.bag = p.bag[1:]
	p.slots[slot] = &res
}

func (p *itemPool) refill(slot int) {
	if len(p.bag) == 0 {
		p.slots[slot] = nil
		return
	}
	id := p.bag[0]
	p.bag = p.bag[1:]
	p.slots[slot] = &id
}

// HarvestResource pops one resource from the terrain's visible-slot
// window. The actor must stand on an active tile of that terrain and
// afford the harvest AP cost; afterwards the tile deactivates unless
// the terrain is always-active (lake).
func (g *Game) HarvestResource(playerID string, terrain world.Terrain, slot int) (catalog.Resource, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireInteraction(); err != nil {
		return 0, err
	}
	p, ok := g.players[playerID]
	if !ok {
		return 0, ErrUnknownPlayer
	}
	tile := g.board.Get(p.Position)
	if tile.Terrain != terrain {
		return 0, ErrWrongTerrain
	}
	if !tile.Active {
		return 0, ErrTileInactive
	}
	st := g.stats[playerID]
	if st.AP < g.cfg.HarvestAPCost {
		return 0, ErrInsufficientAP
	}
	pool := g.pools[terrain]
	if slot < 0 || slot >= len(pool.slots) || pool.slots[slot] == nil {
		return 0, ErrSlotEmpty
	}

	st.AP -= g.cfg.HarvestAPCost
	res := *pool.slots[slot]
	pool.refill(slot)
	st.Resources[res]++

	if !catalog.TerrainSpecFor(terrain).AlwaysActive {
		tile.Active = false
	}
	g.record("harvest", fmt.Sprintf("%s harvested %s from the %s", p.Name, res, terrain))
	return res, nil
}

// HarvestItem pops one item from the shared item bag, independent of
// terrain, at the higher item AP cost. The instance's uses are drawn
// uniformly from the template's range at this moment.
func (g *Game) HarvestItem(playerID string, slot int) (*ItemInstance, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireInteraction(); err != nil {
		return nil, err
	}
	p, ok := g.players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	st := g.stats[playerID]
	if st.AP < g.cfg.ItemAPCost {
		return nil, ErrInsufficientAP
	}
	if slot < 0 || slot >= len(g.itemPool.slots) || g.itemPool.slots[slot] == nil {
		return nil, ErrSlotEmpty
	}

	st.AP -= g.cfg.ItemAPCost
	id := *g.itemPool.slots[slot]
	g.itemPool.refill(slot)

	item := g.rollItem(id)
	st.Items = append(st.Items, item)
	g.record("harvest", fmt.Sprintf("%s found a %s (%d uses)", p.Name, id, item.UsesRemaining))

	dup := *item
	return &dup, nil
}

// CraftItem consumes exactly the recipe's resources and produces one
// new instance with freshly randomized uses. Consumption is atomic:
// a failed recipe check changes nothing.
func (g *Game) CraftItem(playerID string, id catalog.ItemID) (*ItemInstance, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.requireInteraction(); err != nil {
		return nil, err
	}
	p, ok := g.players[playerID]
	if !ok {
		return nil, ErrUnknownPlayer
	}
	st := g.stats[playerID]

	spec := catalog.ItemSpecFor(id)
	for res, n := range spec.Recipe {
		if st.Resources[res] < n {
			return nil, fmt.Errorf("%w: need %d %s", ErrInsufficientResources, n, res)
		}
	}
	for res, n := range spec.Recipe {
		st.Resources[res] -= n
	}

	item := g.rollItem(id)
	st.Items = append(st.Items, item)
	g.record("craft", fmt.Sprintf("%s crafted a %s (%d uses)", p.Name, id, item.UsesRemaining))

	dup := *item
	return &dup, nil
}

// rollItem creates an instance with uses drawn uniformly from the
// template's [min, max] range. Callers hold g.mu.
func (g *Game) rollItem(id catalog.ItemID) *ItemInstance {
	spec := catalog.ItemSpecFor(id)
	uses := spec.MinUses
	if span := spec.MaxUses - spec.MinUses; span > 0 {
		uses += g.rng.IntN(span + 1)
	}
	return &ItemInstance{
		ID:            uuid.NewString(),
		Template:      id,
		UsesRemaining: uses,
	}
}
