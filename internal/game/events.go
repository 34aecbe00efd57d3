package game

import "time"

// eventCap bounds the in-memory activity log.
const eventCap = 50

// Event is a notable occurrence, kept in a capped ring and optionally
// forwarded to an external sink (the match archive).
type Event struct {
	At       time.Time `json:"at"`
	Round    int       `json:"round"`
	Phase    string    `json:"phase"`
	Category string    `json:"category"` // "lobby", "game", "economy", "hazard", "disaster", "roster", "build", "harvest", "craft", "barter"
	Message  string    `json:"message"`
}

// SetEventSink installs a hook invoked synchronously for every
// recorded event. Install before StartGame; the sink runs under the
// game lock and must not call back into the game.
func (g *Game) SetEventSink(sink func(Event)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.publish = sink
}

// record appends to the ring and forwards to the sink. Callers hold g.mu.
func (g *Game) record(category, message string) {
	ev := Event{
		At:       g.now(),
		Round:    g.round,
		Phase:    g.phase.String(),
		Category: category,
		Message:  message,
	}
	g.events = append(g.events, ev)
	if len(g.events) > eventCap {
		g.events = g.events[len(g.events)-eventCap:]
	}
	if g.publish != nil {
		g.publish(ev)
	}
}

// Events returns the capped activity log, most recent first.
func (g *Game) Events() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return eventsNewestFirst(g.events)
}

func eventsNewestFirst(events []Event) []Event {
	out := make([]Event, len(events))
	for i, ev := range events {
		out[len(events)-1-i] = ev
	}
	return out
}
