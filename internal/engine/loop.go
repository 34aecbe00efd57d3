// Package engine drives the game clock. The loop only feeds wall-clock
// time into the game's Tick; all phase deadlines live in the game
// itself, so a paused or slow loop simply catches up on resume.
package engine

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultInterval is the base tick interval. Phase durations are
// seconds, so a quarter second keeps deadline latency invisible.
const DefaultInterval = 250 * time.Millisecond

// Ticker is the clock-driven side of the game.
type Ticker interface {
	Tick(now time.Time)
}

// Engine polls the game on a fixed interval. Speed scales the polling
// rate: 1.0 = the base interval, 0 = paused (no ticks are delivered,
// so due phase boundaries wait until the loop resumes).
type Engine struct {
	game Ticker

	mu       sync.Mutex
	speed    float64
	interval time.Duration
	running  bool
	stop     chan struct{}
}

// New creates an engine with default settings.
func New(game Ticker) *Engine {
	return &Engine{
		game:     game,
		speed:    1.0,
		interval: DefaultInterval,
	}
}

// Run starts the loop. Blocks until Stop is called.
func (e *Engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stop = make(chan struct{})
	stop := e.stop
	e.mu.Unlock()

	slog.Info("engine started", "interval", e.interval, "speed", e.Speed())

	for {
		speed := e.Speed()
		if speed <= 0 {
			select {
			case <-stop:
				slog.Info("engine stopped")
				return
			case <-time.After(100 * time.Millisecond):
			}
			continue
		}

		start := time.Now()
		e.Step(start)

		target := time.Duration(float64(e.interval) / speed)
		elapsed := time.Since(start)
		var wait time.Duration
		if elapsed < target {
			wait = target - elapsed
		}
		select {
		case <-stop:
			slog.Info("engine stopped")
			return
		case <-time.After(wait):
		}
	}
}

// Stop halts the loop. Safe to call more than once.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	close(e.stop)
}

// Step delivers one tick at the given instant.
func (e *Engine) Step(now time.Time) {
	e.game.Tick(now)
}

// Speed returns the current speed multiplier.
func (e *Engine) Speed() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.speed
}

// SetSpeed changes the speed multiplier. Zero pauses the loop.
func (e *Engine) SetSpeed(v float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.speed = v
}

// Running reports whether the loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}
