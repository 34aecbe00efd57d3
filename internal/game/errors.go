package game

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors are normal gameplay refusals, returned as values.
// Contract violations (bad coordinates, catalog misses, duplicate
// player numbers) panic instead; see the hex and catalog packages.
var (
	ErrGameFull       = errors.New("game is full")
	ErrAlreadyStarted = errors.New("game already started")
	ErrNotStarted     = errors.New("game not started")
	ErrNotReady       = errors.New("not all players are ready")
	ErrNoPlayers      = errors.New("no players have joined")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownCity    = errors.New("unknown city")
	ErrNotTeamMember  = errors.New("player is not on the owning team")
	ErrWrongPhase     = errors.New("command not valid in current phase")
	ErrNotDismissible = errors.New("current phase overlay cannot be dismissed")

	ErrInsufficientAP        = errors.New("insufficient action points")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrNoTradeRoute          = errors.New("players share neither team nor tile")

	ErrOutOfBounds  = errors.New("coordinate outside the board")
	ErrNotAdjacent  = errors.New("target tile is not adjacent")
	ErrWrongTerrain = errors.New("player is not on matching terrain")
	ErrTileInactive = errors.New("tile is exhausted")
	ErrTileOccupied = errors.New("tile already has a building")
	ErrSlotEmpty    = errors.New("harvest slot is empty")

	ErrBuildingExists = errors.New("building already present in city")
	ErrNoBuilding     = errors.New("building not present in city")
	ErrBuildingBusy   = errors.New("construction or upgrade already in progress")
	ErrMaxLevel       = errors.New("building already at max level")

	ErrUnknownItem = errors.New("item instance not held")
)

// PrereqError reports every unmet requirement of a construction or
// upgrade attempt, not just the first, so the caller can display all
// of them.
type PrereqError struct {
	Missing []string
}

func (e *PrereqError) Error() string {
	return fmt.Sprintf("unmet prerequisites: %s", strings.Join(e.Missing, ", "))
}
