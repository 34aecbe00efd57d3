package game

import "fmt"

// Phase is one segment of the fixed round cycle. The cycle order is
// total: advancing seven times from round_start lands on round_start
// again with the round number incremented.
type Phase uint8

const (
	PhaseRoundStart Phase = iota
	PhaseAPRenewal
	PhaseInteraction
	PhaseBartering
	PhaseTerrainEffects
	PhaseDisasterCheck
	PhaseElimination
)

// PhaseCount is the number of phases in one round.
const PhaseCount = 7

var phaseNames = map[Phase]string{
	PhaseRoundStart:     "round_start",
	PhaseAPRenewal:      "ap_renewal",
	PhaseInteraction:    "interaction",
	PhaseBartering:      "bartering",
	PhaseTerrainEffects: "terrain_effects",
	PhaseDisasterCheck:  "disaster_check",
	PhaseElimination:    "elimination",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	panic(fmt.Sprintf("game: unknown phase %d", uint8(p)))
}

// Next returns the cycle successor; elimination wraps to round_start.
func (p Phase) Next() Phase {
	return Phase((uint8(p) + 1) % PhaseCount)
}

// Phases lists the cycle in order.
func Phases() []Phase {
	return []Phase{
		PhaseRoundStart, PhaseAPRenewal, PhaseInteraction, PhaseBartering,
		PhaseTerrainEffects, PhaseDisasterCheck, PhaseElimination,
	}
}
