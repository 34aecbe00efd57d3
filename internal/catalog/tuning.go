package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed game.yaml
var defaultTuning []byte

// PhaseTuning configures one round phase.
type PhaseTuning struct {
	DurationS   int  `yaml:"duration_s"`
	OverlayS    int  `yaml:"overlay_s"`
	Dismissible bool `yaml:"dismissible"`
}

// Tuning holds the adjustable game parameters. The embedded defaults
// ship with the binary; a yaml file can override them per deployment.
type Tuning struct {
	BoardRadius int `yaml:"board_radius"`
	PlayerCap   int `yaml:"player_cap"`
	TeamCount   int `yaml:"team_count"`

	MaxHP          int `yaml:"max_hp"`
	APRenewalGrant int `yaml:"ap_renewal_grant"`
	MoveAPCost     int `yaml:"move_ap_cost"`
	HarvestAPCost  int `yaml:"harvest_ap_cost"`
	ItemAPCost     int `yaml:"item_ap_cost"`

	PoolSize     int     `yaml:"pool_size"`
	VisibleSlots int     `yaml:"visible_slots"`
	DisasterCap  float64 `yaml:"disaster_cap"`

	Phases map[string]PhaseTuning `yaml:"phases"`
}

// DefaultTuning parses the embedded defaults. Panics if the embedded
// file is malformed — that is a build error, not a runtime condition.
func DefaultTuning() Tuning {
	t, err := parseTuning(defaultTuning)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded game.yaml: %v", err))
	}
	return t
}

// LoadTuning reads a tuning file from disk.
func LoadTuning(path string) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	t, err := parseTuning(raw)
	if err != nil {
		return Tuning{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func parseTuning(raw []byte) (Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, err
	}
	if err := t.check(); err != nil {
		return t, err
	}
	return t, nil
}

func (t Tuning) check() error {
	switch {
	case t.BoardRadius < 2:
		return fmt.Errorf("board_radius %d too small", t.BoardRadius)
	case t.PlayerCap < 1:
		return fmt.Errorf("player_cap %d too small", t.PlayerCap)
	case t.TeamCount < 1:
		return fmt.Errorf("team_count %d too small", t.TeamCount)
	case t.MaxHP < 1:
		return fmt.Errorf("max_hp %d too small", t.MaxHP)
	case t.APRenewalGrant < 0:
		return fmt.Errorf("ap_renewal_grant %d negative", t.APRenewalGrant)
	case t.PoolSize < 1:
		return fmt.Errorf("pool_size %d too small", t.PoolSize)
	case t.VisibleSlots < 1:
		return fmt.Errorf("visible_slots %d too small", t.VisibleSlots)
	case t.DisasterCap < 0 || t.DisasterCap > 1:
		return fmt.Errorf("disaster_cap %v outside [0,1]", t.DisasterCap)
	}
	// The outer ring must seat every player.
	if 6*t.BoardRadius < t.PlayerCap {
		return fmt.Errorf("board_radius %d seats only %d of %d players",
			t.BoardRadius, 6*t.BoardRadius, t.PlayerCap)
	}
	if len(t.Phases) == 0 {
		return fmt.Errorf("no phases configured")
	}
	for name, p := range t.Phases {
		if p.DurationS <= 0 {
			return fmt.Errorf("phase %s has duration %ds", name, p.DurationS)
		}
		if p.OverlayS < 0 {
			return fmt.Errorf("phase %s has negative overlay duration", name)
		}
	}
	return nil
}

// PhaseFor returns the tuning for a named phase. A missing phase is a
// configuration contract violation and panics; the game validates the
// full set at construction.
func (t Tuning) PhaseFor(name string) PhaseTuning {
	p, ok := t.Phases[name]
	if !ok {
		panic(fmt.Sprintf("catalog: phase %q not configured", name))
	}
	return p
}
