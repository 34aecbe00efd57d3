package catalog

import (
	"fmt"

	"github.com/talgya/hexfront/internal/world"
)

// Validate checks the static tables for internal consistency and
// panics on the first violation. Malformed catalog data is a
// programming error, not a runtime condition; the engine calls this
// once during construction.
func Validate() {
	for b, spec := range Buildings {
		if spec.ID != b {
			panic(fmt.Sprintf("catalog: building %s keyed under %s", spec.ID, b))
		}
		if spec.MaxLevel < 1 || len(spec.Levels) != spec.MaxLevel {
			panic(fmt.Sprintf("catalog: building %s has %d level specs for max level %d",
				b, len(spec.Levels), spec.MaxLevel))
		}
		for i, lvl := range spec.Levels {
			if lvl.Level != i+1 {
				panic(fmt.Sprintf("catalog: building %s level %d stored at index %d", b, lvl.Level, i))
			}
			if lvl.APCost < 0 || lvl.BuildMinutes <= 0 {
				panic(fmt.Sprintf("catalog: building %s level %d has invalid cost/time", b, lvl.Level))
			}
			for res, n := range lvl.Cost {
				mustKnowResource(res)
				if n <= 0 {
					panic(fmt.Sprintf("catalog: building %s level %d costs %d %s", b, lvl.Level, n, res))
				}
			}
			for _, req := range lvl.Requires {
				dep, ok := Buildings[req.Building]
				if !ok {
					panic(fmt.Sprintf("catalog: building %s requires unknown building %s", b, req.Building))
				}
				if req.Level < 1 || req.Level > dep.MaxLevel {
					panic(fmt.Sprintf("catalog: building %s requires %s level %d beyond max %d",
						b, req.Building, req.Level, dep.MaxLevel))
				}
			}
			for _, ex := range lvl.Excludes {
				if _, ok := Buildings[ex]; !ok {
					panic(fmt.Sprintf("catalog: building %s excludes unknown building %s", b, ex))
				}
			}
		}
	}

	for id, spec := range Items {
		if spec.ID != id {
			panic(fmt.Sprintf("catalog: item %s keyed under %s", spec.ID, id))
		}
		if spec.MinUses < 1 || spec.MaxUses < spec.MinUses {
			panic(fmt.Sprintf("catalog: item %s has uses range [%d,%d]", id, spec.MinUses, spec.MaxUses))
		}
		if len(spec.Recipe) == 0 {
			panic(fmt.Sprintf("catalog: item %s has no recipe", id))
		}
		for res, n := range spec.Recipe {
			mustKnowResource(res)
			if n <= 0 {
				panic(fmt.Sprintf("catalog: item %s recipe needs %d %s", id, n, res))
			}
		}
	}

	for _, t := range world.Terrains() {
		spec, ok := Terrains[t]
		if !ok {
			panic(fmt.Sprintf("catalog: terrain %s has no spec", t))
		}
		total := 0
		for res, pct := range spec.Distribution {
			mustKnowResource(res)
			if pct <= 0 {
				panic(fmt.Sprintf("catalog: terrain %s distributes %d%% of %s", t, pct, res))
			}
			total += pct
		}
		if total == 0 || total > 100 {
			panic(fmt.Sprintf("catalog: terrain %s distribution sums to %d%%", t, total))
		}
		if spec.PeriodicDamage < 0 {
			panic(fmt.Sprintf("catalog: terrain %s has negative periodic damage", t))
		}
		if spec.PeriodicDamage > 0 && spec.HazardName == "" {
			panic(fmt.Sprintf("catalog: terrain %s damages without a hazard name", t))
		}
		if spec.ProtectingItem != nil {
			if _, ok := Items[*spec.ProtectingItem]; !ok {
				panic(fmt.Sprintf("catalog: terrain %s protected by unknown item", t))
			}
		}
		if spec.ProtectingResource != nil {
			mustKnowResource(*spec.ProtectingResource)
		}
		for _, d := range spec.Disasters {
			if d.Name == "" || d.Damage <= 0 {
				panic(fmt.Sprintf("catalog: terrain %s has malformed disaster %+v", t, d))
			}
		}
	}
}

func mustKnowResource(r Resource) {
	if _, ok := resourceNames[r]; !ok {
		panic(fmt.Sprintf("catalog: unknown resource %d", uint8(r)))
	}
}
