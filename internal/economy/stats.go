package economy

import "math"

// CombatStats are the night-time player stats derived from the tunables.
type CombatStats struct {
	Radius   float64 // collision radius
	Speed    float64 // max movement speed, units/s
	FireRate float64 // shots per second
	Range    float64 // detection and shot travel distance
}

// StatsInput is what the derivation may read.
type StatsInput struct {
	Comfort   float64
	Warmth    float64
	Hydration float64
}

// StatsDeriver converts tunables into combat stats.
type StatsDeriver interface {
	DeriveCombatStats(in StatsInput) CombatStats
}

// Formula is the built-in derivation, used when no script overrides it.
type Formula struct{}

func (Formula) DeriveCombatStats(in StatsInput) CombatStats {
	return CombatStats{
		Radius:   math.Max(6, 14-in.Warmth),
		Speed:    180 + 30*in.Hydration,
		FireRate: 1 + 0.5*in.Warmth,
		Range:    150 + 40*in.Comfort,
	}
}

// DeriveCombatStats is recomputed at the start of every night. A nil deriver
// uses Formula.
func (e *Economy) DeriveCombatStats(d StatsDeriver) CombatStats {
	if d == nil {
		d = Formula{}
	}
	return d.DeriveCombatStats(StatsInput{
		Comfort:   e.Comfort,
		Warmth:    e.Warmth,
		Hydration: e.Hydration,
	})
}
