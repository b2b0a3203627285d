package event

import (
	"github.com/badnight/game/internal/core/ecs"
	"github.com/badnight/game/internal/geom"
)

// Notifications delivered through the Bus one tick after they happen.

type PhaseChanged struct {
	From   string
	To     string
	Day    uint
	Reason string
}

type WaveActivated struct {
	Index          int
	ActivationTime float64
	Spawners       int
}

type EnemyKilled struct {
	Enemy    ecs.EntityID
	Position geom.Vec2
	Reward   float64
}

type PlayerDamaged struct {
	Enemy  ecs.EntityID
	Health float64
}

type UpgradePurchased struct {
	Name        string
	Cost        uint
	BalanceLeft uint
}

// NightEnded summarizes a finished night. Emitted on Night -> Day.
type NightEnded struct {
	Day        uint
	Elapsed    float64
	Died       bool
	Kills      int
	Contacts   int
	UnsafeRest float64
}

// DaySettled is emitted after the day-start settlement ran.
type DaySettled struct {
	Day         uint
	Banked      uint
	RestBalance uint
	Outcome     string
}
