package world

import (
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/geom"
)

// ActorKind is the closed set of night-phase actors.
type ActorKind uint8

const (
	KindPlayer ActorKind = iota + 1
	KindEnemy
	KindSpawner
	KindShot
)

func (k ActorKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindSpawner:
		return "spawner"
	case KindShot:
		return "shot"
	}
	return "unknown"
}

// PlayerState is the night-only state of the single player actor.
// Economy values are never copied here except the derived combat stats.
type PlayerState struct {
	Health   float64
	Stats    economy.CombatStats
	Intent   geom.Vec2 // movement input, length <= 1
	Cooldown float64   // seconds until the weapon may fire again
}

// EnemyState carries no speed of its own; pursuit clamps against the live
// ruleset.
type EnemyState struct {
	BornTick uint64 // clock tick the enemy was spawned on
}

// SpawnerState has no collider; spawners only mark a place enemies come from.
type SpawnerState struct {
	Pos       geom.Vec2
	Rate      float64 // enemies per second, > 0
	Radius    float64 // spawn offset jitter
	LastSpawn float64 // night-relative seconds
	Wave      int
}

type ShotState struct {
	ExpiresAt float64 // night-relative seconds
}

// NightStats counts what happened during the current night.
type NightStats struct {
	Waves    int
	Spawners int
	Spawned  int
	Shots    int
	Kills    int
	Contacts int
}
