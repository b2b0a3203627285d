package system

import (
	"time"

	"github.com/badnight/game/internal/geom"
)

// NightEnder receives the request to leave the night. Only the first request
// of a tick counts; the session decides what to do with later ones.
type NightEnder interface {
	EndNight(reason string)
}

// Halter stops the rest of the current tick.
type Halter interface {
	Halt()
}

// Effects plays presentation-only effects. The simulation never reads back
// from it.
type Effects interface {
	DeathEffect(pos geom.Vec2, d time.Duration)
}

// End-of-night reasons.
const (
	ReasonSlept       = "slept"
	ReasonKilled      = "killed"
	ReasonOutOfBounds = "out_of_bounds"
)
