package main

import (
	"time"

	"github.com/badnight/game/internal/geom"
	"go.uber.org/zap"
)

// logEffects stands in for the renderer: death effects are only logged.
type logEffects struct {
	log   *zap.Logger
	count int
}

func (e *logEffects) DeathEffect(pos geom.Vec2, d time.Duration) {
	e.count++
	e.log.Debug("death effect",
		zap.Stringer("pos", pos),
		zap.Duration("duration", d))
}
