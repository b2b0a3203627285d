package main

import (
	"errors"

	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/game"
	"github.com/badnight/game/internal/geom"
	"go.uber.org/zap"
)

// autopilot plays the session without a human: one purchase per day, then
// sleep; at night it backs away from the closest enemy while staying near
// the arena centre.
type autopilot struct {
	homeRadius float64 // start drifting back past this distance
	log        *zap.Logger
}

func newAutopilot(outOfBounds float64, log *zap.Logger) *autopilot {
	return &autopilot{homeRadius: outOfBounds * 0.5, log: log}
}

// planDay buys the cheapest affordable upgrade and starts the night.
func (a *autopilot) planDay(s *game.Session) error {
	if !s.Settled() {
		return nil
	}
	if u, ok := cheapestAffordable(s.Catalog(), s.Economy().RestBalance); ok {
		err := s.ApplyUpgrade(u.Name)
		switch {
		case errors.Is(err, economy.ErrInsufficientFunds):
			a.log.Debug("upgrade rejected", zap.String("upgrade", u.Name))
		case err != nil:
			return err
		}
	}
	return s.StartSleep()
}

func cheapestAffordable(c *economy.Catalog, balance uint) (economy.Upgrade, bool) {
	var best economy.Upgrade
	found := false
	for _, u := range c.List() {
		if u.Cost > balance {
			continue
		}
		if !found || u.Cost < best.Cost {
			best, found = u, true
		}
	}
	return best, found
}

// steer returns the movement intent for this night tick.
func (a *autopilot) steer(s *game.Session) geom.Vec2 {
	snap := s.Snapshot()
	if !snap.HasPlayer {
		return geom.Zero
	}
	var intent geom.Vec2
	if enemy, ok := s.NearestEnemy(); ok {
		if away, ok := snap.PlayerPos.Sub(enemy).Normalize(); ok {
			intent = away
		}
	}
	if d := snap.PlayerPos.Len(); d > a.homeRadius {
		if home, ok := snap.PlayerPos.Scale(-1).Normalize(); ok {
			intent = intent.Add(home.Scale(2 * d / a.homeRadius))
		}
	}
	return intent.ClampLen(1)
}
