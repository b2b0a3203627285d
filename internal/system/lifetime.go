package system

import (
	"time"

	"github.com/badnight/game/internal/core/ecs"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/world"
)

// LifetimeSystem 將壽命已盡的子彈排入銷毀佇列（Phase 7 Cleanup）。
// 需在 CleanupSystem 之前註冊，才能在同一次 flush 中移除。
type LifetimeSystem struct {
	scene *world.Scene
	clock *world.NightClock
}

func NewLifetimeSystem(scene *world.Scene, clock *world.NightClock) *LifetimeSystem {
	return &LifetimeSystem{scene: scene, clock: clock}
}

func (s *LifetimeSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *LifetimeSystem) Update(_ time.Duration) {
	now := s.clock.Elapsed()
	s.scene.Shots.Each(func(id ecs.EntityID, sh *world.ShotState) {
		if sh.ExpiresAt <= now {
			s.scene.QueueDespawn(id)
		}
	})
}
