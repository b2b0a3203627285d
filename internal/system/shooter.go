package system

import (
	"math"
	"time"

	"github.com/badnight/game/internal/core/ecs"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/geom"
	"github.com/badnight/game/internal/physics"
	"github.com/badnight/game/internal/world"
)

// ShooterSystem 朝射程內最近的敵人自動射擊（Phase 3 Steer）。
// 子彈壽命為 range/speed 秒，飛行距離不會超過射程。
type ShooterSystem struct {
	scene      *world.Scene
	clock      *world.NightClock
	shotSpeed  float64
	shotRadius float64
}

func NewShooterSystem(scene *world.Scene, clock *world.NightClock, shotSpeed, shotRadius float64) *ShooterSystem {
	return &ShooterSystem{scene: scene, clock: clock, shotSpeed: shotSpeed, shotRadius: shotRadius}
}

func (s *ShooterSystem) Phase() coresys.Phase { return coresys.PhaseSteer }

func (s *ShooterSystem) Update(dt time.Duration) {
	_, st, body, ok := s.scene.Player()
	if !ok || st.Stats.FireRate <= 0 {
		return
	}
	st.Cooldown -= dt.Seconds()
	if st.Cooldown > 0 {
		return
	}

	target, ok := s.nearestEnemy(body, st.Stats.Range)
	if !ok {
		st.Cooldown = 0 // 保持待發，不累積射擊
		return
	}
	dir, ok := target.Sub(body.Pos).Normalize()
	if !ok {
		return
	}
	lifetime := st.Stats.Range / s.shotSpeed
	s.scene.SpawnShot(body.Pos, dir.Scale(s.shotSpeed), s.shotRadius, s.clock.Elapsed()+lifetime)
	st.Cooldown = 1 / st.Stats.FireRate
}

func (s *ShooterSystem) nearestEnemy(from *physics.Body, rng float64) (pos geom.Vec2, found bool) {
	best := math.Inf(1)
	limit := rng * rng
	ecs.Each2(s.scene.Enemies, s.scene.Bodies, func(_ ecs.EntityID, _ *world.EnemyState, b *physics.Body) {
		d := b.Pos.Sub(from.Pos).LenSq()
		if d > limit || d >= best {
			return
		}
		best = d
		pos = b.Pos
		found = true
	})
	return pos, found
}
