package system

import (
	"time"

	"github.com/badnight/game/internal/core/ecs"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/physics"
	"github.com/badnight/game/internal/world"
)

// PursuitSystem 讓敵人追向玩家：沿方向加速後限制在規則速度內（Phase 3 Steer）。
// 本 tick 剛生成的敵人已帶瞄準速度，不處理。沒有玩家時敵人維持原速滑行。
type PursuitSystem struct {
	scene *world.Scene
	clock *world.NightClock
	rules *data.RulesetHandle
	gain  float64
}

func NewPursuitSystem(scene *world.Scene, clock *world.NightClock, rules *data.RulesetHandle, gain float64) *PursuitSystem {
	return &PursuitSystem{scene: scene, clock: clock, rules: rules, gain: gain}
}

func (s *PursuitSystem) Phase() coresys.Phase { return coresys.PhaseSteer }

func (s *PursuitSystem) Update(dt time.Duration) {
	rules, ok := s.rules.Get()
	if !ok {
		return
	}
	_, _, player, ok := s.scene.Player()
	if !ok {
		return
	}
	target := player.Pos
	step := dt.Seconds() * s.gain
	tick := s.clock.Ticks()

	ecs.Each2(s.scene.Enemies, s.scene.Bodies, func(_ ecs.EntityID, en *world.EnemyState, b *physics.Body) {
		if en.BornTick == tick {
			return
		}
		dir, ok := target.Sub(b.Pos).Normalize()
		if !ok {
			return
		}
		b.Vel = b.Vel.Add(dir.Scale(step)).ClampLen(rules.BaseSpeed)
	})
}
