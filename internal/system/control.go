package system

import (
	"time"

	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/world"
)

// ControlSystem 將玩家移動意圖轉為速度（Phase 3 Steer）。
// 加速後每 tick 乘上阻尼，再限制在衍生速度內。
type ControlSystem struct {
	scene   *world.Scene
	accel   float64
	damping float64 // 每 tick 的速度倍率
}

func NewControlSystem(scene *world.Scene, accel, damping float64) *ControlSystem {
	return &ControlSystem{scene: scene, accel: accel, damping: damping}
}

func (s *ControlSystem) Phase() coresys.Phase { return coresys.PhaseSteer }

func (s *ControlSystem) Update(dt time.Duration) {
	_, st, body, ok := s.scene.Player()
	if !ok {
		return
	}
	intent := st.Intent.ClampLen(1)
	v := body.Vel.Add(intent.Scale(s.accel * dt.Seconds()))
	v = v.Scale(s.damping)
	body.Vel = v.ClampLen(st.Stats.Speed)
}
