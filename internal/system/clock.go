package system

import (
	"math"
	"time"

	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/world"
	"go.uber.org/zap"
)

// ClockSystem 判定夜晚是否結束（Phase 6 Judge）。
//
// 先判死亡：玩家死亡或出界即結束夜晚、中止本 tick，不再檢查到期。
// 否則檢查時鐘到期（每晚只觸發一次），將 floor(elapsed) 計入未入帳休息並結束夜晚。
type ClockSystem struct {
	scene *world.Scene
	clock *world.NightClock
	econ  *economy.Economy
	ender NightEnder
	halt  Halter
	oob   float64
	log   *zap.Logger
}

func NewClockSystem(scene *world.Scene, clock *world.NightClock, econ *economy.Economy,
	ender NightEnder, halt Halter, outOfBounds float64, log *zap.Logger) *ClockSystem {
	return &ClockSystem{scene: scene, clock: clock, econ: econ, ender: ender, halt: halt, oob: outOfBounds, log: log}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseJudge }

func (s *ClockSystem) Update(_ time.Duration) {
	if s.econ.Died || s.clock.Expired() {
		return
	}

	if _, st, body, ok := s.scene.Player(); ok {
		reason := ""
		switch {
		case st.Health <= 0:
			reason = ReasonKilled
		case body.Pos.Len() > s.oob:
			reason = ReasonOutOfBounds
		}
		if reason != "" {
			s.econ.MarkDied()
			s.log.Info("player died",
				zap.String("reason", reason),
				zap.Float64("elapsed", s.clock.Elapsed()),
				zap.Stringer("pos", body.Pos))
			s.ender.EndNight(reason)
			if s.halt != nil {
				s.halt.Halt()
			}
			return
		}
	}

	elapsed, fired := s.clock.ConsumeExpiry(s.econ.SleepDuration)
	if !fired {
		return
	}
	s.econ.CreditRest(math.Floor(elapsed))
	s.ender.EndNight(ReasonSlept)
}
