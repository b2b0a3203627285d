package system

import (
	"time"

	"github.com/badnight/game/internal/config"
	"github.com/badnight/game/internal/core/ecs"
	"github.com/badnight/game/internal/core/event"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/physics"
	"github.com/badnight/game/internal/world"
	"go.uber.org/zap"
)

// CombatSystem 處理本 tick 的碰撞開始事件（Phase 5 Resolve）。
//
// 子彈碰敵人：敵人死亡、子彈消耗，擊殺獎勵計入未入帳休息。
// 玩家碰敵人：玩家扣血，敵人留存。
// 沒有敵人的配對、或含已移除角色的配對一律略過。
type CombatSystem struct {
	scene   *world.Scene
	econ    *economy.Economy
	in      *event.Queue[physics.Contact]
	effects Effects
	bus     *event.Bus
	cfg     config.CombatConfig
	log     *zap.Logger
}

func NewCombatSystem(scene *world.Scene, econ *economy.Economy, in *event.Queue[physics.Contact],
	effects Effects, bus *event.Bus, cfg config.CombatConfig, log *zap.Logger) *CombatSystem {
	return &CombatSystem{scene: scene, econ: econ, in: in, effects: effects, bus: bus, cfg: cfg, log: log}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *CombatSystem) Update(_ time.Duration) {
	s.in.Drain(s.resolve)
}

func (s *CombatSystem) resolve(c physics.Contact) {
	ka, okA := s.scene.Kind(c.A)
	kb, okB := s.scene.Kind(c.B)
	if !okA || !okB {
		return // 已移除
	}

	var enemy, other ecs.EntityID
	var otherKind world.ActorKind
	switch {
	case ka == world.KindEnemy && kb != world.KindEnemy:
		enemy, other, otherKind = c.A, c.B, kb
	case kb == world.KindEnemy && ka != world.KindEnemy:
		enemy, other, otherKind = c.B, c.A, ka
	default:
		return
	}

	switch otherKind {
	case world.KindShot:
		s.kill(enemy, other)
	case world.KindPlayer:
		s.damage(enemy, other)
	}
}

func (s *CombatSystem) kill(enemy, shot ecs.EntityID) {
	body, ok := s.scene.Bodies.Get(enemy)
	if !ok {
		return
	}
	pos := body.Pos
	s.scene.Despawn(enemy)
	s.scene.Despawn(shot)
	if s.effects != nil {
		s.effects.DeathEffect(pos, s.cfg.DeathEffectDuration)
	}
	s.econ.CreditRest(s.cfg.KillReward)
	s.scene.Stats.Kills++

	event.Emit(s.bus, event.EnemyKilled{Enemy: enemy, Position: pos, Reward: s.cfg.KillReward})
	s.log.Debug("enemy killed",
		zap.Stringer("enemy", enemy),
		zap.Stringer("pos", pos),
		zap.Float64("unsafe_rest", s.econ.UnsafeRestAccrued))
}

func (s *CombatSystem) damage(enemy, player ecs.EntityID) {
	st, ok := s.scene.Players.Get(player)
	if !ok {
		return
	}
	st.Health -= s.cfg.ContactDamage
	s.scene.Stats.Contacts++

	event.Emit(s.bus, event.PlayerDamaged{Enemy: enemy, Health: st.Health})
	s.log.Debug("player hit",
		zap.Stringer("enemy", enemy),
		zap.Float64("health", st.Health))
}
