package system

import (
	"math/rand"
	"time"

	"github.com/badnight/game/internal/core/ecs"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/geom"
	"github.com/badnight/game/internal/world"
)

// SpawnSystem 讓每個生成點每 1/rate 秒產生一隻朝玩家前進的敵人（Phase 2 Spawn）。
// 沒有玩家或規則未載入時不生成，也不欠帳：只有真的生成時才更新 lastSpawn。
type SpawnSystem struct {
	scene       *world.Scene
	clock       *world.NightClock
	rules       *data.RulesetHandle
	rng         *rand.Rand
	enemyRadius float64
}

func NewSpawnSystem(scene *world.Scene, clock *world.NightClock, rules *data.RulesetHandle,
	rng *rand.Rand, enemyRadius float64) *SpawnSystem {
	return &SpawnSystem{scene: scene, clock: clock, rules: rules, rng: rng, enemyRadius: enemyRadius}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(_ time.Duration) {
	rules, ok := s.rules.Get()
	if !ok {
		return
	}
	_, _, player, ok := s.scene.Player()
	if !ok {
		return
	}
	target := player.Pos
	elapsed := s.clock.Elapsed()
	tick := s.clock.Ticks()

	s.scene.Spawners.Each(func(_ ecs.EntityID, sp *world.SpawnerState) {
		if sp.LastSpawn+1/sp.Rate > elapsed {
			return
		}
		pos := sp.Pos.Add(geom.V(jitter(s.rng, sp.Radius), jitter(s.rng, sp.Radius)))
		var vel geom.Vec2
		if dir, ok := target.Sub(pos).Normalize(); ok {
			vel = dir.Scale(rules.BaseSpeed)
		}
		s.scene.SpawnEnemy(pos, vel, s.enemyRadius, world.EnemyState{BornTick: tick})
		sp.LastSpawn = elapsed
	})
}
