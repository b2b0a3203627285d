package system

import (
	"math/rand"
	"time"

	"github.com/badnight/game/internal/config"
	"github.com/badnight/game/internal/core/event"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/geom"
	"github.com/badnight/game/internal/world"
	"go.uber.org/zap"
)

// WaveSystem 依夜間時鐘啟動波次表項目（Phase 1 Schedule）。
//
// watermark < at <= elapsed 的項目依表格順序觸發。watermark 每 tick 只讀一次：
// 粗 tick 跨過多個項目時每個各觸發一次，相同啟動時間的項目同時觸發。
type WaveSystem struct {
	table *data.WaveTable
	clock *world.NightClock
	scene *world.Scene
	rng   *rand.Rand
	arena config.ArenaConfig
	bus   *event.Bus
	log   *zap.Logger
}

func NewWaveSystem(table *data.WaveTable, clock *world.NightClock, scene *world.Scene,
	rng *rand.Rand, arena config.ArenaConfig, bus *event.Bus, log *zap.Logger) *WaveSystem {
	return &WaveSystem{table: table, clock: clock, scene: scene, rng: rng, arena: arena, bus: bus, log: log}
}

func (s *WaveSystem) Phase() coresys.Phase { return coresys.PhaseSchedule }

func (s *WaveSystem) Update(_ time.Duration) {
	elapsed := s.clock.Elapsed()
	mark := s.clock.Watermark()
	for i, w := range s.table.Entries() {
		if w.ActivationTime > elapsed {
			break
		}
		if w.ActivationTime <= mark {
			continue
		}
		s.activate(i, w)
		s.clock.AdvanceWatermark(w.ActivationTime)
	}
}

func (s *WaveSystem) activate(index int, w data.WaveEntry) {
	for n := uint(0); n < w.Count; n++ {
		pos := geom.V(
			jitter(s.rng, s.arena.HalfWidth),
			jitter(s.rng, s.arena.HalfHeight),
		)
		s.scene.SpawnSpawner(world.SpawnerState{
			Pos:    pos,
			Rate:   w.SpawnRate,
			Radius: s.arena.SpawnerRadius,
			Wave:   index,
		})
	}
	s.scene.Stats.Waves++
	event.Emit(s.bus, event.WaveActivated{
		Index:          index,
		ActivationTime: w.ActivationTime,
		Spawners:       int(w.Count),
	})
	s.log.Debug("wave activated",
		zap.Int("wave", index),
		zap.Float64("at", w.ActivationTime),
		zap.Float64("elapsed", s.clock.Elapsed()),
		zap.Uint("spawners", w.Count))
}

// jitter 回傳 [-r, r) 的均勻亂數。
func jitter(rng *rand.Rand, r float64) float64 {
	return rng.Float64()*2*r - r
}
