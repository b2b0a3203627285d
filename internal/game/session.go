package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/badnight/game/internal/config"
	"github.com/badnight/game/internal/core/event"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/geom"
	"github.com/badnight/game/internal/physics"
	"github.com/badnight/game/internal/system"
	"github.com/badnight/game/internal/world"
	"go.uber.org/zap"
)

// Options carries everything a session needs. Bus, Rand, Stats, Effects and
// Engine are optional.
type Options struct {
	Config  *config.Config
	Rules   *data.RulesetHandle
	Waves   *data.WaveTable
	Catalog *economy.Catalog
	Stats   economy.StatsDeriver
	Effects system.Effects
	Engine  physics.Engine
	Bus     *event.Bus
	Rand    *rand.Rand
	Log     *zap.Logger
}

// Session owns one play-through. Not safe for concurrent use; the caller's
// loop drives Tick and the UI triggers from one goroutine.
type Session struct {
	cfg     *config.Config
	log     *zap.Logger
	econ    *economy.Economy
	catalog *economy.Catalog
	stats   economy.StatsDeriver
	machine *Machine
	scene   *world.Scene
	clock   *world.NightClock
	engine  physics.Engine
	hits    *event.Queue[physics.Contact]
	bus     *event.Bus

	runner *coresys.Runner

	intent        geom.Vec2
	settlePending bool
	ticks         uint64
}

func NewSession(opts Options) (*Session, error) {
	if opts.Config == nil {
		return nil, errors.New("session: config is required")
	}
	if opts.Waves == nil {
		return nil, errors.New("session: wave table is required")
	}
	if opts.Catalog == nil {
		return nil, errors.New("session: upgrade catalog is required")
	}
	cfg := opts.Config
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	rules := opts.Rules
	if rules == nil {
		rules = data.NewRulesetHandle(nil)
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	engine := opts.Engine
	if engine == nil {
		engine = physics.NewSimple()
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Simulation.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	s := &Session{
		cfg:     cfg,
		log:     log,
		econ:    economy.New(economy.ParamsFromConfig(cfg.Economy)),
		catalog: opts.Catalog,
		stats:   opts.Stats,
		machine: NewMachine(),
		scene:   world.NewScene(),
		clock:   world.NewNightClock(),
		engine:  engine,
		hits:    event.NewQueue[physics.Contact](32),
		bus:     bus,
		runner:  coresys.NewRunner(),
	}
	c := cfg.Combat
	s.runner.Register(system.NewDispatchSystem(bus))
	s.runner.Register(system.NewWaveSystem(opts.Waves, s.clock, s.scene, rng, cfg.Arena, bus, log))
	s.runner.Register(system.NewSpawnSystem(s.scene, s.clock, rules, rng, c.EnemyRadius))
	s.runner.Register(system.NewPursuitSystem(s.scene, s.clock, rules, c.SteeringGain))
	s.runner.Register(system.NewControlSystem(s.scene, c.MoveAcceleration, c.MoveDamping))
	s.runner.Register(system.NewShooterSystem(s.scene, s.clock, c.ShotSpeed, c.ShotRadius))
	s.runner.Register(system.NewPhysicsSystem(s.scene, engine, s.hits))
	s.runner.Register(system.NewCombatSystem(s.scene, s.econ, s.hits, opts.Effects, bus, c, log))
	s.runner.Register(system.NewClockSystem(s.scene, s.clock, s.econ, s, s.runner, cfg.Arena.OutOfBoundsRadius, log))
	s.runner.Register(system.NewLifetimeSystem(s.scene, s.clock))
	s.runner.Register(system.NewCleanupSystem(s.scene))

	log.Info("session ready",
		zap.Int("systems", s.runner.Len()),
		zap.Int("waves", opts.Waves.Count()),
		zap.Int("upgrades", opts.Catalog.Count()))
	return s, nil
}

func (s *Session) Phase() Phase { return s.machine.Current() }

// Economy exposes the persistent player state for display.
func (s *Session) Economy() *economy.Economy { return s.econ }

func (s *Session) Catalog() *economy.Catalog { return s.catalog }

func (s *Session) Bus() *event.Bus { return s.bus }

// Settled reports whether the current day is open for purchases and sleep.
func (s *Session) Settled() bool {
	return s.machine.Current() == PhaseDay && !s.settlePending
}

// EndNight is called by the clock system when the night is over.
func (s *Session) EndNight(reason string) {
	if _, err := s.machine.Request(PhaseDay, reason); err != nil {
		s.log.Warn("end night rejected", zap.String("reason", reason), zap.Error(err))
	}
}

// StartSleep requests Day -> Night for the next tick.
func (s *Session) StartSleep() error {
	if err := s.dayAction("start sleep"); err != nil {
		return err
	}
	_, err := s.machine.Request(PhaseNight, "sleep")
	return err
}

// ApplyUpgrade buys a catalog upgrade. Day only.
func (s *Session) ApplyUpgrade(name string) error {
	if err := s.dayAction("apply upgrade"); err != nil {
		return err
	}
	u, err := s.catalog.Buy(s.econ, name)
	if err != nil {
		return err
	}
	event.Emit(s.bus, event.UpgradePurchased{Name: u.Name, Cost: u.Cost, BalanceLeft: s.econ.RestBalance})
	s.log.Info("upgrade purchased",
		zap.String("upgrade", u.Name),
		zap.Uint("cost", u.Cost),
		zap.Uint("rest_balance", s.econ.RestBalance),
		zap.Float64("sleep_duration", s.econ.SleepDuration))
	return nil
}

func (s *Session) dayAction(what string) error {
	switch p := s.machine.Current(); {
	case p.Terminal():
		return fmt.Errorf("%s: %w", what, ErrRunOver)
	case p != PhaseDay:
		return fmt.Errorf("%s in %s: %w", what, p, ErrWrongPhase)
	case s.settlePending:
		return fmt.Errorf("%s: %w", what, ErrDayNotStarted)
	}
	return nil
}

// NewGame requests a fresh run after the previous one ended.
func (s *Session) NewGame() error {
	if p := s.machine.Current(); !p.Terminal() {
		return fmt.Errorf("new game from %s: %w", p, ErrIllegalTransition)
	}
	_, err := s.machine.Request(PhaseDay, "new game")
	return err
}

// SetMovement sets the player's movement intent. Length is clamped to 1.
func (s *Session) SetMovement(v geom.Vec2) { s.intent = v.ClampLen(1) }

// Tick advances the session by dt. Night ticks run the systems; the first
// Day tick after a night runs the settlement. Any transition requested during
// the tick is committed at its end.
func (s *Session) Tick(dt time.Duration) {
	s.ticks++
	switch s.machine.Current() {
	case PhaseNight:
		if _, st, _, ok := s.scene.Player(); ok {
			st.Intent = s.intent
		}
		s.clock.Tick(dt.Seconds())
		s.runner.Tick(dt)
	case PhaseDay:
		// Day ticks only deliver notifications.
		s.runner.TickPhase(coresys.PhaseDispatch, dt)
		if s.settlePending {
			s.settle()
		}
	default:
		s.runner.TickPhase(coresys.PhaseDispatch, dt)
	}

	if t, ok := s.machine.Commit(); ok {
		s.onTransition(t)
	}
}

func (s *Session) settle() {
	s.settlePending = false
	res := s.econ.AdvanceDay()

	event.Emit(s.bus, event.DaySettled{
		Day:         s.econ.DayIndex,
		Banked:      res.Banked,
		RestBalance: s.econ.RestBalance,
		Outcome:     res.Outcome.String(),
	})
	s.log.Info("day settled",
		zap.Uint("day", s.econ.DayIndex),
		zap.Uint("banked", res.Banked),
		zap.Uint("rest_balance", s.econ.RestBalance),
		zap.Stringer("outcome", res.Outcome))

	var err error
	switch res.Outcome {
	case economy.OutcomeWon:
		_, err = s.machine.Request(PhaseGameWon, "slept through")
	case economy.OutcomeLost:
		_, err = s.machine.Request(PhaseGameOver, "out of days")
	}
	if err != nil {
		s.log.Error("settlement transition rejected", zap.Error(err))
	}
}

func (s *Session) onTransition(t Transition) {
	switch {
	case t.To == PhaseNight:
		s.enterNight()
	case t.From == PhaseNight:
		s.leaveNight(t.Reason)
	case t.From.Terminal() && t.To == PhaseDay:
		s.econ.Reset()
		s.settlePending = false
		s.intent = geom.Zero
	}

	event.Emit(s.bus, event.PhaseChanged{
		From:   t.From.String(),
		To:     t.To.String(),
		Day:    s.econ.DayIndex,
		Reason: t.Reason,
	})
	s.log.Info("phase changed",
		zap.Stringer("from", t.From),
		zap.Stringer("to", t.To),
		zap.String("reason", t.Reason),
		zap.Uint("day", s.econ.DayIndex),
		zap.Uint64("tick", s.ticks))
}

func (s *Session) enterNight() {
	s.resetNightScope()
	s.econ.BeginNight()
	stats := s.econ.DeriveCombatStats(s.stats)
	s.scene.SpawnPlayer(geom.Zero, world.PlayerState{
		Health: s.cfg.Combat.PlayerHealth,
		Stats:  stats,
	})
	s.log.Debug("night started",
		zap.Float64("sleep_duration", s.econ.SleepDuration),
		zap.Float64("radius", stats.Radius),
		zap.Float64("speed", stats.Speed),
		zap.Float64("fire_rate", stats.FireRate),
		zap.Float64("range", stats.Range))
}

func (s *Session) leaveNight(reason string) {
	st := s.scene.Stats
	event.Emit(s.bus, event.NightEnded{
		Day:        s.econ.DayIndex,
		Elapsed:    s.clock.Elapsed(),
		Died:       s.econ.Died,
		Kills:      st.Kills,
		Contacts:   st.Contacts,
		UnsafeRest: s.econ.UnsafeRestAccrued,
	})
	s.log.Info("night ended",
		zap.String("reason", reason),
		zap.Float64("elapsed", s.clock.Elapsed()),
		zap.Bool("died", s.econ.Died),
		zap.Int("kills", st.Kills),
		zap.Int("contacts", st.Contacts),
		zap.Int("spawned", st.Spawned),
		zap.Float64("unsafe_rest", s.econ.UnsafeRestAccrued))
	s.resetNightScope()
	s.settlePending = true
}

// resetNightScope drops every night actor and all per-night state.
func (s *Session) resetNightScope() {
	s.scene.Teardown()
	s.clock.Reset()
	s.hits.Reset()
	s.engine.Reset()
}

// Snapshot is a read-only view for renderers and logs.
type Snapshot struct {
	Phase         Phase
	Day           uint
	RestBalance   uint
	UnsafeRest    float64
	SleepDuration float64
	Died          bool

	Elapsed   float64
	Health    float64
	PlayerPos geom.Vec2
	HasPlayer bool
	Enemies   int
	Spawners  int
	Shots     int
	Kills     int
	Contacts  int
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:         s.machine.Current(),
		Day:           s.econ.DayIndex,
		RestBalance:   s.econ.RestBalance,
		UnsafeRest:    s.econ.UnsafeRestAccrued,
		SleepDuration: s.econ.SleepDuration,
		Died:          s.econ.Died,
		Elapsed:       s.clock.Elapsed(),
		Enemies:       s.scene.Enemies.Len(),
		Spawners:      s.scene.Spawners.Len(),
		Shots:         s.scene.Shots.Len(),
		Kills:         s.scene.Stats.Kills,
		Contacts:      s.scene.Stats.Contacts,
	}
	if _, st, body, ok := s.scene.Player(); ok {
		snap.HasPlayer = true
		snap.Health = st.Health
		snap.PlayerPos = body.Pos
	}
	return snap
}

// NearestEnemy returns the position of the enemy closest to the player.
// Used by the headless autopilot.
func (s *Session) NearestEnemy() (geom.Vec2, bool) {
	_, _, player, ok := s.scene.Player()
	if !ok {
		return geom.Zero, false
	}
	var best geom.Vec2
	bestD := -1.0
	for _, id := range s.scene.Enemies.IDs() {
		b, ok := s.scene.Bodies.Get(id)
		if !ok {
			continue
		}
		if d := b.Pos.Sub(player.Pos).LenSq(); bestD < 0 || d < bestD {
			best, bestD = b.Pos, d
		}
	}
	return best, bestD >= 0
}
