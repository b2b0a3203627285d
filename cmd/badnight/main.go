package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/badnight/game/internal/config"
	"github.com/badnight/game/internal/core/event"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/game"
	"github.com/badnight/game/internal/persist"
	"github.com/badnight/game/internal/physics"
	"github.com/badnight/game/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/badnight.toml"
	if p := os.Getenv("BADNIGHT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	printBanner(seed)

	// 3. Load data tables
	printSection("data")

	rules, err := data.LoadEnemyRuleset(cfg.Data.Enemies)
	if err != nil {
		return fmt.Errorf("load enemy ruleset: %w", err)
	}
	printOK(fmt.Sprintf("enemy ruleset (speed %.0f)", rules.BaseSpeed))

	waves, err := data.LoadWaveTable(cfg.Data.Waves)
	if err != nil {
		return fmt.Errorf("load wave table: %w", err)
	}
	printStat("waves", waves.Count())

	upgradeDefs, err := data.LoadUpgradeList(cfg.Data.Upgrades)
	if err != nil {
		return fmt.Errorf("load upgrades: %w", err)
	}

	// 4. Scripting
	lua, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()

	catalog, err := economy.NewCatalog(upgradeDefs, lua)
	if err != nil {
		return fmt.Errorf("upgrade catalog: %w", err)
	}
	printStat("upgrades", catalog.Count())
	fmt.Println()

	// 5. Optional run log
	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	bus := event.NewBus()
	var (
		runs     *persist.RunRepo
		recorder *persist.Recorder
		runID    int64
	)
	if cfg.Database.Enabled {
		printSection("run log")
		setupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(setupCtx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")

		version, err := persist.RunMigrations(setupCtx, db)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printStat("schema version", int(version))

		runs = persist.NewRunRepo(db)
		runID, err = runs.Start(setupCtx, seed)
		if err != nil {
			return err
		}
		recorder = persist.NewRecorder(persist.NewNightRepo(db), runID, log)
		recorder.Attach(bus)
		printStat("run id", int(runID))
		fmt.Println()
	}

	// 6. Session
	effects := &logEffects{log: log.Named("vfx")}
	session, err := game.NewSession(game.Options{
		Config:  cfg,
		Rules:   data.NewRulesetHandle(rules),
		Waves:   waves,
		Catalog: catalog,
		Stats:   lua,
		Effects: effects,
		Engine:  physics.NewSimple(),
		Bus:     bus,
		Rand:    rand.New(rand.NewSource(seed)),
		Log:     log,
	})
	if err != nil {
		return err
	}

	event.Subscribe(bus, func(ev event.NightEnded) {
		fmt.Printf("  night %d  %5.1fs  kills %-3d hits %-2d %s\n",
			ev.Day+1, ev.Elapsed, ev.Kills, ev.Contacts, nightVerdict(ev.Died))
	})

	// 7. Game loop
	pilot := newAutopilot(cfg.Arena.OutOfBoundsRadius, log.Named("autopilot"))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	printSection("run")
	printReady(fmt.Sprintf("game loop (tick: %s, realtime: %t)", cfg.Simulation.TickRate, cfg.Simulation.Realtime))
	fmt.Println()

	ticks, err := loop(ctx, cfg.Simulation, session, pilot, recorder, shutdownCh, log)
	if err != nil {
		return err
	}
	bus.Flush()

	// 8. Summary
	snap := session.Snapshot()
	outcome := outcomeName(snap.Phase)
	fmt.Println()
	printSection("result")
	printOK(outcome)
	printStat("days", int(snap.Day))
	printStat("rest balance", int(snap.RestBalance))
	printStat("death effects", effects.count)
	printStat("ticks", ticks)
	fmt.Println()

	if recorder != nil {
		finishCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := recorder.Close(finishCtx); err != nil {
			log.Error("run log flush failed", zap.Error(err))
		}
		if err := runs.Finish(finishCtx, runID, outcome, snap.Day, snap.RestBalance); err != nil {
			log.Error("run log finish failed", zap.Error(err))
		}
	}

	log.Info("run finished",
		zap.String("outcome", outcome),
		zap.Uint("day", snap.Day),
		zap.Uint("rest_balance", snap.RestBalance),
		zap.Int("ticks", ticks))
	return nil
}

// loop drives the session until the run ends, MaxTicks is reached or a
// shutdown signal arrives. It returns the number of ticks run.
func loop(ctx context.Context, sim config.SimulationConfig, s *game.Session, pilot *autopilot,
	recorder *persist.Recorder, shutdownCh <-chan os.Signal, log *zap.Logger) (int, error) {
	var tickC <-chan time.Time
	if sim.Realtime {
		ticker := time.NewTicker(sim.TickRate)
		defer ticker.Stop()
		tickC = ticker.C
	}

	ticks := 0
	for {
		if tickC != nil {
			select {
			case <-tickC:
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return ticks, nil
			}
		} else {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal", zap.String("signal", sig.String()))
				return ticks, nil
			default:
			}
		}

		switch s.Phase() {
		case game.PhaseDay:
			if err := pilot.planDay(s); err != nil {
				return ticks, fmt.Errorf("autopilot: %w", err)
			}
		case game.PhaseNight:
			s.SetMovement(pilot.steer(s))
		}

		s.Tick(sim.TickRate)
		ticks++

		if recorder != nil && recorder.Pending() > 0 {
			// failures stay buffered and are retried next tick
			_ = recorder.Flush(ctx)
		}
		if s.Phase().Terminal() {
			return ticks, nil
		}
		if sim.MaxTicks > 0 && ticks >= sim.MaxTicks {
			log.Warn("tick limit reached", zap.Int("max_ticks", sim.MaxTicks))
			return ticks, nil
		}
	}
}

func outcomeName(p game.Phase) string {
	switch p {
	case game.PhaseGameWon:
		return "won"
	case game.PhaseGameOver:
		return "lost"
	}
	return "aborted"
}

func nightVerdict(died bool) string {
	if died {
		return "\033[31mdied\033[0m"
	}
	return "\033[32mslept\033[0m"
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
