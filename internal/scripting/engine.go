package scripting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/badnight/game/internal/economy"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for balance logic.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// core helpers first, then the files that use them
	for _, sub := range []string{"core", "economy"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DeriveCombatStats calls the Lua derive_combat_stats function. The built-in
// formula is used when the script is absent or fails.
func (e *Engine) DeriveCombatStats(in economy.StatsInput) economy.CombatStats {
	fallback := economy.Formula{}.DeriveCombatStats(in)

	fn := e.vm.GetGlobal("derive_combat_stats")
	if fn == lua.LNil {
		return fallback
	}

	t := e.vm.NewTable()
	t.RawSetString("comfort", lua.LNumber(in.Comfort))
	t.RawSetString("warmth", lua.LNumber(in.Warmth))
	t.RawSetString("hydration", lua.LNumber(in.Hydration))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua derive_combat_stats error", zap.Error(err))
		return fallback
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua derive_combat_stats returned non-table")
		return fallback
	}

	stats := economy.CombatStats{
		Radius:   lFloatOr(rt, "radius", fallback.Radius),
		Speed:    lFloatOr(rt, "speed", fallback.Speed),
		FireRate: lFloatOr(rt, "fire_rate", fallback.FireRate),
		Range:    lFloatOr(rt, "range", fallback.Range),
	}
	if stats.Radius <= 0 || stats.Speed <= 0 || stats.FireRate <= 0 || stats.Range <= 0 {
		e.log.Error("lua derive_combat_stats returned non-positive stat",
			zap.Float64("radius", stats.Radius),
			zap.Float64("speed", stats.Speed),
			zap.Float64("fire_rate", stats.FireRate),
			zap.Float64("range", stats.Range))
		return fallback
	}
	return stats
}

// RunUpgradeEffect calls the Lua function upgrade_<name>(state) and copies
// the tunables it returns back onto the economy. Fields the script leaves
// out keep their value.
func (e *Engine) RunUpgradeEffect(name string, econ *economy.Economy) error {
	fname := "upgrade_" + name
	fn := e.vm.GetGlobal(fname)
	if fn == lua.LNil {
		return fmt.Errorf("lua function %s not found", fname)
	}

	t := e.vm.NewTable()
	t.RawSetString("sleep_duration", lua.LNumber(econ.SleepDuration))
	t.RawSetString("comfort", lua.LNumber(econ.Comfort))
	t.RawSetString("warmth", lua.LNumber(econ.Warmth))
	t.RawSetString("hydration", lua.LNumber(econ.Hydration))
	t.RawSetString("rest_balance", lua.LNumber(econ.RestBalance))
	t.RawSetString("day", lua.LNumber(econ.DayIndex))

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return fmt.Errorf("lua %s: %w", fname, err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return fmt.Errorf("lua %s returned %s, want table", fname, result.Type())
	}

	econ.SleepDuration = lFloatOr(rt, "sleep_duration", econ.SleepDuration)
	econ.Comfort = lFloatOr(rt, "comfort", econ.Comfort)
	econ.Warmth = lFloatOr(rt, "warmth", econ.Warmth)
	econ.Hydration = lFloatOr(rt, "hydration", econ.Hydration)

	e.log.Debug("upgrade script applied", zap.String("func", fname))
	return nil
}

// --- Lua helpers ---

// lFloatOr reads a number field from a Lua table, or def when it is missing
// or not a finite number.
func lFloatOr(t *lua.LTable, key string, def float64) float64 {
	n, ok := t.RawGetString(key).(lua.LNumber)
	if !ok {
		return def
	}
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
