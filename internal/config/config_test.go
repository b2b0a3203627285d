package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "badnight.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_rate = "10ms"
seed = 42

[combat]
kill_reward = 7.5
death_effect_duration = "250ms"

[economy]
rest_balance = 50
day_limit = 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, cfg.Simulation.TickRate)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 7.5, cfg.Combat.KillReward)
	assert.Equal(t, 250*time.Millisecond, cfg.Combat.DeathEffectDuration)
	assert.Equal(t, uint(50), cfg.Economy.RestBalance)
	assert.Equal(t, uint(3), cfg.Economy.DayLimit)

	// untouched sections keep their defaults
	assert.Equal(t, 750.0, cfg.Arena.HalfWidth)
	assert.Equal(t, 1.0, cfg.Combat.ContactDamage)
	assert.Equal(t, 59.0, cfg.Economy.WinThreshold)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_RejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick_rate = "0s"

[combat]
move_damping = 1.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tick_rate")
	assert.Contains(t, err.Error(), "move_damping")
}

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefault_DatabaseNeedsDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Enabled = true
	cfg.Database.DSN = ""
	assert.Error(t, cfg.Validate())
}
