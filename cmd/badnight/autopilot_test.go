package main

import (
	"math/rand"
	"testing"
	"time"

	"github.com/badnight/game/internal/config"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/game"
	"github.com/badnight/game/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCatalog(t *testing.T, defs ...data.UpgradeDef) *economy.Catalog {
	t.Helper()
	c, err := economy.NewCatalog(defs, nil)
	require.NoError(t, err)
	return c
}

func TestCheapestAffordable(t *testing.T) {
	shop := []data.UpgradeDef{
		{Name: "blanket", Cost: 120, Warmth: 1},
		{Name: "pillow", Cost: 70, Comfort: 1},
		{Name: "earplugs", Cost: 70, Comfort: 1},
		{Name: "mansion", Cost: 5000, SleepDuration: 10},
	}
	cases := []struct {
		name    string
		defs    []data.UpgradeDef
		balance uint
		want    string
		found   bool
	}{
		{name: "empty catalog", balance: 1000},
		{name: "nothing affordable", defs: shop, balance: 69},
		{name: "exact balance", defs: shop, balance: 70, want: "pillow", found: true},
		{name: "ties keep catalog order", defs: shop, balance: 10000, want: "pillow", found: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, ok := cheapestAffordable(testCatalog(t, tc.defs...), tc.balance)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.want, u.Name)
		})
	}
}

func newPilotSession(t *testing.T) *game.Session {
	t.Helper()
	waves, err := data.NewWaveTable(nil)
	require.NoError(t, err)
	s, err := game.NewSession(game.Options{
		Config:  config.Default(),
		Rules:   data.NewRulesetHandle(&data.EnemyRuleset{BaseSpeed: 90, Health: 1}),
		Waves:   waves,
		Catalog: testCatalog(t, data.UpgradeDef{Name: "pillow", Cost: 70, Comfort: 1}),
		Rand:    rand.New(rand.NewSource(3)),
		Log:     zap.NewNop(),
	})
	require.NoError(t, err)
	return s
}

func TestPlanDay_BuysThenSleeps(t *testing.T) {
	s := newPilotSession(t)
	pilot := newAutopilot(1000, zap.NewNop())

	require.NoError(t, pilot.planDay(s))
	assert.Equal(t, uint(130), s.Economy().RestBalance)
	assert.Equal(t, 2.0, s.Economy().Comfort)

	s.Tick(time.Second / 60)
	assert.Equal(t, game.PhaseNight, s.Phase())
}

func TestSteer(t *testing.T) {
	s := newPilotSession(t)
	pilot := newAutopilot(1000, zap.NewNop())
	assert.Equal(t, geom.Zero, pilot.steer(s), "no player during the day")

	require.NoError(t, pilot.planDay(s))
	s.Tick(time.Second / 60)
	require.True(t, s.Snapshot().HasPlayer)
	assert.Equal(t, geom.Zero, pilot.steer(s), "nothing to flee at the centre")
}
