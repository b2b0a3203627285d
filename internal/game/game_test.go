package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/badnight/game/internal/config"
	"github.com/badnight/game/internal/core/event"
	"github.com/badnight/game/internal/data"
	"github.com/badnight/game/internal/economy"
	"github.com/badnight/game/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSession(t *testing.T, waves []data.WaveEntry) *Session {
	t.Helper()
	table, err := data.NewWaveTable(waves)
	require.NoError(t, err)
	catalog, err := economy.NewCatalog([]data.UpgradeDef{
		{Name: "soft_pillow", Cost: 70, Comfort: 1},
		{Name: "heavier_blanket", Cost: 70, SleepDuration: 5},
		{Name: "mansion", Cost: 5000, SleepDuration: 100},
	}, nil)
	require.NoError(t, err)

	s, err := NewSession(Options{
		Config:  config.Default(),
		Rules:   data.NewRulesetHandle(&data.EnemyRuleset{BaseSpeed: 90, Health: 1}),
		Waves:   table,
		Catalog: catalog,
		Rand:    rand.New(rand.NewSource(1)),
		Log:     zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return s
}

// sleepThrough starts a night and ticks until the session is back in Day.
func sleepThrough(t *testing.T, s *Session, step time.Duration, maxTicks int) int {
	t.Helper()
	require.NoError(t, s.StartSleep())
	s.Tick(step)
	require.Equal(t, PhaseNight, s.Phase())
	for i := 1; i <= maxTicks; i++ {
		s.Tick(step)
		if s.Phase() != PhaseNight {
			return i
		}
	}
	t.Fatalf("night did not end within %d ticks", maxTicks)
	return 0
}

func TestMachine_FirstRequestWins(t *testing.T) {
	m := NewMachine()
	ok, err := m.Request(PhaseNight, "sleep")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.Request(PhaseGameOver, "late")
	require.NoError(t, err)
	assert.False(t, ok)

	tr, committed := m.Commit()
	require.True(t, committed)
	assert.Equal(t, Transition{From: PhaseDay, To: PhaseNight, Reason: "sleep"}, tr)
	assert.Equal(t, PhaseNight, m.Current())

	_, committed = m.Commit()
	assert.False(t, committed, "one transition per tick")
}

func TestMachine_IllegalTransitions(t *testing.T) {
	cases := []struct{ from, to Phase }{
		{PhaseDay, PhaseDay},
		{PhaseNight, PhaseGameOver},
		{PhaseNight, PhaseGameWon},
		{PhaseNight, PhaseNight},
		{PhaseGameOver, PhaseNight},
		{PhaseGameWon, PhaseGameOver},
	}
	for _, tc := range cases {
		m := &Machine{current: tc.from}
		_, err := m.Request(tc.to, "test")
		assert.ErrorIs(t, err, ErrIllegalTransition, "%s -> %s", tc.from, tc.to)
		_, pending := m.Pending()
		assert.False(t, pending)
	}
}

func TestMachine_IllegalDoesNotBlockLegal(t *testing.T) {
	m := &Machine{current: PhaseNight}
	_, err := m.Request(PhaseGameOver, "nope")
	require.Error(t, err)
	ok, err := m.Request(PhaseDay, "slept")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_SixSecondNightBanksSix(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.ApplyUpgrade("soft_pillow"))
	assert.Equal(t, uint(130), s.Economy().RestBalance)

	ticks := sleepThrough(t, s, time.Second, 20)
	assert.Equal(t, 6, ticks, "elapsed 6 is the first value past 5")
	assert.Equal(t, PhaseDay, s.Phase())
	assert.Equal(t, uint(0), s.Economy().DayIndex, "settlement waits for the first day tick")
	assert.Equal(t, 6.0, s.Economy().UnsafeRestAccrued)
	assert.False(t, s.Settled())
	assert.ErrorIs(t, s.ApplyUpgrade("soft_pillow"), ErrDayNotStarted)

	s.Tick(time.Second)
	assert.True(t, s.Settled())
	assert.Equal(t, uint(136), s.Economy().RestBalance)
	assert.Equal(t, uint(1), s.Economy().DayIndex)
	assert.Zero(t, s.Economy().UnsafeRestAccrued)
	assert.Equal(t, PhaseDay, s.Phase())
}

func TestSession_LongerSleepDoesNotExpireAtSix(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.ApplyUpgrade("heavier_blanket"))
	assert.Equal(t, 10.0, s.Economy().SleepDuration)

	ticks := sleepThrough(t, s, time.Second, 20)
	assert.Equal(t, 11, ticks)
	s.Tick(time.Second)
	assert.Equal(t, uint(141), s.Economy().RestBalance)
}

func TestSession_InsufficientFunds(t *testing.T) {
	s := newTestSession(t, nil)
	err := s.ApplyUpgrade("mansion")
	assert.ErrorIs(t, err, economy.ErrInsufficientFunds)
	assert.Equal(t, uint(200), s.Economy().RestBalance)

	assert.ErrorIs(t, s.ApplyUpgrade("ghost"), economy.ErrUnknownUpgrade)
}

func TestSession_DayOnlyActions(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.StartSleep())
	s.Tick(time.Second / 60)

	assert.ErrorIs(t, s.StartSleep(), ErrWrongPhase)
	assert.ErrorIs(t, s.ApplyUpgrade("soft_pillow"), ErrWrongPhase)
	assert.ErrorIs(t, s.NewGame(), ErrIllegalTransition)
	assert.Equal(t, PhaseNight, s.Phase())
}

func TestSession_EnterNightSpawnsPlayerAndResets(t *testing.T) {
	s := newTestSession(t, nil)
	s.econ.CreditRest(9)
	s.econ.MarkDied()
	require.NoError(t, s.StartSleep())
	s.Tick(time.Second / 60)

	snap := s.Snapshot()
	assert.Equal(t, PhaseNight, snap.Phase)
	assert.True(t, snap.HasPlayer)
	assert.Equal(t, geom.Zero, snap.PlayerPos)
	assert.Equal(t, 3.0, snap.Health)
	assert.Zero(t, snap.UnsafeRest)
	assert.False(t, snap.Died)
	assert.Zero(t, snap.Elapsed, "the transition tick does not advance the night")
}

func TestSession_LeavingNightTearsDownActors(t *testing.T) {
	s := newTestSession(t, []data.WaveEntry{
		{ActivationTime: 0, SpawnRate: 4, Count: 3},
	})
	sleepThrough(t, s, 100*time.Millisecond, 200)
	assert.Zero(t, s.scene.Live())
	snap := s.Snapshot()
	assert.False(t, snap.HasPlayer)
	assert.Zero(t, snap.Enemies)
	assert.Zero(t, snap.Spawners)
}

func TestSession_DeathForfeitsNightRest(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.StartSleep())
	s.Tick(time.Second)
	s.Tick(time.Second)
	s.econ.CreditRest(10) // as if two kills happened
	_, st, _, ok := s.scene.Player()
	require.True(t, ok)
	st.Health = 0

	s.Tick(time.Second)
	require.Equal(t, PhaseDay, s.Phase())
	assert.True(t, s.econ.Died)

	s.Tick(time.Second)
	assert.Equal(t, uint(200), s.econ.RestBalance)
	assert.Equal(t, uint(1), s.econ.DayIndex)
	assert.Equal(t, PhaseDay, s.Phase())
}

func TestSession_OutOfBoundsDeath(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.StartSleep())
	s.Tick(time.Second)
	_, _, body, _ := s.scene.Player()
	body.Pos = geom.V(1200, 0)

	s.Tick(time.Second / 60)
	assert.Equal(t, PhaseDay, s.Phase())
	assert.True(t, s.econ.Died)
}

func TestSession_GameOverAfterLastDay(t *testing.T) {
	s := newTestSession(t, nil)
	s.econ.DayIndex = 6
	sleepThrough(t, s, time.Second, 20)
	assert.Equal(t, PhaseDay, s.Phase())

	s.Tick(time.Second)
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, uint(7), s.econ.DayIndex)

	assert.ErrorIs(t, s.StartSleep(), ErrRunOver)
	assert.ErrorIs(t, s.ApplyUpgrade("soft_pillow"), ErrRunOver)

	require.NoError(t, s.NewGame())
	s.Tick(time.Second)
	assert.Equal(t, PhaseDay, s.Phase())
	assert.Equal(t, uint(0), s.econ.DayIndex)
	assert.Equal(t, uint(200), s.econ.RestBalance)
	assert.True(t, s.Settled())
}

func TestSession_WinOnLongSleep(t *testing.T) {
	s := newTestSession(t, nil)
	s.econ.SleepDuration = 60
	sleepThrough(t, s, 10*time.Second, 20)
	s.Tick(time.Second)
	assert.Equal(t, PhaseGameWon, s.Phase())
	assert.Equal(t, uint(1), s.econ.DayIndex)
}

func TestSession_DayFiveStillContinues(t *testing.T) {
	s := newTestSession(t, nil)
	s.econ.DayIndex = 5
	sleepThrough(t, s, time.Second, 20)
	s.Tick(time.Second)
	assert.Equal(t, PhaseDay, s.Phase())
	assert.Equal(t, uint(6), s.econ.DayIndex)
}

func TestSession_EmitsNightAndDayEvents(t *testing.T) {
	s := newTestSession(t, nil)
	var nights []event.NightEnded
	var days []event.DaySettled
	var phases []event.PhaseChanged
	event.Subscribe(s.Bus(), func(ev event.NightEnded) { nights = append(nights, ev) })
	event.Subscribe(s.Bus(), func(ev event.DaySettled) { days = append(days, ev) })
	event.Subscribe(s.Bus(), func(ev event.PhaseChanged) { phases = append(phases, ev) })

	sleepThrough(t, s, time.Second, 20)
	s.Tick(time.Second) // delivers NightEnded, runs settlement
	s.Tick(time.Second) // delivers DaySettled

	require.Len(t, nights, 1)
	assert.Equal(t, 6.0, nights[0].Elapsed)
	assert.Equal(t, 6.0, nights[0].UnsafeRest)
	assert.False(t, nights[0].Died)

	require.Len(t, days, 1)
	assert.Equal(t, uint(6), days[0].Banked)
	assert.Equal(t, "continue", days[0].Outcome)

	require.Len(t, phases, 2)
	assert.Equal(t, "night", phases[0].To)
	assert.Equal(t, "day", phases[1].To)
	assert.Equal(t, "slept", phases[1].Reason)
}

func TestSession_MovementIntentReachesPlayer(t *testing.T) {
	s := newTestSession(t, nil)
	require.NoError(t, s.StartSleep())
	s.Tick(time.Second / 60)
	s.SetMovement(geom.V(3, 0))
	s.Tick(time.Second / 60)

	snap := s.Snapshot()
	assert.Greater(t, snap.PlayerPos.X, 0.0)
	_, st, _, _ := s.scene.Player()
	assert.Equal(t, geom.V(1, 0), st.Intent)
}

func TestNewSession_RequiresInputs(t *testing.T) {
	_, err := NewSession(Options{})
	assert.Error(t, err)
}

func TestSession_DayTickOnlyDispatches(t *testing.T) {
	s := newTestSession(t, []data.WaveEntry{
		{ActivationTime: 0, SpawnRate: 4, Count: 2},
	})
	var bought []event.UpgradePurchased
	event.Subscribe(s.Bus(), func(ev event.UpgradePurchased) { bought = append(bought, ev) })

	require.NoError(t, s.ApplyUpgrade("soft_pillow"))
	s.Tick(time.Second)

	require.Len(t, bought, 1, "day ticks still deliver notifications")
	assert.Equal(t, "soft_pillow", bought[0].Name)
	assert.Zero(t, s.scene.Live(), "night systems stay idle during the day")
	assert.Zero(t, s.clock.Elapsed())
	assert.Equal(t, PhaseDay, s.Phase())
}
