// Package economy owns the persistent player resource pool: the rest
// currency, the comfort/warmth/hydration tunables and the day counter that
// decides when a run is won or lost.
package economy

import (
	"errors"
	"fmt"
	"math"

	"github.com/badnight/game/internal/config"
)

var (
	ErrInsufficientFunds = errors.New("insufficient rest")
	ErrUnknownUpgrade    = errors.New("unknown upgrade")
	ErrInvalidEffect     = errors.New("upgrade effect produced invalid state")
)

// Params are the new-game defaults and the win/loss thresholds.
type Params struct {
	RestBalance   uint
	SleepDuration float64
	Comfort       float64
	Warmth        float64
	Hydration     float64
	WinThreshold  float64 // SleepDuration at or above this wins the run
	DayLimit      uint    // DayIndex above this without a win loses the run
}

func ParamsFromConfig(c config.EconomyConfig) Params {
	return Params{
		RestBalance:   c.RestBalance,
		SleepDuration: c.SleepDuration,
		Comfort:       c.Comfort,
		Warmth:        c.Warmth,
		Hydration:     c.Hydration,
		WinThreshold:  c.WinThreshold,
		DayLimit:      c.DayLimit,
	}
}

// Economy is the single persistent player state. It outlives every phase and
// is only reset by a new game. Not safe for concurrent use; the game loop
// owns it.
type Economy struct {
	Comfort       float64
	Warmth        float64
	Hydration     float64
	SleepDuration float64 // target night length in seconds

	RestBalance       uint
	UnsafeRestAccrued float64 // earned this night, banked at day start
	DayIndex          uint
	Died              bool

	params Params
}

func New(p Params) *Economy {
	e := &Economy{params: p}
	e.Reset()
	return e
}

// Reset restores the new-game defaults.
func (e *Economy) Reset() {
	p := e.params
	*e = Economy{
		Comfort:       p.Comfort,
		Warmth:        p.Warmth,
		Hydration:     p.Hydration,
		SleepDuration: p.SleepDuration,
		RestBalance:   p.RestBalance,
		params:        p,
	}
}

func (e *Economy) Params() Params { return e.params }

// ApplyUpgrade runs the upgrade effect and deducts its cost as one step.
// Nothing changes when the balance cannot cover the cost or the effect fails.
// Effects may only touch the tunables; balance, day and night bookkeeping are
// restored from the pre-purchase state.
func (e *Economy) ApplyUpgrade(u Upgrade) error {
	if e.RestBalance < u.Cost {
		return fmt.Errorf("%s costs %d, balance %d: %w", u.Name, u.Cost, e.RestBalance, ErrInsufficientFunds)
	}
	next := *e
	if u.Effect != nil {
		if err := u.Effect(&next); err != nil {
			return fmt.Errorf("apply %s: %w", u.Name, err)
		}
	}
	if err := next.validTunables(); err != nil {
		return fmt.Errorf("apply %s: %w", u.Name, err)
	}
	next.RestBalance = e.RestBalance - u.Cost
	next.UnsafeRestAccrued = e.UnsafeRestAccrued
	next.DayIndex = e.DayIndex
	next.Died = e.Died
	next.params = e.params
	*e = next
	return nil
}

func (e *Economy) validTunables() error {
	for name, v := range map[string]float64{
		"sleep_duration": e.SleepDuration,
		"comfort":        e.Comfort,
		"warmth":         e.Warmth,
		"hydration":      e.Hydration,
	} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s = %v: %w", name, v, ErrInvalidEffect)
		}
	}
	return nil
}

// BeginNight clears the per-night bookkeeping.
func (e *Economy) BeginNight() {
	e.UnsafeRestAccrued = 0
	e.Died = false
}

// CreditRest adds night earnings that are not banked yet.
func (e *Economy) CreditRest(amount float64) {
	if amount <= 0 {
		return
	}
	e.UnsafeRestAccrued += amount
}

// MarkDied flags the current night as lost.
func (e *Economy) MarkDied() { e.Died = true }

// Outcome is the result of a day-start settlement.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	}
	return "continue"
}

// Settlement reports what AdvanceDay did.
type Settlement struct {
	Outcome Outcome
	Banked  uint
}

// AdvanceDay banks the night's unsafe rest, increments the day counter and
// evaluates the run: a long enough sleep without dying wins on any day;
// otherwise passing the day limit loses.
//
// Unsafe rest is only banked once survival is confirmed. If the player died
// during the night it is forfeited, never partially credited.
func (e *Economy) AdvanceDay() Settlement {
	var s Settlement
	if !e.Died && e.UnsafeRestAccrued > 0 {
		s.Banked = uint(math.Floor(e.UnsafeRestAccrued))
		e.RestBalance += s.Banked
	}
	e.UnsafeRestAccrued = 0
	e.DayIndex++

	switch {
	case e.SleepDuration >= e.params.WinThreshold && !e.Died:
		s.Outcome = OutcomeWon
	case e.DayIndex > e.params.DayLimit:
		s.Outcome = OutcomeLost
	default:
		s.Outcome = OutcomeContinue
	}
	return s
}
