// Package game runs a whole play session: the day/night phase machine, the
// night systems and the day-start settlement.
package game

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("illegal phase transition")
	ErrRunOver           = errors.New("run is over")
	ErrWrongPhase        = errors.New("not available in this phase")
	ErrDayNotStarted     = errors.New("day settlement has not run yet")
)

// Phase is the top-level game mode.
type Phase int

const (
	PhaseDay Phase = iota
	PhaseNight
	PhaseGameOver
	PhaseGameWon
)

func (p Phase) String() string {
	switch p {
	case PhaseDay:
		return "day"
	case PhaseNight:
		return "night"
	case PhaseGameOver:
		return "game_over"
	case PhaseGameWon:
		return "game_won"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Terminal reports whether the run has ended.
func (p Phase) Terminal() bool { return p == PhaseGameOver || p == PhaseGameWon }

var legalTransitions = map[Phase][]Phase{
	PhaseDay:      {PhaseNight, PhaseGameOver, PhaseGameWon},
	PhaseNight:    {PhaseDay},
	PhaseGameOver: {PhaseDay},
	PhaseGameWon:  {PhaseDay},
}

func legal(from, to Phase) bool {
	for _, p := range legalTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Transition is a committed or pending phase change.
type Transition struct {
	From   Phase
	To     Phase
	Reason string
}

// Machine tracks the current phase. Requests made during a tick are held
// until Commit; the first legal request of a tick wins and later ones are
// dropped, so at most one transition happens per tick.
type Machine struct {
	current    Phase
	pending    Transition
	hasPending bool
}

func NewMachine() *Machine { return &Machine{current: PhaseDay} }

func (m *Machine) Current() Phase { return m.current }

// Request records a transition for the next Commit. It reports whether this
// request became the pending one.
func (m *Machine) Request(to Phase, reason string) (bool, error) {
	if !legal(m.current, to) {
		return false, fmt.Errorf("%s -> %s: %w", m.current, to, ErrIllegalTransition)
	}
	if m.hasPending {
		return false, nil
	}
	m.pending = Transition{From: m.current, To: to, Reason: reason}
	m.hasPending = true
	return true, nil
}

// Pending returns the transition waiting for Commit, if any.
func (m *Machine) Pending() (Transition, bool) { return m.pending, m.hasPending }

// Commit applies the pending transition.
func (m *Machine) Commit() (Transition, bool) {
	if !m.hasPending {
		return Transition{}, false
	}
	t := m.pending
	m.current = t.To
	m.pending = Transition{}
	m.hasPending = false
	return t, true
}

// Reset returns to Day and drops any pending request.
func (m *Machine) Reset() { *m = Machine{current: PhaseDay} }
