package system

import "time"

// Phase defines execution ordering within a single night tick.
type Phase int

const (
	PhaseDispatch   Phase = iota // 0: deliver last tick's notifications
	PhaseSchedule                // 1: wave table activations
	PhaseSpawn                   // 2: spawners emit enemies
	PhaseSteer                   // 3: pursuit, player control, shooting
	PhasePhysics                 // 4: integrate motion, collect collision starts
	PhaseResolve                 // 5: combat outcomes
	PhaseJudge                   // 6: death predicate, clock expiry
	PhaseCleanup                 // 7: destroy queued actors, expire timed actors
)

func (p Phase) String() string {
	switch p {
	case PhaseDispatch:
		return "dispatch"
	case PhaseSchedule:
		return "schedule"
	case PhaseSpawn:
		return "spawn"
	case PhaseSteer:
		return "steer"
	case PhasePhysics:
		return "physics"
	case PhaseResolve:
		return "resolve"
	case PhaseJudge:
		return "judge"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
