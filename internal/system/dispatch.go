package system

import (
	"time"

	"github.com/badnight/game/internal/core/event"
	coresys "github.com/badnight/game/internal/core/system"
)

// DispatchSystem delivers the notifications emitted during the previous tick.
// Phase 0 (Dispatch).
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseDispatch }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
