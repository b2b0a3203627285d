package system

import (
	"time"

	"github.com/badnight/game/internal/core/event"
	coresys "github.com/badnight/game/internal/core/system"
	"github.com/badnight/game/internal/physics"
	"github.com/badnight/game/internal/world"
)

// PhysicsSystem moves every body and queues the collision starts for the
// combat resolver. Phase 4 (Physics).
type PhysicsSystem struct {
	scene  *world.Scene
	engine physics.Engine
	out    *event.Queue[physics.Contact]
}

func NewPhysicsSystem(scene *world.Scene, engine physics.Engine, out *event.Queue[physics.Contact]) *PhysicsSystem {
	return &PhysicsSystem{scene: scene, engine: engine, out: out}
}

func (s *PhysicsSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *PhysicsSystem) Update(dt time.Duration) {
	for _, c := range s.engine.Step(s.scene.Bodies, dt.Seconds()) {
		s.out.Push(c)
	}
}
