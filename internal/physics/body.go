// Package physics integrates actor motion and reports collision starts.
package physics

import (
	"github.com/badnight/game/internal/core/ecs"
	"github.com/badnight/game/internal/geom"
)

// Layer is a collision category bit.
type Layer uint8

const (
	LayerPlayer Layer = 1 << iota
	LayerEnemy
	LayerShot
)

// Body is a moving circle collider.
type Body struct {
	Pos    geom.Vec2
	Vel    geom.Vec2
	Radius float64
	Layer  Layer
	Mask   Layer // layers this body reports contacts with
}

func (b *Body) interacts(o *Body) bool {
	return b.Mask&o.Layer != 0 || o.Mask&b.Layer != 0
}

// Contact is an unordered body pair, stored with A < B.
type Contact struct {
	A, B ecs.EntityID
}

func makeContact(x, y ecs.EntityID) Contact {
	if y < x {
		x, y = y, x
	}
	return Contact{A: x, B: y}
}

// Other returns the partner of id in the pair, or false when id is in
// neither slot.
func (c Contact) Other(id ecs.EntityID) (ecs.EntityID, bool) {
	switch id {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// Engine advances bodies by dt seconds and returns the pairs that started
// touching during the step. The returned slice is only valid until the next
// call.
type Engine interface {
	Step(bodies *ecs.Store[Body], dt float64) []Contact
	Reset()
}
