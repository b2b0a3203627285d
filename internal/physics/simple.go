package physics

import (
	"sort"

	"github.com/badnight/game/internal/core/ecs"
)

// minCellSize keeps the broadphase from degenerating when all bodies are tiny.
const minCellSize = 16

// Simple is a circle overlap engine with a uniform grid broadphase.
type Simple struct {
	touching map[Contact]struct{}
	next     map[Contact]struct{}
	started  []Contact
	ids      []ecs.EntityID
	bodies   []*Body
	grid     *grid
}

func NewSimple() *Simple {
	return &Simple{
		touching: make(map[Contact]struct{}, 64),
		next:     make(map[Contact]struct{}, 64),
		started:  make([]Contact, 0, 16),
		grid:     newGrid(),
	}
}

// Step integrates positions with explicit Euler and then collects overlaps.
// A pair is reported once when it starts overlapping and again only after it
// separated. Pairs with a destroyed member drop out on their own because they
// are no longer found in the store. Started pairs come back sorted by ID.
func (s *Simple) Step(store *ecs.Store[Body], dt float64) []Contact {
	s.ids = s.ids[:0]
	s.bodies = s.bodies[:0]
	maxRadius := 0.0
	store.Each(func(id ecs.EntityID, b *Body) {
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		s.ids = append(s.ids, id)
		s.bodies = append(s.bodies, b)
		if b.Radius > maxRadius {
			maxRadius = b.Radius
		}
	})

	s.grid.reset(max(2*maxRadius, minCellSize))
	for i, b := range s.bodies {
		s.grid.add(i, b.Pos.X, b.Pos.Y)
	}

	clear(s.next)
	s.started = s.started[:0]
	for i, a := range s.bodies {
		s.grid.nearby(a.Pos.X, a.Pos.Y, func(j int) {
			if j <= i {
				return
			}
			b := s.bodies[j]
			if !a.interacts(b) {
				return
			}
			r := a.Radius + b.Radius
			if a.Pos.Sub(b.Pos).LenSq() >= r*r {
				return
			}
			c := makeContact(s.ids[i], s.ids[j])
			s.next[c] = struct{}{}
			if _, was := s.touching[c]; !was {
				s.started = append(s.started, c)
			}
		})
	}
	sort.Slice(s.started, func(i, j int) bool {
		if s.started[i].A != s.started[j].A {
			return s.started[i].A < s.started[j].A
		}
		return s.started[i].B < s.started[j].B
	})
	s.touching, s.next = s.next, s.touching
	return s.started
}

// Touching reports whether the pair overlapped at the end of the last step.
func (s *Simple) Touching(a, b ecs.EntityID) bool {
	_, ok := s.touching[makeContact(a, b)]
	return ok
}

// Reset forgets all contact state.
func (s *Simple) Reset() {
	clear(s.touching)
	clear(s.next)
	s.started = s.started[:0]
}
