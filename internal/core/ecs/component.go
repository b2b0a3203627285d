package ecs

import "sort"

// Removable is implemented by every component store so the Registry can drop
// an entity's data from all stores at once.
type Removable interface {
	Remove(id EntityID)
	Clear()
}

// Store is a typed map of components keyed by EntityID. The sorted ID order
// is cached and rebuilt only after the key set changes.
type Store[T any] struct {
	data   map[EntityID]*T
	order  []EntityID
	dirty  bool
	walker int // active Each/Each2 walks over order
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[EntityID]*T, 64)}
}

func (s *Store[T]) Set(id EntityID, c *T) {
	if _, ok := s.data[id]; !ok {
		s.dirty = true
	}
	s.data[id] = c
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *Store[T]) Remove(id EntityID) {
	if _, ok := s.data[id]; ok {
		delete(s.data, id)
		s.dirty = true
	}
}

func (s *Store[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *Store[T]) Len() int { return len(s.data) }

func (s *Store[T]) Clear() {
	clear(s.data)
	s.dirty = true
}

// Each visits components in ascending ID order. The callback may set or remove
// the visited entry but must not add new entities to this store.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	ids := s.begin()
	defer s.end()
	for _, id := range ids {
		if c, ok := s.data[id]; ok {
			fn(id, c)
		}
	}
}

// IDs returns a sorted copy of the stored entity IDs.
func (s *Store[T]) IDs() []EntityID {
	return append([]EntityID(nil), s.sorted()...)
}

// sorted returns the cached ID order, rebuilding it if the key set changed.
// The backing array is reused unless a walk still reads it.
func (s *Store[T]) sorted() []EntityID {
	if !s.dirty && s.order != nil {
		return s.order
	}
	var buf []EntityID
	if s.walker == 0 {
		buf = s.order[:0]
	} else {
		buf = make([]EntityID, 0, len(s.data))
	}
	for id := range s.data {
		buf = append(buf, id)
	}
	sort.Slice(buf, func(i, j int) bool { return buf[i] < buf[j] })
	s.order = buf
	s.dirty = false
	return s.order
}

func (s *Store[T]) begin() []EntityID {
	ids := s.sorted()
	s.walker++
	return ids
}

func (s *Store[T]) end() { s.walker-- }
