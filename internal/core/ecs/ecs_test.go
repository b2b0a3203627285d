package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct{ n int }

func TestEntityPool_RecyclesWithNewGeneration(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	assert.Equal(t, uint32(0), a.Index())
	assert.Equal(t, uint32(1), a.Generation())
	assert.False(t, a.IsZero())

	require.True(t, p.Destroy(a))
	assert.False(t, p.Destroy(a), "double destroy")
	assert.False(t, p.Alive(a))

	b := p.Create()
	assert.Equal(t, a.Index(), b.Index())
	assert.Equal(t, uint32(2), b.Generation())
	assert.True(t, p.Alive(b))
	assert.False(t, p.Alive(a))
	assert.Equal(t, 1, p.Live())
}

func TestEntityPool_UnknownID(t *testing.T) {
	p := NewEntityPool()
	assert.False(t, p.Alive(NewEntityID(7, 1)))
	assert.False(t, p.Destroy(NewEntityID(7, 1)))
}

func TestStore_EachVisitsInIDOrder(t *testing.T) {
	s := NewStore[tag]()
	ids := []EntityID{NewEntityID(3, 1), NewEntityID(1, 1), NewEntityID(2, 4)}
	for i, id := range ids {
		s.Set(id, &tag{n: i})
	}
	var got []EntityID
	s.Each(func(id EntityID, _ *tag) {
		got = append(got, id)
		s.Remove(id)
	})
	assert.Equal(t, []EntityID{NewEntityID(1, 1), NewEntityID(3, 1), NewEntityID(2, 4)}, got)
	assert.Zero(t, s.Len())
}

func TestEach2_Intersection(t *testing.T) {
	a := NewStore[tag]()
	b := NewStore[int]()
	x, y, z := NewEntityID(1, 1), NewEntityID(2, 1), NewEntityID(3, 1)
	a.Set(x, &tag{})
	a.Set(y, &tag{})
	a.Set(z, &tag{})
	one, two := 1, 2
	b.Set(y, &one)
	b.Set(z, &two)

	sum := 0
	Each2(a, b, func(_ EntityID, _ *tag, v *int) { sum += *v })
	assert.Equal(t, 3, sum)
}

func TestWorld_DeferredDestruction(t *testing.T) {
	w := NewWorld()
	tags := NewStore[tag]()
	w.Registry().Register(tags)

	id := w.CreateEntity()
	tags.Set(id, &tag{n: 1})
	w.MarkForDestruction(id)
	w.MarkForDestruction(id)
	assert.True(t, w.Pending(id))
	assert.True(t, w.Alive(id), "alive until flushed")

	assert.Equal(t, 1, w.FlushDestroyQueue())
	assert.False(t, w.Alive(id))
	assert.False(t, tags.Has(id))
	assert.False(t, w.Pending(id))
	assert.Zero(t, w.FlushDestroyQueue())
}

func TestWorld_DestroyAll(t *testing.T) {
	w := NewWorld()
	tags := NewStore[tag]()
	w.Registry().Register(tags)

	var ids []EntityID
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		tags.Set(id, &tag{n: i})
		ids = append(ids, id)
	}
	w.MarkForDestruction(ids[0])
	w.DestroyAll()

	assert.Zero(t, w.Live())
	assert.Zero(t, tags.Len())
	for _, id := range ids {
		assert.False(t, w.Alive(id))
	}
	assert.Zero(t, w.FlushDestroyQueue())

	fresh := w.CreateEntity()
	assert.NotContains(t, ids, fresh)
}

func TestStore_OrderCachedUntilKeysChange(t *testing.T) {
	s := NewStore[tag]()
	for i := uint32(1); i <= 4; i++ {
		s.Set(NewEntityID(i, 1), &tag{n: int(i)})
	}
	first := s.sorted()
	again := s.sorted()
	require.Len(t, again, 4)
	assert.Same(t, &first[0], &again[0])

	s.Set(NewEntityID(2, 1), &tag{n: 20}) // existing key
	assert.Same(t, &first[0], &s.sorted()[0])

	s.Remove(NewEntityID(1, 1))
	assert.Equal(t, []EntityID{NewEntityID(2, 1), NewEntityID(3, 1), NewEntityID(4, 1)}, s.IDs())

	noop := func(EntityID, *tag) {}
	allocs := testing.AllocsPerRun(50, func() { s.Each(noop) })
	assert.Zero(t, allocs)
}

func TestStore_RemoveDuringNestedWalk(t *testing.T) {
	s := NewStore[tag]()
	for i := uint32(1); i <= 3; i++ {
		s.Set(NewEntityID(i, 1), &tag{n: int(i)})
	}
	var outer, inner []int
	s.Each(func(id EntityID, c *tag) {
		outer = append(outer, c.n)
		if c.n == 1 {
			s.Remove(NewEntityID(3, 1))
			s.Each(func(_ EntityID, c *tag) { inner = append(inner, c.n) })
		}
	})
	assert.Equal(t, []int{1, 2}, outer)
	assert.Equal(t, []int{1, 2}, inner)
	assert.Equal(t, 2, s.Len())
}
