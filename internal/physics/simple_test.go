package physics

import (
	"testing"

	"github.com/badnight/game/internal/core/ecs"
	"github.com/badnight/game/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enemyAt(x, y float64) *Body {
	return &Body{Pos: geom.V(x, y), Radius: 5, Layer: LayerEnemy, Mask: LayerPlayer | LayerShot}
}

func shotAt(x, y float64) *Body {
	return &Body{Pos: geom.V(x, y), Radius: 2, Layer: LayerShot}
}

func TestStep_Integrates(t *testing.T) {
	store := ecs.NewStore[Body]()
	id := ecs.NewEntityID(0, 1)
	store.Set(id, &Body{Vel: geom.V(10, -4)})

	NewSimple().Step(store, 0.5)
	b, _ := store.Get(id)
	assert.Equal(t, geom.V(5, -2), b.Pos)
}

func TestStep_ReportsStartOnce(t *testing.T) {
	store := ecs.NewStore[Body]()
	e, s := ecs.NewEntityID(0, 1), ecs.NewEntityID(1, 1)
	store.Set(e, enemyAt(0, 0))
	store.Set(s, shotAt(3, 0))

	eng := NewSimple()
	got := eng.Step(store, 0)
	require.Len(t, got, 1)
	assert.Equal(t, Contact{A: e, B: s}, got[0])
	assert.True(t, eng.Touching(s, e))

	assert.Empty(t, eng.Step(store, 0), "still touching is not a new start")

	sb, _ := store.Get(s)
	sb.Pos = geom.V(100, 0)
	assert.Empty(t, eng.Step(store, 0))
	sb.Pos = geom.V(1, 0)
	assert.Len(t, eng.Step(store, 0), 1, "re-entry after separation starts again")
}

func TestStep_RespectsMasks(t *testing.T) {
	store := ecs.NewStore[Body]()
	store.Set(ecs.NewEntityID(0, 1), enemyAt(0, 0))
	store.Set(ecs.NewEntityID(1, 1), enemyAt(1, 0))
	store.Set(ecs.NewEntityID(2, 1), shotAt(40, 0))
	store.Set(ecs.NewEntityID(3, 1), shotAt(40, 1))

	assert.Empty(t, NewSimple().Step(store, 0), "enemy/enemy and shot/shot never collide")
}

func TestStep_RemovedBodyDropsPair(t *testing.T) {
	store := ecs.NewStore[Body]()
	e, s := ecs.NewEntityID(0, 1), ecs.NewEntityID(1, 1)
	store.Set(e, enemyAt(0, 0))
	store.Set(s, shotAt(0, 0))

	eng := NewSimple()
	require.Len(t, eng.Step(store, 0), 1)
	store.Remove(s)
	eng.Step(store, 0)
	assert.False(t, eng.Touching(e, s))
}

func TestContactOther(t *testing.T) {
	c := makeContact(ecs.NewEntityID(4, 1), ecs.NewEntityID(2, 1))
	assert.Equal(t, ecs.NewEntityID(2, 1), c.A)

	other, ok := c.Other(ecs.NewEntityID(4, 1))
	assert.True(t, ok)
	assert.Equal(t, ecs.NewEntityID(2, 1), other)

	_, ok = c.Other(ecs.NewEntityID(9, 1))
	assert.False(t, ok)
}

func TestStep_FindsPairsAcrossCellBorders(t *testing.T) {
	store := ecs.NewStore[Body]()
	// straddle the x=0 and y=0 cell edges
	store.Set(ecs.NewEntityID(0, 1), enemyAt(-1, -1))
	store.Set(ecs.NewEntityID(1, 1), shotAt(1, 1))
	store.Set(ecs.NewEntityID(2, 1), enemyAt(500, 500))

	got := NewSimple().Step(store, 0)
	require.Len(t, got, 1)
	assert.Equal(t, ecs.NewEntityID(0, 1), got[0].A)
}

func TestStep_SortedStarts(t *testing.T) {
	store := ecs.NewStore[Body]()
	for i := uint32(0); i < 6; i += 2 {
		store.Set(ecs.NewEntityID(i, 1), enemyAt(float64(i)*100, 0))
		store.Set(ecs.NewEntityID(i+1, 1), shotAt(float64(i)*100, 0))
	}
	got := NewSimple().Step(store, 0)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].A, got[i].A)
	}
}
