package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ n int }
type pong struct{}

func TestBus_DeliversOneTickLate(t *testing.T) {
	b := NewBus()
	var got []int
	Subscribe(b, func(ev ping) { got = append(got, ev.n) })

	Emit(b, ping{1})
	Emit(b, ping{2})
	assert.Zero(t, b.DispatchAll(), "nothing in front before the swap")

	b.SwapBuffers()
	Emit(b, ping{3}) // lands in the next tick
	assert.Equal(t, 2, b.DispatchAll())
	assert.Equal(t, []int{1, 2}, got)
	assert.Zero(t, b.DispatchAll())

	assert.Equal(t, 1, b.Flush())
	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestBus_RoutesByType(t *testing.T) {
	b := NewBus()
	pings, pongs := 0, 0
	Subscribe(b, func(ping) { pings++ })
	Subscribe(b, func(pong) { pongs++ })
	Subscribe(b, func(pong) { pongs++ })

	Emit(b, ping{})
	Emit(b, pong{})
	b.Flush()
	assert.Equal(t, 1, pings)
	assert.Equal(t, 2, pongs)
}

func TestQueue_DrainOnce(t *testing.T) {
	q := NewQueue[int](2)
	q.Push(1)
	q.Push(2)
	q.Push(3)

	var got []int
	q.Drain(func(v int) {
		got = append(got, v)
		if v == 1 {
			q.Push(10)
		}
	})
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 1, q.Len(), "pushes during drain wait for the next drain")

	q.Reset()
	got = got[:0]
	q.Drain(func(v int) { got = append(got, v) })
	assert.Empty(t, got)
}
