package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered notification bus. Events emitted during tick N are
// delivered to subscribers when the dispatch system runs at the start of tick
// N+1, so a subscriber never observes a half-finished tick.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, ev T) {
	t := typeKey[T]()
	b.back[t] = append(b.back[t], ev)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := typeKey[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back to front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers the front buffer to subscribers in emit order per type
// and empties it, so a second call delivers nothing.
func (b *Bus) DispatchAll() int {
	n := 0
	for t, events := range b.front {
		for _, ev := range events {
			for _, h := range b.handlers[t] {
				h(ev)
			}
			n++
		}
		b.front[t] = events[:0]
	}
	return n
}

// Flush swaps and dispatches in one step. Used when a session ends and no
// further tick will pick up the pending events.
func (b *Bus) Flush() int {
	b.SwapBuffers()
	return b.DispatchAll()
}
