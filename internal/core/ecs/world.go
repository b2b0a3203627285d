package ecs

// World owns the entity pool, the component registry and a deferred
// destruction queue flushed by the cleanup system at the end of each tick.
type World struct {
	pool         *EntityPool
	registry     *Registry
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 32),
		queued:       make(map[EntityID]struct{}, 32),
	}
}

func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID { return w.pool.Create() }

func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }

// Live returns the number of entities not yet destroyed.
func (w *World) Live() int { return w.pool.Live() }

// Destroy removes the entity and its components immediately.
// Stale IDs are ignored and reported as false.
func (w *World) Destroy(id EntityID) bool {
	if !w.pool.Alive(id) {
		return false
	}
	w.registry.RemoveAll(id)
	return w.pool.Destroy(id)
}

// MarkForDestruction queues a live entity for end-of-tick cleanup.
// Queuing the same entity twice is a no-op.
func (w *World) MarkForDestruction(id EntityID) {
	if !w.pool.Alive(id) {
		return
	}
	if _, dup := w.queued[id]; dup {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending reports whether the entity is queued for destruction.
func (w *World) Pending(id EntityID) bool {
	_, ok := w.queued[id]
	return ok
}

// FlushDestroyQueue destroys every queued entity and returns how many died.
func (w *World) FlushDestroyQueue() int {
	n := 0
	for _, id := range w.destroyQueue {
		if w.Destroy(id) {
			n++
		}
	}
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
	return n
}

// DestroyAll tears down every entity and empties every store. IDs handed out
// before the call never resolve again.
func (w *World) DestroyAll() {
	w.registry.ClearAll()
	w.pool.DestroyAll()
	w.destroyQueue = w.destroyQueue[:0]
	clear(w.queued)
}
