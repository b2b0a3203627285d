// Package world holds the night-phase scene: every transient actor, the
// night clock and the counters summarised when the night ends.
package world

import (
	"github.com/badnight/game/internal/core/ecs"
	"github.com/badnight/game/internal/geom"
	"github.com/badnight/game/internal/physics"
)

const (
	playerMask = physics.LayerEnemy
	enemyMask  = physics.LayerPlayer | physics.LayerShot
	shotMask   = physics.LayerEnemy
)

// Scene owns all night actors. Accessed only from the game loop goroutine.
type Scene struct {
	ecs *ecs.World

	Kinds    *ecs.Store[ActorKind]
	Bodies   *ecs.Store[physics.Body]
	Players  *ecs.Store[PlayerState]
	Enemies  *ecs.Store[EnemyState]
	Spawners *ecs.Store[SpawnerState]
	Shots    *ecs.Store[ShotState]

	Stats NightStats

	player ecs.EntityID
}

func NewScene() *Scene {
	s := &Scene{
		ecs:      ecs.NewWorld(),
		Kinds:    ecs.NewStore[ActorKind](),
		Bodies:   ecs.NewStore[physics.Body](),
		Players:  ecs.NewStore[PlayerState](),
		Enemies:  ecs.NewStore[EnemyState](),
		Spawners: ecs.NewStore[SpawnerState](),
		Shots:    ecs.NewStore[ShotState](),
	}
	reg := s.ecs.Registry()
	reg.Register(s.Kinds)
	reg.Register(s.Bodies)
	reg.Register(s.Players)
	reg.Register(s.Enemies)
	reg.Register(s.Spawners)
	reg.Register(s.Shots)
	return s
}

// SpawnPlayer creates the player actor, replacing any previous one.
func (s *Scene) SpawnPlayer(pos geom.Vec2, st PlayerState) ecs.EntityID {
	if s.ecs.Alive(s.player) {
		s.Despawn(s.player)
	}
	id := s.ecs.CreateEntity()
	kind := KindPlayer
	s.Kinds.Set(id, &kind)
	s.Bodies.Set(id, &physics.Body{
		Pos:    pos,
		Radius: st.Stats.Radius,
		Layer:  physics.LayerPlayer,
		Mask:   playerMask,
	})
	s.Players.Set(id, &st)
	s.player = id
	return id
}

func (s *Scene) SpawnEnemy(pos, vel geom.Vec2, radius float64, st EnemyState) ecs.EntityID {
	id := s.ecs.CreateEntity()
	kind := KindEnemy
	s.Kinds.Set(id, &kind)
	s.Bodies.Set(id, &physics.Body{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Layer:  physics.LayerEnemy,
		Mask:   enemyMask,
	})
	s.Enemies.Set(id, &st)
	s.Stats.Spawned++
	return id
}

func (s *Scene) SpawnSpawner(st SpawnerState) ecs.EntityID {
	id := s.ecs.CreateEntity()
	kind := KindSpawner
	s.Kinds.Set(id, &kind)
	s.Spawners.Set(id, &st)
	s.Stats.Spawners++
	return id
}

func (s *Scene) SpawnShot(pos, vel geom.Vec2, radius, expiresAt float64) ecs.EntityID {
	id := s.ecs.CreateEntity()
	kind := KindShot
	s.Kinds.Set(id, &kind)
	s.Bodies.Set(id, &physics.Body{
		Pos:    pos,
		Vel:    vel,
		Radius: radius,
		Layer:  physics.LayerShot,
		Mask:   shotMask,
	})
	s.Shots.Set(id, &ShotState{ExpiresAt: expiresAt})
	s.Stats.Shots++
	return id
}

// Despawn destroys an actor now. Stale IDs are a no-op and report false.
func (s *Scene) Despawn(id ecs.EntityID) bool {
	if id == s.player {
		s.player = 0
	}
	return s.ecs.Destroy(id)
}

// QueueDespawn marks an actor for the end-of-tick flush.
func (s *Scene) QueueDespawn(id ecs.EntityID) { s.ecs.MarkForDestruction(id) }

// Flush destroys every queued actor and returns how many died.
func (s *Scene) Flush() int {
	if s.ecs.Pending(s.player) {
		s.player = 0
	}
	return s.ecs.FlushDestroyQueue()
}

// Kind resolves an actor's kind; false for stale IDs.
func (s *Scene) Kind(id ecs.EntityID) (ActorKind, bool) {
	if !s.ecs.Alive(id) {
		return 0, false
	}
	k, ok := s.Kinds.Get(id)
	if !ok {
		return 0, false
	}
	return *k, true
}

func (s *Scene) Alive(id ecs.EntityID) bool { return s.ecs.Alive(id) }

// Player returns the live player actor, if any.
func (s *Scene) Player() (ecs.EntityID, *PlayerState, *physics.Body, bool) {
	if s.player.IsZero() || !s.ecs.Alive(s.player) {
		return 0, nil, nil, false
	}
	st, ok := s.Players.Get(s.player)
	if !ok {
		return 0, nil, nil, false
	}
	body, ok := s.Bodies.Get(s.player)
	if !ok {
		return 0, nil, nil, false
	}
	return s.player, st, body, true
}

// Live returns the number of actors in the scene.
func (s *Scene) Live() int { return s.ecs.Live() }

// Teardown destroys every actor and clears the night counters. IDs handed
// out before the call never resolve again.
func (s *Scene) Teardown() {
	s.ecs.DestroyAll()
	s.player = 0
	s.Stats = NightStats{}
}
