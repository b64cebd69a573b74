package system

import (
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
)

const (
	offWorldMargin = 200
	offWorldFrames = 30
)

// TTLSystem gives projectiles that left the playfield sideways a short TTL,
// counts TTLs down and removes expired entities from the space and the world.
type TTLSystem struct {
	physics *PhysicsSystem
	width   float64
}

func NewTTLSystem(physics *PhysicsSystem, width int) *TTLSystem {
	return &TTLSystem{physics: physics, width: float64(width)}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, t *component.Transform) {
		if t.X >= -offWorldMargin && t.X <= s.width+offWorldMargin {
			return
		}
		if !ecs.Has(w, e, component.TTLComponent.Kind()) {
			_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: offWorldFrames})
		}
	})

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl.Frames > 0 {
			ttl.Frames--
			if ttl.Frames > 0 {
				return
			}
		}
		if s.physics != nil {
			s.physics.Remove(w, e)
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
