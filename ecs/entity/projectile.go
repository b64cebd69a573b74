package entity

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"go.uber.org/zap"
)

// SpawnProjectile places a bird at pos and arms it with the launch impulse
// described by iv. The pull length is clamped to the bird's max impulse and
// scaled by its power multiplier.
func (s *Spawner) SpawnProjectile(w *ecs.World, prefab string, pos common.Point2D, iv common.ImpulseVector) (ecs.Entity, error) {
	e, proj, body, err := s.buildProjectile(w, prefab, pos)
	if err != nil {
		return 0, err
	}

	magnitude := math.Min(proj.MaxImpulse, iv.Impulse) * proj.PowerMultiplier
	body.InitialImpulse = cp.ForAngle(iv.Angle).Mult(magnitude)

	s.logger().Debug("projectile spawned",
		zap.Stringer("entity", e),
		zap.String("prefab", prefab),
		zap.Float64("angle", iv.Angle),
		zap.Float64("impulse", magnitude),
	)
	return e, nil
}

// SpawnFragment places a bird that starts with the given velocity instead of
// an impulse. Fragments never carry an unused power.
func (s *Spawner) SpawnFragment(w *ecs.World, prefab string, pos common.Point2D, velocity cp.Vector) (ecs.Entity, error) {
	e, proj, body, err := s.buildProjectile(w, prefab, pos)
	if err != nil {
		return 0, err
	}
	proj.Triggered = true
	body.InitialVelocity = velocity
	return e, nil
}

func (s *Spawner) buildProjectile(w *ecs.World, prefab string, pos common.Point2D) (ecs.Entity, *component.Projectile, *component.PhysicsBody, error) {
	e, err := s.Build(w, prefab)
	if err != nil {
		return 0, nil, nil, err
	}

	proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, nil, nil, fmt.Errorf("spawn projectile: prefab %q has no projectile component", prefab)
	}
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Static {
		ecs.DestroyEntity(w, e)
		return 0, nil, nil, fmt.Errorf("spawn projectile: prefab %q needs a dynamic physics body", prefab)
	}

	if err := SetEntityTransform(w, e, pos.X, pos.Y, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, nil, nil, err
	}
	return e, proj, body, nil
}
