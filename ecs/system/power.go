package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/entity"
	"go.uber.org/zap"
)

// PowerSystem fires the one-shot ability of projectiles that carry a
// PowerRequest.
type PowerSystem struct {
	spawner   *entity.Spawner
	physics   *PhysicsSystem
	flyHeight float64
	log       *zap.Logger
}

func NewPowerSystem(spawner *entity.Spawner, physics *PhysicsSystem, flyHeight float64, log *zap.Logger) *PowerSystem {
	return &PowerSystem{spawner: spawner, physics: physics, flyHeight: flyHeight, log: common.OrNop(log)}
}

func (s *PowerSystem) SetFlyHeight(h float64) {
	s.flyHeight = h
}

func (s *PowerSystem) Update(w *ecs.World) {
	for _, e := range ecs.Query(w, component.PowerRequestComponent.Kind()) {
		ecs.Remove(w, e, component.PowerRequestComponent.Kind())
		s.Apply(w, e)
	}
}

// Apply fires e's power. It returns false and changes nothing when the
// projectile has already used its power, has no body yet or is not airborne.
func (s *PowerSystem) Apply(w *ecs.World, e ecs.Entity) bool {
	proj, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
	if !ok || proj.Triggered {
		return false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || !Airborne(t, s.flyHeight) {
		return false
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return false
	}

	switch proj.Power {
	case component.PowerBoost:
		s.boost(e, proj, pb.Body)
	case component.PowerSplit:
		if err := s.split(w, e, proj, pb.Body); err != nil {
			s.log.Error("split failed", zap.Stringer("entity", e), zap.Error(err))
			return false
		}
	default:
		return false
	}

	proj.Triggered = true
	return true
}

func (s *PowerSystem) boost(e ecs.Entity, proj *component.Projectile, body *cp.Body) {
	v := body.Velocity()
	speed := v.Length()
	magnitude := body.Mass() * proj.BoostMultiplier * speed
	impulse := cp.ForAngle(v.ToAngle()).Mult(magnitude)
	body.ApplyImpulseAtWorldPoint(impulse, body.Position())
	s.log.Debug("boost", zap.Stringer("entity", e), zap.Float64("impulse", magnitude))
}

// split spawns two fragments of the same prefab, rotated by the split angle
// either side of the current heading at the current speed.
func (s *PowerSystem) split(w *ecs.World, e ecs.Entity, proj *component.Projectile, body *cp.Body) error {
	v := body.Velocity()
	speed := v.Length()
	heading := v.ToAngle()
	pos := body.Position()
	at := common.Point2D{X: pos.X, Y: pos.Y}

	for _, angle := range []float64{heading + proj.SplitAngle, heading - proj.SplitAngle} {
		child, err := s.spawner.SpawnFragment(w, proj.Prefab, at, cp.ForAngle(angle).Mult(speed))
		if err != nil {
			return err
		}
		if s.physics != nil {
			s.physics.EnsureBody(w, child)
		}
	}
	s.log.Debug("split", zap.Stringer("entity", e), zap.Float64("speed", speed))
	return nil
}

// Airborne reports whether an entity is above the fly height.
func Airborne(t *component.Transform, flyHeight float64) bool {
	return t != nil && t.Y > flyHeight
}
