package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

const (
	collisionTypeProjectile cp.CollisionType = iota + 1
	collisionTypeTarget
	collisionTypeObstacle
	collisionTypeGround
	collisionTypeScenery
)

// groundHalfLength is half the length of the ground segment. It only has to
// outrun anything a launch can reach.
const groundHalfLength = 100000

type PhysicsSystem struct {
	space  *cp.Space
	cfg    prefabs.PhysicsSpec
	policy CollisionPolicy
	log    *zap.Logger
	ground *cp.Shape

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity

	pending    []ecs.Entity
	pendingSet map[ecs.Entity]struct{}
}

type bodyInfo struct {
	body         *cp.Body
	shape        *cp.Shape
	static       bool
	destructible bool
}

func NewPhysicsSystem(cfg prefabs.PhysicsSpec, policy CollisionPolicy, log *zap.Logger) *PhysicsSystem {
	ps := &PhysicsSystem{
		space:      cp.NewSpace(),
		policy:     policy,
		log:        common.OrNop(log),
		entities:   make(map[ecs.Entity]*bodyInfo),
		shapes:     make(map[*cp.Shape]ecs.Entity),
		pendingSet: make(map[ecs.Entity]struct{}),
	}
	ps.ApplyTuning(cfg)

	ps.ground = cp.NewSegment(ps.space.StaticBody,
		cp.Vector{X: -groundHalfLength, Y: cfg.GroundY},
		cp.Vector{X: groundHalfLength, Y: cfg.GroundY}, 0)
	ps.ground.SetFriction(cfg.GroundFriction)
	ps.ground.SetCollisionType(collisionTypeGround)
	ps.space.AddShape(ps.ground)

	ps.registerHandlers()
	return ps
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// ApplyTuning updates gravity, step and solver iterations. The ground stays
// where it was created.
func (ps *PhysicsSystem) ApplyTuning(cfg prefabs.PhysicsSpec) {
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = 1.0 / 60.0
	}
	if cfg.Iterations <= 0 {
		cfg.Iterations = 10
	}
	ps.cfg = cfg
	ps.space.Iterations = uint(cfg.Iterations)
	ps.space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
}

func (ps *PhysicsSystem) SetPolicy(policy CollisionPolicy) {
	ps.policy = policy
}

func (ps *PhysicsSystem) Policy() CollisionPolicy {
	return ps.policy
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncEntities(w)

	ps.space.Step(ps.cfg.TimeStep)

	ps.flushRemovals(w)
	ps.syncTransforms(w)
}

// registerHandlers hooks post-solve for every pair of collision types that
// involves something destructible.
func (ps *PhysicsSystem) registerHandlers() {
	all := []cp.CollisionType{
		collisionTypeProjectile,
		collisionTypeTarget,
		collisionTypeObstacle,
		collisionTypeGround,
		collisionTypeScenery,
	}
	for _, a := range []cp.CollisionType{collisionTypeTarget, collisionTypeObstacle} {
		for _, b := range all {
			handler := ps.space.NewCollisionHandler(a, b)
			// cp hands post-solve the handler itself as user data, not
			// handler.UserData, so the system is captured instead.
			handler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
				shapeA, shapeB := arb.Shapes()
				ps.resolveContact(shapeA, shapeB, arb.TotalImpulse().Length())
			}
		}
	}
}

// resolveContact applies the collision policy to one contact. Removal is only
// queued; the space cannot be modified while it is stepping.
func (ps *PhysicsSystem) resolveContact(a, b *cp.Shape, magnitude float64) ContactOutcome {
	outcome := ps.policy.Classify(magnitude)
	switch outcome {
	case ContactIgnored:
	case ContactObserved:
		ps.log.Debug("contact", zap.Float64("impulse", magnitude))
	case ContactDestructive:
		for _, shape := range []*cp.Shape{a, b} {
			e, ok := ps.shapes[shape]
			if !ok {
				continue
			}
			if info := ps.entities[e]; info != nil && info.destructible {
				ps.QueueRemoval(e)
			}
		}
		ps.log.Debug("destructive contact", zap.Float64("impulse", magnitude))
	}
	return outcome
}

// QueueRemoval schedules e for removal after the current step. Queuing the
// same entity twice is a no-op.
func (ps *PhysicsSystem) QueueRemoval(e ecs.Entity) {
	if _, ok := ps.pendingSet[e]; ok {
		return
	}
	ps.pendingSet[e] = struct{}{}
	ps.pending = append(ps.pending, e)
}

func (ps *PhysicsSystem) flushRemovals(w *ecs.World) {
	if len(ps.pending) == 0 {
		return
	}
	pending := ps.pending
	ps.pending = nil
	clear(ps.pendingSet)

	_, level, hasLevel := ecs.First(w, component.LevelComponent.Kind())
	for _, e := range pending {
		destructible := ecs.Has(w, e, component.DestructibleComponent.Kind())
		if !ps.Remove(w, e) || !destructible {
			continue
		}
		if hasLevel && level.Obstacles > 0 {
			level.Obstacles--
			ps.log.Debug("obstacle removed", zap.Stringer("entity", e), zap.Int("remaining", level.Obstacles))
		}
	}
}

// Remove takes e's shape and body out of the space and destroys the entity.
// It reports whether anything was removed, so a second call is a no-op.
func (ps *PhysicsSystem) Remove(w *ecs.World, e ecs.Entity) bool {
	removed := false
	if info, ok := ps.entities[e]; ok {
		ps.detach(info)
		delete(ps.entities, e)
		removed = true
	}
	if ecs.DestroyEntity(w, e) {
		removed = true
	}
	return removed
}

func (ps *PhysicsSystem) detach(info *bodyInfo) {
	if info.shape != nil {
		if ps.space.ContainsShape(info.shape) {
			ps.space.RemoveShape(info.shape)
		}
		delete(ps.shapes, info.shape)
	}
	if info.body != nil && !info.static && ps.space.ContainsBody(info.body) {
		ps.space.RemoveBody(info.body)
	}
}

// EnsureBody creates the cp body for e now instead of at the next update.
func (ps *PhysicsSystem) EnsureBody(w *ecs.World, e ecs.Entity) *cp.Body {
	if info, ok := ps.entities[e]; ok {
		return info.body
	}
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok {
		return nil
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil
	}
	ps.attach(w, e, t, pb)
	return pb.Body
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		ps.attach(w, e, t, pb)
	})
}

func (ps *PhysicsSystem) attach(w *ecs.World, e ecs.Entity, t *component.Transform, pb *component.PhysicsBody) {
	info := ps.createBodyInfo(t, pb, ps.collisionTypeFor(w, e))
	info.destructible = ecs.Has(w, e, component.DestructibleComponent.Kind())

	ps.entities[e] = info
	ps.shapes[info.shape] = e
	pb.Body = info.body
	pb.Shape = info.shape
}

func (ps *PhysicsSystem) collisionTypeFor(w *ecs.World, e ecs.Entity) cp.CollisionType {
	if ecs.Has(w, e, component.ProjectileComponent.Kind()) {
		return collisionTypeProjectile
	}
	if d, ok := ecs.Get(w, e, component.DestructibleComponent.Kind()); ok {
		if d.Kind == component.DestructibleTarget {
			return collisionTypeTarget
		}
		return collisionTypeObstacle
	}
	return collisionTypeScenery
}

func (ps *PhysicsSystem) createBodyInfo(t *component.Transform, pb *component.PhysicsBody, kind cp.CollisionType) *bodyInfo {
	info := &bodyInfo{static: pb.Static}

	if pb.Static {
		var shape *cp.Shape
		if pb.Radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, pb.Radius, cp.Vector{X: t.X, Y: t.Y})
		} else {
			bb := cp.BB{
				L: t.X - pb.Width/2,
				B: t.Y - pb.Height/2,
				R: t.X + pb.Width/2,
				T: t.Y + pb.Height/2,
			}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(pb.Friction)
		shape.SetElasticity(pb.Elasticity)
		shape.SetCollisionType(kind)
		shape.UserData = kind
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.shape = shape
		return info
	}

	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	if pb.Radius > 0 {
		moment = cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, pb.Width, pb.Height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)

	var shape *cp.Shape
	if pb.Radius > 0 {
		shape = cp.NewCircle(body, pb.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, pb.Width, pb.Height, 0)
	}
	shape.SetFriction(pb.Friction)
	shape.SetElasticity(pb.Elasticity)
	shape.SetCollisionType(kind)
	shape.UserData = kind

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	if pb.InitialVelocity != (cp.Vector{}) {
		body.SetVelocityVector(pb.InitialVelocity)
		pb.InitialVelocity = cp.Vector{}
	}
	if pb.InitialImpulse != (cp.Vector{}) {
		body.ApplyImpulseAtLocalPoint(pb.InitialImpulse, cp.Vector{})
		pb.InitialImpulse = cp.Vector{}
	}

	info.body = body
	info.shape = shape
	return info
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Static || pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}

// cleanupEntities drops bodies whose entity was destroyed or lost its
// PhysicsBody outside of Remove.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.detach(info)
		delete(ps.entities, e)
	}
}
