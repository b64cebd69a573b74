package entity

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/render"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

// Spawner builds entities from yaml prefabs. A headless spawner skips texture
// loading so worlds can run without a graphics context.
type Spawner struct {
	Headless bool
	Log      *zap.Logger
}

type buildContext struct {
	PrefabPath string
	Headless   bool
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"projectile":   addProjectile,
	"destructible": addDestructible,
	"level_object": addLevelObject,
	"physics_body": addPhysicsBody,
}

var componentBuildOrder = []string{
	"transform",
	"sprite",
	"render_layer",
	"projectile",
	"destructible",
	"level_object",
	"physics_body",
}

func (s *Spawner) logger() *zap.Logger {
	if s == nil {
		return zap.NewNop()
	}
	return common.OrNop(s.Log)
}

// Build creates an entity from the named prefab.
func (s *Spawner) Build(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Headless: s != nil && s.Headless}

	remaining := make(map[string]any, len(spec.Components))
	for name, raw := range spec.Components {
		remaining[name] = raw
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(names, ", "))
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	t := &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	}
	if t.ScaleX == 0 {
		t.ScaleX = 1
	}
	if t.ScaleY == 0 {
		t.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}
	if spec.Image == "" {
		return fmt.Errorf("sprite: missing image")
	}

	s := &component.Sprite{Key: spec.Image, OriginX: spec.OriginX, OriginY: spec.OriginY}
	if !ctx.Headless {
		img, err := render.LoadImage(spec.Image)
		if err != nil {
			return err
		}
		s.Image = img
		if spec.CenterOriginIfZero && s.OriginX == 0 && s.OriginY == 0 {
			b := img.Bounds()
			s.OriginX = float64(b.Dx()) / 2
			s.OriginY = float64(b.Dy()) / 2
		}
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), s)
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	index := spec.Index
	if spec.Layer != "" {
		if index, err = component.ParseLayer(spec.Layer); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: index})
}

func addProjectile(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ProjectileComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projectile spec: %w", err)
	}
	power, ok := component.ParsePowerKind(spec.Power)
	if !ok {
		return fmt.Errorf("projectile: unknown power %q", spec.Power)
	}

	p := &component.Projectile{
		Prefab:          ctx.PrefabPath,
		Power:           power,
		MaxImpulse:      spec.MaxImpulse,
		PowerMultiplier: spec.PowerMultiplier,
		BoostMultiplier: spec.BoostMultiplier,
		SplitAngle:      spec.SplitAngleDegrees * math.Pi / 180,
	}
	if p.MaxImpulse <= 0 {
		p.MaxImpulse = 100
	}
	if p.PowerMultiplier <= 0 {
		p.PowerMultiplier = 50
	}
	if p.BoostMultiplier <= 0 {
		p.BoostMultiplier = 2
	}
	if p.SplitAngle <= 0 {
		p.SplitAngle = math.Pi / 6
	}
	return ecs.Add(w, e, component.ProjectileComponent.Kind(), p)
}

func addDestructible(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DestructibleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode destructible spec: %w", err)
	}
	d := &component.Destructible{}
	switch spec.Kind {
	case "", "obstacle":
		d.Kind = component.DestructibleObstacle
	case "target":
		d.Kind = component.DestructibleTarget
	default:
		return fmt.Errorf("destructible: unknown kind %q", spec.Kind)
	}
	return ecs.Add(w, e, component.DestructibleComponent.Kind(), d)
}

func addLevelObject(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.LevelObjectComponent.Kind(), &component.LevelObject{})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Height <= 0) {
		return fmt.Errorf("physics_body: needs a radius or a width and height")
	}
	if !spec.Static && spec.Mass <= 0 {
		return fmt.Errorf("physics_body: dynamic body needs a positive mass")
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}
