package system

import (
	"testing"

	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/entity"
	"github.com/milk9111/slingshot/prefabs"
)

type testGame struct {
	spec    *prefabs.GameSpec
	world   *ecs.World
	spawner *entity.Spawner
	physics *PhysicsSystem
	levels  *LevelSystem
	power   *PowerSystem
}

// newTestGame loads level index into a headless world.
func newTestGame(t *testing.T, index int) *testGame {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	g := &testGame{
		spec:    spec,
		world:   ecs.NewWorld(),
		spawner: &entity.Spawner{Headless: true},
	}
	g.physics = NewPhysicsSystem(spec.Physics, NewCollisionPolicy(spec.Collision), nil)
	g.levels = NewLevelSystem(g.spawner, g.physics, spec.Levels, spec.Window.Width, spec.Window.Height, nil)
	g.power = NewPowerSystem(g.spawner, g.physics, spec.Launcher.FlyHeight, nil)
	if err := g.levels.Load(g.world, index); err != nil {
		t.Fatalf("Load(%d): %v", index, err)
	}
	return g
}

func (g *testGame) level(t *testing.T) *component.Level {
	t.Helper()
	_, lvl, ok := ecs.First(g.world, component.LevelComponent.Kind())
	if !ok {
		t.Fatalf("no level state")
	}
	return lvl
}

func (g *testGame) body(t *testing.T, e ecs.Entity) *component.PhysicsBody {
	t.Helper()
	if g.physics.EnsureBody(g.world, e) == nil {
		t.Fatalf("entity %v has no body", e)
	}
	pb, _ := ecs.Get(g.world, e, component.PhysicsBodyComponent.Kind())
	return pb
}

func (g *testGame) firstDestructible(t *testing.T, kind component.DestructibleKind) ecs.Entity {
	t.Helper()
	for _, e := range ecs.Query(g.world, component.DestructibleComponent.Kind()) {
		if d, _ := ecs.Get(g.world, e, component.DestructibleComponent.Kind()); d.Kind == kind {
			return e
		}
	}
	t.Fatalf("no destructible of kind %v", kind)
	return 0
}
