package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
)

func TestCollisionPolicyClassify(t *testing.T) {
	p := CollisionPolicy{IgnoreBelow: 100, DestroyAbove: 1200}
	cases := []struct {
		magnitude float64
		want      ContactOutcome
	}{
		{0, ContactIgnored},
		{50, ContactIgnored},
		{99.9, ContactIgnored},
		{100, ContactObserved},
		{500, ContactObserved},
		{1200, ContactObserved},
		{1200.1, ContactDestructive},
		{1500, ContactDestructive},
	}
	for _, c := range cases {
		if got := p.Classify(c.magnitude); got != c.want {
			t.Fatalf("Classify(%v) = %v, want %v", c.magnitude, got, c.want)
		}
	}
}

func TestContactBelowThresholdKeepsObstacle(t *testing.T) {
	g := newTestGame(t, 0)
	pig := g.firstDestructible(t, component.DestructibleTarget)
	pb := g.body(t, pig)

	for _, m := range []float64{50, 500} {
		g.physics.resolveContact(pb.Shape, g.physics.ground, m)
	}
	g.physics.flushRemovals(g.world)

	if !ecs.IsAlive(g.world, pig) {
		t.Fatalf("pig removed by a soft contact")
	}
	if got := g.level(t).Obstacles; got != 3 {
		t.Fatalf("obstacles = %d, want 3", got)
	}
}

func TestHardContactRemovesObstacle(t *testing.T) {
	g := newTestGame(t, 0)
	pig := g.firstDestructible(t, component.DestructibleTarget)
	pb := g.body(t, pig)
	shape := pb.Shape

	if got := g.physics.resolveContact(shape, g.physics.ground, 1500); got != ContactDestructive {
		t.Fatalf("outcome = %v, want destructive", got)
	}
	// A second contact in the same step must not count twice.
	g.physics.resolveContact(g.physics.ground, shape, 1500)
	g.physics.flushRemovals(g.world)

	if ecs.IsAlive(g.world, pig) {
		t.Fatalf("pig still alive after a hard contact")
	}
	if g.physics.Space().ContainsShape(shape) {
		t.Fatalf("pig shape still in space")
	}
	if got := g.level(t).Obstacles; got != 2 {
		t.Fatalf("obstacles = %d, want 2", got)
	}

	if g.physics.Remove(g.world, pig) {
		t.Fatalf("second Remove should be a no-op")
	}
	if got := g.level(t).Obstacles; got != 2 {
		t.Fatalf("obstacles after double removal = %d, want 2", got)
	}
}

func TestHardContactSparesProjectile(t *testing.T) {
	g := newTestGame(t, 0)
	column := g.firstDestructible(t, component.DestructibleObstacle)

	end := common.Point2D{X: 100, Y: 120}
	bird, err := g.spawner.SpawnProjectile(g.world, "red", end, common.NewImpulseVector(common.Point2D{X: 160, Y: 120}, end))
	if err != nil {
		t.Fatalf("SpawnProjectile: %v", err)
	}

	g.physics.resolveContact(g.body(t, bird).Shape, g.body(t, column).Shape, 5000)
	g.physics.flushRemovals(g.world)

	if !ecs.IsAlive(g.world, bird) {
		t.Fatalf("projectile removed by a hard contact")
	}
	if ecs.IsAlive(g.world, column) {
		t.Fatalf("column survived a hard contact")
	}
	if got := g.level(t).Obstacles; got != 2 {
		t.Fatalf("obstacles = %d, want 2", got)
	}
}

func TestRemoveProjectileKeepsCounter(t *testing.T) {
	g := newTestGame(t, 0)
	end := common.Point2D{X: 100, Y: 120}
	bird, err := g.spawner.SpawnProjectile(g.world, "red", end, common.NewImpulseVector(common.Point2D{X: 160, Y: 120}, end))
	if err != nil {
		t.Fatalf("SpawnProjectile: %v", err)
	}
	g.body(t, bird)

	g.physics.QueueRemoval(bird)
	g.physics.flushRemovals(g.world)

	if ecs.IsAlive(g.world, bird) {
		t.Fatalf("queued projectile still alive")
	}
	if got := g.level(t).Obstacles; got != 3 {
		t.Fatalf("obstacles = %d, want 3", got)
	}
}

func TestRestingLayoutSurvivesSteps(t *testing.T) {
	g := newTestGame(t, 0)
	for i := 0; i < 30; i++ {
		g.physics.Update(g.world)
	}
	if got := g.level(t).Obstacles; got != 3 {
		t.Fatalf("obstacles after settling = %d, want 3", got)
	}
	if !g.physics.Space().ContainsShape(g.body(t, g.firstDestructible(t, component.DestructibleTarget)).Shape) {
		t.Fatalf("resting pig shape left the space")
	}
	if got := ecs.Count(g.world, component.DestructibleComponent.Kind()); got != 3 {
		t.Fatalf("destructibles after settling = %d, want 3", got)
	}
}

func TestPhysicsSyncsTransform(t *testing.T) {
	g := newTestGame(t, 0)
	start := common.Point2D{X: 300, Y: 400}
	bird, err := g.spawner.SpawnFragment(g.world, "red", start, cp.Vector{})
	if err != nil {
		t.Fatalf("SpawnFragment: %v", err)
	}

	for i := 0; i < 10; i++ {
		g.physics.Update(g.world)
	}

	tr, _ := ecs.Get(g.world, bird, component.TransformComponent.Kind())
	pos := g.body(t, bird).Body.Position()
	if tr.X != pos.X || tr.Y != pos.Y {
		t.Fatalf("transform (%v, %v) does not mirror body %v", tr.X, tr.Y, pos)
	}
	if tr.Y >= start.Y {
		t.Fatalf("bird did not fall: y = %v", tr.Y)
	}
}

func TestBirdThroughPigViaStep(t *testing.T) {
	g := newTestGame(t, 0)
	pig := g.firstDestructible(t, component.DestructibleTarget)
	pigShape := g.body(t, pig).Shape
	pigPos, _ := ecs.Get(g.world, pig, component.TransformComponent.Kind())

	start := common.Point2D{X: pigPos.X - 60, Y: pigPos.Y}
	bird, err := g.spawner.SpawnFragment(g.world, "red", start, cp.Vector{X: 2500})
	if err != nil {
		t.Fatalf("SpawnFragment: %v", err)
	}

	for i := 0; i < 60 && ecs.IsAlive(g.world, pig); i++ {
		g.physics.Update(g.world)
	}

	if ecs.IsAlive(g.world, pig) {
		t.Fatalf("pig survived a direct hit")
	}
	if g.physics.Space().ContainsShape(pigShape) {
		t.Fatalf("pig shape still in space")
	}
	if !ecs.IsAlive(g.world, bird) {
		t.Fatalf("bird removed by its own hit")
	}
	lvl := g.level(t)
	if got := ecs.Count(g.world, component.DestructibleComponent.Kind()); lvl.Obstacles != got {
		t.Fatalf("obstacles = %d, live destructibles = %d", lvl.Obstacles, got)
	}
	if lvl.Obstacles >= 3 {
		t.Fatalf("obstacles = %d, want fewer than 3", lvl.Obstacles)
	}
}
