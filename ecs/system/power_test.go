package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
)

// launchAt spawns prefab at pos and forces its velocity so the test does not
// depend on the launch impulse.
func (g *testGame) launchAt(t *testing.T, prefab string, pos common.Point2D, v cp.Vector) ecs.Entity {
	t.Helper()
	e, err := g.spawner.SpawnProjectile(g.world, prefab, pos, common.ImpulseVector{Angle: 0, Impulse: 1})
	if err != nil {
		t.Fatalf("SpawnProjectile(%s): %v", prefab, err)
	}
	g.body(t, e).Body.SetVelocityVector(v)
	return e
}

func TestSplitSpawnsTwoFragments(t *testing.T) {
	g := newTestGame(t, 0)
	v := cp.Vector{X: 300, Y: 100}
	bird := g.launchAt(t, "blue", common.Point2D{X: 400, Y: 300}, v)

	if !g.power.Apply(g.world, bird) {
		t.Fatalf("split should fire on an airborne blue bird")
	}

	projectiles := ecs.Query(g.world, component.ProjectileComponent.Kind())
	if len(projectiles) != 3 {
		t.Fatalf("projectiles = %d, want 3", len(projectiles))
	}
	if !ecs.IsAlive(g.world, bird) {
		t.Fatalf("parent bird removed by split")
	}

	speed := v.Length()
	heading := v.ToAngle()
	wantAngles := map[float64]bool{heading + math.Pi/6: false, heading - math.Pi/6: false}
	for _, e := range projectiles {
		if e == bird {
			continue
		}
		p, _ := ecs.Get(g.world, e, component.ProjectileComponent.Kind())
		if !p.Triggered {
			t.Fatalf("fragment %v not triggered", e)
		}
		got := g.body(t, e).Body.Velocity()
		if math.Abs(got.Length()-speed) > 1e-6 {
			t.Fatalf("fragment speed = %v, want %v", got.Length(), speed)
		}
		matched := false
		for want := range wantAngles {
			if math.Abs(got.ToAngle()-want) < 1e-6 {
				wantAngles[want] = true
				matched = true
			}
		}
		if !matched {
			t.Fatalf("fragment heading %v not at +-30 degrees of %v", got.ToAngle(), heading)
		}
	}
	for angle, seen := range wantAngles {
		if !seen {
			t.Fatalf("no fragment at heading %v", angle)
		}
	}

	if g.power.Apply(g.world, bird) {
		t.Fatalf("second split should be a no-op")
	}
	if got := ecs.Count(g.world, component.ProjectileComponent.Kind()); got != 3 {
		t.Fatalf("projectiles after second split = %d, want 3", got)
	}
}

func TestBoostFiresOnce(t *testing.T) {
	g := newTestGame(t, 0)
	bird := g.launchAt(t, "yellow", common.Point2D{X: 400, Y: 300}, cp.Vector{X: 200, Y: 0})

	if !g.power.Apply(g.world, bird) {
		t.Fatalf("boost should fire on an airborne yellow bird")
	}
	body := g.body(t, bird).Body
	// mass * 2 * |v| along v adds 2|v| to the speed.
	if got := body.Velocity(); math.Abs(got.X-600) > 1e-6 || math.Abs(got.Y) > 1e-6 {
		t.Fatalf("velocity after boost = %v, want (600, 0)", got)
	}

	if g.power.Apply(g.world, bird) {
		t.Fatalf("second boost should be a no-op")
	}
	if got := body.Velocity(); math.Abs(got.X-600) > 1e-6 {
		t.Fatalf("velocity changed by second boost: %v", got)
	}
}

func TestPowerNoops(t *testing.T) {
	cases := []struct {
		name   string
		prefab string
		pos    common.Point2D
	}{
		{"red_has_no_power", "red", common.Point2D{X: 400, Y: 300}},
		{"blue_on_ground", "blue", common.Point2D{X: 400, Y: 50}},
		{"yellow_at_fly_height", "yellow", common.Point2D{X: 400, Y: 100}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := newTestGame(t, 0)
			v := cp.Vector{X: 100, Y: 0}
			bird := g.launchAt(t, c.prefab, c.pos, v)

			if g.power.Apply(g.world, bird) {
				t.Fatalf("power should not fire")
			}
			p, _ := ecs.Get(g.world, bird, component.ProjectileComponent.Kind())
			if p.Triggered {
				t.Fatalf("no-op marked the projectile triggered")
			}
			if got := ecs.Count(g.world, component.ProjectileComponent.Kind()); got != 1 {
				t.Fatalf("projectiles = %d, want 1", got)
			}
			if got := g.body(t, bird).Body.Velocity(); got != v {
				t.Fatalf("velocity changed to %v", got)
			}
		})
	}
}

func TestPowerRequestConsumed(t *testing.T) {
	g := newTestGame(t, 0)
	bird := g.launchAt(t, "yellow", common.Point2D{X: 400, Y: 300}, cp.Vector{X: 100, Y: 0})
	if err := ecs.Add(g.world, bird, component.PowerRequestComponent.Kind(), &component.PowerRequest{}); err != nil {
		t.Fatalf("add request: %v", err)
	}

	g.power.Update(g.world)

	if ecs.Has(g.world, bird, component.PowerRequestComponent.Kind()) {
		t.Fatalf("request not consumed")
	}
	p, _ := ecs.Get(g.world, bird, component.ProjectileComponent.Kind())
	if !p.Triggered {
		t.Fatalf("request did not fire the power")
	}
}
