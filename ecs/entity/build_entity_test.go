package entity

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
)

func TestBuildProjectilePrefabs(t *testing.T) {
	cases := []struct {
		prefab string
		power  component.PowerKind
	}{
		{"red", component.PowerNone},
		{"yellow", component.PowerBoost},
		{"blue", component.PowerSplit},
	}

	for _, c := range cases {
		t.Run(c.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			s := &Spawner{Headless: true}
			e, err := s.Build(w, c.prefab)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
			if !ok {
				t.Fatalf("missing projectile component")
			}
			if p.Power != c.power || p.Triggered {
				t.Fatalf("projectile = %+v, want power %v untriggered", p, c.power)
			}
			if p.Prefab != c.prefab {
				t.Fatalf("prefab = %q, want %q", p.Prefab, c.prefab)
			}
			if math.Abs(p.SplitAngle-math.Pi/6) > 1e-9 {
				t.Fatalf("split angle = %v, want pi/6", p.SplitAngle)
			}
			body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			if !ok || body.Mass != 5 || body.Radius != 12 {
				t.Fatalf("body = %+v, want mass 5 radius 12", body)
			}
		})
	}
}

func TestBuildUnknownPrefab(t *testing.T) {
	w := ecs.NewWorld()
	s := &Spawner{Headless: true}
	if _, err := s.Build(w, "no_such_prefab"); err == nil {
		t.Fatalf("expected error for unknown prefab")
	}
	if len(ecs.Entities(w)) != 0 {
		t.Fatalf("failed build left %d entities behind", len(ecs.Entities(w)))
	}
}

func TestBuildRenderLayers(t *testing.T) {
	cases := []struct {
		prefab string
		want   int
	}{
		{"slingshot", component.LayerScenery},
		{"column", component.LayerBlocks},
		{"pig", component.LayerBlocks},
		{"blue", component.LayerBirds},
	}

	w := ecs.NewWorld()
	s := &Spawner{Headless: true}
	for _, c := range cases {
		e, err := s.Build(w, c.prefab)
		if err != nil {
			t.Fatalf("Build(%s): %v", c.prefab, err)
		}
		layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind())
		if !ok || layer.Index != c.want {
			t.Fatalf("%s layer = %+v, want %d", c.prefab, layer, c.want)
		}
	}

	if _, err := component.ParseLayer("foreground"); err == nil {
		t.Fatalf("expected error for unknown layer name")
	}
}

func TestSpawnProjectileImpulse(t *testing.T) {
	anchor := common.Point2D{X: 160, Y: 120}

	cases := []struct {
		name string
		end  common.Point2D
		want float64
	}{
		{"short_pull", common.Point2D{X: 100, Y: 120}, 60 * 50},
		{"clamped_pull", common.Point2D{X: 0, Y: 120}, 100 * 50},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			s := &Spawner{Headless: true}
			iv := common.NewImpulseVector(anchor, c.end)
			e, err := s.SpawnProjectile(w, "red", c.end, iv)
			if err != nil {
				t.Fatalf("SpawnProjectile: %v", err)
			}

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			if tr.X != c.end.X || tr.Y != c.end.Y {
				t.Fatalf("spawned at (%v, %v), want %+v", tr.X, tr.Y, c.end)
			}

			body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
			want := cp.Vector{X: c.want, Y: 0}
			if body.InitialImpulse.Sub(want).Length() > 1e-6 {
				t.Fatalf("impulse = %v, want %v", body.InitialImpulse, want)
			}
		})
	}
}

func TestSpawnProjectileRejectsScenery(t *testing.T) {
	w := ecs.NewWorld()
	s := &Spawner{Headless: true}
	iv := common.ImpulseVector{Angle: 0, Impulse: 10}
	if _, err := s.SpawnProjectile(w, "pig", common.Point2D{X: 10, Y: 10}, iv); err == nil {
		t.Fatalf("expected error spawning a non-projectile prefab")
	}
	if len(ecs.Entities(w)) != 0 {
		t.Fatalf("rejected spawn left %d entities behind", len(ecs.Entities(w)))
	}
}

func TestSpawnFragmentIsTriggered(t *testing.T) {
	w := ecs.NewWorld()
	s := &Spawner{Headless: true}
	v := cp.Vector{X: 100, Y: 50}
	e, err := s.SpawnFragment(w, "blue", common.Point2D{X: 400, Y: 300}, v)
	if err != nil {
		t.Fatalf("SpawnFragment: %v", err)
	}
	p, _ := ecs.Get(w, e, component.ProjectileComponent.Kind())
	if !p.Triggered {
		t.Fatalf("fragment should start triggered")
	}
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.InitialVelocity != v || body.InitialImpulse != (cp.Vector{}) {
		t.Fatalf("body = %+v, want velocity %v and no impulse", body, v)
	}
}

func TestSpawnLauncher(t *testing.T) {
	spec := loadSpec(t)
	w := ecs.NewWorld()
	s := &Spawner{Headless: true}
	e, err := s.SpawnLauncher(w, spec.Launcher)
	if err != nil {
		t.Fatalf("SpawnLauncher: %v", err)
	}
	l, ok := ecs.Get(w, e, component.LauncherComponent.Kind())
	if !ok {
		t.Fatalf("missing launcher component")
	}
	if l.State != component.LaunchAiming || l.Selected != "red" || len(l.Birds) != 3 {
		t.Fatalf("launcher = %+v", l)
	}
	if !ecs.Has(w, e, component.InputComponent.Kind()) || !ecs.Has(w, e, component.SpriteComponent.Kind()) {
		t.Fatalf("launcher should carry input and the slingshot sprite")
	}
}
