package system

import (
	"slices"

	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/entity"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

// LauncherSystem runs the slingshot state machine from the sampled Input.
type LauncherSystem struct {
	spawner *entity.Spawner
	spec    prefabs.LauncherSpec
	log     *zap.Logger
}

func NewLauncherSystem(spawner *entity.Spawner, spec prefabs.LauncherSpec, log *zap.Logger) *LauncherSystem {
	return &LauncherSystem{spawner: spawner, spec: spec, log: common.OrNop(log)}
}

// SetSpec swaps the tuning used for new drags and launches and moves every
// live launcher onto the new anchor and bird list. A drag in progress keeps
// its pull point, and a selected bird still in the list stays selected.
func (s *LauncherSystem) SetSpec(w *ecs.World, spec prefabs.LauncherSpec) {
	s.spec = spec
	if w == nil {
		return
	}

	anchor := common.Point2D{X: spec.AnchorX, Y: spec.AnchorY}
	ecs.ForEach(w, component.LauncherComponent.Kind(), func(_ ecs.Entity, l *component.Launcher) {
		l.Anchor = anchor
		if l.State != component.LaunchDragging {
			l.End = anchor
		}
		l.Birds = append([]string(nil), spec.Birds...)
		if !slices.Contains(l.Birds, l.Selected) {
			l.Selected = spec.Default
		}
	})
}

func (s *LauncherSystem) Update(w *ecs.World) {
	levelEntity, level, hasLevel := ecs.First(w, component.LevelComponent.Kind())
	cleared := hasLevel && level.Obstacles == 0

	ecs.ForEach2(w, component.LauncherComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, l *component.Launcher, in *component.Input) {
		if in.SelectBird > 0 && in.SelectBird <= len(l.Birds) && l.State != component.LaunchDragging {
			l.Selected = l.Birds[in.SelectBird-1]
			s.log.Debug("bird selected", zap.String("bird", l.Selected))
		}

		airborne := s.airborneProjectiles(w)
		pointer := common.Point2D{X: in.X, Y: in.Y}

		if l.State == component.LaunchDragging {
			l.End = pointer
			if in.Released {
				s.launch(w, e, l)
				l.State = component.LaunchAiming
			} else {
				s.drawLine(w, e, l)
			}
		} else if in.Pressed {
			switch {
			case len(airborne) > 0:
				for _, p := range airborne {
					_ = ecs.Add(w, p, component.PowerRequestComponent.Kind(), &component.PowerRequest{})
				}
			case !cleared:
				l.State = component.LaunchDragging
				l.End = pointer
				s.drawLine(w, e, l)
			}
		}

		if l.State != component.LaunchDragging {
			switch {
			case cleared:
				l.State = component.LaunchLevelClear
			case len(s.airborneProjectiles(w)) > 0:
				l.State = component.LaunchInFlight
			default:
				l.State = component.LaunchAiming
			}
		}

		if in.Advance && cleared && !ecs.Has(w, levelEntity, component.LevelChangeRequestComponent.Kind()) {
			_ = ecs.Add(w, levelEntity, component.LevelChangeRequestComponent.Kind(), &component.LevelChangeRequest{Index: level.Index + 1})
		}
	})
}

func (s *LauncherSystem) launch(w *ecs.World, e ecs.Entity, l *component.Launcher) {
	ecs.Remove(w, e, component.LineRenderComponent.Kind())

	iv := common.NewImpulseVector(l.Anchor, l.End)
	p, err := s.spawner.SpawnProjectile(w, l.Selected, l.End, iv)
	if err != nil {
		s.log.Error("launch failed", zap.String("bird", l.Selected), zap.Error(err))
		return
	}
	s.log.Debug("launch",
		zap.Stringer("entity", p),
		zap.String("bird", l.Selected),
		zap.Float64("angle", iv.Angle),
		zap.Float64("pull", iv.Impulse),
	)
}

func (s *LauncherSystem) drawLine(w *ecs.World, e ecs.Entity, l *component.Launcher) {
	line, ok := ecs.Get(w, e, component.LineRenderComponent.Kind())
	if !ok {
		line = &component.LineRender{Width: s.spec.LineWidth, Color: s.spec.LineColor.Color}
		_ = ecs.Add(w, e, component.LineRenderComponent.Kind(), line)
	}
	line.Start = l.Anchor
	line.End = l.End
}

func (s *LauncherSystem) airborneProjectiles(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.Projectile, t *component.Transform) {
		if Airborne(t, s.spec.FlyHeight) {
			out = append(out, e)
		}
	})
	return out
}
