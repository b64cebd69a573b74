package entity

import (
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/prefabs"
)

// SpawnLauncher creates the slingshot entity. It carries the launcher state
// and the frame input.
func (s *Spawner) SpawnLauncher(w *ecs.World, spec prefabs.LauncherSpec) (ecs.Entity, error) {
	var e ecs.Entity
	if spec.Slingshot != "" {
		built, err := s.Build(w, spec.Slingshot)
		if err != nil {
			return 0, err
		}
		e = built
	} else {
		e = ecs.CreateEntity(w)
	}

	anchor := common.Point2D{X: spec.AnchorX, Y: spec.AnchorY}
	launcher := &component.Launcher{
		State:    component.LaunchAiming,
		Anchor:   anchor,
		End:      anchor,
		Birds:    append([]string(nil), spec.Birds...),
		Selected: spec.Default,
	}
	if err := ecs.Add(w, e, component.LauncherComponent.Kind(), launcher); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, err
	}

	return e, nil
}
