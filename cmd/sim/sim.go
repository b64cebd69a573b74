package main

import (
	"fmt"
	"math"

	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/entity"
	"github.com/milk9111/slingshot/ecs/system"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

type shot struct {
	Bird  string
	Angle float64
	Pull  float64
}

type outcome struct {
	shot
	Start     int
	Remaining int
	PowerUsed bool
}

func (o outcome) Destroyed() int {
	return o.Start - o.Remaining
}

// simulate plays one launch in its own world for the given number of fixed
// steps. The bird's power is fired on the first frame it is airborne past
// its apex.
func simulate(spec *prefabs.GameSpec, level int, s shot, frames int, log *zap.Logger) (outcome, error) {
	w := ecs.NewWorld()
	spawner := &entity.Spawner{Headless: true, Log: log}
	physics := system.NewPhysicsSystem(spec.Physics, system.NewCollisionPolicy(spec.Collision), log)
	power := system.NewPowerSystem(spawner, physics, spec.Launcher.FlyHeight, log)
	levels := system.NewLevelSystem(spawner, physics, spec.Levels, spec.Window.Width, spec.Window.Height, log)

	if err := levels.Load(w, level); err != nil {
		return outcome{}, err
	}
	_, lvl, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		return outcome{}, fmt.Errorf("level %d did not create level state", level)
	}

	anchor := common.Point2D{X: spec.Launcher.AnchorX, Y: spec.Launcher.AnchorY}
	end := common.Point2D{
		X: anchor.X - math.Cos(s.Angle)*s.Pull,
		Y: anchor.Y - math.Sin(s.Angle)*s.Pull,
	}
	bird, err := spawner.SpawnProjectile(w, s.Bird, end, common.NewImpulseVector(anchor, end))
	if err != nil {
		return outcome{}, err
	}

	out := outcome{shot: s, Start: lvl.Obstacles}
	for i := 0; i < frames && lvl.Obstacles > 0; i++ {
		if !out.PowerUsed && pastApex(w, bird) {
			out.PowerUsed = power.Apply(w, bird)
		}
		physics.Update(w)
	}
	out.Remaining = lvl.Obstacles
	return out, nil
}

func pastApex(w *ecs.World, e ecs.Entity) bool {
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || pb.Body == nil {
		return false
	}
	return pb.Body.Velocity().Y < 0
}
