package main

import (
	"fmt"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/entity"
	"github.com/milk9111/slingshot/ecs/render"
	"github.com/milk9111/slingshot/ecs/system"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

// overlayFadeFrames is how long the level-clear panel takes to fade in.
const overlayFadeFrames = 30

type GameOptions struct {
	Debug bool
	Watch bool
	Level int
	Log   *zap.Logger
}

type Game struct {
	spec  *prefabs.GameSpec
	log   *zap.Logger
	debug bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	input     *system.InputSystem
	launcher  *system.LauncherSystem
	power     *system.PowerSystem
	levels    *system.LevelSystem
	physics   *system.PhysicsSystem
	ttl       *system.TTLSystem
	render    *system.RenderSystem

	watcher *prefabs.Watcher

	clearUI      *ebitenui.UI
	clearLayer   *ebiten.Image
	clearVisible bool
	clearFrames  int
}

func NewGame(opts GameOptions) (*Game, error) {
	log := common.OrNop(opts.Log)

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		return nil, err
	}

	backgrounds := make([]string, 0, len(spec.Levels))
	for _, lvl := range spec.Levels {
		if lvl.Background != "" {
			backgrounds = append(backgrounds, lvl.Background)
		}
	}
	if err := render.Preload(backgrounds...); err != nil {
		return nil, err
	}

	spawner := &entity.Spawner{Log: log}
	g := &Game{
		spec:    spec,
		log:     log,
		debug:   opts.Debug,
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(spec.Physics, system.NewCollisionPolicy(spec.Collision), log),
		input:   system.NewInputSystem(spec.Window.Height),
		render:  system.NewRenderSystem(),
	}
	g.launcher = system.NewLauncherSystem(spawner, spec.Launcher, log)
	g.power = system.NewPowerSystem(spawner, g.physics, spec.Launcher.FlyHeight, log)
	g.levels = system.NewLevelSystem(spawner, g.physics, spec.Levels, spec.Window.Width, spec.Window.Height, log)
	g.ttl = system.NewTTLSystem(g.physics, spec.Window.Width)
	g.scheduler = ecs.NewScheduler(g.input, g.launcher, g.power, g.levels, g.ttl, g.physics)

	if _, err := spawner.SpawnLauncher(g.world, spec.Launcher); err != nil {
		return nil, fmt.Errorf("spawn launcher: %w", err)
	}
	if err := g.levels.Load(g.world, opts.Level); err != nil {
		return nil, err
	}

	g.clearUI = NewLevelClearUI(spec.Window.Width, spec.Window.Height, g.input.RequestAdvance)
	g.clearLayer = ebiten.NewImage(spec.Window.Width, spec.Window.Height)

	if opts.Watch {
		w, err := prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn("prefab watch disabled", zap.Error(err))
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Update() error {
	g.reload()

	g.scheduler.Update(g.world)

	g.clearVisible = false
	if _, l, ok := ecs.First(g.world, component.LauncherComponent.Kind()); ok {
		g.clearVisible = l.State == component.LaunchLevelClear
	}
	if g.clearVisible {
		g.clearUI.Update()
		g.clearFrames = min(g.clearFrames+1, overlayFadeFrames)
	} else {
		g.clearFrames = 0
	}
	return nil
}

// reload applies edited tuning. A broken file is logged and the running
// tuning kept.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}

	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		g.log.Warn("reload failed, keeping previous tuning", zap.Strings("files", changed), zap.Error(err))
		return
	}

	g.physics.ApplyTuning(spec.Physics)
	g.physics.SetPolicy(system.NewCollisionPolicy(spec.Collision))
	g.launcher.SetSpec(g.world, spec.Launcher)
	g.power.SetFlyHeight(spec.Launcher.FlyHeight)
	g.levels.SetLevels(spec.Levels)
	g.spec.Physics = spec.Physics
	g.spec.Collision = spec.Collision
	g.spec.Launcher = spec.Launcher
	g.spec.Levels = spec.Levels
	g.log.Info("tuning reloaded", zap.Strings("files", changed))
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.physics.Space(), screen)
		system.DrawLevelDebug(g.world, screen)
	}

	if g.clearVisible {
		g.clearLayer.Clear()
		g.clearUI.Draw(g.clearLayer)
		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(common.Lerp(0, 1, float32(g.clearFrames)/overlayFadeFrames))
		screen.DrawImage(g.clearLayer, op)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.spec.Window.Width, g.spec.Window.Height
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
