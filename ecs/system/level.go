package system

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingshot/common"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/ecs/entity"
	"github.com/milk9111/slingshot/ecs/render"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

// LevelSystem owns the Level singleton and swaps layouts when a
// LevelChangeRequest shows up on it.
type LevelSystem struct {
	spawner *entity.Spawner
	physics *PhysicsSystem
	levels  []prefabs.LevelSpec
	width   int
	height  int
	log     *zap.Logger
}

func NewLevelSystem(spawner *entity.Spawner, physics *PhysicsSystem, levels []prefabs.LevelSpec, width, height int, log *zap.Logger) *LevelSystem {
	return &LevelSystem{
		spawner: spawner,
		physics: physics,
		levels:  levels,
		width:   width,
		height:  height,
		log:     common.OrNop(log),
	}
}

// SetLevels replaces the level list. The running layout is kept until the
// next change.
func (s *LevelSystem) SetLevels(levels []prefabs.LevelSpec) {
	s.levels = levels
}

func (s *LevelSystem) Update(w *ecs.World) {
	e, _, ok := ecs.First(w, component.LevelChangeRequestComponent.Kind())
	if !ok {
		return
	}
	req, _ := ecs.Get(w, e, component.LevelChangeRequestComponent.Kind())
	index := req.Index
	ecs.Remove(w, e, component.LevelChangeRequestComponent.Kind())

	if err := s.Load(w, index); err != nil {
		s.log.Error("level change failed", zap.Int("index", index), zap.Error(err))
	}
}

// Load spawns layout index and then tears down every projectile and the
// previous level objects. On error the running level is left untouched.
// Indices past the last level repeat the last one.
func (s *LevelSystem) Load(w *ecs.World, index int) error {
	if len(s.levels) == 0 {
		return fmt.Errorf("load level: no levels configured")
	}
	index = max(0, min(index, len(s.levels)-1))
	spec := s.levels[index]

	var background *ebiten.Image
	if spec.Background != "" && !s.spawner.Headless {
		img, err := render.LoadImage(spec.Background)
		if err != nil {
			return fmt.Errorf("load level %d (%s): %w", index, spec.Name, err)
		}
		background = img
	}

	placements, err := entity.EvaluateLayout(spec, s.width, s.height)
	if err != nil {
		return fmt.Errorf("load level %d (%s): %w", index, spec.Name, err)
	}

	doomed := s.currentLayout(w)
	_, n, err := s.spawner.SpawnLayout(w, spec.Name, placements)
	if err != nil {
		return fmt.Errorf("load level %d (%s): %w", index, spec.Name, err)
	}
	s.remove(w, doomed)

	_, level, ok := ecs.First(w, component.LevelComponent.Kind())
	if !ok {
		level = &component.Level{}
		if err := ecs.Add(w, ecs.CreateEntity(w), component.LevelComponent.Kind(), level); err != nil {
			return err
		}
	}
	level.Index = index
	level.Name = spec.Name
	level.RunID = uuid.NewString()
	level.Obstacles = n
	level.BackgroundKey = spec.Background
	level.Background = background

	ecs.ForEach(w, component.LauncherComponent.Kind(), func(e ecs.Entity, l *component.Launcher) {
		l.State = component.LaunchAiming
		l.End = l.Anchor
		ecs.Remove(w, e, component.LineRenderComponent.Kind())
	})

	s.log.Info("level loaded",
		zap.Int("index", index),
		zap.String("name", spec.Name),
		zap.String("run_id", level.RunID),
		zap.Int("obstacles", n),
	)
	return nil
}

// currentLayout lists every projectile and level object in the world.
func (s *LevelSystem) currentLayout(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	out = append(out, ecs.Query(w, component.ProjectileComponent.Kind())...)
	out = append(out, ecs.Query(w, component.LevelObjectComponent.Kind())...)
	return out
}

func (s *LevelSystem) remove(w *ecs.World, doomed []ecs.Entity) {
	for _, e := range doomed {
		if s.physics != nil {
			s.physics.Remove(w, e)
		} else {
			ecs.DestroyEntity(w, e)
		}
	}
}
