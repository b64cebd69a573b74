package entity

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
	"github.com/milk9111/slingshot/prefabs"
	"go.uber.org/zap"
)

// Placement is one object a layout script asks for.
type Placement struct {
	Prefab string
	X      float64
	Y      float64
}

// EvaluateLayout runs the level's tengo script. The script sees width, height
// and params and must leave an array of {prefab, x, y} maps in objects.
func EvaluateLayout(spec prefabs.LevelSpec, width, height int) ([]Placement, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("layout %q: load script: %w", spec.Script, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	params := spec.Params
	if params == nil {
		params = map[string]any{}
	}
	for name, value := range map[string]any{"width": width, "height": height, "params": params} {
		if err := script.Add(name, value); err != nil {
			return nil, fmt.Errorf("layout %q: bind %s: %w", spec.Script, name, err)
		}
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("layout %q: run: %w", spec.Script, err)
	}

	v := compiled.Get("objects")
	if v == nil || v.IsUndefined() {
		return nil, fmt.Errorf("layout %q: script did not define objects", spec.Script)
	}
	items, ok := v.Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("layout %q: objects is %s, want array", spec.Script, v.ValueType())
	}

	out := make([]Placement, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("layout %q: objects[%d] is not a map", spec.Script, i)
		}
		prefab, _ := m["prefab"].(string)
		if prefab == "" {
			return nil, fmt.Errorf("layout %q: objects[%d] has no prefab", spec.Script, i)
		}
		x, okX := toFloat(m["x"])
		y, okY := toFloat(m["y"])
		if !okX || !okY {
			return nil, fmt.Errorf("layout %q: objects[%d] needs numeric x and y", spec.Script, i)
		}
		out = append(out, Placement{Prefab: prefab, X: x, Y: y})
	}
	return out, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// LoadLevel spawns every placement of the level and returns how many of them
// are destructible.
func (s *Spawner) LoadLevel(w *ecs.World, spec prefabs.LevelSpec, width, height int) (int, error) {
	placements, err := EvaluateLayout(spec, width, height)
	if err != nil {
		return 0, err
	}
	_, n, err := s.SpawnLayout(w, spec.Name, placements)
	return n, err
}

// SpawnLayout builds placements as level objects. Either every placement is
// spawned or, on error, none are left behind.
func (s *Spawner) SpawnLayout(w *ecs.World, name string, placements []Placement) ([]ecs.Entity, int, error) {
	spawned := make([]ecs.Entity, 0, len(placements))
	rollback := func() {
		for _, e := range spawned {
			ecs.DestroyEntity(w, e)
		}
	}

	destructibles := 0
	for _, p := range placements {
		e, err := s.Build(w, p.Prefab)
		if err != nil {
			rollback()
			return nil, 0, fmt.Errorf("layout %q: %w", name, err)
		}
		spawned = append(spawned, e)
		if err := SetEntityTransform(w, e, p.X, p.Y, 0); err != nil {
			rollback()
			return nil, 0, err
		}
		if !ecs.Has(w, e, component.LevelObjectComponent.Kind()) {
			_ = ecs.Add(w, e, component.LevelObjectComponent.Kind(), &component.LevelObject{})
		}
		if ecs.Has(w, e, component.DestructibleComponent.Kind()) {
			destructibles++
		}
	}

	s.logger().Info("level layout spawned",
		zap.String("level", name),
		zap.Int("objects", len(placements)),
		zap.Int("destructibles", destructibles),
	)
	return spawned, destructibles, nil
}
