package system

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
)

// RenderSystem draws the level background, then sprites ordered by layer,
// then lines. Poses are read in world space and flipped onto the screen.
type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	height := float64(screen.Bounds().Dy())

	if _, lvl, ok := ecs.First(w, component.LevelComponent.Kind()); ok && lvl.Background != nil {
		screen.DrawImage(lvl.Background, nil)
	}

	entities := ecs.Query(w, component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li := 0
		if layer, ok := ecs.Get(w, entities[i], component.RenderLayerComponent.Kind()); ok {
			li = layer.Index
		}
		lj := 0
		if layer, ok := ecs.Get(w, entities[j], component.RenderLayerComponent.Kind()); ok {
			lj = layer.Index
		}
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok || s.Image == nil {
			continue
		}

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		x, y := ScreenToWorld(t.X, t.Y, height)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(-t.Rotation)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(s.Image, op)
	}

	ecs.ForEach(w, component.LineRenderComponent.Kind(), func(_ ecs.Entity, line *component.LineRender) {
		if line.Color == nil || line.Width <= 0 {
			return
		}
		x1, y1 := ScreenToWorld(line.Start.X, line.Start.Y, height)
		x2, y2 := ScreenToWorld(line.End.X, line.End.Y, height)
		vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), line.Width, line.Color, true)
	})
}
