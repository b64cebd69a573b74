package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/slingshot/ecs"
	"github.com/milk9111/slingshot/ecs/component"
)

var birdKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}

// InputSystem samples the mouse and keyboard into every Input component.
// The pointer is converted to world coordinates (Y up).
type InputSystem struct {
	screenHeight   float64
	pendingAdvance bool
}

func NewInputSystem(screenHeight int) *InputSystem {
	return &InputSystem{screenHeight: float64(screenHeight)}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, y := ScreenToWorld(float64(cx), float64(cy), i.screenHeight)

	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	held := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	released := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	advance := inpututil.IsKeyJustReleased(ebiten.KeyArrowRight) || i.pendingAdvance
	i.pendingAdvance = false

	selected := 0
	for n, key := range birdKeys {
		if inpututil.IsKeyJustPressed(key) {
			selected = n + 1
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		input.X = x
		input.Y = y
		input.Pressed = pressed
		input.Held = held
		input.Released = released
		input.SelectBird = selected
		input.Advance = advance
	})
}

// RequestAdvance makes the next sample report an advance, as if the right
// arrow had been released. The level-clear overlay button uses it.
func (i *InputSystem) RequestAdvance() {
	i.pendingAdvance = true
}

// ScreenToWorld flips a screen position into world space. The conversion is
// its own inverse.
func ScreenToWorld(x, y, screenHeight float64) (float64, float64) {
	return x, screenHeight - y
}
