package component

import (
	"image/color"

	"github.com/milk9111/slingshot/common"
)

// LineRender is the aim line from the slingshot anchor to the pull point, in
// world coordinates. It is drawn anti-aliased above every sprite.
type LineRender struct {
	Start common.Point2D
	End   common.Point2D
	Width float32
	Color color.Color
}

var LineRenderComponent = NewComponent[LineRender]()
