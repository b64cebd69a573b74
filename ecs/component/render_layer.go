package component

import "fmt"

// Layers draw back to front. Entities on one layer keep creation order.
const (
	LayerBackground = iota
	LayerScenery
	LayerBlocks
	LayerBirds
)

var layerNames = map[string]int{
	"background": LayerBackground,
	"scenery":    LayerScenery,
	"blocks":     LayerBlocks,
	"birds":      LayerBirds,
}

// ParseLayer maps a prefab layer name to its draw index.
func ParseLayer(name string) (int, error) {
	index, ok := layerNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown render layer %q", name)
	}
	return index, nil
}

type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
