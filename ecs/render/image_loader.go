package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/slingshot/assets"
)

// LoadImage loads an embedded image and caches it by key. A missing or
// undecodable asset is an error; callers treat it as fatal.
func LoadImage(key string) (*ebiten.Image, error) {
	if key == "" {
		return nil, fmt.Errorf("empty image key")
	}
	if img := GetImage(key); img != nil {
		return img, nil
	}
	img, err := assets.LoadImage(key)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", key, err)
	}
	RegisterImage(key, img)
	return img, nil
}
