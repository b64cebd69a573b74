package render

import "github.com/hajimehoshi/ebiten/v2"

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// Preload loads every key up front so a bad asset reference stops the
// process at start instead of mid-level.
func Preload(keys ...string) error {
	for _, key := range keys {
		if _, err := LoadImage(key); err != nil {
			return err
		}
	}
	return nil
}
