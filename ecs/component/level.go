package component

import "github.com/hajimehoshi/ebiten/v2"

// Level is the singleton state of the level being played.
type Level struct {
	Index int
	Name  string
	RunID string

	// Obstacles is the number of live destructible entities.
	Obstacles int

	Background    *ebiten.Image
	BackgroundKey string
}

var LevelComponent = NewComponent[Level]()

// LevelChangeRequest asks the level system to tear down the current layout
// and load Index.
type LevelChangeRequest struct {
	Index int
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
