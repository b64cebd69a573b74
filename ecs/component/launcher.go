package component

import "github.com/milk9111/slingshot/common"

type LaunchState int

const (
	LaunchAiming LaunchState = iota
	LaunchDragging
	LaunchInFlight
	LaunchLevelClear
)

func (s LaunchState) String() string {
	switch s {
	case LaunchDragging:
		return "dragging"
	case LaunchInFlight:
		return "in_flight"
	case LaunchLevelClear:
		return "level_clear"
	default:
		return "aiming"
	}
}

// Launcher is the slingshot: its state machine, the fixed anchor the pull is
// measured from and the bird currently loaded.
type Launcher struct {
	State    LaunchState
	Anchor   common.Point2D
	End      common.Point2D
	Birds    []string
	Selected string
}

var LauncherComponent = NewComponent[Launcher]()
