package component

// Input stores the pointer and key state sampled for the current frame.
// Pointer coordinates are in world space.
type Input struct {
	X        float64
	Y        float64
	Pressed  bool
	Held     bool
	Released bool

	// SelectBird is the 1-based launcher slot picked this frame, 0 for none.
	SelectBird int
	Advance    bool
}

var InputComponent = NewComponent[Input]()
