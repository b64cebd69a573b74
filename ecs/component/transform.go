package component

// Transform is the visual pose in world space (Y up). For entities with a
// PhysicsBody it is overwritten from the body after every step.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
