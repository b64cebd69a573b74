package component

import "github.com/jakecoffman/cp"

// PhysicsBody describes a rigid body and holds the handles of the cp body and
// shape once the physics system has created them. The space owns both; the
// entity only refers to them.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool

	// Applied once, when the body is created.
	InitialImpulse  cp.Vector
	InitialVelocity cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
