package component

import "github.com/jakecoffman/cp"

// BodyMode selects how the physics system builds the Chipmunk body.
type BodyMode int

const (
	BodyDynamic BodyMode = iota
	BodyStatic
	BodyKinematic
)

// PhysicsBody stores collider configuration plus the Chipmunk runtime
// handles once the physics system has built them.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width      float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Mode       BodyMode
	// FixedRotation pins the body upright (infinite moment).
	FixedRotation bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
