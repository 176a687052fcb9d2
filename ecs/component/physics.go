package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for a box collider on the ground
// plane. Static bodies are baked into navigation grids as obstacles.
type PhysicsBody struct {
	Body   *cp.Body
	Shape  *cp.Shape
	Width  float64
	Depth  float64
	Static bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
