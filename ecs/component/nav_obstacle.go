package component

// NavObstacle blocks navigation under a Width x Depth box centred on the
// entity's transform.
type NavObstacle struct {
	Width float64
	Depth float64
}

var NavObstacleComponent = NewComponent[NavObstacle]()
