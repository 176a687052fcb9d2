package component

import "github.com/milk9111/navgrid/common"

// Transform is a world position. Navigation works on the X/Z ground plane;
// Y is height and is ignored there.
type Transform struct {
	X float64
	Y float64
	Z float64
}

// Ground projects the transform onto the X/Z plane.
func (t Transform) Ground() common.Vec2 {
	return common.Vec2{X: t.X, Y: t.Z}
}

func (t *Transform) SetGround(p common.Vec2) {
	t.X = p.X
	t.Z = p.Y
}

var TransformComponent = NewComponent[Transform]()
