package common

import (
	"fmt"
	"math"
)

// Vec2 is a point on the ground plane. Y carries the world Z axis.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Round snaps both components to the nearest integer, halves away from zero.
func (v Vec2) Round() Vec2 {
	return Vec2{X: math.Round(v.X), Y: math.Round(v.Y)}
}

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveToward steps from toward target by at most maxDist and reports whether
// target was reached.
func MoveToward(from, target Vec2, maxDist float64) (Vec2, bool) {
	d := target.Sub(from)
	dist := d.Len()
	if dist <= maxDist || dist == 0 {
		return target, true
	}
	t := maxDist / dist
	return Vec2{X: Lerp(from.X, target.X, t), Y: Lerp(from.Y, target.Y, t)}, false
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}
