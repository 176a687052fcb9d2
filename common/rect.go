package common

// Rect is an axis-aligned rectangle described by its center and full extent.
type Rect struct {
	Center Vec2
	Extent Vec2
}

func RectFromCenter(center, extent Vec2) Rect {
	return Rect{Center: center, Extent: extent}
}

// Min returns the minimum corner.
func (r Rect) Min() Vec2 {
	return Vec2{X: r.Center.X - r.Extent.X/2, Y: r.Center.Y - r.Extent.Y/2}
}

// Max returns the maximum corner.
func (r Rect) Max() Vec2 {
	return Vec2{X: r.Center.X + r.Extent.X/2, Y: r.Center.Y + r.Extent.Y/2}
}

// Contains reports whether p lies inside r. Both edges are inclusive.
func (r Rect) Contains(p Vec2) bool {
	lo, hi := r.Min(), r.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}
