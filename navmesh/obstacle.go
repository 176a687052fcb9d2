package navmesh

import "github.com/milk9111/navgrid/common"

// Footprint is the ground-plane rectangle of a blocking object for one step.
type Footprint struct {
	Center common.Vec2
	Extent common.Vec2
}

// NewFootprint snaps center to whole world units.
func NewFootprint(center, extent common.Vec2) Footprint {
	return Footprint{Center: center.Round(), Extent: extent}
}

func (f Footprint) Bounds() common.Rect {
	return common.RectFromCenter(f.Center, f.Extent)
}

// cells returns the inclusive cell range f covers on a cols x rows grid whose
// cell (0, 0) sits at origin.
func (f Footprint) cells(origin common.Vec2, cols, rows int) (lo, hi Cell, ok bool) {
	b := f.Bounds()
	bmin, bmax := b.Min(), b.Max()
	x0, x1, okX := cellSpan(bmin.X, bmax.X, f.Center.X, origin.X, cols)
	z0, z1, okZ := cellSpan(bmin.Y, bmax.Y, f.Center.Y, origin.Y, rows)
	if !okX || !okZ {
		return Cell{}, Cell{}, false
	}
	return Cell{X: x0, Z: z0}, Cell{X: x1, Z: z1}, true
}
