package navmesh

import (
	"math"

	"github.com/google/uuid"
	"github.com/milk9111/navgrid/common"
)

// RegionID identifies a region. It is supplied by the object that owns the
// navigable area.
type RegionID = uuid.UUID

// Region is a rectangular navigable area on the X/Z ground plane.
type Region struct {
	ID     RegionID
	Center common.Vec2
	Extent common.Vec2
	Cols   int
	Rows   int
}

// NewRegion derives the grid resolution from extent. Non-positive extents are
// accepted and produce a degenerate grid.
func NewRegion(id RegionID, center, extent common.Vec2) Region {
	return Region{
		ID:     id,
		Center: center,
		Extent: extent,
		Cols:   cellCount(extent.X),
		Rows:   cellCount(extent.Y),
	}
}

func cellCount(extent float64) int {
	n := int(math.Round(extent) / CellSize)
	if n < 0 {
		n = -n
	}
	return n
}

// WithCenter returns a copy of r moved to center. Resolution is unchanged.
func (r Region) WithCenter(center common.Vec2) Region {
	r.Center = center
	return r
}

// Bounds returns the world-space rectangle covered by the region.
func (r Region) Bounds() common.Rect {
	return common.RectFromCenter(r.Center, r.Extent)
}

// Origin is the world position of cell (0, 0).
func (r Region) Origin() common.Vec2 {
	return r.Bounds().Min()
}

// CellAt converts a world point to the nearest cell, clamped to the grid.
func (r Region) CellAt(p common.Vec2) Cell {
	o := r.Origin()
	return Cell{X: WorldToCell(p.X, o.X, r.Cols), Z: WorldToCell(p.Y, o.Y, r.Rows)}
}

// CellPosition returns the world position of c.
func (r Region) CellPosition(c Cell) common.Vec2 {
	o := r.Origin()
	return common.Vec2{X: CellToWorld(c.X, o.X), Y: CellToWorld(c.Z, o.Y)}
}

// registry keeps regions in first-insertion order.
type registry struct {
	order []RegionID
	byID  map[RegionID]*regionEntry
}

type regionEntry struct {
	region    Region
	obstacles []Footprint
	grid      *Grid
}

func newRegistry() *registry {
	return &registry{byID: make(map[RegionID]*regionEntry)}
}

func (r *registry) upsert(region Region) {
	if e, ok := r.byID[region.ID]; ok {
		e.region = region
		return
	}
	r.order = append(r.order, region.ID)
	r.byID[region.ID] = &regionEntry{region: region}
}

func (r *registry) get(id RegionID) (*regionEntry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// each visits entries in insertion order until fn returns false.
func (r *registry) each(fn func(e *regionEntry) bool) {
	for _, id := range r.order {
		if !fn(r.byID[id]) {
			return
		}
	}
}

func (r *registry) len() int {
	return len(r.order)
}
