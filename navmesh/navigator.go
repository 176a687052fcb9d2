// Package navmesh maintains rectangular navigable regions, bakes obstacles
// into per-region occupancy grids and answers next-step path queries.
//
// A Navigator is not safe for concurrent use. Each simulation step is
// expected to perform all region and obstacle writes first, followed by any
// number of queries, from a single goroutine.
package navmesh

import (
	"github.com/milk9111/navgrid/common"
	"go.uber.org/zap"
)

// Stats counts navigator activity since creation or the last Reset.
type Stats struct {
	Rebuilds          int
	Queries           int
	Searches          int
	ComponentRejects  int
	ContainmentMisses int
	GridMisses        int
	NoPath            int
	DroppedObstacles  int
}

type Option func(*Navigator)

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(n *Navigator) {
		if l != nil {
			n.log = l
		}
	}
}

// Navigator owns the region registry, the obstacle lists and the built grids.
type Navigator struct {
	regions *registry
	stats   Stats
	log     *zap.Logger
}

func New(opts ...Option) *Navigator {
	n := &Navigator{
		regions: newRegistry(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// UpsertRegion stores or replaces the region under its id and rebuilds every
// grid.
func (n *Navigator) UpsertRegion(r Region) {
	n.regions.upsert(r)
	n.RebuildAll()
}

// SubmitObstacle snaps f's center to whole world units and assigns f to the
// first region whose bounds contain it. Obstacles outside every region are
// dropped.
func (n *Navigator) SubmitObstacle(f Footprint) (RegionID, bool) {
	f.Center = f.Center.Round()
	var (
		owner RegionID
		found bool
	)
	n.regions.each(func(e *regionEntry) bool {
		if !e.region.Bounds().Contains(f.Center) {
			return true
		}
		e.obstacles = append(e.obstacles, f)
		owner, found = e.region.ID, true
		return false
	})
	if !found {
		n.stats.DroppedObstacles++
		n.log.Debug("navmesh: obstacle outside every region", zap.Stringer("center", f.Center))
	}
	return owner, found
}

// ClearObstacles empties every region's obstacle list. Grids keep their
// current contents until the next rebuild.
func (n *Navigator) ClearObstacles() {
	n.regions.each(func(e *regionEntry) bool {
		e.obstacles = e.obstacles[:0]
		return true
	})
}

// RebuildAll discards every grid and bakes a fresh one per region from its
// dimensions and assigned obstacles.
func (n *Navigator) RebuildAll() {
	n.stats.Rebuilds++
	n.regions.each(func(e *regionEntry) bool {
		e.grid = buildGrid(e.region, e.obstacles)
		return true
	})
}

func buildGrid(r Region, obstacles []Footprint) *Grid {
	g := newGrid(r.Cols, r.Rows)
	if len(obstacles) == 0 {
		return g
	}
	origin := r.Origin()
	for _, f := range obstacles {
		lo, hi, ok := f.cells(origin, g.cols, g.rows)
		if !ok {
			continue
		}
		g.fill(lo, hi)
	}
	g.generateComponents()
	return g
}

// FindNextStep returns the world position of the first cell after start on
// a shortest grid path to finish. It reports false when no region contains
// both points, no grid is available, no path exists, or start and finish
// resolve to the same cell.
func (n *Navigator) FindNextStep(start, finish common.Vec2) (common.Vec2, bool) {
	n.stats.Queries++
	r, path, ok := n.route(start, finish)
	if !ok {
		return common.Vec2{}, false
	}
	if len(path) < 2 {
		return common.Vec2{}, false
	}
	return r.CellPosition(path[1]), true
}

// FindPath returns the whole route from start to finish as world positions,
// starting with the start cell.
func (n *Navigator) FindPath(start, finish common.Vec2) ([]common.Vec2, bool) {
	n.stats.Queries++
	r, path, ok := n.route(start, finish)
	if !ok {
		return nil, false
	}
	out := make([]common.Vec2, 0, len(path))
	for _, c := range path {
		out = append(out, r.CellPosition(c))
	}
	return out, true
}

func (n *Navigator) route(start, finish common.Vec2) (Region, []Cell, bool) {
	e, ok := n.containing(start, finish)
	if !ok {
		n.stats.ContainmentMisses++
		n.log.Debug("navmesh: no region contains both points",
			zap.Stringer("start", start), zap.Stringer("finish", finish))
		return Region{}, nil, false
	}
	r := e.region
	if e.grid == nil {
		n.stats.GridMisses++
		n.log.Error("navmesh: internal error, no grid built for region",
			zap.Stringer("region", r.ID))
		return r, nil, false
	}
	g := e.grid
	if g.Empty() {
		n.stats.NoPath++
		n.log.Debug("navmesh: region grid has no cells", zap.Stringer("region", r.ID))
		return r, nil, false
	}

	from, to := r.CellAt(start), r.CellAt(finish)
	if !g.Connected(from, to) {
		n.stats.ComponentRejects++
		n.log.Debug("navmesh: start and finish are not connected",
			zap.Stringer("region", r.ID),
			zap.Int("start_x", from.X), zap.Int("start_z", from.Z),
			zap.Int("finish_x", to.X), zap.Int("finish_z", to.Z))
		return r, nil, false
	}

	n.stats.Searches++
	path := searchPath(g, from, to)
	if path == nil {
		n.stats.NoPath++
		n.log.Debug("navmesh: search found no path", zap.Stringer("region", r.ID))
		return r, nil, false
	}
	return r, path, true
}

// SameCell reports whether a and b resolve to the same cell of the first
// region containing both. Such a pair never has a next step.
func (n *Navigator) SameCell(a, b common.Vec2) bool {
	e, ok := n.containing(a, b)
	if !ok || e.grid.Empty() {
		return false
	}
	return e.region.CellAt(a) == e.region.CellAt(b)
}

func (n *Navigator) containing(points ...common.Vec2) (*regionEntry, bool) {
	var found *regionEntry
	n.regions.each(func(e *regionEntry) bool {
		b := e.region.Bounds()
		for _, p := range points {
			if !b.Contains(p) {
				return true
			}
		}
		found = e
		return false
	})
	return found, found != nil
}

// Regions returns the registered regions in registration order.
func (n *Navigator) Regions() []Region {
	out := make([]Region, 0, n.regions.len())
	n.regions.each(func(e *regionEntry) bool {
		out = append(out, e.region)
		return true
	})
	return out
}

func (n *Navigator) Region(id RegionID) (Region, bool) {
	e, ok := n.regions.get(id)
	if !ok {
		return Region{}, false
	}
	return e.region, true
}

// Grid returns the most recently built grid for id. Callers must not modify it.
func (n *Navigator) Grid(id RegionID) (*Grid, bool) {
	e, ok := n.regions.get(id)
	if !ok || e.grid == nil {
		return nil, false
	}
	return e.grid, true
}

// Obstacles returns a copy of the footprints assigned to id this step.
func (n *Navigator) Obstacles(id RegionID) []Footprint {
	e, ok := n.regions.get(id)
	if !ok {
		return nil
	}
	return append([]Footprint(nil), e.obstacles...)
}

func (n *Navigator) Stats() Stats {
	return n.stats
}

// Reset forgets every region, obstacle and grid.
func (n *Navigator) Reset() {
	n.regions = newRegistry()
	n.stats = Stats{}
}
