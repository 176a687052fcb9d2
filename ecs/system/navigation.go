package system

import (
	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/milk9111/navgrid/navmesh"
	"go.uber.org/zap"
)

// NavigationSystem feeds regions and obstacles into the navigator and
// rebuilds its grids once per step.
type NavigationSystem struct {
	nav     *navmesh.Navigator
	log     *zap.Logger
	regions map[navmesh.RegionID]navmesh.Region
}

func NewNavigationSystem(nav *navmesh.Navigator, log *zap.Logger) *NavigationSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &NavigationSystem{
		nav:     nav,
		log:     log,
		regions: make(map[navmesh.RegionID]navmesh.Region),
	}
}

func (ns *NavigationSystem) Update(w *ecs.World) {
	if ns == nil || ns.nav == nil || w == nil {
		return
	}

	ns.nav.ClearObstacles()

	ecs.ForEach2(w, component.NavRegionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, nr *component.NavRegion, t *component.Transform) {
		ns.nav.UpsertRegion(ns.region(nr, t.Ground()))
	})

	ecs.ForEach2(w, component.NavObstacleComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, o *component.NavObstacle, t *component.Transform) {
		ns.submit(w, e, navmesh.NewFootprint(t.Ground(), common.V(o.Width, o.Depth)))
	})

	for _, sb := range w.PhysicsWorld().StaticBounds() {
		ns.submit(w, sb.Entity, navmesh.NewFootprint(sb.Rect.Center, sb.Rect.Extent))
	}

	ns.nav.RebuildAll()
}

// Resolution is fixed the first time a region id is seen; later steps only
// move it.
func (ns *NavigationSystem) region(nr *component.NavRegion, center common.Vec2) navmesh.Region {
	r, ok := ns.regions[nr.ID]
	if !ok {
		r = navmesh.NewRegion(nr.ID, center, common.V(nr.Width, nr.Depth))
		ns.regions[nr.ID] = r
	}
	return r.WithCenter(center)
}

func (ns *NavigationSystem) submit(w *ecs.World, e ecs.Entity, f navmesh.Footprint) {
	if _, ok := ns.nav.SubmitObstacle(f); ok {
		return
	}
	ns.log.Debug("navigation: obstacle dropped", zap.Stringer("entity", e), zap.Stringer("center", f.Center))
	w.Events().Push(ecs.Event{Type: ecs.EventObstacleDropped, Data: ecs.EntityEvent{Entity: e}})
}

// Forget drops cached region resolutions, for use after a scene reload.
func (ns *NavigationSystem) Forget() {
	if ns == nil {
		return
	}
	clear(ns.regions)
}
