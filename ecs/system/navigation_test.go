package system

import (
	"testing"

	"github.com/google/uuid"
	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/milk9111/navgrid/navmesh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawn(t *testing.T, w *ecs.World, x, z float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Z: z}))
	return e
}

func addRegion(t *testing.T, w *ecs.World, id uuid.UUID, x, z, width, depth float64) ecs.Entity {
	t.Helper()
	e := spawn(t, w, x, z)
	require.NoError(t, ecs.Add(w, e, component.NavRegionComponent.Kind(), &component.NavRegion{ID: id, Width: width, Depth: depth}))
	return e
}

func addObstacle(t *testing.T, w *ecs.World, x, z, width, depth float64) ecs.Entity {
	t.Helper()
	e := spawn(t, w, x, z)
	require.NoError(t, ecs.Add(w, e, component.NavObstacleComponent.Kind(), &component.NavObstacle{Width: width, Depth: depth}))
	return e
}

func TestNavigationSystemBakesObstacles(t *testing.T) {
	w := ecs.NewWorld()
	nav := navmesh.New()
	id := uuid.New()
	addRegion(t, w, id, 0, 0, 10, 10)
	addObstacle(t, w, 0, 0, 4, 4)
	outside := addObstacle(t, w, 50, 50, 2, 2)

	NewNavigationSystem(nav, nil).Update(w)

	grid, ok := nav.Grid(id)
	require.True(t, ok)
	assert.Equal(t, 4, grid.BlockedCount())
	assert.Len(t, nav.Obstacles(id), 1)

	events := w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, ecs.EventObstacleDropped, events[0].Type)
	assert.Equal(t, ecs.EntityEvent{Entity: outside}, events[0].Data)
}

func TestNavigationSystemClearsObstaclesEachStep(t *testing.T) {
	w := ecs.NewWorld()
	nav := navmesh.New()
	id := uuid.New()
	addRegion(t, w, id, 0, 0, 10, 10)
	crate := addObstacle(t, w, 0, 0, 4, 4)
	ns := NewNavigationSystem(nav, nil)

	ns.Update(w)
	require.True(t, ecs.DestroyEntity(w, crate))
	ns.Update(w)

	grid, ok := nav.Grid(id)
	require.True(t, ok)
	assert.Zero(t, grid.BlockedCount())
	assert.Empty(t, nav.Obstacles(id))
}

func TestNavigationSystemKeepsRegionResolution(t *testing.T) {
	w := ecs.NewWorld()
	nav := navmesh.New()
	id := uuid.New()
	e := addRegion(t, w, id, 0, 0, 10, 10)
	ns := NewNavigationSystem(nav, nil)
	ns.Update(w)

	nr, ok := ecs.Get(w, e, component.NavRegionComponent.Kind())
	require.True(t, ok)
	nr.Width = 40
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok)
	tr.X = 6
	ns.Update(w)

	r, ok := nav.Region(id)
	require.True(t, ok)
	assert.Equal(t, 5, r.Cols)
	assert.Equal(t, common.V(6, 0), r.Center)

	ns.Forget()
	ns.Update(w)
	r, _ = nav.Region(id)
	assert.Equal(t, 20, r.Cols)
}

func TestNavigationSystemBakesStaticBodies(t *testing.T) {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)
	nav := navmesh.New()
	id := uuid.New()
	addRegion(t, w, id, 0, 0, 20, 20)

	wall := spawn(t, w, 0, 0)
	require.NoError(t, ecs.Add(w, wall, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 22, Depth: 2, Static: true}))

	NewPhysicsSystem(60).Update(w)
	NewNavigationSystem(nav, nil).Update(w)

	grid, ok := nav.Grid(id)
	require.True(t, ok)
	assert.Equal(t, 10, grid.BlockedCount())
	assert.Equal(t, 2, grid.ComponentCount())
}
