package ecs

import (
	"testing"

	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticBoundsFollowBoxes(t *testing.T) {
	pw := NewPhysicsWorld()
	w := NewWorld()

	wall := CreateEntity(w)
	agent := CreateEntity(w)
	wallBody := &component.PhysicsBody{Width: 6, Depth: 2, Static: true}
	agentBody := &component.PhysicsBody{Width: 1, Depth: 1}
	pw.EnsureBody(wall, &component.Transform{X: 3, Z: -4}, wallBody)
	pw.EnsureBody(agent, &component.Transform{X: 0, Z: 0}, agentBody)
	require.NotNil(t, wallBody.Body)
	require.NotNil(t, agentBody.Shape)

	bounds := pw.StaticBounds()
	require.Len(t, bounds, 1)
	assert.Equal(t, wall, bounds[0].Entity)
	assert.InDelta(t, 3, bounds[0].Rect.Center.X, 1e-9)
	assert.InDelta(t, -4, bounds[0].Rect.Center.Y, 1e-9)
	assert.InDelta(t, 6, bounds[0].Rect.Extent.X, 1e-9)
	assert.InDelta(t, 2, bounds[0].Rect.Extent.Y, 1e-9)
}

func TestKinematicBodyFollowsTransform(t *testing.T) {
	pw := NewPhysicsWorld()
	w := NewWorld()
	e := CreateEntity(w)
	tr := &component.Transform{X: 1, Z: 1}
	body := &component.PhysicsBody{Width: 1, Depth: 1}
	pw.EnsureBody(e, tr, body)

	tr.SetGround(common.V(4, -2))
	pw.SyncKinematic(tr, body)
	pw.Step(1.0 / 60)
	pos := body.Body.Position()
	assert.InDelta(t, 4, pos.X, 1e-9)
	assert.InDelta(t, -2, pos.Y, 1e-9)

	pw.RemoveBody(body)
	assert.Nil(t, body.Body)
	assert.Empty(t, pw.StaticBounds())
}

func TestClearReleasesBodies(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	wall := CreateEntity(w)
	tr := &component.Transform{X: 2, Z: 2}
	body := &component.PhysicsBody{Width: 4, Depth: 4, Static: true}
	require.NoError(t, Add(w, wall, component.TransformComponent.Kind(), tr))
	require.NoError(t, Add(w, wall, component.PhysicsBodyComponent.Kind(), body))
	pw.EnsureBody(wall, tr, body)
	CreateEntity(w)
	w.Events().Push(Event{Type: EventObstacleDropped})
	require.Len(t, pw.StaticBounds(), 1)

	Clear(w)

	assert.Empty(t, Entities(w))
	assert.False(t, IsAlive(w, wall))
	assert.Nil(t, body.Body)
	assert.Empty(t, pw.StaticBounds())
	assert.Zero(t, w.Events().Len())
	assert.Same(t, pw, w.PhysicsWorld())
}
