package system

import (
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
)

// PhysicsSystem keeps the Chipmunk space in step with the ECS: it creates
// bodies for new PhysicsBody components, moves kinematic bodies to their
// transforms and advances the space.
type PhysicsSystem struct {
	dt float64
}

func NewPhysicsSystem(tickRate float64) *PhysicsSystem {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &PhysicsSystem{dt: 1 / tickRate}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if body.Body == nil {
			pw.EnsureBody(e, t, body)
			return
		}
		pw.SyncKinematic(t, body)
	})

	pw.Step(ps.dt)
}
