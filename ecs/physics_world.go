package ecs

import (
	"cmp"
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs/component"
)

const (
	collisionTypeWall cp.CollisionType = iota + 1
	collisionTypeAgent
)

// PhysicsWorld owns the Chipmunk space. The space's X/Y plane is the world
// X/Z ground plane; there is no gravity.
type PhysicsWorld struct {
	space         *cp.Space
	shapeToEntity map[*cp.Shape]Entity
}

// NewPhysicsWorld creates an empty physics world.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	return &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
	}
}

// EnsureBody creates a box body for e if body has none yet. Static bodies
// never move; other bodies are kinematic and follow their transform.
func (pw *PhysicsWorld) EnsureBody(e Entity, t *component.Transform, body *component.PhysicsBody) {
	if pw == nil || t == nil || body == nil || body.Body != nil {
		return
	}
	var cpBody *cp.Body
	if body.Static {
		cpBody = cp.NewStaticBody()
	} else {
		cpBody = cp.NewKinematicBody()
	}
	cpBody.SetPosition(cp.Vector{X: t.X, Y: t.Z})
	shape := cp.NewBox(cpBody, body.Width, body.Depth, 0)
	if body.Static {
		shape.SetCollisionType(collisionTypeWall)
	} else {
		shape.SetCollisionType(collisionTypeAgent)
		shape.SetSensor(true)
	}

	pw.space.AddBody(cpBody)
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e

	body.Body = cpBody
	body.Shape = shape
}

// SyncKinematic moves a non-static body to the transform's ground position.
func (pw *PhysicsWorld) SyncKinematic(t *component.Transform, body *component.PhysicsBody) {
	if pw == nil || t == nil || body == nil || body.Body == nil || body.Static {
		return
	}
	body.Body.SetPosition(cp.Vector{X: t.X, Y: t.Z})
}

// RemoveBody detaches body from the space.
func (pw *PhysicsWorld) RemoveBody(body *component.PhysicsBody) {
	if pw == nil || body == nil || body.Body == nil {
		return
	}
	if body.Shape != nil {
		delete(pw.shapeToEntity, body.Shape)
		pw.space.RemoveShape(body.Shape)
	}
	pw.space.RemoveBody(body.Body)
	body.Body = nil
	body.Shape = nil
}

// Step advances the space by dt seconds.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// StaticBounds returns the ground-plane bounding box of every static shape,
// ordered by owning entity.
func (pw *PhysicsWorld) StaticBounds() []StaticBound {
	if pw == nil {
		return nil
	}
	out := make([]StaticBound, 0, len(pw.shapeToEntity))
	pw.space.EachShape(func(shape *cp.Shape) {
		if shape.Body().GetType() != cp.BODY_STATIC {
			return
		}
		bb := shape.BB()
		out = append(out, StaticBound{
			Entity: pw.shapeToEntity[shape],
			Rect: common.RectFromCenter(
				common.Vec2{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2},
				common.Vec2{X: bb.R - bb.L, Y: bb.T - bb.B},
			),
		})
	})
	slices.SortFunc(out, func(a, b StaticBound) int {
		return cmp.Compare(a.Entity, b.Entity)
	})
	return out
}

// StaticBound pairs a static shape's bounds with its owning entity.
type StaticBound struct {
	Entity Entity
	Rect   common.Rect
}
