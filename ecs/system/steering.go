package system

import (
	"math"

	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
)

// Stepper answers next-step queries.
type Stepper interface {
	FindNextStep(start, finish common.Vec2) (common.Vec2, bool)
	SameCell(a, b common.Vec2) bool
}

// SteeringSystem moves agents one waypoint at a time toward their goals.
type SteeringSystem struct {
	nav      Stepper
	tickRate float64
}

func NewSteeringSystem(nav Stepper, tickRate float64) *SteeringSystem {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &SteeringSystem{nav: nav, tickRate: tickRate}
}

func (ss *SteeringSystem) Update(w *ecs.World) {
	if ss == nil || ss.nav == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, a *component.NavAgent, t *component.Transform) {
		ss.steer(w, e, a, t)
	})
}

func (ss *SteeringSystem) steer(w *ecs.World, e ecs.Entity, a *component.NavAgent, t *component.Transform) {
	pos := t.Ground()
	dist := a.Goal.Sub(pos).Len()

	if dist <= math.Max(a.ArriveRadius, 0) {
		t.SetGround(a.Goal)
		a.HasWaypoint = false
		a.Reachable = true
		a.StuckSteps = 0
		if !a.Arrived {
			a.Arrived = true
			w.Events().Push(ecs.Event{Type: ecs.EventAgentArrived, Data: ecs.EntityEvent{Entity: e}})
		}
		return
	}
	a.Arrived = false

	maxStep := a.Speed / ss.tickRate
	next, ok := ss.nav.FindNextStep(pos, a.Goal)
	switch {
	case ok:
		a.Reachable = true
	case ss.nav.SameCell(pos, a.Goal):
		// No next step exists inside a single cell; walk straight at the goal.
		next = a.Goal
		a.Reachable = true
	default:
		a.Reachable = false
		a.HasWaypoint = false
		a.StuckSteps++
		if a.StuckSteps == component.StuckAfterSteps {
			w.Events().Push(ecs.Event{Type: ecs.EventAgentStuck, Data: ecs.EntityEvent{Entity: e}})
		}
		return
	}

	a.StuckSteps = 0
	a.Waypoint = next
	a.HasWaypoint = true
	moved, _ := common.MoveToward(pos, next, maxStep)
	t.SetGround(moved)
}
