package component

import "github.com/milk9111/navgrid/common"

// NavAgent steers an entity toward Goal one waypoint at a time.
type NavAgent struct {
	Goal         common.Vec2
	Speed        float64
	ArriveRadius float64

	Waypoint    common.Vec2
	HasWaypoint bool
	Arrived     bool
	Reachable   bool
	StuckSteps  int
	Patrol      []common.Vec2
}

// StuckAfterSteps is how many consecutive steps without a route mark an agent
// as stuck.
const StuckAfterSteps = 10

// Stuck reports whether the agent has gone StuckAfterSteps steps without a
// route to its goal.
func (a *NavAgent) Stuck() bool {
	return a.StuckSteps >= StuckAfterSteps
}

// SetGoal changes the goal and clears arrival state when it moves.
func (a *NavAgent) SetGoal(g common.Vec2) {
	if a.Goal == g {
		return
	}
	a.Goal = g
	a.Arrived = false
	a.StuckSteps = 0
}

var NavAgentComponent = NewComponent[NavAgent]()
