package system

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/milk9111/navgrid/navmesh"
	"github.com/milk9111/navgrid/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptSystemSetsGoal(t *testing.T) {
	w := ecs.NewWorld()
	nav := navmesh.New()
	nav.UpsertRegion(navmesh.NewRegion(uuid.New(), common.V(0, 0), common.V(20, 20)))

	rt := script.NewRuntime(func(path string) ([]byte, error) {
		if path != "corner.tengo" {
			return nil, errors.New("missing")
		}
		return []byte(`goal_x = agent.bounds.max_x
goal_z = agent.bounds.min_z
memory.runs = (is_undefined(memory.runs) ? 0 : memory.runs) + 1`), nil
	}, nav)

	e, a, _ := addAgent(t, w, common.V(1, 1), component.NavAgent{Goal: common.V(1, 1), Arrived: true})
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: "corner.tengo"}))

	ss := NewScriptSystem(rt, nav, nil)
	ss.Update(w)
	ss.Update(w)

	assert.Equal(t, common.V(10, -10), a.Goal)
	assert.False(t, a.Arrived)
	sc, _ := ecs.Get(w, e, component.ScriptComponent.Kind())
	assert.EqualValues(t, 2, sc.Memory["runs"])
}

func TestScriptSystemKeepsGoalOnError(t *testing.T) {
	w := ecs.NewWorld()
	rt := script.NewRuntime(func(string) ([]byte, error) { return []byte(`goal_x = (`), nil }, nil)

	e, a, _ := addAgent(t, w, common.V(0, 0), component.NavAgent{Goal: common.V(3, 3)})
	require.NoError(t, ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: "broken.tengo"}))

	NewScriptSystem(rt, nil, nil).Update(w)
	assert.Equal(t, common.V(3, 3), a.Goal)
}
