package system

import (
	"context"

	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/milk9111/navgrid/navmesh"
	"github.com/milk9111/navgrid/script"
	"go.uber.org/zap"
)

// ScriptSystem runs each agent's behaviour script once per step and applies
// the goal it picks.
type ScriptSystem struct {
	rt   *script.Runtime
	nav  *navmesh.Navigator
	log  *zap.Logger
	step int
}

func NewScriptSystem(rt *script.Runtime, nav *navmesh.Navigator, log *zap.Logger) *ScriptSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScriptSystem{rt: rt, nav: nav, log: log}
}

func (s *ScriptSystem) Update(w *ecs.World) {
	if s == nil || s.rt == nil || w == nil {
		return
	}
	s.step++

	ecs.ForEach3(w, component.ScriptComponent.Kind(), component.NavAgentComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sc *component.Script, a *component.NavAgent, t *component.Transform) {
		if sc.Path == "" {
			return
		}
		pos := t.Ground()
		out, err := s.rt.Run(context.Background(), sc.Path, script.Input{
			Step:     s.step,
			Position: pos,
			Goal:     a.Goal,
			Arrived:  a.Arrived,
			Stuck:    a.Stuck(),
			Points:   a.Patrol,
			Bounds:   s.bounds(pos),
			Memory:   sc.Memory,
		})
		if err != nil {
			s.log.Warn("script: run failed", zap.Stringer("entity", e), zap.String("path", sc.Path), zap.Error(err))
			return
		}
		sc.Memory = out.Memory
		a.SetGoal(out.Goal)
		if !out.Reachable {
			s.log.Debug("script: goal unreachable", zap.Stringer("entity", e), zap.Stringer("goal", out.Goal))
		}
	})
}

// bounds returns the first region containing p, or an empty rect at p.
func (s *ScriptSystem) bounds(p common.Vec2) common.Rect {
	if s.nav != nil {
		for _, r := range s.nav.Regions() {
			if b := r.Bounds(); b.Contains(p) {
				return b
			}
		}
	}
	return common.Rect{Center: p}
}
