// Package entity turns scene specs into ECS entities.
package entity

import (
	"fmt"

	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/milk9111/navgrid/prefabs"
)

// Scene indexes the entities BuildScene created.
type Scene struct {
	Regions   []ecs.Entity
	Obstacles []ecs.Entity
	Walls     []ecs.Entity
	Agents    []ecs.Entity
	ByName    map[string]ecs.Entity
}

type buildFn func(w *ecs.World, e ecs.Entity) error

// BuildScene creates one entity per region, obstacle, wall and agent in spec.
// Walls get static physics bodies; the physics system creates them on its
// next update.
func BuildScene(w *ecs.World, spec prefabs.SceneSpec) (*Scene, error) {
	if w == nil {
		return nil, fmt.Errorf("entity: build scene %s: nil world", spec.Name)
	}

	s := &Scene{ByName: make(map[string]ecs.Entity)}

	for _, r := range spec.Regions {
		e, err := s.create(w, r.Name, transformAt(r.Center), func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.NavRegionComponent.Kind(), &component.NavRegion{
				ID:    r.RegionID(),
				Width: r.Extent.X,
				Depth: r.Extent.Z,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("entity: region %s: %w", r.Name, err)
		}
		s.Regions = append(s.Regions, e)
	}

	for _, o := range spec.Obstacles {
		e, err := s.create(w, o.Name, transformAt(o.Center), func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.NavObstacleComponent.Kind(), &component.NavObstacle{
				Width: o.Extent.X,
				Depth: o.Extent.Z,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("entity: obstacle %s: %w", o.Name, err)
		}
		s.Obstacles = append(s.Obstacles, e)
	}

	for _, wall := range spec.Walls {
		e, err := s.create(w, wall.Name, transformAt(wall.Center), func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
				Width:  wall.Extent.X,
				Depth:  wall.Extent.Z,
				Static: true,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("entity: wall %s: %w", wall.Name, err)
		}
		s.Walls = append(s.Walls, e)
	}

	for _, a := range spec.Agents {
		e, err := s.create(w, a.Name, transformAt(a.Position), agentBuilders(a)...)
		if err != nil {
			return nil, fmt.Errorf("entity: agent %s: %w", a.Name, err)
		}
		s.Agents = append(s.Agents, e)
	}

	return s, nil
}

func agentBuilders(a prefabs.AgentSpec) []buildFn {
	patrol := make([]common.Vec2, 0, len(a.Patrol))
	for _, p := range a.Patrol {
		patrol = append(patrol, p.Vec())
	}

	fns := []buildFn{
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.NavAgentComponent.Kind(), &component.NavAgent{
				Goal:         a.GoalOrPosition(),
				Speed:        a.Speed,
				ArriveRadius: a.ArriveRadius,
				Patrol:       patrol,
			})
		},
		// Agents carry kinematic sensors so they show up in the space without
		// being baked into the grids.
		func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Depth: 1})
		},
	}
	if a.Script != "" {
		fns = append(fns, func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: a.Script})
		})
	}
	if a.Color.Color != nil {
		fns = append(fns, func(w *ecs.World, e ecs.Entity) error {
			return ecs.Add(w, e, component.TintComponent.Kind(), &component.Tint{Color: a.Color.Color})
		})
	}
	return fns
}

func (s *Scene) create(w *ecs.World, name string, t component.Transform, fns ...buildFn) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &t); err != nil {
		return e, err
	}
	if name != "" {
		if err := ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
			return e, err
		}
		s.ByName[name] = e
	}
	for _, fn := range fns {
		if err := fn(w, e); err != nil {
			return e, err
		}
	}
	return e, nil
}

func transformAt(p prefabs.Vec2Spec) component.Transform {
	return component.Transform{X: p.X, Z: p.Z}
}
