// Package sim wires the ECS world, physics space, navigator and scripts into
// a fixed-rate simulation.
package sim

import (
	"context"
	"fmt"
	"image/color"

	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/config"
	"github.com/milk9111/navgrid/ecs"
	"github.com/milk9111/navgrid/ecs/component"
	"github.com/milk9111/navgrid/ecs/entity"
	"github.com/milk9111/navgrid/ecs/system"
	"github.com/milk9111/navgrid/navmesh"
	"github.com/milk9111/navgrid/prefabs"
	"github.com/milk9111/navgrid/script"
	"go.uber.org/zap"
)

// Simulation owns everything needed to advance one scene. It is driven from
// a single goroutine.
type Simulation struct {
	cfg config.Config
	log *zap.Logger

	world     *ecs.World
	nav       *navmesh.Navigator
	scripts   *script.Runtime
	navSystem *system.NavigationSystem
	scheduler *ecs.Scheduler

	spec  prefabs.SceneSpec
	scene *entity.Scene
	step  int
}

// AgentState is a snapshot of one agent for printing or drawing.
type AgentState struct {
	Entity      ecs.Entity
	Name        string
	Position    common.Vec2
	Goal        common.Vec2
	Waypoint    common.Vec2
	HasWaypoint bool
	Arrived     bool
	Reachable   bool
	Stuck       bool
	Color       color.Color
}

func New(cfg config.Config, spec prefabs.SceneSpec, log *zap.Logger) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	nav := navmesh.New(navmesh.WithLogger(log.Named("navmesh")))
	scripts := script.NewRuntime(prefabs.LoadScript, nav)
	navSystem := system.NewNavigationSystem(nav, log)

	s := &Simulation{
		cfg:       cfg,
		log:       log,
		nav:       nav,
		scripts:   scripts,
		navSystem: navSystem,
		scheduler: ecs.NewScheduler(
			system.NewPhysicsSystem(cfg.TickRate),
			navSystem,
			system.NewScriptSystem(scripts, nav, log),
			system.NewSteeringSystem(nav, cfg.TickRate),
		),
	}
	if err := s.load(spec); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) load(spec prefabs.SceneSpec) error {
	if s.world == nil {
		s.world = ecs.NewWorld()
		s.world.SetPhysicsWorld(ecs.NewPhysicsWorld())
	} else {
		ecs.Clear(s.world)
	}

	scene, err := entity.BuildScene(s.world, spec)
	if err != nil {
		return fmt.Errorf("sim: load scene %s: %w", spec.Name, err)
	}

	s.scene = scene
	s.spec = spec
	s.step = 0
	s.log.Info("sim: scene loaded",
		zap.String("scene", spec.Name),
		zap.Int("regions", len(scene.Regions)),
		zap.Int("obstacles", len(scene.Obstacles)+len(scene.Walls)),
		zap.Int("agents", len(scene.Agents)),
	)
	return nil
}

// Reload clears the world and builds spec into it. The navigator and script
// cache are reset. A spec that fails validation leaves the current scene
// running.
func (s *Simulation) Reload(spec prefabs.SceneSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("sim: reload: %w", err)
	}
	if err := s.load(spec); err != nil {
		return err
	}
	s.nav.Reset()
	s.navSystem.Forget()
	s.scripts.Invalidate()
	return nil
}

// ReloadScripts drops compiled scripts so edited sources are picked up.
func (s *Simulation) ReloadScripts() {
	s.scripts.Invalidate()
}

// Step advances one tick and returns the events it raised.
func (s *Simulation) Step() []ecs.Event {
	s.scheduler.Update(s.world)
	s.step++

	events := s.world.Events().Drain()
	for _, evt := range events {
		if ee, ok := evt.Data.(ecs.EntityEvent); ok {
			s.log.Debug("sim: event", zap.Int("step", s.step), zap.String("type", evt.Type), zap.String("entity", s.name(ee.Entity)))
		}
	}
	return events
}

// Run steps until steps ticks have run or ctx is done. Zero steps runs until
// ctx is done. onStep may be nil; an error from it stops the run.
func (s *Simulation) Run(ctx context.Context, steps int, onStep func(step int, events []ecs.Event) error) error {
	for i := 0; steps <= 0 || i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		events := s.Step()
		if onStep == nil {
			continue
		}
		if err := onStep(s.step, events); err != nil {
			return err
		}
	}
	return nil
}

// Agents returns every agent in scene order.
func (s *Simulation) Agents() []AgentState {
	out := make([]AgentState, 0, len(s.scene.Agents))
	for _, e := range s.scene.Agents {
		a, ok := ecs.Get(s.world, e, component.NavAgentComponent.Kind())
		if !ok {
			continue
		}
		t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		st := AgentState{
			Entity:      e,
			Name:        s.name(e),
			Position:    t.Ground(),
			Goal:        a.Goal,
			Waypoint:    a.Waypoint,
			HasWaypoint: a.HasWaypoint,
			Arrived:     a.Arrived,
			Reachable:   a.Reachable,
			Stuck:       a.Stuck(),
		}
		if tint, ok := ecs.Get(s.world, e, component.TintComponent.Kind()); ok {
			st.Color = tint.Color
		}
		out = append(out, st)
	}
	return out
}

// Obstacles returns the footprints currently baked into every region, in
// registry order.
func (s *Simulation) Obstacles() []navmesh.Footprint {
	var out []navmesh.Footprint
	for _, r := range s.nav.Regions() {
		out = append(out, s.nav.Obstacles(r.ID)...)
	}
	return out
}

func (s *Simulation) name(e ecs.Entity) string {
	if n, ok := ecs.Get(s.world, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return e.String()
}

func (s *Simulation) Navigator() *navmesh.Navigator { return s.nav }
func (s *Simulation) World() *ecs.World             { return s.world }
func (s *Simulation) Spec() prefabs.SceneSpec       { return s.spec }
func (s *Simulation) StepCount() int                { return s.step }
func (s *Simulation) Config() config.Config         { return s.cfg }
