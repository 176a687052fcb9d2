// Package script runs tengo behaviour scripts that choose navigation goals.
package script

import (
	"context"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/navgrid/common"
)

// Querier is the slice of the navigator scripts may call.
type Querier interface {
	FindNextStep(start, finish common.Vec2) (common.Vec2, bool)
}

// Loader returns script source by path.
type Loader func(path string) ([]byte, error)

// Input is the per-run view a script gets of its agent.
type Input struct {
	Step     int
	Position common.Vec2
	Goal     common.Vec2
	Arrived  bool
	Stuck    bool
	Points   []common.Vec2
	Bounds   common.Rect
	Memory   map[string]any
}

// Output is what a script decided this run.
type Output struct {
	Goal      common.Vec2
	Reachable bool
	Memory    map[string]any
}

// Runtime compiles each script once and reruns it with fresh globals.
type Runtime struct {
	load     Loader
	nav      Querier
	compiled map[string]*tengo.Compiled
}

func NewRuntime(load Loader, nav Querier) *Runtime {
	return &Runtime{
		load:     load,
		nav:      nav,
		compiled: make(map[string]*tengo.Compiled),
	}
}

// Invalidate drops compiled scripts so the next Run recompiles from source.
func (r *Runtime) Invalidate() {
	r.compiled = make(map[string]*tengo.Compiled)
}

// Run executes the script at path against in.
func (r *Runtime) Run(ctx context.Context, path string, in Input) (Output, error) {
	c, err := r.get(path)
	if err != nil {
		return Output{}, err
	}

	mem := in.Memory
	if mem == nil {
		mem = map[string]any{}
	}
	globals := map[string]any{
		"agent":     agentMap(in),
		"memory":    mem,
		"goal_x":    in.Goal.X,
		"goal_z":    in.Goal.Y,
		"reachable": true,
	}
	for name, v := range globals {
		if err := c.Set(name, v); err != nil {
			return Output{}, fmt.Errorf("script: %s: set %s: %w", path, name, err)
		}
	}
	if err := c.RunContext(ctx); err != nil {
		return Output{}, fmt.Errorf("script: %s: run: %w", path, err)
	}

	out := Output{
		Goal:      common.Vec2{X: c.Get("goal_x").Float(), Y: c.Get("goal_z").Float()},
		Reachable: c.Get("reachable").Bool(),
		Memory:    c.Get("memory").Map(),
	}
	return out, nil
}

func (r *Runtime) get(path string) (*tengo.Compiled, error) {
	if c, ok := r.compiled[path]; ok {
		return c, nil
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("script: empty path")
	}
	src, err := r.load(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}

	s := tengo.NewScript(src)
	globals := []struct {
		name  string
		value any
	}{
		{"agent", map[string]any{}},
		{"memory", map[string]any{}},
		{"goal_x", 0.0},
		{"goal_z", 0.0},
		{"reachable", true},
	}
	for _, g := range globals {
		if err := s.Add(g.name, g.value); err != nil {
			return nil, fmt.Errorf("script: %s: declare %s: %w", path, g.name, err)
		}
	}

	modules := stdlib.GetModuleMap("math", "rand", "fmt", "text")
	modules.AddBuiltinModule("nav", r.navModule())
	s.SetImports(modules)

	c, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", path, err)
	}
	r.compiled[path] = c
	return c, nil
}

func agentMap(in Input) map[string]any {
	points := make([]any, 0, len(in.Points))
	for _, p := range in.Points {
		points = append(points, map[string]any{"x": p.X, "z": p.Y})
	}
	lo, hi := in.Bounds.Min(), in.Bounds.Max()
	return map[string]any{
		"step":    in.Step,
		"x":       in.Position.X,
		"z":       in.Position.Y,
		"goal_x":  in.Goal.X,
		"goal_z":  in.Goal.Y,
		"arrived": in.Arrived,
		"stuck":   in.Stuck,
		"points":  points,
		"bounds": map[string]any{
			"min_x": lo.X,
			"min_z": lo.Y,
			"max_x": hi.X,
			"max_z": hi.Y,
		},
	}
}
