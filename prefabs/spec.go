package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/milk9111/navgrid/common"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScene = errors.New("prefabs: invalid scene")

// Vec2Spec is a ground-plane point or size in YAML.
type Vec2Spec struct {
	X float64 `yaml:"x"`
	Z float64 `yaml:"z"`
}

func (v Vec2Spec) Vec() common.Vec2 {
	return common.Vec2{X: v.X, Y: v.Z}
}

type SceneSpec struct {
	Name      string         `yaml:"name"`
	Regions   []RegionSpec   `yaml:"regions"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
	Walls     []ObstacleSpec `yaml:"walls"`
	Agents    []AgentSpec    `yaml:"agents"`
}

type RegionSpec struct {
	Name   string   `yaml:"name"`
	ID     string   `yaml:"id"`
	Center Vec2Spec `yaml:"center"`
	Extent Vec2Spec `yaml:"extent"`
}

type ObstacleSpec struct {
	Name   string   `yaml:"name"`
	Center Vec2Spec `yaml:"center"`
	Extent Vec2Spec `yaml:"extent"`
}

type AgentSpec struct {
	Name         string     `yaml:"name"`
	Position     Vec2Spec   `yaml:"position"`
	Goal         *Vec2Spec  `yaml:"goal"`
	Speed        float64    `yaml:"speed"`
	ArriveRadius float64    `yaml:"arrive_radius"`
	Script       string     `yaml:"script"`
	Patrol       []Vec2Spec `yaml:"patrol"`
	Color        YAMLColor  `yaml:"color"`
}

// LoadSpec reads and decodes a YAML file resolved through Load.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene loads and validates a scene.
func LoadScene(name string) (SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return SceneSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: scene %s: %w", name, err)
	}
	return spec, nil
}

// ParseScene decodes and validates scene YAML.
func ParseScene(data []byte) (SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return SceneSpec{}, fmt.Errorf("prefabs: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return SceneSpec{}, err
	}
	return spec, nil
}

// Validate checks the parts of a scene the simulation relies on. Region
// geometry itself is not checked; degenerate regions are allowed.
func (s SceneSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScene)
	}
	ids := make(map[uuid.UUID]string, len(s.Regions))
	for i, r := range s.Regions {
		if r.ID == "" {
			continue
		}
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return fmt.Errorf("%w: region %d (%s): bad id %q: %v", ErrInvalidScene, i, r.Name, r.ID, err)
		}
		if prev, ok := ids[id]; ok {
			return fmt.Errorf("%w: region %s reuses id of %s", ErrInvalidScene, r.Name, prev)
		}
		ids[id] = r.Name
	}
	for _, a := range s.Agents {
		if a.Speed < 0 {
			return fmt.Errorf("%w: agent %s has negative speed", ErrInvalidScene, a.Name)
		}
		if a.ArriveRadius < 0 {
			return fmt.Errorf("%w: agent %s has negative arrive_radius", ErrInvalidScene, a.Name)
		}
	}
	return nil
}

// GoalOrPosition returns the configured goal, or the start position when the
// agent has none.
func (a AgentSpec) GoalOrPosition() common.Vec2 {
	if a.Goal == nil {
		return a.Position.Vec()
	}
	return a.Goal.Vec()
}

// RegionID returns the configured id, or a fresh random one when unset.
func (r RegionSpec) RegionID() uuid.UUID {
	if id, err := uuid.Parse(r.ID); err == nil {
		return id
	}
	return uuid.New()
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
