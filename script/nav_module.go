package script

import (
	"math"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/navgrid/common"
)

func (r *Runtime) navModule() map[string]tengo.Object {
	return map[string]tengo.Object{
		"find_next_step": &tengo.UserFunction{Name: "find_next_step", Value: r.findNextStep},
		"distance":       &tengo.UserFunction{Name: "distance", Value: distance},
	}
}

// find_next_step(sx, sz, fx, fz) returns {x, z} or undefined.
func (r *Runtime) findNextStep(args ...tengo.Object) (tengo.Object, error) {
	v, err := floatArgs("find_next_step", args, 4)
	if err != nil {
		return nil, err
	}
	if r.nav == nil {
		return tengo.UndefinedValue, nil
	}
	next, ok := r.nav.FindNextStep(common.Vec2{X: v[0], Y: v[1]}, common.Vec2{X: v[2], Y: v[3]})
	if !ok {
		return tengo.UndefinedValue, nil
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": &tengo.Float{Value: next.X},
		"z": &tengo.Float{Value: next.Y},
	}}, nil
}

// distance(ax, az, bx, bz)
func distance(args ...tengo.Object) (tengo.Object, error) {
	v, err := floatArgs("distance", args, 4)
	if err != nil {
		return nil, err
	}
	return &tengo.Float{Value: math.Hypot(v[2]-v[0], v[3]-v[1])}, nil
}

func floatArgs(fn string, args []tengo.Object, n int) ([]float64, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fn,
				Expected: "float(compatible)",
				Found:    a.TypeName(),
			}
		}
		out[i] = f
	}
	return out, nil
}
