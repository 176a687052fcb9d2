package navmesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridComponents(t *testing.T) {
	tests := []struct {
		name  string
		fills [][2]Cell
		count int
	}{
		{name: "all_free", count: 1},
		{name: "wall_splits_rows", fills: [][2]Cell{{{X: 0, Z: 2}, {X: 4, Z: 2}}}, count: 2},
		{name: "wall_with_gap", fills: [][2]Cell{{{X: 0, Z: 2}, {X: 3, Z: 2}}}, count: 1},
		{name: "fully_blocked", fills: [][2]Cell{{{X: 0, Z: 0}, {X: 4, Z: 4}}}, count: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(5, 5)
			for _, f := range tc.fills {
				g.fill(f[0], f[1])
			}
			g.generateComponents()
			assert.Equal(t, tc.count, g.ComponentCount())
		})
	}
}

func TestGridDiagonalGapIsNotConnected(t *testing.T) {
	// # .
	// . #
	g := newGrid(2, 2)
	g.fill(Cell{X: 0, Z: 0}, Cell{X: 0, Z: 0})
	g.fill(Cell{X: 1, Z: 1}, Cell{X: 1, Z: 1})
	g.generateComponents()

	require.Equal(t, 2, g.ComponentCount())
	assert.False(t, g.Connected(Cell{X: 1, Z: 0}, Cell{X: 0, Z: 1}))
	assert.Nil(t, searchPath(g, Cell{X: 1, Z: 0}, Cell{X: 0, Z: 1}))
}

func TestGridOutOfRange(t *testing.T) {
	g := newGrid(3, 2)
	assert.True(t, g.Blocked(Cell{X: -1, Z: 0}))
	assert.True(t, g.Blocked(Cell{X: 3, Z: 0}))
	assert.Equal(t, noComponent, g.Component(Cell{X: 0, Z: 2}))
	g.fill(Cell{X: -3, Z: -3}, Cell{X: 0, Z: 0})
	assert.Equal(t, 1, g.BlockedCount())
}

func TestGridString(t *testing.T) {
	g := newGrid(3, 2)
	g.fill(Cell{X: 1, Z: 0}, Cell{X: 1, Z: 1})
	assert.Equal(t, ".#.\n.#.\n", g.String())
}

func TestEmptyGrid(t *testing.T) {
	cases := []struct {
		name       string
		cols, rows int
	}{
		{"no columns", 0, 4},
		{"no rows", 4, 0},
		{"no cells", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := newGrid(tc.cols, tc.rows)
			assert.True(t, g.Empty())
			assert.Equal(t, 0, g.ComponentCount())
			assert.Equal(t, "", g.String())
		})
	}
}

func TestSearchPath(t *testing.T) {
	g := newGrid(5, 5)
	path := searchPath(g, Cell{X: 0, Z: 0}, Cell{X: 4, Z: 4})
	require.Len(t, path, 5)
	for i, c := range path {
		assert.Equal(t, Cell{X: i, Z: i}, c)
	}

	assert.Equal(t, []Cell{{X: 2, Z: 2}}, searchPath(g, Cell{X: 2, Z: 2}, Cell{X: 2, Z: 2}))
}

func TestSearchPathAvoidsCornerCutting(t *testing.T) {
	g := newGrid(3, 3)
	g.fill(Cell{X: 1, Z: 0}, Cell{X: 1, Z: 0})
	g.generateComponents()

	path := searchPath(g, Cell{X: 0, Z: 0}, Cell{X: 2, Z: 0})
	require.NotNil(t, path)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if a.X != b.X && a.Z != b.Z {
			assert.False(t, g.Blocked(Cell{X: b.X, Z: a.Z}), "diagonal %v->%v cuts a corner", a, b)
			assert.False(t, g.Blocked(Cell{X: a.X, Z: b.Z}), "diagonal %v->%v cuts a corner", a, b)
		}
	}
	assert.Equal(t, Cell{X: 0, Z: 1}, path[1])
}
