package navmesh

import "strings"

// Cell addresses a grid cell. Z is the row.
type Cell struct {
	X int
	Z int
}

const noComponent = -1

// Grid is a region's occupancy grid together with its connectivity
// partition. Two free cells with the same component label are reachable from
// one another without crossing a blocked cell.
type Grid struct {
	cols       int
	rows       int
	blocked    []bool
	components []int
	count      int
}

func newGrid(cols, rows int) *Grid {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	g := &Grid{
		cols:       cols,
		rows:       rows,
		blocked:    make([]bool, cols*rows),
		components: make([]int, cols*rows),
	}
	g.generateComponents()
	return g
}

func (g *Grid) Cols() int { return g.cols }
func (g *Grid) Rows() int { return g.rows }

// Empty reports whether the grid has no cells.
func (g *Grid) Empty() bool {
	return g == nil || len(g.blocked) == 0
}

func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.Z >= 0 && c.X < g.cols && c.Z < g.rows
}

func (g *Grid) index(c Cell) int {
	return c.Z*g.cols + c.X
}

// Blocked reports whether c is blocked. Cells outside the grid are blocked.
func (g *Grid) Blocked(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.blocked[g.index(c)]
}

// Component returns the connectivity label of c, or -1 for blocked and
// out-of-range cells.
func (g *Grid) Component(c Cell) int {
	if !g.InBounds(c) {
		return noComponent
	}
	return g.components[g.index(c)]
}

// Connected reports whether a and b are free and share a component.
func (g *Grid) Connected(a, b Cell) bool {
	ca := g.Component(a)
	return ca != noComponent && ca == g.Component(b)
}

// ComponentCount returns the number of connectivity components.
func (g *Grid) ComponentCount() int {
	return g.count
}

func (g *Grid) BlockedCount() int {
	n := 0
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// fill marks every cell in the inclusive range [lo, hi] as blocked. The
// caller recomputes components once all marks are placed.
func (g *Grid) fill(lo, hi Cell) {
	for z := lo.Z; z <= hi.Z; z++ {
		for x := lo.X; x <= hi.X; x++ {
			c := Cell{X: x, Z: z}
			if g.InBounds(c) {
				g.blocked[g.index(c)] = true
			}
		}
	}
}

// generateComponents labels free cells by 4-connected flood fill. Diagonal
// moves never cut corners, so 4-connectivity matches reachability.
func (g *Grid) generateComponents() {
	for i := range g.components {
		g.components[i] = noComponent
	}
	g.count = 0
	stack := make([]int, 0, 64)
	for start := range g.blocked {
		if g.blocked[start] || g.components[start] != noComponent {
			continue
		}
		label := g.count
		g.count++
		g.components[start] = label
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			cur := Cell{X: idx % g.cols, Z: idx / g.cols}
			for _, d := range orthogonal {
				n := Cell{X: cur.X + d.X, Z: cur.Z + d.Z}
				if !g.InBounds(n) {
					continue
				}
				ni := g.index(n)
				if g.blocked[ni] || g.components[ni] != noComponent {
					continue
				}
				g.components[ni] = label
				stack = append(stack, ni)
			}
		}
	}
}

// String renders the grid one row per line, '#' for blocked and '.' for free.
func (g *Grid) String() string {
	if g.Empty() {
		return ""
	}
	var sb strings.Builder
	for z := 0; z < g.rows; z++ {
		for x := 0; x < g.cols; x++ {
			if g.blocked[z*g.cols+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equal reports whether g and o have identical cells and partitions.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.cols != o.cols || g.rows != o.rows || g.count != o.count {
		return false
	}
	for i := range g.blocked {
		if g.blocked[i] != o.blocked[i] || g.components[i] != o.components[i] {
			return false
		}
	}
	return true
}
