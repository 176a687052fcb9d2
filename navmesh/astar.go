package navmesh

import (
	"container/heap"
	"math"
)

var orthogonal = [4]Cell{{X: 1}, {X: -1}, {Z: 1}, {Z: -1}}

var diagonal = [4]Cell{{X: 1, Z: 1}, {X: 1, Z: -1}, {X: -1, Z: 1}, {X: -1, Z: -1}}

// searchPath runs A* over the 8-connected grid from start to goal and returns
// the cell path including both ends. Diagonal moves require both adjacent
// orthogonal cells to be free. It returns nil when goal is unreachable.
func searchPath(g *Grid, start, goal Cell) []Cell {
	if g.Blocked(start) || g.Blocked(goal) {
		return nil
	}
	startIdx := g.index(start)
	goalIdx := g.index(goal)
	if startIdx == goalIdx {
		return []Cell{start}
	}

	size := g.cols * g.rows
	cameFrom := make([]int, size)
	gScore := make([]float64, size)
	closed := make([]bool, size)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}
	gScore[startIdx] = 0

	open := &openSet{}
	seq := 0
	heap.Push(open, &openItem{cell: start, f: octile(start, goal), seq: seq})

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.cell
		curIdx := g.index(cur)
		if closed[curIdx] {
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return reconstructPath(g, cameFrom, startIdx, goalIdx)
		}

		for _, step := range g.neighbors(cur) {
			idx := g.index(step.cell)
			if closed[idx] {
				continue
			}
			tentative := gScore[curIdx] + step.cost
			if tentative < gScore[idx] {
				cameFrom[idx] = curIdx
				gScore[idx] = tentative
				seq++
				heap.Push(open, &openItem{
					cell: step.cell,
					f:    tentative + octile(step.cell, goal),
					g:    tentative,
					seq:  seq,
				})
			}
		}
	}
	return nil
}

type move struct {
	cell Cell
	cost float64
}

func (g *Grid) neighbors(c Cell) []move {
	out := make([]move, 0, 8)
	for _, d := range orthogonal {
		n := Cell{X: c.X + d.X, Z: c.Z + d.Z}
		if !g.Blocked(n) {
			out = append(out, move{cell: n, cost: 1})
		}
	}
	for _, d := range diagonal {
		n := Cell{X: c.X + d.X, Z: c.Z + d.Z}
		if g.Blocked(n) || g.Blocked(Cell{X: c.X + d.X, Z: c.Z}) || g.Blocked(Cell{X: c.X, Z: c.Z + d.Z}) {
			continue
		}
		out = append(out, move{cell: n, cost: math.Sqrt2})
	}
	return out
}

func reconstructPath(g *Grid, cameFrom []int, startIdx, goalIdx int) []Cell {
	path := make([]Cell, 0, 32)
	cur := goalIdx
	for cur != -1 {
		path = append(path, Cell{X: cur % g.cols, Z: cur / g.cols})
		if cur == startIdx {
			break
		}
		cur = cameFrom[cur]
	}
	if cur != startIdx {
		return nil
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func octile(a, b Cell) float64 {
	dx := math.Abs(float64(a.X - b.X))
	dz := math.Abs(float64(a.Z - b.Z))
	return math.Max(dx, dz) + (math.Sqrt2-1)*math.Min(dx, dz)
}

type openItem struct {
	cell  Cell
	f     float64
	g     float64
	seq   int
	index int
}

type openSet []*openItem

func (o openSet) Len() int { return len(o) }

// Less orders by f, then prefers deeper nodes, then insertion order so that
// equal-cost searches always expand in the same sequence.
func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	if o[i].g != o[j].g {
		return o[i].g > o[j].g
	}
	return o[i].seq < o[j].seq
}

func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}

func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}

func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
