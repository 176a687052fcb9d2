package navmesh

import "math"

// CellSize is the number of world units covered by one grid cell on each axis.
const CellSize = 2.0

// WorldToCell converts a world coordinate on one axis into a cell index for a
// grid whose cell 0 starts at min and which has n cells on that axis. The
// result is clamped to [0, n-1]; n <= 0 yields 0.
func WorldToCell(p, min float64, n int) int {
	return clampCell(int(math.Round((p-min)/CellSize)), n)
}

// CellToWorld returns the world coordinate of cell i on one axis.
func CellToWorld(i int, min float64) float64 {
	return min + float64(i)*CellSize
}

// cellSpan returns the inclusive cell range whose reference points fall in
// [lo, hi]. A span thinner than a cell collapses to the cell nearest center.
// ok is false when the grid has no cells on this axis.
func cellSpan(lo, hi, center, min float64, n int) (from, to int, ok bool) {
	if n <= 0 {
		return 0, 0, false
	}
	from = int(math.Ceil((lo - min) / CellSize))
	to = int(math.Floor((hi - min) / CellSize))
	if from > to {
		c := int(math.Round((center - min) / CellSize))
		from, to = c, c
	}
	return clampCell(from, n), clampCell(to, n), true
}

func clampCell(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
