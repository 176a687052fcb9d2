package navmesh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/milk9111/navgrid/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestNavigator(t *testing.T) (*Navigator, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return New(WithLogger(zap.New(core))), logs
}

func squareRegion(center common.Vec2, size float64) Region {
	return NewRegion(uuid.New(), center, common.V(size, size))
}

func TestObstacleBlocksOnlyItsFootprint(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 20)
	n.UpsertRegion(r)

	owner, ok := n.SubmitObstacle(NewFootprint(common.V(3, -4), common.V(6, 2)))
	require.True(t, ok)
	require.Equal(t, r.ID, owner)
	n.RebuildAll()

	g, ok := n.Grid(r.ID)
	require.True(t, ok)
	for z := 0; z < g.Rows(); z++ {
		for x := 0; x < g.Cols(); x++ {
			inside := x >= 5 && x <= 8 && z == 3
			assert.Equal(t, inside, g.Blocked(Cell{X: x, Z: z}), "cell %d,%d", x, z)
		}
	}
	assert.Equal(t, 4, g.BlockedCount())
}

func TestObstacleOutsideEveryRegionContributesNothing(t *testing.T) {
	n, logs := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 10)
	n.UpsertRegion(r)

	_, ok := n.SubmitObstacle(NewFootprint(common.V(100, 100), common.V(4, 4)))
	assert.False(t, ok)
	n.RebuildAll()

	g, _ := n.Grid(r.ID)
	assert.Zero(t, g.BlockedCount())
	assert.Equal(t, 1, g.ComponentCount())
	assert.Equal(t, 1, n.Stats().DroppedObstacles)
	assert.Equal(t, 1, logs.FilterMessage("navmesh: obstacle outside every region").Len())
}

func TestRebuildIsIdempotent(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 16)
	n.UpsertRegion(r)
	n.SubmitObstacle(NewFootprint(common.V(-2, 1), common.V(4, 6)))
	n.SubmitObstacle(NewFootprint(common.V(5, -5), common.V(1, 1)))

	n.RebuildAll()
	first, _ := n.Grid(r.ID)
	n.RebuildAll()
	second, _ := n.Grid(r.ID)

	require.NotSame(t, first, second)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("rebuild changed the grid (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.String(), second.String())
}

func TestSameStartAndFinishHasNoNextStep(t *testing.T) {
	n, _ := newTestNavigator(t)
	n.UpsertRegion(squareRegion(common.V(0, 0), 10))

	for _, p := range []common.Vec2{common.V(0, 0), common.V(-5, -5), common.V(3.2, -1.7), common.V(5, 5)} {
		_, ok := n.FindNextStep(p, p)
		assert.False(t, ok, "point %v", p)
	}
}

func TestRegionEdgeIsInclusive(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 10)
	n.UpsertRegion(r)

	owner, ok := n.SubmitObstacle(NewFootprint(common.V(5, 0), common.V(1, 1)))
	require.True(t, ok)
	assert.Equal(t, r.ID, owner)

	_, ok = n.FindNextStep(common.V(-5, -5), common.V(5, -5))
	assert.True(t, ok)

	_, ok = n.FindNextStep(common.V(-5, -5), common.V(5.5, -5))
	assert.False(t, ok)
	assert.Equal(t, 1, n.Stats().ContainmentMisses)
}

func TestWallRejectsWithoutSearching(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 10)
	n.UpsertRegion(r)
	n.SubmitObstacle(NewFootprint(common.V(0, 0), common.V(12, 1)))
	n.RebuildAll()

	g, _ := n.Grid(r.ID)
	require.Equal(t, ".....\n.....\n.....\n#####\n.....\n", g.String())
	require.Equal(t, 2, g.ComponentCount())

	_, ok := n.FindNextStep(common.V(-5, -5), common.V(5, 5))
	assert.False(t, ok)
	stats := n.Stats()
	assert.Equal(t, 1, stats.ComponentRejects)
	assert.Zero(t, stats.Searches)
}

func TestNextStepOpenRegion(t *testing.T) {
	n, _ := newTestNavigator(t)
	n.UpsertRegion(NewRegion(uuid.New(), common.V(0, 0), common.V(10, 10)))

	start, finish := common.V(-5, -5), common.V(5, 5)
	next, ok := n.FindNextStep(start, finish)
	require.True(t, ok)
	assert.Equal(t, common.V(-3, -3), next)

	assert.Greater(t, next.X, start.X)
	assert.Less(t, next.X, finish.X)
	assert.Greater(t, next.Y, start.Y)
	assert.Less(t, next.Y, finish.Y)
}

func TestNextStepRoutesAroundObstacle(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := NewRegion(uuid.New(), common.V(0, 0), common.V(10, 10))
	n.UpsertRegion(r)
	n.SubmitObstacle(NewFootprint(common.V(0, 0), common.V(4, 4)))
	n.RebuildAll()

	g, _ := n.Grid(r.ID)
	require.Equal(t, ".....\n.....\n..##.\n..##.\n.....\n", g.String())

	next, ok := n.FindNextStep(common.V(-5, 0), common.V(5, 0))
	require.True(t, ok)
	assert.NotEqual(t, common.V(0, 0), next)
	assert.False(t, g.Blocked(r.CellAt(next)))
	assert.Equal(t, common.V(-3, 3), next)

	path, ok := n.FindPath(common.V(-5, 0), common.V(5, 0))
	require.True(t, ok)
	for _, p := range path {
		assert.False(t, g.Blocked(r.CellAt(p)), "path crosses blocked cell at %v", p)
	}
}

func TestNonSquareRegionQuery(t *testing.T) {
	n, _ := newTestNavigator(t)
	n.UpsertRegion(NewRegion(uuid.New(), common.V(10, 0), common.V(20, 8)))

	next, ok := n.FindNextStep(common.V(2, -4), common.V(8, 2))
	require.True(t, ok)
	assert.Equal(t, common.V(4, -2), next)
}

func TestFirstRegisteredRegionWins(t *testing.T) {
	n, _ := newTestNavigator(t)
	a := squareRegion(common.V(0, 0), 10)
	b := squareRegion(common.V(4, 0), 10)
	n.UpsertRegion(a)
	n.UpsertRegion(b)
	// re-upserting a keeps its position in the order
	n.UpsertRegion(a.WithCenter(common.V(0, 0)))

	owner, ok := n.SubmitObstacle(NewFootprint(common.V(3, 0), common.V(2, 2)))
	require.True(t, ok)
	assert.Equal(t, a.ID, owner)
	assert.Len(t, n.Obstacles(a.ID), 1)
	assert.Empty(t, n.Obstacles(b.ID))

	owner, ok = n.SubmitObstacle(NewFootprint(common.V(8, 0), common.V(2, 2)))
	require.True(t, ok)
	assert.Equal(t, b.ID, owner)

	ids := []RegionID{}
	for _, r := range n.Regions() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []RegionID{a.ID, b.ID}, ids)
}

func TestEveryRegionGetsAGrid(t *testing.T) {
	n, _ := newTestNavigator(t)
	empty := squareRegion(common.V(0, 0), 10)
	busy := squareRegion(common.V(50, 0), 10)
	n.UpsertRegion(empty)
	n.UpsertRegion(busy)
	n.SubmitObstacle(NewFootprint(common.V(50, 0), common.V(2, 2)))
	n.RebuildAll()

	g, ok := n.Grid(empty.ID)
	require.True(t, ok)
	assert.Zero(t, g.BlockedCount())
	g, ok = n.Grid(busy.ID)
	require.True(t, ok)
	assert.Equal(t, 4, g.BlockedCount())
}

func TestClearObstaclesFreesGridOnRebuild(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 10)
	n.UpsertRegion(r)
	n.SubmitObstacle(NewFootprint(common.V(0, 0), common.V(4, 4)))
	n.RebuildAll()
	g, _ := n.Grid(r.ID)
	require.Equal(t, 4, g.BlockedCount())

	n.ClearObstacles()
	assert.Empty(t, n.Obstacles(r.ID))
	n.RebuildAll()
	g, _ = n.Grid(r.ID)
	assert.Zero(t, g.BlockedCount())
}

func TestMissingGridIsLoggedAsInternalError(t *testing.T) {
	n, logs := newTestNavigator(t)
	n.regions.upsert(squareRegion(common.V(0, 0), 10))

	_, ok := n.FindNextStep(common.V(-1, -1), common.V(3, 3))
	assert.False(t, ok)
	assert.Equal(t, 1, n.Stats().GridMisses)
	entries := logs.FilterMessage("navmesh: internal error, no grid built for region").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
}

func TestDegenerateRegions(t *testing.T) {
	cases := []struct {
		name   string
		extent common.Vec2
	}{
		{"zero", common.V(0, 0)},
		{"tiny", common.V(1, 1)},
		{"negative", common.V(-6, -6)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, _ := newTestNavigator(t)
			n.UpsertRegion(NewRegion(uuid.New(), common.V(0, 0), c.extent))
			n.SubmitObstacle(NewFootprint(common.V(0, 0), common.V(1, 1)))
			n.RebuildAll()
			_, ok := n.FindNextStep(common.V(0, 0), common.V(0, 0))
			assert.False(t, ok)
		})
	}
}

func TestBlockedStartHasNoPath(t *testing.T) {
	n, _ := newTestNavigator(t)
	n.UpsertRegion(squareRegion(common.V(0, 0), 10))
	n.SubmitObstacle(NewFootprint(common.V(-4, -4), common.V(2, 2)))
	n.RebuildAll()

	_, ok := n.FindNextStep(common.V(-5, -5), common.V(5, 5))
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 10)
	n.UpsertRegion(r)
	n.Reset()

	assert.Empty(t, n.Regions())
	_, ok := n.Grid(r.ID)
	assert.False(t, ok)
	assert.Equal(t, Stats{}, n.Stats())
}

func TestSubmitObstacleSnapsCenter(t *testing.T) {
	n, _ := newTestNavigator(t)
	r := squareRegion(common.V(0, 0), 10)
	n.UpsertRegion(r)

	_, ok := n.SubmitObstacle(Footprint{Center: common.V(0.4, -0.6), Extent: common.V(1, 1)})
	require.True(t, ok)
	n.RebuildAll()

	obstacles := n.Obstacles(r.ID)
	require.Len(t, obstacles, 1)
	assert.Equal(t, common.V(0, -1), obstacles[0].Center)
}

func TestSameCell(t *testing.T) {
	n, _ := newTestNavigator(t)
	n.UpsertRegion(squareRegion(common.V(0, 0), 10))
	n.UpsertRegion(NewRegion(uuid.New(), common.V(20, 0), common.V(0, 4)))

	cases := []struct {
		name string
		a, b common.Vec2
		want bool
	}{
		{"same point", common.V(1, 1), common.V(1, 1), true},
		{"inside one cell", common.V(0, 0), common.V(0.5, 0.5), true},
		{"neighbouring cells", common.V(0, 0), common.V(2, 0), false},
		{"outside every region", common.V(50, 50), common.V(50, 50), false},
		{"degenerate region", common.V(20, 0), common.V(20, 0), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, n.SameCell(tc.a, tc.b))
		})
	}
}
