package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/navgrid/common"
	"github.com/milk9111/navgrid/config"
	"github.com/milk9111/navgrid/navmesh"
	"github.com/milk9111/navgrid/prefabs"
	"github.com/milk9111/navgrid/sim"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	viewMargin = 40
	agentSize  = 6
)

type Game struct {
	sim    *sim.Simulation
	cfg    config.Config
	log    *zap.Logger
	paused bool

	watcher *prefabs.Watcher
	status  string
}

func NewGame(s *sim.Simulation, cfg config.Config, log *zap.Logger) (*Game, error) {
	g := &Game{sim: s, cfg: cfg, log: log}
	if cfg.Watch {
		w, err := prefabs.NewWatcher("prefabs/scenes", "prefabs/scripts")
		if err != nil {
			return nil, fmt.Errorf("viewer: watch prefabs: %w", err)
		}
		g.watcher = w
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload(g.sim.Spec().Name)
	}
	if g.paused && !inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		return nil
	}

	g.sim.Step()
	return nil
}

// applyReloads drains watcher events without blocking. The simulation is only
// touched here, on the update goroutine.
func (g *Game) applyReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if prefabs.IsScriptFile(path) {
				g.sim.ReloadScripts()
				g.status = "scripts reloaded"
				continue
			}
			g.reload(g.sim.Spec().Name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("viewer: watcher error", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) reload(name string) {
	spec, err := prefabs.LoadScene(name)
	if err == nil {
		err = g.sim.Reload(spec)
	}
	if err != nil {
		g.log.Warn("viewer: reload failed", zap.String("scene", name), zap.Error(err))
		g.status = "reload failed: " + err.Error()
		return
	}
	g.status = "reloaded " + name
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	nav := g.sim.Navigator()
	v := newView(nav.Regions(), screen.Bounds().Dx(), screen.Bounds().Dy())

	for _, r := range nav.Regions() {
		grid, ok := nav.Grid(r.ID)
		if !ok {
			continue
		}
		drawGrid(screen, v, r, grid)
	}
	for _, f := range g.sim.Obstacles() {
		v.strokeRect(screen, f.Bounds(), 1.5, colornames.Orangered)
	}
	for _, a := range g.sim.Agents() {
		drawAgent(screen, v, a)
	}

	stats := nav.Stats()
	hud := fmt.Sprintf("scene %s  step %d  FPS %.1f\nqueries %d  searches %d  rejects %d  rebuilds %d",
		g.sim.Spec().Name, g.sim.StepCount(), ebiten.ActualFPS(),
		stats.Queries, stats.Searches, stats.ComponentRejects, stats.Rebuilds)
	if g.paused {
		hud += "\npaused (space resumes, . steps)"
	}
	if g.status != "" {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrintAt(screen, hud, 8, 8)
}

func drawGrid(screen *ebiten.Image, v view, r navmesh.Region, grid *navmesh.Grid) {
	for z := 0; z < grid.Rows(); z++ {
		for x := 0; x < grid.Cols(); x++ {
			c := navmesh.Cell{X: x, Z: z}
			cell := common.RectFromCenter(r.CellPosition(c), common.V(navmesh.CellSize, navmesh.CellSize))
			if grid.Blocked(c) {
				v.fillRect(screen, cell, color.RGBA{R: 160, G: 40, B: 40, A: 160})
				continue
			}
			v.strokeRect(screen, cell, 1, color.RGBA{R: 60, G: 60, B: 70, A: 255})
		}
	}
	v.strokeRect(screen, r.Bounds(), 2, colornames.Lightgrey)
}

func drawAgent(screen *ebiten.Image, v view, a sim.AgentState) {
	c := a.Color
	if c == nil {
		c = colornames.Limegreen
	}
	px, py := v.point(a.Position)
	if a.HasWaypoint {
		wx, wy := v.point(a.Waypoint)
		vector.StrokeLine(screen, px, py, wx, wy, 2, colornames.Lightgrey, true)
	}
	gx, gy := v.point(a.Goal)
	vector.StrokeLine(screen, gx-4, gy-4, gx+4, gy+4, 1, c, true)
	vector.StrokeLine(screen, gx-4, gy+4, gx+4, gy-4, 1, c, true)

	if a.Stuck {
		c = colornames.Red
	}
	vector.FillRect(screen, px-agentSize/2, py-agentSize/2, agentSize, agentSize, c, false)
	ebitenutil.DebugPrintAt(screen, a.Name, int(px)+agentSize, int(py)-agentSize)
}

// view maps the ground plane onto the screen, fitting every region.
type view struct {
	min   common.Vec2
	scale float64
	h     float64
}

func newView(regions []navmesh.Region, w, h int) view {
	if len(regions) == 0 {
		return view{scale: 1, h: float64(h)}
	}
	lo := common.V(math.Inf(1), math.Inf(1))
	hi := common.V(math.Inf(-1), math.Inf(-1))
	for _, r := range regions {
		b := r.Bounds()
		lo = common.V(math.Min(lo.X, b.Min().X), math.Min(lo.Y, b.Min().Y))
		hi = common.V(math.Max(hi.X, b.Max().X), math.Max(hi.Y, b.Max().Y))
	}
	size := hi.Sub(lo)
	scale := math.Min(
		float64(w-2*viewMargin)/math.Max(size.X, 1),
		float64(h-2*viewMargin)/math.Max(size.Y, 1),
	)
	return view{min: lo, scale: scale, h: float64(h)}
}

// point flips Z so north is up.
func (v view) point(p common.Vec2) (float32, float32) {
	x := viewMargin + (p.X-v.min.X)*v.scale
	y := v.h - viewMargin - (p.Y-v.min.Y)*v.scale
	return float32(x), float32(y)
}

func (v view) screenRect(r common.Rect) (x, y, w, h float32) {
	x0, y0 := v.point(common.V(r.Min().X, r.Max().Y))
	return x0, y0, float32(r.Extent.X * v.scale), float32(r.Extent.Y * v.scale)
}

func (v view) fillRect(screen *ebiten.Image, r common.Rect, c color.Color) {
	x, y, w, h := v.screenRect(r)
	vector.FillRect(screen, x, y, w, h, c, false)
}

func (v view) strokeRect(screen *ebiten.Image, r common.Rect, width float32, c color.Color) {
	x, y, w, h := v.screenRect(r)
	vector.StrokeRect(screen, x, y, w, h, width, c, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
