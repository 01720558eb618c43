//go:build ebiten

package app

import (
	"image/color"
	"math"
	"time"

	"sphere-ca/internal/core"
	"sphere-ca/internal/render"
	"sphere-ca/internal/ui"
	"sphere-ca/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r3"
)

const autoSpin = 0.004

// Game adapts a world to the ebiten.Game interface.
type Game struct {
	world   *world.World
	hud     *ui.HUD
	overlay *ui.Overlay
	log     core.Logger

	proj   render.Projector
	style  render.Style
	colors []color.RGBA

	size     int
	hudWidth int
	seed     int64
	radius   float64
	level    int
	spin     bool
	dragging bool
	lastX    int
	lastY    int
}

// New constructs a Game for the provided world.
func New(w *world.World, cfg *Config, log core.Logger) *Game {
	if log == nil {
		log = core.NoOpLogger{}
	}
	g := &Game{
		world:    w,
		log:      log,
		style:    render.DefaultStyle(),
		size:     cfg.Size,
		hudWidth: cfg.HUDWidth,
		seed:     w.Engine().Config().Seed,
		radius:   cfg.Radius,
		level:    cfg.Subdivisions,
		spin:     true,
	}
	g.proj = render.Projector{Pitch: 0.35}
	g.fit()
	g.hud = ui.NewHUD(w, cfg.HUDWidth)
	g.overlay = ui.NewOverlay(w)
	return g
}

// Reset reinitializes the world with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.world.Reset(seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	eng := g.world.Engine()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		eng.SetPaused(!eng.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.world.Step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.spin = !g.spin
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.regenerate(g.level + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.regenerate(g.level - 1)
	}

	g.handleDrag()
	if g.spin && !g.dragging {
		g.proj.Yaw += autoSpin
	}
	g.overlay.Update()
	g.hud.Update(g.size)

	g.world.Update(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) regenerate(level int) {
	if level < 0 {
		return
	}
	if err := g.world.Regenerate(g.radius, level); err != nil {
		g.log.Warnf("regenerate level %d: %v", level, err)
		return
	}
	g.level = level
	g.fit()
}

func (g *Game) handleDrag() {
	x, y := ebiten.CursorPosition()
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || x >= g.size {
		g.dragging = false
		return
	}
	if g.dragging {
		g.proj.Yaw += float64(x-g.lastX) * 0.01
		g.proj.Pitch = math.Max(-math.Pi/2, math.Min(math.Pi/2, g.proj.Pitch+float64(y-g.lastY)*0.01))
	}
	g.dragging = true
	g.lastX, g.lastY = x, y
}

func (g *Game) fit() {
	r := g.world.Adjacency().Radius()
	if r <= 0 {
		r = 1
	}
	g.proj.CenterX = float64(g.size) / 2
	g.proj.CenterY = float64(g.size) / 2
	g.proj.Scale = 0.45 * float64(g.size) / r
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 12, A: 255})
	w := g.world
	g.colors = render.NodeColors(g.colors, w.Engine().Cells(), w.Tracker().Organisms(), w.Resolver().Pairs(), g.style)

	adj := w.Adjacency()
	dot := float32(g.dotRadius())
	for id := 0; id < adj.NodeCount(); id++ {
		x, y, visible := g.proj.Project(adj.Position(id))
		if !visible {
			continue
		}
		vector.DrawFilledCircle(screen, float32(x), float32(y), dot, g.colors[id], true)
	}
	g.overlay.Draw(screen, g.proj, adj.Radius())
	g.hud.Draw(screen, g.size, g.size)
}

// dotRadius sizes cells from the mean edge length so neighbours touch.
func (g *Game) dotRadius() float64 {
	adj := g.world.Adjacency()
	if adj.NodeCount() == 0 {
		return 1
	}
	var sum float64
	var n int
	for _, nb := range adj.Neighbors(0) {
		sum += r3.Norm(r3.Sub(adj.Position(0), adj.Position(nb)))
		n++
	}
	if n == 0 {
		return 1
	}
	return math.Max(1, 0.45*sum/float64(n)*g.proj.Scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.size + g.hudWidth, g.size
}
