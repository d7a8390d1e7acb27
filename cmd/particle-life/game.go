package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/particle-life-engine/internal/life"
	"github.com/olivierh59500/particle-life-engine/internal/logging"
	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

const (
	ParticleSize = 1.5
	dragStep     = 0.005
	maxDrag      = 0.5

	// evolution interval used by the E toggle when none was configured
	defaultEvolveEvery = 1000

	// particles per unit area for the fill key
	fillDensity = 4e-3
)

var (
	background  = color.RGBA{8, 8, 12, 255}
	borderColor = color.RGBA{60, 60, 80, 255}
)

// Game drives an Engine from the ebiten loop and draws its snapshots
type Game struct {
	engine *life.Engine
	log    *logging.Logger

	cam           camera
	width, height int
	colors        []color.RGBA

	Paused  bool
	ShowHUD bool

	evolveEvery    int
	population     int
	prevMX, prevMY int
}

// NewGame wraps an engine that has already been reset
func NewGame(engine *life.Engine, log *logging.Logger, width, height int) *Game {
	p := engine.Params()
	g := &Game{
		engine:      engine,
		log:         log,
		width:       width,
		height:      height,
		colors:      palette(p.TypeCount),
		ShowHUD:     true,
		evolveEvery: p.EvolveEvery,
		population:  p.ParticleCount,
	}
	if g.evolveEvery == 0 {
		g.evolveEvery = defaultEvolveEvery
	}
	g.cam = fit(p.WorldSpread, width, height)
	return g
}

// Update is called each tick by Ebitengine
func (g *Game) Update() error {
	g.handleInput()

	if g.Paused {
		return nil
	}
	if err := g.engine.Tick(); err != nil {
		// keep the window up on the last good generation
		g.log.Errorf("tick failed, pausing: %v", err)
		g.Paused = true
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	p := g.engine.Params()
	offsets := []vmath.Vec2{{}}
	if p.Boundary == life.BoundaryWrap {
		offsets = g.cam.tiles(p.WorldSpread, g.width, g.height)
	}
	if p.Boundary != life.BoundaryNone {
		g.drawBorder(screen, p.WorldSpread, offsets)
	}

	radius := float32(max(ParticleSize*g.cam.Zoom, 1))
	w, h := float64(g.width), float64(g.height)
	snap := g.engine.Snapshot()
	for _, off := range offsets {
		for _, q := range snap.All() {
			sx, sy := g.cam.worldToScreen(q.Pos.Add(off), g.width, g.height)
			if sx < -ParticleSize || sx > w+ParticleSize || sy < -ParticleSize || sy > h+ParticleSize {
				continue
			}
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), radius, g.color(q.Type), true)
		}
	}

	if g.ShowHUD {
		g.drawHUD(screen)
	}
}

// Layout follows the window size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) color(t uint8) color.RGBA {
	if int(t) < len(g.colors) {
		return g.colors[t]
	}
	return color.RGBA{255, 255, 255, 255}
}

func (g *Game) drawBorder(screen *ebiten.Image, side float32, offsets []vmath.Vec2) {
	half := side / 2
	for _, off := range offsets {
		x0, y0 := g.cam.worldToScreen(vmath.Vec2{X: off.X - half, Y: off.Y - half}, g.width, g.height)
		x1, y1 := g.cam.worldToScreen(vmath.Vec2{X: off.X + half, Y: off.Y + half}, g.width, g.height)
		vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 1, borderColor, false)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	s := g.engine.Stats()
	p := g.engine.Params()
	state := "running"
	if g.Paused {
		state = "paused"
	}
	evolve := "off"
	if p.EvolveEvery > 0 {
		evolve = fmt.Sprintf("every %d", p.EvolveEvery)
	}
	msg := fmt.Sprintf("TPS %.1f  FPS %.1f  MSPT %.2f  (%s)\n"+
		"tick %d  particles %d  buckets %d  mean speed %.2f\n"+
		"boundary %s  drag %.3f  evolution %s  zoom %.2f\n"+
		"[space] pause [r] reset [x] clear [f] fill [m] matrix [e] evolve [b] boundary [+/-] drag [c] centre [f1] hud",
		ebiten.ActualTPS(), ebiten.ActualFPS(), float64(s.TickDuration.Microseconds())/1000, state,
		s.Tick, s.Particles, s.Buckets, s.MeanSpeed,
		p.Boundary, p.Drag, evolve, g.cam.Zoom)
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}

// handleInput processes keyboard and mouse input
func (g *Game) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.ShowHUD = !g.ShowHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.respawn(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.population = fillCount(g.engine.Params().WorldSpread, fillDensity)
		g.respawn(g.population)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if err := g.engine.RandomizeMatrix(); err != nil {
			g.log.Warnf("randomize matrix: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.toggleEvolution()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.update(life.Update{Boundary: life.Ptr(g.engine.Params().Boundary.Next())})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustDrag(dragStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustDrag(-dragStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.cam = fit(g.engine.Params().WorldSpread, g.width, g.height)
	}

	// Zoom
	mx, my := ebiten.CursorPosition()
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		g.cam.zoomAt(math.Pow(zoomStep, wheelY), float64(mx), float64(my), g.width, g.height)
	}

	// Pan (drag)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.cam.pan(float64(mx-g.prevMX), float64(my-g.prevMY))
	}
	g.prevMX, g.prevMY = mx, my
}

// reset starts over with the live dynamics, a fresh seed and a new matrix
func (g *Game) reset() {
	p := g.engine.Params()
	p.Seed = 0
	p.ParticleCount = g.population
	if err := g.engine.Reset(p); err != nil {
		g.log.Warnf("%v", err)
	}
}

// respawn replaces the population with count fresh particles and keeps the
// current matrix
func (g *Game) respawn(count int) {
	m := g.engine.Matrix()
	p := g.engine.Params()
	p.Seed = 0
	p.ParticleCount = count
	if err := g.engine.Reset(p); err != nil {
		g.log.Warnf("%v", err)
		return
	}
	if err := g.engine.SetMatrix(m); err != nil {
		g.log.Warnf("%v", err)
	}
}

// fillCount is the population that gives the density over the world square
func fillCount(side float32, density float64) int {
	return int(float64(side) * float64(side) * density)
}

func (g *Game) toggleEvolution() {
	every := 0
	if g.engine.Params().EvolveEvery == 0 {
		every = g.evolveEvery
	}
	g.update(life.Update{EvolveEvery: life.Ptr(every)})
}

func (g *Game) adjustDrag(delta float32) {
	drag := min(max(g.engine.Params().Drag+delta, 0), maxDrag)
	g.update(life.Update{Drag: life.Ptr(drag)})
}

func (g *Game) update(u life.Update) {
	if err := g.engine.SetParameters(u); err != nil {
		g.log.Warnf("%v", err)
	}
}
