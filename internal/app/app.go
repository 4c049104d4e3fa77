//go:build ebiten

package app

import (
	"contagion/internal/core"
	"contagion/internal/render"
	"contagion/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Game adapts a Controller to the ebiten.Game interface.
type Game struct {
	ctrl    *Controller
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	clock   *core.TurnClock
	scale   int
}

// New constructs a Game drawing ctrl's session at scale.
func New(ctrl *Controller, flags *Flags) *Game {
	size := ctrl.Session().Size()
	clock := core.NewTurnClock(flags.Interval)
	return &Game{
		ctrl:    ctrl,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(flags.Scale),
		hud:     ui.NewHUD(hudWidth),
		clock:   clock,
		scale:   flags.Scale,
	}
}

// Update handles per-frame input and plays turns.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.clock.Toggle()
	}
	for i, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.ctrl.Buy(i)
		}
	}

	size := g.ctrl.Session().Size()
	mx, my := ebiten.CursorPosition()
	hovered, onGrid := CellAt(mx, my, g.scale, size)
	if onGrid && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.ctrl.PlaceAt(hovered)
	}
	continent := ""
	if onGrid {
		continent = g.ctrl.ContinentAt(hovered)
	}
	g.overlay.Update(g.ctrl.Session().Map(), continent)

	if inpututil.IsKeyJustPressed(ebiten.KeyN) || g.clock.Due() {
		if !g.ctrl.Advance() && !g.clock.Paused() {
			g.clock.Toggle()
		}
	}
	g.hud.Update(g.ctrl.Session(), g.ctrl.Status(), !g.clock.Paused())
	return nil
}

// Draw renders the map, the hover overlay, and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	size := g.ctrl.Session().Size()
	g.painter.Blit(screen, g.ctrl.Session().Cells(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, size.W*g.scale, size.H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Session().Size()
	return s.W*g.scale + hudWidth, max(s.H*g.scale, ui.MinHUDHeight)
}
