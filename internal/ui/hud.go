//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strings"

	"contagion/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// MinHUDHeight keeps the panel readable on short maps.
const MinHUDHeight = 360

// HUD renders the stats panel to the right of the map.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int

	title    string
	snapshot core.Snapshot
	status   string
	autoplay bool
}

// NewHUD constructs a HUD with the given panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Update caches what the next Draw shows.
func (h *HUD) Update(sim core.Sim, status string, autoplay bool) {
	if h == nil || sim == nil {
		return
	}
	h.title = buildTitle(sim)
	h.snapshot = sim.Stats()
	h.status = status
	h.autoplay = autoplay
}

// Draw paints the panel at offsetX. height is the map's pixel height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, height int) {
	if h == nil || h.width <= 0 {
		return
	}
	height = max(height, MinHUDHeight)
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawText()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	name := strings.TrimPrefix(sim.Name(), "contagion: ")
	if name == "" {
		return "Contagion"
	}
	return "Contagion - " + name
}

func (h *HUD) drawText() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	y += groupGap

	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, group.Name, face, panelPadding, y, groupColor)
		y += lineHeight
		for i, st := range group.Stats {
			label := st.Label
			if group.Name == "Upgrades" && i < 9 {
				label = fmt.Sprintf("[%d] %s", i+1, label)
			}
			text.Draw(h.panel, label, face, panelPadding+indent, y, labelColor)
			bounds := text.BoundString(face, st.Value)
			text.Draw(h.panel, st.Value, face, h.width-panelPadding-bounds.Dx(), y, valueColor)
			y += lineHeight
		}
		y += groupGap - lineHeight
	}

	mode := "paused"
	if h.autoplay {
		mode = "autoplay"
	}
	text.Draw(h.panel, "Turns: "+mode, face, panelPadding, y, labelColor)
	y += lineHeight
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, y, statusColor)
	}
	text.Draw(h.panel, "N next  Space auto  Q quit", face, panelPadding, h.lastHeight-panelPadding, hintColor)
}

var (
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	groupColor  = color.RGBA{R: 160, G: 200, B: 160, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	valueColor  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	statusColor = color.RGBA{R: 255, G: 190, B: 90, A: 255}
	hintColor   = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

const (
	panelPadding   = 12
	headerBaseline = 18
	lineHeight     = 18
	groupGap       = 28
	indent         = 8
)
