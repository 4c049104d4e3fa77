//go:build ebiten

package ui

import (
	"image/color"

	"contagion/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
)

var highlight = color.RGBA{R: 255, G: 255, B: 255, A: 90}

// Overlay highlights the continent under the cursor.
type Overlay struct {
	scale     int
	continent string
	maskImg   *ebiten.Image
	maskBuf   []byte
	visible   bool
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scale int) *Overlay {
	return &Overlay{scale: scale}
}

// Update rebuilds the mask when the hovered continent changes.
func (o *Overlay) Update(m *core.GridMap, continent string) {
	if m == nil || continent == "" {
		o.visible = false
		o.continent = ""
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != m.W || o.maskImg.Bounds().Dy() != m.H {
		o.maskImg = ebiten.NewImage(m.W, m.H)
		o.maskBuf = make([]byte, 4*m.Len())
		o.continent = ""
	}
	o.visible = true
	if continent == o.continent {
		return
	}
	o.continent = continent
	fillContinentMask(o.maskBuf, m, continent, highlight)
	o.maskImg.WritePixels(o.maskBuf)
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.maskImg == nil {
		return
	}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.maskImg, op)
}
