package render

import (
	"image/color"

	"contagion/internal/core"
)

// Palette maps spot types to pixel colors, indexed by core.SpotType.
var Palette = []color.RGBA{
	core.SpotWater:    {R: 0, G: 0, B: 255, A: 255},
	core.SpotLand:     {R: 0, G: 255, B: 0, A: 255},
	core.SpotInfected: {R: 255, G: 0, B: 0, A: 255},
}

// ColorOf returns the display color of a spot type.
func ColorOf(t core.SpotType) color.RGBA {
	if int(t) >= len(Palette) {
		return Palette[len(Palette)-1]
	}
	return Palette[t]
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
