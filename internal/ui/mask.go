package ui

import (
	"image/color"

	"contagion/internal/core"
)

// fillContinentMask writes tint for every cell of continent and transparent
// pixels elsewhere. Tint is expected to be premultiplied.
func fillContinentMask(buf []byte, m *core.GridMap, continent string, tint color.RGBA) {
	for i := 0; i < m.Len(); i++ {
		base := i * 4
		if m.Spot(i).Continent != continent {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = tint.A
	}
}
