// Package render turns maps into pictures and summary text.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"contagion/internal/core"

	xdraw "golang.org/x/image/draw"
)

// DefaultScale is the pixel size of one spot in rendered images.
const DefaultScale = 10

// Image paints one pixel per spot and upscales the result by scale with
// nearest-neighbour sampling so spot edges stay sharp.
func Image(m *core.GridMap, scale int) (*image.RGBA, error) {
	if m == nil || m.Len() == 0 {
		return nil, fmt.Errorf("render: empty map")
	}
	if scale <= 0 {
		scale = DefaultScale
	}
	base := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	fillPaletteRGBA(base.Pix, m.Cells(nil), Palette)
	if scale == 1 {
		return base, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, m.W*scale, m.H*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return out, nil
}

// PNG renders m and encodes it as a PNG.
func PNG(m *core.GridMap, scale int) ([]byte, error) {
	img, err := Image(m, scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Summary formats the population lines shown under a map. newInfections is
// omitted when negative.
func Summary(m *core.GridMap, newInfections int) string {
	total, infected := m.Population()
	var b strings.Builder
	fmt.Fprintf(&b, "Population: %d\n", total)
	fmt.Fprintf(&b, "Infected Population: %d", infected)
	if newInfections >= 0 {
		fmt.Fprintf(&b, "\nNew Infections: %d", newInfections)
	}
	return b.String()
}
