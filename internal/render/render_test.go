package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"contagion/internal/core"
)

func testMap(t *testing.T) *core.GridMap {
	t.Helper()
	m, err := core.NewGridMap(3, 1, []core.Spot{
		{Type: core.SpotWater},
		{Type: core.SpotLand, Continent: "A", Population: 4},
		{Type: core.SpotInfected, Continent: "A", Population: 6},
	})
	if err != nil {
		t.Fatalf("new map: %v", err)
	}
	return m
}

func TestFillPaletteRGBA(t *testing.T) {
	buf := make([]byte, 4*4)
	fillPaletteRGBA(buf, []uint8{0, 1, 2, 9}, Palette)
	want := []byte{
		0, 0, 255, 255,
		0, 255, 0, 255,
		255, 0, 0, 255,
		255, 0, 0, 255,
	}
	if !bytes.Equal(buf, want) {
		t.Fatalf("unexpected pixels %v", buf)
	}
	fillPaletteRGBA(buf, []uint8{1, 1, 1, 1}, nil)
	if !bytes.Equal(buf, make([]byte, 16)) {
		t.Fatalf("empty palette should clear buffer, got %v", buf)
	}
}

func TestImageUpscalesNearestNeighbour(t *testing.T) {
	img, err := Image(testMap(t), 4)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 4 {
		t.Fatalf("expected 12x4, got %v", b)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			want := Palette[x/4]
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPNGDecodes(t *testing.T) {
	data, err := PNG(testMap(t), 0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3*DefaultScale || b.Dy() != DefaultScale {
		t.Fatalf("unexpected bounds %v", b)
	}
}

func TestImageRejectsNil(t *testing.T) {
	if _, err := Image(nil, 1); err == nil {
		t.Fatalf("expected error for nil map")
	}
}

func TestSummary(t *testing.T) {
	m := testMap(t)
	got := Summary(m, -1)
	if got != "Population: 10\nInfected Population: 6" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := Summary(m, 3); !strings.HasSuffix(got, "\nNew Infections: 3") {
		t.Fatalf("expected new infections line, got %q", got)
	}
}

func TestColorOf(t *testing.T) {
	if ColorOf(core.SpotLand) != Palette[core.SpotLand] {
		t.Fatalf("land color mismatch")
	}
	if ColorOf(core.SpotType(200)) != Palette[len(Palette)-1] {
		t.Fatalf("out of range types clamp to last color")
	}
}
