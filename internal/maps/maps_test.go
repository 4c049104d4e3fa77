package maps

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"contagion/internal/core"
)

const tinyMap = `name: tiny
legend:
  "~": {type: water}
  "a": {type: land, continent: Alpha, population: 5}
  "b": {type: land, continent: Beta, population: 7}
rows:
  - "a~"
  - "~b"
`

func TestParseBuildsRowMajorMap(t *testing.T) {
	m, err := Parse([]byte(tinyMap))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.W != 2 || m.H != 2 {
		t.Fatalf("size = %dx%d", m.W, m.H)
	}
	want := []core.Spot{
		{Type: core.SpotLand, Continent: "Alpha", Population: 5},
		{Type: core.SpotWater},
		{Type: core.SpotWater},
		{Type: core.SpotLand, Continent: "Beta", Population: 7},
	}
	if !slices.Equal(m.Spots(), want) {
		t.Fatalf("spots = %+v", m.Spots())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"ragged":       "legend: {\"a\": {type: land}}\nrows: [\"aa\", \"a\"]\n",
		"unknown rune": "legend: {\"a\": {type: land}}\nrows: [\"ab\"]\n",
		"bad type":     "legend: {\"a\": {type: lava}}\nrows: [\"a\"]\n",
		"long key":     "legend: {\"ab\": {type: land}}\nrows: [\"a\"]\n",
		"no rows":      "legend: {\"a\": {type: land}}\n",
		"negative":     "legend: {\"a\": {type: land, population: -3}}\nrows: [\"a\"]\n",
		"not yaml":     "rows: [",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestFSTemplateLookup(t *testing.T) {
	src := NewFS(fstest.MapFS{"tiny.yaml": {Data: []byte(tinyMap)}})

	if _, err := src.Template(" TINY "); err != nil {
		t.Fatalf("Template: %v", err)
	}
	if _, err := src.Template("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
	for _, bad := range []string{"", "../tiny", "a/b", `..\x`} {
		if _, err := src.Template(bad); !errors.Is(err, ErrTemplateNotFound) {
			t.Fatalf("Template(%q) err = %v", bad, err)
		}
	}
	names, err := src.Names()
	if err != nil || !slices.Equal(names, []string{"tiny"}) {
		t.Fatalf("Names = %v, %v", names, err)
	}
}

func TestTemplateReturnsIndependentCopies(t *testing.T) {
	src := NewFS(fstest.MapFS{"tiny.yaml": {Data: []byte(tinyMap)}})
	a, _ := src.Template("tiny")
	a.Infect(0)
	b, _ := src.Template("tiny")
	if b.Spot(0).Type != core.SpotLand {
		t.Fatal("mutating one template copy leaked into the next")
	}
}

func TestBuiltinTemplatesParse(t *testing.T) {
	src := Builtin()
	names, err := src.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !slices.Contains(names, "world") || !slices.Contains(names, "islands") {
		t.Fatalf("builtin names = %v", names)
	}
	for _, n := range names {
		m, err := src.Template(n)
		if err != nil {
			t.Fatalf("Template(%s): %v", n, err)
		}
		if len(m.Continents()) == 0 {
			t.Fatalf("%s has no continents", n)
		}
	}
}

func TestChainShadowsAndMerges(t *testing.T) {
	dir := t.TempDir()
	override := `legend: {"x": {type: land, continent: Solo, population: 1}}
rows: ["x"]
`
	if err := os.WriteFile(filepath.Join(dir, "world.yaml"), []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}
	chain := Chain{NewDir(dir), Builtin()}

	m, err := chain.Template("world")
	if err != nil {
		t.Fatalf("Template: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("directory template should shadow builtin, got %d cells", m.Len())
	}
	if _, err := chain.Template("islands"); err != nil {
		t.Fatalf("fallback to builtin: %v", err)
	}
	if _, err := chain.Template("atlantis"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err = %v", err)
	}
	names, err := chain.Names()
	if err != nil {
		t.Fatalf("Names: %v", err)
	}
	if !slices.Equal(names, []string{"islands", "world"}) {
		t.Fatalf("Names = %v", names)
	}
}

func TestMissingDirectoryIsEmpty(t *testing.T) {
	src := NewDir(filepath.Join(t.TempDir(), "nope"))
	names, err := src.Names()
	if err != nil || len(names) != 0 {
		t.Fatalf("Names = %v, %v", names, err)
	}
	if _, err := src.Template("world"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err = %v", err)
	}
}
