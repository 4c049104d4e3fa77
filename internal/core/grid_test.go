package core

import (
	"errors"
	"slices"
	"testing"
)

func landMap(t *testing.T, w, h int) *GridMap {
	t.Helper()
	spots := make([]Spot, w*h)
	for i := range spots {
		spots[i] = Spot{Type: SpotLand, Continent: "A", Population: i + 1}
	}
	m, err := NewGridMap(w, h, spots)
	if err != nil {
		t.Fatalf("NewGridMap: %v", err)
	}
	return m
}

func TestNewGridMapValidates(t *testing.T) {
	if _, err := NewGridMap(0, 3, nil); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := NewGridMap(2, 2, make([]Spot, 3)); !errors.Is(err, ErrCellCount) {
		t.Fatalf("expected ErrCellCount, got %v", err)
	}
	if _, err := NewGridMap(1, 1, []Spot{{Type: SpotLand, Population: -1}}); err == nil {
		t.Fatal("expected negative population to be rejected")
	}
}

func TestNewGridMapCopiesInput(t *testing.T) {
	spots := []Spot{{Type: SpotLand, Continent: "A", Population: 5}}
	m, err := NewGridMap(1, 1, spots)
	if err != nil {
		t.Fatalf("NewGridMap: %v", err)
	}
	spots[0].Type = SpotWater
	if m.Spot(0).Type != SpotLand {
		t.Fatal("map must not alias the caller's slice")
	}
}

func TestNeighborsInterior(t *testing.T) {
	m := landMap(t, 3, 3)
	got := m.Neighbors(4, nil)
	want := []int{3, 5, 1, 7}
	if !slices.Equal(got, want) {
		t.Fatalf("Neighbors(4) = %v, want %v", got, want)
	}
}

func TestNeighborsNoHorizontalWrap(t *testing.T) {
	m := landMap(t, 4, 3)
	// Column 0 of row 1 must not see the last column of row 0.
	if _, ok := m.Neighbor(4, Left); ok {
		t.Fatal("left neighbour of a column-0 cell must be absent")
	}
	// Last column of row 1 must not see the first column of row 2.
	if _, ok := m.Neighbor(7, Right); ok {
		t.Fatal("right neighbour of a last-column cell must be absent")
	}
}

func TestNeighborsVerticalWrapIsSymmetric(t *testing.T) {
	m := landMap(t, 4, 3)
	for x := 0; x < m.W; x++ {
		top := m.Index(x, 0)
		bottom := m.Index(x, m.H-1)
		up, ok := m.Neighbor(top, Up)
		if !ok || up != bottom {
			t.Fatalf("Up(%d) = %d,%v want %d", top, up, ok, bottom)
		}
		down, ok := m.Neighbor(bottom, Down)
		if !ok || down != top {
			t.Fatalf("Down(%d) = %d,%v want %d", bottom, down, ok, top)
		}
	}
}

func TestNeighborsSingleRowHasNoSelfLoop(t *testing.T) {
	m := landMap(t, 3, 1)
	if got := m.Neighbors(0, nil); !slices.Equal(got, []int{1}) {
		t.Fatalf("Neighbors(0) = %v, want [1]", got)
	}
	if got := m.Neighbors(1, nil); !slices.Equal(got, []int{0, 2}) {
		t.Fatalf("Neighbors(1) = %v, want [0 2]", got)
	}
}

func TestNeighborsStayInBounds(t *testing.T) {
	for _, size := range []Size{{1, 1}, {1, 5}, {5, 1}, {2, 2}, {7, 4}} {
		m := landMap(t, size.W, size.H)
		for i := 0; i < m.Len(); i++ {
			for _, n := range m.Neighbors(i, nil) {
				if n < 0 || n >= m.Len() || n == i {
					t.Fatalf("%dx%d: neighbour %d of %d invalid", size.W, size.H, n, i)
				}
			}
		}
	}
}

func TestPopulation(t *testing.T) {
	m, err := NewGridMap(2, 2, []Spot{
		{Type: SpotLand, Continent: "A", Population: 10},
		{Type: SpotInfected, Continent: "A", Population: 7},
		{Type: SpotWater},
		{Type: SpotInfected, Continent: "B", Population: 3},
	})
	if err != nil {
		t.Fatalf("NewGridMap: %v", err)
	}
	total, infected := m.Population()
	if total != 20 || infected != 10 {
		t.Fatalf("Population() = %d,%d want 20,10", total, infected)
	}
}

func TestInfectOnlyChangesLand(t *testing.T) {
	m, _ := NewGridMap(3, 1, []Spot{{Type: SpotWater}, {Type: SpotLand}, {Type: SpotInfected}})
	if m.Infect(0) {
		t.Fatal("water must not become infected")
	}
	if !m.Infect(1) {
		t.Fatal("land should become infected")
	}
	if m.Infect(2) {
		t.Fatal("infected cell reported a change")
	}
	if got := m.Count(SpotInfected); got != 2 {
		t.Fatalf("infected count = %d, want 2", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := landMap(t, 2, 2)
	c := m.Clone()
	c.Infect(0)
	if m.Spot(0).Type != SpotLand {
		t.Fatal("clone mutation leaked into original")
	}
}

func TestContinentsAndCells(t *testing.T) {
	m, _ := NewGridMap(4, 1, []Spot{
		{Type: SpotLand, Continent: "Asia"},
		{Type: SpotWater, Continent: "Ocean"},
		{Type: SpotInfected, Continent: "Europe"},
		{Type: SpotLand, Continent: "Asia"},
	})
	if got := m.Continents(); !slices.Equal(got, []string{"Asia", "Europe"}) {
		t.Fatalf("Continents() = %v", got)
	}
	if got := m.Cells(nil); !slices.Equal(got, []uint8{1, 0, 2, 1}) {
		t.Fatalf("Cells() = %v", got)
	}
}

func TestParseSpotType(t *testing.T) {
	for in, want := range map[string]SpotType{"water": SpotWater, " Land ": SpotLand, "INFECTED": SpotInfected} {
		got, err := ParseSpotType(in)
		if err != nil || got != want {
			t.Fatalf("ParseSpotType(%q) = %v,%v want %v", in, got, err, want)
		}
	}
	if _, err := ParseSpotType("lava"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}
