package core

import (
	"errors"
	"fmt"
	"strings"
)

// SpotType enumerates the states a map cell can be in.
type SpotType uint8

const (
	SpotWater SpotType = iota
	SpotLand
	SpotInfected
)

func (t SpotType) String() string {
	switch t {
	case SpotWater:
		return "water"
	case SpotLand:
		return "land"
	case SpotInfected:
		return "infected"
	default:
		return fmt.Sprintf("SpotType(%d)", uint8(t))
	}
}

// ParseSpotType maps the lower-case names used in map files to a SpotType.
func ParseSpotType(s string) (SpotType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "water":
		return SpotWater, nil
	case "land":
		return SpotLand, nil
	case "infected":
		return SpotInfected, nil
	default:
		return 0, fmt.Errorf("unknown spot type %q", s)
	}
}

// Spot is a single map cell.
type Spot struct {
	Type       SpotType
	Continent  string
	Population int
}

// Direction names one of the four orthogonal neighbours of a cell.
type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in the order neighbours are visited.
var Directions = [...]Direction{Left, Right, Up, Down}

var (
	// ErrInvalidSize is returned when a map has non-positive dimensions.
	ErrInvalidSize = errors.New("map dimensions must be positive")
	// ErrCellCount is returned when the spot list does not fill the map exactly.
	ErrCellCount = errors.New("spot count must equal width*height")
)

// GridMap stores the spots of a map in row-major order: index i is row i/W,
// column i%W. Dimensions never change after construction.
type GridMap struct {
	W, H  int
	spots []Spot
}

// NewGridMap validates the dimensions and copies spots into a new map.
func NewGridMap(w, h int, spots []Spot) (*GridMap, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if len(spots) != w*h {
		return nil, fmt.Errorf("%w: have %d, want %d", ErrCellCount, len(spots), w*h)
	}
	for i, s := range spots {
		if s.Population < 0 {
			return nil, fmt.Errorf("spot %d: negative population %d", i, s.Population)
		}
		if s.Type > SpotInfected {
			return nil, fmt.Errorf("spot %d: %v", i, s.Type)
		}
	}
	return &GridMap{W: w, H: h, spots: append([]Spot(nil), spots...)}, nil
}

// Len returns the number of cells.
func (g *GridMap) Len() int { return len(g.spots) }

// Spot returns a copy of the cell at index i.
func (g *GridMap) Spot(i int) Spot { return g.spots[i] }

// Spots returns a copy of every cell in row-major order.
func (g *GridMap) Spots() []Spot { return append([]Spot(nil), g.spots...) }

// Index returns the linear index for coordinates (x, y).
func (g *GridMap) Index(x, y int) int { return y*g.W + x }

// Coords returns the column and row of index i.
func (g *GridMap) Coords(i int) (x, y int) { return i % g.W, i / g.W }

// Infect turns a land cell into an infected one. It reports whether the cell
// changed; water and already infected cells are left alone.
func (g *GridMap) Infect(i int) bool {
	if g.spots[i].Type != SpotLand {
		return false
	}
	g.spots[i].Type = SpotInfected
	return true
}

// Neighbor resolves the neighbour of i in direction d. Left and right stop at
// the row edges. Up and down wrap between the top and bottom rows in the same
// column. A cell is never its own neighbour, so a single-row map has no
// vertical neighbours.
func (g *GridMap) Neighbor(i int, d Direction) (int, bool) {
	x, y := g.Coords(i)
	var n int
	switch d {
	case Left:
		if x == 0 {
			return 0, false
		}
		n = i - 1
	case Right:
		if x == g.W-1 {
			return 0, false
		}
		n = i + 1
	case Up:
		if y == 0 {
			n = g.Index(x, g.H-1)
		} else {
			n = i - g.W
		}
	case Down:
		if y == g.H-1 {
			n = g.Index(x, 0)
		} else {
			n = i + g.W
		}
	default:
		return 0, false
	}
	if n == i {
		return 0, false
	}
	return n, true
}

// Neighbors appends the present neighbours of i to buf in Left, Right, Up,
// Down order and returns the extended slice.
func (g *GridMap) Neighbors(i int, buf []int) []int {
	for _, d := range Directions {
		if n, ok := g.Neighbor(i, d); ok {
			buf = append(buf, n)
		}
	}
	return buf
}

// Population sums population over all cells and over infected cells.
func (g *GridMap) Population() (total, infected int) {
	for _, s := range g.spots {
		total += s.Population
		if s.Type == SpotInfected {
			infected += s.Population
		}
	}
	return total, infected
}

// Count returns how many cells have type t.
func (g *GridMap) Count(t SpotType) int {
	n := 0
	for _, s := range g.spots {
		if s.Type == t {
			n++
		}
	}
	return n
}

// Continents lists the distinct continent labels of non-water cells in order
// of first appearance.
func (g *GridMap) Continents() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range g.spots {
		if s.Type == SpotWater || s.Continent == "" || seen[s.Continent] {
			continue
		}
		seen[s.Continent] = true
		out = append(out, s.Continent)
	}
	return out
}

// Cells writes the type of every cell into dst, growing it as needed, for
// painters that work on byte buffers.
func (g *GridMap) Cells(dst []uint8) []uint8 {
	if cap(dst) < len(g.spots) {
		dst = make([]uint8, len(g.spots))
	}
	dst = dst[:len(g.spots)]
	for i, s := range g.spots {
		dst[i] = uint8(s.Type)
	}
	return dst
}

// Clone returns a deep copy of the map.
func (g *GridMap) Clone() *GridMap {
	return &GridMap{W: g.W, H: g.H, spots: append([]Spot(nil), g.spots...)}
}
