package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim is the read side a viewer needs to draw a turn-based grid.
type Sim interface {
	Name() string
	Size() Size
	Cells() []uint8
	Stats() Snapshot
}
