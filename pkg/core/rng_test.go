package core

import "testing"

func TestIntRangeStaysInBounds(t *testing.T) {
	r := NewRNG(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := r.IntRange(10, 15)
		if v < 10 || v > 15 {
			t.Fatalf("IntRange(10, 15) = %d, out of bounds", v)
		}
		seen[v] = true
	}
	for v := 10; v <= 15; v++ {
		if !seen[v] {
			t.Fatalf("value %d never drawn in 2000 samples", v)
		}
	}
}

func TestIntRangeDegenerate(t *testing.T) {
	r := NewRNG(1)
	if got := r.IntRange(15, 15); got != 15 {
		t.Fatalf("IntRange(15, 15) = %d, want 15", got)
	}
	if got := r.IntRange(20, 15); got != 20 {
		t.Fatalf("IntRange(20, 15) = %d, want lo", got)
	}
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, want 0", got)
	}
}

func TestNewRNGDeterministic(t *testing.T) {
	a, b := NewRNG(99), NewRNG(99)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestNewSeed(t *testing.T) {
	if _, err := NewSeed(); err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
}
