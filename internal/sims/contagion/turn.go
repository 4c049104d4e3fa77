package contagion

import (
	"contagion/internal/core"

	"github.com/zyedidia/generic/mapset"
)

const (
	// DrawMax is the upper bound of the per-edge draw; only this value spreads.
	DrawMax = 15
	// MaxInfectChance caps the summed upgrade levels so at least two draw
	// outcomes remain and spread stays probabilistic.
	MaxInfectChance = DrawMax - 1
)

// TurnResult summarises one turn.
type TurnResult struct {
	Turn          int
	Total         int
	Infected      int
	NewInfections int
	PointsEarned  int
}

// InfectChance is the sum of all upgrade levels, clamped to MaxInfectChance.
// Each edge spreads with probability 1/(DrawMax+1-InfectChance).
func (s *Session) InfectChance() int {
	chance := 0
	for _, u := range s.upgrades {
		chance += u.Level
	}
	if chance > MaxInfectChance {
		chance = MaxInfectChance
	}
	return chance
}

// AdvanceTurn applies one synchronous generation of spread. Every infected
// cell rolls once per neighbour against the map as it was at the start of the
// turn; cells infected this turn do not spread until the next one.
func (s *Session) AdvanceTurn() (TurnResult, error) {
	if !s.HasStarted() {
		return TurnResult{}, ErrNotStarted
	}

	chance := s.InfectChance()
	pending := mapset.New[int]()
	var buf [4]int
	for i := 0; i < s.grid.Len(); i++ {
		if s.grid.Spot(i).Type != core.SpotInfected {
			continue
		}
		for _, n := range s.grid.Neighbors(i, buf[:0]) {
			if s.rng.IntRange(chance, DrawMax) != DrawMax {
				continue
			}
			if s.grid.Spot(n).Type == core.SpotLand {
				pending.Put(n)
			}
		}
	}

	pending.Each(func(i int) {
		s.grid.Infect(i)
	})

	s.turn++
	earned := pending.Size() * s.income
	s.points += earned

	total, infected := s.grid.Population()
	return TurnResult{
		Turn:          s.turn,
		Total:         total,
		Infected:      infected,
		NewInfections: pending.Size(),
		PointsEarned:  earned,
	}, nil
}
