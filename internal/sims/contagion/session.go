package contagion

import (
	"fmt"
	"strings"

	"contagion/internal/core"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// Rand is the randomness a session draws from.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// IntRange returns a value in [lo, hi], both inclusive.
	IntRange(lo, hi int) int
}

// State is the phase of a session, derived from its map.
type State uint8

const (
	// Unstarted sessions have no infected cell.
	Unstarted State = iota
	// Active sessions have infected cells and uninfected population left.
	Active
	// Concluded sessions have their whole population infected.
	Concluded
)

func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Active:
		return "active"
	case Concluded:
		return "concluded"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Session is one player's game: a map it owns exclusively, a points balance,
// and the upgrade catalog. A Session is not safe for concurrent use.
type Session struct {
	id      string
	mapName string
	grid    *core.GridMap

	points   int
	income   int
	turn     int
	upgrades []Upgrade

	rng     Rand
	display []uint8
}

// New starts a game on a private copy of template.
func New(mapName string, template *core.GridMap, cfg Config, rng Rand) (*Session, error) {
	if template == nil {
		return nil, fmt.Errorf("map template is required")
	}
	if cfg.StartingPoints < 0 {
		return nil, fmt.Errorf("starting points must be non-negative, got %d", cfg.StartingPoints)
	}
	if cfg.PointsPerInfection < 0 {
		return nil, fmt.Errorf("points per infection must be non-negative, got %d", cfg.PointsPerInfection)
	}
	upgrades := make([]Upgrade, len(cfg.Catalog))
	for i, u := range cfg.Catalog {
		u.Level = 0
		upgrades[i] = u
	}
	if err := validateUpgrades(upgrades); err != nil {
		return nil, err
	}
	return &Session{
		id:       uuid.NewString(),
		mapName:  mapName,
		grid:     template.Clone(),
		points:   cfg.StartingPoints,
		income:   cfg.PointsPerInfection,
		upgrades: upgrades,
		rng:      rng,
	}, nil
}

func validateUpgrades(upgrades []Upgrade) error {
	seen := map[string]bool{}
	fold := cases.Fold()
	for _, u := range upgrades {
		if err := u.validate(); err != nil {
			return err
		}
		key := fold.String(u.Name)
		if seen[key] {
			return fmt.Errorf("duplicate upgrade %q", u.Name)
		}
		seen[key] = true
	}
	return nil
}

// SetRand replaces the session's random source.
func (s *Session) SetRand(rng Rand) { s.rng = rng }

// ID identifies this game; a new game always gets a new ID.
func (s *Session) ID() string { return s.id }

// MapName returns the template the game was started from.
func (s *Session) MapName() string { return s.mapName }

// Map returns a copy of the session's map.
func (s *Session) Map() *core.GridMap { return s.grid.Clone() }

// Points returns the current balance.
func (s *Session) Points() int { return s.points }

// Turn returns how many turns have been played.
func (s *Session) Turn() int { return s.turn }

// Upgrades returns a copy of the upgrade list in catalog order.
func (s *Session) Upgrades() []Upgrade { return append([]Upgrade(nil), s.upgrades...) }

// Upgrade looks up an upgrade by name, ignoring case.
func (s *Session) Upgrade(name string) (Upgrade, bool) {
	if i := s.upgradeIndex(name); i >= 0 {
		return s.upgrades[i], true
	}
	return Upgrade{}, false
}

func (s *Session) upgradeIndex(name string) int {
	for i, u := range s.upgrades {
		if foldEqual(u.Name, name) {
			return i
		}
	}
	return -1
}

// HasStarted reports whether any cell is infected.
func (s *Session) HasStarted() bool { return s.grid.Count(core.SpotInfected) > 0 }

// State derives the session phase from the map.
func (s *Session) State() State {
	if !s.HasStarted() {
		return Unstarted
	}
	total, infected := s.grid.Population()
	if infected >= total {
		return Concluded
	}
	return Active
}

// Population returns total and infected population.
func (s *Session) Population() (total, infected int) { return s.grid.Population() }

// PlaceInfection infects one land cell of the named continent, chosen
// uniformly at random. It returns the infected index.
func (s *Session) PlaceInfection(continent string) (int, error) {
	if s.HasStarted() {
		return 0, ErrAlreadyStarted
	}
	var candidates []int
	for i := 0; i < s.grid.Len(); i++ {
		spot := s.grid.Spot(i)
		if spot.Type == core.SpotLand && foldEqual(spot.Continent, continent) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContinent, strings.TrimSpace(continent))
	}
	idx := candidates[s.rng.IntN(len(candidates))]
	s.grid.Infect(idx)
	return idx, nil
}

// PurchaseUpgrade pays for and applies one level of the named upgrade. The
// balance and level change together or not at all.
func (s *Session) PurchaseUpgrade(name string) (Upgrade, error) {
	i := s.upgradeIndex(name)
	if i < 0 {
		return Upgrade{}, fmt.Errorf("%w: %q", ErrUnknownUpgrade, strings.TrimSpace(name))
	}
	next := s.upgrades[i]
	cost, err := next.CostToNextLevel()
	if err != nil {
		return next, err
	}
	if s.points < cost {
		return next, &InsufficientPointsError{Upgrade: next.Name, Required: cost, Available: s.points}
	}
	if err := next.LevelUp(); err != nil {
		return s.upgrades[i], err
	}
	s.points -= cost
	s.upgrades[i] = next
	return next, nil
}

func foldEqual(a, b string) bool {
	fold := cases.Fold()
	return fold.String(strings.TrimSpace(a)) == fold.String(strings.TrimSpace(b))
}

// Name returns the simulation identifier.
func (s *Session) Name() string { return "contagion: " + s.mapName }

// Size reports the grid dimensions.
func (s *Session) Size() core.Size { return core.Size{W: s.grid.W, H: s.grid.H} }

// Cells exposes the spot type of every cell for painters.
func (s *Session) Cells() []uint8 {
	s.display = s.grid.Cells(s.display)
	return s.display
}

// Stats summarises the session for display.
func (s *Session) Stats() core.Snapshot {
	total, infected := s.grid.Population()
	groups := []core.StatGroup{
		{
			Name: "Game",
			Stats: []core.Stat{
				core.TextStat("state", "State", s.State().String()),
				core.IntStat("turn", "Turn", s.turn),
				core.IntStat("points", "Points", s.points),
				core.IntStat("infect_chance", "Infect chance", s.InfectChance()),
			},
		},
		{
			Name: "Population",
			Stats: []core.Stat{
				core.IntStat("population", "Population", total),
				core.IntStat("infected_population", "Infected Population", infected),
			},
		},
	}
	ups := core.StatGroup{Name: "Upgrades"}
	for _, u := range s.upgrades {
		value := fmt.Sprintf("%d/%d", u.Level, u.MaxLevel)
		if cost, err := u.CostToNextLevel(); err == nil {
			value = fmt.Sprintf("%s (%d)", value, cost)
		}
		ups.Stats = append(ups.Stats, core.TextStat("upgrade:"+u.Name, u.Name, value))
	}
	groups = append(groups, ups)
	return core.Snapshot{Groups: groups}
}
