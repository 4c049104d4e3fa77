package contagion

import (
	"encoding/json"
	"fmt"

	"contagion/internal/core"
)

// sessionRecord is the persisted shape of a Session. Every field is listed
// explicitly and decoded by hand into domain types.
type sessionRecord struct {
	ID       string          `json:"id"`
	Map      string          `json:"map"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Spots    []spotRecord    `json:"spots"`
	Points   int             `json:"points"`
	Income   int             `json:"income"`
	Turn     int             `json:"turn"`
	Upgrades []upgradeRecord `json:"upgrades"`
}

type spotRecord struct {
	Type       string `json:"t"`
	Continent  string `json:"c,omitempty"`
	Population int    `json:"p"`
}

type upgradeRecord struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Level       int    `json:"level"`
	MaxLevel    int    `json:"max_level"`
	BaseCost    int    `json:"base_cost"`
	Interval    int    `json:"interval"`
}

// Marshal encodes the session state. The random source is not persisted.
func Marshal(s *Session) ([]byte, error) {
	rec := sessionRecord{
		ID:     s.id,
		Map:    s.mapName,
		Width:  s.grid.W,
		Height: s.grid.H,
		Points: s.points,
		Income: s.income,
		Turn:   s.turn,
	}
	rec.Spots = make([]spotRecord, s.grid.Len())
	for i := range rec.Spots {
		spot := s.grid.Spot(i)
		rec.Spots[i] = spotRecord{Type: spot.Type.String(), Continent: spot.Continent, Population: spot.Population}
	}
	rec.Upgrades = make([]upgradeRecord, len(s.upgrades))
	for i, u := range s.upgrades {
		rec.Upgrades[i] = upgradeRecord{
			Name:        u.Name,
			Description: u.Description,
			Level:       u.Level,
			MaxLevel:    u.MaxLevel,
			BaseCost:    u.BaseCost,
			Interval:    u.Interval,
		}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

// Unmarshal rebuilds a session from Marshal output and attaches rng.
func Unmarshal(data []byte, rng Rand) (*Session, error) {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	spots := make([]core.Spot, len(rec.Spots))
	for i, r := range rec.Spots {
		t, err := core.ParseSpotType(r.Type)
		if err != nil {
			return nil, fmt.Errorf("decode spot %d: %w", i, err)
		}
		spots[i] = core.Spot{Type: t, Continent: r.Continent, Population: r.Population}
	}
	grid, err := core.NewGridMap(rec.Width, rec.Height, spots)
	if err != nil {
		return nil, fmt.Errorf("decode map: %w", err)
	}

	upgrades := make([]Upgrade, len(rec.Upgrades))
	for i, r := range rec.Upgrades {
		upgrades[i] = Upgrade{
			Name:        r.Name,
			Description: r.Description,
			Level:       r.Level,
			MaxLevel:    r.MaxLevel,
			BaseCost:    r.BaseCost,
			Interval:    r.Interval,
		}
	}
	if err := validateUpgrades(upgrades); err != nil {
		return nil, fmt.Errorf("decode upgrades: %w", err)
	}
	if rec.Points < 0 || rec.Income < 0 || rec.Turn < 0 {
		return nil, fmt.Errorf("decode session: negative counters")
	}

	return &Session{
		id:       rec.ID,
		mapName:  rec.Map,
		grid:     grid,
		points:   rec.Points,
		income:   rec.Income,
		turn:     rec.Turn,
		upgrades: upgrades,
		rng:      rng,
	}, nil
}
