package contagion

import (
	"fmt"
	"strconv"
)

// Config controls how new sessions are seeded.
type Config struct {
	StartingPoints     int
	PointsPerInfection int
	Catalog            []Upgrade
}

// DefaultCatalog returns the upgrades every new game starts with, all at
// level 0. Their max levels sum to MaxInfectChance.
func DefaultCatalog() []Upgrade {
	return []Upgrade{
		{Name: "Airborne", Description: "Spreads through the air between neighbouring regions.", MaxLevel: 5, BaseCost: 9, Interval: 1},
		{Name: "Waterborne", Description: "Survives in rivers and water supplies.", MaxLevel: 4, BaseCost: 7, Interval: 2},
		{Name: "Contact", Description: "Spreads through touch and shared surfaces.", MaxLevel: 5, BaseCost: 5, Interval: 3},
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		StartingPoints:     10,
		PointsPerInfection: 1,
		Catalog:            DefaultCatalog(),
	}
}

// WithOverrides returns a copy of c with flag-style key/value overrides
// applied. Known keys are starting_points and points_per_infection.
func (c Config) WithOverrides(kv map[string]string) (Config, error) {
	out := c
	out.Catalog = append([]Upgrade(nil), c.Catalog...)
	for key, v := range kv {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return c, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
		}
		switch key {
		case "starting_points":
			out.StartingPoints = parsed
		case "points_per_infection":
			out.PointsPerInfection = parsed
		default:
			return c, fmt.Errorf("unknown setting %q", key)
		}
	}
	return out, nil
}
