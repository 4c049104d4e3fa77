// Package maps loads named map templates that new games are copied from.
package maps

import (
	"fmt"
	"unicode/utf8"

	"contagion/internal/core"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk shape of a map template. Each rune of a row is
// looked up in the legend to produce one spot.
type Definition struct {
	Name   string                 `yaml:"name"`
	Legend map[string]LegendEntry `yaml:"legend"`
	Rows   []string               `yaml:"rows"`
}

// LegendEntry describes the spot a legend rune stands for.
type LegendEntry struct {
	Type       string `yaml:"type"`
	Continent  string `yaml:"continent,omitempty"`
	Population int    `yaml:"population,omitempty"`
}

// Parse decodes a YAML template into a map.
func Parse(data []byte) (*core.GridMap, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return def.Build()
}

// Build turns the definition into a validated map.
func (d Definition) Build() (*core.GridMap, error) {
	if len(d.Rows) == 0 {
		return nil, fmt.Errorf("map %q has no rows", d.Name)
	}
	legend := make(map[rune]core.Spot, len(d.Legend))
	for key, entry := range d.Legend {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("map %q: legend key %q must be a single character", d.Name, key)
		}
		t, err := core.ParseSpotType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("map %q: legend %q: %w", d.Name, key, err)
		}
		r, _ := utf8.DecodeRuneInString(key)
		legend[r] = core.Spot{Type: t, Continent: entry.Continent, Population: entry.Population}
	}

	width := utf8.RuneCountInString(d.Rows[0])
	spots := make([]core.Spot, 0, width*len(d.Rows))
	for y, row := range d.Rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, fmt.Errorf("map %q: row %d has %d cells, want %d", d.Name, y, n, width)
		}
		for x, r := range []rune(row) {
			spot, ok := legend[r]
			if !ok {
				return nil, fmt.Errorf("map %q: row %d column %d: %q not in legend", d.Name, y, x, r)
			}
			spots = append(spots, spot)
		}
	}
	m, err := core.NewGridMap(width, len(d.Rows), spots)
	if err != nil {
		return nil, fmt.Errorf("map %q: %w", d.Name, err)
	}
	return m, nil
}
