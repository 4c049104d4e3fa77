package core

import "strconv"

// Stat is a single labelled value shown next to the map.
type Stat struct {
	Key   string
	Label string
	Value string
}

// StatGroup clusters related stats for presentation purposes.
type StatGroup struct {
	Name  string
	Stats []Stat
}

// Snapshot captures the stats a session exposes at one point in time.
type Snapshot struct {
	Groups []StatGroup
}

// Lookup returns the stat with the given key.
func (s Snapshot) Lookup(key string) (Stat, bool) {
	for _, g := range s.Groups {
		for _, st := range g.Stats {
			if st.Key == key {
				return st, true
			}
		}
	}
	return Stat{}, false
}

// IntStat builds a Stat holding an integer.
func IntStat(key, label string, value int) Stat {
	return Stat{Key: key, Label: label, Value: strconv.Itoa(value)}
}

// TextStat builds a Stat holding free text.
func TextStat(key, label, value string) Stat {
	return Stat{Key: key, Label: label, Value: value}
}
