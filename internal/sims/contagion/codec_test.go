package contagion

import (
	"slices"
	"testing"
)

func TestMarshalRestoresSession(t *testing.T) {
	m := mustMap(t, 3, 2,
		land("Europe", 10), water(), land("Asia", 20),
		land("Europe", 5), land("Asia", 7), water())
	s := newSession(t, m, &stubRand{hit: true})
	s.points = 30
	if _, err := s.PlaceInfection("europe"); err != nil {
		t.Fatalf("PlaceInfection: %v", err)
	}
	if _, err := s.PurchaseUpgrade("Contact"); err != nil {
		t.Fatalf("PurchaseUpgrade: %v", err)
	}
	if _, err := s.AdvanceTurn(); err != nil {
		t.Fatalf("AdvanceTurn: %v", err)
	}

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data, &stubRand{})
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.ID() != s.ID() || got.MapName() != s.MapName() {
		t.Fatalf("identity lost: %s/%s", got.ID(), got.MapName())
	}
	if got.Points() != s.Points() || got.Turn() != s.Turn() || got.InfectChance() != s.InfectChance() {
		t.Fatal("counters lost")
	}
	if !slices.Equal(got.Map().Spots(), s.Map().Spots()) {
		t.Fatal("map lost")
	}
	if !slices.Equal(got.Upgrades(), s.Upgrades()) {
		t.Fatal("upgrades lost")
	}
}

func TestUnmarshalRejectsBadRecords(t *testing.T) {
	cases := map[string]string{
		"garbage":       `{`,
		"cell count":    `{"width":2,"height":1,"spots":[{"t":"land","p":1}]}`,
		"spot type":     `{"width":1,"height":1,"spots":[{"t":"lava","p":1}]}`,
		"level too big": `{"width":1,"height":1,"spots":[{"t":"land","p":1}],"upgrades":[{"name":"A","level":3,"max_level":2,"base_cost":1,"interval":1}]}`,
		"points":        `{"width":1,"height":1,"spots":[{"t":"land","p":1}],"points":-1}`,
	}
	for name, data := range cases {
		if _, err := Unmarshal([]byte(data), nil); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestConfigWithOverrides(t *testing.T) {
	base := DefaultConfig()
	c, err := base.WithOverrides(map[string]string{"starting_points": "25", "points_per_infection": "3"})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if c.StartingPoints != 25 || c.PointsPerInfection != 3 {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if base.StartingPoints != DefaultConfig().StartingPoints {
		t.Fatal("receiver must not change")
	}
	if _, err := base.WithOverrides(map[string]string{"points_per_infection": "-1"}); err == nil {
		t.Fatal("expected error for negative value")
	}
	if _, err := base.WithOverrides(map[string]string{"luck": "1"}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
