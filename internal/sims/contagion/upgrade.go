package contagion

import "fmt"

// Upgrade is a leveled modifier bought with points. Each level adds one to
// the session's infect chance.
type Upgrade struct {
	Name        string
	Description string
	Level       int
	MaxLevel    int
	BaseCost    int
	Interval    int
}

// CostToNextLevel returns BaseCost + Level*Interval.
func (u Upgrade) CostToNextLevel() (int, error) {
	if u.Maxed() {
		return 0, &MaxLevelError{Upgrade: u.Name, Level: u.Level}
	}
	return u.BaseCost + u.Level*u.Interval, nil
}

// LevelUp raises the level by one.
func (u *Upgrade) LevelUp() error {
	if u.Maxed() {
		return &MaxLevelError{Upgrade: u.Name, Level: u.Level}
	}
	u.Level++
	return nil
}

// Maxed reports whether the upgrade reached MaxLevel.
func (u Upgrade) Maxed() bool { return u.Level >= u.MaxLevel }

func (u Upgrade) String() string {
	cost, err := u.CostToNextLevel()
	if err != nil {
		return fmt.Sprintf("%s (level %d/%d, maxed)", u.Name, u.Level, u.MaxLevel)
	}
	return fmt.Sprintf("%s (level %d/%d, next level costs %d)", u.Name, u.Level, u.MaxLevel, cost)
}

func (u Upgrade) validate() error {
	switch {
	case u.Name == "":
		return fmt.Errorf("upgrade name is required")
	case u.MaxLevel < 0:
		return fmt.Errorf("upgrade %s: negative max level %d", u.Name, u.MaxLevel)
	case u.Level < 0 || u.Level > u.MaxLevel:
		return fmt.Errorf("upgrade %s: level %d outside [0, %d]", u.Name, u.Level, u.MaxLevel)
	case u.BaseCost <= 0:
		return fmt.Errorf("upgrade %s: base cost must be positive", u.Name)
	case u.Interval <= 0:
		return fmt.Errorf("upgrade %s: interval must be positive", u.Name)
	}
	return nil
}
