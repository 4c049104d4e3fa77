package contagion

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidContinent indicates no land cell carries the requested continent.
	ErrInvalidContinent = errors.New("invalid continent")
	// ErrUnknownUpgrade indicates the session has no upgrade with that name.
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	// ErrAlreadyStarted indicates the initial infection was already placed.
	ErrAlreadyStarted = errors.New("infection already started")
	// ErrNotStarted indicates a turn was requested before placement.
	ErrNotStarted = errors.New("infection not started")
	// ErrMaxLevelReached indicates the upgrade cannot level further.
	ErrMaxLevelReached = errors.New("upgrade at max level")
	// ErrInsufficientPoints indicates the balance cannot cover the cost.
	ErrInsufficientPoints = errors.New("insufficient points")
)

// InsufficientPointsError reports the cost and balance of a failed purchase.
type InsufficientPointsError struct {
	Upgrade   string
	Required  int
	Available int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("%s: %s costs %d, have %d", ErrInsufficientPoints, e.Upgrade, e.Required, e.Available)
}

// Is matches ErrInsufficientPoints.
func (e *InsufficientPointsError) Is(target error) bool { return target == ErrInsufficientPoints }

// MaxLevelError reports the upgrade that is already maxed.
type MaxLevelError struct {
	Upgrade string
	Level   int
}

func (e *MaxLevelError) Error() string {
	return fmt.Sprintf("%s: %s is at level %d", ErrMaxLevelReached, e.Upgrade, e.Level)
}

// Is matches ErrMaxLevelReached.
func (e *MaxLevelError) Is(target error) bool { return target == ErrMaxLevelReached }
