package game

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGame indicates the user has not created a game yet.
	ErrNoGame = errors.New("no game found")
	// ErrStorage marks failures of the session store or codec.
	ErrStorage = errors.New("session storage failed")
)

// StorageError wraps a persistence failure with the step that failed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s session: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is lets errors.Is match ErrStorage.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }
