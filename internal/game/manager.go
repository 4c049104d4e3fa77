// Package game loads, mutates, and persists one session per user.
package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"contagion/internal/logging"
	"contagion/internal/maps"
	"contagion/internal/sims/contagion"
	"contagion/internal/store"
	pcore "contagion/pkg/core"
)

// RandFactory returns a fresh random source for a loaded session.
type RandFactory func() contagion.Rand

// Manager runs engine operations for users. Calls for the same user are
// serialized; different users proceed in parallel. A session is saved only
// after its engine call succeeds.
type Manager struct {
	templates maps.Source
	store     store.Store
	cfg       contagion.Config
	logger    *slog.Logger
	newRand   RandFactory
	locks     keyedMutex
}

// Option customises a Manager.
type Option func(*Manager)

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRand replaces the random source factory.
func WithRand(f RandFactory) Option {
	return func(m *Manager) {
		if f != nil {
			m.newRand = f
		}
	}
}

// NewManager wires a manager over templates and st.
func NewManager(templates maps.Source, st store.Store, cfg contagion.Config, opts ...Option) *Manager {
	m := &Manager{
		templates: templates,
		store:     st,
		cfg:       cfg,
		logger:    logging.Discard(),
		newRand:   seededRand,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func seededRand() contagion.Rand {
	seed, err := pcore.NewSeed()
	if err != nil {
		seed = time.Now().UnixNano()
	}
	return pcore.NewRNG(seed)
}

// Maps lists the template names a game can start from.
func (m *Manager) Maps() ([]string, error) {
	return m.templates.Names()
}

// NewGame starts a game on mapName, replacing any game the user had.
func (m *Manager) NewGame(ctx context.Context, user, mapName string) (*contagion.Session, error) {
	unlock := m.locks.Lock(user)
	defer unlock()

	name, err := maps.Normalize(mapName)
	if err != nil {
		return nil, err
	}
	tmpl, err := m.templates.Template(name)
	if err != nil {
		return nil, err
	}
	s, err := contagion.New(name, tmpl, m.cfg, m.newRand())
	if err != nil {
		return nil, err
	}
	if err := m.save(ctx, user, s); err != nil {
		return nil, err
	}
	m.logger.Debug("new game", "user", user, "op", "newgame", "map", name, "game", s.ID())
	return s, nil
}

// Show returns the user's current session.
func (m *Manager) Show(ctx context.Context, user string) (*contagion.Session, error) {
	unlock := m.locks.Lock(user)
	defer unlock()
	return m.load(ctx, user)
}

// Place puts the first infection on continent.
func (m *Manager) Place(ctx context.Context, user, continent string) (*contagion.Session, error) {
	var idx int
	s, err := m.mutate(ctx, user, "place", func(s *contagion.Session) error {
		var err error
		idx, err = s.PlaceInfection(continent)
		return err
	})
	if err != nil {
		return nil, err
	}
	m.logger.Debug("placed infection", "user", user, "op", "place", "continent", continent, "index", idx)
	return s, nil
}

// Advance plays one turn.
func (m *Manager) Advance(ctx context.Context, user string) (*contagion.Session, contagion.TurnResult, error) {
	var res contagion.TurnResult
	s, err := m.mutate(ctx, user, "next", func(s *contagion.Session) error {
		var err error
		res, err = s.AdvanceTurn()
		return err
	})
	if err != nil {
		return nil, contagion.TurnResult{}, err
	}
	m.logger.Debug("advanced turn", "user", user, "op", "next",
		"turn", res.Turn, "new_infections", res.NewInfections, "infected", res.Infected, "total", res.Total)
	return s, res, nil
}

// Purchase buys one level of the named upgrade.
func (m *Manager) Purchase(ctx context.Context, user, upgrade string) (*contagion.Session, contagion.Upgrade, error) {
	var bought contagion.Upgrade
	s, err := m.mutate(ctx, user, "upgrade", func(s *contagion.Session) error {
		var err error
		bought, err = s.PurchaseUpgrade(upgrade)
		return err
	})
	if err != nil {
		return nil, bought, err
	}
	m.logger.Debug("purchased upgrade", "user", user, "op", "upgrade",
		"upgrade", bought.Name, "level", bought.Level, "points", s.Points())
	return s, bought, nil
}

// EndGame deletes the user's session.
func (m *Manager) EndGame(ctx context.Context, user string) error {
	unlock := m.locks.Lock(user)
	defer unlock()
	if _, err := m.load(ctx, user); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, user); err != nil {
		return m.storageErr(user, "delete", err)
	}
	m.logger.Debug("ended game", "user", user, "op", "end")
	return nil
}

func (m *Manager) mutate(ctx context.Context, user, op string, fn func(*contagion.Session) error) (*contagion.Session, error) {
	unlock := m.locks.Lock(user)
	defer unlock()

	s, err := m.load(ctx, user)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		m.logger.Debug("operation rejected", "user", user, "op", op, "error", err)
		return nil, err
	}
	if err := m.save(ctx, user, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) load(ctx context.Context, user string) (*contagion.Session, error) {
	blob, err := m.store.Load(ctx, user)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoGame
	}
	if err != nil {
		return nil, m.storageErr(user, "load", err)
	}
	s, err := contagion.Unmarshal(blob, m.newRand())
	if err != nil {
		return nil, m.storageErr(user, "decode", err)
	}
	return s, nil
}

func (m *Manager) save(ctx context.Context, user string, s *contagion.Session) error {
	blob, err := contagion.Marshal(s)
	if err != nil {
		return m.storageErr(user, "encode", err)
	}
	if err := m.store.Save(ctx, user, blob); err != nil {
		return m.storageErr(user, "save", err)
	}
	return nil
}

func (m *Manager) storageErr(user, op string, err error) error {
	m.logger.Error("session storage failed", "user", user, "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}
