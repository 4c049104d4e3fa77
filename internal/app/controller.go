// Package app hosts the desktop viewer. The Controller holds everything that
// does not need a window so it can be exercised headless.
package app

import (
	"context"
	"errors"
	"fmt"

	"contagion/internal/core"
	"contagion/internal/game"
	"contagion/internal/sims/contagion"
)

// Controller applies viewer input to one player's game through a Manager.
type Controller struct {
	ctx    context.Context
	games  *game.Manager
	user   string
	sess   *contagion.Session
	status string
}

// NewController loads user's game, starting one on mapName if none exists.
func NewController(ctx context.Context, games *game.Manager, user, mapName string) (*Controller, error) {
	sess, err := games.Show(ctx, user)
	if errors.Is(err, game.ErrNoGame) {
		sess, err = games.NewGame(ctx, user, mapName)
	}
	if err != nil {
		return nil, err
	}
	c := &Controller{ctx: ctx, games: games, user: user, sess: sess}
	c.status = c.hint()
	return c, nil
}

// Session returns the latest saved session.
func (c *Controller) Session() *contagion.Session { return c.sess }

// Status is a one-line message about the last action.
func (c *Controller) Status() string { return c.status }

// Advance plays one turn. It reports whether the game can keep going.
func (c *Controller) Advance() bool {
	sess, res, err := c.games.Advance(c.ctx, c.user)
	if err != nil {
		c.status = describe(err)
		return false
	}
	c.sess = sess
	c.status = fmt.Sprintf("Day %d: %d new infections", res.Turn, res.NewInfections)
	if sess.State() == contagion.Concluded {
		c.status = fmt.Sprintf("Everyone infected after %d days", res.Turn)
		return false
	}
	return true
}

// PlaceAt starts the infection on the continent of cell idx.
func (c *Controller) PlaceAt(idx int) {
	m := c.sess.Map()
	if idx < 0 || idx >= m.Len() {
		return
	}
	spot := m.Spot(idx)
	if spot.Continent == "" {
		c.status = "Click on land to place your disease"
		return
	}
	sess, err := c.games.Place(c.ctx, c.user, spot.Continent)
	if err != nil {
		c.status = describe(err)
		return
	}
	c.sess = sess
	c.status = "Disease placed in " + spot.Continent
}

// Buy purchases the i-th upgrade in catalog order.
func (c *Controller) Buy(i int) {
	ups := c.sess.Upgrades()
	if i < 0 || i >= len(ups) {
		return
	}
	sess, bought, err := c.games.Purchase(c.ctx, c.user, ups[i].Name)
	if err != nil {
		c.status = describe(err)
		return
	}
	c.sess = sess
	c.status = fmt.Sprintf("%s now level %d/%d", bought.Name, bought.Level, bought.MaxLevel)
}

// ContinentAt returns the continent under cell idx, if any.
func (c *Controller) ContinentAt(idx int) string {
	m := c.sess.Map()
	if idx < 0 || idx >= m.Len() {
		return ""
	}
	return m.Spot(idx).Continent
}

func (c *Controller) hint() string {
	if c.sess.HasStarted() {
		return "N: next day, Space: autoplay, 1-9: upgrades"
	}
	return "Click a continent to place your disease"
}

// CellAt maps a screen position to a cell index for a grid drawn at scale.
func CellAt(x, y, scale int, size core.Size) (int, bool) {
	if scale <= 0 || x < 0 || y < 0 {
		return 0, false
	}
	cx, cy := x/scale, y/scale
	if cx >= size.W || cy >= size.H {
		return 0, false
	}
	return cy*size.W + cx, true
}

func describe(err error) string {
	var ipe *contagion.InsufficientPointsError
	switch {
	case errors.As(err, &ipe):
		return fmt.Sprintf("%s needs %d points, you have %d", ipe.Upgrade, ipe.Required, ipe.Available)
	case errors.Is(err, contagion.ErrMaxLevelReached):
		return "Upgrade already at max level"
	case errors.Is(err, contagion.ErrAlreadyStarted):
		return "Your disease has already started"
	case errors.Is(err, contagion.ErrNotStarted):
		return "Click a continent to place your disease first"
	default:
		return err.Error()
	}
}
