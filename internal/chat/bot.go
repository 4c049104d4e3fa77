// Package chat turns prefixed text commands into game operations and replies.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"contagion/internal/game"
	"contagion/internal/logging"
	"contagion/internal/maps"
	"contagion/internal/render"
	"contagion/internal/sims/contagion"
)

var (
	// ErrNotCommand is returned for text that does not start with the prefix.
	ErrNotCommand = errors.New("not a command")
	// ErrRateLimited is returned when a user sends commands too quickly.
	ErrRateLimited = errors.New("rate limited")
)

// Message is one inbound chat line.
type Message struct {
	User string
	Name string
	Text string
}

// Reply is what the bot sends back. Image holds a PNG when the map is shown.
type Reply struct {
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
	Image  []byte `json:"image,omitempty"`
}

// Options configures a Bot.
type Options struct {
	Prefix    string
	Scale     int
	RateLimit float64
	RateBurst int
	Logger    *slog.Logger
}

// Bot dispatches commands to a game manager.
type Bot struct {
	games   *game.Manager
	prefix  string
	scale   int
	limits  *userLimiters
	logger  *slog.Logger
	handler map[string]handlerFunc
}

type handlerFunc func(ctx context.Context, msg Message, arg string) (Reply, error)

// New builds a Bot over games.
func New(games *game.Manager, opts Options) *Bot {
	if opts.Prefix == "" {
		opts.Prefix = "p!"
	}
	if opts.Scale <= 0 {
		opts.Scale = render.DefaultScale
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	b := &Bot{
		games:  games,
		prefix: opts.Prefix,
		scale:  opts.Scale,
		limits: newUserLimiters(opts.RateLimit, opts.RateBurst),
		logger: opts.Logger,
	}
	b.handler = map[string]handlerFunc{
		"newgame":  b.newGame,
		"map":      b.showMap,
		"place":    b.place,
		"next":     b.next,
		"upgrade":  b.upgrade,
		"upgrades": b.listUpgrades,
		"maps":     b.listMaps,
		"end":      b.end,
		"help":     b.help,
	}
	return b
}

// Prefix returns the command prefix.
func (b *Bot) Prefix() string { return b.prefix }

// Handle runs one command. Player mistakes produce a Reply and a nil error;
// the error is reserved for text that is not a command, rate limiting, and
// storage failures (which still carry a Reply to show).
func (b *Bot) Handle(ctx context.Context, msg Message) (Reply, error) {
	cmd, arg, ok := b.parse(msg.Text)
	if !ok {
		return Reply{}, ErrNotCommand
	}
	if !b.limits.Allow(msg.User) {
		return Reply{Text: "Slow down! Try again in a moment."}, ErrRateLimited
	}
	h, ok := b.handler[cmd]
	if !ok {
		return Reply{Text: fmt.Sprintf("Unknown command %q. Try %shelp.", cmd, b.prefix)}, nil
	}
	reply, err := h(ctx, msg, arg)
	if err != nil {
		if errors.Is(err, game.ErrStorage) {
			b.logger.Error("command failed", "user", msg.User, "command", cmd, "error", err)
			return Reply{Text: "Something went wrong saving your game. Please try again."}, err
		}
		return Reply{Text: b.describe(err, arg)}, nil
	}
	return reply, nil
}

func (b *Bot) parse(text string) (cmd, arg string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, b.prefix) {
		return "", "", false
	}
	rest := strings.TrimSpace(text[len(b.prefix):])
	if rest == "" {
		return "help", "", true
	}
	cmd, arg, _ = strings.Cut(rest, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg), true
}

// describe turns a rejected operation into the message a player sees.
func (b *Bot) describe(err error, arg string) string {
	var (
		ipe *contagion.InsufficientPointsError
		mle *contagion.MaxLevelError
	)
	switch {
	case errors.Is(err, game.ErrNoGame):
		return fmt.Sprintf("No game found! Create a game with %snewgame.", b.prefix)
	case errors.Is(err, maps.ErrTemplateNotFound):
		return fmt.Sprintf("%s is not a valid map name.", arg)
	case errors.Is(err, contagion.ErrAlreadyStarted):
		return "You have already started your disease."
	case errors.Is(err, contagion.ErrInvalidContinent):
		return fmt.Sprintf("%s is not a valid continent.", arg)
	case errors.Is(err, contagion.ErrNotStarted):
		return fmt.Sprintf("Your disease has not started yet. Place it with %splace <continent>.", b.prefix)
	case errors.Is(err, contagion.ErrUnknownUpgrade):
		return fmt.Sprintf("%s is not a valid upgrade. See %supgrades.", arg, b.prefix)
	case errors.As(err, &mle):
		return fmt.Sprintf("%s is already at max level (%d).", mle.Upgrade, mle.Level)
	case errors.As(err, &ipe):
		return fmt.Sprintf("%s costs %d points but you only have %d.", ipe.Upgrade, ipe.Required, ipe.Available)
	default:
		return "That did not work: " + err.Error()
	}
}

func (b *Bot) newGame(ctx context.Context, msg Message, arg string) (Reply, error) {
	if arg == "" {
		return Reply{Text: fmt.Sprintf("Enter a valid map name after %snewgame. Ex: %snewgame world.", b.prefix, b.prefix)}, nil
	}
	s, err := b.games.NewGame(ctx, msg.User, arg)
	if err != nil {
		return Reply{}, err
	}
	return b.mapReply(msg, s, fmt.Sprintf("New game on %s.", s.MapName()), -1)
}

func (b *Bot) showMap(ctx context.Context, msg Message, _ string) (Reply, error) {
	s, err := b.games.Show(ctx, msg.User)
	if err != nil {
		return Reply{}, err
	}
	return b.mapReply(msg, s, "", -1)
}

func (b *Bot) place(ctx context.Context, msg Message, arg string) (Reply, error) {
	if arg == "" {
		// Surface a missing game before asking for a continent.
		if _, err := b.games.Show(ctx, msg.User); err != nil {
			return Reply{}, err
		}
		return Reply{Text: fmt.Sprintf("Enter a valid continent after %splace. Ex: %splace North America.", b.prefix, b.prefix)}, nil
	}
	s, err := b.games.Place(ctx, msg.User, arg)
	if err != nil {
		return Reply{}, err
	}
	return b.mapReply(msg, s, fmt.Sprintf("Your disease has appeared in %s.", arg), -1)
}

func (b *Bot) next(ctx context.Context, msg Message, _ string) (Reply, error) {
	s, res, err := b.games.Advance(ctx, msg.User)
	if err != nil {
		return Reply{}, err
	}
	header := fmt.Sprintf("Day %d.", res.Turn)
	if res.PointsEarned > 0 {
		header += fmt.Sprintf(" +%d points.", res.PointsEarned)
	}
	if s.State() == contagion.Concluded {
		header += " The whole population is infected!"
	}
	return b.mapReply(msg, s, header, res.NewInfections)
}

func (b *Bot) upgrade(ctx context.Context, msg Message, arg string) (Reply, error) {
	if arg == "" {
		return Reply{Text: fmt.Sprintf("Enter an upgrade after %supgrade. Ex: %supgrade Airborne.", b.prefix, b.prefix)}, nil
	}
	s, bought, err := b.games.Purchase(ctx, msg.User, arg)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Author: msg.Name,
		Text: fmt.Sprintf("%s upgraded to level %d/%d. Points left: %d. Infect chance: %d.",
			bought.Name, bought.Level, bought.MaxLevel, s.Points(), s.InfectChance()),
	}, nil
}

func (b *Bot) listUpgrades(ctx context.Context, msg Message, _ string) (Reply, error) {
	s, err := b.games.Show(ctx, msg.User)
	if err != nil {
		return Reply{}, err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Points: %d\n", s.Points())
	for _, u := range s.Upgrades() {
		cost := "max"
		if c, err := u.CostToNextLevel(); err == nil {
			cost = fmt.Sprintf("%d points", c)
		}
		fmt.Fprintf(&sb, "%s %d/%d (next: %s) %s\n", u.Name, u.Level, u.MaxLevel, cost, u.Description)
	}
	return Reply{Author: msg.Name, Text: strings.TrimRight(sb.String(), "\n")}, nil
}

func (b *Bot) listMaps(_ context.Context, _ Message, _ string) (Reply, error) {
	names, err := b.games.Maps()
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: "Maps: " + strings.Join(names, ", ")}, nil
}

func (b *Bot) end(ctx context.Context, msg Message, _ string) (Reply, error) {
	if err := b.games.EndGame(ctx, msg.User); err != nil {
		return Reply{}, err
	}
	return Reply{Text: "Game ended."}, nil
}

func (b *Bot) help(_ context.Context, _ Message, _ string) (Reply, error) {
	p := b.prefix
	lines := []string{
		p + "newgame <map> - start a new game",
		p + "maps - list maps",
		p + "map - show your map",
		p + "place <continent> - start your disease",
		p + "next - advance one day",
		p + "upgrades - list upgrades",
		p + "upgrade <name> - buy an upgrade level",
		p + "end - delete your game",
	}
	return Reply{Text: strings.Join(lines, "\n")}, nil
}

func (b *Bot) mapReply(msg Message, s *contagion.Session, header string, newInfections int) (Reply, error) {
	m := s.Map()
	img, err := render.PNG(m, b.scale)
	if err != nil {
		return Reply{}, err
	}
	text := render.Summary(m, newInfections)
	if header != "" {
		text = header + "\n" + text
	}
	return Reply{Author: msg.Name, Text: text, Image: img}, nil
}
