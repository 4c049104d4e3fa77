package app

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags holds the viewer's command-line parameters.
type Flags struct {
	User     string
	Map      string
	Scale    int
	TPS      int
	Interval time.Duration
}

// NewFlags returns Flags populated with sensible defaults.
func NewFlags() *Flags {
	return &Flags{User: "local", Map: "world", Scale: 16, TPS: 60, Interval: 500 * time.Millisecond}
}

// Bind attaches the flags to fs.
func (f *Flags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.User, "user", f.User, "player id whose game is shown")
	fs.StringVar(&f.Map, "map", f.Map, "map used when the player has no game")
	fs.IntVar(&f.Scale, "scale", f.Scale, "pixel scale multiplier")
	fs.IntVar(&f.TPS, "tps", f.TPS, "ticks per second")
	fs.DurationVar(&f.Interval, "interval", f.Interval, "time between turns while autoplaying")
}
