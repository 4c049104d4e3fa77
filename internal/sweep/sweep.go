// Package sweep plays many seeded games per upgrade profile in parallel and
// reports how quickly each profile infects the whole map.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"contagion/internal/core"
	"contagion/internal/sims/contagion"
	pcore "contagion/pkg/core"
)

// Profile fixes upgrade levels for every game of a scenario.
type Profile struct {
	Name   string
	Levels map[string]int
}

func (p Profile) String() string {
	if len(p.Levels) == 0 {
		return p.Name + " (no upgrades)"
	}
	keys := make([]string, 0, len(p.Levels))
	for k := range p.Levels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, p.Levels[k])
	}
	return fmt.Sprintf("%s (%s)", p.Name, strings.Join(parts, " "))
}

// Options describes a sweep.
type Options struct {
	MapName  string
	Template *core.GridMap
	// Continent receives the first infection. Empty picks the first continent.
	Continent string
	Config    contagion.Config
	Profiles  []Profile
	Runs      int
	MaxTurns  int
	Workers   int
	Seed      int64
}

// Result aggregates the runs of one profile.
type Result struct {
	Profile      Profile
	InfectChance int
	Runs         int
	Concluded    int
	MeanTurns    float64
	MinTurns     int
	MaxTurns     int
	// MeanNewPerTurn averages new infections per turn over all runs.
	MeanNewPerTurn float64
}

type job struct {
	profile int
	run     int
}

type runResult struct {
	profile      int
	turns        int
	concluded    bool
	newInfected  int
	infectChance int
	err          error
}

// ParseProfile reads "name=Upgrade:level,Upgrade:level". A bare name is a
// profile without upgrades.
func ParseProfile(s string) (Profile, error) {
	name, body, _ := strings.Cut(strings.TrimSpace(s), "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return Profile{}, fmt.Errorf("profile %q: name is required", s)
	}
	p := Profile{Name: name}
	if strings.TrimSpace(body) == "" {
		return p, nil
	}
	p.Levels = map[string]int{}
	for _, part := range strings.Split(body, ",") {
		upgrade, level, ok := strings.Cut(part, ":")
		upgrade = strings.TrimSpace(upgrade)
		n, err := strconv.Atoi(strings.TrimSpace(level))
		if !ok || upgrade == "" || err != nil || n < 0 {
			return Profile{}, fmt.Errorf("profile %q: bad entry %q (want Upgrade:level)", name, part)
		}
		p.Levels[upgrade] = n
	}
	return p, nil
}

// DefaultProfiles returns a baseline, one profile per maxed upgrade, and
// everything maxed.
func DefaultProfiles(catalog []contagion.Upgrade) []Profile {
	profiles := []Profile{{Name: "baseline"}}
	all := map[string]int{}
	for _, u := range catalog {
		profiles = append(profiles, Profile{Name: strings.ToLower(u.Name), Levels: map[string]int{u.Name: u.MaxLevel}})
		all[u.Name] = u.MaxLevel
	}
	return append(profiles, Profile{Name: "all", Levels: all})
}

// Run plays opts.Runs games for each profile and returns one Result per
// profile in input order.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Template == nil {
		return nil, errors.New("sweep: map template is required")
	}
	if opts.Runs <= 0 {
		opts.Runs = 1
	}
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = 500
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if len(opts.Profiles) == 0 {
		opts.Profiles = DefaultProfiles(opts.Config.Catalog)
	}
	if opts.Continent == "" {
		continents := opts.Template.Continents()
		if len(continents) == 0 {
			return nil, errors.New("sweep: map has no continents")
		}
		opts.Continent = continents[0]
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job)
	results := make(chan runResult)
	var wg sync.WaitGroup

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				res := playOne(opts, j)
				select {
				case results <- res:
				case <-runCtx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for p := range opts.Profiles {
			for r := 0; r < opts.Runs; r++ {
				select {
				case jobs <- job{profile: p, run: r}:
				case <-runCtx.Done():
					return
				}
			}
		}
	}()

	agg := make([]Result, len(opts.Profiles))
	totalNew := make([]int, len(opts.Profiles))
	totalTurns := make([]int, len(opts.Profiles))
	for i, p := range opts.Profiles {
		agg[i] = Result{Profile: p, MinTurns: math.MaxInt}
	}
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		r := &agg[res.profile]
		r.Runs++
		r.InfectChance = res.infectChance
		if res.concluded {
			r.Concluded++
		}
		r.MinTurns = min(r.MinTurns, res.turns)
		r.MaxTurns = max(r.MaxTurns, res.turns)
		totalTurns[res.profile] += res.turns
		totalNew[res.profile] += res.newInfected
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i := range agg {
		r := &agg[i]
		if r.Runs == 0 {
			r.MinTurns = 0
			continue
		}
		r.MeanTurns = float64(totalTurns[i]) / float64(r.Runs)
		if totalTurns[i] > 0 {
			r.MeanNewPerTurn = float64(totalNew[i]) / float64(totalTurns[i])
		}
	}
	return agg, nil
}

func playOne(opts Options, j job) runResult {
	out := runResult{profile: j.profile}
	cfg := opts.Config
	// Levels are bought up front, so the balance must cover any profile.
	cfg.StartingPoints = math.MaxInt32
	rng := pcore.NewRNG(opts.Seed + int64(j.profile)*1_000_003 + int64(j.run))
	s, err := contagion.New(opts.MapName, opts.Template, cfg, rng)
	if err != nil {
		out.err = err
		return out
	}
	for name, level := range opts.Profiles[j.profile].Levels {
		for i := 0; i < level; i++ {
			if _, err := s.PurchaseUpgrade(name); err != nil {
				out.err = fmt.Errorf("profile %s: %w", opts.Profiles[j.profile].Name, err)
				return out
			}
		}
	}
	out.infectChance = s.InfectChance()
	if _, err := s.PlaceInfection(opts.Continent); err != nil {
		out.err = err
		return out
	}
	for out.turns < opts.MaxTurns && s.State() != contagion.Concluded {
		res, err := s.AdvanceTurn()
		if err != nil {
			out.err = err
			return out
		}
		out.turns++
		out.newInfected += res.NewInfections
	}
	out.concluded = s.State() == contagion.Concluded
	return out
}

// Report writes a plain-text summary of results.
func Report(w io.Writer, results []Result) {
	for i, r := range results {
		fmt.Fprintf(w, "%2d) %-40s chance=%2d runs=%d concluded=%d turns mean=%.1f min=%d max=%d new/turn=%.2f\n",
			i+1, r.Profile, r.InfectChance, r.Runs, r.Concluded, r.MeanTurns, r.MinTurns, r.MaxTurns, r.MeanNewPerTurn)
	}
}
