// Package sweep runs many headless worlds across a grid of rule settings and
// summarises how often they produce paired organisms.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"sphere-ca/internal/core"
	"sphere-ca/internal/sims/spherelife"
	"sphere-ca/internal/topology/geodesic"
	"sphere-ca/internal/world"
)

// Scenario is one point of the sweep grid.
type Scenario struct {
	Survival spherelife.Rule
	Birth    spherelife.Rule
	Seed     int64
}

func (s Scenario) String() string {
	return fmt.Sprintf("S%d-%d/B%d-%d seed=%d", s.Survival.Min, s.Survival.Max, s.Birth.Min, s.Birth.Max, s.Seed)
}

// Sample records the world after one tick.
type Sample struct {
	Tick      int
	Alive     int
	Organisms int
	Pairs     int
}

// Result is the outcome of one scenario.
type Result struct {
	Scenario    Scenario
	Series      []Sample
	MeanAlive   float64
	StdAlive    float64
	PeakPairs   int
	PairedTicks int
}

// Options controls a sweep run.
type Options struct {
	Radius  float64
	Level   int
	Steps   int
	Workers int
	Base    world.Config
	Log     core.Logger
}

// DefaultOptions returns a small sweep over a level 2 sphere.
func DefaultOptions() Options {
	return Options{Radius: 1, Level: 2, Steps: 200, Workers: runtime.NumCPU(), Base: world.DefaultConfig()}
}

// Rules enumerates every Min <= Max range inside [lo, hi].
func Rules(lo, hi int) []spherelife.Rule {
	var out []spherelife.Rule
	for min := lo; min <= hi; min++ {
		for max := min; max <= hi; max++ {
			out = append(out, spherelife.Rule{Min: min, Max: max})
		}
	}
	return out
}

// Scenarios builds the cross product of survival rules, birth rules and seeds.
func Scenarios(survival, birth []spherelife.Rule, seeds []int64) []Scenario {
	out := make([]Scenario, 0, len(survival)*len(birth)*len(seeds))
	for _, s := range survival {
		for _, b := range birth {
			for _, seed := range seeds {
				out = append(out, Scenario{Survival: s, Birth: b, Seed: seed})
			}
		}
	}
	return out
}

// Run evaluates every scenario on its own world. Results keep the order of
// scenarios.
func Run(ctx context.Context, opts Options, scenarios []Scenario) ([]Result, error) {
	if opts.Log == nil {
		opts.Log = core.NoOpLogger{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	results := make([]Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sc := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runScenario(opts, sc)
			if err != nil {
				return fmt.Errorf("sweep %s: %w", sc, err)
			}
			results[i] = res
			opts.Log.Debugf("sweep %s: mean alive %.1f, paired ticks %d", sc, res.MeanAlive, res.PairedTicks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runScenario(opts Options, sc Scenario) (Result, error) {
	sphere, err := geodesic.New(opts.Radius, opts.Level)
	if err != nil {
		return Result{}, err
	}
	cfg := opts.Base
	cfg.Engine.Seed = sc.Seed
	cfg.Engine.Params.Survival.Min, cfg.Engine.Params.Survival.Max = sc.Survival.Min, sc.Survival.Max
	cfg.Engine.Params.Birth.Min, cfg.Engine.Params.Birth.Max = sc.Birth.Min, sc.Birth.Max
	w, err := world.New(sphere, cfg, nil)
	if err != nil {
		return Result{}, err
	}
	w.Reset(sc.Seed)

	res := Result{Scenario: sc, Series: make([]Sample, 0, opts.Steps)}
	alive := make([]float64, 0, opts.Steps)
	for i := 0; i < opts.Steps; i++ {
		w.Step()
		s := Sample{
			Tick:      w.Engine().TickCount(),
			Alive:     w.Engine().AliveCount(),
			Organisms: len(w.Tracker().Organisms()),
			Pairs:     len(w.Resolver().Pairs()),
		}
		res.Series = append(res.Series, s)
		alive = append(alive, float64(s.Alive))
		if s.Pairs > res.PeakPairs {
			res.PeakPairs = s.Pairs
		}
		if s.Pairs > 0 {
			res.PairedTicks++
		}
	}
	res.MeanAlive, res.StdAlive = meanStd(alive)
	return res, nil
}

// meanStd is stat.MeanStdDev with zeros for empty input and a zero spread
// for a single sample.
func meanStd(xs []float64) (float64, float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}

// Rank orders results by paired ticks, then by peak pairs, then by mean
// population.
func Rank(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.PairedTicks != b.PairedTicks {
			return a.PairedTicks > b.PairedTicks
		}
		if a.PeakPairs != b.PeakPairs {
			return a.PeakPairs > b.PeakPairs
		}
		return a.MeanAlive > b.MeanAlive
	})
}

// Summary aggregates one rule pair across its seeds.
type Summary struct {
	Survival   spherelife.Rule
	Birth      spherelife.Rule
	Runs       int
	MeanPaired float64
	StdPaired  float64
	MeanAlive  float64
}

// Summarize groups results by rule pair in first-seen order.
func Summarize(results []Result) []Summary {
	type key struct{ s, b spherelife.Rule }
	var order []key
	paired := map[key][]float64{}
	alive := map[key][]float64{}
	for _, r := range results {
		k := key{r.Scenario.Survival, r.Scenario.Birth}
		if _, ok := paired[k]; !ok {
			order = append(order, k)
		}
		paired[k] = append(paired[k], float64(r.PairedTicks))
		alive[k] = append(alive[k], r.MeanAlive)
	}
	out := make([]Summary, 0, len(order))
	for _, k := range order {
		s := Summary{Survival: k.s, Birth: k.b, Runs: len(paired[k])}
		s.MeanPaired, s.StdPaired = meanStd(paired[k])
		s.MeanAlive = stat.Mean(alive[k], nil)
		out = append(out, s)
	}
	return out
}
