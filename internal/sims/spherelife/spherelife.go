// Package spherelife implements a probabilistic Life-like automaton on an
// irregular graph of five- and six-neighbor cells.
package spherelife

import (
	"math"
	"math/rand/v2"
	"time"

	"sphere-ca/internal/core"
	pcore "sphere-ca/pkg/core"
)

// Engine owns the per-node cell state and advances it one tick at a time.
type Engine struct {
	cfg Config
	adj *core.Adjacency

	cells []core.CellState
	next  []bool

	tickCount int
	paused    bool
	clock     *core.Accumulator

	rng *rand.Rand
}

// New returns an engine over the given adjacency. All cells start dead; call
// Initialize or Reset to seed them.
func New(adj *core.Adjacency, cfg Config) *Engine {
	n := adj.NodeCount()
	return &Engine{
		cfg:   cfg,
		adj:   adj,
		cells: make([]core.CellState, n),
		next:  make([]bool, n),
		clock: core.NewAccumulator(cfg.Params.TickSpeed),
		rng:   pcore.NewRNG(cfg.Seed).Source(),
	}
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return "spherelife" }

// Adjacency exposes the topology the engine runs on.
func (e *Engine) Adjacency() *core.Adjacency { return e.adj }

// Cells exposes the current cell states. Callers must treat it as read-only.
func (e *Engine) Cells() []core.CellState { return e.cells }

// TickCount returns the number of ticks since the last Initialize.
func (e *Engine) TickCount() int { return e.tickCount }

// Alive reports whether node id is alive.
func (e *Engine) Alive(id int) bool { return e.cells[id].Alive }

// AliveCount returns the number of live cells.
func (e *Engine) AliveCount() int {
	total := 0
	for i := range e.cells {
		if e.cells[i].Alive {
			total++
		}
	}
	return total
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() Config { return e.cfg }

// Reset re-seeds the random source and re-initializes with the configured
// pattern and density. A zero seed keeps the configured seed.
func (e *Engine) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = e.cfg.Seed
	}
	e.rng = pcore.NewRNG(effective).Source()
	e.Initialize(e.cfg.Params.Pattern, e.cfg.Params.Density)
}

// Step advances the automaton by one tick regardless of pause state.
func (e *Engine) Step() { e.Tick() }

// Update accumulates elapsed time and fires at most one tick when the tick
// interval has passed. It reports whether a tick ran.
func (e *Engine) Update(elapsed time.Duration) bool {
	if e.paused {
		return false
	}
	if !e.clock.Add(elapsed) {
		return false
	}
	e.Tick()
	return true
}

// Tick computes the next generation from the current one. Every cell reads
// the pre-tick alive values; results are committed only after all cells have
// been evaluated.
func (e *Engine) Tick() {
	for id := range e.cells {
		n := e.aliveNeighbors(id)
		if e.cells[id].Alive {
			e.next[id] = e.survives(e.cells[id].Age, n)
		} else {
			e.next[id] = e.admits(e.cfg.Params.Birth, n)
		}
	}

	for id := range e.cells {
		c := &e.cells[id]
		c.PreviousAlive = c.Alive
		c.Alive = e.next[id]
		if !c.Alive {
			c.Age = 0
			c.Stability = 0
			continue
		}
		c.Age++
		if c.PreviousAlive {
			c.Stability++
		} else {
			c.Stability = 0
		}
	}
	e.tickCount++
}

func (e *Engine) aliveNeighbors(id int) int {
	n := 0
	for _, nb := range e.adj.Neighbors(id) {
		if e.cells[nb].Alive {
			n++
		}
	}
	return n
}

func (e *Engine) admits(r Rule, n int) bool {
	if !r.InRange(n) {
		return false
	}
	if r.ProbabilityEnabled {
		return pcore.Chance(e.rng, r.Probability)
	}
	return true
}

func (e *Engine) survives(age, n int) bool {
	if !e.admits(e.cfg.Params.Survival, n) {
		return false
	}
	d := e.cfg.Params.Death
	if d.SuddenEnabled && pcore.Chance(e.rng, d.SuddenProbability) {
		return false
	}
	if d.AgeEnabled && age >= d.AgeThreshold {
		if pcore.Chance(e.rng, AgeDeathProbability(age, d.AgeThreshold, d.AgeRate)) {
			return false
		}
	}
	return true
}

// AgeDeathProbability returns 1 - exp(-rate*(age-threshold)) for ages at or
// past the threshold and 0 otherwise.
func AgeDeathProbability(age, threshold int, rate float64) float64 {
	if age < threshold {
		return 0
	}
	return 1 - math.Exp(-rate*float64(age-threshold))
}

// SetPaused suspends or resumes time-driven ticking.
func (e *Engine) SetPaused(paused bool) { e.paused = paused }

// Paused reports whether time-driven ticking is suspended.
func (e *Engine) Paused() bool { return e.paused }

// SetTickSpeed sets the interval between time-driven ticks.
func (e *Engine) SetTickSpeed(d time.Duration) {
	if d < 0 {
		d = 0
	}
	e.cfg.Params.TickSpeed = d
	e.clock.SetStep(d)
}

// TickSpeed returns the interval between time-driven ticks.
func (e *Engine) TickSpeed() time.Duration { return e.cfg.Params.TickSpeed }

// Survival returns the survival rule.
func (e *Engine) Survival() Rule { return e.cfg.Params.Survival }

// SetSurvival replaces the survival rule without validation.
func (e *Engine) SetSurvival(r Rule) { e.cfg.Params.Survival = r }

// Birth returns the birth rule.
func (e *Engine) Birth() Rule { return e.cfg.Params.Birth }

// SetBirth replaces the birth rule without validation.
func (e *Engine) SetBirth(r Rule) { e.cfg.Params.Birth = r }

// Death returns the death rule.
func (e *Engine) Death() DeathRule { return e.cfg.Params.Death }

// SetDeath replaces the death rule without validation.
func (e *Engine) SetDeath(d DeathRule) { e.cfg.Params.Death = d }
