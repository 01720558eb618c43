// Package world owns one simulation run: the topology, the automaton engine,
// the organism tracker and the pair resolver, advanced together in a fixed
// order.
package world

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sphere-ca/internal/core"
	"sphere-ca/internal/organisms"
	"sphere-ca/internal/pairs"
	"sphere-ca/internal/sims/spherelife"
)

// Config bundles the per-component configurations.
type Config struct {
	Engine    spherelife.Config
	Organisms organisms.Config
	Pairs     pairs.Config
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Engine:    spherelife.DefaultConfig(),
		Organisms: organisms.DefaultConfig(),
		Pairs:     pairs.DefaultConfig(),
	}
}

// FromMap populates every component config from one flat string map.
func FromMap(cfg map[string]string) Config {
	return Config{
		Engine:    spherelife.FromMap(cfg),
		Organisms: organisms.FromMap(cfg),
		Pairs:     pairs.FromMap(cfg),
	}
}

// World is the single writer of all simulation state.
type World struct {
	topo core.Regenerator
	log  core.Logger

	adj      *core.Adjacency
	engine   *spherelife.Engine
	tracker  *organisms.Tracker
	resolver *pairs.Resolver

	generation uuid.UUID
}

// New validates the topology and builds the components. Cells start dead
// until Reset or Initialize is called.
func New(topo core.Regenerator, cfg Config, log core.Logger) (*World, error) {
	if log == nil {
		log = core.NoOpLogger{}
	}
	w := &World{topo: topo, log: log}
	if err := w.build(cfg); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *World) build(cfg Config) error {
	adj, err := core.NewAdjacency(w.topo)
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}
	w.adj = adj
	w.engine = spherelife.New(adj, cfg.Engine)
	w.tracker = organisms.New(adj, w.engine, cfg.Organisms, w.log)
	w.resolver = pairs.NewResolver(cfg.Pairs, w.log)
	w.generation = uuid.New()
	return nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return w.engine.Name() }

// Engine exposes the automaton engine.
func (w *World) Engine() *spherelife.Engine { return w.engine }

// Tracker exposes the organism tracker.
func (w *World) Tracker() *organisms.Tracker { return w.tracker }

// Resolver exposes the pair resolver.
func (w *World) Resolver() *pairs.Resolver { return w.resolver }

// Adjacency exposes the validated topology.
func (w *World) Adjacency() *core.Adjacency { return w.adj }

// Generation identifies the current topology. It changes on every
// Regenerate, signalling that node ids were invalidated.
func (w *World) Generation() string { return w.generation.String() }

// Config returns the live configuration of every component.
func (w *World) Config() Config {
	return Config{
		Engine:    w.engine.Config(),
		Organisms: w.tracker.Config(),
		Pairs:     pairs.Config{AngularTolerance: w.resolver.Tolerance()},
	}
}

// Update runs one cycle: a time-gated engine tick, then a throttled organism
// pass, then pairing if the pass ran. It reports whether the engine ticked.
func (w *World) Update(dt time.Duration) bool {
	ticked := w.engine.Update(dt)
	w.analyze()
	return ticked
}

// Step forces one engine tick followed by the analysis passes.
func (w *World) Step() {
	w.engine.Tick()
	w.analyze()
}

func (w *World) analyze() {
	if w.tracker.Update() {
		w.resolver.Resolve(w.tracker.Organisms())
	}
}

// Reset re-seeds the engine with its configured pattern and clears derived
// results. A zero seed keeps the configured seed.
func (w *World) Reset(seed int64) {
	w.engine.Reset(seed)
	w.tracker.Reset()
	w.resolver.Reset()
	w.analyze()
}

// Initialize seeds the engine with the given pattern and clears derived
// results.
func (w *World) Initialize(p spherelife.Pattern, density float64) {
	w.engine.Initialize(p, density)
	w.tracker.Reset()
	w.resolver.Reset()
	w.analyze()
}

// Regenerate rebuilds the topology and every component on top of it. Rule
// and threshold settings carry over; cell state does not.
func (w *World) Regenerate(radius float64, level int) error {
	cfg := w.Config()
	paused := w.engine.Paused()
	if err := w.topo.Regenerate(radius, level); err != nil {
		return err
	}
	if err := w.build(cfg); err != nil {
		return err
	}
	w.engine.SetPaused(paused)
	w.Reset(0)
	w.log.Infof("world: regenerated %d nodes (radius %.3g, level %d) generation %s",
		w.adj.NodeCount(), radius, level, w.generation)
	return nil
}
