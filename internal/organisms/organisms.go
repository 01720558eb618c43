// Package organisms partitions the live cells of a graph automaton into
// maximal connected components.
package organisms

import (
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"sphere-ca/internal/core"
)

// Organism is one connected component of live cells. Ids index the result of
// a single pass and are not stable across passes.
type Organism struct {
	ID      int
	Members []int
	Size    int
	// Age is the minimum age over the members.
	Age int
	// Centroid is the mean member position, not projected onto the sphere.
	Centroid  r3.Vec
	Qualified bool
}

// CellSource is the engine view the tracker reads from.
type CellSource interface {
	Cells() []core.CellState
	TickCount() int
}

// Config controls detection cadence and qualification thresholds.
type Config struct {
	UpdateFrequency int
	MinAge          int
	MinSize         int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{UpdateFrequency: 5, MinAge: 10, MinSize: 5}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["update_frequency"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.UpdateFrequency = parsed
		}
	}
	if v, ok := cfg["min_age"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MinAge = parsed
		}
	}
	if v, ok := cfg["min_size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.MinSize = parsed
		}
	}
	return c
}

// Tracker rebuilds the organism list from a snapshot of the live cells once
// every UpdateFrequency engine ticks.
type Tracker struct {
	cfg Config
	adj *core.Adjacency
	src CellSource
	log core.Logger

	organisms []Organism
	visited   []bool
	stack     []int

	lastTick int
	passes   int
}

// New returns a tracker reading cells from src over adj.
func New(adj *core.Adjacency, src CellSource, cfg Config, log core.Logger) *Tracker {
	if log == nil {
		log = core.NoOpLogger{}
	}
	return &Tracker{
		cfg:      cfg,
		adj:      adj,
		src:      src,
		log:      log,
		visited:  make([]bool, adj.NodeCount()),
		lastTick: -1,
	}
}

// Organisms returns the result of the latest pass.
func (t *Tracker) Organisms() []Organism { return t.organisms }

// Passes returns the number of detection passes run since the last Reset.
func (t *Tracker) Passes() int { return t.passes }

// LastTick returns the engine tick observed by the latest pass, or -1.
func (t *Tracker) LastTick() int { return t.lastTick }

// Config returns the current configuration.
func (t *Tracker) Config() Config { return t.cfg }

// SetMinAge sets the qualification age threshold.
func (t *Tracker) SetMinAge(n int) { t.cfg.MinAge = n }

// SetMinSize sets the qualification size threshold.
func (t *Tracker) SetMinSize(n int) { t.cfg.MinSize = n }

// SetUpdateFrequency sets the number of ticks between passes. Values below 1
// are treated as 1.
func (t *Tracker) SetUpdateFrequency(n int) { t.cfg.UpdateFrequency = n }

// Reset drops the current result and the cadence state.
func (t *Tracker) Reset() {
	t.organisms = nil
	t.lastTick = -1
	t.passes = 0
}

// Update runs a detection pass when the engine tick count has reached a
// multiple of the update frequency that has not been detected yet. It
// reports whether a pass ran.
func (t *Tracker) Update() bool {
	tick := t.src.TickCount()
	freq := t.cfg.UpdateFrequency
	if freq < 1 {
		freq = 1
	}
	if tick == t.lastTick || tick%freq != 0 {
		return false
	}
	t.Detect()
	return true
}

// Detect partitions the current live cells into organisms. Components are
// discovered by scanning node ids in ascending order, so ids follow the
// lowest member of each component.
func (t *Tracker) Detect() []Organism {
	cells := t.src.Cells()
	clear(t.visited)
	orgs := make([]Organism, 0, len(t.organisms))

	for start := range cells {
		if t.visited[start] || !cells[start].Alive {
			continue
		}
		org := Organism{ID: len(orgs), Age: cells[start].Age}
		var sum r3.Vec

		t.visited[start] = true
		t.stack = append(t.stack[:0], start)
		for len(t.stack) > 0 {
			id := t.stack[len(t.stack)-1]
			t.stack = t.stack[:len(t.stack)-1]

			org.Members = append(org.Members, id)
			sum = r3.Add(sum, t.adj.Position(id))
			if cells[id].Age < org.Age {
				org.Age = cells[id].Age
			}
			for _, nb := range t.adj.Neighbors(id) {
				if t.visited[nb] || !cells[nb].Alive {
					continue
				}
				t.visited[nb] = true
				t.stack = append(t.stack, nb)
			}
		}

		org.Size = len(org.Members)
		org.Centroid = r3.Scale(1/float64(org.Size), sum)
		org.Qualified = org.Age >= t.cfg.MinAge && org.Size >= t.cfg.MinSize
		orgs = append(orgs, org)
	}

	t.organisms = orgs
	t.lastTick = t.src.TickCount()
	t.passes++
	t.log.Debugf("organisms: tick %d found %d (%d qualified)", t.lastTick, len(orgs), countQualified(orgs))
	return orgs
}

// Qualified returns the organisms that meet both thresholds.
func Qualified(orgs []Organism) []Organism {
	out := make([]Organism, 0, len(orgs))
	for _, o := range orgs {
		if o.Qualified {
			out = append(out, o)
		}
	}
	return out
}

func countQualified(orgs []Organism) int {
	n := 0
	for _, o := range orgs {
		if o.Qualified {
			n++
		}
	}
	return n
}
