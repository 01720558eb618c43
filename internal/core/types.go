package core

import "gonum.org/v1/gonum/spatial/r3"

// Topology supplies the fixed node graph a simulation runs on.
type Topology interface {
	NodeCount() int
	Position(id int) r3.Vec
	Neighbors(id int) []int
}

// Regenerator is a Topology that can rebuild itself at a new radius and
// subdivision level. Every node id handed out before a call to Regenerate is
// invalid afterwards.
type Regenerator interface {
	Topology
	Regenerate(radius float64, level int) error
}

// CellState is the per-node automaton state.
type CellState struct {
	Alive         bool
	PreviousAlive bool
	// Age counts consecutive ticks alive. Always 0 while dead.
	Age int
	// Stability counts consecutive ticks without a state flip.
	Stability int
}

// Factory constructs a topology provider using an optional configuration map.
type Factory func(cfg map[string]string) (Regenerator, error)

var topologies = map[string]Factory{}

// Register adds a topology factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	topologies[name] = f
}

// Topologies exposes the registry of available topology factories.
func Topologies() map[string]Factory {
	return topologies
}
