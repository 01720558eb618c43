package spherelife

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"sphere-ca/internal/core"
	"sphere-ca/internal/topology/geodesic"
)

type graph struct {
	pos []r3.Vec
	nbs [][]int
}

func (g graph) NodeCount() int         { return len(g.pos) }
func (g graph) Position(id int) r3.Vec { return g.pos[id] }
func (g graph) Neighbors(id int) []int { return g.nbs[id] }

// star is a centre node 0 joined to six rim nodes 1..6 that only touch the centre.
func star(t *testing.T) *core.Adjacency {
	t.Helper()
	g := graph{pos: make([]r3.Vec, 7), nbs: make([][]int, 7)}
	g.pos[0] = r3.Vec{Z: 1}
	for i := 1; i <= 6; i++ {
		g.pos[i] = r3.Vec{X: float64(i), Z: 1}
		g.nbs[0] = append(g.nbs[0], i)
		g.nbs[i] = []int{0}
	}
	adj, err := core.NewAdjacencyDegree(g, 1, 6)
	if err != nil {
		t.Fatalf("star topology: %v", err)
	}
	return adj
}

// triangle is three mutually adjacent nodes.
func triangle(t *testing.T) *core.Adjacency {
	t.Helper()
	g := graph{
		pos: []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}},
		nbs: [][]int{{1, 2}, {0, 2}, {0, 1}},
	}
	adj, err := core.NewAdjacencyDegree(g, 2, 2)
	if err != nil {
		t.Fatalf("triangle topology: %v", err)
	}
	return adj
}

func sphere(t *testing.T, level int) *core.Adjacency {
	t.Helper()
	s, err := geodesic.New(1, level)
	if err != nil {
		t.Fatal(err)
	}
	adj, err := core.NewAdjacency(s)
	if err != nil {
		t.Fatal(err)
	}
	return adj
}

// deterministic returns a config with every probability gate and death mode off.
func deterministic(survMin, survMax, birthMin, birthMax int) Config {
	cfg := DefaultConfig()
	cfg.Params.Survival = Rule{Min: survMin, Max: survMax, Probability: 1}
	cfg.Params.Birth = Rule{Min: birthMin, Max: birthMax, Probability: 1}
	cfg.Params.Death = DeathRule{}
	return cfg
}

func setAlive(e *Engine, ids ...int) {
	for _, id := range ids {
		e.cells[id].Alive = true
	}
}
