package spherelife

import (
	"math"
	"testing"
)

func TestRandomDensityExtremes(t *testing.T) {
	e := New(sphere(t, 2), DefaultConfig())
	e.Initialize(PatternRandom, 0)
	if e.AliveCount() != 0 {
		t.Fatalf("density 0 should seed nothing, got %d", e.AliveCount())
	}
	e.Initialize(PatternRandom, 1)
	if e.AliveCount() != len(e.Cells()) {
		t.Fatalf("density 1 should seed everything, got %d/%d", e.AliveCount(), len(e.Cells()))
	}
}

func TestInitializeClearsState(t *testing.T) {
	e := New(sphere(t, 2), DefaultConfig())
	e.Initialize(PatternRandom, 0.5)
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	e.Initialize(PatternRandom, 0)
	if e.TickCount() != 0 {
		t.Fatalf("initialize must reset tick count, got %d", e.TickCount())
	}
	for id, c := range e.Cells() {
		if c.Alive || c.Age != 0 || c.Stability != 0 || c.PreviousAlive {
			t.Fatalf("node %d not cleared: %+v", id, c)
		}
	}
}

func TestClusterSeedsNeighborhood(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.ClusterSeeds = 1
	adj := sphere(t, 3)
	e := New(adj, cfg)
	e.Initialize(PatternCluster, 0)

	alive := e.AliveCount()
	if alive != 6 && alive != 7 {
		t.Fatalf("one cluster should light a seed and its 5 or 6 neighbors, got %d", alive)
	}
	seed := -1
	for id := range e.Cells() {
		if !e.Alive(id) {
			continue
		}
		all := true
		for _, nb := range adj.Neighbors(id) {
			if !e.Alive(nb) {
				all = false
				break
			}
		}
		if all {
			seed = id
		}
	}
	if seed < 0 {
		t.Fatal("no live node has its whole neighborhood alive")
	}
	if alive != len(adj.Neighbors(seed))+1 {
		t.Fatalf("cluster around %d has %d cells, expected %d", seed, alive, len(adj.Neighbors(seed))+1)
	}
}

func TestRingSeedsEquatorialBand(t *testing.T) {
	adj := sphere(t, 3)
	e := New(adj, DefaultConfig())
	e.Initialize(PatternRing, 0)

	band := 0.1 * adj.Radius()
	if e.AliveCount() == 0 {
		t.Fatal("ring should seed at least one cell")
	}
	for id := range e.Cells() {
		inBand := math.Abs(adj.Position(id).Y) <= band
		if e.Alive(id) != inBand {
			t.Fatalf("node %d alive=%v but in band=%v", id, e.Alive(id), inBand)
		}
	}
}

func TestUnknownPatternFallsBackToRandom(t *testing.T) {
	e := New(sphere(t, 2), DefaultConfig())
	e.Initialize(Pattern("spiral"), 1)
	if e.AliveCount() != len(e.Cells()) {
		t.Fatal("unknown pattern should seed randomly with the given density")
	}
}
