package geodesic

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"sphere-ca/internal/core"
)

func TestNodeCountsAndDegrees(t *testing.T) {
	for level := 0; level <= 3; level++ {
		s, err := New(2, level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		want := 10*int(math.Pow(4, float64(level))) + 2
		if s.NodeCount() != want {
			t.Fatalf("level %d: expected %d nodes, got %d", level, want, s.NodeCount())
		}
		pentagons := 0
		for id := 0; id < s.NodeCount(); id++ {
			switch len(s.Neighbors(id)) {
			case 5:
				pentagons++
			case 6:
			default:
				t.Fatalf("level %d node %d has %d neighbors", level, id, len(s.Neighbors(id)))
			}
			if d := r3.Norm(s.Position(id)); math.Abs(d-2) > 1e-9 {
				t.Fatalf("node %d lies at distance %f, expected 2", id, d)
			}
		}
		if pentagons != 12 {
			t.Fatalf("level %d: expected 12 pentagons, got %d", level, pentagons)
		}
	}
}

func TestTilingSatisfiesAdjacencyContract(t *testing.T) {
	s, err := New(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	adj, err := core.NewAdjacency(s)
	if err != nil {
		t.Fatalf("geodesic tiling rejected: %v", err)
	}
	if math.Abs(adj.Radius()-1) > 1e-9 {
		t.Fatalf("expected radius 1, got %f", adj.Radius())
	}
}

func TestRegenerateValidates(t *testing.T) {
	s, err := New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Regenerate(0, 1); !errors.Is(err, ErrRadius) {
		t.Fatalf("expected radius error, got %v", err)
	}
	if err := s.Regenerate(1, MaxLevel+1); !errors.Is(err, ErrLevel) {
		t.Fatalf("expected level error, got %v", err)
	}
	if s.NodeCount() != 42 {
		t.Fatalf("failed regeneration must keep the previous tiling, got %d nodes", s.NodeCount())
	}
	if err := s.Regenerate(3, 0); err != nil {
		t.Fatal(err)
	}
	if s.NodeCount() != 12 || s.Radius() != 3 {
		t.Fatalf("unexpected tiling after regenerate: %d nodes radius %f", s.NodeCount(), s.Radius())
	}
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Topologies()["geodesic"]
	if !ok {
		t.Fatal("geodesic topology not registered")
	}
	topo, err := factory(map[string]string{"subdivisions": "1", "radius": "bogus"})
	if err != nil {
		t.Fatal(err)
	}
	if topo.NodeCount() != 42 {
		t.Fatalf("expected 42 nodes, got %d", topo.NodeCount())
	}
}
