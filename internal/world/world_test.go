package world

import (
	"encoding/json"
	"errors"
	"slices"
	"testing"
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"sphere-ca/internal/core"
	"sphere-ca/internal/sims/spherelife"
	"sphere-ca/internal/topology/geodesic"
)

func newWorld(t *testing.T, level int, cfg Config) *World {
	t.Helper()
	topo, err := geodesic.New(1, level)
	if err != nil {
		t.Fatal(err)
	}
	w, err := New(topo, cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

// equatorConfig seeds the four equatorial vertices of a bare icosahedron,
// which form two antipodal dominoes that survive forever.
func equatorConfig() Config {
	cfg := DefaultConfig()
	cfg.Engine.Params.Survival = spherelife.Rule{Min: 1, Max: 6, Probability: 1}
	cfg.Engine.Params.Birth = spherelife.Rule{Min: 9, Max: 9, Probability: 1}
	cfg.Engine.Params.Death = spherelife.DeathRule{}
	cfg.Engine.Params.Pattern = spherelife.PatternRing
	cfg.Engine.Params.TickSpeed = 0
	cfg.Organisms = organismsEvery(1, 3, 2)
	cfg.Pairs.AngularTolerance = 0
	return cfg
}

func TestAntipodalDominoesPair(t *testing.T) {
	w := newWorld(t, 0, equatorConfig())
	w.Reset(1)

	if got := w.Engine().AliveCount(); got != 4 {
		t.Fatalf("expected 4 equatorial cells, got %d", got)
	}
	if n := len(w.Tracker().Organisms()); n != 2 {
		t.Fatalf("reset should run an initial pass with 2 organisms, got %d", n)
	}
	if len(w.Resolver().Pairs()) != 0 {
		t.Fatal("freshly seeded organisms are too young to pair")
	}

	for i := 0; i < 3; i++ {
		if !w.Update(time.Millisecond) {
			t.Fatalf("cycle %d: zero tick speed should tick every update", i)
		}
	}

	orgs := w.Tracker().Organisms()
	for _, o := range orgs {
		if !o.Qualified || o.Size != 2 || o.Age != 3 {
			t.Fatalf("unexpected organism %+v", o)
		}
	}
	got := w.Resolver().Pairs()
	if len(got) != 1 || got[0].A != 0 || got[0].B != 1 || got[0].Angle != 180 {
		t.Fatalf("expected the two dominoes to pair at 180 degrees, got %+v", got)
	}
	if r3.Norm(r3.Add(orgs[0].Centroid, orgs[1].Centroid)) != 0 {
		t.Fatal("domino centroids should be exact antipodes")
	}
}

func TestTrackerCadenceFollowsTicks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Params.TickSpeed = 0
	w := newWorld(t, 2, cfg)
	w.Reset(3)

	start := w.Tracker().Passes()
	for i := 0; i < 10; i++ {
		w.Update(0)
	}
	if got := w.Tracker().Passes() - start; got != 2 {
		t.Fatalf("expected passes at ticks 5 and 10, got %d", got)
	}

	w.Engine().SetPaused(true)
	before := w.Tracker().Passes()
	for i := 0; i < 20; i++ {
		if w.Update(time.Second) {
			t.Fatal("paused world must not tick")
		}
	}
	if w.Tracker().Passes() != before {
		t.Fatal("no passes should run while ticks are frozen")
	}

	for i := 0; i < 5; i++ {
		w.Step()
	}
	if w.Tracker().LastTick() != 15 {
		t.Fatalf("manual steps should still drive the tracker, last tick %d", w.Tracker().LastTick())
	}
}

func TestPairsAreExclusiveAndQualified(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Params.TickSpeed = 0
	cfg.Organisms = organismsEvery(1, 0, 1)
	cfg.Pairs.AngularTolerance = 40
	w := newWorld(t, 3, cfg)
	w.Reset(11)

	for i := 0; i < 25; i++ {
		w.Update(0)
		orgs := w.Tracker().Organisms()
		seen := map[int]bool{}
		for _, p := range w.Resolver().Pairs() {
			if p.A >= p.B {
				t.Fatalf("pair ids out of order: %+v", p)
			}
			for _, id := range []int{p.A, p.B} {
				if seen[id] {
					t.Fatalf("tick %d: organism %d in two pairs", w.Engine().TickCount(), id)
				}
				seen[id] = true
				if !orgs[id].Qualified {
					t.Fatalf("unqualified organism %d paired", id)
				}
			}
		}
	}
}

func TestRegenerateResetsEverything(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine.Params.TickSpeed = 0
	w := newWorld(t, 1, cfg)
	w.Reset(5)
	w.SetIntParameter("birth_max", 3)
	w.SetIntParameter("min_size", 7)
	w.SetFloatParameter("angular_tolerance", 22)
	for i := 0; i < 7; i++ {
		w.Update(0)
	}
	gen := w.Generation()

	if err := w.Regenerate(2, 2); err != nil {
		t.Fatal(err)
	}
	if w.Adjacency().NodeCount() != 162 {
		t.Fatalf("expected 162 nodes, got %d", w.Adjacency().NodeCount())
	}
	if w.Generation() == gen {
		t.Fatal("regeneration must issue a new generation id")
	}
	if w.Engine().TickCount() != 0 || w.Tracker().LastTick() != 0 {
		t.Fatal("regeneration must restart ticks and detection")
	}
	if w.Engine().Birth().Max != 3 || w.Tracker().Config().MinSize != 7 || w.Resolver().Tolerance() != 22 {
		t.Fatal("rule settings should survive regeneration")
	}

	if err := w.Regenerate(1, geodesic.MaxLevel+1); !errors.Is(err, geodesic.ErrLevel) {
		t.Fatalf("expected level error, got %v", err)
	}
	if w.Adjacency().NodeCount() != 162 {
		t.Fatal("failed regeneration must leave the world untouched")
	}
}

type brokenTopology struct{ *geodesic.Sphere }

func (b brokenTopology) Neighbors(id int) []int {
	if id == 0 {
		return []int{1}
	}
	return b.Sphere.Neighbors(id)
}

func TestNewRejectsBrokenTopology(t *testing.T) {
	s, err := geodesic.New(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(brokenTopology{s}, DefaultConfig(), nil); !errors.Is(err, core.ErrDegree) {
		t.Fatalf("expected degree error, got %v", err)
	}
}

func TestSnapshotMirrorsState(t *testing.T) {
	w := newWorld(t, 0, equatorConfig())
	w.Reset(1)
	for i := 0; i < 3; i++ {
		w.Update(0)
	}
	snap := w.Snapshot()
	if !slices.Equal(snap.Alive, []int{8, 9, 10, 11}) {
		t.Fatalf("unexpected alive ids %v", snap.Alive)
	}
	if snap.Tick != 3 || snap.Nodes != 12 || len(snap.Organisms) != 2 || len(snap.Pairs) != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["generation"] != w.Generation() {
		t.Fatalf("generation missing from payload: %s", data)
	}
}

func TestParameterRouting(t *testing.T) {
	w := newWorld(t, 1, DefaultConfig())
	if !w.SetIntParameter("min_age", 4) || w.Tracker().Config().MinAge != 4 {
		t.Fatal("min_age should route to the tracker")
	}
	if !w.SetIntParameter("survival_min", 1) || w.Engine().Survival().Min != 1 {
		t.Fatal("survival_min should route to the engine")
	}
	if !w.SetBoolParameter("paused", true) || !w.Engine().Paused() {
		t.Fatal("paused should route to the engine")
	}
	if w.SetIntParameter("bogus", 1) {
		t.Fatal("unknown key must be rejected")
	}
	keys := map[string]bool{}
	for _, c := range w.ParameterControls() {
		keys[c.Key] = true
	}
	for _, k := range []string{"min_age", "angular_tolerance", "birth_prob", "age_death_enabled"} {
		if !keys[k] {
			t.Fatalf("control %q missing", k)
		}
	}
	groups := map[string]bool{}
	for _, g := range w.Parameters().Groups {
		groups[g.Name] = true
	}
	if !groups["Organisms"] || !groups["Pairing"] || !groups["Survival"] {
		t.Fatalf("missing parameter groups: %v", groups)
	}
}
