package spherelife

import (
	"slices"
	"testing"
	"time"
)

func TestBirthAboveRangeStaysDead(t *testing.T) {
	e := New(star(t), deterministic(2, 3, 2, 2))
	setAlive(e, 1, 2, 3, 4, 5, 6)

	e.Tick()

	if e.Alive(0) {
		t.Fatal("centre with 6 alive neighbors must not be born under birth range [2,2]")
	}
	for id := 1; id <= 6; id++ {
		if e.Alive(id) {
			t.Fatalf("rim node %d has no alive neighbors and must die", id)
		}
	}
}

func TestIsolatedCellDiesAndResets(t *testing.T) {
	e := New(star(t), deterministic(2, 3, 2, 2))
	setAlive(e, 3)
	e.cells[3].Age = 7
	e.cells[3].Stability = 4

	e.Tick()

	c := e.Cells()[3]
	if c.Alive {
		t.Fatal("isolated cell must die under survival [2,3]")
	}
	if c.Age != 0 || c.Stability != 0 {
		t.Fatalf("dead cell must reset age and stability, got age=%d stability=%d", c.Age, c.Stability)
	}
	if !c.PreviousAlive {
		t.Fatal("previous alive must record the pre-tick state")
	}
	if e.TickCount() != 1 {
		t.Fatalf("expected tick count 1, got %d", e.TickCount())
	}
}

func TestFourNeighborsNeverSurvive(t *testing.T) {
	e := New(star(t), deterministic(2, 3, 2, 2))
	setAlive(e, 0, 1, 2, 3, 4)

	e.Tick()

	if e.Alive(0) {
		t.Fatal("a cell with 4 alive neighbors must not survive under [2,3]")
	}
}

func TestAgeAndStabilityCounters(t *testing.T) {
	adj := star(t)
	e := New(adj, deterministic(1, 6, 2, 2))
	setAlive(e, 0, 1)

	// Centre survives (1 neighbor), node 1 survives (1 neighbor), rim nodes
	// touching only the centre have 1 alive neighbor and stay dead.
	e.Tick()
	if got := e.Cells()[0]; !got.Alive || got.Age != 1 || got.Stability != 1 {
		t.Fatalf("survivor should have age 1 stability 1, got %+v", got)
	}
	e.Tick()
	if got := e.Cells()[0]; got.Age != 2 || got.Stability != 2 {
		t.Fatalf("survivor should have age 2 stability 2, got %+v", got)
	}

	// A newborn starts at age 1 with stability 0.
	e2 := New(triangle(t), deterministic(9, 9, 2, 2))
	setAlive(e2, 0, 1)
	e2.Tick()
	born := e2.Cells()[2]
	if !born.Alive || born.Age != 1 || born.Stability != 0 {
		t.Fatalf("newborn should have age 1 stability 0, got %+v", born)
	}
}

func TestInvertedRangeNeverFires(t *testing.T) {
	e := New(triangle(t), deterministic(3, 2, 2, 1))
	setAlive(e, 0, 1, 2)
	e.Tick()
	if e.AliveCount() != 0 {
		t.Fatalf("inverted survival range should kill everything, %d alive", e.AliveCount())
	}
	setAlive(e, 0, 1)
	e.Tick()
	if e.Alive(2) {
		t.Fatal("inverted birth range must never give birth")
	}
}

func TestMatchesReferenceCountsOnSphere(t *testing.T) {
	adj := sphere(t, 2)
	e := New(adj, deterministic(2, 3, 2, 2))
	e.Reset(42)

	for step := 0; step < 10; step++ {
		before := slices.Clone(e.Cells())
		e.Tick()
		for id, c := range before {
			n := 0
			for _, nb := range adj.Neighbors(id) {
				if before[nb].Alive {
					n++
				}
			}
			want := (c.Alive && n >= 2 && n <= 3) || (!c.Alive && n == 2)
			if e.Alive(id) != want {
				t.Fatalf("step %d node %d: alive=%v with %d neighbors, want %v", step, id, e.Alive(id), n, want)
			}
		}
	}
}

func TestDeadCellsHaveZeroAge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Survival = Rule{Min: 1, Max: 4, ProbabilityEnabled: true, Probability: 0.9}
	cfg.Params.Birth = Rule{Min: 2, Max: 3, ProbabilityEnabled: true, Probability: 0.6}
	cfg.Params.Death = DeathRule{AgeEnabled: true, AgeThreshold: 3, AgeRate: 0.2, SuddenEnabled: true, SuddenProbability: 0.05}
	e := New(sphere(t, 3), cfg)
	e.Reset(9)

	for step := 0; step < 60; step++ {
		e.Tick()
		for id, c := range e.Cells() {
			if !c.Alive && (c.Age != 0 || c.Stability != 0) {
				t.Fatalf("step %d node %d dead with age=%d stability=%d", step, id, c.Age, c.Stability)
			}
			if c.Alive && c.Age < 1 {
				t.Fatalf("step %d node %d alive with age %d", step, id, c.Age)
			}
		}
	}
}

func TestTickDeterministicForSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Survival.ProbabilityEnabled = true
	cfg.Params.Survival.Probability = 0.8
	cfg.Params.Birth.ProbabilityEnabled = true
	cfg.Params.Birth.Probability = 0.7
	cfg.Params.Death.SuddenEnabled = true
	cfg.Params.Death.SuddenProbability = 0.02

	adj := sphere(t, 3)
	a := New(adj, cfg)
	b := New(adj, cfg)
	a.Reset(123)
	b.Reset(123)

	for step := 0; step < 40; step++ {
		a.Tick()
		b.Tick()
		if !slices.Equal(a.Cells(), b.Cells()) {
			t.Fatalf("engines diverged at step %d", step)
		}
	}

	c := New(adj, cfg)
	c.Reset(124)
	for step := 0; step < 40; step++ {
		c.Tick()
	}
	if slices.Equal(a.Cells(), c.Cells()) {
		t.Fatal("different seeds should produce different histories")
	}
}

func TestAgeDeathNeverFiresAtThreshold(t *testing.T) {
	if p := AgeDeathProbability(100, 100, 0.01); p != 0 {
		t.Fatalf("probability at threshold must be 0, got %f", p)
	}
	if p := AgeDeathProbability(99, 100, 0.01); p != 0 {
		t.Fatalf("probability below threshold must be 0, got %f", p)
	}
	if p := AgeDeathProbability(200, 100, 0.01); p <= 0.6 || p >= 0.7 {
		t.Fatalf("expected 1-e^-1 at 100 ticks past threshold, got %f", p)
	}

	cfg := deterministic(2, 2, 9, 9)
	cfg.Params.Death = DeathRule{AgeEnabled: true, AgeThreshold: 100, AgeRate: 0.01}
	e := New(triangle(t), cfg)
	for i := 0; i < 500; i++ {
		setAlive(e, 0, 1, 2)
		for id := range e.cells {
			e.cells[id].Age = 100
		}
		e.Tick()
		if e.AliveCount() != 3 {
			t.Fatalf("iteration %d: a cell died from age exactly at threshold", i)
		}
	}
}

func TestAgeDeathFiresPastThreshold(t *testing.T) {
	cfg := deterministic(2, 2, 9, 9)
	cfg.Params.Death = DeathRule{AgeEnabled: true, AgeThreshold: 10, AgeRate: 1000}
	e := New(triangle(t), cfg)
	setAlive(e, 0, 1, 2)
	e.cells[1].Age = 11

	e.Tick()

	if e.Alive(1) {
		t.Fatal("old cell should die with overwhelming age death rate")
	}
	if !e.Alive(0) || !e.Alive(2) {
		t.Fatal("young cells should survive")
	}
}

func TestSuddenDeathCertain(t *testing.T) {
	cfg := deterministic(2, 2, 9, 9)
	cfg.Params.Death = DeathRule{SuddenEnabled: true, SuddenProbability: 1}
	e := New(triangle(t), cfg)
	setAlive(e, 0, 1, 2)
	e.Tick()
	if e.AliveCount() != 0 {
		t.Fatalf("sudden death with probability 1 should kill every survivor, %d alive", e.AliveCount())
	}
}

func TestProbabilityGateZeroBlocksBirth(t *testing.T) {
	cfg := deterministic(2, 2, 2, 2)
	cfg.Params.Birth.ProbabilityEnabled = true
	cfg.Params.Birth.Probability = 0
	e := New(triangle(t), cfg)
	setAlive(e, 0, 1)
	e.Tick()
	if e.Alive(2) {
		t.Fatal("birth gate with probability 0 must block birth")
	}
}

func TestUpdateFiresAtMostOncePerCall(t *testing.T) {
	cfg := deterministic(2, 3, 2, 2)
	cfg.Params.TickSpeed = 100 * time.Millisecond
	e := New(triangle(t), cfg)

	if e.Update(50 * time.Millisecond) {
		t.Fatal("tick fired early")
	}
	if !e.Update(60 * time.Millisecond) {
		t.Fatal("tick should fire after the interval")
	}
	if !e.Update(5*time.Second) || e.TickCount() != 2 {
		t.Fatalf("long frame should fire exactly one tick, count=%d", e.TickCount())
	}
	if e.Update(0) {
		t.Fatal("surplus time must not carry over")
	}

	e.SetPaused(true)
	if e.Update(time.Second) || e.TickCount() != 2 {
		t.Fatal("paused engine must not tick")
	}
	e.SetPaused(false)
	e.SetTickSpeed(0)
	if !e.Update(0) {
		t.Fatal("zero tick speed should tick every update")
	}
}

func TestRuleAccessors(t *testing.T) {
	e := New(triangle(t), DefaultConfig())
	e.SetSurvival(Rule{Min: 5, Max: 1})
	e.SetBirth(Rule{Min: 0, Max: 6, ProbabilityEnabled: true, Probability: 0.25})
	e.SetDeath(DeathRule{AgeEnabled: true, AgeThreshold: 3})
	if e.Survival().Min != 5 || e.Survival().Max != 1 {
		t.Fatalf("survival rule must be stored without validation, got %+v", e.Survival())
	}
	if !e.Birth().ProbabilityEnabled || e.Birth().Probability != 0.25 {
		t.Fatalf("unexpected birth rule %+v", e.Birth())
	}
	if !e.Death().AgeEnabled || e.Death().AgeThreshold != 3 {
		t.Fatalf("unexpected death rule %+v", e.Death())
	}
}
