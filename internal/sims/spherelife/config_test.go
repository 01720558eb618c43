package spherelife

import (
	"testing"
	"time"
)

func TestFromMapParsesRuleSurface(t *testing.T) {
	c := FromMap(map[string]string{
		"seed":                  "5",
		"pattern":               "ring",
		"density":               "0.5",
		"tick_speed":            "250ms",
		"survival_min":          "4",
		"survival_max":          "1",
		"survival_prob_enabled": "true",
		"survival_prob":         "0.75",
		"birth_min":             "oops",
		"age_death_enabled":     "1",
		"age_death_threshold":   "40",
		"sudden_death_prob":     "0.2",
	})
	if c.Seed != 5 || c.Params.Pattern != PatternRing || c.Params.Density != 0.5 {
		t.Fatalf("unexpected seeding config %+v", c)
	}
	if c.Params.TickSpeed != 250*time.Millisecond {
		t.Fatalf("expected 250ms tick speed, got %v", c.Params.TickSpeed)
	}
	if c.Params.Survival.Min != 4 || c.Params.Survival.Max != 1 {
		t.Fatalf("inverted survival range must be kept as given, got %+v", c.Params.Survival)
	}
	if !c.Params.Survival.ProbabilityEnabled || c.Params.Survival.Probability != 0.75 {
		t.Fatalf("unexpected survival gate %+v", c.Params.Survival)
	}
	if c.Params.Birth.Min != DefaultConfig().Params.Birth.Min {
		t.Fatalf("malformed birth_min should be ignored, got %d", c.Params.Birth.Min)
	}
	if !c.Params.Death.AgeEnabled || c.Params.Death.AgeThreshold != 40 || c.Params.Death.SuddenProbability != 0.2 {
		t.Fatalf("unexpected death rule %+v", c.Params.Death)
	}
}

func TestTickSpeedAcceptsSeconds(t *testing.T) {
	c := FromMap(map[string]string{"tick_speed": "0.5"})
	if c.Params.TickSpeed != 500*time.Millisecond {
		t.Fatalf("expected 500ms, got %v", c.Params.TickSpeed)
	}
}

func TestParameterSetters(t *testing.T) {
	e := New(triangle(t), DefaultConfig())
	if !e.SetIntParameter("birth_max", 4) || e.Birth().Max != 4 {
		t.Fatal("birth_max should be adjustable")
	}
	if !e.SetFloatParameter("survival_prob", 3) || e.Survival().Probability != 1 {
		t.Fatalf("survival_prob should clamp to 1, got %f", e.Survival().Probability)
	}
	if !e.SetBoolParameter("sudden_death_enabled", true) || !e.Death().SuddenEnabled {
		t.Fatal("sudden death should toggle")
	}
	if !e.SetFloatParameter("tick_speed", 0.25) || e.TickSpeed() != 250*time.Millisecond {
		t.Fatalf("tick speed should update, got %v", e.TickSpeed())
	}
	if e.SetIntParameter("nope", 1) || e.SetFloatParameter("nope", 1) || e.SetBoolParameter("nope", true) {
		t.Fatal("unknown keys must be rejected")
	}

	found := false
	for _, g := range e.Parameters().Groups {
		for _, p := range g.Params {
			if p.Key == "birth_max" && p.Value == "4" {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("parameter snapshot should reflect setter updates")
	}
}
