package spherelife

import (
	"strconv"
	"time"
)

// Pattern names an initial seeding strategy.
type Pattern string

const (
	PatternRandom  Pattern = "random"
	PatternCluster Pattern = "cluster"
	PatternRing    Pattern = "ring"
)

// ParsePattern resolves a pattern name.
func ParsePattern(s string) (Pattern, bool) {
	switch p := Pattern(s); p {
	case PatternRandom, PatternCluster, PatternRing:
		return p, true
	}
	return "", false
}

// Rule decides an outcome from an alive-neighbor count. A range with
// Min > Max never admits anything.
type Rule struct {
	Min, Max int

	ProbabilityEnabled bool
	Probability        float64
}

// InRange reports whether n lies in [Min, Max].
func (r Rule) InRange(n int) bool { return n >= r.Min && n <= r.Max }

// DeathRule configures the two stochastic death modes applied to surviving cells.
type DeathRule struct {
	AgeEnabled   bool
	AgeRate      float64
	AgeThreshold int

	SuddenEnabled     bool
	SuddenProbability float64
}

// Params holds the rule surface and seeding policy.
type Params struct {
	Survival Rule
	Birth    Rule
	Death    DeathRule

	TickSpeed time.Duration

	Pattern      Pattern
	Density      float64
	ClusterSeeds int
	// RingBand is the half-width of the ring pattern as a fraction of the
	// sphere radius.
	RingBand float64
}

// Config controls the engine.
type Config struct {
	Seed   int64
	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 1337,
		Params: Params{
			Survival: Rule{Min: 2, Max: 3, Probability: 1},
			Birth:    Rule{Min: 2, Max: 2, Probability: 1},
			Death: DeathRule{
				AgeRate:           0.01,
				AgeThreshold:      100,
				SuddenProbability: 0.001,
			},
			TickSpeed:    100 * time.Millisecond,
			Pattern:      PatternRandom,
			Density:      0.3,
			ClusterSeeds: 5,
			RingBand:     0.1,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed values are ignored. Rule ranges are taken as given, even when
// min exceeds max.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	p := &c.Params
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if parsed, ok := ParsePattern(v); ok {
			p.Pattern = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.Density = parsed
		}
	}
	if v, ok := cfg["tick_speed"]; ok {
		if parsed, ok := parseTickSpeed(v); ok {
			p.TickSpeed = parsed
		}
	}
	if v, ok := cfg["cluster_seeds"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			p.ClusterSeeds = parsed
		}
	}
	if v, ok := cfg["ring_band"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			p.RingBand = parsed
		}
	}

	readRule(cfg, "survival", &p.Survival)
	readRule(cfg, "birth", &p.Birth)

	if v, ok := cfg["age_death_enabled"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			p.Death.AgeEnabled = parsed
		}
	}
	if v, ok := cfg["age_death_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.Death.AgeRate = parsed
		}
	}
	if v, ok := cfg["age_death_threshold"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			p.Death.AgeThreshold = parsed
		}
	}
	if v, ok := cfg["sudden_death_enabled"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			p.Death.SuddenEnabled = parsed
		}
	}
	if v, ok := cfg["sudden_death_prob"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			p.Death.SuddenProbability = parsed
		}
	}
	return c
}

func readRule(cfg map[string]string, prefix string, r *Rule) {
	if v, ok := cfg[prefix+"_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			r.Min = parsed
		}
	}
	if v, ok := cfg[prefix+"_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			r.Max = parsed
		}
	}
	if v, ok := cfg[prefix+"_prob_enabled"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			r.ProbabilityEnabled = parsed
		}
	}
	if v, ok := cfg[prefix+"_prob"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			r.Probability = parsed
		}
	}
}

// parseTickSpeed accepts either a Go duration ("250ms") or seconds ("0.25").
func parseTickSpeed(v string) (time.Duration, bool) {
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		return d, true
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second)), true
	}
	return 0, false
}
