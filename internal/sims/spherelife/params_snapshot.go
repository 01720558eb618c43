package spherelife

import (
	"strconv"
	"time"

	"sphere-ca/internal/core"
)

// Parameters reports the rule surface grouped for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	p := e.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Timing",
			Params: []core.Parameter{
				floatParam("tick_speed", "Tick speed (s)", p.TickSpeed.Seconds()),
				boolParam("paused", "Paused", e.paused),
				intParam("tick", "Tick", e.tickCount),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				stringParam("pattern", "Pattern", string(p.Pattern)),
				floatParam("density", "Density", p.Density),
				intParam("cluster_seeds", "Cluster seeds", p.ClusterSeeds),
				floatParam("ring_band", "Ring band", p.RingBand),
				int64Param("seed", "Seed", e.cfg.Seed),
			},
		},
		{
			Name:   "Survival",
			Params: ruleParams("survival", "Survival", p.Survival),
		},
		{
			Name:   "Birth",
			Params: ruleParams("birth", "Birth", p.Birth),
		},
		{
			Name: "Death",
			Params: []core.Parameter{
				boolParam("age_death_enabled", "Age death", p.Death.AgeEnabled),
				intParam("age_death_threshold", "Age death threshold", p.Death.AgeThreshold),
				floatParam("age_death_rate", "Age death rate", p.Death.AgeRate),
				boolParam("sudden_death_enabled", "Sudden death", p.Death.SuddenEnabled),
				floatParam("sudden_death_prob", "Sudden death chance", p.Death.SuddenProbability),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable rule parameters.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "paused", Label: "Paused", Type: core.ParamTypeBool},
		{Key: "tick_speed", Label: "Tick speed", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 5, HasMax: true},
		{Key: "survival_min", Label: "Survive min", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: core.MaxDegree, HasMax: true},
		{Key: "survival_max", Label: "Survive max", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: core.MaxDegree, HasMax: true},
		{Key: "survival_prob_enabled", Label: "Survive gate", Type: core.ParamTypeBool},
		{Key: "survival_prob", Label: "Survive chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "birth_min", Label: "Birth min", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: core.MaxDegree, HasMax: true},
		{Key: "birth_max", Label: "Birth max", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: core.MaxDegree, HasMax: true},
		{Key: "birth_prob_enabled", Label: "Birth gate", Type: core.ParamTypeBool},
		{Key: "birth_prob", Label: "Birth chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "age_death_enabled", Label: "Age death", Type: core.ParamTypeBool},
		{Key: "age_death_threshold", Label: "Age threshold", Type: core.ParamTypeInt, Step: 10, Min: 0, HasMin: true},
		{Key: "age_death_rate", Label: "Age rate", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "sudden_death_enabled", Label: "Sudden death", Type: core.ParamTypeBool},
		{Key: "sudden_death_prob", Label: "Sudden chance", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, HasMin: true, Max: 1, HasMax: true},
	}
}

// SetIntParameter updates an integer rule parameter by key.
func (e *Engine) SetIntParameter(key string, value int) bool {
	p := &e.cfg.Params
	switch key {
	case "survival_min":
		p.Survival.Min = value
	case "survival_max":
		p.Survival.Max = value
	case "birth_min":
		p.Birth.Min = value
	case "birth_max":
		p.Birth.Max = value
	case "age_death_threshold":
		p.Death.AgeThreshold = value
	case "cluster_seeds":
		if value < 0 {
			value = 0
		}
		p.ClusterSeeds = value
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a floating point rule parameter by key.
// Probabilities are clamped to [0, 1].
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	p := &e.cfg.Params
	switch key {
	case "survival_prob":
		p.Survival.Probability = clamp01(value)
	case "birth_prob":
		p.Birth.Probability = clamp01(value)
	case "sudden_death_prob":
		p.Death.SuddenProbability = clamp01(value)
	case "age_death_rate":
		if value < 0 {
			value = 0
		}
		p.Death.AgeRate = value
	case "density":
		p.Density = clamp01(value)
	case "ring_band":
		if value < 0 {
			value = 0
		}
		p.RingBand = value
	case "tick_speed":
		e.SetTickSpeed(time.Duration(value * float64(time.Second)))
	default:
		return false
	}
	return true
}

// SetBoolParameter toggles a boolean rule parameter by key.
func (e *Engine) SetBoolParameter(key string, value bool) bool {
	p := &e.cfg.Params
	switch key {
	case "paused":
		e.paused = value
	case "survival_prob_enabled":
		p.Survival.ProbabilityEnabled = value
	case "birth_prob_enabled":
		p.Birth.ProbabilityEnabled = value
	case "age_death_enabled":
		p.Death.AgeEnabled = value
	case "sudden_death_enabled":
		p.Death.SuddenEnabled = value
	default:
		return false
	}
	return true
}

func ruleParams(prefix, label string, r Rule) []core.Parameter {
	return []core.Parameter{
		intParam(prefix+"_min", label+" min", r.Min),
		intParam(prefix+"_max", label+" max", r.Max),
		boolParam(prefix+"_prob_enabled", label+" gate", r.ProbabilityEnabled),
		floatParam(prefix+"_prob", label+" chance", r.Probability),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
