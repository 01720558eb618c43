package world

import (
	"strconv"

	"sphere-ca/internal/core"
)

// Parameters reports engine, organism and pairing parameters.
func (w *World) Parameters() core.ParameterSnapshot {
	snap := w.engine.Parameters()
	oc := w.tracker.Config()
	snap.Groups = append(snap.Groups,
		core.ParameterGroup{
			Name: "Organisms",
			Params: []core.Parameter{
				intParam("update_frequency", "Update frequency", oc.UpdateFrequency),
				intParam("min_age", "Min age", oc.MinAge),
				intParam("min_size", "Min size", oc.MinSize),
				intParam("organisms", "Organisms", len(w.tracker.Organisms())),
			},
		},
		core.ParameterGroup{
			Name: "Pairing",
			Params: []core.Parameter{
				{
					Key:   "angular_tolerance",
					Label: "Angular tolerance",
					Type:  core.ParamTypeFloat,
					Value: strconv.FormatFloat(w.resolver.Tolerance(), 'f', -1, 64),
				},
				intParam("pairs", "Pairs", len(w.resolver.Pairs())),
			},
		},
		core.ParameterGroup{
			Name: "Topology",
			Params: []core.Parameter{
				intParam("nodes", "Nodes", w.adj.NodeCount()),
				{Key: "generation", Label: "Generation", Type: core.ParamTypeString, Value: w.Generation()},
			},
		},
	)
	return snap
}

// ParameterControls lists every HUD-adjustable parameter.
func (w *World) ParameterControls() []core.ParameterControl {
	controls := w.engine.ParameterControls()
	return append(controls,
		core.ParameterControl{Key: "update_frequency", Label: "Detect every", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		core.ParameterControl{Key: "min_age", Label: "Min age", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		core.ParameterControl{Key: "min_size", Label: "Min size", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		core.ParameterControl{Key: "angular_tolerance", Label: "Tolerance", Type: core.ParamTypeFloat, Step: 1, Min: 0, HasMin: true, Max: 180, HasMax: true},
	)
}

// SetIntParameter routes an integer update to the owning component.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "update_frequency":
		w.tracker.SetUpdateFrequency(value)
	case "min_age":
		w.tracker.SetMinAge(value)
	case "min_size":
		w.tracker.SetMinSize(value)
	default:
		return w.engine.SetIntParameter(key, value)
	}
	return true
}

// SetFloatParameter routes a floating point update to the owning component.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if key == "angular_tolerance" {
		if value < 0 {
			value = 0
		}
		w.resolver.SetAngularTolerance(value)
		return true
	}
	return w.engine.SetFloatParameter(key, value)
}

// SetBoolParameter routes a boolean update to the engine.
func (w *World) SetBoolParameter(key string, value bool) bool {
	return w.engine.SetBoolParameter(key, value)
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}
