package config

import "sort"

// Presets are named liquid and geometry combinations at 20 °C.
var Presets = map[string]*MeniscusConfig{
	"water-glass": {
		Rho: 998.2, Gamma: 0.0728, ThetaDeg: 30, Radius: 0.01, Gravity: 9.80665, N: 200,
	},
	"water-capillary": {
		Rho: 998.2, Gamma: 0.0728, ThetaDeg: 20, Radius: 0.0005, Gravity: 9.80665, N: 200,
	},
	"water-teflon": {
		Rho: 998.2, Gamma: 0.0728, ThetaDeg: 110, Radius: 0.01, Gravity: 9.80665, N: 200,
	},
	"ethanol": {
		Rho: 789.0, Gamma: 0.0223, ThetaDeg: 40, Radius: 0.005, Gravity: 9.80665, N: 200,
	},
	"glycerol": {
		Rho: 1261.0, Gamma: 0.0634, ThetaDeg: 60, Radius: 0.01, Gravity: 9.80665, N: 200,
	},
	"mercury-glass": {
		Rho: 13534.0, Gamma: 0.485, ThetaDeg: 140, Radius: 0.005, Gravity: 9.80665, N: 200,
	},
	"water-moon": {
		Rho: 998.2, Gamma: 0.0728, ThetaDeg: 30, Radius: 0.01, Gravity: 1.62, N: 200,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *MeniscusConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
