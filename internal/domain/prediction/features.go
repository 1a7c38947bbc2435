package prediction

// Feature names a MatchFeatures field inside a weight table.
type Feature string

const (
	FeatureHomeStrength  Feature = "home_strength"
	FeatureAwayStrength  Feature = "away_strength"
	FeatureHomeForm      Feature = "home_form"
	FeatureAwayForm      Feature = "away_form"
	FeatureHomeAdvantage Feature = "home_adv"
	FeatureHomeFatigue   Feature = "home_fatigue"
	FeatureAwayFatigue   Feature = "away_fatigue"
	FeatureHomeTravel    Feature = "home_travel"
	FeatureAwayTravel    Feature = "away_travel"
	FeatureImportance    Feature = "importance"
	FeatureRainRisk      Feature = "rain_risk"
	FeatureWindRisk      Feature = "wind_risk"
	FeatureHeatRisk      Feature = "heat_risk"
	FeatureHomeAttack    Feature = "home_attack"
	FeatureHomeDefense   Feature = "home_defense"
	FeatureAwayAttack    Feature = "away_attack"
	FeatureAwayDefense   Feature = "away_defense"
)

// AllFeatures lists every feature in MatchFeatures field order.
var AllFeatures = []Feature{
	FeatureHomeStrength,
	FeatureAwayStrength,
	FeatureHomeForm,
	FeatureAwayForm,
	FeatureHomeAdvantage,
	FeatureHomeFatigue,
	FeatureAwayFatigue,
	FeatureHomeTravel,
	FeatureAwayTravel,
	FeatureImportance,
	FeatureRainRisk,
	FeatureWindRisk,
	FeatureHeatRisk,
	FeatureHomeAttack,
	FeatureHomeDefense,
	FeatureAwayAttack,
	FeatureAwayDefense,
}

// MatchFeatures is the model input. Values are expected in [0,1] but are
// not clamped.
type MatchFeatures struct {
	HomeStrength  float64
	AwayStrength  float64
	HomeForm      float64
	AwayForm      float64
	HomeAdvantage float64
	HomeFatigue   float64
	AwayFatigue   float64
	HomeTravel    float64
	AwayTravel    float64
	Importance    float64
	RainRisk      float64
	WindRisk      float64
	HeatRisk      float64
	HomeAttack    float64
	HomeDefense   float64
	AwayAttack    float64
	AwayDefense   float64
}

// DefaultFeatures is a neutral fixture between two average sides.
func DefaultFeatures() MatchFeatures {
	return MatchFeatures{
		HomeStrength:  0.5,
		AwayStrength:  0.5,
		HomeForm:      0.5,
		AwayForm:      0.5,
		HomeAdvantage: 0.10,
		HomeFatigue:   0.3,
		AwayFatigue:   0.3,
		HomeTravel:    0.0,
		AwayTravel:    0.2,
		Importance:    0.3,
		RainRisk:      0.1,
		WindRisk:      0.1,
		HeatRisk:      0.1,
		HomeAttack:    0.5,
		HomeDefense:   0.5,
		AwayAttack:    0.5,
		AwayDefense:   0.5,
	}
}

// Value returns the field named by f. ok is false for unknown names.
func (m MatchFeatures) Value(f Feature) (float64, bool) {
	field := m.field(f)
	if field == nil {
		return 0, false
	}
	return *field, true
}

// Set assigns the field named by f and reports whether f is known.
func (m *MatchFeatures) Set(f Feature, v float64) bool {
	field := m.field(f)
	if field == nil {
		return false
	}
	*field = v
	return true
}

// Map returns every feature keyed by name.
func (m MatchFeatures) Map() map[string]float64 {
	out := make(map[string]float64, len(AllFeatures))
	for _, f := range AllFeatures {
		v, _ := m.Value(f)
		out[string(f)] = v
	}
	return out
}

func (m *MatchFeatures) field(f Feature) *float64 {
	switch f {
	case FeatureHomeStrength:
		return &m.HomeStrength
	case FeatureAwayStrength:
		return &m.AwayStrength
	case FeatureHomeForm:
		return &m.HomeForm
	case FeatureAwayForm:
		return &m.AwayForm
	case FeatureHomeAdvantage:
		return &m.HomeAdvantage
	case FeatureHomeFatigue:
		return &m.HomeFatigue
	case FeatureAwayFatigue:
		return &m.AwayFatigue
	case FeatureHomeTravel:
		return &m.HomeTravel
	case FeatureAwayTravel:
		return &m.AwayTravel
	case FeatureImportance:
		return &m.Importance
	case FeatureRainRisk:
		return &m.RainRisk
	case FeatureWindRisk:
		return &m.WindRisk
	case FeatureHeatRisk:
		return &m.HeatRisk
	case FeatureHomeAttack:
		return &m.HomeAttack
	case FeatureHomeDefense:
		return &m.HomeDefense
	case FeatureAwayAttack:
		return &m.AwayAttack
	case FeatureAwayDefense:
		return &m.AwayDefense
	default:
		return nil
	}
}

func (f Feature) Known() bool {
	_, ok := MatchFeatures{}.Value(f)
	return ok
}
