package prediction

import "github.com/maxbat99/probax/internal/domain/weather"

const (
	rainFullScaleMM   = 1.0
	windFullScaleKMH  = 50.0
	heatBaselineC     = 20.0
	heatFullScaleSpan = 20.0
)

// ApplyWeather maps a kickoff window summary onto the weather features.
// Metrics missing from the summary leave the base value untouched.
func ApplyWeather(base MatchFeatures, summary weather.WindowSummary) MatchFeatures {
	if summary.Status != weather.StatusOK {
		return base
	}
	out := base
	if summary.AvgPrecipitation != nil {
		out.RainRisk = Clip01(*summary.AvgPrecipitation / rainFullScaleMM)
	}
	if summary.AvgWindSpeed != nil {
		out.WindRisk = Clip01(*summary.AvgWindSpeed / windFullScaleKMH)
	}
	if summary.AvgTemperature != nil {
		out.HeatRisk = Clip01((*summary.AvgTemperature - heatBaselineC) / heatFullScaleSpan)
	}
	return out
}
