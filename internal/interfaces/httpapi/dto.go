package httpapi

import (
	"time"

	"github.com/maxbat99/probax/internal/domain/location"
	"github.com/maxbat99/probax/internal/domain/prediction"
	"github.com/maxbat99/probax/internal/domain/stadium"
	"github.com/maxbat99/probax/internal/domain/team"
	"github.com/maxbat99/probax/internal/domain/weather"
	"github.com/maxbat99/probax/internal/usecase"
)

type resolvedDTO struct {
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Source   string            `json:"source"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type gazetteerStatusDTO struct {
	Loaded         bool   `json:"loaded"`
	StadiumsLoaded int    `json:"stadiums_loaded"`
	Error          string `json:"error,omitempty"`
}

type stadiumDTO struct {
	EntityID  string    `json:"entity_id"`
	Name      string    `json:"name"`
	Country   string    `json:"country,omitempty"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Aliases   []string  `json:"aliases"`
	UpdatedAt time.Time `json:"updated_at"`
}

type stadiumListDTO struct {
	Items []stadiumDTO `json:"items"`
}

type coordsDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type hourlyDTO struct {
	Time                     []string   `json:"time"`
	Temperature              []*float64 `json:"temperature_2m"`
	ApparentTemperature      []*float64 `json:"apparent_temperature"`
	RelativeHumidity         []*float64 `json:"relative_humidity_2m"`
	Precipitation            []*float64 `json:"precipitation"`
	PrecipitationProbability []*float64 `json:"precipitation_probability"`
	CloudCover               []*float64 `json:"cloud_cover"`
	WindSpeed                []*float64 `json:"wind_speed_10m"`
	WindGusts                []*float64 `json:"wind_gusts_10m"`
	IsDay                    []*float64 `json:"is_day"`
}

type coordsWeatherDTO struct {
	Coords           coordsDTO  `json:"coords"`
	Timezone         string     `json:"timezone"`
	UTCOffsetSeconds int        `json:"utc_offset_seconds"`
	Hourly           *hourlyDTO `json:"hourly"`
}

type flagsDTO struct {
	RainRisk bool `json:"rain_risk"`
	WindRisk bool `json:"wind_risk"`
	HeatRisk bool `json:"heat_risk"`
}

type summaryDTO struct {
	Status             string   `json:"status"`
	Kickoff            string   `json:"kickoff,omitempty"`
	Samples            int      `json:"samples"`
	AvgTemperature     *float64 `json:"avg_temp_c"`
	AvgHumidity        *float64 `json:"avg_humidity_pct"`
	TotalPrecipitation *float64 `json:"total_precip_mm"`
	AvgPrecipitation   *float64 `json:"avg_precip_mm"`
	AvgWindSpeed       *float64 `json:"avg_wind_kmh"`
	Flags              flagsDTO `json:"flags"`
	Notes              []string `json:"notes"`
}

type frameReportDTO struct {
	Timezone         string     `json:"timezone"`
	UTCOffsetSeconds int        `json:"utc_offset_seconds"`
	Kickoff          string     `json:"kickoff"`
	Summary          summaryDTO `json:"summary"`
}

type kickoffWeatherDTO struct {
	TZMode     string          `json:"tz_mode"`
	KickoffUTC time.Time       `json:"kickoff_utc"`
	UTC        *frameReportDTO `json:"utc,omitempty"`
	Local      *frameReportDTO `json:"local,omitempty"`
}

type weatherQueryDTO struct {
	Stadium       string `json:"stadium,omitempty"`
	Team          string `json:"team,omitempty"`
	City          string `json:"city,omitempty"`
	Country       string `json:"country,omitempty"`
	KickoffISOUTC string `json:"kickoff_iso_utc"`
	TZMode        string `json:"tz_mode"`
}

type weatherGlobalDTO struct {
	Query   weatherQueryDTO   `json:"query"`
	Coords  resolvedDTO       `json:"coords"`
	Results kickoffWeatherDTO `json:"results"`
}

type teamDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	League  string `json:"league,omitempty"`
	Country string `json:"country,omitempty"`
}

type teamListDTO struct {
	Items []teamDTO `json:"items"`
}

type rebuildDTO struct {
	Count       int       `json:"count"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
}

type outcomeDTO struct {
	Selection   string  `json:"selection"`
	Probability float64 `json:"probability"`
}

type marketDTO struct {
	Market        string       `json:"market"`
	Probabilities []outcomeDTO `json:"probabilities"`
	Pick          string       `json:"pick"`
	Confidence    float64      `json:"confidence"`
}

type oneXTwoDTO struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

type edgeDTO struct {
	Home   float64 `json:"home"`
	Draw   float64 `json:"draw"`
	Away   float64 `json:"away"`
	Over25 float64 `json:"over_2_5"`
	BTTS   float64 `json:"btts"`
}

type reportDTO struct {
	OneXTwo oneXTwoDTO  `json:"one_x_two"`
	Over25  float64     `json:"over_2_5"`
	BTTS    float64     `json:"btts"`
	Edge    edgeDTO     `json:"edge"`
	Markets []marketDTO `json:"markets"`
}

type matchContextDTO struct {
	Home     string             `json:"home"`
	Away     string             `json:"away"`
	Location *resolvedDTO       `json:"location,omitempty"`
	Weather  *kickoffWeatherDTO `json:"weather,omitempty"`
	Features map[string]float64 `json:"features"`
	Report   reportDTO          `json:"report"`
	Warnings []string           `json:"warnings"`
}

func resolvedToDTO(r location.Resolved) resolvedDTO {
	return resolvedDTO{
		Lat:      r.Lat,
		Lon:      r.Lon,
		Source:   string(r.Source),
		Metadata: r.Metadata,
	}
}

func stadiumsToDTO(items []stadium.Entity) []stadiumDTO {
	out := make([]stadiumDTO, 0, len(items))
	for _, item := range items {
		aliases := item.Aliases
		if aliases == nil {
			aliases = []string{}
		}
		out = append(out, stadiumDTO{
			EntityID:  item.EntityID,
			Name:      item.Name,
			Country:   item.Country,
			Lat:       item.Lat,
			Lon:       item.Lon,
			Aliases:   aliases,
			UpdatedAt: item.UpdatedAt,
		})
	}
	return out
}

func hourlyToDTO(h *weather.HourlySeries) *hourlyDTO {
	if h == nil {
		return nil
	}
	return &hourlyDTO{
		Time:                     h.Time,
		Temperature:              h.Temperature,
		ApparentTemperature:      h.ApparentTemperature,
		RelativeHumidity:         h.RelativeHumidity,
		Precipitation:            h.Precipitation,
		PrecipitationProbability: h.PrecipitationProbability,
		CloudCover:               h.CloudCover,
		WindSpeed:                h.WindSpeed,
		WindGusts:                h.WindGusts,
		IsDay:                    h.IsDay,
	}
}

func summaryToDTO(s weather.WindowSummary) summaryDTO {
	notes := s.Notes
	if notes == nil {
		notes = []string{}
	}
	return summaryDTO{
		Status:             string(s.Status),
		Kickoff:            s.Kickoff,
		Samples:            s.Samples,
		AvgTemperature:     s.AvgTemperature,
		AvgHumidity:        s.AvgHumidity,
		TotalPrecipitation: s.TotalPrecipitation,
		AvgPrecipitation:   s.AvgPrecipitation,
		AvgWindSpeed:       s.AvgWindSpeed,
		Flags: flagsDTO{
			RainRisk: s.Flags.RainRisk,
			WindRisk: s.Flags.WindRisk,
			HeatRisk: s.Flags.HeatRisk,
		},
		Notes: notes,
	}
}

func frameReportToDTO(f *usecase.FrameReport) *frameReportDTO {
	if f == nil {
		return nil
	}
	return &frameReportDTO{
		Timezone:         f.Timezone,
		UTCOffsetSeconds: f.UTCOffsetSeconds,
		Kickoff:          f.Kickoff,
		Summary:          summaryToDTO(f.Summary),
	}
}

func kickoffWeatherToDTO(k usecase.KickoffWeather) kickoffWeatherDTO {
	return kickoffWeatherDTO{
		TZMode:     string(k.Mode),
		KickoffUTC: k.KickoffUTC,
		UTC:        frameReportToDTO(k.UTC),
		Local:      frameReportToDTO(k.Local),
	}
}

func teamsToDTO(teams []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamDTO{
			ID:      t.ID,
			Name:    t.Name,
			League:  t.League,
			Country: t.Country,
		})
	}
	return out
}

func reportToDTO(r prediction.Report) reportDTO {
	markets := make([]marketDTO, 0, len(r.Markets))
	for _, m := range r.Markets {
		outcomes := make([]outcomeDTO, 0, len(m.Probabilities))
		for _, o := range m.Probabilities {
			outcomes = append(outcomes, outcomeDTO{Selection: o.Selection, Probability: o.Probability})
		}
		markets = append(markets, marketDTO{
			Market:        m.Market,
			Probabilities: outcomes,
			Pick:          m.Pick.Selection,
			Confidence:    m.Pick.Confidence,
		})
	}
	return reportDTO{
		OneXTwo: oneXTwoDTO{Home: r.OneXTwo.Home, Draw: r.OneXTwo.Draw, Away: r.OneXTwo.Away},
		Over25:  r.Over25,
		BTTS:    r.BTTS,
		Edge: edgeDTO{
			Home:   r.Edge.Home,
			Draw:   r.Edge.Draw,
			Away:   r.Edge.Away,
			Over25: r.Edge.Over25,
			BTTS:   r.Edge.BTTS,
		},
		Markets: markets,
	}
}

func matchContextToDTO(mc usecase.MatchContext) matchContextDTO {
	out := matchContextDTO{
		Home:     mc.Home,
		Away:     mc.Away,
		Features: mc.Features.Map(),
		Report:   reportToDTO(mc.Report),
		Warnings: mc.Warnings,
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	if mc.Location != nil {
		loc := resolvedToDTO(*mc.Location)
		out.Location = &loc
	}
	if mc.Weather != nil {
		kw := kickoffWeatherToDTO(*mc.Weather)
		out.Weather = &kw
	}
	return out
}
