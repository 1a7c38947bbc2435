package weather

import (
	"fmt"
	"strings"
	"time"
)

// Status describes how complete a WindowSummary is.
type Status string

const (
	StatusOK             Status = "ok"
	StatusNoHourlyData   Status = "no_hourly_data"
	StatusNoTimeOrTemp   Status = "no_time_or_temp"
	StatusInvalidKickoff Status = "invalid_kickoff"
)

// Window radius and risk thresholds in provider units.
const (
	WindowRadius         = 2 * time.Hour
	RainRiskPrecipMM     = 0.5
	WindRiskSpeedKMH     = 25.0
	HeatRiskTemperatureC = 30.0
)

const (
	NoteRain = "wet or slippery pitch"
	NoteWind = "strong wind: altered ball trajectories"
	NoteHeat = "sultry heat: risk of physical drop-off"
)

const naiveLayout = "2006-01-02T15:04:05"

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

type Flags struct {
	RainRisk bool
	WindRisk bool
	HeatRisk bool
}

// WindowSummary aggregates the samples within WindowRadius of kickoff.
// Aggregates are nil when no sample carried that metric.
type WindowSummary struct {
	Status             Status
	Kickoff            string
	Samples            int
	AvgTemperature     *float64
	AvgHumidity        *float64
	TotalPrecipitation *float64
	AvgPrecipitation   *float64
	AvgWindSpeed       *float64
	Flags              Flags
	Notes              []string
}

// ParseKickoff reads an ISO-8601 instant as a wall-clock time. A trailing Z
// is dropped, naive values are taken as-is and explicit offsets are
// converted to UTC. The result always carries time.UTC as its location.
func ParseKickoff(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("kickoff is empty")
	}
	trimmed := strings.TrimSuffix(strings.TrimSuffix(value, "Z"), "z")
	if t, err := parseNaive(trimmed); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse kickoff %q: %w", raw, err)
	}
	return t.UTC(), nil
}

// FormatNaive renders t as a zone-less wall-clock timestamp.
func FormatNaive(t time.Time) string {
	return t.Format(naiveLayout)
}

// ShiftToLocal converts a UTC kickoff into the provider's local wall clock.
func ShiftToLocal(kickoffUTC time.Time, utcOffsetSeconds int) time.Time {
	return kickoffUTC.UTC().Add(time.Duration(utcOffsetSeconds) * time.Second)
}

// hasLocalOffset reports whether raw names an explicit offset other than UTC.
func hasLocalOffset(raw string) bool {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	_, offset := t.Zone()
	return offset != 0
}

func parseNaive(value string) (time.Time, error) {
	t, err := time.ParseInLocation(naiveLayout, value, time.UTC)
	if err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, layoutErr := time.ParseInLocation(layout, value, time.UTC); layoutErr == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Summarize aggregates forecast samples around kickoff. kickoff must be in
// the same frame as the forecast timestamps, so a kickoff carrying a non-UTC
// offset is reported as invalid_kickoff. Failures are reported through Status.
func Summarize(forecast Forecast, kickoff string) WindowSummary {
	out := WindowSummary{Kickoff: kickoff}
	if forecast.Hourly == nil {
		out.Status = StatusNoHourlyData
		return out
	}
	hourly := forecast.Hourly
	if len(hourly.Time) == 0 || len(hourly.Temperature) == 0 {
		out.Status = StatusNoTimeOrTemp
		return out
	}
	k, err := ParseKickoff(kickoff)
	if err != nil || hasLocalOffset(kickoff) {
		out.Status = StatusInvalidKickoff
		return out
	}

	var temp, hum, prec, wind accumulator
	for i, raw := range hourly.Time {
		ts, parseErr := parseNaive(strings.TrimSpace(raw))
		if parseErr != nil {
			continue
		}
		if absDuration(ts.Sub(k)) > WindowRadius {
			continue
		}
		out.Samples++
		temp.add(hourly.Temperature, i)
		hum.add(hourly.RelativeHumidity, i)
		prec.add(hourly.Precipitation, i)
		wind.add(hourly.WindSpeed, i)
	}

	out.Status = StatusOK
	out.AvgTemperature = temp.mean()
	out.AvgHumidity = hum.mean()
	out.TotalPrecipitation = prec.total()
	out.AvgPrecipitation = prec.mean()
	out.AvgWindSpeed = wind.mean()
	out.Flags = Flags{
		RainRisk: exceeds(out.AvgPrecipitation, RainRiskPrecipMM),
		WindRisk: exceeds(out.AvgWindSpeed, WindRiskSpeedKMH),
		HeatRisk: exceeds(out.AvgTemperature, HeatRiskTemperatureC),
	}
	out.Notes = pitchNotes(out.Flags)
	return out
}

func pitchNotes(flags Flags) []string {
	notes := make([]string, 0, 3)
	if flags.RainRisk {
		notes = append(notes, NoteRain)
	}
	if flags.WindRisk {
		notes = append(notes, NoteWind)
	}
	if flags.HeatRisk {
		notes = append(notes, NoteHeat)
	}
	return notes
}

// accumulator sums values in series order.
type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(series []*float64, i int) {
	if i >= len(series) || series[i] == nil {
		return
	}
	a.sum += *series[i]
	a.n++
}

func (a accumulator) mean() *float64 {
	if a.n == 0 {
		return nil
	}
	v := a.sum / float64(a.n)
	return &v
}

func (a accumulator) total() *float64 {
	if a.n == 0 {
		return nil
	}
	v := a.sum
	return &v
}

func exceeds(v *float64, threshold float64) bool {
	return v != nil && *v > threshold
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
