package weather

// Frame selects the clock the provider uses for series timestamps.
type Frame string

const (
	// FrameUTC returns timestamps in UTC.
	FrameUTC Frame = "UTC"
	// FrameLocal lets the provider pick the stadium's zone and report its
	// offset in Forecast.UTCOffsetSeconds.
	FrameLocal Frame = "auto"
)

func (f Frame) Valid() bool {
	return f == FrameUTC || f == FrameLocal
}

// HourlyMetrics lists the series requested from the provider, in request
// order.
var HourlyMetrics = []string{
	"temperature_2m",
	"apparent_temperature",
	"relative_humidity_2m",
	"precipitation",
	"precipitation_probability",
	"cloud_cover",
	"wind_speed_10m",
	"wind_gusts_10m",
	"is_day",
}

// ForecastDays is the fixed forecast horizon.
const ForecastDays = 7

// HourlySeries holds parallel arrays indexed by hour. Nil elements are
// provider nulls.
type HourlySeries struct {
	Time                     []string
	Temperature              []*float64
	ApparentTemperature      []*float64
	RelativeHumidity         []*float64
	Precipitation            []*float64
	PrecipitationProbability []*float64
	CloudCover               []*float64
	WindSpeed                []*float64
	WindGusts                []*float64
	IsDay                    []*float64
}

// Forecast is one provider response. Hourly is nil when the provider sent
// no hourly block.
type Forecast struct {
	Latitude         float64
	Longitude        float64
	Timezone         string
	UTCOffsetSeconds int
	Frame            Frame
	Hourly           *HourlySeries
}
