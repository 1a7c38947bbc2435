package prediction

import "math"

const (
	MarketOneXTwo      = "1X2"
	MarketDoubleChance = "Double Chance"
	MarketOverUnder25  = "Over/Under 2.5"
	MarketBTTS         = "BTTS"
)

// Three-way outcome probabilities; they always sum to 1.
type OneXTwo struct {
	Home float64
	Draw float64
	Away float64
}

// Edge is the distance of each probability from its neutral baseline
// (1/3 for three-way outcomes, 1/2 for binary ones).
type Edge struct {
	Home   float64
	Draw   float64
	Away   float64
	Over25 float64
	BTTS   float64
}

type Outcome struct {
	Selection   string
	Probability float64
}

type Pick struct {
	Selection  string
	Confidence float64
}

// MarketPrediction is one betting market with its outcome probabilities
// and the most probable selection.
type MarketPrediction struct {
	Market        string
	Probabilities []Outcome
	Pick          Pick
}

type Report struct {
	Features MatchFeatures
	OneXTwo  OneXTwo
	Over25   float64
	BTTS     float64
	Edge     Edge
	Markets  []MarketPrediction
}

// Engine scores match features with a fixed set of weights. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	weights Weights
}

func NewEngine(weights Weights) *Engine {
	return &Engine{weights: weights.Clone()}
}

func NewDefaultEngine() *Engine {
	return NewEngine(DefaultWeights())
}

func (e *Engine) Weights() Weights {
	return e.weights.Clone()
}

func (e *Engine) Score(features MatchFeatures) Report {
	home, draw, away := Softmax3(
		e.weights.Home.Logit(features),
		e.weights.Draw.Logit(features),
		e.weights.Away.Logit(features),
	)
	over := Sigmoid(e.weights.Over25.Logit(features))
	btts := Sigmoid(e.weights.BTTS.Logit(features))

	report := Report{
		Features: features,
		OneXTwo:  OneXTwo{Home: home, Draw: draw, Away: away},
		Over25:   over,
		BTTS:     btts,
		Edge: Edge{
			Home:   home - 1.0/3.0,
			Draw:   draw - 1.0/3.0,
			Away:   away - 1.0/3.0,
			Over25: over - 0.5,
			BTTS:   btts - 0.5,
		},
	}
	report.Markets = buildMarkets(report)
	return report
}

func buildMarkets(r Report) []MarketPrediction {
	return []MarketPrediction{
		newMarket(MarketOneXTwo, []Outcome{
			{Selection: "Home", Probability: r.OneXTwo.Home},
			{Selection: "Draw", Probability: r.OneXTwo.Draw},
			{Selection: "Away", Probability: r.OneXTwo.Away},
		}),
		newMarket(MarketDoubleChance, []Outcome{
			{Selection: "1X", Probability: r.OneXTwo.Home + r.OneXTwo.Draw},
			{Selection: "12", Probability: r.OneXTwo.Home + r.OneXTwo.Away},
			{Selection: "X2", Probability: r.OneXTwo.Draw + r.OneXTwo.Away},
		}),
		newMarket(MarketOverUnder25, []Outcome{
			{Selection: "Over 2.5", Probability: r.Over25},
			{Selection: "Under 2.5", Probability: 1 - r.Over25},
		}),
		newMarket(MarketBTTS, []Outcome{
			{Selection: "Yes", Probability: r.BTTS},
			{Selection: "No", Probability: 1 - r.BTTS},
		}),
	}
}

// newMarket picks the highest probability; the first outcome wins ties.
func newMarket(name string, outcomes []Outcome) MarketPrediction {
	best := outcomes[0]
	for _, outcome := range outcomes[1:] {
		if outcome.Probability > best.Probability {
			best = outcome
		}
	}
	return MarketPrediction{
		Market:        name,
		Probabilities: outcomes,
		Pick:          Pick{Selection: best.Selection, Confidence: best.Probability},
	}
}

// Softmax3 subtracts the maximum logit before exponentiating so large
// inputs cannot overflow.
func Softmax3(a, b, c float64) (float64, float64, float64) {
	m := math.Max(a, math.Max(b, c))
	ea := math.Exp(a - m)
	eb := math.Exp(b - m)
	ec := math.Exp(c - m)
	sum := ea + eb + ec
	return ea / sum, eb / sum, ec / sum
}

func Sigmoid(x float64) float64 {
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	z := math.Exp(x)
	return z / (1 + z)
}

func Clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
