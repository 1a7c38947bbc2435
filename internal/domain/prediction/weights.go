package prediction

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Term is one (feature, weight) pair of a weight table.
type Term struct {
	Feature Feature `yaml:"feature"`
	Weight  float64 `yaml:"weight"`
}

// Table is an ordered term list. Logits are accumulated in list order so
// results are reproducible bit for bit.
type Table struct {
	Terms []Term `yaml:"terms"`
}

// Logit returns sum(weight * feature) in term order. Unknown features
// contribute zero.
func (t Table) Logit(m MatchFeatures) float64 {
	z := 0.0
	for _, term := range t.Terms {
		v, ok := m.Value(term.Feature)
		if !ok {
			continue
		}
		z += term.Weight * v
	}
	return z
}

func (t Table) clone() Table {
	return Table{Terms: append([]Term(nil), t.Terms...)}
}

func (t Table) validate(name string) error {
	seen := make(map[Feature]struct{}, len(t.Terms))
	for _, term := range t.Terms {
		if !term.Feature.Known() {
			return fmt.Errorf("%s: unknown feature %q", name, term.Feature)
		}
		if _, dup := seen[term.Feature]; dup {
			return fmt.Errorf("%s: duplicate feature %q", name, term.Feature)
		}
		seen[term.Feature] = struct{}{}
	}
	return nil
}

// Weights holds the five market heads.
type Weights struct {
	Home   Table `yaml:"home"`
	Draw   Table `yaml:"draw"`
	Away   Table `yaml:"away"`
	Over25 Table `yaml:"over_2_5"`
	BTTS   Table `yaml:"btts"`
}

func (w Weights) Clone() Weights {
	return Weights{
		Home:   w.Home.clone(),
		Draw:   w.Draw.clone(),
		Away:   w.Away.clone(),
		Over25: w.Over25.clone(),
		BTTS:   w.BTTS.clone(),
	}
}

// Validate rejects unknown or repeated features in any table.
func (w Weights) Validate() error {
	tables := []struct {
		name  string
		table Table
	}{
		{"home", w.Home},
		{"draw", w.Draw},
		{"away", w.Away},
		{"over_2_5", w.Over25},
		{"btts", w.BTTS},
	}
	for _, item := range tables {
		if err := item.table.validate(item.name); err != nil {
			return err
		}
	}
	return nil
}

// LoadWeightsYAML decodes a weights document. Omitted heads keep their
// default table.
func LoadWeightsYAML(r io.Reader) (Weights, error) {
	weights := DefaultWeights()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&weights); err != nil && err != io.EOF {
		return Weights{}, fmt.Errorf("decode weights: %w", err)
	}
	if err := weights.Validate(); err != nil {
		return Weights{}, err
	}
	return weights, nil
}

// DefaultWeights returns the illustrative hand-tuned tables.
func DefaultWeights() Weights {
	return Weights{
		Home: Table{
			Terms: []Term{
				{FeatureHomeStrength, 2.0},
				{FeatureAwayStrength, -2.0},
				{FeatureHomeForm, 0.6},
				{FeatureAwayForm, -0.6},
				{FeatureHomeAdvantage, 1.2},
				{FeatureHomeFatigue, -0.4},
				{FeatureAwayFatigue, 0.1},
				{FeatureHomeTravel, -0.3},
				{FeatureAwayTravel, 0.1},
				{FeatureImportance, 0.2},
				{FeatureRainRisk, -0.05},
				{FeatureWindRisk, -0.10},
				{FeatureHeatRisk, -0.10},
				{FeatureHomeAttack, 0.3},
				{FeatureAwayDefense, -0.3},
			},
		},
		Draw: Table{
			Terms: []Term{
				{FeatureHomeStrength, 0.0},
				{FeatureAwayStrength, 0.0},
				{FeatureHomeForm, -0.05},
				{FeatureAwayForm, -0.05},
				{FeatureHomeAdvantage, -0.1},
				{FeatureHomeFatigue, 0.1},
				{FeatureAwayFatigue, 0.1},
				{FeatureHomeTravel, 0.1},
				{FeatureAwayTravel, 0.1},
				{FeatureImportance, 0.0},
				{FeatureRainRisk, 0.10},
				{FeatureWindRisk, 0.15},
				{FeatureHeatRisk, 0.0},
			},
		},
		Away: Table{
			Terms: []Term{
				{FeatureHomeStrength, -2.0},
				{FeatureAwayStrength, 2.0},
				{FeatureHomeForm, -0.6},
				{FeatureAwayForm, 0.6},
				{FeatureHomeAdvantage, -1.2},
				{FeatureHomeFatigue, 0.1},
				{FeatureAwayFatigue, -0.4},
				{FeatureHomeTravel, 0.1},
				{FeatureAwayTravel, -0.3},
				{FeatureImportance, 0.2},
				{FeatureRainRisk, -0.05},
				{FeatureWindRisk, -0.10},
				{FeatureHeatRisk, -0.10},
				{FeatureAwayAttack, 0.3},
				{FeatureHomeDefense, -0.3},
			},
		},
		Over25: Table{
			Terms: []Term{
				{FeatureHomeAttack, 0.9},
				{FeatureAwayAttack, 0.9},
				{FeatureHomeDefense, -0.6},
				{FeatureAwayDefense, -0.6},
				{FeatureHomeForm, 0.2},
				{FeatureAwayForm, 0.2},
				{FeatureImportance, 0.1},
				{FeatureRainRisk, -0.25},
				{FeatureWindRisk, -0.15},
				{FeatureHeatRisk, -0.10},
			},
		},
		BTTS: Table{
			Terms: []Term{
				{FeatureHomeAttack, 0.8},
				{FeatureAwayAttack, 0.8},
				{FeatureHomeDefense, -0.7},
				{FeatureAwayDefense, -0.7},
				{FeatureHomeForm, 0.15},
				{FeatureAwayForm, 0.15},
				{FeatureImportance, 0.05},
				{FeatureRainRisk, -0.15},
				{FeatureWindRisk, -0.10},
				{FeatureHeatRisk, -0.05},
			},
		},
	}
}
