// Package metascore combines normalized in-silico predictor scores into
// a single weighted metascore and derives computational evidence calls
// from it.
package metascore

import (
	"sort"

	"github.com/inodb/vibe-acmg/internal/predictor"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Weights maps predictor names to their contribution weight. Predictors
// absent from a profile contribute nothing.
type Weights map[string]float64

// defaultWeights is the general-purpose missense profile.
var defaultWeights = Weights{
	"revel":            1.5,
	"cadd":             1.0,
	"metarnn":          1.5,
	"clinpred":         1.5,
	"bayesdel":         1.2,
	"alphamissense":    1.5,
	"mutationtaster":   0.8,
	"polyphen2":        0.8,
	"sift":             0.8,
	"fathmm_xf":        0.8,
	"mutationassessor": 0.8,
	"provean":          0.8,
	"mutpred":          1.0,
	"metalr":           1.0,
	"esm1b":            1.2,
	"lrt":              0.5,
	"gerp":             0.5,
	"phylop_vert":      0.4,
	"phylop_mamm":      0.4,
	"phylop_primate":   0.4,
}

// geneWeights holds per-gene profiles that override the default for
// genes whose predictors are known to behave differently.
var geneWeights = map[string]Weights{
	"BRCA1": {
		"revel":         2.0,
		"cadd":          1.0,
		"clinpred":      2.0,
		"alphamissense": 2.0,
		"bayesdel":      1.5,
		"metarnn":       1.5,
		"esm1b":         1.5,
		"polyphen2":     0.5,
		"sift":          0.5,
		"gerp":          0.3,
	},
	"CAMTA1": {
		"revel":          1.0,
		"cadd":           1.5,
		"metarnn":        1.0,
		"alphamissense":  1.0,
		"gerp":           1.2,
		"phylop_vert":    1.0,
		"phylop_mamm":    1.0,
		"phylop_primate": 1.0,
	},
	"TTN": {
		"revel":         1.2,
		"cadd":          0.8,
		"metarnn":       1.2,
		"clinpred":      1.2,
		"alphamissense": 1.8,
		"esm1b":         1.5,
		"polyphen2":     0.4,
		"sift":          0.4,
	},
}

// typeWeights holds per-consequence weight profiles. Truncating
// variants lean on conservation scores, splice and intronic variants
// on the few predictors calibrated near splice sites, and synonymous
// variants on conservation with a residual missense signal.
// Consequences outside the map use the missense default.
var typeWeights = map[variant.Consequence]Weights{
	variant.ConsequenceNonsense: {
		"cadd":           1.5,
		"gerp":           1.2,
		"phylop_vert":    0.8,
		"phylop_mamm":    0.6,
		"phylop_primate": 0.5,
		"revel":          0.5,
		"alphamissense":  0.3,
		"clinpred":       0.3,
	},
	variant.ConsequenceFrameshift: {
		"cadd":           1.6,
		"gerp":           1.0,
		"phylop_vert":    0.7,
		"phylop_mamm":    0.5,
		"phylop_primate": 0.4,
		"revel":          0.4,
		"alphamissense":  0.2,
		"clinpred":       0.2,
	},
	variant.ConsequenceSpliceDonor: {
		"cadd":           1.2,
		"gerp":           1.0,
		"phylop_vert":    0.6,
		"phylop_mamm":    0.4,
		"phylop_primate": 0.3,
	},
	variant.ConsequenceSpliceAcceptor: {
		"cadd":           1.2,
		"gerp":           1.0,
		"phylop_vert":    0.6,
		"phylop_mamm":    0.4,
		"phylop_primate": 0.3,
	},
	variant.ConsequenceSynonymous: {
		"cadd":           1.2,
		"gerp":           1.0,
		"phylop_vert":    0.8,
		"phylop_mamm":    0.5,
		"phylop_primate": 0.3,
		"revel":          0.5,
		"alphamissense":  0.3,
		"clinpred":       0.2,
	},
	variant.ConsequenceIntronic: {
		"cadd":           0.8,
		"gerp":           0.5,
		"phylop_vert":    0.3,
		"phylop_mamm":    0.2,
		"phylop_primate": 0.2,
	},
}

// WeightsFor returns the weight profile used for the given gene and
// consequence. A gene profile takes precedence over the consequence
// table.
func WeightsFor(gene string, cons variant.Consequence) Weights {
	if w, ok := geneWeights[gene]; ok {
		return w
	}
	if w, ok := typeWeights[cons]; ok {
		return w
	}
	return defaultWeights
}

// Result is the aggregated metascore for one variant.
type Result struct {
	Score          float64
	PredictorsUsed []string
	// OK is false when no scored predictor carried a weight, leaving
	// nothing to aggregate.
	OK bool
}

// Compute produces the weighted metascore over raw predictor scores.
// Each score is normalized before weighting.
func Compute(gene string, cons variant.Consequence, scores variant.PredictorObservation) Result {
	weights := WeightsFor(gene, cons)

	var sum, total float64
	var used []string
	for name, raw := range scores {
		w, ok := weights[name]
		if !ok {
			continue
		}
		norm, ok := predictor.Normalize(name, raw)
		if !ok {
			continue
		}
		sum += norm * w
		total += w
		used = append(used, name)
	}
	if total == 0 {
		return Result{}
	}
	sort.Strings(used)
	return Result{Score: sum / total, PredictorsUsed: used, OK: true}
}
