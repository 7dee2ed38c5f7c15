package predictor

// Call is an individual predictor's categorical verdict on a variant,
// derived from its raw score against predictor-specific cutoffs.
type Call int

const (
	CallUncertain Call = iota
	CallDamaging
	CallBenign
)

// cutoffs are expressed on each predictor's native scale.
type cutoff struct {
	damagingAbove float64
	benignBelow   float64
	// inverted predictors are damaging below and benign above.
	inverted bool
}

var cutoffs = map[string]cutoff{
	"revel":            {damagingAbove: 0.75, benignBelow: 0.25},
	"cadd":             {damagingAbove: 25, benignBelow: 10},
	"metarnn":          {damagingAbove: 0.75, benignBelow: 0.25},
	"clinpred":         {damagingAbove: 0.6, benignBelow: 0.4},
	"bayesdel":         {damagingAbove: 0.13, benignBelow: -0.18},
	"alphamissense":    {damagingAbove: 0.564, benignBelow: 0.34},
	"mutationtaster":   {damagingAbove: 0.75, benignBelow: 0.25},
	"polyphen2":        {damagingAbove: 0.85, benignBelow: 0.15},
	"sift":             {damagingAbove: 0.05, benignBelow: 0.2, inverted: true},
	"fathmm_xf":        {damagingAbove: 0.7, benignBelow: 0.3},
	"mutationassessor": {damagingAbove: 3.5, benignBelow: 1.9},
	"provean":          {damagingAbove: -2.5, benignBelow: -1.5, inverted: true},
	"mutpred":          {damagingAbove: 0.7, benignBelow: 0.3},
	"metalr":           {damagingAbove: 0.75, benignBelow: 0.25},
	"esm1b":            {damagingAbove: -7.5, benignBelow: -5, inverted: true},
	"lrt":              {damagingAbove: 0.002, benignBelow: 0.02, inverted: true},
	"gerp":             {damagingAbove: 4, benignBelow: 2},
	"phylop_vert":      {damagingAbove: 0.75, benignBelow: 0.25},
	"phylop_mamm":      {damagingAbove: 0.75, benignBelow: 0.25},
	"phylop_primate":   {damagingAbove: 0.75, benignBelow: 0.25},
}

// Classify maps a raw score to the predictor's own categorical call.
// Predictors without a registered cutoff report CallUncertain.
func Classify(name string, raw float64) Call {
	c, ok := cutoffs[name]
	if !ok {
		return CallUncertain
	}
	if c.inverted {
		switch {
		case raw <= c.damagingAbove:
			return CallDamaging
		case raw >= c.benignBelow:
			return CallBenign
		}
		return CallUncertain
	}
	switch {
	case raw >= c.damagingAbove:
		return CallDamaging
	case raw <= c.benignBelow:
		return CallBenign
	}
	return CallUncertain
}

// ConsensusVote tallies individual predictor calls over a set of raw
// scores. Reports damaging and benign counts among predictors with a
// registered cutoff.
func ConsensusVote(scores map[string]float64) (damaging, benign int) {
	for name, raw := range scores {
		switch Classify(name, raw) {
		case CallDamaging:
			damaging++
		case CallBenign:
			benign++
		}
	}
	return damaging, benign
}
