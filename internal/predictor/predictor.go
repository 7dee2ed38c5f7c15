// Package predictor normalizes raw in-silico pathogenicity scores onto
// a common [0,1] scale, where higher always means more damaging.
package predictor

// descriptor captures the native output range of a predictor and
// whether its polarity is inverted (lower raw score = more damaging).
type descriptor struct {
	min      float64
	max      float64
	inverted bool
}

// ranges holds the native scales of the supported predictors.
var ranges = map[string]descriptor{
	"revel":            {0, 1, false},
	"cadd":             {0, 100, false},
	"metarnn":          {0, 1, false},
	"clinpred":         {0, 1, false},
	"bayesdel":         {-1, 1, false},
	"alphamissense":    {0, 1, false},
	"mutationtaster":   {0, 1, false},
	"polyphen2":        {0, 1, false},
	"sift":             {0, 1, true},
	"fathmm_xf":        {0, 1, false},
	"mutationassessor": {0, 5, false},
	"provean":          {-14, 14, true},
	"mutpred":          {0, 1, false},
	"metalr":           {0, 1, false},
	"esm1b":            {-100, 100, false},
	"lrt":              {0, 1, true},
	"gerp":             {-12.3, 6.17, false},
	"phylop_vert":      {0, 1, false},
	"phylop_mamm":      {0, 1, false},
	"phylop_primate":   {0, 1, false},
}

// Known reports whether a predictor name has a registered range.
func Known(name string) bool {
	_, ok := ranges[name]
	return ok
}

// Names returns the registered predictor names in no particular order.
func Names() []string {
	out := make([]string, 0, len(ranges))
	for name := range ranges {
		out = append(out, name)
	}
	return out
}

// Normalize rescales a raw predictor score to [0,1] with damaging-high
// polarity. Unknown predictor names report ok=false. Scores outside the
// native range are clamped before rescaling. A degenerate range where
// min equals max yields the neutral value 0.5.
func Normalize(name string, raw float64) (float64, bool) {
	d, ok := ranges[name]
	if !ok {
		return 0, false
	}
	if d.min == d.max {
		return 0.5, true
	}
	if raw < d.min {
		raw = d.min
	}
	if raw > d.max {
		raw = d.max
	}
	v := (raw - d.min) / (d.max - d.min)
	if d.inverted {
		v = 1 - v
	}
	return v, true
}
