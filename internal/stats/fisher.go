// Package stats implements the statistical procedures used for
// case-control, segregation, and population-outlier evidence. Each
// procedure reports an explicit indeterminate result when its inputs
// cannot support a conclusion, rather than guessing.
package stats

import "math"

// FisherResult is the outcome of a one-sided Fisher exact test on a
// 2x2 contingency table of case/control allele carriage.
type FisherResult struct {
	PValue    float64
	OddsRatio float64

	// Indeterminate is set when the table cannot be tested, with Reason
	// naming why. PValue and OddsRatio are then meaningless.
	Indeterminate bool
	Reason        string
}

// logFactorial is ln(n!), safe for concurrent callers.
func logFactorial(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// hypergeomLogPMF is ln P(X = a) for the table
//
//	a b
//	c d
//
// under the hypergeometric null with fixed margins.
func hypergeomLogPMF(a, b, c, d int) float64 {
	return logFactorial(a+b) + logFactorial(c+d) + logFactorial(a+c) + logFactorial(b+d) -
		logFactorial(a) - logFactorial(b) - logFactorial(c) - logFactorial(d) -
		logFactorial(a+b+c+d)
}

// FisherExactGreater computes the one-sided (greater) Fisher exact
// p-value for enrichment of the variant among cases, plus the
// Haldane-corrected odds ratio. The table is
//
//	casesWith    casesWithout
//	controlsWith controlsWithout
func FisherExactGreater(casesWith, casesTotal, controlsWith, controlsTotal int) FisherResult {
	if casesTotal <= 0 || controlsTotal <= 0 {
		return FisherResult{Indeterminate: true, Reason: "empty cohort"}
	}
	if casesWith > casesTotal || controlsWith > controlsTotal {
		return FisherResult{Indeterminate: true, Reason: "carrier count exceeds cohort size"}
	}

	a := casesWith
	b := casesTotal - casesWith
	c := controlsWith
	d := controlsTotal - controlsWith

	// Haldane-Anscombe correction keeps the ratio finite on zero cells.
	or := ((float64(a) + 0.5) * (float64(d) + 0.5)) / ((float64(b) + 0.5) * (float64(c) + 0.5))

	// Tail sum over tables at least as extreme as observed, shifting
	// mass from controls to cases while margins stay fixed.
	p := 0.0
	for k := a; k <= a+c && k <= a+b; k++ {
		shift := k - a
		p += math.Exp(hypergeomLogPMF(k, b-shift, c-shift, d+shift))
	}
	if p > 1 {
		p = 1
	}
	return FisherResult{PValue: p, OddsRatio: or}
}
