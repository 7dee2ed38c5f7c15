package metascore

import "github.com/inodb/vibe-acmg/internal/variant"

// Base metascore cutoffs for computational evidence, adjusted per
// population-frequency bracket: the rarer the variant, the more
// permissive the pathogenic cutoff and the stricter the benign one.
const (
	basePathogenic = 0.354
	baseBenign     = 0.226
)

// Frequency bracket boundaries.
const (
	ultraRareMax    = 1e-5
	veryRareMax     = 1e-4
	moderateRareMax = 1e-3
)

// Thresholds is a resolved cutoff pair for one evaluation.
type Thresholds struct {
	// Pathogenic is the cutoff at or above which the metascore
	// supports pathogenicity.
	Pathogenic float64
	// Benign is the cutoff at or below which the metascore supports
	// a benign interpretation.
	Benign float64
}

// ThresholdsFor adjusts the base cutoffs by allele frequency and
// consequence class. A nil frequency means the variant is absent from
// population databases and is treated like an ultra-rare variant.
// Splice and loss-of-function consequences widen the uncertain band,
// since predictors are less calibrated there.
func ThresholdsFor(af *float64, cons variant.Consequence) Thresholds {
	var t Thresholds
	switch {
	case af == nil || *af <= ultraRareMax:
		t = Thresholds{Pathogenic: basePathogenic - 0.05, Benign: baseBenign - 0.05}
	case *af <= veryRareMax:
		t = Thresholds{Pathogenic: basePathogenic - 0.02, Benign: baseBenign - 0.02}
	case *af <= moderateRareMax:
		t = Thresholds{Pathogenic: basePathogenic, Benign: baseBenign}
	default:
		t = Thresholds{Pathogenic: basePathogenic + 0.05, Benign: baseBenign + 0.05}
	}
	if cons == variant.ConsequenceSpliceDonor || cons == variant.ConsequenceSpliceAcceptor || cons.IsLossOfFunction() {
		t.Pathogenic += 0.05
		t.Benign -= 0.05
	}
	return t
}

// Verdict is the computational evidence direction derived from the
// metascore and the per-predictor consensus.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictPathogenic
	VerdictBenign
)

// ConsensusMin is the number of agreeing individual predictor calls
// that carries evidential weight on its own.
const ConsensusMin = 3

// Evaluate resolves the computational verdict from a metascore, its
// thresholds, and the individual predictor vote tallies. The metascore
// decides when it clears a cutoff; otherwise a sufficiently large
// one-sided consensus decides.
func Evaluate(score float64, t Thresholds, damaging, benign int) Verdict {
	switch {
	case score >= t.Pathogenic:
		return VerdictPathogenic
	case score <= t.Benign:
		return VerdictBenign
	}
	if damaging >= ConsensusMin && benign == 0 {
		return VerdictPathogenic
	}
	if benign >= ConsensusMin && damaging == 0 {
		return VerdictBenign
	}
	return VerdictNone
}
