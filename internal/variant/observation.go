package variant

import "fmt"

// PopulationObservation carries population-database evidence for a
// variant. A nil AlleleFrequency means the variant was never observed
// in any database, which is a distinct (and meaningful) state from an
// observed frequency of zero.
type PopulationObservation struct {
	AlleleFrequency *float64
	SubpopFreqs     []float64 // per-sub-population frequencies, if broken out
	HomozygoteCount int

	// Case/control cohort counts for the enrichment test.
	CasesWithVariant    int
	CasesTotal          int
	ControlsWithVariant int
	ControlsTotal       int

	DiseasePrevalence float64
}

// HasFrequency reports whether any frequency data was observed.
func (p *PopulationObservation) HasFrequency() bool {
	return p != nil && p.AlleleFrequency != nil
}

// Frequency returns the observed allele frequency, or 0 when absent.
// Use HasFrequency to distinguish the two.
func (p *PopulationObservation) Frequency() float64 {
	if !p.HasFrequency() {
		return 0
	}
	return *p.AlleleFrequency
}

// HasCaseControl reports whether a case/control cohort was supplied.
func (p *PopulationObservation) HasCaseControl() bool {
	return p != nil && (p.CasesTotal > 0 || p.ControlsTotal > 0)
}

// Validate checks counts against their domains. Absence of data is
// fine; negative counts or frequencies outside [0,1] are not.
func (p *PopulationObservation) Validate() error {
	if p == nil {
		return nil
	}
	if p.AlleleFrequency != nil && (*p.AlleleFrequency < 0 || *p.AlleleFrequency > 1) {
		return &InvalidInputError{Field: "allele_frequency", Value: *p.AlleleFrequency}
	}
	for _, f := range p.SubpopFreqs {
		if f < 0 || f > 1 {
			return &InvalidInputError{Field: "subpopulation_frequency", Value: f}
		}
	}
	for field, n := range map[string]int{
		"cases_with_variant":    p.CasesWithVariant,
		"cases_total":           p.CasesTotal,
		"controls_with_variant": p.ControlsWithVariant,
		"controls_total":        p.ControlsTotal,
		"homozygote_count":      p.HomozygoteCount,
	} {
		if n < 0 {
			return &InvalidInputError{Field: field, Value: n}
		}
	}
	if p.DiseasePrevalence < 0 || p.DiseasePrevalence > 1 {
		return &InvalidInputError{Field: "disease_prevalence", Value: p.DiseasePrevalence}
	}
	return nil
}

// PredictorObservation is a sparse mapping from predictor name to raw
// score. Any subset of the recognized predictors may be present.
type PredictorObservation map[string]float64

// Score returns the raw score for a predictor and whether it was observed.
func (p PredictorObservation) Score(name string) (float64, bool) {
	s, ok := p[name]
	return s, ok
}

// DeNovoTier describes the level of parental confirmation behind a
// de novo observation.
type DeNovoTier string

const (
	DeNovoNone               DeNovoTier = "none"
	DeNovoAssumed            DeNovoTier = "assumed"
	DeNovoConfirmedOneParent DeNovoTier = "confirmed_one_parent"
	DeNovoConfirmedBoth      DeNovoTier = "confirmed_both_parents"
)

// FunctionalOutcome is the reported outcome of a functional study.
type FunctionalOutcome string

const (
	FunctionalNone           FunctionalOutcome = "not_available"
	FunctionalLossOfFunction FunctionalOutcome = "loss_of_function"
	FunctionalNormal         FunctionalOutcome = "normal_function"
	FunctionalSpliceAltered  FunctionalOutcome = "splicing_altered"
	FunctionalNMDTriggered   FunctionalOutcome = "nmd_triggered"
)

// PhenotypeMatch grades how specifically the proband's phenotype
// matches the gene's known disease presentation.
type PhenotypeMatch string

const (
	PhenotypeMatchNone     PhenotypeMatch = "none"
	PhenotypeMatchWeak     PhenotypeMatch = "weak"
	PhenotypeMatchModerate PhenotypeMatch = "moderate"
	PhenotypeMatchStrong   PhenotypeMatch = "strong"
)

// Family holds per-family segregation tallies.
type Family struct {
	AffectedWith    int // affected members carrying the variant
	AffectedTotal   int
	UnaffectedWith  int // unaffected members carrying the variant
	UnaffectedTotal int
}

// SecondVariant describes a qualifying second variant for the
// compound-heterozygosity rule.
type SecondVariant struct {
	Classification string // prior classification, e.g. "pathogenic"
	IsLOF          bool   // independently loss-of-function
}

// Qualifies reports whether the second variant supports compound het.
func (s *SecondVariant) Qualifies() bool {
	if s == nil {
		return false
	}
	switch s.Classification {
	case "pathogenic", "likely_pathogenic":
		return true
	}
	return s.IsLOF
}

// PedigreeObservation bundles family-level evidence: segregation
// tallies, de novo confirmation, functional-study outcome, and
// phenotype match.
type PedigreeObservation struct {
	Families       []Family
	DeNovo         DeNovoTier
	Functional     FunctionalOutcome
	Phenotype      PhenotypeMatch
	SecondVariant  *SecondVariant
	FamilyHistory  bool
}

// Validate checks tallies against their domains.
func (p *PedigreeObservation) Validate() error {
	if p == nil {
		return nil
	}
	for i, f := range p.Families {
		if f.AffectedWith < 0 || f.AffectedTotal < 0 || f.UnaffectedWith < 0 || f.UnaffectedTotal < 0 {
			return &InvalidInputError{Field: fmt.Sprintf("family[%d]", i), Value: f}
		}
		if f.AffectedWith > f.AffectedTotal || f.UnaffectedWith > f.UnaffectedTotal {
			return &InvalidInputError{Field: fmt.Sprintf("family[%d]", i), Value: f}
		}
	}
	switch p.DeNovo {
	case "", DeNovoNone, DeNovoAssumed, DeNovoConfirmedOneParent, DeNovoConfirmedBoth:
	default:
		return &InvalidInputError{Field: "de_novo", Value: string(p.DeNovo)}
	}
	return nil
}
