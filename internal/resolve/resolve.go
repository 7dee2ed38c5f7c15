// Package resolve looks up gene-level annotations and prior variant
// assertions from external knowledge sources. Lookups are behind
// interfaces so the evidence engine can run fully offline against
// static tables.
package resolve

import "context"

// Haploinsufficiency score values as curated by ClinGen dosage
// sensitivity review.
const (
	DosageUnknown       = -1
	DosageNoEvidence    = 0
	DosageMinimal       = 1
	DosageEmerging      = 2
	DosageSufficient    = 3
	DosageAutosomalRec  = 30
	DosageUnlikelyHaplo = 40
)

// GeneInfo is the gene-level annotation used to modulate
// loss-of-function evidence.
type GeneInfo struct {
	Symbol string
	// HaploinsufficiencyScore is a ClinGen dosage score, or
	// DosageUnknown when the gene has not been reviewed.
	HaploinsufficiencyScore int
	// LOFIntolerant is a fallback signal for genes without a dosage
	// review, from constraint-based gene lists.
	LOFIntolerant bool
	LOFTolerant   bool
}

// ClinVarAssertion summarizes prior submissions about a variant or its
// amino acid position.
type ClinVarAssertion struct {
	// Classification is the aggregate significance, lowercased, for
	// example "pathogenic" or "benign".
	Classification string
	// ReviewStars is the ClinVar review status expressed as stars.
	ReviewStars int
	// SameAminoAcidChange is set when a pathogenic assertion exists
	// for the identical protein change via a different nucleotide
	// substitution.
	SameAminoAcidChange bool
}

// Reputable reports whether the assertion carries enough review weight
// to be cited as evidence on its own.
func (a ClinVarAssertion) Reputable() bool {
	return a.ReviewStars >= 2
}

// GeneResolver resolves gene-level annotations.
type GeneResolver interface {
	ResolveGene(ctx context.Context, symbol string) (GeneInfo, error)
}

// ClinVarResolver resolves prior variant assertions.
type ClinVarResolver interface {
	ResolveVariant(ctx context.Context, variantID, hgvsp string) (*ClinVarAssertion, error)
}

// lofIntolerantGenes lists genes with strong constraint against
// loss-of-function variation, used when no dosage review exists.
var lofIntolerantGenes = map[string]bool{
	"BRCA1": true, "BRCA2": true, "TP53": true, "PTEN": true,
	"MLH1": true, "MSH2": true, "MSH6": true, "PMS2": true,
	"APC": true, "RB1": true, "NF1": true, "NF2": true,
	"VHL": true, "STK11": true, "CDH1": true, "PALB2": true,
	"DMD": true, "MECP2": true, "SCN1A": true, "CAMTA1": true,
}

// lofTolerantGenes lists genes where loss of one copy is routinely
// observed in healthy individuals.
var lofTolerantGenes = map[string]bool{
	"TTN": true, "MUC16": true, "OBSCN": true, "FLG": true,
	"CYP2D6": true, "ACTN3": true, "SIGLEC12": true,
}

// StaticGeneResolver serves gene annotations from built-in constraint
// lists without any network access.
type StaticGeneResolver struct{}

// ResolveGene returns constraint-list membership for the symbol. Genes
// on neither list come back with an unknown dosage score.
func (StaticGeneResolver) ResolveGene(_ context.Context, symbol string) (GeneInfo, error) {
	return GeneInfo{
		Symbol:                  symbol,
		HaploinsufficiencyScore: DosageUnknown,
		LOFIntolerant:           lofIntolerantGenes[symbol],
		LOFTolerant:             lofTolerantGenes[symbol],
	}, nil
}

// NoClinVar is a ClinVarResolver that never finds an assertion.
type NoClinVar struct{}

func (NoClinVar) ResolveVariant(_ context.Context, _, _ string) (*ClinVarAssertion, error) {
	return nil, nil
}
