// Package variant defines the data model for variant classification:
// the variant itself, the observation types collected at intake, and
// the evidence codes and classification result derived from them.
package variant

import (
	"fmt"
	"regexp"
	"strings"
)

// Consequence is the predicted effect category of a variant.
type Consequence string

// Recognized consequence categories.
const (
	ConsequenceMissense       Consequence = "missense"
	ConsequenceNonsense       Consequence = "nonsense"
	ConsequenceFrameshift     Consequence = "frameshift"
	ConsequenceSpliceDonor    Consequence = "splice_donor"
	ConsequenceSpliceAcceptor Consequence = "splice_acceptor"
	ConsequenceStartLost      Consequence = "start_lost"
	ConsequenceStopLost       Consequence = "stop_lost"
	ConsequenceSynonymous     Consequence = "synonymous"
	ConsequenceIntronic       Consequence = "intronic"
	ConsequenceInframeIndel   Consequence = "inframe_indel"
	ConsequenceRegulatory     Consequence = "regulatory"
)

var knownConsequences = map[Consequence]bool{
	ConsequenceMissense:       true,
	ConsequenceNonsense:       true,
	ConsequenceFrameshift:     true,
	ConsequenceSpliceDonor:    true,
	ConsequenceSpliceAcceptor: true,
	ConsequenceStartLost:      true,
	ConsequenceStopLost:       true,
	ConsequenceSynonymous:     true,
	ConsequenceIntronic:       true,
	ConsequenceInframeIndel:   true,
	ConsequenceRegulatory:     true,
}

// IsLossOfFunction reports whether the consequence is presumed to
// abolish gene product function.
func (c Consequence) IsLossOfFunction() bool {
	switch c {
	case ConsequenceNonsense, ConsequenceFrameshift,
		ConsequenceSpliceDonor, ConsequenceSpliceAcceptor,
		ConsequenceStartLost:
		return true
	}
	return false
}

// Inheritance is the reported inheritance pattern for the condition.
type Inheritance string

const (
	InheritanceAutosomalDominant  Inheritance = "autosomal_dominant"
	InheritanceAutosomalRecessive Inheritance = "autosomal_recessive"
	InheritanceXLinked            Inheritance = "x_linked"
	InheritanceUnknown            Inheritance = "unknown"
)

// Zygosity of the variant in the proband.
type Zygosity string

const (
	ZygosityHeterozygous Zygosity = "heterozygous"
	ZygosityHomozygous   Zygosity = "homozygous"
	ZygosityHemizygous   Zygosity = "hemizygous"
	ZygosityUnknown      Zygosity = "unknown"
)

var alleleRe = regexp.MustCompile(`^[ACGT]+$`)

// Variant identifies a single genetic sequence variant. Immutable;
// created once per run at intake via New.
type Variant struct {
	Gene        string
	Chromosome  string
	Position    int64
	Ref         string
	Alt         string
	HGVSc       string // coding change, e.g. "c.1066C>T"
	HGVSp       string // protein change, e.g. "p.Gln356Ter"
	Consequence Consequence
	Zygosity    Zygosity
	Inheritance Inheritance
}

// InvalidInputError reports a value outside its declared domain. The
// run is refused before any rule executes when intake carries one.
type InvalidInputError struct {
	Field string
	Value any
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s = %v", e.Field, e.Value)
}

// New validates and constructs a Variant. Optional fields (HGVSc,
// HGVSp) may be empty; everything else is checked against its domain.
func New(gene, chrom string, pos int64, ref, alt string, cons Consequence) (*Variant, error) {
	gene = strings.ToUpper(strings.TrimSpace(gene))
	if gene == "" {
		return nil, &InvalidInputError{Field: "gene", Value: gene}
	}
	if pos <= 0 {
		return nil, &InvalidInputError{Field: "position", Value: pos}
	}
	ref = strings.ToUpper(ref)
	alt = strings.ToUpper(alt)
	if !alleleRe.MatchString(ref) {
		return nil, &InvalidInputError{Field: "ref_allele", Value: ref}
	}
	if !alleleRe.MatchString(alt) {
		return nil, &InvalidInputError{Field: "alt_allele", Value: alt}
	}
	if !knownConsequences[cons] {
		return nil, &InvalidInputError{Field: "consequence", Value: string(cons)}
	}
	return &Variant{
		Gene:        gene,
		Chromosome:  normalizeChrom(chrom),
		Position:    pos,
		Ref:         ref,
		Alt:         alt,
		Consequence: cons,
		Zygosity:    ZygosityUnknown,
		Inheritance: InheritanceUnknown,
	}, nil
}

// ID returns the normalized variant identifier used as the external
// lookup key, e.g. "GRCh38:17-43093464-C-T".
func (v *Variant) ID() string {
	return fmt.Sprintf("GRCh38:%s-%d-%s-%s", v.Chromosome, v.Position, v.Ref, v.Alt)
}

// IsSNV reports whether the variant is a single nucleotide variant.
func (v *Variant) IsSNV() bool {
	return len(v.Ref) == 1 && len(v.Alt) == 1
}

func normalizeChrom(chrom string) string {
	chrom = strings.TrimSpace(chrom)
	if len(chrom) > 3 && strings.EqualFold(chrom[:3], "chr") {
		chrom = chrom[3:]
	}
	return strings.ToUpper(chrom)
}
