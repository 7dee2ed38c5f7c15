package evidence

import (
	"context"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// functionalRule assigns PS3 or BS3 from well-established functional
// assay outcomes. Each damaging outcome category must match the
// variant class it tests: splicing assays speak to splice-region and
// intronic variants, NMD assays to truncating variants, and protein
// activity assays to everything else.
type functionalRule struct{}

func (functionalRule) Name() string { return "functional" }

func spliceAssayClass(c variant.Consequence) bool {
	return c == variant.ConsequenceSpliceDonor ||
		c == variant.ConsequenceSpliceAcceptor ||
		c == variant.ConsequenceIntronic
}

func nmdAssayClass(c variant.Consequence) bool {
	return c == variant.ConsequenceNonsense || c == variant.ConsequenceFrameshift
}

func (functionalRule) Apply(_ context.Context, in Input, out *Collector) error {
	if in.Pedigree == nil {
		return nil
	}
	cons := in.Variant.Consequence
	switch f := in.Pedigree.Functional; f {
	case variant.FunctionalLossOfFunction, variant.FunctionalSpliceAltered, variant.FunctionalNMDTriggered:
		if (f == variant.FunctionalSpliceAltered && !spliceAssayClass(cons)) ||
			(f == variant.FunctionalNMDTriggered && !nmdAssayClass(cons)) ||
			(f == variant.FunctionalLossOfFunction && (spliceAssayClass(cons) || nmdAssayClass(cons))) {
			out.Note("functional assay category " + string(f) + " does not apply to a " + string(cons) + " variant")
			return nil
		}
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPS3,
			Strength:      variant.StrengthStrong,
			Justification: "functional assay shows a damaging effect (" + string(f) + ")",
		})
	case variant.FunctionalNormal:
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagBS3,
			Strength:      variant.StrengthBenignStrong,
			Justification: "functional assay shows no damaging effect",
		})
	}
	return nil
}

// phenotypeRule assigns PP4 when the patient phenotype is highly
// specific for a disease with a single genetic etiology.
type phenotypeRule struct{}

func (phenotypeRule) Name() string { return "phenotype" }

func (phenotypeRule) Apply(_ context.Context, in Input, out *Collector) error {
	if in.Pedigree == nil {
		return nil
	}
	switch in.Pedigree.Phenotype {
	case variant.PhenotypeMatchStrong:
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPP4,
			Strength:      variant.StrengthSupporting,
			Justification: "phenotype highly specific for disease caused by this gene",
		})
	case variant.PhenotypeMatchModerate:
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPP4,
			Strength:      variant.StrengthSupporting,
			Justification: "phenotype partially specific for disease caused by this gene",
		})
	}
	return nil
}

// compoundHetRule assigns PM3 for a recessive variant observed in
// trans with a qualifying pathogenic allele.
type compoundHetRule struct{}

func (compoundHetRule) Name() string { return "compound_het" }

func (compoundHetRule) Apply(_ context.Context, in Input, out *Collector) error {
	if in.Pedigree == nil || in.Pedigree.SecondVariant == nil {
		return nil
	}
	if in.Variant.Inheritance != variant.InheritanceAutosomalRecessive ||
		in.Variant.Zygosity != variant.ZygosityHeterozygous {
		return nil
	}
	if in.Pedigree.SecondVariant.Qualifies() {
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPM3,
			Strength:      variant.StrengthModerate,
			Justification: "detected in trans with a pathogenic variant in a recessive gene",
		})
	}
	return nil
}
