package evidence

import (
	"context"
	"fmt"

	"github.com/inodb/vibe-acmg/internal/variant"
)

// clinvarRule assigns PS1 when the variant, or a different nucleotide
// change producing the same amino acid substitution, is an established
// pathogenic variant with multi-submitter review. Reputable-source
// codes (PP5/BP6) repeat other submitters' conclusions and stay behind
// an opt-in.
type clinvarRule struct {
	reputable bool
}

func (clinvarRule) Name() string { return "clinvar" }

func (r clinvarRule) Apply(_ context.Context, in Input, out *Collector) error {
	a := in.ClinVar
	if a == nil {
		return nil
	}
	if a.Classification == "pathogenic" && a.Reputable() {
		just := fmt.Sprintf("established pathogenic by multiple submitters (%d-star review)", a.ReviewStars)
		if a.SameAminoAcidChange {
			just = fmt.Sprintf("same amino acid change as an established pathogenic variant (%d-star review)", a.ReviewStars)
		}
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPS1,
			Strength:      variant.StrengthStrong,
			Justification: just,
		})
	}
	if !r.reputable || !a.Reputable() {
		return nil
	}
	switch a.Classification {
	case "pathogenic", "likely_pathogenic":
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPP5,
			Strength:      variant.StrengthSupporting,
			Justification: fmt.Sprintf("reported %s by a reputable source", a.Classification),
		})
	case "benign", "likely_benign":
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagBP6,
			Strength:      variant.StrengthBenignSupporting,
			Justification: fmt.Sprintf("reported %s by a reputable source", a.Classification),
		})
	}
	return nil
}
