package evidence

import (
	"context"
	"fmt"

	"github.com/inodb/vibe-acmg/internal/resolve"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// consequenceRule assigns PVS1 for loss-of-function consequences,
// modulated by the gene's dosage sensitivity. Null variants in genes
// where loss of function is not a disease mechanism get nothing.
type consequenceRule struct{}

func (consequenceRule) Name() string { return "consequence" }

func (consequenceRule) Apply(_ context.Context, in Input, out *Collector) error {
	if !in.Variant.Consequence.IsLossOfFunction() {
		return nil
	}
	strength, why, ok := lofStrength(in.Gene)
	if !ok {
		out.Note("loss-of-function code suppressed: " + why)
		return nil
	}
	out.Set.Add(variant.EvidenceCode{
		Tag:           variant.TagPVS1,
		Strength:      strength,
		Justification: fmt.Sprintf("%s variant, %s", in.Variant.Consequence, why),
	})
	return nil
}

// lofStrength maps the gene's haploinsufficiency score to a PVS1
// tier. A gene without a dosage review falls back to constraint
// lists; a gene on neither list is treated conservatively and the
// code is suppressed.
func lofStrength(g resolve.GeneInfo) (variant.Strength, string, bool) {
	switch g.HaploinsufficiencyScore {
	case resolve.DosageSufficient:
		return variant.StrengthVeryStrong, "gene with sufficient haploinsufficiency evidence", true
	case resolve.DosageEmerging:
		return variant.StrengthStrong, "gene with emerging haploinsufficiency evidence", true
	case resolve.DosageMinimal:
		return variant.StrengthModerate, "gene with minimal haploinsufficiency evidence", true
	case resolve.DosageNoEvidence, resolve.DosageUnlikelyHaplo:
		return "", "gene unlikely to be haploinsufficient", false
	}
	if g.LOFIntolerant {
		return variant.StrengthVeryStrong, "loss-of-function intolerant gene", true
	}
	if g.LOFTolerant {
		return "", "loss-of-function tolerant gene", false
	}
	return "", "gene dosage sensitivity unknown", false
}
