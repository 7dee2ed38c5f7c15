package evidence

import (
	"context"
	"fmt"

	"github.com/inodb/vibe-acmg/internal/stats"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// familyRule assigns the de novo ladder (PS2/PM6) and cosegregation
// codes (PP1/BS4) from pedigree observations.
type familyRule struct{}

func (familyRule) Name() string { return "family" }

func (familyRule) Apply(_ context.Context, in Input, out *Collector) error {
	ped := in.Pedigree
	if ped == nil {
		return nil
	}
	applyDeNovo(ped, in.Guideline, out)
	applySegregation(ped.Families, in.Guideline, out)
	return nil
}

// applyDeNovo maps parental confirmation to code strength. Confirmed
// parentage earns PS2, assumed parentage only PM6, and an assumed de
// novo claim is not credited when the family history is positive. The
// 2023 revision upgrades both-parents-confirmed de novo to very
// strong.
func applyDeNovo(ped *variant.PedigreeObservation, g variant.Guideline, out *Collector) {
	switch ped.DeNovo {
	case variant.DeNovoConfirmedBoth:
		strength := variant.StrengthStrong
		if g == variant.Guideline2023 {
			strength = variant.StrengthVeryStrong
		}
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPS2,
			Strength:      strength,
			Justification: "de novo with maternity and paternity confirmed",
		})
	case variant.DeNovoConfirmedOneParent:
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPS2,
			Strength:      variant.StrengthStrong,
			Justification: "de novo with one parent confirmed",
		})
	case variant.DeNovoAssumed:
		if ped.FamilyHistory {
			out.Note("assumed de novo not credited: positive family history")
			return
		}
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPM6,
			Strength:      variant.StrengthModerate,
			Justification: "assumed de novo without parental confirmation",
		})
	}
}

// applySegregation bands the aggregated LOD score. The 2015 revision
// knows supporting and strong pathogenic bands; 2023 adds a moderate
// band and moves the benign boundary outward.
func applySegregation(families []variant.Family, g variant.Guideline, out *Collector) {
	res := stats.CosegregationLOD(families)
	if res.Indeterminate {
		if len(families) > 0 {
			out.Note("cosegregation: " + res.Reason)
		}
		return
	}

	var strength variant.Strength
	if g == variant.Guideline2023 {
		switch {
		case res.Score >= 5.0:
			strength = variant.StrengthStrong
		case res.Score >= 3.0:
			strength = variant.StrengthModerate
		case res.Score >= 1.5:
			strength = variant.StrengthSupporting
		case res.Score <= -2.0:
			strength = variant.StrengthBenignStrong
		}
	} else {
		switch {
		case res.Score >= 3.0:
			strength = variant.StrengthStrong
		case res.Score >= 1.5:
			strength = variant.StrengthSupporting
		case res.Score <= -1.5:
			strength = variant.StrengthBenignStrong
		}
	}
	if strength == "" {
		return
	}
	just := fmt.Sprintf("LOD %.2f across %d families", res.Score, res.Families)
	if strength.IsBenign() {
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagBS4,
			Strength:      strength,
			Justification: "lack of segregation in affected family members, " + just,
		})
		return
	}
	out.Set.Add(variant.EvidenceCode{
		Tag:           variant.TagPP1,
		Strength:      strength,
		Justification: "cosegregation with disease, " + just,
	})
}
