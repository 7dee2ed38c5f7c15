package evidence

import (
	"context"
	"fmt"

	"github.com/inodb/vibe-acmg/internal/stats"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// Odds ratio floors for calling case enrichment, by guideline
// revision. The later revision demands stronger enrichment.
const (
	orMin2015 = 2.0
	orMin2023 = 5.0
)

const enrichmentAlpha = 0.05

// caseControlRule assigns PS4 when the variant is significantly
// enriched in affected individuals over controls, or BS1 when the
// enrichment runs the other way.
type caseControlRule struct{}

func (caseControlRule) Name() string { return "case_control" }

func (caseControlRule) Apply(_ context.Context, in Input, out *Collector) error {
	pop := in.Population
	if pop == nil || !pop.HasCaseControl() {
		return nil
	}
	res := stats.FisherExactGreater(pop.CasesWithVariant, pop.CasesTotal, pop.ControlsWithVariant, pop.ControlsTotal)
	if res.Indeterminate {
		out.Note("case-control test: " + res.Reason)
		return nil
	}
	orMin := orMin2015
	if in.Guideline == variant.Guideline2023 {
		orMin = orMin2023
	}
	if res.PValue < enrichmentAlpha && res.OddsRatio >= orMin {
		out.Set.Add(variant.EvidenceCode{
			Tag:      variant.TagPS4,
			Strength: variant.StrengthStrong,
			Justification: fmt.Sprintf("enriched in cases (OR %.2f, p %.3g, %d/%d cases vs %d/%d controls)",
				res.OddsRatio, res.PValue, pop.CasesWithVariant, pop.CasesTotal,
				pop.ControlsWithVariant, pop.ControlsTotal),
		})
		return nil
	}

	// Reverse direction: significantly more common among controls.
	rev := stats.FisherExactGreater(pop.ControlsWithVariant, pop.ControlsTotal, pop.CasesWithVariant, pop.CasesTotal)
	if !rev.Indeterminate && rev.PValue < enrichmentAlpha && rev.OddsRatio >= orMin2015 {
		out.Set.Add(variant.EvidenceCode{
			Tag:      variant.TagBS1,
			Strength: variant.StrengthBenignStrong,
			Justification: fmt.Sprintf("enriched in controls (OR %.2f, p %.3g, %d/%d controls vs %d/%d cases)",
				rev.OddsRatio, rev.PValue, pop.ControlsWithVariant, pop.ControlsTotal,
				pop.CasesWithVariant, pop.CasesTotal),
		})
	}
	return nil
}
