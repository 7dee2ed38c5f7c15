package evidence

import (
	"context"
	"fmt"

	"github.com/inodb/vibe-acmg/internal/metascore"
	"github.com/inodb/vibe-acmg/internal/predictor"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// computationalRule assigns PP3 or BP4 from the weighted metascore and
// the individual predictor consensus. At most one of the two codes can
// come out of a run.
type computationalRule struct{}

func (computationalRule) Name() string { return "computational" }

func (computationalRule) Apply(_ context.Context, in Input, out *Collector) error {
	if len(in.Predictors) == 0 {
		return nil
	}
	res := metascore.Compute(in.Variant.Gene, in.Variant.Consequence, in.Predictors)
	if !res.OK {
		out.Note("computational evidence: no weighted predictor scores available")
		return nil
	}
	var af *float64
	if in.Population != nil && in.Population.HasFrequency() {
		f := in.Population.Frequency()
		af = &f
	}
	t := metascore.ThresholdsFor(af, in.Variant.Consequence)
	damaging, benign := predictor.ConsensusVote(in.Predictors)

	verdict := metascore.Evaluate(res.Score, t, damaging, benign)
	switch {
	case verdict == metascore.VerdictPathogenic || damaging >= metascore.ConsensusMin:
		// A broad damaging consensus carries weight even when the
		// weighted metascore disagrees.
		out.Set.Add(variant.EvidenceCode{
			Tag:      variant.TagPP3,
			Strength: variant.StrengthSupporting,
			Justification: fmt.Sprintf("metascore %.3f over %d predictors with %d damaging calls supports a deleterious effect",
				res.Score, len(res.PredictorsUsed), damaging),
		})
	case verdict == metascore.VerdictBenign:
		out.Set.Add(variant.EvidenceCode{
			Tag:      variant.TagBP4,
			Strength: variant.StrengthBenignSupporting,
			Justification: fmt.Sprintf("metascore %.3f over %d predictors suggests no impact (%d benign calls)",
				res.Score, len(res.PredictorsUsed), benign),
		})
	}
	return nil
}
