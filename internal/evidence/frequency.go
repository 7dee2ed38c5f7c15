package evidence

import (
	"context"
	"fmt"

	"github.com/inodb/vibe-acmg/internal/stats"
	"github.com/inodb/vibe-acmg/internal/variant"
)

// freqThresholds are the gene-specific allele frequency cutoffs.
type freqThresholds struct {
	ba1 float64
	bs1 float64
	pm2 float64
}

var defaultFreq = freqThresholds{ba1: 0.05, bs1: 0.01, pm2: 0.0001}

// geneFreq overrides cutoffs for genes with unusually high benign
// variation or strong founder effects.
var geneFreq = map[string]freqThresholds{
	"BRCA1": {ba1: 0.05, bs1: 0.01, pm2: 0.0001},
	"BRCA2": {ba1: 0.05, bs1: 0.01, pm2: 0.0001},
	"TTN":   {ba1: 0.1, bs1: 0.05, pm2: 0.001},
	"MUC16": {ba1: 0.1, bs1: 0.05, pm2: 0.001},
	"OBSCN": {ba1: 0.1, bs1: 0.05, pm2: 0.001},
}

func freqFor(gene string) freqThresholds {
	if t, ok := geneFreq[gene]; ok {
		return t
	}
	return defaultFreq
}

// frequencyRule assigns BA1, BS1, BS2, and PM2 from population
// frequency data. Absence from population databases is weak rarity
// evidence, not benign evidence.
type frequencyRule struct{}

func (frequencyRule) Name() string { return "frequency" }

func (frequencyRule) Apply(_ context.Context, in Input, out *Collector) error {
	pop := in.Population
	if pop == nil {
		return nil
	}
	t := freqFor(in.Variant.Gene)

	if !pop.HasFrequency() {
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPM2,
			Strength:      StrengthForTag(variant.TagPM2),
			Justification: "absent from population databases",
		})
		return nil
	}
	af := pop.Frequency()

	switch {
	case af >= t.ba1:
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagBA1,
			Strength:      variant.StrengthStandAlone,
			Justification: fmt.Sprintf("allele frequency %.4g at or above stand-alone cutoff %.4g", af, t.ba1),
		})
	case af >= t.bs1 && pop.DiseasePrevalence > 0:
		// Without a known prevalence there is no "greater than
		// expected for the disorder" to claim.
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagBS1,
			Strength:      variant.StrengthBenignStrong,
			Justification: fmt.Sprintf("allele frequency %.4g above expected for the disorder (cutoff %.4g)", af, t.bs1),
		})
	case af <= t.pm2:
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagPM2,
			Strength:      variant.StrengthModerate,
			Justification: fmt.Sprintf("allele frequency %.4g at or below rarity cutoff %.4g", af, t.pm2),
		})
	default:
		// Rare but not ultra-rare: when the overall frequency is
		// carried by a single subpopulation the variant is still
		// effectively absent elsewhere.
		res := stats.SubpopulationOutlier(pop.SubpopFreqs)
		if res.Indeterminate {
			out.Note("population outlier: " + res.Reason)
		} else if res.IsOutlier && af <= 10*t.pm2 {
			out.Set.Add(variant.EvidenceCode{
				Tag:           variant.TagPM2,
				Strength:      variant.StrengthModerate,
				Justification: fmt.Sprintf("allele frequency %.4g concentrated in one subpopulation (z %.2f)", af, res.ZScore),
			})
		}
	}

	// Healthy homozygotes for a severe dominant or recessive disorder
	// argue against pathogenicity.
	if pop.HomozygoteCount >= 5 &&
		in.Variant.Inheritance != "" && in.Variant.Inheritance != variant.InheritanceUnknown {
		out.Set.Add(variant.EvidenceCode{
			Tag:           variant.TagBS2,
			Strength:      variant.StrengthBenignStrong,
			Justification: fmt.Sprintf("%d homozygotes observed in population databases", pop.HomozygoteCount),
		})
	}
	return nil
}

// StrengthForTag returns the default strength tier a tag carries when
// no modulation applies.
func StrengthForTag(tag variant.CodeTag) variant.Strength {
	switch tag {
	case variant.TagPVS1:
		return variant.StrengthVeryStrong
	case variant.TagPS1, variant.TagPS2, variant.TagPS3, variant.TagPS4:
		return variant.StrengthStrong
	case variant.TagPM2, variant.TagPM3, variant.TagPM6:
		return variant.StrengthModerate
	case variant.TagPP1, variant.TagPP3, variant.TagPP4, variant.TagPP5:
		return variant.StrengthSupporting
	case variant.TagBA1:
		return variant.StrengthStandAlone
	case variant.TagBS1, variant.TagBS2, variant.TagBS3, variant.TagBS4:
		return variant.StrengthBenignStrong
	case variant.TagBP4, variant.TagBP6:
		return variant.StrengthBenignSupporting
	}
	return variant.StrengthSupporting
}
