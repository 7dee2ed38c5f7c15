// Package classify combines assigned evidence codes into a five-level
// classification using ordered combining tables. Benign combinations
// are checked before pathogenic ones, and a variant matching nothing
// stays of uncertain significance.
package classify

import "github.com/inodb/vibe-acmg/internal/variant"

// Tally counts evidence codes by strength tier. The label is a pure
// function of the tally.
type Tally struct {
	VeryStrong int
	Strong     int
	Moderate   int
	Supporting int

	StandAlone       int
	BenignStrong     int
	BenignSupporting int
}

// Count tallies a code list.
func Count(codes []variant.EvidenceCode) Tally {
	var t Tally
	for _, c := range codes {
		switch c.Strength {
		case variant.StrengthVeryStrong:
			t.VeryStrong++
		case variant.StrengthStrong:
			t.Strong++
		case variant.StrengthModerate:
			t.Moderate++
		case variant.StrengthSupporting:
			t.Supporting++
		case variant.StrengthStandAlone:
			t.StandAlone++
		case variant.StrengthBenignStrong:
			t.BenignStrong++
		case variant.StrengthBenignSupporting:
			t.BenignSupporting++
		}
	}
	return t
}

// combo is one row of a combining table: minimum tier counts that
// together produce the label.
type combo struct {
	label variant.Label

	standAlone       int
	benignStrong     int
	benignSupporting int

	veryStrong int
	strong     int
	moderate   int
	supporting int
}

func (c combo) matches(t Tally) bool {
	return t.StandAlone >= c.standAlone &&
		t.BenignStrong >= c.benignStrong &&
		t.BenignSupporting >= c.benignSupporting &&
		t.VeryStrong >= c.veryStrong &&
		t.Strong >= c.strong &&
		t.Moderate >= c.moderate &&
		t.Supporting >= c.supporting
}

// benignTable is shared by both guideline revisions. Checked first so
// common variants never classify pathogenic on conflicting evidence.
var benignTable = []combo{
	{label: variant.LabelBenign, standAlone: 1},
	{label: variant.LabelBenign, benignStrong: 2},
	{label: variant.LabelLikelyBenign, benignStrong: 1, benignSupporting: 1},
	{label: variant.LabelLikelyBenign, benignSupporting: 2},
}

// pathogenicTable2015 lists pathogenic then likely pathogenic
// combinations of the 2015 guideline, strongest first.
var pathogenicTable2015 = []combo{
	{label: variant.LabelPathogenic, veryStrong: 1, strong: 1},
	{label: variant.LabelPathogenic, veryStrong: 1, moderate: 2},
	{label: variant.LabelPathogenic, veryStrong: 1, moderate: 1, supporting: 1},
	{label: variant.LabelPathogenic, veryStrong: 1, supporting: 2},
	{label: variant.LabelPathogenic, strong: 2},
	{label: variant.LabelPathogenic, strong: 1, moderate: 3},
	{label: variant.LabelPathogenic, strong: 1, moderate: 2, supporting: 2},
	{label: variant.LabelPathogenic, strong: 1, moderate: 1, supporting: 4},
	{label: variant.LabelPathogenic, moderate: 4},

	{label: variant.LabelLikelyPathogenic, veryStrong: 1, moderate: 1},
	{label: variant.LabelLikelyPathogenic, strong: 1, moderate: 1},
	{label: variant.LabelLikelyPathogenic, strong: 1, supporting: 2},
	{label: variant.LabelLikelyPathogenic, moderate: 3},
	{label: variant.LabelLikelyPathogenic, moderate: 2, supporting: 2},
	{label: variant.LabelLikelyPathogenic, moderate: 1, supporting: 4},
}

// pathogenicTable2023 differs from 2015 in one row: very strong plus a
// single moderate now reaches Pathogenic outright.
var pathogenicTable2023 = []combo{
	{label: variant.LabelPathogenic, veryStrong: 1, strong: 1},
	{label: variant.LabelPathogenic, veryStrong: 1, moderate: 1},
	{label: variant.LabelPathogenic, veryStrong: 1, supporting: 2},
	{label: variant.LabelPathogenic, strong: 2},
	{label: variant.LabelPathogenic, strong: 1, moderate: 3},
	{label: variant.LabelPathogenic, strong: 1, moderate: 2, supporting: 2},
	{label: variant.LabelPathogenic, strong: 1, moderate: 1, supporting: 4},
	{label: variant.LabelPathogenic, moderate: 4},

	{label: variant.LabelLikelyPathogenic, strong: 1, moderate: 1},
	{label: variant.LabelLikelyPathogenic, strong: 1, supporting: 2},
	{label: variant.LabelLikelyPathogenic, moderate: 3},
	{label: variant.LabelLikelyPathogenic, moderate: 2, supporting: 2},
	{label: variant.LabelLikelyPathogenic, moderate: 1, supporting: 4},
}

// Classify derives the label for a set of evidence codes under the
// given guideline revision.
func Classify(codes []variant.EvidenceCode, g variant.Guideline) variant.Label {
	t := Count(codes)
	for _, c := range benignTable {
		if c.matches(t) {
			return c.label
		}
	}
	table := pathogenicTable2015
	if g == variant.Guideline2023 {
		table = pathogenicTable2023
	}
	for _, c := range table {
		if c.matches(t) {
			return c.label
		}
	}
	return variant.LabelUncertain
}
