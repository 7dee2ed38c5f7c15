package variant

// Strength is the discrete evidence strength tier attached to a code.
type Strength string

// Pathogenic-side tiers, strongest first, then benign-side tiers.
const (
	StrengthVeryStrong Strength = "very_strong"
	StrengthStrong     Strength = "strong"
	StrengthModerate   Strength = "moderate"
	StrengthSupporting Strength = "supporting"

	StrengthStandAlone       Strength = "stand_alone"
	StrengthBenignStrong     Strength = "benign_strong"
	StrengthBenignSupporting Strength = "benign_supporting"
)

// IsBenign reports whether the tier sits on the benign side.
func (s Strength) IsBenign() bool {
	switch s {
	case StrengthStandAlone, StrengthBenignStrong, StrengthBenignSupporting:
		return true
	}
	return false
}

// CodeTag is the fixed-vocabulary evidence criterion identifier.
type CodeTag string

// ACMG/AMP evidence criterion tags used by the assignment engine.
const (
	TagPVS1 CodeTag = "PVS1"
	TagPS1  CodeTag = "PS1"
	TagPS2  CodeTag = "PS2"
	TagPS3  CodeTag = "PS3"
	TagPS4  CodeTag = "PS4"
	TagPM2  CodeTag = "PM2"
	TagPM3  CodeTag = "PM3"
	TagPM6  CodeTag = "PM6"
	TagPP1  CodeTag = "PP1"
	TagPP3  CodeTag = "PP3"
	TagPP4  CodeTag = "PP4"
	TagPP5  CodeTag = "PP5"
	TagBA1  CodeTag = "BA1"
	TagBS1  CodeTag = "BS1"
	TagBS2  CodeTag = "BS2"
	TagBS3  CodeTag = "BS3"
	TagBS4  CodeTag = "BS4"
	TagBP4  CodeTag = "BP4"
	TagBP6  CodeTag = "BP6"
)

// EvidenceCode is an assigned criterion with its strength tier and a
// human-readable justification. Produced by exactly one evaluator and
// never mutated.
type EvidenceCode struct {
	Tag           CodeTag
	Strength      Strength
	Justification string
}

// EvidenceSet accumulates evidence codes append-only. Codes of
// different tags coexist; a duplicate of an already-present tag is
// dropped, so no rule can strengthen or weaken another rule's code.
type EvidenceSet struct {
	codes []EvidenceCode
	seen  map[CodeTag]bool
}

// NewEvidenceSet returns an empty set.
func NewEvidenceSet() *EvidenceSet {
	return &EvidenceSet{seen: make(map[CodeTag]bool)}
}

// Add appends a code unless its tag is already present.
// Reports whether the code was added.
func (s *EvidenceSet) Add(c EvidenceCode) bool {
	if s.seen[c.Tag] {
		return false
	}
	s.seen[c.Tag] = true
	s.codes = append(s.codes, c)
	return true
}

// Has reports whether a code with the given tag is present.
func (s *EvidenceSet) Has(tag CodeTag) bool {
	return s.seen[tag]
}

// Codes returns the accumulated codes in assignment order.
func (s *EvidenceSet) Codes() []EvidenceCode {
	out := make([]EvidenceCode, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len returns the number of distinct codes in the set.
func (s *EvidenceSet) Len() int {
	return len(s.codes)
}

// Guideline selects which rule-set version governs a run.
type Guideline string

const (
	Guideline2015 Guideline = "2015"
	Guideline2023 Guideline = "2023"
)

// Label is the five-level classification outcome.
type Label string

const (
	LabelPathogenic       Label = "Pathogenic"
	LabelLikelyPathogenic Label = "Likely Pathogenic"
	LabelUncertain        Label = "Uncertain Significance"
	LabelLikelyBenign     Label = "Likely Benign"
	LabelBenign           Label = "Benign"
)

// ClassificationResult is the terminal artifact of a run. The label is
// derivable solely from the strength-tier counts of Codes under the
// declared guideline version.
type ClassificationResult struct {
	RunID     string
	Label     Label
	Guideline Guideline
	Codes     []EvidenceCode

	// Indeterminate retains, for audit, the reasons any statistical
	// test could not be computed. Never affects the label.
	Indeterminate []string
}
