package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name    string
		gene    string
		chrom   string
		pos     int64
		ref     string
		alt     string
		cons    Consequence
		wantErr bool
	}{
		{
			name:  "valid missense",
			gene:  "BRCA1",
			chrom: "17",
			pos:   43094464,
			ref:   "G",
			alt:   "A",
			cons:  ConsequenceMissense,
		},
		{
			name:  "chr prefix accepted",
			gene:  "TP53",
			chrom: "chr17",
			pos:   7675088,
			ref:   "C",
			alt:   "T",
			cons:  ConsequenceNonsense,
		},
		{
			name:    "empty gene",
			gene:    "",
			chrom:   "17",
			pos:     100,
			ref:     "A",
			alt:     "T",
			cons:    ConsequenceMissense,
			wantErr: true,
		},
		{
			name:    "zero position",
			gene:    "BRCA1",
			chrom:   "17",
			pos:     0,
			ref:     "A",
			alt:     "T",
			cons:    ConsequenceMissense,
			wantErr: true,
		},
		{
			name:    "invalid allele characters",
			gene:    "BRCA1",
			chrom:   "17",
			pos:     100,
			ref:     "N",
			alt:     "T",
			cons:    ConsequenceMissense,
			wantErr: true,
		},
		{
			name:    "unknown consequence",
			gene:    "BRCA1",
			chrom:   "17",
			pos:     100,
			ref:     "A",
			alt:     "T",
			cons:    Consequence("garbage"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(tt.gene, tt.chrom, tt.pos, tt.ref, tt.alt, tt.cons)
			if tt.wantErr {
				require.Error(t, err)
				var inv *InvalidInputError
				assert.ErrorAs(t, err, &inv)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, v)
		})
	}
}

func TestVariantID(t *testing.T) {
	v, err := New("brca1", "chr17", 43094464, "G", "A", ConsequenceMissense)
	require.NoError(t, err)

	assert.Equal(t, "BRCA1", v.Gene)
	assert.Equal(t, "GRCh38:17-43094464-G-A", v.ID())
	assert.True(t, v.IsSNV())
}

func TestIsLossOfFunction(t *testing.T) {
	lof := []Consequence{
		ConsequenceNonsense,
		ConsequenceFrameshift,
		ConsequenceSpliceDonor,
		ConsequenceSpliceAcceptor,
		ConsequenceStartLost,
	}
	for _, c := range lof {
		assert.True(t, c.IsLossOfFunction(), string(c))
	}

	notLOF := []Consequence{
		ConsequenceMissense,
		ConsequenceSynonymous,
		ConsequenceIntronic,
		ConsequenceInframeIndel,
		ConsequenceStopLost,
	}
	for _, c := range notLOF {
		assert.False(t, c.IsLossOfFunction(), string(c))
	}
}

func TestPopulationObservationValidate(t *testing.T) {
	freq := func(f float64) *float64 { return &f }

	valid := &PopulationObservation{AlleleFrequency: freq(0.001)}
	assert.NoError(t, valid.Validate())

	outOfRange := &PopulationObservation{AlleleFrequency: freq(1.5)}
	assert.Error(t, outOfRange.Validate())

	negativeCount := &PopulationObservation{CasesWithVariant: -1}
	assert.Error(t, negativeCount.Validate())

	badSubpop := &PopulationObservation{SubpopFreqs: []float64{0.1, 1.2}}
	assert.Error(t, badSubpop.Validate())
}

func TestAbsentFrequencyIsNotZero(t *testing.T) {
	absent := &PopulationObservation{}
	assert.False(t, absent.HasFrequency())

	zero := 0.0
	observedZero := &PopulationObservation{AlleleFrequency: &zero}
	assert.True(t, observedZero.HasFrequency())
	assert.Equal(t, 0.0, observedZero.Frequency())
}

func TestPedigreeObservationValidate(t *testing.T) {
	ok := &PedigreeObservation{
		Families: []Family{{AffectedWith: 2, AffectedTotal: 3, UnaffectedWith: 0, UnaffectedTotal: 2}},
		DeNovo:   DeNovoAssumed,
	}
	assert.NoError(t, ok.Validate())

	bad := &PedigreeObservation{
		Families: []Family{{AffectedWith: 4, AffectedTotal: 3}},
	}
	assert.Error(t, bad.Validate())

	badTier := &PedigreeObservation{DeNovo: DeNovoTier("maybe")}
	assert.Error(t, badTier.Validate())
}

func TestEvidenceSetDedup(t *testing.T) {
	s := NewEvidenceSet()

	added := s.Add(EvidenceCode{Tag: TagPM2, Strength: StrengthModerate})
	assert.True(t, added)

	// A second code with the same tag must not replace or strengthen
	// the first.
	added = s.Add(EvidenceCode{Tag: TagPM2, Strength: StrengthVeryStrong})
	assert.False(t, added)

	require.Equal(t, 1, s.Len())
	assert.Equal(t, StrengthModerate, s.Codes()[0].Strength)

	s.Add(EvidenceCode{Tag: TagPVS1, Strength: StrengthVeryStrong})
	assert.True(t, s.Has(TagPVS1))
	assert.Equal(t, 2, s.Len())
}
