package stats

import "github.com/inodb/vibe-acmg/internal/variant"

// LODResult is the aggregated segregation evidence across families.
type LODResult struct {
	Score    float64
	Families int

	Indeterminate bool
	Reason        string
}

// minFamilies is the fewest informative families that can support a
// segregation conclusion.
const minFamilies = 3

// CosegregationLOD aggregates a LOD score over family pedigrees. A
// family where every affected member carries the variant and no
// unaffected member does contributes positively in proportion to its
// affected carriers. A family where only unaffected members carry it
// counts against. Mixed families contribute half weight on the
// carrier-count difference.
func CosegregationLOD(families []variant.Family) LODResult {
	informative := 0
	score := 0.0
	for _, f := range families {
		if f.AffectedTotal == 0 && f.UnaffectedTotal == 0 {
			continue
		}
		informative++
		perfect := f.AffectedWith == f.AffectedTotal && f.AffectedTotal > 0 && f.UnaffectedWith == 0
		anti := f.AffectedWith == 0 && f.UnaffectedWith > 0
		switch {
		case perfect:
			score += 0.3 * float64(f.AffectedWith)
		case anti:
			score -= 0.3 * float64(f.UnaffectedWith)
		default:
			score += 0.15 * float64(f.AffectedWith-f.UnaffectedWith)
		}
	}
	if informative < minFamilies {
		return LODResult{
			Families:      informative,
			Indeterminate: true,
			Reason:        "fewer than three informative families",
		}
	}
	return LODResult{Score: score, Families: informative}
}