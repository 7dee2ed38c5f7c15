package stats

import "math"

// OutlierResult reports whether one subpopulation frequency deviates
// markedly from the others.
type OutlierResult struct {
	ZScore    float64
	IsOutlier bool

	Indeterminate bool
	Reason        string
}

// stdFloor guards the z-score against near-identical frequencies
// producing runaway values.
const stdFloor = 0.01

// outlierZ is the deviation beyond which a subpopulation frequency is
// considered an outlier.
const outlierZ = 2.0

// SubpopulationOutlier computes the z-score of the maximum
// subpopulation frequency against the distribution of all of them.
// At least three subpopulations are needed for a meaningful spread.
func SubpopulationOutlier(freqs []float64) OutlierResult {
	if len(freqs) < 3 {
		return OutlierResult{Indeterminate: true, Reason: "fewer than three subpopulation frequencies"}
	}
	var sum float64
	maxF := freqs[0]
	for _, f := range freqs {
		sum += f
		if f > maxF {
			maxF = f
		}
	}
	mean := sum / float64(len(freqs))
	var ss float64
	for _, f := range freqs {
		d := f - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(freqs)))
	if std < stdFloor {
		std = stdFloor
	}
	z := (maxF - mean) / std
	return OutlierResult{ZScore: z, IsOutlier: math.Abs(z) > outlierZ}
}
