package ttc

import (
	"math"
	"sort"
)

const (
	// minPairSeparation is the minimum current-frame pixel distance between a
	// pair of keypoints for its ratio to be used. Ratios from nearly
	// coincident points are dominated by pixel-quantization noise.
	minPairSeparation = 100.0
	// distEps guards the ratio denominator against division by zero.
	distEps = 2.220446049250313e-16
)

// CameraTTC estimates time-to-collision in seconds from the relative growth
// of pairwise keypoint distances between two frames. For every unordered
// pair of matches it records distCurr/distPrev, skipping pairs whose
// previous distance is near zero or whose current distance is below
// minPairSeparation. The median ratio (robust against outlier pairs) feeds
// an exponential-decay model of inter-point distance under constant closing
// velocity: TTC = -dT / (1 - medianRatio).
//
// Returns NaN when no pair survives, and +Inf when the median ratio is
// exactly 1 (no perceived scale change, so no collision predicted).
func CameraTTC(prevKeypoints, currKeypoints []Point, matches []KeypointMatch, frameRate float64) float64 {
	distRatios := make([]float64, 0, len(matches)*(len(matches)-1)/2)
	for i := 0; i < len(matches); i++ {
		outerCurr := currKeypoints[matches[i].CurrIdx]
		outerPrev := prevKeypoints[matches[i].PrevIdx]
		for j := i + 1; j < len(matches); j++ {
			innerCurr := currKeypoints[matches[j].CurrIdx]
			innerPrev := prevKeypoints[matches[j].PrevIdx]

			distCurr := euclideanDistance(outerCurr, innerCurr)
			distPrev := euclideanDistance(outerPrev, innerPrev)
			if distPrev > distEps && distCurr >= minPairSeparation {
				distRatios = append(distRatios, distCurr/distPrev)
			}
		}
	}
	if len(distRatios) == 0 {
		return math.NaN()
	}

	medianDistRatio := median(distRatios)
	if medianDistRatio == 1 {
		return math.Inf(1)
	}
	dT := 1 / frameRate
	return -dT / (1 - medianDistRatio)
}

// median sorts values in place. Even counts average the two central values.
func median(values []float64) float64 {
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2.0
	}
	return values[mid]
}
