package ttc

import (
	"gonum.org/v1/gonum/stat"
)

// matchDistRatio is the multiple of the mean keypoint displacement above
// which a match is treated as an outlier.
const matchDistRatio = 1.5

// AssignKeypointMatches fills a current-frame region's match collection and
// removes outliers. A match belongs to the region when its current-frame
// keypoint lies inside the region's unshrunk rectangle; previous-frame
// position plays no part in membership. Assigned matches whose pixel
// displacement between frames is at least matchDistRatio times the mean
// displacement over the region are then discarded.
//
// Filtering builds a fresh retained slice instead of erasing in place, so
// the pass is stable regardless of how many matches are removed. A region
// that receives no matches is left empty and contributes no TTC.
func AssignKeypointMatches(region *DetectionRegion, prevKeypoints, currKeypoints []Point, matches []KeypointMatch) {
	for _, match := range matches {
		if region.ROI.ContainsPoint(currKeypoints[match.CurrIdx]) {
			region.Matches = append(region.Matches, match)
		}
	}
	if len(region.Matches) == 0 {
		return
	}

	distances := make([]float64, len(region.Matches))
	for i, match := range region.Matches {
		distances[i] = euclideanDistance(currKeypoints[match.CurrIdx], prevKeypoints[match.PrevIdx])
	}
	mean := stat.Mean(distances, nil)

	retained := make([]KeypointMatch, 0, len(region.Matches))
	for i, match := range region.Matches {
		if distances[i] < mean*matchDistRatio {
			retained = append(retained, match)
		}
	}
	region.Matches = retained
}
