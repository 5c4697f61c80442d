package ttc

import (
	"github.com/arthurkushman/go-hungarian"
)

// MatchingAlgorithm selects how region correspondences are resolved from the
// vote table.
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmGreedy picks, per previous region, the current region
	// with the most votes (first maximum in region order wins)
	MatchingAlgorithmGreedy MatchingAlgorithm = iota
	// MatchingAlgorithmHungarian solves a global one-to-one assignment over
	// the vote matrix with the Hungarian algorithm (Kuhn-Munkres)
	MatchingAlgorithmHungarian
)

// MatchRegions links detection regions across a frame pair by keypoint-match
// voting. For every previous-frame region, each match whose previous keypoint
// lies inside that region's rectangle casts a vote for every current-frame
// region whose rectangle contains the current keypoint; when current
// rectangles overlap at that pixel a single match votes once per overlapping
// region (deterministic policy for a rare case). The current region with the
// maximum vote count wins, ties broken by the current frame's region order.
// A previous region with zero votes yields no entry.
func MatchRegions(matches []KeypointMatch, prev, curr *Frame) RegionCorrespondenceMap {
	correspondence := make(RegionCorrespondenceMap)
	for _, prevRegion := range prev.Regions {
		votes := make(map[int]int)
		for _, match := range matches {
			if !prevRegion.ROI.ContainsPoint(prev.Keypoints[match.PrevIdx]) {
				continue
			}
			for _, currRegion := range curr.Regions {
				if currRegion.ROI.ContainsPoint(curr.Keypoints[match.CurrIdx]) {
					votes[currRegion.ID]++
				}
			}
		}
		bestID := 0
		bestVotes := 0
		for _, currRegion := range curr.Regions {
			if v := votes[currRegion.ID]; v > bestVotes {
				bestVotes = v
				bestID = currRegion.ID
			}
		}
		if bestVotes > 0 {
			correspondence[prevRegion.ID] = bestID
		}
	}
	return correspondence
}

// MatchRegionsHungarian resolves region correspondences from the same vote
// table as MatchRegions but as a global one-to-one assignment, so two
// previous regions can never claim the same current region. Previous regions
// whose assigned pairing carries zero votes still yield no entry.
func MatchRegionsHungarian(matches []KeypointMatch, prev, curr *Frame) RegionCorrespondenceMap {
	correspondence := make(RegionCorrespondenceMap)
	numPrev := len(prev.Regions)
	numCurr := len(curr.Regions)
	if numPrev == 0 || numCurr == 0 {
		return correspondence
	}

	// Vote matrix: rows = previous regions, columns = current regions.
	voteMatrix := make([][]float64, numPrev)
	for i := range voteMatrix {
		voteMatrix[i] = make([]float64, numCurr)
	}
	for _, match := range matches {
		for i, prevRegion := range prev.Regions {
			if !prevRegion.ROI.ContainsPoint(prev.Keypoints[match.PrevIdx]) {
				continue
			}
			for j, currRegion := range curr.Regions {
				if currRegion.ROI.ContainsPoint(curr.Keypoints[match.CurrIdx]) {
					voteMatrix[i][j]++
				}
			}
		}
	}

	// The solver needs a square matrix; pad with zero-vote dummies.
	paddedSize := maxInt(numPrev, numCurr)
	paddedMatrix := voteMatrix
	if numPrev != numCurr {
		paddedMatrix = make([][]float64, paddedSize)
		for i := 0; i < paddedSize; i++ {
			paddedMatrix[i] = make([]float64, paddedSize)
		}
		for i := 0; i < numPrev; i++ {
			copy(paddedMatrix[i], voteMatrix[i])
		}
	}
	assignments := hungarian.SolveMax(paddedMatrix)
	for prevIdx, row := range assignments {
		if prevIdx >= numPrev || len(row) == 0 {
			continue
		}
		for currIdx := range row {
			if currIdx < numCurr && voteMatrix[prevIdx][currIdx] > 0 {
				correspondence[prev.Regions[prevIdx].ID] = curr.Regions[currIdx].ID
			}
			break
		}
	}
	return correspondence
}
