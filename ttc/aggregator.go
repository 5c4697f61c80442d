package ttc

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Aggregator accumulates per-object TTC over the full frame sequence. Each
// step's estimates are matched to existing Tracks by a hybrid IoU + center
// distance score; matched tracks absorb the estimate into their history,
// unmatched regions open new tracks, and tracks unseen for too long are
// dropped.
type Aggregator struct {
	// Main storage
	Tracks map[uuid.UUID]*Track
	// Minimal combined score for a region to continue an existing track
	scoreThreshold float64
	// Max number of steps a track survives without a match
	maxNoMatch int
	// Time step between frames in seconds
	dt float64
}

// NewAggregatorDefault creates default instance of Aggregator
func NewAggregatorDefault(frameRate float64) *Aggregator {
	return NewAggregator(frameRate, 0.2, 5)
}

// NewAggregator creates new instance of Aggregator
func NewAggregator(frameRate, scoreThreshold float64, maxNoMatch int) *Aggregator {
	return &Aggregator{
		Tracks:         make(map[uuid.UUID]*Track),
		scoreThreshold: scoreThreshold,
		maxNoMatch:     maxNoMatch,
		dt:             1 / frameRate,
	}
}

// ObserveStep matches one frame step's estimates against the tracked
// objects. Estimates reference current-frame regions by ID, so the current
// frame must be the one the estimates were computed from.
func (agg *Aggregator) ObserveStep(curr *Frame, estimates []Estimate) error {
	for _, track := range agg.Tracks {
		track.PredictNextPosition()
	}

	tracksToRegister := make(map[uuid.UUID]*Track)
	priorityQueue := make(scoreHeap, 0, len(estimates))
	for _, estimate := range estimates {
		region := curr.RegionByID(estimate.CurrRegionID)
		if region == nil {
			return errors.Errorf("estimate references unknown current region %d", estimate.CurrRegionID)
		}
		bestID := uuid.UUID{}
		bestScore := 0.0
		for trackID, track := range agg.Tracks {
			score := matchScore(region.ROI, track)
			if score > bestScore {
				bestScore = score
				bestID = trackID
			}
		}
		priorityQueue.Push(&scoredRegion{
			score:    bestScore,
			trackID:  bestID,
			region:   region,
			estimate: estimate,
		})
	}

	// We need to prevent double update of tracks
	reservedTracks := make(map[uuid.UUID]struct{})

	for priorityQueue.Len() > 0 {
		popped := priorityQueue.Pop()
		// Since we pop in descending score order, each track is claimed by
		// its best-scoring region only once; later claimants become new tracks
		if _, ok := reservedTracks[popped.trackID]; ok {
			newTrack := NewTrackWithTime(popped.region.ROI, agg.dt)
			if err := newTrack.Update(popped.region.ROI, popped.estimate); err != nil {
				return err
			}
			tracksToRegister[newTrack.GetID()] = newTrack
			continue
		}
		track, ok := agg.Tracks[popped.trackID]
		if ok && popped.score > agg.scoreThreshold {
			if err := track.Update(popped.region.ROI, popped.estimate); err != nil {
				return errors.Wrapf(err, "Can't update track with id %s", popped.trackID.String())
			}
			reservedTracks[popped.trackID] = struct{}{}
		} else {
			newTrack := NewTrackWithTime(popped.region.ROI, agg.dt)
			if err := newTrack.Update(popped.region.ROI, popped.estimate); err != nil {
				return err
			}
			tracksToRegister[newTrack.GetID()] = newTrack
		}
	}

	for trackID := range tracksToRegister {
		agg.Tracks[trackID] = tracksToRegister[trackID]
	}

	// Age out tracks that have not been matched for a long time
	for trackID, track := range agg.Tracks {
		if _, ok := reservedTracks[trackID]; ok {
			continue
		}
		if _, ok := tracksToRegister[trackID]; ok {
			continue
		}
		track.IncNoMatch()
		if track.GetNoMatchTimes() > agg.maxNoMatch {
			delete(agg.Tracks, trackID)
		}
	}
	return nil
}

// matchScore combines IoU with a center-distance fallback: IoU dominates
// when the rectangles overlap, distance keeps recovery possible when they
// momentarily do not.
func matchScore(roi Rectangle, track *Track) float64 {
	predicted := track.GetPredictedBBox()
	iouValue := IoU(roi, predicted)

	predictedCenter := Point{
		X: predicted.X + predicted.Width/2.0,
		Y: predicted.Y + predicted.Height/2.0,
	}
	center := Point{
		X: roi.X + roi.Width/2.0,
		Y: roi.Y + roi.Height/2.0,
	}
	distanceScore := 1.0 / (1.0 + euclideanDistance(predictedCenter, center)*0.01)

	if iouValue > 0.05 {
		return iouValue*0.8 + distanceScore*0.2
	}
	return distanceScore * 0.5
}
