package ttc

import (
	"math"

	"github.com/pkg/errors"
)

// ErrNoRangeData signals that a frame had no surviving in-lane range points,
// so no distance measurement exists. Returned explicitly instead of the
// usual "huge initial minimum" sentinel so absence can never be mistaken for
// a real extreme measurement.
var ErrNoRangeData = errors.New("no in-lane range points survived filtering")

// RangeTTCParams tunes the range-based estimator. The defaults suit a
// lidar-class sensor watching a single leading vehicle.
type RangeTTCParams struct {
	// ClusterTolerance is the neighbour chain distance for outlier removal
	ClusterTolerance float64
	// MinClusterSize and MaxClusterSize bound the surviving cluster sizes
	MinClusterSize int
	MaxClusterSize int
	// LaneWidth is the assumed ego-lane width; only points within half of it
	// either side of the centerline are measured
	LaneWidth float64
}

// DefaultRangeTTCParams returns the production-default estimator parameters.
func DefaultRangeTTCParams() RangeTTCParams {
	return RangeTTCParams{
		ClusterTolerance: 0.05,
		MinClusterSize:   30,
		MaxClusterSize:   25000,
		LaneWidth:        4.0,
	}
}

// RangeTTC estimates time-to-collision in seconds from the closest in-lane
// range distance in each of two consecutive frames under a constant
// relative-velocity model. Each frame's points are first cleaned by
// ClusterRangePoints, then restricted to the ego lane, and the minimum
// forward distance per frame drives TTC = minXCurr / ((minXPrev - minXCurr)
// * frameRate).
//
// Returns ErrNoRangeData when either frame has no surviving in-lane point,
// and +Inf when the two minima are identical (no closing rate detected).
func RangeTTC(prevPoints, currPoints []RangePoint, frameRate float64, params RangeTTCParams) (float64, error) {
	minXPrev, okPrev := minLaneDistance(prevPoints, params)
	minXCurr, okCurr := minLaneDistance(currPoints, params)
	if !okPrev {
		return 0, errors.Wrap(ErrNoRangeData, "previous frame")
	}
	if !okCurr {
		return 0, errors.Wrap(ErrNoRangeData, "current frame")
	}
	if minXPrev == minXCurr {
		return math.Inf(1), nil
	}
	dT := 1 / frameRate
	return minXCurr / ((minXPrev - minXCurr) / dT), nil
}

// minLaneDistance returns the minimum forward distance among a frame's
// cluster-filtered points inside the ego lane. ok is false when no point
// qualifies.
func minLaneDistance(points []RangePoint, params RangeTTCParams) (minX float64, ok bool) {
	filtered := ClusterRangePoints(points, params.ClusterTolerance, params.MinClusterSize, params.MaxClusterSize)
	halfLane := params.LaneWidth / 2.0
	for _, p := range filtered {
		if math.Abs(p.Y) >= halfLane {
			continue
		}
		if !ok || p.X < minX {
			minX = p.X
			ok = true
		}
	}
	return minX, ok
}
