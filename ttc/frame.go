package ttc

import (
	"github.com/pkg/errors"
)

// KeypointMatch is a correspondence between a keypoint in the previous frame
// and one in the current frame, expressed as indices into the respective
// frames' keypoint lists. Matches are produced by an external feature
// matcher and are read-only here.
type KeypointMatch struct {
	PrevIdx int
	CurrIdx int
}

// DetectionRegion is an axis-aligned detection rectangle produced by an
// external object detector, identified by an ID unique within its frame.
// Its point and match collections start empty and are populated by
// AssociateRangePoints and AssignKeypointMatches.
type DetectionRegion struct {
	ID          int
	ROI         Rectangle
	RangePoints []RangePoint
	Matches     []KeypointMatch
}

func NewDetectionRegion(id int, roi Rectangle) *DetectionRegion {
	return &DetectionRegion{
		ID:  id,
		ROI: roi,
	}
}

// Reset clears the region's associated points and matches so an association
// pass can be re-run from scratch.
func (region *DetectionRegion) Reset() {
	region.RangePoints = region.RangePoints[:0]
	region.Matches = region.Matches[:0]
}

// Frame is the unit of work for one time step: the keypoints, detection
// regions and range points observed at that instant. Two consecutive frames
// form the input of one TTC computation.
type Frame struct {
	Keypoints   []Point
	Regions     []*DetectionRegion
	RangePoints []RangePoint
}

// RegionByID returns the frame's region with the given ID, or nil.
func (f *Frame) RegionByID(id int) *DetectionRegion {
	for _, region := range f.Regions {
		if region.ID == id {
			return region
		}
	}
	return nil
}

// RegionCorrespondenceMap maps previous-frame region IDs to current-frame
// region IDs. Only previous regions that collected at least one vote have an
// entry; a missing key means "no counterpart this step", never a default ID.
type RegionCorrespondenceMap map[int]int

// ValidateFramePair rejects malformed input geometry before it reaches the
// core algorithms: the estimators assume index-consistent matches and
// non-degenerate region rectangles, and violating that is the only fatal
// error class.
func ValidateFramePair(prev, curr *Frame, matches []KeypointMatch) error {
	if prev == nil || curr == nil {
		return errors.New("both frames must be non-nil")
	}
	for _, frame := range []*Frame{prev, curr} {
		seen := make(map[int]struct{}, len(frame.Regions))
		for _, region := range frame.Regions {
			if region.ROI.Width < 0 || region.ROI.Height < 0 {
				return errors.Errorf("region %d has negative extent %fx%f", region.ID, region.ROI.Width, region.ROI.Height)
			}
			if _, ok := seen[region.ID]; ok {
				return errors.Errorf("duplicate region ID %d within one frame", region.ID)
			}
			seen[region.ID] = struct{}{}
		}
	}
	for i, m := range matches {
		if m.PrevIdx < 0 || m.PrevIdx >= len(prev.Keypoints) {
			return errors.Errorf("match %d references previous keypoint %d, frame has %d keypoints", i, m.PrevIdx, len(prev.Keypoints))
		}
		if m.CurrIdx < 0 || m.CurrIdx >= len(curr.Keypoints) {
			return errors.Errorf("match %d references current keypoint %d, frame has %d keypoints", i, m.CurrIdx, len(curr.Keypoints))
		}
	}
	return nil
}
