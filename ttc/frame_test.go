package ttc

import (
	"testing"
)

func TestValidateFramePair(t *testing.T) {
	prev := &Frame{Keypoints: []Point{{1, 1}, {2, 2}}}
	curr := &Frame{Keypoints: []Point{{1, 1}}}

	if err := ValidateFramePair(prev, curr, []KeypointMatch{{0, 0}, {1, 0}}); err != nil {
		t.Errorf("Valid input rejected: %v", err)
	}
	if err := ValidateFramePair(prev, curr, []KeypointMatch{{2, 0}}); err == nil {
		t.Error("Out-of-range previous keypoint index must be rejected")
	}
	if err := ValidateFramePair(prev, curr, []KeypointMatch{{0, 1}}); err == nil {
		t.Error("Out-of-range current keypoint index must be rejected")
	}
	if err := ValidateFramePair(prev, curr, []KeypointMatch{{-1, 0}}); err == nil {
		t.Error("Negative keypoint index must be rejected")
	}
	if err := ValidateFramePair(nil, curr, nil); err == nil {
		t.Error("Nil frame must be rejected")
	}
}

func TestValidateFramePairDuplicateRegionIDs(t *testing.T) {
	prev := &Frame{
		Regions: []*DetectionRegion{
			NewDetectionRegion(1, NewRect(0, 0, 10, 10)),
			NewDetectionRegion(1, NewRect(20, 20, 10, 10)),
		},
	}
	if err := ValidateFramePair(prev, &Frame{}, nil); err == nil {
		t.Error("Duplicate region IDs within a frame must be rejected")
	}
}

func TestValidateFramePairNegativeExtent(t *testing.T) {
	prev := &Frame{
		Regions: []*DetectionRegion{
			NewDetectionRegion(1, NewRect(0, 0, -10, 10)),
		},
	}
	if err := ValidateFramePair(prev, &Frame{}, nil); err == nil {
		t.Error("Negative region extent must be rejected")
	}
}

func TestRegionByID(t *testing.T) {
	frame := &Frame{
		Regions: []*DetectionRegion{
			NewDetectionRegion(4, NewRect(0, 0, 10, 10)),
			NewDetectionRegion(7, NewRect(20, 20, 10, 10)),
		},
	}
	if region := frame.RegionByID(7); region == nil || region.ID != 7 {
		t.Errorf("Expected region 7, got %v", region)
	}
	if region := frame.RegionByID(99); region != nil {
		t.Errorf("Unknown ID must return nil, got %v", region)
	}
}

func TestRegionReset(t *testing.T) {
	region := NewDetectionRegion(1, NewRect(0, 0, 10, 10))
	region.RangePoints = append(region.RangePoints, NewRangePoint(1, 2, 3))
	region.Matches = append(region.Matches, KeypointMatch{0, 0})

	region.Reset()

	if len(region.RangePoints) != 0 || len(region.Matches) != 0 {
		t.Error("Reset must clear both collections")
	}
}
