package ttc

import (
	"testing"
)

func TestAssociateRangePointsUniqueAssignment(t *testing.T) {
	calib := pinholeCalibration(t, 100, 200, 200)
	// pixel = (200 - 12.5*y, 200 - 12.5*z) at 8m forward
	left := NewDetectionRegion(1, NewRect(100, 150, 80, 100))
	ahead := NewDetectionRegion(2, NewRect(190, 190, 20, 20))
	points := []RangePoint{
		NewRangePoint(8, 0, 0),    // pixel (200, 200) -> region 2
		NewRangePoint(8, 0.2, 0),  // pixel (197.5, 200) -> region 2
		NewRangePoint(8, 4.8, 0),  // pixel (140, 200) -> region 1
		NewRangePoint(8, -8, -8),  // pixel (300, 300) -> no region
	}

	AssociateRangePoints([]*DetectionRegion{left, ahead}, points, 0.1, calib)

	if len(ahead.RangePoints) != 2 {
		t.Errorf("Expected 2 points in region 2, got %d", len(ahead.RangePoints))
	}
	if len(left.RangePoints) != 1 {
		t.Errorf("Expected 1 point in region 1, got %d", len(left.RangePoints))
	}
}

func TestAssociateRangePointsDropsAmbiguous(t *testing.T) {
	calib := pinholeCalibration(t, 100, 200, 200)
	a := NewDetectionRegion(1, NewRect(150, 150, 100, 100))
	b := NewDetectionRegion(2, NewRect(160, 160, 100, 100))
	// pixel (200, 200) lies in the overlap of both shrunk rectangles
	points := []RangePoint{NewRangePoint(8, 0, 0)}

	AssociateRangePoints([]*DetectionRegion{a, b}, points, 0.1, calib)

	if len(a.RangePoints) != 0 || len(b.RangePoints) != 0 {
		t.Errorf("Ambiguously enclosed point must be assigned to neither region, got %d/%d",
			len(a.RangePoints), len(b.RangePoints))
	}
}

func TestAssociateRangePointsEmptyInputsNoOp(t *testing.T) {
	calib := pinholeCalibration(t, 100, 200, 200)
	region := NewDetectionRegion(1, NewRect(0, 0, 400, 400))

	AssociateRangePoints(nil, []RangePoint{NewRangePoint(8, 0, 0)}, 0.1, calib)
	AssociateRangePoints([]*DetectionRegion{region}, nil, 0.1, calib)

	if len(region.RangePoints) != 0 {
		t.Error("No points should be assigned from empty input")
	}
}

func TestAssociateRangePointsIdempotent(t *testing.T) {
	calib := pinholeCalibration(t, 100, 200, 200)
	region := NewDetectionRegion(1, NewRect(150, 150, 100, 100))
	points := []RangePoint{
		NewRangePoint(8, 0, 0),
		NewRangePoint(8, 0.4, 0.4),
		NewRangePoint(8, -0.4, 0.4),
	}

	AssociateRangePoints([]*DetectionRegion{region}, points, 0.1, calib)
	first := append([]RangePoint(nil), region.RangePoints...)

	region.Reset()
	AssociateRangePoints([]*DetectionRegion{region}, points, 0.1, calib)

	if len(region.RangePoints) != len(first) {
		t.Fatalf("Re-run produced %d points, expected %d", len(region.RangePoints), len(first))
	}
	for i := range first {
		if region.RangePoints[i] != first[i] {
			t.Errorf("Re-run point %d differs: %v vs %v", i, region.RangePoints[i], first[i])
		}
	}
}
