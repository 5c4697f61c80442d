package ttc

// AssociateRangePoints buckets a frame's range points into its detection
// regions. Every point is projected into the image plane and tested against
// each region's rectangle shrunk by shrinkFactor (edge areas of detection
// rectangles are noisy, so a small inset trades recall for purity). A point
// enclosed by exactly one shrunk rectangle is appended to that region's
// RangePoints; a point enclosed by none or by several is dropped rather than
// assigned to an arbitrary region.
//
// A frame with no regions or no points is a no-op. Re-running on regions
// cleared with Reset reproduces an identical assignment.
func AssociateRangePoints(regions []*DetectionRegion, points []RangePoint, shrinkFactor float64, calib *Calibration) {
	shrunk := make([]Rectangle, len(regions))
	for i, region := range regions {
		shrunk[i] = region.ROI.Shrink(shrinkFactor)
	}
	for _, point := range points {
		pixel := calib.ProjectPoint(point)
		enclosing := -1
		ambiguous := false
		for i := range regions {
			if !shrunk[i].ContainsPoint(pixel) {
				continue
			}
			if enclosing >= 0 {
				ambiguous = true
				break
			}
			enclosing = i
		}
		if enclosing >= 0 && !ambiguous {
			regions[enclosing].RangePoints = append(regions[enclosing].RangePoints, point)
		}
	}
}
