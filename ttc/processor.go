package ttc

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultShrinkFactor is the default inset applied to detection rectangles
// before range-point membership testing.
const DefaultShrinkFactor = 0.10

// Estimate is the result of one TTC computation for a linked region pair.
// CameraTTC is NaN when the camera estimator had no usable keypoint pairs;
// HasRangeTTC is false when the range estimator had no in-lane points, in
// which case RangeTTC must not be read.
type Estimate struct {
	PrevRegionID int
	CurrRegionID int
	CameraTTC    float64
	RangeTTC     float64
	HasRangeTTC  bool
}

// Processor drives the per-frame-pair estimation pipeline: range point
// association, keypoint match assignment, region correspondence and the two
// TTC estimators. It operates on one frame pair at a time; all work is
// synchronous and a single caller is expected to feed it frames in order.
type Processor struct {
	calib        *Calibration
	frameRate    float64
	shrinkFactor float64
	rangeParams  RangeTTCParams
	algorithm    MatchingAlgorithm
	logger       *zap.Logger
}

// ProcessorOption customizes a Processor.
type ProcessorOption func(*Processor)

// WithShrinkFactor overrides the detection rectangle inset used during
// range-point association.
func WithShrinkFactor(factor float64) ProcessorOption {
	return func(p *Processor) {
		p.shrinkFactor = factor
	}
}

// WithRangeTTCParams overrides the range estimator parameters.
func WithRangeTTCParams(params RangeTTCParams) ProcessorOption {
	return func(p *Processor) {
		p.rangeParams = params
	}
}

// WithMatchingAlgorithm selects how region correspondences are resolved.
func WithMatchingAlgorithm(algorithm MatchingAlgorithm) ProcessorOption {
	return func(p *Processor) {
		p.algorithm = algorithm
	}
}

// WithLogger attaches a structured logger. Without it the processor is
// silent.
func WithLogger(logger *zap.Logger) ProcessorOption {
	return func(p *Processor) {
		p.logger = logger
	}
}

// NewProcessor creates a Processor with the given calibration and frame
// rate (Hz).
func NewProcessor(calib *Calibration, frameRate float64, opts ...ProcessorOption) (*Processor, error) {
	if calib == nil {
		return nil, errors.New("calibration must be non-nil")
	}
	if frameRate <= 0 {
		return nil, errors.Errorf("frame rate must be positive, got %f", frameRate)
	}
	p := &Processor{
		calib:        calib,
		frameRate:    frameRate,
		shrinkFactor: DefaultShrinkFactor,
		rangeParams:  DefaultRangeTTCParams(),
		algorithm:    MatchingAlgorithmGreedy,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// ProcessFramePair runs the full pipeline on two consecutive frames and
// returns one Estimate per linked region pair, ordered by previous-frame
// region ID. Region collections on both frames are reset and repopulated,
// so a frame pair can be reprocessed. Estimator failures are local: one
// region's lack of data never aborts the others.
func (p *Processor) ProcessFramePair(prev, curr *Frame, matches []KeypointMatch) ([]Estimate, error) {
	if err := ValidateFramePair(prev, curr, matches); err != nil {
		return nil, errors.Wrap(err, "invalid frame pair")
	}

	for _, frame := range []*Frame{prev, curr} {
		for _, region := range frame.Regions {
			region.Reset()
		}
		AssociateRangePoints(frame.Regions, frame.RangePoints, p.shrinkFactor, p.calib)
	}
	for _, region := range curr.Regions {
		AssignKeypointMatches(region, prev.Keypoints, curr.Keypoints, matches)
	}

	var correspondence RegionCorrespondenceMap
	switch p.algorithm {
	case MatchingAlgorithmHungarian:
		correspondence = MatchRegionsHungarian(matches, prev, curr)
	default:
		correspondence = MatchRegions(matches, prev, curr)
	}

	prevIDs := make([]int, 0, len(correspondence))
	for prevID := range correspondence {
		prevIDs = append(prevIDs, prevID)
	}
	sort.Ints(prevIDs)

	estimates := make([]Estimate, 0, len(prevIDs))
	for _, prevID := range prevIDs {
		currID := correspondence[prevID]
		prevRegion := prev.RegionByID(prevID)
		currRegion := curr.RegionByID(currID)

		estimate := Estimate{
			PrevRegionID: prevID,
			CurrRegionID: currID,
			CameraTTC:    CameraTTC(prev.Keypoints, curr.Keypoints, currRegion.Matches, p.frameRate),
		}
		rangeTTC, err := RangeTTC(prevRegion.RangePoints, currRegion.RangePoints, p.frameRate, p.rangeParams)
		if err != nil {
			p.logger.Debug("range TTC unavailable",
				zap.Int("prev_region", prevID),
				zap.Int("curr_region", currID),
				zap.Error(err))
		} else {
			estimate.RangeTTC = rangeTTC
			estimate.HasRangeTTC = true
		}
		p.logger.Debug("region estimate",
			zap.Int("prev_region", prevID),
			zap.Int("curr_region", currID),
			zap.Float64("camera_ttc", estimate.CameraTTC),
			zap.Float64("range_ttc", estimate.RangeTTC),
			zap.Bool("has_range_ttc", estimate.HasRangeTTC))
		estimates = append(estimates, estimate)
	}
	return estimates, nil
}
