package ttc

import (
	"math"

	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Track is one object followed across the frame sequence. The detection
// rectangle is smoothed by an 8-D Kalman filter over full bounding box
// dynamics [cx, cy, w, h, vx, vy, vw, vh], and every matched frame step
// appends that step's TTC estimate to the track's history.
type Track struct {
	id            uuid.UUID
	currentBBox   Rectangle
	predictedBBox Rectangle
	history       []Point
	maxHistoryLen int
	noMatchTimes  int
	diagonal      float64
	estimates     []Estimate
	filter        *kalman_filter.KalmanBBox
}

// NewTrackWithTime creates a Track for a freshly observed region with the
// given time step between frames.
func NewTrackWithTime(bbox Rectangle, dt float64) *Track {
	centerX := bbox.X + bbox.Width/2.0
	centerY := bbox.Y + bbox.Height/2.0
	diagonal := math.Sqrt(math.Pow(bbox.Width, 2) + math.Pow(bbox.Height, 2))

	// Kalman filter props
	uCx := 1.0
	uCy := 1.0
	uW := 0.0
	uH := 0.0
	stdDevA := 2.0
	stdDevMCx := 0.1
	stdDevMCy := 0.1
	stdDevMW := 0.1
	stdDevMH := 0.1
	kf := kalman_filter.NewKalmanBBox(
		dt, uCx, uCy, uW, uH,
		stdDevA, stdDevMCx, stdDevMCy, stdDevMW, stdDevMH,
		kalman_filter.WithStateBBox(centerX, centerY, bbox.Width, bbox.Height),
	)

	track := Track{
		id:            uuid.New(),
		currentBBox:   bbox,
		predictedBBox: bbox,
		history:       make([]Point, 0, 150),
		maxHistoryLen: 150,
		noMatchTimes:  0,
		diagonal:      diagonal,
		filter:        kf,
	}
	track.history = append(track.history, Point{X: centerX, Y: centerY})
	return &track
}

// NewTrack creates a Track with a default time step of 1.0.
func NewTrack(bbox Rectangle) *Track {
	return NewTrackWithTime(bbox, 1.0)
}

// GetID returns track's identifier
func (track *Track) GetID() uuid.UUID {
	return track.id
}

// SetID sets track's identifier
func (track *Track) SetID(newID uuid.UUID) {
	track.id = newID
}

// GetCenter returns track's current center
func (track *Track) GetCenter() Point {
	return Point{
		X: track.currentBBox.X + track.currentBBox.Width/2.0,
		Y: track.currentBBox.Y + track.currentBBox.Height/2.0,
	}
}

// GetBBox returns track's current bounding box
func (track *Track) GetBBox() Rectangle {
	return track.currentBBox
}

// GetPredictedBBox returns predicted bounding box from Kalman filter
func (track *Track) GetPredictedBBox() Rectangle {
	return track.predictedBBox
}

// GetDiagonal returns track's estimated diagonal
func (track *Track) GetDiagonal() float64 {
	return track.diagonal
}

// GetHistory returns track's center history. Be careful: this is not copy of history, but reference to it
func (track *Track) GetHistory() []Point {
	return track.history
}

// GetEstimates returns the TTC estimates recorded for this track, oldest
// first. Be careful: this is not copy of estimates, but reference to it
func (track *Track) GetEstimates() []Estimate {
	return track.estimates
}

// SetMaxHistoryLen sets track's max center history length
func (track *Track) SetMaxHistoryLen(newMaxHistoryLen int) {
	track.maxHistoryLen = newMaxHistoryLen
}

// GetNoMatchTimes returns track's no match times
func (track *Track) GetNoMatchTimes() int {
	return track.noMatchTimes
}

// IncNoMatch increases track's no match times
func (track *Track) IncNoMatch() {
	track.noMatchTimes++
}

// ResetNoMatch resets track's no match times
func (track *Track) ResetNoMatch() {
	track.noMatchTimes = 0
}

// PredictNextPosition executes Kalman filter prediction step
func (track *Track) PredictNextPosition() {
	track.filter.Predict()
	cx, cy, w, h := track.filter.GetState()
	track.predictedBBox = Rectangle{
		X:      cx - w/2.0,
		Y:      cy - h/2.0,
		Width:  w,
		Height: h,
	}
}

// Update feeds a matched region's rectangle into the Kalman filter and
// records the step's TTC estimate.
func (track *Track) Update(bbox Rectangle, estimate Estimate) error {
	newCx := bbox.X + bbox.Width/2.0
	newCy := bbox.Y + bbox.Height/2.0

	err := track.filter.Update(newCx, newCy, bbox.Width, bbox.Height)
	if err != nil {
		return errors.Wrap(err, "Can't update object track")
	}

	// Get smoothed state from Kalman filter
	cx, cy, w, h := track.filter.GetState()
	track.currentBBox = Rectangle{
		X:      cx - w/2.0,
		Y:      cy - h/2.0,
		Width:  w,
		Height: h,
	}
	track.diagonal = math.Sqrt(math.Pow(w, 2) + math.Pow(h, 2))
	track.noMatchTimes = 0
	track.estimates = append(track.estimates, estimate)

	track.history = append(track.history, Point{X: cx, Y: cy})
	if len(track.history) > track.maxHistoryLen {
		track.history = track.history[1:]
	}
	return nil
}

// GetVelocity returns current velocity estimates (vx, vy, vw, vh) from Kalman filter
func (track *Track) GetVelocity() (float64, float64, float64, float64) {
	return track.filter.GetVelocity()
}
