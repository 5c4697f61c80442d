package ttc

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Calibration holds the fixed matrix chain mapping 3D sensor space to 2D
// pixel space: a 3x4 intrinsic+rectification projection P, a 4x4
// rectification rotation R and a 4x4 sensor-to-camera rigid transform RT.
// The matrices are supplied by an external calibration stage and never
// mutated here.
type Calibration struct {
	projection *mat.Dense
	rectify    *mat.Dense
	transform  *mat.Dense
	// Precomputed P * R * RT (3x4). The chain is constant for a sensor rig.
	combined *mat.Dense
}

// NewCalibration builds a Calibration from the projection triple. Matrix
// dimensions are validated here so the projector itself has no error path.
func NewCalibration(projection, rectify, transform *mat.Dense) (*Calibration, error) {
	if r, c := projection.Dims(); r != 3 || c != 4 {
		return nil, errors.Errorf("projection matrix must be 3x4, got %dx%d", r, c)
	}
	if r, c := rectify.Dims(); r != 4 || c != 4 {
		return nil, errors.Errorf("rectification matrix must be 4x4, got %dx%d", r, c)
	}
	if r, c := transform.Dims(); r != 4 || c != 4 {
		return nil, errors.Errorf("rigid transform matrix must be 4x4, got %dx%d", r, c)
	}
	rrt := mat.NewDense(4, 4, nil)
	rrt.Mul(rectify, transform)
	combined := mat.NewDense(3, 4, nil)
	combined.Mul(projection, rrt)
	return &Calibration{
		projection: projection,
		rectify:    rectify,
		transform:  transform,
		combined:   combined,
	}, nil
}

// ProjectPoint maps a 3D range point into image-plane pixel coordinates via
// the homogeneous product P * R * RT * [x y z 1]^T with a perspective divide
// by the homogeneous depth component (row index 2 of the product). A point
// with zero depth yields infinite pixel coordinates; such a pixel falls
// outside every detection region and is excluded downstream.
func (c *Calibration) ProjectPoint(p RangePoint) Point {
	x := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})
	y := mat.NewVecDense(3, nil)
	y.MulVec(c.combined, x)
	depth := y.AtVec(2)
	return Point{
		X: y.AtVec(0) / depth,
		Y: y.AtVec(1) / depth,
	}
}
