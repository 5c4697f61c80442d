package ttc

import (
	"image"
	"math"

	"github.com/golang/geo/r3"
)

// Rectangle is an axis-aligned rectangle in image-plane pixel coordinates.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

func NewRectFrom(rect image.Rectangle) Rectangle {
	return Rectangle{
		X:      float64(rect.Min.X),
		Y:      float64(rect.Min.Y),
		Width:  float64(rect.Dx()),
		Height: float64(rect.Dy()),
	}
}

// ContainsPoint reports whether the point lies within the rectangle.
// The containment test is closed on all four edges.
func (rect Rectangle) ContainsPoint(pt Point) bool {
	return pt.X >= rect.X && pt.X <= rect.X+rect.Width &&
		pt.Y >= rect.Y && pt.Y <= rect.Y+rect.Height
}

// Shrink returns a rectangle inset towards its center: each side is moved
// inwards by factor/2 of that side's extent, so width and height scale to
// (1 - factor). Shrink(0) is the identity; factors approaching 1 collapse
// the rectangle onto its center.
func (rect Rectangle) Shrink(factor float64) Rectangle {
	return Rectangle{
		X:      rect.X + factor*rect.Width/2.0,
		Y:      rect.Y + factor*rect.Height/2.0,
		Width:  rect.Width * (1 - factor),
		Height: rect.Height * (1 - factor),
	}
}

// Point is a 2D image-plane coordinate.
type Point struct {
	X float64
	Y float64
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func NewPointFrom(point image.Point) Point {
	return Point{
		X: float64(point.X),
		Y: float64(point.Y),
	}
}

// RangePoint is a single 3D range-sensor measurement in the sensor frame:
// X facing forward, Y facing left, Z facing up. Reflectivity is optional
// sensor metadata and does not participate in any geometry.
type RangePoint struct {
	X            float64
	Y            float64
	Z            float64
	Reflectivity float64
}

func NewRangePoint(x, y, z float64) RangePoint {
	return RangePoint{
		X: x,
		Y: y,
		Z: z,
	}
}

// Vec returns the point's position as a 3D vector.
func (p RangePoint) Vec() r3.Vector {
	return r3.Vector{X: p.X, Y: p.Y, Z: p.Z}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(float64(p1.X-p2.X), 2) + math.Pow(float64(p1.Y-p2.Y), 2))
}
