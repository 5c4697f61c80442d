package ttc

import (
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correctAnswer)
	}
}

func TestShrinkZeroIsIdentity(t *testing.T) {
	rect := NewRect(10, 20, 100, 50)
	shrunk := rect.Shrink(0)
	if shrunk != rect {
		t.Errorf("Shrink(0) must be identity, got %v", shrunk)
	}
}

func TestShrinkScalesTowardsCenter(t *testing.T) {
	rect := NewRect(0, 0, 100, 200)
	shrunk := rect.Shrink(0.2)
	expected := NewRect(10, 20, 80, 160)
	if math.Abs(shrunk.X-expected.X) > eps ||
		math.Abs(shrunk.Y-expected.Y) > eps ||
		math.Abs(shrunk.Width-expected.Width) > eps ||
		math.Abs(shrunk.Height-expected.Height) > eps {
		t.Errorf("Wrong shrunk rectangle: %v, expected: %v", shrunk, expected)
	}
}

func TestShrinkNearOneAcceptsOnlyCenter(t *testing.T) {
	rect := NewRect(0, 0, 100, 100)
	shrunk := rect.Shrink(0.9999)
	center := Point{X: 50, Y: 50}
	if !shrunk.ContainsPoint(center) {
		t.Error("Center must stay inside for any shrink factor < 1")
	}
	if shrunk.ContainsPoint(Point{X: 49, Y: 50}) {
		t.Error("Point one pixel off center must fall outside a near-fully shrunk rectangle")
	}
}

func TestContainsPointEdges(t *testing.T) {
	rect := NewRect(0, 0, 10, 10)
	inside := []Point{{0, 0}, {10, 10}, {5, 5}, {0, 10}, {10, 0}}
	for _, pt := range inside {
		if !rect.ContainsPoint(pt) {
			t.Errorf("Point %v must be inside (closed containment)", pt)
		}
	}
	outside := []Point{{-0.001, 5}, {10.001, 5}, {5, -0.001}, {5, 10.001}}
	for _, pt := range outside {
		if rect.ContainsPoint(pt) {
			t.Errorf("Point %v must be outside", pt)
		}
	}
}
