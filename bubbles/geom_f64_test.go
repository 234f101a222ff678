package bubbles

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correnctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correnctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correnctAnswer)
	}
}

func TestNewCircleTruncates(t *testing.T) {
	c := NewCircle(12.9, 7.2, 33.7)
	if c.X != 12 || c.Y != 7 || c.R != 33 {
		t.Errorf("Wrong circle: %+v", c)
	}
	if c.FrameNo != 0 {
		t.Errorf("New circle should not be stamped, got frame %d", c.FrameNo)
	}
	if _, ok := c.Speed(); ok {
		t.Error("New circle should not have speed")
	}
	if c.ImageCenter() != image.Pt(12, 7) {
		t.Errorf("Wrong image center: %v", c.ImageCenter())
	}
	if (Point{X: 12, Y: 7}) != c.Center() {
		t.Errorf("Wrong center: %v", c.Center())
	}
}
