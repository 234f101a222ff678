package bubbles

import (
	"image"
)

// Circle is a single circle detection or the tracked state of a marker.
// Coordinates and radius are integer pixels. Radius is zero when the detector
// does not model it, FrameNo is zero until a resolver stamps the circle with
// the frame it was attributed in (frames are numbered from 1).
type Circle struct {
	X       int
	Y       int
	R       int
	FrameNo int

	speed    float64
	hasSpeed bool
}

// NewCircle creates circle from detector output. Values are truncated toward zero.
func NewCircle(x, y, r float64) *Circle {
	return &Circle{
		X: int(x),
		Y: int(y),
		R: int(r),
	}
}

// NewCircleAt creates circle stamped with given frame number
func NewCircleAt(x, y, r float64, frameNo int) *Circle {
	c := NewCircle(x, y, r)
	c.FrameNo = frameNo
	return c
}

// Center returns circle's center
func (c *Circle) Center() Point {
	return Point{X: float64(c.X), Y: float64(c.Y)}
}

// ImageCenter returns circle's center in image coordinates
func (c *Circle) ImageCenter() image.Point {
	return image.Pt(c.X, c.Y)
}

// Stamp sets frame number the circle has been observed at
func (c *Circle) Stamp(frameNo int) {
	c.FrameNo = frameNo
}

// Speed returns cached speed relative to the previous state of the same marker.
// The second value is false on a marker's first sighting.
func (c *Circle) Speed() (float64, bool) {
	return c.speed, c.hasSpeed
}

// SetSpeed caches speed on the circle
func (c *Circle) SetSpeed(speed float64) {
	c.speed = speed
	c.hasSpeed = true
}

func (c *Circle) String() string {
	if c == nil {
		return "<unknown>"
	}
	return formatPosition(c.X, c.Y)
}

func stampAll(circles []*Circle, frameNo int) {
	for _, c := range circles {
		c.Stamp(frameNo)
	}
}
