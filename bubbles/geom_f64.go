package bubbles

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in pixel space
type Point struct {
	X float64
	Y float64
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func euclideanDistance(p1, p2 Point) float64 {
	return r2.Norm(r2.Sub(p1.vec(), p2.vec()))
}
