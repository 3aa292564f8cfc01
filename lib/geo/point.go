package geo

import (
	"fmt"
	"math"
)

type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p *Point) Copy() *Point {
	if p == nil {
		return nil
	}
	return &Point{X: p.X, Y: p.Y}
}

// IsOrigin reports whether p is nil or sits at (0, 0).
func (p *Point) IsOrigin() bool {
	return p == nil || (p.X == 0 && p.Y == 0)
}

// IsFinite reports whether both coordinates are real numbers.
func (p *Point) IsFinite() bool {
	return p != nil && IsFinite(p.X) && IsFinite(p.Y)
}

// Creates a Vector pointing to point
func (endpoint *Point) ToVector() Vector {
	return []float64{endpoint.X, endpoint.Y}
}

func (p *Point) Transpose() {
	if p == nil {
		return
	}
	p.X, p.Y = p.Y, p.X
}

func (p *Point) ToString() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

// PolarPoint returns the point at radius and angle (radians, 0 pointing along +x) from the origin.
func PolarPoint(radius, angle float64) *Point {
	return NewPoint(radius*math.Cos(angle), radius*math.Sin(angle))
}
