// Package geom holds the 2D vector math shared by the simulation systems.
package geom

import (
	"fmt"
	"math"
)

// Vec2 is a point or direction in arena units (origin at the arena centre).
type Vec2 struct {
	X, Y float64
}

var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64    { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Len() float64          { return math.Hypot(v.X, v.Y) }
func (v Vec2) LenSq() float64        { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Dist(o Vec2) float64   { return v.Sub(o).Len() }
func (v Vec2) IsZero() bool          { return v.X == 0 && v.Y == 0 }
func (v Vec2) String() string        { return fmt.Sprintf("(%.1f, %.1f)", v.X, v.Y) }

// Normalize returns the unit vector and false when v has zero length.
func (v Vec2) Normalize() (Vec2, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) {
		return Zero, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// ClampLen scales v down so its length does not exceed max.
func (v Vec2) ClampLen(max float64) Vec2 {
	if max <= 0 {
		return Zero
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}
