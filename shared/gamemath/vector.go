// Package gamemath holds the pure 2D math shared by the simulation and its
// tests. Every function here is stateless and returns new values.
package gamemath

import "math"

// Vec2 is an immutable 2D vector. Y grows upward.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(u Vec2) Vec2 { return Vec2{v.X + u.X, v.Y + u.Y} }

func (v Vec2) Sub(u Vec2) Vec2 { return Vec2{v.X - u.X, v.Y - u.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(u Vec2) float64 { return v.X*u.X + v.Y*u.Y }

func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to length 1. The zero vector stays zero.
func (v Vec2) Normalized() Vec2 {
	return v.WithLength(1)
}

// WithLength returns v pointing the same way with the given magnitude.
// The zero vector stays zero for any requested length.
func (v Vec2) WithLength(length float64) Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Zero
	}
	return v.Scale(length / m)
}

// ClampLength shortens v to max if it is longer, keeping its direction.
func (v Vec2) ClampLength(max float64) Vec2 {
	if v.Magnitude() > max {
		return v.WithLength(max)
	}
	return v
}

func (v Vec2) Equal(u Vec2) bool { return v.X == u.X && v.Y == u.Y }

// ApproxEqual reports whether v and u differ by at most eps on each axis.
func (v Vec2) ApproxEqual(u Vec2, eps float64) bool {
	return math.Abs(v.X-u.X) <= eps && math.Abs(v.Y-u.Y) <= eps
}

// IsFinite is false when either component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func Distance(a, b Vec2) float64 { return a.Sub(b).Magnitude() }
