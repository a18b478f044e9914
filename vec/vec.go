// SPDX-License-Identifier: GPL-2.0-or-later

// Package vec provides the small amount of float32 vector math the
// geometry builder needs: background-quad completion and sprite plane
// solving.
package vec

import "github.com/chewxy/math32"

type Vec2 struct {
	X, Y float32
}

type Vec3 struct {
	X, Y, Z float32
}

func Add2(a, b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func Sub2(a, b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func Add3(a, b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func Sub3(a, b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }

// Cross returns a x b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Dot returns a . b.
func Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Normalize scales v to unit length in place and returns its original
// length, mirroring vec3_normalize in the source (which the caller uses
// to detect the degenerate, zero-length case).
func Normalize(v *Vec3) float32 {
	len := v.Length()
	if len != 0 {
		inv := 1 / len
		v.X *= inv
		v.Y *= inv
		v.Z *= inv
	}
	return len
}
