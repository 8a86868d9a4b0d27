// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package geometry

import "math"

// HelmertTransform applies §4.F.6's 2-D similarity (Helmert) transform
// used to convert project-local eastings/northings into map coordinates:
//
//	E = s(cosθ·x − sinθ·y) + E0
//	N = s(sinθ·x + cosθ·y) + N0
//	H = z + H0
func HelmertTransform(ref GeoReference, p Vec3) Vec3 {
	s := ref.Scale
	if s == 0 {
		s = 1
	}
	cos, sin := math.Cos(ref.RotationRadians), math.Sin(ref.RotationRadians)
	e := s*(cos*p.X-sin*p.Y) + ref.Origin.X
	n := s*(sin*p.X+cos*p.Y) + ref.Origin.Y
	h := p.Z + ref.Origin.Z
	return Vec3{e, n, h}
}

// RotationFromAxis returns atan2(xAxisOrdinate, xAxisAbscissa), the angle
// IfcMapConversion's X axis direction encodes (§4.F.6).
func RotationFromAxis(xAxisAbscissa, xAxisOrdinate float64) float64 {
	if xAxisAbscissa == 0 && xAxisOrdinate == 0 {
		return 0
	}
	return math.Atan2(xAxisOrdinate, xAxisAbscissa)
}

// RTCThreshold is the default magnitude past which a mesh centroid
// triggers relative-to-center coordinate shifting (§4.F.6).
const RTCThreshold = 1e4

// ComputeCentroid returns the f64 centroid of a point set.
func ComputeCentroid(positions []Vec3) Vec3 {
	if len(positions) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, p := range positions {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(positions)))
}

// ApplyRTC shifts positions by -centroid when any centroid component
// exceeds threshold in magnitude, returning the shifted f32 positions and
// the recorded offset (nil when no shift was applied). Normals are
// unaffected by translation and are downcast separately by the caller.
func ApplyRTC(positions []Vec3, threshold float64) ([]float32, *Vec3) {
	centroid := ComputeCentroid(positions)
	shift := math.Abs(centroid.X) > threshold || math.Abs(centroid.Y) > threshold || math.Abs(centroid.Z) > threshold

	out := make([]float32, len(positions)*3)
	if !shift {
		for i, p := range positions {
			out[i*3] = float32(p.X)
			out[i*3+1] = float32(p.Y)
			out[i*3+2] = float32(p.Z)
		}
		return out, nil
	}
	for i, p := range positions {
		shifted := p.Sub(centroid)
		out[i*3] = float32(shifted.X)
		out[i*3+1] = float32(shifted.Y)
		out[i*3+2] = float32(shifted.Z)
	}
	return out, &centroid
}

// ComputeBounds returns the axis-aligned bounding box of a point set, in
// project-local coordinates before any RTC shift (§6 "bounds... before
// RTC").
func ComputeBounds(positions []Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	min, max := positions[0], positions[0]
	for _, p := range positions[1:] {
		min = Vec3{math.Min(min.X, p.X), math.Min(min.Y, p.Y), math.Min(min.Z, p.Z)}
		max = Vec3{math.Max(max.X, p.X), math.Max(max.Y, p.Y), math.Max(max.Z, p.Z)}
	}
	return Bounds{Min: min, Max: max}
}

// FlattenPositions downcasts f64 points to a flat f32 xyz buffer, with no
// RTC shift applied (callers wanting RTC use ApplyRTC instead).
func FlattenPositions(positions []Vec3) []float32 {
	out := make([]float32, len(positions)*3)
	for i, p := range positions {
		out[i*3] = float32(p.X)
		out[i*3+1] = float32(p.Y)
		out[i*3+2] = float32(p.Z)
	}
	return out
}

// FlattenNormals downcasts f64 unit normals to f32, renormalizing any that
// drifted off unit length during accumulation.
func FlattenNormals(normals []Vec3) []float32 {
	out := make([]float32, len(normals)*3)
	for i, n := range normals {
		u := n.Normalize()
		out[i*3] = float32(u.X)
		out[i*3+1] = float32(u.Y)
		out[i*3+2] = float32(u.Z)
	}
	return out
}
