// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package geometry

import (
	"fmt"
	"math"
)

// CurveGapError reports a composite curve segment that doesn't meet the
// previous segment's end point within tolerance (§4.F.2).
type CurveGapError struct {
	Index int
	Gap   float64
}

func (e *CurveGapError) Error() string {
	return fmt.Sprintf("composite curve gap at segment %d: %g", e.Index, e.Gap)
}

// Line evaluates IfcLine at parameter t (point + t*direction).
func Line(point, direction Vec3, t float64) Vec3 {
	return point.Add(direction.Scale(t))
}

// Polyline returns its own points unchanged; IfcPolyline needs no
// discretization beyond what's already given (§4.F.2 "exact").
func Polyline(points []Vec3) []Vec3 { return points }

// CirclePoints discretizes a full circle of given radius in the curve's
// local XY plane (Z=0), CCW, at the chord tolerance.
func CirclePoints(radius, tolerance float64) []Vec3 {
	n := circleSegmentCount(radius, tolerance)
	out := make([]Vec3, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Vec3{radius * math.Cos(theta), radius * math.Sin(theta), 0}
	}
	return out
}

// TrimmedCirclePoints discretizes an arc from startRadians to endRadians
// (respecting senseAgreement direction), honoring §4.F.2's trim handling.
func TrimmedCirclePoints(radius, startRadians, endRadians float64, senseAgreement bool, tolerance float64) []Vec3 {
	if !senseAgreement {
		startRadians, endRadians = endRadians, startRadians
	}
	span := endRadians - startRadians
	for span < 0 {
		span += 2 * math.Pi
	}
	full := circleSegmentCount(radius, tolerance)
	n := int(math.Ceil(float64(full) * span / (2 * math.Pi)))
	if n < 2 {
		n = 2
	}
	out := make([]Vec3, n+1)
	for i := 0; i <= n; i++ {
		theta := startRadians + span*float64(i)/float64(n)
		out[i] = Vec3{radius * math.Cos(theta), radius * math.Sin(theta), 0}
	}
	return out
}

// BSplineWithKnots evaluates an IfcBSplineCurveWithKnots via de Boor's
// algorithm, sampling at a density chosen from the chord tolerance.
func BSplineWithKnots(controlPoints []Vec3, knots []float64, degree int, tolerance float64) []Vec3 {
	if len(controlPoints) == 0 {
		return nil
	}
	if len(controlPoints) <= degree {
		return controlPoints
	}
	samples := bsplineSampleCount(controlPoints, tolerance)
	lo, hi := knots[degree], knots[len(knots)-degree-1]
	out := make([]Vec3, 0, samples+1)
	for i := 0; i <= samples; i++ {
		u := lo + (hi-lo)*float64(i)/float64(samples)
		out = append(out, deBoor(u, degree, controlPoints, knots))
	}
	return out
}

func bsplineSampleCount(controlPoints []Vec3, tolerance float64) int {
	if tolerance <= 0 {
		tolerance = DefaultChordTolerance
	}
	perSpan := int(math.Ceil(1 / math.Sqrt(tolerance)))
	if perSpan < 4 {
		perSpan = 4
	}
	n := perSpan * (len(controlPoints) - 1)
	if n < 8 {
		n = 8
	}
	return n
}

// deBoor evaluates the B-spline curve defined by controlPoints/knots/degree
// at parameter u using de Boor's recursive algorithm.
func deBoor(u float64, degree int, controlPoints []Vec3, knots []float64) Vec3 {
	k := findKnotSpan(u, degree, knots, len(controlPoints))
	d := make([]Vec3, degree+1)
	for j := 0; j <= degree; j++ {
		d[j] = controlPoints[j+k-degree]
	}
	for r := 1; r <= degree; r++ {
		for j := degree; j >= r; j-- {
			denom := knots[j+1+k-r] - knots[j+k-degree]
			alpha := 0.0
			if denom != 0 {
				alpha = (u - knots[j+k-degree]) / denom
			}
			d[j] = d[j-1].Scale(1 - alpha).Add(d[j].Scale(alpha))
		}
	}
	return d[degree]
}

func findKnotSpan(u float64, degree int, knots []float64, numControlPoints int) int {
	n := numControlPoints - 1
	if u >= knots[n+1] {
		return n
	}
	if u <= knots[degree] {
		return degree
	}
	lo, hi := degree, n+1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if u < knots[mid] {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// CompositeCurve concatenates per-segment point lists end to end,
// checking that consecutive segments share an endpoint within epsLen
// (§4.F.2 "gaps > ε_len fail CurveGap").
func CompositeCurve(segments [][]Vec3, epsLen float64) ([]Vec3, error) {
	if len(segments) == 0 {
		return nil, nil
	}
	out := append([]Vec3(nil), segments[0]...)
	for i := 1; i < len(segments); i++ {
		seg := segments[i]
		if len(seg) == 0 {
			continue
		}
		prevEnd := out[len(out)-1]
		gap := prevEnd.Sub(seg[0]).Length()
		if gap > epsLen {
			return nil, &CurveGapError{Index: i, Gap: gap}
		}
		out = append(out, seg[1:]...)
	}
	return out, nil
}
