// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package geometry

import "math"

// meshBuilder accumulates positions/normals/indices for a solid under
// construction; shared by Extrude/Revolve/SweepDisk/tessellated builders.
type meshBuilder struct {
	positions []Vec3
	normals   []Vec3
	indices   []uint32
}

func (b *meshBuilder) addVertex(p, n Vec3) uint32 {
	b.positions = append(b.positions, p)
	b.normals = append(b.normals, n)
	return uint32(len(b.positions) - 1)
}

func (b *meshBuilder) addTriangle(a, c, d uint32) {
	b.indices = append(b.indices, a, c, d)
}

func (b *meshBuilder) finish() ([]Vec3, []Vec3, []uint32) {
	return b.positions, b.normals, b.indices
}

// ExtrudeAreaSolid implements IfcExtrudedAreaSolid (§4.F.3): a triangulated
// profile capped top and bottom, connected by side quads, in the
// profile's local frame (positionTransform is applied by the caller to
// the result, matching "apply the profile's Position transform, then the
// solid's Position").
func ExtrudeAreaSolid(profile Profile, direction Vec3, depth float64) ([]Vec3, []Vec3, []uint32, error) {
	pts2, tris, err := profile.Triangulate()
	if err != nil {
		return nil, nil, nil, err
	}
	dir := direction.Normalize()
	b := &meshBuilder{}

	bottomStart := uint32(0)
	for _, p := range pts2 {
		b.addVertex(Vec3{p.X, p.Y, 0}, dir.Scale(-1))
	}
	topStart := uint32(len(b.positions))
	for _, p := range pts2 {
		b.addVertex(Vec3{p.X, p.Y, 0}.Add(dir.Scale(depth)), dir)
	}
	for i := 0; i+2 < len(tris); i += 3 {
		// Bottom cap reversed (facing -dir).
		b.addTriangle(bottomStart+tris[i], bottomStart+tris[i+2], bottomStart+tris[i+1])
		// Top cap.
		b.addTriangle(topStart+tris[i], topStart+tris[i+1], topStart+tris[i+2])
	}

	n := len(pts2)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		p0, p1 := pts2[i], pts2[j]
		v0 := Vec3{p0.X, p0.Y, 0}
		v1 := Vec3{p1.X, p1.Y, 0}
		v0t := v0.Add(dir.Scale(depth))
		v1t := v1.Add(dir.Scale(depth))
		edge := v1.Sub(v0)
		faceNormal := edge.Cross(dir).Normalize()
		a := b.addVertex(v0, faceNormal)
		c := b.addVertex(v1, faceNormal)
		d := b.addVertex(v1t, faceNormal)
		e := b.addVertex(v0t, faceNormal)
		b.addTriangle(a, c, d)
		b.addTriangle(a, d, e)
	}

	p, norm, idx := b.finish()
	return p, norm, idx, nil
}

// RevolveAreaSolid implements IfcRevolvedAreaSolid: revolve a profile
// around the Z axis of its own local frame by angleRadians. Segment count
// follows §4.F.3: max(24, ceil(angle/θ_err)).
func RevolveAreaSolid(profile Profile, angleRadians, tolerance float64) ([]Vec3, []Vec3, []uint32, error) {
	if len(profile.Outer) < 3 {
		return nil, nil, nil, &ProfileInvalidError{Reason: "empty revolution profile"}
	}
	full := circleSegmentCount(maxRadialExtent(profile.Outer), tolerance)
	segs := int(math.Ceil(angleRadians / (2 * math.Pi) * float64(full)))
	if segs < 24 {
		segs = 24
	}

	b := &meshBuilder{}
	profilePts := profile.Outer
	ringCount := segs + 1
	rings := make([][]uint32, ringCount)
	for s := 0; s < ringCount; s++ {
		theta := angleRadians * float64(s) / float64(segs)
		cos, sin := math.Cos(theta), math.Sin(theta)
		ring := make([]uint32, len(profilePts))
		for i, p := range profilePts {
			// Profile X is the revolution radius, Y is height along axis.
			pos := Vec3{p.X * cos, p.X * sin, p.Y}
			radial := Vec3{cos, sin, 0}
			ring[i] = b.addVertex(pos, radial)
		}
		rings[s] = ring
	}
	n := len(profilePts)
	for s := 0; s < segs; s++ {
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			a, c := rings[s][i], rings[s][j]
			d, e := rings[s+1][j], rings[s+1][i]
			b.addTriangle(a, c, d)
			b.addTriangle(a, d, e)
		}
	}
	p, norm, idx := b.finish()
	return p, norm, idx, nil
}

func maxRadialExtent(loop []Vec2) float64 {
	m := 0.0
	for _, p := range loop {
		if math.Abs(p.X) > m {
			m = math.Abs(p.X)
		}
	}
	return m
}

// SweptDiskSolid implements IfcSweptDiskSolid: a disk of radius r swept
// along directrix using a Frenet-like frame with up-vector stabilization
// (§4.F.3) — the frame's "up" is re-derived each step from the previous
// binormal to avoid flipping on near-straight segments.
func SweptDiskSolid(directrix []Vec3, radius, tolerance float64) ([]Vec3, []Vec3, []uint32, error) {
	if len(directrix) < 2 {
		return nil, nil, nil, &ProfileInvalidError{Reason: "directrix needs at least 2 points"}
	}
	segCount := circleSegmentCount(radius, tolerance)
	b := &meshBuilder{}

	up := Vec3{0, 0, 1}
	rings := make([][]uint32, len(directrix))
	for i, center := range directrix {
		var tangent Vec3
		switch {
		case i == 0:
			tangent = directrix[1].Sub(directrix[0]).Normalize()
		case i == len(directrix)-1:
			tangent = directrix[i].Sub(directrix[i-1]).Normalize()
		default:
			tangent = directrix[i+1].Sub(directrix[i-1]).Normalize()
		}
		if math.Abs(tangent.Dot(up)) > 0.99 {
			up = Vec3{1, 0, 0}
		}
		side := tangent.Cross(up).Normalize()
		binorm := side.Cross(tangent).Normalize()
		up = binorm

		ring := make([]uint32, segCount)
		for s := 0; s < segCount; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segCount)
			offset := side.Scale(radius * math.Cos(theta)).Add(binorm.Scale(radius * math.Sin(theta)))
			normal := offset.Normalize()
			ring[s] = b.addVertex(center.Add(offset), normal)
		}
		rings[i] = ring
	}
	for i := 0; i+1 < len(rings); i++ {
		for s := 0; s < segCount; s++ {
			s2 := (s + 1) % segCount
			a, c := rings[i][s], rings[i][s2]
			d, e := rings[i+1][s2], rings[i+1][s]
			b.addTriangle(a, c, d)
			b.addTriangle(a, d, e)
		}
	}
	p, norm, idx := b.finish()
	return p, norm, idx, nil
}
