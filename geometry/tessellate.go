// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package geometry

import "math"

// TriangulatedFaceSet builds a mesh directly from IfcTriangulatedFaceSet's
// coordinate list and 1-based triangle index triples (§4.F.4 fast path:
// the caller is expected to have parsed coordIndex straight off the raw
// bytes without building an intermediate token tree; this function only
// does the numeric assembly). normals may be nil (smooth normals are then
// computed per vertex).
func TriangulatedFaceSet(coords []Vec3, coordIndex1Based [][3]int, normals []Vec3) ([]Vec3, []Vec3, []uint32) {
	indices := make([]uint32, 0, len(coordIndex1Based)*3)
	for _, tri := range coordIndex1Based {
		indices = append(indices, uint32(tri[0]-1), uint32(tri[1]-1), uint32(tri[2]-1))
	}
	if normals == nil {
		normals = computeSmoothNormals(coords, indices)
	}
	return coords, normals, indices
}

// computeSmoothNormals accumulates area-weighted face normals per vertex
// and normalizes, the conventional smooth-shading approach.
func computeSmoothNormals(coords []Vec3, indices []uint32) []Vec3 {
	acc := make([]Vec3, len(coords))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(coords) || int(b) >= len(coords) || int(c) >= len(coords) {
			continue
		}
		fn := coords[b].Sub(coords[a]).Cross(coords[c].Sub(coords[a]))
		acc[a] = acc[a].Add(fn)
		acc[b] = acc[b].Add(fn)
		acc[c] = acc[c].Add(fn)
	}
	for i := range acc {
		acc[i] = acc[i].Normalize()
		if acc[i] == (Vec3{}) {
			acc[i] = Vec3{0, 0, 1}
		}
	}
	return acc
}

// PolygonalFaceSet triangulates IfcPolygonalFaceSet's arbitrary-polygon
// faces with ear-clipping, remapping through pnIndex (1-based) when
// present (§4.F.4).
func PolygonalFaceSet(coords []Vec3, faces [][]int, pnIndex []int) ([]Vec3, []Vec3, []uint32, error) {
	remap := func(i int) int {
		if pnIndex != nil {
			return pnIndex[i-1]
		}
		return i
	}
	var indices []uint32
	for _, face := range faces {
		pts3 := make([]Vec3, len(face))
		for i, idx1 := range face {
			pts3[i] = coords[remap(idx1)-1]
		}
		tris, err := triangulatePolygon3D(pts3)
		if err != nil {
			return nil, nil, nil, err
		}
		for _, t := range tris {
			a := uint32(remap(face[t[0]]) - 1)
			b := uint32(remap(face[t[1]]) - 1)
			c := uint32(remap(face[t[2]]) - 1)
			indices = append(indices, a, b, c)
		}
	}
	normals := computeSmoothNormals(coords, indices)
	return coords, normals, indices, nil
}

// FacetedBrep triangulates each face of a closed shell (faces of loops of
// 3-D points) by fitting a plane and ear-clipping in that plane (§4.F.4).
func FacetedBrep(faces [][][]Vec3) ([]Vec3, []Vec3, []uint32, error) {
	var positions, normals []Vec3
	var indices []uint32
	for _, loops := range faces {
		if len(loops) == 0 {
			continue
		}
		outer := loops[0]
		tris, err := triangulatePolygon3D(outer)
		if err != nil {
			return nil, nil, nil, err
		}
		base := uint32(len(positions))
		fn := faceNormal(outer)
		for _, p := range outer {
			positions = append(positions, p)
			normals = append(normals, fn)
		}
		for _, t := range tris {
			indices = append(indices, base+uint32(t[0]), base+uint32(t[1]), base+uint32(t[2]))
		}
	}
	return positions, normals, indices, nil
}

func faceNormal(loop []Vec3) Vec3 {
	if len(loop) < 3 {
		return Vec3{0, 0, 1}
	}
	return loop[1].Sub(loop[0]).Cross(loop[2].Sub(loop[0])).Normalize()
}

// triangulatePolygon3D projects a (near-)planar 3-D loop onto the plane
// through its first three vertices and ear-clips it there, returning
// 0-based index triples local to loop.
func triangulatePolygon3D(loop []Vec3) ([][3]int, error) {
	if len(loop) < 3 {
		return nil, &ProfileInvalidError{Reason: "face has fewer than 3 vertices"}
	}
	n := faceNormal(loop)
	u, v := orthonormalBasis(n)
	flat := make([]Vec2, len(loop))
	origin := loop[0]
	for i, p := range loop {
		d := p.Sub(origin)
		flat[i] = Vec2{d.Dot(u), d.Dot(v)}
	}
	idx, err := earClip(flat)
	if err != nil {
		return nil, err
	}
	tris := make([][3]int, 0, len(idx)/3)
	for i := 0; i+2 < len(idx); i += 3 {
		tris = append(tris, [3]int{int(idx[i]), int(idx[i+1]), int(idx[i+2])})
	}
	return tris, nil
}

func orthonormalBasis(n Vec3) (Vec3, Vec3) {
	ref := Vec3{0, 0, 1}
	if math.Abs(n.Dot(ref)) > 0.9 {
		ref = Vec3{1, 0, 0}
	}
	u := ref.Cross(n).Normalize()
	v := n.Cross(u).Normalize()
	return u, v
}
