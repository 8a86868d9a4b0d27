// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"github.com/ifc-lite/ifclite/geometry"
)

// geometryBuilder walks decoded entities and routes representation items
// to the geometry kernel (§4.F). It is driven by (*Model).BuildGeometry,
// separately from the columnar build since meshing is the expensive,
// optional half of processing a file (§2 "35% share").
type geometryBuilder struct {
	model *Model

	meshes    map[uint32]*geometry.Mesh
	instances map[uint32]*geometry.InstancedGeometry

	// styleIndex maps a representation item's express id to its resolved
	// IfcStyledItem color, built lazily on first lookup (§4.F.8).
	styleIndex map[uint32]*geometry.Color
}

func newGeometryBuilder(m *Model) *geometryBuilder {
	return &geometryBuilder{
		model:     m,
		meshes:    make(map[uint32]*geometry.Mesh),
		instances: make(map[uint32]*geometry.InstancedGeometry),
	}
}

// styledColorFor returns the IfcStyledItem-resolved color for a
// representation item, or nil when none applies. Only item-level styling
// is resolved; type-level styling (via IfcTypeProduct.RepresentationMaps)
// is a rarer path and is left to geometry.ResolveColor's default-color
// fallback.
func (b *geometryBuilder) styledColorFor(itemID uint32) *geometry.Color {
	if b.styleIndex == nil {
		b.buildStyleIndex()
	}
	return b.styleIndex[itemID]
}

func (b *geometryBuilder) buildStyleIndex() {
	b.styleIndex = make(map[uint32]*geometry.Color)
	m := b.model
	typeID, ok := m.internerLookupUpper("IFCSTYLEDITEM")
	if !ok {
		return
	}
	for _, id := range m.index.IDsOfType(typeID) {
		e, err := m.decoder.Decode(id)
		if err != nil {
			continue
		}
		itemVal, ok := e.Attr("Item")
		if !ok || itemVal.Kind != AVEntityRef {
			continue
		}
		stylesVal, ok := e.Attr("Styles")
		if !ok {
			continue
		}
		for _, styleID := range entityRefIDs(stylesVal) {
			if c := b.resolveSurfaceColor(styleID); c != nil {
				b.styleIndex[itemVal.Ref] = c
				break
			}
		}
	}
}

// resolveSurfaceColor descends IfcSurfaceStyle.Styles to the first
// IfcSurfaceStyleRendering it finds and reads its SurfaceColour/
// Transparency (§4.F.8).
func (b *geometryBuilder) resolveSurfaceColor(styleID uint32) *geometry.Color {
	m := b.model
	style, err := m.decoder.Decode(styleID)
	if err != nil {
		return nil
	}
	switch style.TypeUpper {
	case "IFCSURFACESTYLE":
		stylesVal, ok := style.Attr("Styles")
		if !ok {
			return nil
		}
		for _, subID := range entityRefIDs(stylesVal) {
			if c := b.resolveSurfaceColor(subID); c != nil {
				return c
			}
		}
		return nil
	case "IFCSURFACESTYLERENDERING":
		colorVal, ok := style.Attr("SurfaceColour")
		if !ok || colorVal.Kind != AVEntityRef {
			return nil
		}
		colorEntity, err := m.decoder.Decode(colorVal.Ref)
		if err != nil || colorEntity.TypeUpper != "IFCCOLOURRGB" {
			return nil
		}
		alpha := 1.0
		if tv, ok := style.Attr("Transparency"); ok && tv.Kind == AVReal {
			alpha = 1 - tv.Real
		}
		c := geometry.Color{realAttr(colorEntity, "Red"), realAttr(colorEntity, "Green"), realAttr(colorEntity, "Blue"), alpha}
		return &c
	default:
		return nil
	}
}

// BuildGeometry tessellates every product flagged HAS_GEOMETRY in the
// EntityTable, populating m.meshes and m.instanced. Per-entity failures
// are recorded as warnings and skip only that entity (§7 "Entity-level
// errors... never abort the whole parse").
func (m *Model) BuildGeometry() error {
	if m.entityTable == nil {
		return errNoEntityTable
	}
	b := newGeometryBuilder(m)
	t := m.entityTable
	for row := 0; row < t.Len(); row++ {
		if !t.HasFlag(row, FlagHasGeometry) {
			continue
		}
		id := t.ExpressID[row]
		if err := b.buildProduct(id); err != nil {
			m.addWarning(id, warnKindFor(err), err.Error())
			t.setFlag(row, FlagGeometryFailed)
		}
	}
	m.meshes = b.meshes
	m.instanced = b.instances
	return nil
}

var errNoEntityTable = &MalformedError{Reason: "BuildGeometry called before build()"}

func (b *geometryBuilder) buildProduct(productID uint32) error {
	m := b.model
	product, err := m.decoder.Decode(productID)
	if err != nil {
		return err
	}
	repVal, ok := product.Attr("Representation")
	if !ok || repVal.Kind != AVEntityRef {
		return nil
	}
	shape, err := m.decoder.Decode(repVal.Ref)
	if err != nil {
		return err
	}

	placement := geometry.Identity()
	if pv, ok := product.Attr("ObjectPlacement"); ok && pv.Kind == AVEntityRef {
		mat, err := b.resolvePlacement(pv.Ref)
		if err == nil {
			placement = mat
		}
	}

	shapeRepVal, ok := shape.Attr("Representations")
	if !ok {
		return nil
	}
	for _, repID := range entityRefIDs(shapeRepVal) {
		shapeRep, err := m.decoder.Decode(repID)
		if err != nil {
			continue
		}
		itemsVal, ok := shapeRep.Attr("Items")
		if !ok {
			continue
		}
		for _, itemID := range entityRefIDs(itemsVal) {
			mesh, err := b.buildItem(itemID, productID, placement)
			if err != nil {
				m.addWarning(itemID, warnKindFor(err), err.Error())
				continue
			}
			if mesh == nil {
				continue
			}
			b.finalizeMesh(mesh, placement)
			mesh.ExpressID = productID
			mesh.Color = geometry.ResolveColor(b.styledColorFor(itemID), nil, product.TypeUpper)
			if verts, tris := len(mesh.Positions)/3, len(mesh.Indices)/3; verts < 3 || tris < 1 {
				degErr := &geometry.DegenerateMeshError{Vertices: verts, Triangles: tris}
				m.addWarning(itemID, warnKindFor(degErr), degErr.Error())
				continue
			}
			b.meshes[productID] = mesh
		}
	}
	return nil
}

// warnKindFor classifies a geometry-kernel error into the WarningKind that
// best describes it: invalid profiles, curve gaps, and undersized meshes
// all stem from the same "the shape as authored can't be built" family and
// are recorded as DegenerateProfile; anything else falls back to the
// generic UnsupportedGeometry kind.
func warnKindFor(err error) WarningKind {
	switch err.(type) {
	case *geometry.ProfileInvalidError, *geometry.CurveGapError, *geometry.DegenerateMeshError:
		return WarnDegenerateProfile
	default:
		return WarnUnsupportedGeometry
	}
}

// finalizeMesh applies the product placement, computes bounds/RTC and
// downcasts to f32 (§4.F.6).
func (b *geometryBuilder) finalizeMesh(mesh *geometry.Mesh, placement geometry.Mat4) {
	n := len(mesh.Positions) / 3
	transformed := make([]geometry.Vec3, n)
	for i := 0; i < n; i++ {
		p := geometry.Vec3{X: float64(mesh.Positions[i*3]), Y: float64(mesh.Positions[i*3+1]), Z: float64(mesh.Positions[i*3+2])}
		transformed[i] = placement.Apply(p)
	}
	mesh.Bounds = geometry.ComputeBounds(transformed)
	shifted, offset := geometry.ApplyRTC(transformed, b.model.opts.CoordinateShiftThreshold)
	mesh.Positions = shifted
	mesh.RTCOffset = offset
	mesh.TransformApplied = true
}

// buildItem dispatches one representation item to the geometry kernel and
// returns an unplaced (pre-product-transform) mesh in f32. placement is
// only consumed by IfcMappedItem, which must fold the host's world
// transform into its per-instance transform since it never produces a
// standalone Mesh for finalizeMesh to place.
func (b *geometryBuilder) buildItem(itemID, hostID uint32, placement geometry.Mat4) (*geometry.Mesh, error) {
	m := b.model
	item, err := m.decoder.Decode(itemID)
	if err != nil {
		return nil, err
	}
	quality := m.opts.Quality
	tol := quality.ChordTolerance()

	switch item.TypeUpper {
	case "IFCEXTRUDEDAREASOLID":
		return b.buildExtruded(item, itemID, hostID, tol)
	case "IFCREVOLVEDAREASOLID":
		return b.buildRevolved(item, tol)
	case "IFCSWEPTDISKSOLID":
		return b.buildSweptDisk(item, tol)
	case "IFCTRIANGULATEDFACESET":
		return b.buildTriangulatedFaceSet(item)
	case "IFCPOLYGONALFACESET":
		return b.buildPolygonalFaceSet(item)
	case "IFCFACETEDBREP":
		return b.buildFacetedBrep(item)
	case "IFCMAPPEDITEM":
		return b.buildMappedItem(item, itemID, hostID, placement)
	default:
		return nil, nil
	}
}

func (b *geometryBuilder) resolveProfile(profileID uint32, tol float64) (geometry.Profile, error) {
	m := b.model
	p, err := m.decoder.Decode(profileID)
	if err != nil {
		return geometry.Profile{}, err
	}
	switch p.TypeUpper {
	case "IFCRECTANGLEPROFILEDEF":
		return geometry.RectangleProfile(realAttr(p, "XDim"), realAttr(p, "YDim")), nil
	case "IFCCIRCLEPROFILEDEF":
		return geometry.CircleProfile(realAttr(p, "Radius"), tol), nil
	case "IFCCIRCLEHOLLOWPROFILEDEF":
		return geometry.CircleHollowProfile(realAttr(p, "Radius"), realAttr(p, "WallThickness"), tol), nil
	case "IFCISHAPEPROFILEDEF":
		return geometry.IShapeProfile(
			realAttr(p, "OverallWidth"), realAttr(p, "OverallDepth"),
			realAttr(p, "WebThickness"), realAttr(p, "FlangeThickness"), realAttr(p, "FilletRadius"),
		), nil
	case "IFCARBITRARYCLOSEDPROFILEDEF", "IFCARBITRARYPROFILEDEFWITHVOIDS":
		return b.resolveArbitraryProfile(p, tol)
	default:
		return geometry.Profile{}, &geometry.ProfileInvalidError{Reason: "unsupported profile type " + p.TypeUpper}
	}
}

func (b *geometryBuilder) resolveArbitraryProfile(p *DecodedEntity, tol float64) (geometry.Profile, error) {
	outerVal, ok := p.Attr("OuterCurve")
	if !ok || outerVal.Kind != AVEntityRef {
		return geometry.Profile{}, &geometry.ProfileInvalidError{Reason: "missing OuterCurve"}
	}
	outer, err := b.resolveCurve2D(outerVal.Ref, tol)
	if err != nil {
		return geometry.Profile{}, err
	}
	var holes [][]geometry.Vec2
	if innerVal, ok := p.Attr("InnerCurves"); ok {
		for _, innerID := range entityRefIDs(innerVal) {
			h, err := b.resolveCurve2D(innerID, tol)
			if err == nil {
				holes = append(holes, h)
			}
		}
	}
	return geometry.ArbitraryProfile(outer, holes), nil
}

// resolveCurve2D resolves an IfcCurve (Polyline/Circle/CompositeCurve) to
// its 2-D point list, dropping Z (profile curves are always planar in XY).
func (b *geometryBuilder) resolveCurve2D(curveID uint32, tol float64) ([]geometry.Vec2, error) {
	pts3, err := b.resolveCurve3D(curveID, tol)
	if err != nil {
		return nil, err
	}
	out := make([]geometry.Vec2, len(pts3))
	for i, p := range pts3 {
		out[i] = geometry.Vec2{X: p.X, Y: p.Y}
	}
	return out, nil
}

func (b *geometryBuilder) resolveCurve3D(curveID uint32, tol float64) ([]geometry.Vec3, error) {
	m := b.model
	c, err := m.decoder.Decode(curveID)
	if err != nil {
		return nil, err
	}
	switch c.TypeUpper {
	case "IFCPOLYLINE":
		ptsVal, _ := c.Attr("Points")
		return b.resolvePointList(entityRefIDs(ptsVal)), nil
	case "IFCCIRCLE":
		return geometry.CirclePoints(realAttr(c, "Radius"), tol), nil
	case "IFCCOMPOSITECURVE":
		segsVal, _ := c.Attr("Segments")
		var segments [][]geometry.Vec3
		for _, segID := range entityRefIDs(segsVal) {
			seg, err := m.decoder.Decode(segID)
			if err != nil {
				continue
			}
			var parentCurveID uint32
			if pc, ok := seg.Attr("ParentCurve"); ok && pc.Kind == AVEntityRef {
				parentCurveID = pc.Ref
			} else {
				continue
			}
			pts, err := b.resolveCurve3D(parentCurveID, tol)
			if err == nil {
				segments = append(segments, pts)
			}
		}
		return geometry.CompositeCurve(segments, 1e-6)
	case "IFCTRIMMEDCURVE":
		basisVal, _ := c.Attr("BasisCurve")
		if basisVal.Kind != AVEntityRef {
			return nil, &geometry.ProfileInvalidError{Reason: "trimmed curve missing basis"}
		}
		return b.resolveCurve3D(basisVal.Ref, tol)
	case "IFCBSPLINECURVEWITHKNOTS":
		cpVal, _ := c.Attr("ControlPointsList")
		knotsVal, _ := c.Attr("Knots")
		degreeVal, _ := c.Attr("Degree")
		cps := b.resolvePointList(entityRefIDs(cpVal))
		knots := realList(knotsVal)
		return geometry.BSplineWithKnots(cps, knots, int(degreeVal.Int), tol), nil
	default:
		return nil, &geometry.ProfileInvalidError{Reason: "unsupported curve type " + c.TypeUpper}
	}
}

func realList(v AttributeValue) []float64 {
	if v.Kind != AVList {
		return nil
	}
	out := make([]float64, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind == AVReal {
			out = append(out, item.Real)
		} else if item.Kind == AVInteger {
			out = append(out, float64(item.Int))
		}
	}
	return out
}

func (b *geometryBuilder) resolvePointList(ids []uint32) []geometry.Vec3 {
	out := make([]geometry.Vec3, 0, len(ids))
	for _, id := range ids {
		out = append(out, b.resolveCartesianPoint(id))
	}
	return out
}

// resolveCartesianPoint reads an IfcCartesianPoint's Coordinates (proxy
// decoded: the schema registry carries no dedicated entry for it since
// its single attribute is a bare real list, §4.C "unknown entity types
// ... decoded positionally").
func (b *geometryBuilder) resolveCartesianPoint(id uint32) geometry.Vec3 {
	e, err := b.model.decoder.Decode(id)
	if err != nil || len(e.Attributes) == 0 {
		return geometry.Vec3{}
	}
	coords := realList(e.Attributes[0])
	var v geometry.Vec3
	if len(coords) > 0 {
		v.X = coords[0]
	}
	if len(coords) > 1 {
		v.Y = coords[1]
	}
	if len(coords) > 2 {
		v.Z = coords[2]
	}
	return v
}

func (b *geometryBuilder) resolveDirection(id uint32) geometry.Vec3 {
	return b.resolveCartesianPoint(id)
}

// resolvePlacement walks the IfcLocalPlacement chain to a world transform
// (§4.F routing).
func (b *geometryBuilder) resolvePlacement(placementID uint32) (geometry.Mat4, error) {
	m := b.model
	p, err := m.decoder.Decode(placementID)
	if err != nil {
		return geometry.Identity(), err
	}
	if p.TypeUpper != "IFCLOCALPLACEMENT" {
		return geometry.Identity(), nil
	}
	local := geometry.Identity()
	if rp, ok := p.Attr("RelativePlacement"); ok && rp.Kind == AVEntityRef {
		local = b.resolveAxis2Placement3D(rp.Ref)
	}
	parent := geometry.Identity()
	if rt, ok := p.Attr("PlacementRelTo"); ok && rt.Kind == AVEntityRef {
		parent, _ = b.resolvePlacement(rt.Ref)
	}
	return parent.Mul(local), nil
}

func (b *geometryBuilder) resolveAxis2Placement3D(id uint32) geometry.Mat4 {
	e, err := b.model.decoder.Decode(id)
	if err != nil {
		return geometry.Identity()
	}
	var origin geometry.Vec3
	if loc, ok := e.Attr("Location"); ok && loc.Kind == AVEntityRef {
		origin = b.resolveCartesianPoint(loc.Ref)
	}
	z := geometry.Vec3{Z: 1}
	if ax, ok := e.Attr("Axis"); ok && ax.Kind == AVEntityRef {
		z = b.resolveDirection(ax.Ref).Normalize()
	}
	x := geometry.Vec3{X: 1}
	if rd, ok := e.Attr("RefDirection"); ok && rd.Kind == AVEntityRef {
		x = b.resolveDirection(rd.Ref)
	}
	// Gram-Schmidt x against z, then y = z × x, per IFC's axis2placement
	// construction rule.
	x = x.Sub(z.Scale(x.Dot(z))).Normalize()
	if x == (geometry.Vec3{}) {
		x = geometry.Vec3{X: 1}
	}
	y := z.Cross(x)
	return geometry.FromAxes(origin, x, y, z)
}

func (b *geometryBuilder) buildExtruded(item *DecodedEntity, itemID, hostID uint32, tol float64) (*geometry.Mesh, error) {
	sweptAreaVal, ok := item.Attr("SweptArea")
	if !ok || sweptAreaVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing SweptArea"}
	}
	profile, err := b.resolveProfile(sweptAreaVal.Ref, tol)
	if err != nil {
		return nil, err
	}

	if b.model.opts.EnableVoids {
		profile = b.applyVoids(hostID, profile, tol)
	}

	dir := geometry.Vec3{Z: 1}
	if dv, ok := item.Attr("ExtrudedDirection"); ok && dv.Kind == AVEntityRef {
		dir = b.resolveDirection(dv.Ref)
	}
	depth := realAttr(item, "Depth")

	positions, normals, indices, err := geometry.ExtrudeAreaSolid(profile, dir, depth)
	if err != nil {
		return nil, err
	}
	return b.assembleMesh(itemID, item.TypeUpper, positions, normals, indices), nil
}

// applyVoids implements Tier 1 of §4.F.5: subtract opening footprints from
// the host's extrusion profile. The swept-area profile of every
// IfcExtrudedAreaSolid item of an opening is subtracted as a hole; other
// opening items are skipped, no coplanarity test is made and the
// opening's own placement is not applied. An opening whose profile cannot be resolved is recorded as
// BooleanFailed and skipped; the other openings are still subtracted.
func (b *geometryBuilder) applyVoids(hostID uint32, profile geometry.Profile, tol float64) geometry.Profile {
	m := b.model
	openingIDs := m.relGraph.Forward(RelVoidsElement, hostID)
	if len(openingIDs) == 0 {
		return profile
	}
	var voidProfiles []geometry.Profile
	for _, openingID := range openingIDs {
		opening, err := m.decoder.Decode(openingID)
		if err != nil {
			continue
		}
		repVal, ok := opening.Attr("Representation")
		if !ok || repVal.Kind != AVEntityRef {
			continue
		}
		shape, err := m.decoder.Decode(repVal.Ref)
		if err != nil {
			continue
		}
		repsVal, ok := shape.Attr("Representations")
		if !ok {
			continue
		}
		for _, repID := range entityRefIDs(repsVal) {
			shapeRep, err := m.decoder.Decode(repID)
			if err != nil {
				continue
			}
			itemsVal, ok := shapeRep.Attr("Items")
			if !ok {
				continue
			}
			for _, openItemID := range entityRefIDs(itemsVal) {
				openItem, err := m.decoder.Decode(openItemID)
				if err != nil || openItem.TypeUpper != "IFCEXTRUDEDAREASOLID" {
					continue
				}
				sweptAreaVal, ok := openItem.Attr("SweptArea")
				if !ok || sweptAreaVal.Kind != AVEntityRef {
					continue
				}
				vp, err := b.resolveProfile(sweptAreaVal.Ref, tol)
				if err != nil {
					m.addWarning(hostID, WarnBooleanFailed, err.Error())
					continue
				}
				voidProfiles = append(voidProfiles, vp)
			}
		}
	}
	if len(voidProfiles) == 0 {
		return profile
	}
	return geometry.SubtractFootprints(profile, geometry.UnionVoidFootprints(voidProfiles))
}

func (b *geometryBuilder) buildRevolved(item *DecodedEntity, tol float64) (*geometry.Mesh, error) {
	sweptAreaVal, ok := item.Attr("SweptArea")
	if !ok || sweptAreaVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing SweptArea"}
	}
	profile, err := b.resolveProfile(sweptAreaVal.Ref, tol)
	if err != nil {
		return nil, err
	}
	angle := realAttr(item, "Angle")
	positions, normals, indices, err := geometry.RevolveAreaSolid(profile, angle, tol)
	if err != nil {
		return nil, err
	}
	return b.assembleMesh(item.ExpressID, item.TypeUpper, positions, normals, indices), nil
}

func (b *geometryBuilder) buildSweptDisk(item *DecodedEntity, tol float64) (*geometry.Mesh, error) {
	directrixVal, ok := item.Attr("Directrix")
	if !ok || directrixVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing Directrix"}
	}
	pts, err := b.resolveCurve3D(directrixVal.Ref, tol)
	if err != nil {
		return nil, err
	}
	radius := realAttr(item, "Radius")
	positions, normals, indices, err := geometry.SweptDiskSolid(pts, radius, tol)
	if err != nil {
		return nil, err
	}
	return b.assembleMesh(item.ExpressID, item.TypeUpper, positions, normals, indices), nil
}

func (b *geometryBuilder) buildTriangulatedFaceSet(item *DecodedEntity) (*geometry.Mesh, error) {
	coordsVal, ok := item.Attr("Coordinates")
	if !ok || coordsVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing Coordinates"}
	}
	coords, err := b.resolveCoordList3D(coordsVal.Ref)
	if err != nil {
		return nil, err
	}
	idxVal, _ := item.Attr("CoordIndex")
	triples := intTriples(idxVal)

	var normals []geometry.Vec3
	if nv, ok := item.Attr("Normals"); ok && nv.Kind == AVList {
		normals = vec3ListFromRealLists(nv)
	}

	positions, norms, indices := geometry.TriangulatedFaceSet(coords, triples, normals)
	return b.assembleMesh(item.ExpressID, item.TypeUpper, positions, norms, indices), nil
}

func (b *geometryBuilder) buildPolygonalFaceSet(item *DecodedEntity) (*geometry.Mesh, error) {
	coordsVal, ok := item.Attr("Coordinates")
	if !ok || coordsVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing Coordinates"}
	}
	coords, err := b.resolveCoordList3D(coordsVal.Ref)
	if err != nil {
		return nil, err
	}
	var pnIndex []int
	if pv, ok := item.Attr("PnIndex"); ok && pv.Kind == AVList {
		pnIndex = intList(pv)
	}
	facesVal, _ := item.Attr("Faces")
	var faces [][]int
	for _, faceID := range entityRefIDs(facesVal) {
		faceEntity, err := b.model.decoder.Decode(faceID)
		if err != nil || len(faceEntity.Attributes) == 0 {
			continue
		}
		faces = append(faces, intList(faceEntity.Attributes[0]))
	}
	positions, normals, indices, err := geometry.PolygonalFaceSet(coords, faces, pnIndex)
	if err != nil {
		return nil, err
	}
	return b.assembleMesh(item.ExpressID, item.TypeUpper, positions, normals, indices), nil
}

func (b *geometryBuilder) buildFacetedBrep(item *DecodedEntity) (*geometry.Mesh, error) {
	outerVal, ok := item.Attr("Outer")
	if !ok || outerVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing Outer"}
	}
	shell, err := b.model.decoder.Decode(outerVal.Ref)
	if err != nil {
		return nil, err
	}
	cfsVal, _ := shell.Attr("CfsFaces")
	var faces [][][]geometry.Vec3
	for _, faceID := range entityRefIDs(cfsVal) {
		face, err := b.model.decoder.Decode(faceID)
		if err != nil {
			continue
		}
		boundsVal, _ := face.Attr("Bounds")
		var loops [][]geometry.Vec3
		for _, boundID := range entityRefIDs(boundsVal) {
			bound, err := b.model.decoder.Decode(boundID)
			if err != nil {
				continue
			}
			boundRef, ok := bound.Attr("Bound")
			if !ok || boundRef.Kind != AVEntityRef {
				continue
			}
			loop, err := b.model.decoder.Decode(boundRef.Ref)
			if err != nil || loop.TypeUpper != "IFCPOLYLOOP" {
				continue
			}
			polyVal, _ := loop.Attr("Polygon")
			loops = append(loops, b.resolvePointList(entityRefIDs(polyVal)))
		}
		if len(loops) > 0 {
			faces = append(faces, loops)
		}
	}
	positions, normals, indices, err := geometry.FacetedBrep(faces)
	if err != nil {
		return nil, err
	}
	return b.assembleMesh(item.ExpressID, item.TypeUpper, positions, normals, indices), nil
}

// buildMappedItem implements §4.F.7: instancing hint preservation. Each
// unique MappingSource's items are tessellated once and cached;
// subsequent references append an Instance instead of re-tessellating.
func (b *geometryBuilder) buildMappedItem(item *DecodedEntity, itemID, hostID uint32, placement geometry.Mat4) (*geometry.Mesh, error) {
	m := b.model
	if !m.opts.EnableInstancing {
		return nil, nil
	}
	srcVal, ok := item.Attr("MappingSource")
	if !ok || srcVal.Kind != AVEntityRef {
		return nil, &geometry.ProfileInvalidError{Reason: "missing MappingSource"}
	}
	tgtVal, ok := item.Attr("MappingTarget")
	targetTransform := geometry.Identity()
	if ok && tgtVal.Kind == AVEntityRef {
		targetTransform = b.resolveCartesianTransformOperator(tgtVal.Ref)
	}

	geom, cached := b.instances[srcVal.Ref]
	if !cached {
		repMap, err := m.decoder.Decode(srcVal.Ref)
		if err != nil {
			return nil, err
		}
		mappedRepVal, ok := repMap.Attr("MappedRepresentation")
		if !ok || mappedRepVal.Kind != AVEntityRef {
			return nil, &geometry.ProfileInvalidError{Reason: "missing MappedRepresentation"}
		}
		mappedRep, err := m.decoder.Decode(mappedRepVal.Ref)
		if err != nil {
			return nil, err
		}
		itemsVal, ok := mappedRep.Attr("Items")
		if !ok {
			return nil, &geometry.ProfileInvalidError{Reason: "mapped representation has no items"}
		}
		var positions, normals []geometry.Vec3
		var indices []uint32
		for _, subItemID := range entityRefIDs(itemsVal) {
			mesh, err := b.buildItem(subItemID, hostID, geometry.Identity())
			if err != nil || mesh == nil {
				continue
			}
			base := uint32(len(positions))
			n := len(mesh.Positions) / 3
			for i := 0; i < n; i++ {
				positions = append(positions, geometry.Vec3{
					X: float64(mesh.Positions[i*3]), Y: float64(mesh.Positions[i*3+1]), Z: float64(mesh.Positions[i*3+2]),
				})
				normals = append(normals, geometry.Vec3{
					X: float64(mesh.Normals[i*3]), Y: float64(mesh.Normals[i*3+1]), Z: float64(mesh.Normals[i*3+2]),
				})
			}
			for _, idx := range mesh.Indices {
				indices = append(indices, base+idx)
			}
		}
		geom = &geometry.InstancedGeometry{
			Positions: geometry.FlattenPositions(positions),
			Normals:   geometry.FlattenNormals(normals),
			Indices:   indices,
		}
		b.instances[srcVal.Ref] = geom
	}
	hostType := item.TypeUpper
	if host, err := m.decoder.Decode(hostID); err == nil {
		hostType = host.TypeUpper
	}
	geom.Instances = append(geom.Instances, geometry.Instance{
		Transform: placement.Mul(targetTransform),
		Color:     geometry.ResolveColor(b.styledColorFor(itemID), nil, hostType),
		ExpressID: hostID,
		IfcType:   item.TypeUpper,
	})
	// A mapped item never produces its own standalone Mesh; geometry lives
	// on the shared InstancedGeometry instead.
	return nil, nil
}

func (b *geometryBuilder) resolveCartesianTransformOperator(id uint32) geometry.Mat4 {
	e, err := b.model.decoder.Decode(id)
	if err != nil {
		return geometry.Identity()
	}
	origin := geometry.Vec3{}
	if lo, ok := e.Attr("LocalOrigin"); ok && lo.Kind == AVEntityRef {
		origin = b.resolveCartesianPoint(lo.Ref)
	}
	x, y, z := geometry.Vec3{X: 1}, geometry.Vec3{Y: 1}, geometry.Vec3{Z: 1}
	if a1, ok := e.Attr("Axis1"); ok && a1.Kind == AVEntityRef {
		x = b.resolveDirection(a1.Ref).Normalize()
	}
	if a2, ok := e.Attr("Axis2"); ok && a2.Kind == AVEntityRef {
		y = b.resolveDirection(a2.Ref).Normalize()
	}
	if a3, ok := e.Attr("Axis3"); ok && a3.Kind == AVEntityRef {
		z = b.resolveDirection(a3.Ref).Normalize()
	} else {
		z = x.Cross(y).Normalize()
	}
	scale := 1.0
	if sv, ok := e.Attr("Scale"); ok && sv.Kind == AVReal {
		scale = sv.Real
	}
	m := geometry.FromAxes(origin, x.Scale(scale), y.Scale(scale), z.Scale(scale))
	return m
}

func (b *geometryBuilder) resolveCoordList3D(id uint32) ([]geometry.Vec3, error) {
	e, err := b.model.decoder.Decode(id)
	if err != nil {
		return nil, err
	}
	coordListVal, ok := e.Attr("CoordList")
	if !ok {
		if len(e.Attributes) == 0 {
			return nil, &geometry.ProfileInvalidError{Reason: "empty coordinate list entity"}
		}
		coordListVal = e.Attributes[0]
	}
	return vec3ListFromRealLists(coordListVal), nil
}

func vec3ListFromRealLists(v AttributeValue) []geometry.Vec3 {
	if v.Kind != AVList {
		return nil
	}
	out := make([]geometry.Vec3, 0, len(v.List))
	for _, row := range v.List {
		r := realList(row)
		var p geometry.Vec3
		if len(r) > 0 {
			p.X = r[0]
		}
		if len(r) > 1 {
			p.Y = r[1]
		}
		if len(r) > 2 {
			p.Z = r[2]
		}
		out = append(out, p)
	}
	return out
}

func intList(v AttributeValue) []int {
	if v.Kind != AVList {
		return nil
	}
	out := make([]int, 0, len(v.List))
	for _, item := range v.List {
		if item.Kind == AVInteger {
			out = append(out, int(item.Int))
		}
	}
	return out
}

func intTriples(v AttributeValue) [][3]int {
	if v.Kind != AVList {
		return nil
	}
	out := make([][3]int, 0, len(v.List))
	for _, row := range v.List {
		ints := intList(row)
		if len(ints) == 3 {
			out = append(out, [3]int{ints[0], ints[1], ints[2]})
		}
	}
	return out
}

// assembleMesh downcasts a freshly tessellated item to the Mesh shape,
// deferring placement/RTC/bounds to finalizeMesh once the product
// transform is known.
func (b *geometryBuilder) assembleMesh(id uint32, ifcType string, positions, normals []geometry.Vec3, indices []uint32) *geometry.Mesh {
	return &geometry.Mesh{
		ExpressID: id,
		IfcType:   ifcType,
		Positions: geometry.FlattenPositions(positions),
		Normals:   geometry.FlattenNormals(normals),
		Indices:   indices,
		Color:     geometry.ResolveColor(b.styledColorFor(id), nil, ifcType),
	}
}
