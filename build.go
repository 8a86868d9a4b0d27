// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import "strconv"

// columnarBuilder performs the single forward pass of §4.E over an
// EntityIndex, producing the five columnar tables plus the string
// interner. It is only ever driven by (*Model).build.
type columnarBuilder struct {
	model *Model

	entities      *EntityTable
	properties    *PropertyTable
	quantities    *QuantityTable
	relationships *RelationshipGraph
	spatial       *SpatialHierarchy
}

func newColumnarBuilder(m *Model) *columnarBuilder {
	return &columnarBuilder{
		model:         m,
		entities:      newEntityTable(m.index.Len()),
		properties:    newPropertyTable(),
		quantities:    newQuantityTable(),
		relationships: newRelationshipGraph(),
		spatial:       newSpatialHierarchy(),
	}
}

// run executes §4.E steps 2-6 in order and freezes every table.
func (b *columnarBuilder) run() error {
	b.buildEntityTable()
	if err := b.buildRelationshipGraph(); err != nil {
		return err
	}
	b.buildPropertyTable()
	b.buildQuantityTable()
	if err := b.buildSpatialHierarchy(); err != nil {
		return err
	}

	b.entities.freeze()
	b.properties.freeze()
	b.quantities.freeze()
	b.relationships.freeze()
	b.spatial.freeze()
	return nil
}

// buildEntityTable implements §4.E step 2: every IfcRoot subtype gets a
// row with GlobalId/Name/Description and the HAS_GEOMETRY flag.
func (b *columnarBuilder) buildEntityTable() {
	m := b.model
	for _, id := range m.index.AllIDsSorted() {
		ref, _ := m.index.Lookup(id)
		typeUpper, _ := m.interner.Lookup(ref.TypeUpper)
		if !m.schema.IsSubtypeOf(typeUpper, "IFCROOT") {
			continue
		}
		entity, err := m.decoder.Decode(id)
		if err != nil {
			m.addWarning(id, WarnDanglingReference, err.Error())
			continue
		}

		globalID := AbsentStringID
		if v, ok := entity.Attr("GlobalId"); ok && v.Kind == AVString {
			globalID = m.interner.Intern(v.Str)
		}
		name := AbsentStringID
		if v, ok := entity.Attr("Name"); ok && v.Kind == AVString {
			name = m.interner.Intern(v.Str)
		}
		desc := AbsentStringID
		if v, ok := entity.Attr("Description"); ok && v.Kind == AVString {
			desc = m.interner.Intern(v.Str)
		}
		objType := AbsentStringID
		if v, ok := entity.Attr("ObjectType"); ok && v.Kind == AVString {
			objType = m.interner.Intern(v.Str)
		}

		row := b.entities.appendRow(id, typeEnumOf(typeUpper), globalID, name, desc, objType)

		if v, ok := entity.Attr("Representation"); ok && v.Kind != AVNull {
			b.entities.setFlag(row, FlagHasGeometry)
		}
	}
}

// buildRelationshipGraph implements §4.E step 3.
func (b *columnarBuilder) buildRelationshipGraph() error {
	m := b.model

	walk := func(typeName string, kind RelationKind, relatingAttr, relatedAttr string) error {
		typeID, ok := m.internerLookupUpper(typeName)
		if !ok {
			return nil
		}
		for _, id := range m.index.IDsOfType(typeID) {
			entity, err := m.decoder.Decode(id)
			if err != nil {
				m.addWarning(id, WarnDanglingReference, err.Error())
				continue
			}
			relatingVal, ok := entity.Attr(relatingAttr)
			if !ok {
				continue
			}
			relatedVal, ok := entity.Attr(relatedAttr)
			if !ok {
				continue
			}
			relatingIDs := entityRefIDs(relatingVal)
			relatedIDs := entityRefIDs(relatedVal)
			for _, from := range relatingIDs {
				for _, to := range relatedIDs {
					b.relationships.addEdge(kind, from, to)
				}
			}
		}
		return nil
	}

	if err := walk("IFCRELCONTAINEDINSPATIALSTRUCTURE", RelContainedIn, "RelatingStructure", "RelatedElements"); err != nil {
		return err
	}
	if err := walk("IFCRELAGGREGATES", RelAggregates, "RelatingObject", "RelatedObjects"); err != nil {
		return err
	}
	if err := walk("IFCRELDEFINESBYTYPE", RelDefinesByType, "RelatingType", "RelatedObjects"); err != nil {
		return err
	}
	if err := walk("IFCRELDEFINESBYPROPERTIES", RelDefinesByProperties, "RelatingPropertyDefinition", "RelatedObjects"); err != nil {
		return err
	}
	if err := walk("IFCRELASSOCIATESMATERIAL", RelAssociatesMaterial, "RelatingMaterial", "RelatedObjects"); err != nil {
		return err
	}
	if err := walk("IFCRELASSOCIATESCLASSIFICATION", RelAssociatesClassification, "RelatingClassification", "RelatedObjects"); err != nil {
		return err
	}
	if err := walk("IFCRELASSOCIATESDOCUMENT", RelAssociatesDocument, "RelatingDocument", "RelatedObjects"); err != nil {
		return err
	}
	if err := walk("IFCRELVOIDSELEMENT", RelVoidsElement, "RelatingBuildingElement", "RelatedOpeningElement"); err != nil {
		return err
	}
	if err := walk("IFCRELFILLSELEMENT", RelFillsElement, "RelatingOpeningElement", "RelatedBuildingElement"); err != nil {
		return err
	}
	if err := walk("IFCRELCONNECTSPATHELEMENTS", RelConnectsPathElements, "RelatingElement", "RelatedElement"); err != nil {
		return err
	}
	return nil
}

// entityRefIDs extracts every express id out of an AttributeValue that may
// be a single EntityRef or a List of EntityRefs.
func entityRefIDs(v AttributeValue) []uint32 {
	switch v.Kind {
	case AVEntityRef:
		return []uint32{v.Ref}
	case AVList:
		out := make([]uint32, 0, len(v.List))
		for _, item := range v.List {
			out = append(out, entityRefIDs(item)...)
		}
		return out
	default:
		return nil
	}
}

// buildPropertyTable implements §4.E step 4: follow DefinesByProperties
// edges to IfcPropertySet and flatten each of the six property subtypes.
func (b *columnarBuilder) buildPropertyTable() {
	m := b.model
	for _, edge := range b.relationships.Edges(RelDefinesByProperties) {
		psetID := edge.From
		elementID := edge.To
		pset, err := m.decoder.Decode(psetID)
		if err != nil {
			m.addWarning(psetID, WarnDanglingReference, err.Error())
			continue
		}
		if pset.TypeUpper != "IFCPROPERTYSET" {
			continue
		}
		psetNameID := AbsentStringID
		if v, ok := pset.Attr("Name"); ok && v.Kind == AVString {
			psetNameID = m.interner.Intern(v.Str)
		}
		psetGlobalID := AbsentStringID
		if v, ok := pset.Attr("GlobalId"); ok && v.Kind == AVString {
			psetGlobalID = m.interner.Intern(v.Str)
		}
		propsVal, ok := pset.Attr("HasProperties")
		if !ok {
			continue
		}
		for _, propRefID := range entityRefIDs(propsVal) {
			row, ok := b.decodeProperty(propRefID, elementID, psetNameID, psetGlobalID)
			if !ok {
				continue
			}
			b.properties.append(row)
		}
	}
}

func (b *columnarBuilder) decodeProperty(propID, elementID uint32, psetNameID, psetGlobalID StringID) (PropertyRow, bool) {
	m := b.model
	prop, err := m.decoder.Decode(propID)
	if err != nil {
		m.addWarning(propID, WarnDanglingReference, err.Error())
		return PropertyRow{}, false
	}
	row := PropertyRow{
		EntityID:     elementID,
		PSetNameID:   psetNameID,
		PSetGlobalID: psetGlobalID,
		UnitID:       AbsentStringID,
	}
	if v, ok := prop.Attr("Name"); ok && v.Kind == AVString {
		row.PropNameID = m.interner.Intern(v.Str)
	}
	if unitVal, ok := prop.Attr("Unit"); ok {
		row.UnitID = b.resolveUnitLabel(unitVal)
	}

	switch prop.TypeUpper {
	case "IFCPROPERTYSINGLEVALUE":
		v, _ := prop.Attr("NominalValue")
		setScalarProperty(&row, v, m.interner)
	case "IFCPROPERTYENUMERATEDVALUE":
		row.Type = PropertyList
		v, _ := prop.Attr("EnumerationValues")
		row.StringVal = m.interner.Intern(renderAttrValue(v))
	case "IFCPROPERTYBOUNDEDVALUE":
		row.Type = PropertyBounded
		upper, _ := prop.Attr("UpperBoundValue")
		lower, _ := prop.Attr("LowerBoundValue")
		row.StringVal = m.interner.Intern(renderAttrValue(lower) + ".." + renderAttrValue(upper))
	case "IFCPROPERTYLISTVALUE":
		row.Type = PropertyList
		v, _ := prop.Attr("ListValues")
		row.StringVal = m.interner.Intern(renderAttrValue(v))
	case "IFCPROPERTYTABLEVALUE":
		row.Type = PropertyTable_
		defining, _ := prop.Attr("DefiningValues")
		defined, _ := prop.Attr("DefinedValues")
		row.StringVal = m.interner.Intern(renderAttrValue(defining) + " -> " + renderAttrValue(defined))
	case "IFCPROPERTYREFERENCEVALUE":
		row.Type = PropertyReference
		if v, ok := prop.Attr("PropertyReference"); ok && v.Kind == AVEntityRef {
			row.IntVal = int64(v.Ref)
		}
	default:
		row.Type = PropertyString
	}
	return row, true
}

func setScalarProperty(row *PropertyRow, v AttributeValue, interner *Interner) {
	inner := v
	if inner.Kind == AVTypedValue && inner.Inner != nil {
		inner = *inner.Inner
	}
	switch inner.Kind {
	case AVReal:
		row.Type = PropertyReal
		row.RealVal = inner.Real
	case AVInteger:
		row.Type = PropertyInteger
		row.IntVal = inner.Int
	case AVBoolean:
		row.Type = PropertyBoolean
		row.BoolVal = inner.Bool
	case AVEnum:
		row.Type = PropertyEnum
		row.StringVal = interner.Intern(inner.Enum)
	default:
		row.Type = PropertyString
		row.StringVal = interner.Intern(renderAttrValue(v))
	}
}

// resolveUnitLabel decodes a Unit EntityRef into a short human label
// (§4.E step 4 "Record unit by following the property's Unit reference").
// Full IFC unit-assignment arithmetic (prefix scaling, derived units) is
// out of scope; this records the declared SI unit name, which is enough
// for downstream display and the unit-scale factor described in §4.F.6.
func (b *columnarBuilder) resolveUnitLabel(v AttributeValue) StringID {
	if v.Kind != AVEntityRef {
		return AbsentStringID
	}
	unit, err := b.model.decoder.Decode(v.Ref)
	if err != nil {
		return AbsentStringID
	}
	if unit.TypeUpper != "IFCSIUNIT" {
		return b.model.interner.Intern(unit.TypeUpper)
	}
	prefix := ""
	if p, ok := unit.Attr("Prefix"); ok && p.Kind == AVEnum {
		prefix = p.Enum
	}
	name := ""
	if nm, ok := unit.Attr("Name"); ok && nm.Kind == AVEnum {
		name = nm.Enum
	}
	return b.model.interner.Intern(prefix + name)
}

// buildQuantityTable implements §4.E step 5.
func (b *columnarBuilder) buildQuantityTable() {
	m := b.model
	for _, edge := range b.relationships.Edges(RelDefinesByProperties) {
		qsetID := edge.From
		elementID := edge.To
		qset, err := m.decoder.Decode(qsetID)
		if err != nil {
			continue
		}
		if qset.TypeUpper != "IFCELEMENTQUANTITY" {
			continue
		}
		qsetNameID := AbsentStringID
		if v, ok := qset.Attr("Name"); ok && v.Kind == AVString {
			qsetNameID = m.interner.Intern(v.Str)
		}
		qsetGlobalID := AbsentStringID
		if v, ok := qset.Attr("GlobalId"); ok && v.Kind == AVString {
			qsetGlobalID = m.interner.Intern(v.Str)
		}
		quantitiesVal, ok := qset.Attr("Quantities")
		if !ok {
			continue
		}
		for _, qID := range entityRefIDs(quantitiesVal) {
			row, ok := b.decodeQuantity(qID, elementID, qsetNameID, qsetGlobalID)
			if !ok {
				continue
			}
			b.quantities.append(row)
		}
	}
}

func (b *columnarBuilder) decodeQuantity(qID, elementID uint32, qsetNameID, qsetGlobalID StringID) (QuantityRow, bool) {
	m := b.model
	q, err := m.decoder.Decode(qID)
	if err != nil {
		m.addWarning(qID, WarnDanglingReference, err.Error())
		return QuantityRow{}, false
	}
	row := QuantityRow{EntityID: elementID, QSetNameID: qsetNameID, QSetGlobalID: qsetGlobalID, UnitID: AbsentStringID}
	if v, ok := q.Attr("Name"); ok && v.Kind == AVString {
		row.QNameID = m.interner.Intern(v.Str)
	}
	if unitVal, ok := q.Attr("Unit"); ok {
		row.UnitID = b.resolveUnitLabel(unitVal)
	}
	switch q.TypeUpper {
	case "IFCQUANTITYLENGTH":
		row.Type = QuantityLength
		row.Value = realAttr(q, "LengthValue")
	case "IFCQUANTITYAREA":
		row.Type = QuantityArea
		row.Value = realAttr(q, "AreaValue")
	case "IFCQUANTITYVOLUME":
		row.Type = QuantityVolume
		row.Value = realAttr(q, "VolumeValue")
	case "IFCQUANTITYCOUNT":
		row.Type = QuantityCount
		row.Value = realAttr(q, "CountValue")
	case "IFCQUANTITYWEIGHT":
		row.Type = QuantityWeight
		row.Value = realAttr(q, "WeightValue")
	case "IFCQUANTITYTIME":
		row.Type = QuantityTime
		row.Value = realAttr(q, "TimeValue")
	default:
		return QuantityRow{}, false
	}
	return row, true
}

func realAttr(e *DecodedEntity, name string) float64 {
	if v, ok := e.Attr(name); ok && v.Kind == AVReal {
		return v.Real
	}
	return 0
}

// buildSpatialHierarchy implements §4.E step 6: BFS from the unique
// IfcProject through Aggregates edges only. ContainedIn edges are not
// walked by the BFS; they only feed the element-to-structure reverse maps,
// and contained elements do not become hierarchy nodes.
func (b *columnarBuilder) buildSpatialHierarchy() error {
	m := b.model
	projectTypeID, ok := m.internerLookupUpper("IFCPROJECT")
	if !ok {
		return &NoProjectError{Count: 0}
	}
	projects := m.index.IDsOfType(projectTypeID)
	if len(projects) != 1 {
		return &NoProjectError{Count: len(projects)}
	}
	root := projects[0]
	b.spatial.Root = root
	b.spatial.nodes[root] = &SpatialNode{ExpressID: root}

	visited := map[uint32]bool{root: true}
	path := map[uint32]bool{root: true}
	queue := []uint32{root}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children := b.relationships.Forward(RelAggregates, cur)
		for _, child := range children {
			if path[child] {
				return &SpatialCycleError{IDs: []uint32{cur, child}}
			}
			if visited[child] {
				continue
			}
			visited[child] = true
			node := &SpatialNode{ExpressID: child, Parent: cur}
			b.spatial.nodes[child] = node
			b.spatial.nodes[cur].Children = append(b.spatial.nodes[cur].Children, child)
			b.attachElevation(node)
			queue = append(queue, child)
		}
	}

	// Reverse maps: for every ContainedIn edge (structure -> element), walk
	// the structure's ancestry recording the first site/building/storey/
	// space encountered.
	for _, edge := range b.relationships.Edges(RelContainedIn) {
		structureID := edge.From
		for _, elementID := range b.relationships.Forward(RelContainedIn, structureID) {
			b.recordAncestryFor(elementID, structureID)
		}
	}
	return nil
}

func (b *columnarBuilder) recordAncestryFor(elementID, startStructure uint32) {
	m := b.model
	cur := startStructure
	for {
		ref, ok := m.index.Lookup(cur)
		if !ok {
			return
		}
		typeUpper, _ := m.interner.Lookup(ref.TypeUpper)
		switch typeUpper {
		case "IFCBUILDINGSTOREY":
			b.spatial.elementToStorey[elementID] = cur
		case "IFCBUILDING":
			b.spatial.elementToBuilding[elementID] = cur
		case "IFCSITE":
			b.spatial.elementToSite[elementID] = cur
		case "IFCSPACE":
			b.spatial.elementToSpace[elementID] = cur
		}
		node, ok := b.spatial.nodes[cur]
		if !ok || node.Parent == 0 {
			return
		}
		cur = node.Parent
	}
}

// attachElevation implements §4.E step 6's storey elevation resolution
// order: the Elevation attribute, then Pset_BuildingStoreyCommon, else left
// absent -- a zero elevation is a legitimate ground-floor value and must
// not be confused with "unknown".
func (b *columnarBuilder) attachElevation(node *SpatialNode) {
	m := b.model
	entity, err := m.decoder.Decode(node.ExpressID)
	if err != nil || entity.TypeUpper != "IFCBUILDINGSTOREY" {
		return
	}
	if v, ok := entity.Attr("Elevation"); ok && v.Kind == AVReal {
		val := v.Real
		node.Elevation = &val
		return
	}
	// Pset_BuildingStoreyCommon fallback is resolved after the property
	// table is built, in (*Model).resolveStoreyElevations.
}

// renderAttrValue produces a compact, deterministic textual form for list/
// bounded/table-shaped property payloads that the flat PropertyRow schema
// otherwise has no room for; idempotent across repeated calls (§8 property 7).
func renderAttrValue(v AttributeValue) string {
	switch v.Kind {
	case AVNull:
		return ""
	case AVDerived:
		return "*"
	case AVString:
		return v.Str
	case AVEnum:
		return v.Enum
	case AVInteger:
		return strconv.FormatInt(v.Int, 10)
	case AVReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case AVBoolean:
		if v.Bool {
			return "T"
		}
		return "F"
	case AVEntityRef:
		return "#" + strconv.FormatUint(uint64(v.Ref), 10)
	case AVTypedValue:
		if v.Inner != nil {
			return renderAttrValue(*v.Inner)
		}
		return ""
	case AVList:
		out := "["
		for i, item := range v.List {
			if i > 0 {
				out += ","
			}
			out += renderAttrValue(item)
		}
		return out + "]"
	default:
		return ""
	}
}
