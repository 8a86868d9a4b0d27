// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

// PropertyValueKind identifies the six IfcProperty subtypes encoded
// uniformly into PropertyTable rows (§3 "PropertyTable", §4.E step 4).
type PropertyValueKind uint8

// Property value kinds.
const (
	PropertyString PropertyValueKind = iota
	PropertyReal
	PropertyInteger
	PropertyBoolean
	PropertyEnum
	PropertyList
	PropertyBounded
	PropertyTable_
	PropertyReference
)

// PropertyRow is one flattened property, regardless of its originating
// IfcProperty subtype.
type PropertyRow struct {
	EntityID     uint32
	PSetNameID   StringID
	PSetGlobalID StringID
	PropNameID   StringID
	Type         PropertyValueKind
	StringVal    StringID
	RealVal      float64
	IntVal       int64
	BoolVal      bool
	UnitID       StringID
}

// PropertyTable is the flat, append-only property store of §3.
type PropertyTable struct {
	Rows  []PropertyRow
	built bool
}

func newPropertyTable() *PropertyTable {
	return &PropertyTable{Rows: make([]PropertyRow, 0, 256)}
}

func (t *PropertyTable) append(row PropertyRow) { t.Rows = append(t.Rows, row) }

func (t *PropertyTable) freeze() { t.built = true }

// QuantityValueKind is one of the six IfcPhysicalSimpleQuantity subtypes
// (§3 "QuantityTable", §4.E step 5).
type QuantityValueKind uint8

// Quantity value kinds.
const (
	QuantityLength QuantityValueKind = iota
	QuantityArea
	QuantityVolume
	QuantityCount
	QuantityWeight
	QuantityTime
)

// QuantityRow is one flattened element quantity.
type QuantityRow struct {
	EntityID     uint32
	QSetNameID   StringID
	QSetGlobalID StringID
	QNameID      StringID
	Type         QuantityValueKind
	Value        float64
	UnitID       StringID
}

// QuantityTable is the flat, append-only quantity store of §3.
type QuantityTable struct {
	Rows  []QuantityRow
	built bool
}

func newQuantityTable() *QuantityTable {
	return &QuantityTable{Rows: make([]QuantityRow, 0, 256)}
}

func (t *QuantityTable) append(row QuantityRow) { t.Rows = append(t.Rows, row) }

func (t *QuantityTable) freeze() { t.built = true }
