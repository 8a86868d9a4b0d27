// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import "github.com/bits-and-blooms/bitset"

// EntityTypeEnum is the per-schema closed enumeration of known IFC product
// types (§3 "EntityTable"). EntityTypeProxy covers every type the schema
// registry doesn't carry a dedicated code for.
type EntityTypeEnum uint16

// Known type codes. Order is insertion order into entityTypeCodes and is
// stable across a process lifetime (never persisted), so it is safe to
// extend this list without a migration concern.
const (
	EntityTypeProxy EntityTypeEnum = iota
	EntityTypeProject
	EntityTypeSite
	EntityTypeBuilding
	EntityTypeStorey
	EntityTypeSpace
	EntityTypeWall
	EntityTypeSlab
	EntityTypeDoor
	EntityTypeWindow
	EntityTypeColumn
	EntityTypeBeam
	EntityTypeRoof
	EntityTypeStair
	EntityTypeRailing
	EntityTypeCovering
	EntityTypeFurnishing
	EntityTypeFlowTerminal
	EntityTypeFlowSegment
	EntityTypeMember
	EntityTypePlate
	EntityTypeCurtainWall
	EntityTypeBuildingElementProxy
	EntityTypeOpeningElement
)

var entityTypeCodes = map[string]EntityTypeEnum{
	"IFCPROJECT":               EntityTypeProject,
	"IFCSITE":                  EntityTypeSite,
	"IFCBUILDING":              EntityTypeBuilding,
	"IFCBUILDINGSTOREY":        EntityTypeStorey,
	"IFCSPACE":                 EntityTypeSpace,
	"IFCWALL":                  EntityTypeWall,
	"IFCWALLSTANDARDCASE":      EntityTypeWall,
	"IFCSLAB":                  EntityTypeSlab,
	"IFCDOOR":                  EntityTypeDoor,
	"IFCWINDOW":                EntityTypeWindow,
	"IFCCOLUMN":                EntityTypeColumn,
	"IFCBEAM":                  EntityTypeBeam,
	"IFCROOF":                  EntityTypeRoof,
	"IFCSTAIR":                 EntityTypeStair,
	"IFCRAILING":               EntityTypeRailing,
	"IFCCOVERING":              EntityTypeCovering,
	"IFCFURNISHINGELEMENT":     EntityTypeFurnishing,
	"IFCFLOWTERMINAL":          EntityTypeFlowTerminal,
	"IFCFLOWSEGMENT":           EntityTypeFlowSegment,
	"IFCMEMBER":                EntityTypeMember,
	"IFCPLATE":                 EntityTypePlate,
	"IFCCURTAINWALL":           EntityTypeCurtainWall,
	"IFCBUILDINGELEMENTPROXY":  EntityTypeBuildingElementProxy,
	"IFCOPENINGELEMENT":        EntityTypeOpeningElement,
}

// typeEnumOf maps an upper-case IFC type name to its closed enumeration
// code, falling back to EntityTypeProxy.
func typeEnumOf(typeUpper string) EntityTypeEnum {
	if code, ok := entityTypeCodes[typeUpper]; ok {
		return code
	}
	return EntityTypeProxy
}

// Entity flag bits, packed numEntityFlags (three) per row-slot in
// EntityTable.flags.
const (
	FlagHasGeometry = iota
	FlagHasOpenings
	FlagGeometryFailed
	numEntityFlags
)

// EntityTable is the columnar store of §3 "EntityTable (columnar)".
type EntityTable struct {
	ExpressID   []uint32
	TypeEnum    []EntityTypeEnum
	GlobalID    []StringID
	Name        []StringID
	Description []StringID
	ObjectType  []StringID
	flags       *bitset.BitSet

	rowOf map[uint32]int
	built bool
}

func newEntityTable(capacityHint int) *EntityTable {
	return &EntityTable{
		ExpressID:   make([]uint32, 0, capacityHint),
		TypeEnum:    make([]EntityTypeEnum, 0, capacityHint),
		GlobalID:    make([]StringID, 0, capacityHint),
		Name:        make([]StringID, 0, capacityHint),
		Description: make([]StringID, 0, capacityHint),
		ObjectType:  make([]StringID, 0, capacityHint),
		flags:       bitset.New(0),
		rowOf:       make(map[uint32]int, capacityHint),
	}
}

func (t *EntityTable) appendRow(id uint32, typeEnum EntityTypeEnum, globalID, name, desc, objType StringID) int {
	row := len(t.ExpressID)
	t.ExpressID = append(t.ExpressID, id)
	t.TypeEnum = append(t.TypeEnum, typeEnum)
	t.GlobalID = append(t.GlobalID, globalID)
	t.Name = append(t.Name, name)
	t.Description = append(t.Description, desc)
	t.ObjectType = append(t.ObjectType, objType)
	t.rowOf[id] = row
	return row
}

func (t *EntityTable) setFlag(row, flag int) {
	t.flags.Set(uint(row*numEntityFlags + flag))
}

// HasFlag reports whether the given row has flag set.
func (t *EntityTable) HasFlag(row, flag int) bool {
	return t.flags.Test(uint(row*numEntityFlags + flag))
}

// RowOf returns the table row for an express id, or -1 if absent.
func (t *EntityTable) RowOf(id uint32) int {
	if row, ok := t.rowOf[id]; ok {
		return row
	}
	return -1
}

// Len reports the number of rows.
func (t *EntityTable) Len() int { return len(t.ExpressID) }

func (t *EntityTable) freeze() { t.built = true }
