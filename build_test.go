// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildingFixture assembles a minimal but structurally complete hierarchy:
// Project -> Site -> Building -> Storey -> Wall, with the wall carrying one
// property set and one quantity set, exercising build.go's steps 2-6 in a
// single pass.
const buildingFixture = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('a','b',(),(),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('proj',$,'Project',$,$,$,$,(),$);
#2=IFCSITE('site',$,'Site',$,$,$,$,$,$,$,$,$,$,$);
#3=IFCBUILDING('bldg',$,'Building',$,$,$,$,$,$,$,$,$);
#4=IFCBUILDINGSTOREY('storey',$,'Ground',$,$,$,$,$,$,3.0);
#5=IFCWALL('wall',$,'Wall-1',$,$,$,$,'tag',.NOTDEFINED.);
#6=IFCRELAGGREGATES('a1',$,$,$,#1,(#2));
#7=IFCRELAGGREGATES('a2',$,$,$,#2,(#3));
#8=IFCRELAGGREGATES('a3',$,$,$,#3,(#4));
#9=IFCRELCONTAINEDINSPATIALSTRUCTURE('c1',$,$,$,(#5),#4);
#10=IFCPROPERTYSINGLEVALUE('FireRating',$,IFCLABEL('A1'),$);
#11=IFCPROPERTYSET('ps1',$,'Pset_WallCommon',$,(#10));
#12=IFCRELDEFINESBYPROPERTIES('r1',$,$,$,(#5),#11);
#13=IFCQUANTITYAREA('NetArea',$,$,12.5,$);
#14=IFCELEMENTQUANTITY('qs1',$,'Qto_WallBaseQuantities',$,$,(#13));
#15=IFCRELDEFINESBYPROPERTIES('r2',$,$,$,(#5),#14);
ENDSEC;
END-ISO-10303-21;
`

func TestModelBuildFullHierarchy(t *testing.T) {
	m, err := NewBytes([]byte(buildingFixture), nil)
	require.NoError(t, err)
	defer m.Close()

	// Every IfcRoot subtype gets an entity row, including the relationship
	// and property/quantity-set entities that carry GlobalId themselves
	// (§4.E step 2) -- not just the five spatial/product entities.
	assert.Equal(t, 13, m.Entities().Len())

	assert.Equal(t, uint32(1), m.Spatial().Root)
	storeyNode, ok := m.Spatial().Node(4)
	require.True(t, ok)
	require.NotNil(t, storeyNode.Elevation)
	assert.Equal(t, 3.0, *storeyNode.Elevation)

	storey, ok := m.Spatial().Storey(5)
	require.True(t, ok)
	assert.Equal(t, uint32(4), storey)
	building, ok := m.Spatial().Building(5)
	require.True(t, ok)
	assert.Equal(t, uint32(3), building)
	site, ok := m.Spatial().Site(5)
	require.True(t, ok)
	assert.Equal(t, uint32(2), site)

	require.Len(t, m.Properties().Rows, 1)
	propRow := m.Properties().Rows[0]
	assert.Equal(t, uint32(5), propRow.EntityID)
	assert.Equal(t, PropertyString, propRow.Type)
	name, ok := m.Lookup(propRow.PropNameID)
	require.True(t, ok)
	assert.Equal(t, "FireRating", name)

	require.Len(t, m.Quantities().Rows, 1)
	qRow := m.Quantities().Rows[0]
	assert.Equal(t, uint32(5), qRow.EntityID)
	assert.Equal(t, QuantityArea, qRow.Type)
	assert.Equal(t, 12.5, qRow.Value)

	containedEdges := m.Relationships().Edges(RelContainedIn)
	require.Len(t, containedEdges, 1)
	assert.Equal(t, Edge{From: 4, To: 5}, containedEdges[0])
}

func TestModelBuildNoProjectError(t *testing.T) {
	data := `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('a','b',(),(),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCWALL('wall',$,'Wall-1',$,$,$,$,'tag',.NOTDEFINED.);
ENDSEC;
END-ISO-10303-21;
`
	_, err := NewBytes([]byte(data), nil)
	require.Error(t, err)
	var noProject *NoProjectError
	assert.ErrorAs(t, err, &noProject)
	assert.Equal(t, 0, noProject.Count)
}

func TestRenderAttrValueCompactForms(t *testing.T) {
	assert.Equal(t, "", renderAttrValue(AttributeValue{Kind: AVNull}))
	assert.Equal(t, "*", renderAttrValue(AttributeValue{Kind: AVDerived}))
	assert.Equal(t, "5", renderAttrValue(AttributeValue{Kind: AVInteger, Int: 5}))
	assert.Equal(t, "T", renderAttrValue(AttributeValue{Kind: AVBoolean, Bool: true}))
	assert.Equal(t, "#7", renderAttrValue(AttributeValue{Kind: AVEntityRef, Ref: 7}))
	list := AttributeValue{Kind: AVList, List: []AttributeValue{
		{Kind: AVInteger, Int: 1}, {Kind: AVInteger, Int: 2},
	}}
	assert.Equal(t, "[1,2]", renderAttrValue(list))
}

func TestEntityRefIDsFlattensNestedLists(t *testing.T) {
	v := AttributeValue{Kind: AVList, List: []AttributeValue{
		{Kind: AVEntityRef, Ref: 1},
		{Kind: AVList, List: []AttributeValue{{Kind: AVEntityRef, Ref: 2}}},
		{Kind: AVNull},
	}}
	assert.Equal(t, []uint32{1, 2}, entityRefIDs(v))
}
