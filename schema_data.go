// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

// populateCommonEntities fills in the subset of IFC2X3/IFC4/IFC4X3 entity
// definitions this repository's kernel actually walks: IfcRoot and its
// spatial/product subtypes, the relationship kinds of §4.E step 3, the
// property/quantity subtypes of §4.E steps 4-5, and the representation
// items routed by the geometry kernel (§4.F). A full EXPRESS schema table
// runs into the thousands of entries; this registry covers exactly the
// entities this kernel's columnar build and geometry routing walk, with
// every other type decoded positionally as a proxy (§4.C "Unknown entity
// types").
func populateCommonEntities(r *SchemaRegistry) {
	str := func(name string, optional bool) AttrDef {
		return AttrDef{Name: name, Type: AttrString, Optional: optional}
	}
	ent := func(name, target string, optional bool) AttrDef {
		return AttrDef{Name: name, Type: AttrEntity, EntityTarget: target, Optional: optional}
	}
	list := func(name string, of AttrDef, optional bool) AttrDef {
		return AttrDef{Name: name, Type: AttrList, Of: &of, Bounds: [2]int{0, -1}, Optional: optional}
	}
	real := func(name string, optional bool) AttrDef {
		return AttrDef{Name: name, Type: AttrReal, Optional: optional}
	}
	enumAttr := func(name string, values []string, optional bool) AttrDef {
		return AttrDef{Name: name, Type: AttrEnum, EnumValues: values, Optional: optional}
	}
	sel := func(name string, variants []string, optional bool) AttrDef {
		return AttrDef{Name: name, Type: AttrSelect, Variants: variants, Optional: optional}
	}

	// --- Root & spatial hierarchy ---
	r.define("IFCROOT", "",
		str("GlobalId", false),
		ent("OwnerHistory", "IFCOWNERHISTORY", true),
		str("Name", true),
		str("Description", true),
	)
	r.define("IFCOBJECTDEFINITION", "IFCROOT")
	r.define("IFCOBJECT", "IFCOBJECTDEFINITION", str("ObjectType", true))
	r.define("IFCPRODUCT", "IFCOBJECT",
		ent("ObjectPlacement", "IFCOBJECTPLACEMENT", true),
		ent("Representation", "IFCPRODUCTDEFINITIONSHAPE", true),
	)
	r.define("IFCSPATIALSTRUCTUREELEMENT", "IFCPRODUCT",
		str("LongName", true),
		enumAttr("CompositionType", []string{"COMPLEX", "ELEMENT", "PARTIAL"}, true),
	)
	r.define("IFCPROJECT", "IFCOBJECT",
		str("LongName", true),
		str("Phase", true),
		list("RepresentationContexts", ent("", "IFCGEOMETRICREPRESENTATIONCONTEXT", false), true),
		ent("UnitsInContext", "IFCUNITASSIGNMENT", true),
	)
	r.define("IFCSITE", "IFCSPATIALSTRUCTUREELEMENT",
		real("RefLatitude", true),
		real("RefLongitude", true),
		real("RefElevation", true),
		str("LandTitleNumber", true),
		ent("SiteAddress", "IFCPOSTALADDRESS", true),
	)
	r.define("IFCBUILDING", "IFCSPATIALSTRUCTUREELEMENT",
		real("ElevationOfRefHeight", true),
		real("ElevationOfTerrain", true),
		ent("BuildingAddress", "IFCPOSTALADDRESS", true),
	)
	r.define("IFCPOSTALADDRESS", "")
	r.define("IFCBUILDINGSTOREY", "IFCSPATIALSTRUCTUREELEMENT",
		real("Elevation", true),
	)
	r.define("IFCSPACE", "IFCSPATIALSTRUCTUREELEMENT",
		enumAttr("PredefinedType", []string{"SPACE", "PARKING", "GFA", "INTERNAL", "EXTERNAL", "NOTDEFINED"}, true),
	)

	r.define("IFCELEMENT", "IFCPRODUCT", str("Tag", true))
	// Every concrete IFC4 building element subtype adds exactly one
	// PredefinedType enumeration attribute beyond IfcElement.Tag; the exact
	// enumeration values aren't load-bearing since decodeEnumToken doesn't
	// validate against EnumValues, only the positional slot matters here.
	for _, t := range []string{"IFCWALL", "IFCWALLSTANDARDCASE", "IFCSLAB", "IFCDOOR", "IFCWINDOW",
		"IFCCOLUMN", "IFCBEAM", "IFCROOF", "IFCSTAIR", "IFCRAILING", "IFCCOVERING",
		"IFCFURNISHINGELEMENT", "IFCFLOWTERMINAL", "IFCFLOWSEGMENT", "IFCMEMBER",
		"IFCPLATE", "IFCCURTAINWALL", "IFCBUILDINGELEMENTPROXY"} {
		r.define(t, "IFCELEMENT", enumAttr("PredefinedType", []string{"NOTDEFINED"}, true))
	}
	r.define("IFCOPENINGELEMENT", "IFCELEMENT",
		enumAttr("PredefinedType", []string{"OPENING", "RECESS", "NOTDEFINED"}, true),
	)
	r.define("IFCTYPEOBJECT", "IFCOBJECTDEFINITION", str("ApplicableOccurrence", true))
	r.define("IFCTYPEPRODUCT", "IFCTYPEOBJECT")
	r.define("IFCELEMENTTYPE", "IFCTYPEPRODUCT")

	r.define("IFCOWNERHISTORY", "")

	// --- Relationships (§4.E step 3) ---
	r.define("IFCRELATIONSHIP", "IFCROOT")
	r.define("IFCRELDECOMPOSES", "IFCRELATIONSHIP")
	r.define("IFCRELAGGREGATES", "IFCRELDECOMPOSES",
		ent("RelatingObject", "IFCOBJECTDEFINITION", false),
		list("RelatedObjects", ent("", "IFCOBJECTDEFINITION", false), false),
	)
	r.define("IFCRELCONNECTS", "IFCRELATIONSHIP")
	r.define("IFCRELCONTAINEDINSPATIALSTRUCTURE", "IFCRELCONNECTS",
		list("RelatedElements", ent("", "IFCPRODUCT", false), false),
		ent("RelatingStructure", "IFCSPATIALSTRUCTUREELEMENT", false),
	)
	r.define("IFCRELDEFINES", "IFCRELATIONSHIP")
	r.define("IFCRELDEFINESBYTYPE", "IFCRELDEFINES",
		list("RelatedObjects", ent("", "IFCOBJECT", false), false),
		ent("RelatingType", "IFCTYPEOBJECT", false),
	)
	r.define("IFCRELDEFINESBYPROPERTIES", "IFCRELDEFINES",
		list("RelatedObjects", ent("", "IFCOBJECT", false), false),
		sel("RelatingPropertyDefinition", []string{"IFCPROPERTYSETDEFINITION", "IFCPROPERTYSETDEFINITIONSET"}, false),
	)
	r.define("IFCRELASSOCIATES", "IFCRELATIONSHIP",
		list("RelatedObjects", ent("", "IFCROOT", false), false),
	)
	r.define("IFCRELASSOCIATESMATERIAL", "IFCRELASSOCIATES", sel("RelatingMaterial", []string{"IFCMATERIAL"}, false))
	r.define("IFCRELASSOCIATESCLASSIFICATION", "IFCRELASSOCIATES", sel("RelatingClassification", []string{"IFCCLASSIFICATION"}, false))
	r.define("IFCRELASSOCIATESDOCUMENT", "IFCRELASSOCIATES", sel("RelatingDocument", []string{"IFCDOCUMENTREFERENCE"}, false))
	r.define("IFCRELVOIDSELEMENT", "IFCRELDECOMPOSES",
		ent("RelatingBuildingElement", "IFCELEMENT", false),
		ent("RelatedOpeningElement", "IFCOPENINGELEMENT", false),
	)
	r.define("IFCRELFILLSELEMENT", "IFCRELCONNECTS",
		ent("RelatingOpeningElement", "IFCOPENINGELEMENT", false),
		ent("RelatedBuildingElement", "IFCELEMENT", false),
	)
	r.define("IFCRELCONNECTSPATHELEMENTS", "IFCRELCONNECTS",
		ent("RelatingElement", "IFCELEMENT", false),
		ent("RelatedElement", "IFCELEMENT", false),
		list("RelatingPriorities", AttrDef{Type: AttrInteger}, false),
		list("RelatedPriorities", AttrDef{Type: AttrInteger}, false),
		enumAttr("RelatedConnectionType", []string{"ATPATH", "ATSTART", "ATEND", "NOTDEFINED"}, false),
		enumAttr("RelatingConnectionType", []string{"ATPATH", "ATSTART", "ATEND", "NOTDEFINED"}, false),
	)

	// --- Property & quantity sets (§4.E steps 4-5) ---
	r.define("IFCPROPERTYSETDEFINITION", "IFCROOT")
	r.define("IFCPROPERTYSET", "IFCPROPERTYSETDEFINITION",
		list("HasProperties", ent("", "IFCPROPERTY", false), false),
	)
	r.define("IFCELEMENTQUANTITY", "IFCPROPERTYSETDEFINITION",
		str("MethodOfMeasurement", true),
		list("Quantities", ent("", "IFCPHYSICALQUANTITY", false), false),
	)
	r.define("IFCPROPERTY", "", str("Name", false), str("Description", true))
	r.define("IFCSIMPLEPROPERTY", "IFCPROPERTY")
	r.define("IFCPROPERTYSINGLEVALUE", "IFCSIMPLEPROPERTY",
		AttrDef{Name: "NominalValue", Type: AttrSelect, Optional: true},
		ent("Unit", "IFCUNIT", true),
	)
	r.define("IFCPROPERTYENUMERATEDVALUE", "IFCSIMPLEPROPERTY",
		list("EnumerationValues", AttrDef{Type: AttrSelect}, true),
		ent("EnumerationReference", "IFCPROPERTYENUMERATION", true),
	)
	r.define("IFCPROPERTYBOUNDEDVALUE", "IFCSIMPLEPROPERTY",
		AttrDef{Name: "UpperBoundValue", Type: AttrSelect, Optional: true},
		AttrDef{Name: "LowerBoundValue", Type: AttrSelect, Optional: true},
		ent("Unit", "IFCUNIT", true),
		AttrDef{Name: "SetPointValue", Type: AttrSelect, Optional: true},
	)
	r.define("IFCPROPERTYLISTVALUE", "IFCSIMPLEPROPERTY",
		list("ListValues", AttrDef{Type: AttrSelect}, true),
		ent("Unit", "IFCUNIT", true),
	)
	r.define("IFCPROPERTYTABLEVALUE", "IFCSIMPLEPROPERTY",
		list("DefiningValues", AttrDef{Type: AttrSelect}, true),
		list("DefinedValues", AttrDef{Type: AttrSelect}, true),
		str("Expression", true),
		ent("DefiningUnit", "IFCUNIT", true),
		ent("DefinedUnit", "IFCUNIT", true),
		enumAttr("CurveInterpolation", []string{"LINEAR", "LOG_LINEAR", "LOG_LOG", "NOTDEFINED"}, true),
	)
	r.define("IFCPROPERTYREFERENCEVALUE", "IFCSIMPLEPROPERTY",
		str("UsageName", true),
		ent("PropertyReference", "IFCOBJECTREFERENCESELECT", true),
	)
	r.define("IFCPROPERTYENUMERATION", "", str("Name", false), list("EnumerationValues", AttrDef{Type: AttrSelect}, false), ent("Unit", "IFCUNIT", true))
	r.define("IFCPHYSICALQUANTITY", "", str("Name", false), str("Description", true))
	r.define("IFCPHYSICALSIMPLEQUANTITY", "IFCPHYSICALQUANTITY", ent("Unit", "IFCNAMEDUNIT", true))
	r.define("IFCQUANTITYLENGTH", "IFCPHYSICALSIMPLEQUANTITY", real("LengthValue", false), str("Formula", true))
	r.define("IFCQUANTITYAREA", "IFCPHYSICALSIMPLEQUANTITY", real("AreaValue", false), str("Formula", true))
	r.define("IFCQUANTITYVOLUME", "IFCPHYSICALSIMPLEQUANTITY", real("VolumeValue", false), str("Formula", true))
	r.define("IFCQUANTITYCOUNT", "IFCPHYSICALSIMPLEQUANTITY", real("CountValue", false), str("Formula", true))
	r.define("IFCQUANTITYWEIGHT", "IFCPHYSICALSIMPLEQUANTITY", real("WeightValue", false), str("Formula", true))
	r.define("IFCQUANTITYTIME", "IFCPHYSICALSIMPLEQUANTITY", real("TimeValue", false), str("Formula", true))

	r.define("IFCUNIT", "")
	r.define("IFCNAMEDUNIT", "IFCUNIT",
		AttrDef{Name: "Dimensions", Type: AttrSelect, Optional: true},
		enumAttr("UnitType", []string{"LENGTHUNIT", "AREAUNIT", "VOLUMEUNIT", "MASSUNIT", "TIMEUNIT", "NOTDEFINED"}, false),
	)
	r.define("IFCSIUNIT", "IFCNAMEDUNIT",
		enumAttr("Prefix", []string{"EXA", "PETA", "TERA", "GIGA", "MEGA", "KILO", "HECTO",
			"DECA", "DECI", "CENTI", "MILLI", "MICRO", "NANO", "PICO", "FEMTO", "ATTO"}, true),
		enumAttr("Name", []string{"METRE", "SQUARE_METRE", "CUBIC_METRE"}, false),
	)
	r.define("IFCUNITASSIGNMENT", "", list("Units", ent("", "IFCUNIT", false), false))

	// --- Geometric representation & placement ---
	r.define("IFCREPRESENTATIONITEM", "")
	r.define("IFCGEOMETRICREPRESENTATIONITEM", "IFCREPRESENTATIONITEM")
	r.define("IFCREPRESENTATION", "",
		ent("ContextOfItems", "IFCREPRESENTATIONCONTEXT", true),
		str("RepresentationIdentifier", true),
		str("RepresentationType", true),
		list("Items", ent("", "IFCREPRESENTATIONITEM", false), false),
	)
	r.define("IFCSHAPEMODEL", "IFCREPRESENTATION")
	r.define("IFCSHAPEREPRESENTATION", "IFCSHAPEMODEL")
	r.define("IFCPRODUCTREPRESENTATION", "",
		str("Name", true),
		str("Description", true),
		list("Representations", ent("", "IFCREPRESENTATION", false), false),
	)
	r.define("IFCPRODUCTDEFINITIONSHAPE", "IFCPRODUCTREPRESENTATION")
	r.define("IFCOBJECTPLACEMENT", "")
	r.define("IFCLOCALPLACEMENT", "IFCOBJECTPLACEMENT",
		ent("PlacementRelTo", "IFCOBJECTPLACEMENT", true),
		ent("RelativePlacement", "IFCAXIS2PLACEMENT3D", false),
	)
	r.define("IFCPLACEMENT", "IFCGEOMETRICREPRESENTATIONITEM",
		ent("Location", "IFCCARTESIANPOINT", false),
	)
	r.define("IFCAXIS2PLACEMENT3D", "IFCPLACEMENT",
		ent("Axis", "IFCDIRECTION", true),
		ent("RefDirection", "IFCDIRECTION", true),
	)
	r.define("IFCCARTESIANTRANSFORMATIONOPERATOR3D", "IFCGEOMETRICREPRESENTATIONITEM",
		ent("Axis1", "IFCDIRECTION", true),
		ent("Axis2", "IFCDIRECTION", true),
		ent("LocalOrigin", "IFCCARTESIANPOINT", false),
		real("Scale", true),
		ent("Axis3", "IFCDIRECTION", true),
	)

	// --- Profiles (§4.F.1) ---
	r.define("IFCPROFILEDEF", "", enumAttr("ProfileType", []string{"CURVE", "AREA"}, false), str("ProfileName", true))
	r.define("IFCPARAMETERIZEDPROFILEDEF", "IFCPROFILEDEF", ent("Position", "IFCAXIS2PLACEMENT2D", true))
	r.define("IFCRECTANGLEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF", real("XDim", false), real("YDim", false))
	r.define("IFCCIRCLEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF", real("Radius", false))
	r.define("IFCCIRCLEHOLLOWPROFILEDEF", "IFCCIRCLEPROFILEDEF", real("WallThickness", false))
	r.define("IFCISHAPEPROFILEDEF", "IFCPARAMETERIZEDPROFILEDEF",
		real("OverallWidth", false), real("OverallDepth", false),
		real("WebThickness", false), real("FlangeThickness", false), real("FilletRadius", true),
	)
	r.define("IFCARBITRARYCLOSEDPROFILEDEF", "IFCPROFILEDEF", ent("OuterCurve", "IFCCURVE", false))
	r.define("IFCARBITRARYPROFILEDEFWITHVOIDS", "IFCARBITRARYCLOSEDPROFILEDEF",
		list("InnerCurves", ent("", "IFCCURVE", false), false),
	)

	// --- Curves (§4.F.2) ---
	r.define("IFCCURVE", "IFCGEOMETRICREPRESENTATIONITEM")
	r.define("IFCLINE", "IFCCURVE", ent("Pnt", "IFCCARTESIANPOINT", false), ent("Dir", "IFCVECTOR", false))
	r.define("IFCPOLYLINE", "IFCCURVE", list("Points", ent("", "IFCCARTESIANPOINT", false), false))
	r.define("IFCCIRCLE", "IFCCURVE", ent("Position", "IFCAXIS2PLACEMENT", false), real("Radius", false))
	r.define("IFCTRIMMEDCURVE", "IFCCURVE",
		ent("BasisCurve", "IFCCURVE", false),
		list("Trim1", AttrDef{Type: AttrSelect}, false),
		list("Trim2", AttrDef{Type: AttrSelect}, false),
		AttrDef{Name: "SenseAgreement", Type: AttrBoolean},
		enumAttr("MasterRepresentation", []string{"CARTESIAN", "PARAMETER"}, false),
	)
	r.define("IFCBSPLINECURVEWITHKNOTS", "IFCCURVE",
		AttrDef{Name: "Degree", Type: AttrInteger},
		list("ControlPointsList", ent("", "IFCCARTESIANPOINT", false), false),
		list("Knots", real("", false), false),
	)
	r.define("IFCCOMPOSITECURVE", "IFCCURVE", list("Segments", ent("", "IFCCOMPOSITECURVESEGMENT", false), false))
	r.define("IFCCOMPOSITECURVESEGMENT", "",
		enumAttr("Transition", []string{"DISCONTINUOUS", "CONTINUOUS", "CONTSAMEGRADIENT", "CONTSAMEGRADIENTSAMECURVATURE"}, false),
		AttrDef{Name: "SameSense", Type: AttrBoolean},
		ent("ParentCurve", "IFCCURVE", false),
	)
	r.define("IFCAXIS1PLACEMENT", "IFCPLACEMENT", ent("Axis", "IFCDIRECTION", true))

	// --- Swept solids (§4.F.3) ---
	r.define("IFCSOLIDMODEL", "IFCGEOMETRICREPRESENTATIONITEM")
	r.define("IFCSWEPTAREASOLID", "IFCSOLIDMODEL",
		ent("SweptArea", "IFCPROFILEDEF", false),
		ent("Position", "IFCAXIS2PLACEMENT3D", true),
	)
	r.define("IFCEXTRUDEDAREASOLID", "IFCSWEPTAREASOLID",
		ent("ExtrudedDirection", "IFCDIRECTION", false), real("Depth", false),
	)
	r.define("IFCREVOLVEDAREASOLID", "IFCSWEPTAREASOLID",
		ent("Axis", "IFCAXIS1PLACEMENT", false), real("Angle", false),
	)
	r.define("IFCSWEPTDISKSOLID", "IFCSOLIDMODEL",
		ent("Directrix", "IFCCURVE", false), real("Radius", false),
		real("InnerRadius", true), real("StartParam", true), real("EndParam", true),
	)
	r.define("IFCMAPPEDITEM", "IFCREPRESENTATIONITEM",
		ent("MappingSource", "IFCREPRESENTATIONMAP", false),
		ent("MappingTarget", "IFCCARTESIANTRANSFORMATIONOPERATOR", false),
	)
	r.define("IFCREPRESENTATIONMAP", "",
		ent("MappingOrigin", "IFCAXIS2PLACEMENT", false),
		ent("MappedRepresentation", "IFCSHAPEREPRESENTATION", false),
	)

	// --- Tessellated geometry (§4.F.4) ---
	r.define("IFCTESSELLATEDITEM", "IFCGEOMETRICREPRESENTATIONITEM")
	r.define("IFCTESSELLATEDFACESET", "IFCTESSELLATEDITEM", ent("Coordinates", "IFCCARTESIANPOINTLIST3D", false))
	r.define("IFCTRIANGULATEDFACESET", "IFCTESSELLATEDFACESET",
		list("Normals", list("", real("", false), false), true),
		list("CoordIndex", list("", AttrDef{Type: AttrInteger}, false), false),
	)
	r.define("IFCPOLYGONALFACESET", "IFCTESSELLATEDFACESET",
		list("Faces", ent("", "IFCINDEXEDPOLYGONALFACE", false), false),
		list("PnIndex", AttrDef{Type: AttrInteger}, true),
	)
	r.define("IFCCARTESIANPOINTLIST3D", "", list("CoordList", list("", real("", false), false), false))
	r.define("IFCCONNECTEDFACESET", "IFCTESSELLATEDITEM", list("CfsFaces", ent("", "IFCFACE", false), false))
	r.define("IFCCLOSEDSHELL", "IFCCONNECTEDFACESET")
	r.define("IFCFACEBASEDSURFACEMODEL", "IFCGEOMETRICREPRESENTATIONITEM")
	r.define("IFCFACETEDBREP", "IFCSOLIDMODEL", ent("Outer", "IFCCLOSEDSHELL", false))
	r.define("IFCFACE", "", list("Bounds", ent("", "IFCFACEBOUND", false), false))
	r.define("IFCFACEBOUND", "", ent("Bound", "IFCLOOP", false), AttrDef{Name: "Orientation", Type: AttrBoolean})
	r.define("IFCLOOP", "")
	r.define("IFCPOLYLOOP", "IFCLOOP", list("Polygon", ent("", "IFCCARTESIANPOINT", false), false))

	// --- Styling (§4.F.8) ---
	r.define("IFCSTYLEDITEM", "",
		ent("Item", "IFCREPRESENTATIONITEM", true),
		list("Styles", ent("", "IFCPRESENTATIONSTYLE", false), false),
		str("Name", true),
	)
	r.define("IFCPRESENTATIONSTYLE", "", str("Name", true))
	r.define("IFCSURFACESTYLE", "IFCPRESENTATIONSTYLE",
		enumAttr("Side", []string{"POSITIVE", "NEGATIVE", "BOTH"}, true),
		list("Styles", ent("", "IFCSURFACESTYLEELEMENTSELECT", false), false),
	)
	r.define("IFCSURFACESTYLESHADING", "IFCPRESENTATIONSTYLE",
		ent("SurfaceColour", "IFCCOLOURRGB", false),
	)
	r.define("IFCSURFACESTYLERENDERING", "IFCSURFACESTYLESHADING",
		real("Transparency", true),
		sel("DiffuseColour", []string{"IFCCOLOURRGB", "IFCNORMALISEDRATIOMEASURE"}, true),
		sel("TransmissionColour", []string{"IFCCOLOURRGB", "IFCNORMALISEDRATIOMEASURE"}, true),
		sel("DiffuseTransmissionColour", []string{"IFCCOLOURRGB", "IFCNORMALISEDRATIOMEASURE"}, true),
		sel("ReflectionColour", []string{"IFCCOLOURRGB", "IFCNORMALISEDRATIOMEASURE"}, true),
		sel("SpecularColour", []string{"IFCCOLOURRGB", "IFCNORMALISEDRATIOMEASURE"}, true),
		sel("SpecularHighlight", []string{"IFCSPECULARROUGHNESS", "IFCSPECULAREXPONENT"}, true),
		enumAttr("ReflectanceMethod", []string{"BLINN", "FLAT", "GLASS", "MATT", "METAL",
			"MIRROR", "PHISICAL", "PHONG", "PLASTIC", "STRAUSS", "NOTDEFINED"}, false),
	)
	r.define("IFCCOLOURRGB", "", str("Name", true), real("Red", false), real("Green", false), real("Blue", false))

	// --- Georeferencing (§4.F.6) ---
	r.define("IFCCOORDINATEOPERATION", "",
		sel("SourceCRS", []string{"IFCCOORDINATEREFERENCESYSTEM"}, false),
		ent("TargetCRS", "IFCCOORDINATEREFERENCESYSTEM", false),
	)
	r.define("IFCMAPCONVERSION", "IFCCOORDINATEOPERATION",
		real("Eastings", false), real("Northings", false), real("OrthogonalHeight", false),
		real("XAxisAbscissa", true), real("XAxisOrdinate", true), real("Scale", true),
	)
	r.define("IFCCOORDINATEREFERENCESYSTEM", "",
		str("Name", false), str("Description", true), str("GeodeticDatum", true), str("VerticalDatum", true),
	)
	r.define("IFCPROJECTEDCRS", "IFCCOORDINATEREFERENCESYSTEM",
		str("MapProjection", true), str("MapZone", true), ent("MapUnit", "IFCNAMEDUNIT", true),
	)
}
