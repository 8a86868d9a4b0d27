// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import "github.com/ifc-lite/ifclite/geometry"

// GeoReference resolves the file's map conversion, if any, into the
// geometry kernel's georeferencing shape (§4.F.6). A file carries at most
// one IfcMapConversion in practice; the first one found is used. Returns
// ok=false when the file has no georeferencing (most files don't).
func (m *Model) GeoReference() (geometry.GeoReference, bool) {
	typeID, ok := m.internerLookupUpper("IFCMAPCONVERSION")
	if !ok {
		return geometry.GeoReference{}, false
	}
	ids := m.index.IDsOfType(typeID)
	if len(ids) == 0 {
		return geometry.GeoReference{}, false
	}
	mc, err := m.decoder.Decode(ids[0])
	if err != nil {
		return geometry.GeoReference{}, false
	}

	scale := 1.0
	if v, ok := mc.Attr("Scale"); ok && v.Kind == AVReal {
		scale = v.Real
	}

	var name string
	if tv, ok := mc.Attr("TargetCRS"); ok && tv.Kind == AVEntityRef {
		if crs, err := m.decoder.Decode(tv.Ref); err == nil {
			if nv, ok := crs.Attr("Name"); ok && nv.Kind == AVString {
				name = nv.Str
			}
		}
	}

	return geometry.GeoReference{
		CRSName: name,
		Origin: geometry.Vec3{
			X: realAttr(mc, "Eastings"),
			Y: realAttr(mc, "Northings"),
			Z: realAttr(mc, "OrthogonalHeight"),
		},
		RotationRadians: geometry.RotationFromAxis(realAttr(mc, "XAxisAbscissa"), realAttr(mc, "XAxisOrdinate")),
		Scale:           scale,
	}, true
}
