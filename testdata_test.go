// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

// minimalIFC4 is the smallest file this package's testable properties
// (§8) describe: a single IfcProject, no sites/buildings/elements, no
// geometry. Used by the project-only "no MeshBatch" scenario and by
// basic build-pass smoke tests.
const minimalIFC4 = `ISO-10303-21;
HEADER;
FILE_DESCRIPTION((''),'2;1');
FILE_NAME('','',(''),(''),'','','');
FILE_SCHEMA(('IFC4'));
ENDSEC;
DATA;
#1=IFCPROJECT('0eGX$lz0HAuhZuKw48v96r',$,'Test Project',$,$,$,$,(),$);
ENDSEC;
END-ISO-10303-21;
`
