// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package geometry

// DefaultColors maps an upper-case IFC element type name to its fallback
// RGBA color, applied when no IfcStyledItem resolves one (§4.F.8). Alpha
// is 1 (opaque) unless the type is conventionally translucent.
var DefaultColors = map[string]Color{
	"IFCWALL":                 {0.75, 0.70, 0.62, 1},
	"IFCWALLSTANDARDCASE":     {0.75, 0.70, 0.62, 1},
	"IFCSLAB":                 {0.60, 0.60, 0.60, 1},
	"IFCDOOR":                 {0.55, 0.35, 0.20, 1},
	"IFCWINDOW":               {0.60, 0.80, 0.90, 0.35},
	"IFCCOLUMN":               {0.55, 0.55, 0.55, 1},
	"IFCBEAM":                 {0.55, 0.55, 0.55, 1},
	"IFCROOF":                 {0.45, 0.30, 0.25, 1},
	"IFCSTAIR":                {0.65, 0.65, 0.65, 1},
	"IFCRAILING":              {0.40, 0.40, 0.40, 1},
	"IFCCOVERING":             {0.80, 0.80, 0.75, 1},
	"IFCFURNISHINGELEMENT":    {0.60, 0.45, 0.30, 1},
	"IFCFLOWTERMINAL":         {0.70, 0.70, 0.75, 1},
	"IFCFLOWSEGMENT":          {0.70, 0.70, 0.75, 1},
	"IFCMEMBER":               {0.55, 0.55, 0.55, 1},
	"IFCPLATE":                {0.65, 0.65, 0.65, 1},
	"IFCCURTAINWALL":          {0.60, 0.80, 0.90, 0.5},
	"IFCBUILDINGELEMENTPROXY": {0.70, 0.70, 0.70, 1},
	"IFCSPACE":                {0.50, 0.70, 0.90, 0.15},
}

// DefaultColorFor returns an element type's fallback color, or a neutral
// gray when the type has no recorded default.
func DefaultColorFor(ifcTypeUpper string) Color {
	if c, ok := DefaultColors[ifcTypeUpper]; ok {
		return c
	}
	return Color{0.65, 0.65, 0.65, 1}
}

// ResolveColor implements §4.F.8's color precedence cascade: an
// item-level style wins over a type-level style, which wins over the
// per-element-type default. itemStyle/typeStyle are nil when absent.
func ResolveColor(itemStyle, typeStyle *Color, ifcTypeUpper string) Color {
	if itemStyle != nil {
		return *itemStyle
	}
	if typeStyle != nil {
		return *typeStyle
	}
	return DefaultColorFor(ifcTypeUpper)
}
