// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import "fmt"

// WarningKind classifies a non-fatal issue recorded during build or
// geometry evaluation. The build keeps going; the issue surfaces through
// (*Model).Warnings instead of aborting the parse (§7 "Entity-level
// errors... recorded, never abort the whole parse").
type WarningKind uint8

// Warning kinds.
const (
	WarnDanglingReference WarningKind = iota
	WarnArityMismatch
	WarnUnsupportedGeometry
	WarnBooleanFailed
	WarnMissingUnit
	WarnDegenerateProfile
)

func (k WarningKind) String() string {
	switch k {
	case WarnDanglingReference:
		return "DanglingReference"
	case WarnArityMismatch:
		return "ArityMismatch"
	case WarnUnsupportedGeometry:
		return "UnsupportedGeometry"
	case WarnBooleanFailed:
		return "BooleanFailed"
	case WarnMissingUnit:
		return "MissingUnit"
	case WarnDegenerateProfile:
		return "DegenerateProfile"
	default:
		return "Unknown"
	}
}

// Warning is one recorded issue, anchored to the express id it concerns
// (0 when not tied to a specific entity).
type Warning struct {
	ExpressID uint32
	Kind      WarningKind
	Message   string
}

func (w Warning) String() string {
	if w.ExpressID == 0 {
		return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
	}
	return fmt.Sprintf("[%s] #%d: %s", w.Kind, w.ExpressID, w.Message)
}

// addWarning appends to the model's append-only warning log and mirrors it
// to the configured logger at WARN level.
func (m *Model) addWarning(expressID uint32, kind WarningKind, message string) {
	w := Warning{ExpressID: expressID, Kind: kind, Message: message}
	m.warnings = append(m.warnings, w)
	m.logger.Warnf("%s", w.String())
}

// Warnings returns every warning recorded so far, in the order recorded.
// The slice is owned by the caller; Model never mutates previously
// returned entries.
func (m *Model) Warnings() []Warning {
	out := make([]Warning, len(m.warnings))
	copy(out, m.warnings)
	return out
}
