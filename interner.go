// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

// StringID identifies an interned string. Zero is the reserved empty
// string; AbsentStringID marks "no value" per §4.E step 1.
type StringID int32

// AbsentStringID is the sentinel returned for an absent string attribute.
const AbsentStringID StringID = -1

// Interner deduplicates attribute names, pset names, IFC type strings and
// enum values behind a dense StringID space, mirroring the schema's own
// table-of-known-names approach (§4.D) but open to runtime-discovered
// strings such as pset and property names.
type Interner struct {
	ids     map[string]StringID
	strings []string
}

// NewInterner returns an Interner with StringID(0) pre-bound to "".
func NewInterner() *Interner {
	in := &Interner{
		ids:     make(map[string]StringID, 256),
		strings: make([]string, 0, 256),
	}
	in.strings = append(in.strings, "")
	in.ids[""] = 0
	return in
}

// Intern returns the StringID for s, assigning a new one on first sight.
func (in *Interner) Intern(s string) StringID {
	if id, ok := in.ids[s]; ok {
		return id
	}
	id := StringID(len(in.strings))
	in.strings = append(in.strings, s)
	in.ids[s] = id
	return id
}

// Lookup returns the interned string for id, or "" with ok=false for an
// out-of-range or absent id.
func (in *Interner) Lookup(id StringID) (string, bool) {
	if id < 0 || int(id) >= len(in.strings) {
		return "", false
	}
	return in.strings[id], true
}

// Len reports how many distinct strings (including the empty string) have
// been interned.
func (in *Interner) Len() int { return len(in.strings) }

// Find returns the StringID already bound to s without interning a new one,
// used by lookups that must not grow the table for a name that never
// appeared in the file (e.g. probing for a relationship type by name).
func (in *Interner) Find(s string) (StringID, bool) {
	id, ok := in.ids[s]
	return id, ok
}
