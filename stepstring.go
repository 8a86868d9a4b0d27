// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/unicode"
)

var utf16beDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

// decodeStepString expands the STEP unicode escapes \X\hh, \X2\hhhh*\X0\ and
// \X4\hhhhhhhh*\X0\ embedded in a string literal's raw bytes (the literal
// apostrophe escape '' is handled by the caller before this runs). Bytes
// outside any escape are passed through as-is; the function assumes the
// surrounding document is UTF-8 per §6.
func decodeStepString(raw []byte) (string, error) {
	out := make([]byte, 0, len(raw))
	i := 0
	n := len(raw)
	for i < n {
		if raw[i] == '\\' && i+2 < n && raw[i+1] == 'X' {
			switch {
			case raw[i+2] == '\\':
				// \X\hh - single extended-Latin byte.
				end := i + 3
				if end+2 > n {
					return "", fmt.Errorf("truncated \\X\\ escape at byte %d", i)
				}
				v, err := strconv.ParseUint(string(raw[end:end+2]), 16, 8)
				if err != nil {
					return "", fmt.Errorf("invalid \\X\\ escape at byte %d: %w", i, err)
				}
				out = append(out, byte(v))
				i = end + 2
				continue

			case raw[i+2] == '2' && i+3 < n && raw[i+3] == '\\':
				units, next, err := collectRunEscape(raw, i+4, 4)
				if err != nil {
					return "", err
				}
				decoded, err := utf16beDecoder.Bytes(units)
				if err != nil {
					return "", fmt.Errorf("invalid \\X2\\ escape at byte %d: %w", i, err)
				}
				out = append(out, decoded...)
				i = next
				continue

			case raw[i+2] == '4' && i+3 < n && raw[i+3] == '\\':
				units, next, err := collectRunEscape(raw, i+4, 8)
				if err != nil {
					return "", err
				}
				decoded, err := decodeUTF32BE(units)
				if err != nil {
					return "", fmt.Errorf("invalid \\X4\\ escape at byte %d: %w", i, err)
				}
				out = append(out, decoded...)
				i = next
				continue
			}
		}
		out = append(out, raw[i])
		i++
	}
	return string(out), nil
}

// collectRunEscape reads hex groups of hexWidth each, as raw big-endian
// bytes, until the \X0\ terminator, returning the concatenated byte buffer
// and the position just past the terminator.
func collectRunEscape(raw []byte, start, hexWidth int) ([]byte, int, error) {
	n := len(raw)
	p := start
	out := make([]byte, 0, hexWidth*2)
	for {
		if p+4 <= n && raw[p] == '\\' && raw[p+1] == 'X' && raw[p+2] == '0' && raw[p+3] == '\\' {
			return out, p + 4, nil
		}
		if p+hexWidth > n {
			return nil, 0, fmt.Errorf("truncated unicode run escape at byte %d", start)
		}
		bitSize := hexWidth * 4
		v, err := strconv.ParseUint(string(raw[p:p+hexWidth]), 16, bitSize)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid unicode escape group at byte %d: %w", p, err)
		}
		switch hexWidth {
		case 4:
			out = append(out, byte(v>>8), byte(v))
		case 8:
			out = append(out, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
		}
		p += hexWidth
	}
}

// decodeUTF32BE converts a buffer of 4-byte big-endian code points into UTF-8.
func decodeUTF32BE(units []byte) ([]byte, error) {
	out := make([]byte, 0, len(units))
	for i := 0; i+4 <= len(units); i += 4 {
		v := uint32(units[i])<<24 | uint32(units[i+1])<<16 | uint32(units[i+2])<<8 | uint32(units[i+3])
		out = append(out, []byte(string(rune(v)))...)
	}
	return out, nil
}
