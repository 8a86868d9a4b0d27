// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ifclite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStepStringPassthrough(t *testing.T) {
	got, err := decodeStepString([]byte("Wall Type A"))
	require.NoError(t, err)
	assert.Equal(t, "Wall Type A", got)
}

func TestDecodeStepStringLatin1Escape(t *testing.T) {
	// \X\E9 is Latin-1 0xE9 ("e acute" byte, not valid UTF-8 on its own
	// once passed through verbatim, but that's what the escape means here
	// since the surrounding text models the legacy single-byte form).
	got, err := decodeStepString([]byte(`caf\X\E9`))
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, []byte(got))
}

func TestDecodeStepStringUTF16Run(t *testing.T) {
	// \X2\00E900E8\X0\ is U+00E9 (e) followed by U+00E8 (e grave).
	got, err := decodeStepString([]byte(`\X2\00E900E8\X0\`))
	require.NoError(t, err)
	assert.Equal(t, "éè", got)
}

func TestDecodeStepStringUTF32Run(t *testing.T) {
	got, err := decodeStepString([]byte(`\X4\00000041\X0\`))
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestDecodeStepStringTruncatedEscapeErrors(t *testing.T) {
	_, err := decodeStepString([]byte(`\X2\00E9`))
	assert.Error(t, err)
}
