// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifc-lite/ifclite"
)

func writePreset(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAndToOptionsDefaults(t *testing.T) {
	path := writePreset(t, "quality: high\n")
	preset, err := Load(path)
	require.NoError(t, err)

	opts, err := preset.ToOptions()
	require.NoError(t, err)
	assert.Equal(t, ifclite.QualityHigh, opts.Quality)
	// EnableInstancing/EnableVoids must default true when absent from
	// YAML, not Go's bool zero value.
	assert.True(t, opts.EnableInstancing)
	assert.True(t, opts.EnableVoids)
}

func TestToOptionsExplicitFalse(t *testing.T) {
	path := writePreset(t, "enable_voids: false\nmax_batch_size: 200\n")
	preset, err := Load(path)
	require.NoError(t, err)

	opts, err := preset.ToOptions()
	require.NoError(t, err)
	assert.False(t, opts.EnableVoids)
	assert.True(t, opts.EnableInstancing)
	assert.Equal(t, 200, opts.MaxBatchSize)
}

func TestToOptionsUnknownQuality(t *testing.T) {
	preset := Preset{Quality: "ludicrous"}
	_, err := preset.ToOptions()
	assert.ErrorIs(t, err, ErrUnknownQuality)
}
