// Copyright 2024 IFC-Lite. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package config loads ifclite.Options presets from YAML, for hosts that
// want to pin quality/batching/instancing/void behavior in a checked-in file
// rather than construct an Options literal in code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ifc-lite/ifclite"
)

// Preset is the YAML-serializable mirror of ifclite.Options (§6
// "Configuration options recognized by stream_process"). Field names
// match the spec's snake_case wire names rather than Options' Go names,
// since this is the on-disk/host-facing shape.
type Preset struct {
	Quality                  string  `yaml:"quality"`
	SizeThresholdBytes       int64   `yaml:"size_threshold_bytes"`
	InitialBatchSize         int     `yaml:"initial_batch_size"`
	MaxBatchSize             int     `yaml:"max_batch_size"`
	CoordinateShiftThreshold float64 `yaml:"coordinate_shift_threshold"`
	EnableInstancing         *bool   `yaml:"enable_instancing"`
	EnableVoids              *bool   `yaml:"enable_voids"`
	DecoderCacheSize         int     `yaml:"decoder_cache_size"`
}

// Load reads and parses a YAML preset file.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}
	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return p, nil
}

// ErrUnknownQuality is returned by ToOptions for a quality string other
// than "fast", "balanced" or "high".
var ErrUnknownQuality = fmt.Errorf("config: quality must be one of fast, balanced, high")

// ToOptions converts the preset into an ifclite.Options, defaulting
// EnableInstancing/EnableVoids to true (matching Options.fillDefaults'
// zero-value bool caveat: Go's bool zero value is false, so an absent
// YAML key must still resolve to the spec's documented default of true,
// hence the *bool fields above rather than plain bool).
func (p Preset) ToOptions() (ifclite.Options, error) {
	var o ifclite.Options

	switch p.Quality {
	case "", "balanced":
		o.Quality = ifclite.QualityBalanced
	case "fast":
		o.Quality = ifclite.QualityFast
	case "high":
		o.Quality = ifclite.QualityHigh
	default:
		return ifclite.Options{}, ErrUnknownQuality
	}

	o.SizeThresholdBytes = p.SizeThresholdBytes
	o.InitialBatchSize = p.InitialBatchSize
	o.MaxBatchSize = p.MaxBatchSize
	o.CoordinateShiftThreshold = p.CoordinateShiftThreshold
	o.DecoderCacheSize = p.DecoderCacheSize

	o.EnableInstancing = p.EnableInstancing == nil || *p.EnableInstancing
	o.EnableVoids = p.EnableVoids == nil || *p.EnableVoids

	return o, nil
}
