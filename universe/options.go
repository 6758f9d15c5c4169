// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package universe

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"cogentcore.org/vecdoc/fontkit"
)

// Options is the recognized configuration of a universe.
type Options struct {
	// Entry chooses the compilation root.
	Entry EntryState `toml:"entry"`

	// Inputs is passed to the upstream engine as sys.inputs.
	Inputs map[string]string `toml:"inputs"`

	// FontPaths lists additional directories searched for fonts.
	FontPaths []string `toml:"font-paths"`

	// WithEmbeddedFonts makes the in-memory font blobs available.
	WithEmbeddedFonts bool `toml:"with-embedded-fonts"`

	// NoSystemFonts skips OS font discovery.
	NoSystemFonts bool `toml:"no-system-fonts"`

	// FontProfileCachePath caches the font-info profile.
	FontProfileCachePath string `toml:"font-profile-cache-path"`

	// SourceMapping attaches debug spans and emits source mapping
	// entries in deltas.
	SourceMapping bool `toml:"source-mapping"`
}

// FontOptions returns the font loading subset of the options.
func (o *Options) FontOptions() fontkit.FontOptions {
	return fontkit.FontOptions{
		FontPaths:         o.FontPaths,
		WithEmbeddedFonts: o.WithEmbeddedFonts,
		NoSystemFonts:     o.NoSystemFonts,
	}
}

// OpenOptions reads options from a TOML file.
func OpenOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o := &Options{}
	if err := toml.Unmarshal(data, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SaveOptions writes options to a TOML file.
func SaveOptions(path string, o *Options) error {
	data, err := toml.Marshal(o)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
