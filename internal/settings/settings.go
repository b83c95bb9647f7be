// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings manages the run settings YAML file. A missing file is
// created with documented defaults; after command-line overrides are merged
// the file is rewritten so the overrides persist across runs.
package settings

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Settings holds the recognized keys of the settings file.
type Settings struct {
	// Query is the free-text search query.
	Query string `yaml:"query"`

	// Filetype is the file extension searched for and used as the link
	// suffix filter (without the leading dot).
	Filetype string `yaml:"filetype"`

	// Site restricts the search to a single site.
	Site string `yaml:"site"`

	// Referer is sent as the Referer header on search requests. Nil means
	// no header is attached.
	Referer *string `yaml:"referer"`

	// DestFolder is the directory downloaded files are written into.
	DestFolder string `yaml:"dest_folder"`
}

// Defaults returns the documented default settings written when no settings
// file exists.
func Defaults() Settings {
	return Settings{
		Query:      "dont sucres",
		Filetype:   "pdf",
		Site:       "example.com",
		Referer:    nil,
		DestFolder: "downloads",
	}
}

// Load reads the settings file at path. When the file does not exist it is
// created with Defaults and those defaults are returned with created=true.
// An existing but unreadable or malformed file is an error.
func Load(path string) (Settings, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return Settings{}, false, fmt.Errorf("reading settings file %s: %w", path, err)
		}
		defaults := Defaults()
		if err := Save(path, defaults); err != nil {
			return Settings{}, false, err
		}
		return defaults, true, nil
	}

	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, false, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return s, false, nil
}

// Save writes s to the settings file at path, replacing its contents.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}
