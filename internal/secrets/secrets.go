// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads the Custom Search API credentials from a JSON file.
// The file holds two named string values: API_KEY and SEARCH_ENGINE_ID.
//
// Values may also come from the environment (API_KEY, SEARCH_ENGINE_ID),
// typically populated from a .env file at startup. Environment values fill
// fields the file leaves empty; a file that is missing entirely is accepted
// only when the environment supplies both values.
package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Environment variable names checked as fallbacks for the file contents.
const (
	EnvAPIKey   = "API_KEY"
	EnvEngineID = "SEARCH_ENGINE_ID"
)

// Credentials holds the two opaque tokens required to call the search API.
type Credentials struct {
	// APIKey authenticates requests against the search API.
	APIKey string `json:"API_KEY"`

	// EngineID identifies the search scope (the custom search engine).
	EngineID string `json:"SEARCH_ENGINE_ID"`
}

// Load reads credentials from the JSON file at path. Missing fields are
// filled from the environment. An unreadable or malformed file, or
// incomplete credentials after the environment fallback, is an error:
// the caller must abort before any network activity.
func Load(path string) (Credentials, error) {
	var creds Credentials

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &creds); err != nil {
			return Credentials{}, fmt.Errorf("parsing secrets file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Fall through to the environment.
	default:
		return Credentials{}, fmt.Errorf("reading secrets file %s: %w", path, err)
	}

	if creds.APIKey == "" {
		creds.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if creds.EngineID == "" {
		creds.EngineID = strings.TrimSpace(os.Getenv(EnvEngineID))
	}

	if creds.APIKey == "" || creds.EngineID == "" {
		return Credentials{}, fmt.Errorf("incomplete credentials: %s must define API_KEY and SEARCH_ENGINE_ID", path)
	}
	return creds, nil
}
