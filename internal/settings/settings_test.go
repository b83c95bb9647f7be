// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	got, created, err := Load(path)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, Defaults(), got)

	// The file must now exist and contain exactly the defaults.
	reloaded, createdAgain, err := Load(path)
	require.NoError(t, err)
	assert.False(t, createdAgain)
	assert.Equal(t, Defaults(), reloaded)
}

func TestLoadExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "query: static analysis\nfiletype: pdf\nsite: arxiv.org\nreferer: null\ndest_folder: papers\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, created, err := Load(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, Settings{
		Query:      "static analysis",
		Filetype:   "pdf",
		Site:       "arxiv.org",
		Referer:    nil,
		DestFolder: "papers",
	}, got)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing settings file")
}

func TestSaveLoadRoundTrip(t *testing.T) {
	referer := "https://example.org/"
	tests := []struct {
		name string
		in   Settings
	}{
		{"defaults", Defaults()},
		{"referer set", Settings{Query: "q", Filetype: "csv", Site: "data.gov", Referer: &referer, DestFolder: "out"}},
		{"empty strings survive", Settings{Referer: nil}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, Save(path, tt.in))

			got, created, err := Load(path)
			require.NoError(t, err)
			assert.False(t, created)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestSavePersistsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	s, _, err := Load(path)
	require.NoError(t, err)

	s.Query = "overridden"
	s.DestFolder = "elsewhere"
	require.NoError(t, Save(path, s))

	got, created, err := Load(path)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "overridden", got.Query)
	assert.Equal(t, "elsewhere", got.DestFolder)
	// Untouched keys keep their default values.
	assert.Equal(t, "pdf", got.Filetype)
}
