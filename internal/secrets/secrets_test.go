// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(t *testing.T) string
		env    map[string]string
		want   Credentials
		errMsg string
	}{
		{
			name: "reads both values from file",
			setup: func(t *testing.T) string {
				return writeSecret(t, `{"API_KEY": "key-123", "SEARCH_ENGINE_ID": "cx-456"}`)
			},
			want: Credentials{APIKey: "key-123", EngineID: "cx-456"},
		},
		{
			name: "malformed JSON is an error",
			setup: func(t *testing.T) string {
				return writeSecret(t, `API_KEY=key-123`)
			},
			errMsg: "parsing secrets file",
		},
		{
			name: "file missing a value is an error",
			setup: func(t *testing.T) string {
				return writeSecret(t, `{"API_KEY": "key-123"}`)
			},
			errMsg: "incomplete credentials",
		},
		{
			name: "missing file is an error without environment",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			errMsg: "incomplete credentials",
		},
		{
			name: "environment fills missing file fields",
			setup: func(t *testing.T) string {
				return writeSecret(t, `{"API_KEY": "key-123"}`)
			},
			env:  map[string]string{EnvEngineID: "cx-env"},
			want: Credentials{APIKey: "key-123", EngineID: "cx-env"},
		},
		{
			name: "environment alone suffices when file is absent",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			env:  map[string]string{EnvAPIKey: " key-env ", EnvEngineID: "cx-env"},
			want: Credentials{APIKey: "key-env", EngineID: "cx-env"},
		},
		{
			name: "file values win over environment",
			setup: func(t *testing.T) string {
				return writeSecret(t, `{"API_KEY": "key-file", "SEARCH_ENGINE_ID": "cx-file"}`)
			},
			env:  map[string]string{EnvAPIKey: "key-env", EnvEngineID: "cx-env"},
			want: Credentials{APIKey: "key-file", EngineID: "cx-file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Keep ambient credentials out of the test.
			t.Setenv(EnvAPIKey, "")
			t.Setenv(EnvEngineID, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			got, err := Load(tt.setup(t))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeSecret(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".secret")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
