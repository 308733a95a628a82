// Copyright (c) Openwire Labs. All rights reserved.

package responses_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwire-ai/respond/responses"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "OPENAI_ORGANIZATION"} {
		t.Setenv(k, "")
	}
}

func TestLoadSettings_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeSettingsFile(t, `
api_key: file-key
base_url: https://example.com/v1
model: gpt-4.1-mini
organization: org-file
`)

	s, err := responses.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", s.APIKey)
	assert.Equal(t, "https://example.com/v1", s.BaseURL)
	assert.Equal(t, "gpt-4.1-mini", s.Model)
	assert.Equal(t, "org-file", s.Organization)
}

func TestLoadSettings_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeSettingsFile(t, `
api_key: file-key
model: gpt-4.1-mini
`)
	t.Setenv("OPENAI_API_KEY", "env-key")
	t.Setenv("OPENAI_MODEL", "gpt-5")

	s, err := responses.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", s.APIKey)
	assert.Equal(t, "gpt-5", s.Model)
}

func TestLoadSettings_EnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "env-key")

	s, err := responses.LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "env-key", s.APIKey)
}

func TestLoadSettings_MissingAPIKey(t *testing.T) {
	clearEnv(t)
	path := writeSettingsFile(t, `model: gpt-4.1-mini`)

	_, err := responses.LoadSettings(path)
	assert.ErrorIs(t, err, responses.ErrMissingAPIKey)
	assert.ErrorIs(t, err, responses.ErrConfig)
}

func TestLoadSettings_UnreadableFile(t *testing.T) {
	clearEnv(t)
	_, err := responses.LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, responses.ErrConfig)
}

func TestLoadSettings_Timeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("OPENAI_TIMEOUT", "30s")

	s, err := responses.LoadSettings("")
	require.NoError(t, err)
	assert.Equal(t, "30s", s.Timeout)
}

func TestLoadSettings_BadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "k")
	t.Setenv("OPENAI_TIMEOUT", "half an hour")

	_, err := responses.LoadSettings("")
	assert.ErrorIs(t, err, responses.ErrConfig)
}

func TestLoadSettings_MalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeSettingsFile(t, "api_key: [unterminated")

	_, err := responses.LoadSettings(path)
	assert.ErrorIs(t, err, responses.ErrConfig)
}

func TestFromEnv_MissingKey(t *testing.T) {
	clearEnv(t)
	_, err := responses.FromEnv()
	assert.True(t, errors.Is(err, responses.ErrMissingAPIKey))
}
