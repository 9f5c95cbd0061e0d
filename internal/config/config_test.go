package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearKeys(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")
}

func TestLoadMissingCredentialFailsFast(t *testing.T) {
	clearKeys(t)
	path := writeConfig(t, "server:\n  port: 9000\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestLoadFromYAML(t *testing.T) {
	clearKeys(t)
	path := writeConfig(t, `
server:
  port: 9000
gemini:
  apiKey: yaml-key
  model: gemini-2.0-flash
poll:
  deadlineSeconds: 120
elevenlabs:
  apiKey: tts-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "yaml-key", cfg.Gemini.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.PollDeadline())
	assert.True(t, cfg.NarrationEnabled())
	assert.False(t, cfg.RewriteEnabled())
	assert.False(t, cfg.ArtifactsEnabled())
}

func TestEnvOverridesYAML(t *testing.T) {
	clearKeys(t)
	t.Setenv("GEMINI_API_KEY", "env-key")
	path := writeConfig(t, "gemini:\n  apiKey: yaml-key\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
}

func TestGoogleAPIKeyFallback(t *testing.T) {
	clearKeys(t)
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "google-key", cfg.Gemini.APIKey)
}

func TestDefaults(t *testing.T) {
	clearKeys(t)
	t.Setenv("GEMINI_API_KEY", "k")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.PollInterval())
	assert.Equal(t, time.Minute, cfg.PollWarnAfter())
	assert.Equal(t, 5*time.Minute, cfg.PollDeadline())
	assert.Equal(t, int64(100<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.False(t, cfg.NarrationEnabled())
}
