package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sagarc03/weft/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load([]string{writeConfig(t, "")}, nil)

	require.NoError(t, err)
	assert.Equal(t, 5709, cfg.Server.Port)
	assert.False(t, cfg.Server.Debug)
	assert.Equal(t, "./public", cfg.Files.Root)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9000
  debug: true
files:
  root: /srv/www
  redirect_symlinks: true
  types:
    md: text/markdown
log:
  level: debug
`)

	cfg, err := config.Load([]string{path}, nil)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "/srv/www", cfg.Files.Root)
	assert.True(t, cfg.Files.RedirectSymlinks)
	assert.Equal(t, "text/markdown", cfg.Files.Types["md"])
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_LaterFileOverrides(t *testing.T) {
	base := writeConfig(t, "server:\n  port: 9000\n")
	override := writeConfig(t, "server:\n  port: 9001\n")

	cfg, err := config.Load([]string{base, override}, nil)

	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\nfiles:\n  root: /srv/www\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.String("root", "", "")
	require.NoError(t, flags.Parse([]string{"--port=8080", "--root=/srv/other"}))

	cfg, err := config.Load([]string{path}, flags)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/srv/other", cfg.Files.Root)
}

func TestLoad_UnsetFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 1234, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load([]string{path}, flags)

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
}

func TestLoad_InvalidPort(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 70000\n")

	_, err := config.Load([]string{path}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "log:\n  level: loud\n")

	_, err := config.Load([]string{path}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate config")
}

func TestFromContext(t *testing.T) {
	cfg := &config.Config{}

	got, err := config.FromContext(config.WithContext(t.Context(), cfg))
	require.NoError(t, err)
	assert.Same(t, cfg, got)

	_, err = config.FromContext(t.Context())
	assert.Error(t, err)
}
