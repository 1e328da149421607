package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "service.yaml", `
server:
  port: 9090
data:
  datasetDir: /srv/datasets
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/srv/datasets", cfg.Data.DatasetDir)
	// Unset values fall back to defaults.
	assert.Equal(t, "./examples/plants", cfg.Data.PlantDir)
	assert.Equal(t, "ee", cfg.Data.PriceZone)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HD_SERVER__PORT", "9191")
	t.Setenv("HD_DATA__PRICEZONE", "lv")

	path := writeConfig(t, "service.yaml", "server:\n  port: 8080\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "lv", cfg.Data.PriceZone)
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	path := writeConfig(t, "service.toml", "port = 8080\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadValidates(t *testing.T) {
	path := writeConfig(t, "service.yaml", "server:\n  port: 70000\n")
	_, err := Load(path)
	assert.Error(t, err)

	path = writeConfig(t, "telemetry.yaml", "telemetry:\n  enabled: true\n")
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.NoError(t, cfg.Validate())
}
