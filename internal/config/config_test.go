package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chtmp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chtmp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.AllowedOrigin)
	assert.InDelta(t, 0.30, cfg.Safety.Weights.TimeOfDay, 0.001)
	assert.InDelta(t, 0.25, cfg.Safety.Weights.CrimeRate, 0.001)
	assert.InDelta(t, 0.15, cfg.Safety.Weights.Crowdedness, 0.001)
	assert.InDelta(t, 0.15, cfg.Safety.Weights.Lighting, 0.001)
	assert.InDelta(t, 0.15, cfg.Safety.Weights.KnownSafeZones, 0.001)
	assert.InDelta(t, 1.0, cfg.Safety.Weights.Sum(), 0.001)
	assert.Equal(t, 10.0, cfg.Map.HitRadiusPx)
	assert.Equal(t, 800.0, cfg.Map.ViewportWidth)
	assert.InDelta(t, 19.033, cfg.Geo.DefaultLat, 0.0001)
	assert.InDelta(t, 73.0297, cfg.Geo.DefaultLng, 0.0001)
	assert.Equal(t, 15, cfg.CheckIn.IntervalMinutes)
	assert.Equal(t, 50, cfg.CheckIn.SafetyRadiusMeter)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chtmp(t)

	yaml := `
store:
  driver: sqlite
  database_url: suraksha.db
log:
  level: debug
  format: console
server:
  port: 9090
checkin:
  interval_minutes: 30
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "suraksha.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.CheckIn.IntervalMinutes)
	// Defaults still apply for unset values
	assert.Equal(t, 10.0, cfg.Map.HitRadiusPx)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chtmp(t)

	yaml := `
server:
  port: 9090
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("SURAKSHA_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestValidate_BadDriver(t *testing.T) {
	dir := chtmp(t)
	yaml := `
store:
  driver: dynamodb
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestValidate_MissingDatabaseURL(t *testing.T) {
	dir := chtmp(t)
	yaml := `
store:
  driver: postgres
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires database_url")
}

func TestValidate_WeightSum(t *testing.T) {
	dir := chtmp(t)
	yaml := `
safety:
  weights:
    time_of_day: 0.9
    crime_rate: 0.9
    crowdedness: 0.15
    lighting: 0.15
    known_safe_zones: 0.15
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weights should sum to 1.0")
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))

	assert.Error(t, InitLogger(LogConfig{Level: "verbose", Format: "json"}))
}
