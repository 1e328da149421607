package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-dispatch/internal/model"
)

func writePlant(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPlantFillsDefaults(t *testing.T) {
	path := writePlant(t, t.TempDir(), "coastal.yaml", `
name: coastal
inverter_power_kw: 120
battery_capacity_kwh: 250
`)
	p, err := LoadPlant(path)
	require.NoError(t, err)

	assert.Equal(t, "coastal", p.Name)
	assert.Equal(t, 120.0, p.InverterPowerKW)
	assert.Equal(t, 250.0, p.BatteryCapacityKWh)
	// Unset knobs come from the defaults.
	assert.Equal(t, model.DefaultReserve, p.Reserve)
	assert.Equal(t, model.DefaultRoundTripEfficiency, p.RoundTripEfficiency)
	assert.Equal(t, model.DefaultChargeHoursPerDay, p.ChargeHoursPerDay)
}

func TestLoadPlantNameFallsBackToFilename(t *testing.T) {
	path := writePlant(t, t.TempDir(), "rooftop.yaml", "inverter_power_kw: 50\n")
	p, err := LoadPlant(path)
	require.NoError(t, err)
	assert.Equal(t, "rooftop", p.Name)
}

func TestLoadPlantBadYAML(t *testing.T) {
	path := writePlant(t, t.TempDir(), "bad.yaml", "inverter_power_kw: [not a number\n")
	_, err := LoadPlant(path)
	assert.Error(t, err)
}

func TestMergePlantOverlaysNonZeroFields(t *testing.T) {
	base := DefaultPlant()
	merged := MergePlant(base, PlantConfig{
		BatteryCapacityKWh: 800,
		ChargeHoursPerDay:  6,
	})

	assert.Equal(t, 800.0, merged.BatteryCapacityKWh)
	assert.Equal(t, 6, merged.ChargeHoursPerDay)
	// Untouched fields keep the base values.
	assert.Equal(t, base.InverterPowerKW, merged.InverterPowerKW)
	assert.Equal(t, base.Reserve, merged.Reserve)
	assert.Equal(t, base.Name, merged.Name)
}

func TestToSimulationConfig(t *testing.T) {
	cfg, err := DefaultPlant().ToSimulationConfig()
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSimulationConfig(), cfg)

	bad := DefaultPlant()
	bad.Reserve = 0.2
	_, err = bad.ToSimulationConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")
}

func TestListPlants(t *testing.T) {
	dir := t.TempDir()
	writePlant(t, dir, "a.yaml", "name: a\n")
	writePlant(t, dir, "b.yml", "name: b\n")
	writePlant(t, dir, "ignored.json", "{}")

	plants, err := ListPlants(dir)
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, "a", plants[0].Name)
	assert.Equal(t, "b", plants[1].Name)
}

func TestListPlantsMissingDir(t *testing.T) {
	plants, err := ListPlants(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, plants)
}
