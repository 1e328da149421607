package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSimulationConfig(t *testing.T) {
	cfg := DefaultSimulationConfig()

	assert.Equal(t, 200.0, cfg.InverterPowerKW)
	assert.Equal(t, 400.0, cfg.BatteryCapacityKWh)
	assert.Equal(t, 0.95, cfg.MaxSOC)
	assert.InDelta(t, 0.05, cfg.MinSOC, 1e-12)
	assert.InDelta(t, math.Sqrt(0.94), cfg.ChargeEfficiency, 1e-12)
	assert.Equal(t, cfg.ChargeEfficiency, cfg.DischargeEfficiency)
	assert.Equal(t, 5, cfg.ChargeHoursPerDay)
	assert.Equal(t, 4, cfg.DischargeHoursPerDay)
	require.NoError(t, cfg.Validate())
}

func TestNewSimulationConfigDerivedValues(t *testing.T) {
	cfg, err := NewSimulationConfig(100, 200, 0.9, 0.81, 1.5, 3, 2)
	require.NoError(t, err)

	assert.InDelta(t, 0.9, cfg.ChargeEfficiency, 1e-12)
	assert.InDelta(t, 160.0, cfg.UsableSwingKWh(), 1e-9)
	assert.InDelta(t, 180.0, cfg.ChargeLimitKWh(), 1e-9)
	assert.InDelta(t, 20.0, cfg.DischargeFloorKWh(), 1e-9)
	assert.InDelta(t, 300.0, cfg.MaxDailyThroughputKWh(), 1e-9)
}

func TestNewSimulationConfigRejectsBadParams(t *testing.T) {
	cases := []struct {
		name                        string
		inverter, capacity          float64
		reserve, roundTrip, cycles  float64
		chargeHours, dischargeHours int
	}{
		{"zero capacity", 100, 0, 0.95, 0.94, 2, 5, 4},
		{"zero inverter", 0, 400, 0.95, 0.94, 2, 5, 4},
		{"reserve below half inverts bounds", 100, 400, 0.4, 0.94, 2, 5, 4},
		{"reserve above one", 100, 400, 1.1, 0.94, 2, 5, 4},
		{"zero efficiency", 100, 400, 0.95, 0, 2, 5, 4},
		{"negative efficiency", 100, 400, 0.95, -0.5, 2, 5, 4},
		{"efficiency above one", 100, 400, 0.95, 1.2, 2, 5, 4},
		{"zero cycles", 100, 400, 0.95, 0.94, 0, 5, 4},
		{"zero charge hours", 100, 400, 0.95, 0.94, 2, 0, 4},
		{"zero discharge hours", 100, 400, 0.95, 0.94, 2, 5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSimulationConfig(tc.inverter, tc.capacity, tc.reserve, tc.roundTrip, tc.cycles, tc.chargeHours, tc.dischargeHours)
			assert.Error(t, err)
		})
	}
}

func TestValidateRejectsNaNEfficiency(t *testing.T) {
	cfg := DefaultSimulationConfig()
	cfg.ChargeEfficiency = math.NaN()
	assert.Error(t, cfg.Validate())

	cfg = DefaultSimulationConfig()
	cfg.DischargeEfficiency = math.NaN()
	assert.Error(t, cfg.Validate())
}
