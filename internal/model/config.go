package model

import (
	"errors"
	"math"
)

// Defaults for the configuration surface. These mirror the CLI defaults:
// a 200 kW inverter in front of a 400 kWh battery operated between 5% and
// 95% SOC with a 0.94 round-trip efficiency.
const (
	DefaultInverterPowerKW      = 200.0
	DefaultBatteryCapacityKWh   = 400.0
	DefaultReserve              = 0.95
	DefaultRoundTripEfficiency  = 0.94
	DefaultMaxCyclesPerDay      = 2.0
	DefaultChargeHoursPerDay    = 5
	DefaultDischargeHoursPerDay = 4
)

// SimulationConfig holds the immutable physical and planning parameters for
// one simulation run. Both the day planner and the dispatch engine receive it
// by value; nothing mutates it after construction.
//
// Units:
// - InverterPowerKW: kW (also the per-hour energy ceiling in kWh)
// - BatteryCapacityKWh: kWh
// - MinSOC/MaxSOC: fractions, 0 <= MinSOC < MaxSOC <= 1
// - Efficiencies: 0..1, applied per leg (charge and discharge separately)
// - MaxCyclesPerDay: daily throughput budget in full-capacity equivalents
type SimulationConfig struct {
	InverterPowerKW      float64
	BatteryCapacityKWh   float64
	MaxSOC               float64
	MinSOC               float64
	ChargeEfficiency     float64
	DischargeEfficiency  float64
	MaxCyclesPerDay      float64
	ChargeHoursPerDay    int
	DischargeHoursPerDay int
}

// NewSimulationConfig builds a validated config from the external parameter
// surface. The reserve fraction defines both SOC bounds (max = reserve,
// min = 1 - reserve) and the round-trip efficiency is split evenly across the
// charge and discharge legs (per-leg efficiency = sqrt(round-trip)).
func NewSimulationConfig(inverterKW, capacityKWh, reserve, roundTrip, cyclesPerDay float64, chargeHours, dischargeHours int) (SimulationConfig, error) {
	perLeg := math.Sqrt(roundTrip)
	cfg := SimulationConfig{
		InverterPowerKW:      inverterKW,
		BatteryCapacityKWh:   capacityKWh,
		MaxSOC:               reserve,
		MinSOC:               1 - reserve,
		ChargeEfficiency:     perLeg,
		DischargeEfficiency:  perLeg,
		MaxCyclesPerDay:      cyclesPerDay,
		ChargeHoursPerDay:    chargeHours,
		DischargeHoursPerDay: dischargeHours,
	}
	if err := cfg.Validate(); err != nil {
		return SimulationConfig{}, err
	}
	return cfg, nil
}

// DefaultSimulationConfig returns the default parameter set.
func DefaultSimulationConfig() SimulationConfig {
	cfg, err := NewSimulationConfig(
		DefaultInverterPowerKW,
		DefaultBatteryCapacityKWh,
		DefaultReserve,
		DefaultRoundTripEfficiency,
		DefaultMaxCyclesPerDay,
		DefaultChargeHoursPerDay,
		DefaultDischargeHoursPerDay,
	)
	if err != nil {
		// Defaults are constants; a validation failure here is a programming error.
		panic(err)
	}
	return cfg
}

// Validate rejects configurations that must never reach the engine.
func (c SimulationConfig) Validate() error {
	if c.BatteryCapacityKWh <= 0 {
		return errors.New("BatteryCapacityKWh must be > 0")
	}
	if c.InverterPowerKW <= 0 {
		return errors.New("InverterPowerKW must be > 0")
	}
	if c.MinSOC < 0 || c.MaxSOC > 1 || c.MinSOC >= c.MaxSOC {
		return errors.New("MinSOC/MaxSOC must satisfy 0<=MinSOC<MaxSOC<=1")
	}
	// Written as a positive range test so NaN (e.g. sqrt of a negative
	// round-trip input) is rejected too.
	if !(c.ChargeEfficiency > 0 && c.ChargeEfficiency <= 1) {
		return errors.New("ChargeEfficiency must be in (0, 1]")
	}
	if !(c.DischargeEfficiency > 0 && c.DischargeEfficiency <= 1) {
		return errors.New("DischargeEfficiency must be in (0, 1]")
	}
	if c.MaxCyclesPerDay <= 0 {
		return errors.New("MaxCyclesPerDay must be > 0")
	}
	if c.ChargeHoursPerDay <= 0 {
		return errors.New("ChargeHoursPerDay must be > 0")
	}
	if c.DischargeHoursPerDay <= 0 {
		return errors.New("DischargeHoursPerDay must be > 0")
	}
	return nil
}

// UsableSwingKWh is the energy range the battery may operate within.
func (c SimulationConfig) UsableSwingKWh() float64 {
	return (c.MaxSOC - c.MinSOC) * c.BatteryCapacityKWh
}

// ChargeLimitKWh is the SOC ceiling in kWh.
func (c SimulationConfig) ChargeLimitKWh() float64 {
	return c.BatteryCapacityKWh * c.MaxSOC
}

// DischargeFloorKWh is the SOC floor in kWh.
func (c SimulationConfig) DischargeFloorKWh() float64 {
	return c.BatteryCapacityKWh * c.MinSOC
}

// MaxDailyThroughputKWh is the daily throughput budget in kWh.
func (c SimulationConfig) MaxDailyThroughputKWh() float64 {
	return c.BatteryCapacityKWh * c.MaxCyclesPerDay
}
