package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"hybrid-dispatch/internal/model"
)

// PlantConfig is the on-disk shape (YAML) of one plant preset: the physical
// installation plus the planner's hour-count knobs. Zero fields fall back to
// the package defaults, so presets only need to state what differs.
type PlantConfig struct {
	Name                 string  `yaml:"name" json:"name"`
	InverterPowerKW      float64 `yaml:"inverter_power_kw" json:"inverter_power_kw"`
	BatteryCapacityKWh   float64 `yaml:"battery_capacity_kwh" json:"battery_capacity_kwh"`
	Reserve              float64 `yaml:"reserve" json:"reserve"`
	RoundTripEfficiency  float64 `yaml:"round_trip_efficiency" json:"round_trip_efficiency"`
	MaxCyclesPerDay      float64 `yaml:"max_cycles_per_day" json:"max_cycles_per_day"`
	ChargeHoursPerDay    int     `yaml:"charge_hours_per_day" json:"charge_hours_per_day"`
	DischargeHoursPerDay int     `yaml:"discharge_hours_per_day" json:"discharge_hours_per_day"`
}

// DefaultPlant returns a preset with every knob at its default.
func DefaultPlant() PlantConfig {
	return PlantConfig{
		Name:                 "default",
		InverterPowerKW:      model.DefaultInverterPowerKW,
		BatteryCapacityKWh:   model.DefaultBatteryCapacityKWh,
		Reserve:              model.DefaultReserve,
		RoundTripEfficiency:  model.DefaultRoundTripEfficiency,
		MaxCyclesPerDay:      model.DefaultMaxCyclesPerDay,
		ChargeHoursPerDay:    model.DefaultChargeHoursPerDay,
		DischargeHoursPerDay: model.DefaultDischargeHoursPerDay,
	}
}

// LoadPlant reads one plant preset file and fills unset fields from the
// defaults.
func LoadPlant(path string) (PlantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PlantConfig{}, err
	}
	var p PlantConfig
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return PlantConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	merged := MergePlant(DefaultPlant(), p)
	if p.Name == "" {
		merged.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return merged, nil
}

// MergePlant overlays non-zero fields from override onto base. Used when a
// preset file is combined with request or flag overrides.
func MergePlant(base, override PlantConfig) PlantConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.InverterPowerKW != 0 {
		out.InverterPowerKW = override.InverterPowerKW
	}
	if override.BatteryCapacityKWh != 0 {
		out.BatteryCapacityKWh = override.BatteryCapacityKWh
	}
	if override.Reserve != 0 {
		out.Reserve = override.Reserve
	}
	if override.RoundTripEfficiency != 0 {
		out.RoundTripEfficiency = override.RoundTripEfficiency
	}
	if override.MaxCyclesPerDay != 0 {
		out.MaxCyclesPerDay = override.MaxCyclesPerDay
	}
	if override.ChargeHoursPerDay != 0 {
		out.ChargeHoursPerDay = override.ChargeHoursPerDay
	}
	if override.DischargeHoursPerDay != 0 {
		out.DischargeHoursPerDay = override.DischargeHoursPerDay
	}
	return out
}

// ToSimulationConfig converts the preset into the validated engine config.
func (p PlantConfig) ToSimulationConfig() (model.SimulationConfig, error) {
	cfg, err := model.NewSimulationConfig(
		p.InverterPowerKW,
		p.BatteryCapacityKWh,
		p.Reserve,
		p.RoundTripEfficiency,
		p.MaxCyclesPerDay,
		p.ChargeHoursPerDay,
		p.DischargeHoursPerDay,
	)
	if err != nil {
		return model.SimulationConfig{}, fmt.Errorf("plant %q invalid: %w", p.Name, err)
	}
	return cfg, nil
}

// ListPlants loads every YAML preset in dir. A missing directory yields an
// empty list.
func ListPlants(dir string) ([]PlantConfig, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []PlantConfig{}, nil
		}
		return nil, fmt.Errorf("read plant dir: %w", err)
	}
	out := make([]PlantConfig, 0, len(entries))
	for _, e := range entries {
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		p, err := LoadPlant(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
