package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/data"
	"hybrid-dispatch/internal/logging"
	"hybrid-dispatch/internal/model"
	"hybrid-dispatch/internal/sim"
)

var simulateFlags struct {
	input     string
	output    string
	startDate string
	endDate   string

	plantFile string

	inverter       float64
	battery        float64
	reserve        float64
	efficiency     float64
	cycles         float64
	chargeHours    int
	dischargeHours int
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the hourly dispatch simulation over a CSV input series",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVarP(&simulateFlags.input, "input", "i", "", "input CSV (timestamp, solar_generation, wind_generation, price)")
	f.StringVarP(&simulateFlags.output, "out", "o", "simulation_output.csv", "output CSV path")
	f.StringVar(&simulateFlags.startDate, "start", "", "start date, YYYY-MM-DD (inclusive)")
	f.StringVar(&simulateFlags.endDate, "end", "", "end date, YYYY-MM-DD (inclusive)")
	f.StringVar(&simulateFlags.plantFile, "plant", "", "plant preset YAML (flags below override it)")
	f.Float64Var(&simulateFlags.inverter, "inverter", 0, "inverter power in kW")
	f.Float64Var(&simulateFlags.battery, "battery", 0, "battery capacity in kWh")
	f.Float64Var(&simulateFlags.reserve, "reserve", 0, "battery reserve fraction (0-1)")
	f.Float64Var(&simulateFlags.efficiency, "efficiency", 0, "battery round-trip efficiency (0-1)")
	f.Float64Var(&simulateFlags.cycles, "cycles", 0, "max battery cycles per day")
	f.IntVar(&simulateFlags.chargeHours, "charge-hours", 0, "candidate grid-charge hours per day")
	f.IntVar(&simulateFlags.dischargeHours, "discharge-hours", 0, "candidate discharge hours per day")
	if err := simulateCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	log := logging.New("simulate")

	records, err := loadInput(simulateFlags.input, simulateFlags.startDate, simulateFlags.endDate)
	if err != nil {
		return err
	}

	plant, err := resolvePlantFlags()
	if err != nil {
		return err
	}
	simCfg, err := plant.ToSimulationConfig()
	if err != nil {
		return err
	}

	engine, err := sim.New(simCfg)
	if err != nil {
		return err
	}
	res, err := engine.Run(records)
	if err != nil {
		return err
	}

	if err := sim.WriteLedgerCSV(simulateFlags.output, res.Ledger); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	s := res.Summary
	log.Info().
		Str("plant", plant.Name).
		Int("hours", s.Hours).
		Float64("export_revenue", s.ExportRevenue).
		Float64("import_cost", s.ImportCost).
		Float64("net_revenue", s.NetRevenue).
		Float64("final_soc_kwh", s.FinalSOC).
		Msg("simulation complete")
	fmt.Printf("Wrote %d rows to %s (net revenue %.2f)\n", s.Hours, simulateFlags.output, s.NetRevenue)
	return nil
}

// loadInput reads, filters and validates a CSV series; shared by simulate
// and sweep.
func loadInput(path, startDate, endDate string) ([]model.HourRecord, error) {
	records, err := data.ReadHourRecordsFile(path)
	if err != nil {
		return nil, err
	}
	var start, end time.Time
	if startDate != "" {
		if start, err = time.Parse("2006-01-02", startDate); err != nil {
			return nil, fmt.Errorf("invalid --start (expected YYYY-MM-DD): %w", err)
		}
	}
	if endDate != "" {
		if end, err = time.Parse("2006-01-02", endDate); err != nil {
			return nil, fmt.Errorf("invalid --end (expected YYYY-MM-DD): %w", err)
		}
	}
	if !start.IsZero() || !end.IsZero() {
		records = data.FilterDateRange(records, start, end)
	}
	if err := data.ValidateSeries(records); err != nil {
		return nil, err
	}
	return records, nil
}

// resolvePlantFlags layers explicit flags over the preset file (or the
// defaults when no file is given).
func resolvePlantFlags() (config.PlantConfig, error) {
	base := config.DefaultPlant()
	if simulateFlags.plantFile != "" {
		loaded, err := config.LoadPlant(simulateFlags.plantFile)
		if err != nil {
			return config.PlantConfig{}, err
		}
		base = loaded
	}
	override := config.PlantConfig{
		InverterPowerKW:      simulateFlags.inverter,
		BatteryCapacityKWh:   simulateFlags.battery,
		Reserve:              simulateFlags.reserve,
		RoundTripEfficiency:  simulateFlags.efficiency,
		MaxCyclesPerDay:      simulateFlags.cycles,
		ChargeHoursPerDay:    simulateFlags.chargeHours,
		DischargeHoursPerDay: simulateFlags.dischargeHours,
	}
	return config.MergePlant(base, override), nil
}
