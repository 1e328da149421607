package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hybrid-dispatch/internal/analysis"
	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/sim"
)

var sweepFlags struct {
	input     string
	plantsDir string
	startDate string
	endDate   string
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Simulate every plant preset against one input and rank by net revenue",
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()
	f.StringVarP(&sweepFlags.input, "input", "i", "", "input CSV")
	f.StringVar(&sweepFlags.plantsDir, "plants", "./examples/plants", "directory of plant preset YAMLs")
	f.StringVar(&sweepFlags.startDate, "start", "", "start date, YYYY-MM-DD (inclusive)")
	f.StringVar(&sweepFlags.endDate, "end", "", "end date, YYYY-MM-DD (inclusive)")
	if err := sweepCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	records, err := loadInput(sweepFlags.input, sweepFlags.startDate, sweepFlags.endDate)
	if err != nil {
		return err
	}

	plants, err := config.ListPlants(sweepFlags.plantsDir)
	if err != nil {
		return err
	}
	if len(plants) == 0 {
		return fmt.Errorf("no plant presets in %s", sweepFlags.plantsDir)
	}

	configs := make([]sim.NamedConfig, 0, len(plants))
	for _, p := range plants {
		simCfg, err := p.ToSimulationConfig()
		if err != nil {
			return err
		}
		configs = append(configs, sim.NamedConfig{Name: p.Name, Config: simCfg})
	}

	results, err := sim.RunMany(context.Background(), configs, records)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "rank\tplant\tnet_revenue\texport_revenue\timport_cost\texported_kwh")
	for _, r := range analysis.RankByNetRevenue(results) {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.1f\n",
			r.Rank, r.Name,
			r.Summary.NetRevenue, r.Summary.ExportRevenue, r.Summary.ImportCost,
			r.Summary.EnergyExportedKWh)
	}
	return w.Flush()
}
