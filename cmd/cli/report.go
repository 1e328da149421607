package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"hybrid-dispatch/internal/analysis"
	"hybrid-dispatch/internal/sim"
)

var reportFlags struct {
	input  string
	yearly bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate a simulation output CSV into monthly or yearly revenue",
	RunE:  runReport,
}

func init() {
	f := reportCmd.Flags()
	f.StringVarP(&reportFlags.input, "input", "i", "simulation_output.csv", "simulation output CSV")
	f.BoolVar(&reportFlags.yearly, "yearly", false, "aggregate by year instead of month")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	ledger, err := sim.ReadLedgerCSV(reportFlags.input)
	if err != nil {
		return err
	}

	var reports []analysis.PeriodReport
	if reportFlags.yearly {
		reports = analysis.YearlyReport(ledger)
	} else {
		reports = analysis.MonthlyReport(ledger)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "period\thours\texported_kwh\timported_kwh\texport_revenue\timport_cost\tnet\tcaptured_price\tmean_price")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			r.Period, r.Hours,
			r.EnergyExportedKWh, r.EnergyImportedKWh,
			r.ExportRevenue, r.ImportCost, r.NetRevenue,
			r.CapturedExportPrice, r.MeanPrice)
	}
	return w.Flush()
}
