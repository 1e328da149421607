package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hybrid-dispatch/internal/data"
	"hybrid-dispatch/internal/logging"
)

var fetchFlags struct {
	start  string
	end    string
	zone   string
	output string
}

var fetchPricesCmd = &cobra.Command{
	Use:   "fetch-prices",
	Short: "Fetch Nord Pool day-ahead spot prices into a CSV",
	RunE:  runFetchPrices,
}

func init() {
	f := fetchPricesCmd.Flags()
	f.StringVar(&fetchFlags.start, "start", "", "start date, YYYY-MM-DD")
	f.StringVar(&fetchFlags.end, "end", "", "end date, YYYY-MM-DD (inclusive)")
	f.StringVar(&fetchFlags.zone, "zone", "ee", "bidding zone (ee, fi, lv, lt)")
	f.StringVarP(&fetchFlags.output, "out", "o", "prices.csv", "output CSV path")
	for _, name := range []string{"start", "end"} {
		if err := fetchPricesCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(fetchPricesCmd)
}

func runFetchPrices(cmd *cobra.Command, args []string) error {
	log := logging.New("fetch-prices")

	start, err := time.Parse("2006-01-02", fetchFlags.start)
	if err != nil {
		return fmt.Errorf("invalid --start (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", fetchFlags.end)
	if err != nil {
		return fmt.Errorf("invalid --end (expected YYYY-MM-DD): %w", err)
	}
	// End is inclusive on the day level.
	end = end.Add(24 * time.Hour)

	client := data.NewSpotPriceClient("", fetchFlags.zone)
	prices, err := client.FetchPrices(start, end)
	if err != nil {
		return err
	}
	if err := data.WritePricesCSV(fetchFlags.output, prices); err != nil {
		return err
	}

	log.Info().Int("points", len(prices)).Str("zone", fetchFlags.zone).Msg("prices fetched")
	fmt.Printf("Wrote %d price points to %s\n", len(prices), fetchFlags.output)
	return nil
}
