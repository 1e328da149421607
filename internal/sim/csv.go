package sim

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"hybrid-dispatch/internal/model"
)

const ledgerTimeLayout = "2006-01-02 15:04:05"

var ledgerHeader = []string{
	"timestamp",
	"solar_generation",
	"wind_generation",
	"price",
	"soc",
	"battery_charge",
	"battery_charge_renewable",
	"battery_discharge",
	"grid_import",
	"grid_import_price",
	"grid_export",
	"grid_export_revenue",
}

// WriteLedgerCSV writes the ledger to path, one row per simulated hour, in
// the fixed output column order.
func WriteLedgerCSV(path string, ledger []LedgerRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteLedger(f, ledger)
}

// WriteLedger writes the ledger as CSV to w.
func WriteLedger(w io.Writer, ledger []LedgerRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(ledgerHeader); err != nil {
		return err
	}
	for _, r := range ledger {
		row := []string{
			r.Timestamp.Format(ledgerTimeLayout),
			fmtFloat(r.SolarGeneration),
			fmtFloat(r.WindGeneration),
			fmtFloat(r.Price),
			fmtFloat(r.SOC),
			fmtFloat(r.BatteryCharge),
			fmtFloat(r.BatteryChargeRenewable),
			fmtFloat(r.BatteryDischarge),
			fmtFloat(r.GridImport),
			fmtFloat(r.GridImportPrice),
			fmtFloat(r.GridExport),
			fmtFloat(r.GridExportRevenue),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}

// ReadLedgerCSV reads a ledger previously written by WriteLedgerCSV, e.g.
// for report aggregation over an existing simulation output.
func ReadLedgerCSV(path string) ([]LedgerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLedger(f)
}

// ReadLedger reads ledger CSV rows from r.
func ReadLedger(r io.Reader) ([]LedgerRow, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty ledger")
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[name] = i
	}
	for _, name := range ledgerHeader {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("ledger missing column %q", name)
		}
	}

	out := make([]LedgerRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		ts, err := time.Parse(ledgerTimeLayout, rec[col["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("ledger row %d: bad timestamp %q: %w", i+1, rec[col["timestamp"]], err)
		}
		get := func(name string) float64 {
			v, _ := strconv.ParseFloat(rec[col[name]], 64)
			return v
		}
		out = append(out, LedgerRow{
			Timestamp:       ts,
			SolarGeneration: get("solar_generation"),
			WindGeneration:  get("wind_generation"),
			Price:           get("price"),
			DispatchResult: model.DispatchResult{
				SOC:                    get("soc"),
				BatteryCharge:          get("battery_charge"),
				BatteryChargeRenewable: get("battery_charge_renewable"),
				BatteryDischarge:       get("battery_discharge"),
				GridImport:             get("grid_import"),
				GridImportPrice:        get("grid_import_price"),
				GridExport:             get("grid_export"),
				GridExportRevenue:      get("grid_export_revenue"),
			},
		})
	}
	return out, nil
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
