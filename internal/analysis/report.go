package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"hybrid-dispatch/internal/model"
	"hybrid-dispatch/internal/sim"
)

// PeriodReport is a revenue and energy roll-up over one calendar period
// (month or year).
type PeriodReport struct {
	Period string `json:"period"`
	Hours  int    `json:"hours"`

	EnergyChargedKWh          float64 `json:"energy_charged_kwh"`
	EnergyChargedRenewableKWh float64 `json:"energy_charged_renewable_kwh"`
	EnergyDischargedKWh       float64 `json:"energy_discharged_kwh"`
	EnergyImportedKWh         float64 `json:"energy_imported_kwh"`
	EnergyExportedKWh         float64 `json:"energy_exported_kwh"`

	ImportCost    float64 `json:"import_cost"`
	ExportRevenue float64 `json:"export_revenue"`
	NetRevenue    float64 `json:"net_revenue"`

	// Price statistics for the period's hours, per MWh.
	MeanPrice   float64 `json:"mean_price"`
	PriceStdDev float64 `json:"price_std_dev"`
	// CapturedExportPrice is the volume-weighted price realized on exports,
	// comparable against MeanPrice to judge the dispatch heuristic.
	CapturedExportPrice float64 `json:"captured_export_price"`

	ChargingHours    int `json:"charging_hours"`
	DischargingHours int `json:"discharging_hours"`
	ExportingHours   int `json:"exporting_hours"`
	IdleHours        int `json:"idle_hours"`
}

// MonthlyReport rolls the ledger up by calendar month ("2006-01").
func MonthlyReport(ledger []sim.LedgerRow) []PeriodReport {
	return report(ledger, "2006-01")
}

// YearlyReport rolls the ledger up by calendar year ("2006").
func YearlyReport(ledger []sim.LedgerRow) []PeriodReport {
	return report(ledger, "2006")
}

func report(ledger []sim.LedgerRow, layout string) []PeriodReport {
	byPeriod := make(map[string][]sim.LedgerRow)
	order := make([]string, 0)
	for _, r := range ledger {
		p := r.Timestamp.Format(layout)
		if _, seen := byPeriod[p]; !seen {
			order = append(order, p)
		}
		byPeriod[p] = append(byPeriod[p], r)
	}
	sort.Strings(order)

	out := make([]PeriodReport, 0, len(order))
	for _, p := range order {
		out = append(out, summarizePeriod(p, byPeriod[p]))
	}
	return out
}

func summarizePeriod(period string, rows []sim.LedgerRow) PeriodReport {
	rep := PeriodReport{Period: period, Hours: len(rows)}

	prices := make([]float64, 0, len(rows))
	for _, r := range rows {
		prices = append(prices, r.Price)

		rep.EnergyChargedKWh += r.BatteryCharge
		rep.EnergyChargedRenewableKWh += r.BatteryChargeRenewable
		rep.EnergyDischargedKWh += r.BatteryDischarge
		rep.EnergyImportedKWh += r.GridImport
		rep.EnergyExportedKWh += r.GridExport
		rep.ImportCost += r.GridImportPrice
		rep.ExportRevenue += r.GridExportRevenue

		switch model.ActionForHour(r.DispatchResult) {
		case model.ActionCharging:
			rep.ChargingHours++
		case model.ActionDischarging:
			rep.DischargingHours++
		case model.ActionExporting:
			rep.ExportingHours++
		default:
			rep.IdleHours++
		}
	}
	rep.NetRevenue = rep.ExportRevenue - rep.ImportCost

	rep.MeanPrice = stat.Mean(prices, nil)
	if len(prices) > 1 {
		rep.PriceStdDev = stat.StdDev(prices, nil)
	}
	if rep.EnergyExportedKWh > 0 {
		// Revenue is in currency; multiply back to per-MWh terms.
		rep.CapturedExportPrice = rep.ExportRevenue * 1000 / rep.EnergyExportedKWh
	}
	return rep
}
