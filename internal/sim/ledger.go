package sim

import (
	"time"

	"hybrid-dispatch/internal/model"
)

// LedgerRow is one hour of output: the input fields plus the dispatch ledger
// for that hour. This is the primary artifact for "what happened" in a run.
type LedgerRow struct {
	Timestamp       time.Time `json:"timestamp"`
	SolarGeneration float64   `json:"solar_generation"`
	WindGeneration  float64   `json:"wind_generation"`
	Price           float64   `json:"price"`

	model.DispatchResult
}

// Summary aggregates a whole run.
type Summary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Hours int       `json:"hours"`

	EnergyChargedKWh          float64 `json:"energy_charged_kwh"`
	EnergyChargedRenewableKWh float64 `json:"energy_charged_renewable_kwh"`
	EnergyDischargedKWh       float64 `json:"energy_discharged_kwh"`
	EnergyImportedKWh         float64 `json:"energy_imported_kwh"`
	EnergyExportedKWh         float64 `json:"energy_exported_kwh"`

	ImportCost    float64 `json:"import_cost"`
	ExportRevenue float64 `json:"export_revenue"`
	NetRevenue    float64 `json:"net_revenue"`

	FinalSOC float64 `json:"final_soc_kwh"`
}

func (s *Summary) accumulate(r model.DispatchResult) {
	s.EnergyChargedKWh += r.BatteryCharge
	s.EnergyChargedRenewableKWh += r.BatteryChargeRenewable
	s.EnergyDischargedKWh += r.BatteryDischarge
	s.EnergyImportedKWh += r.GridImport
	s.EnergyExportedKWh += r.GridExport
	s.ImportCost += r.GridImportPrice
	s.ExportRevenue += r.GridExportRevenue
	s.NetRevenue = s.ExportRevenue - s.ImportCost
}

type Result struct {
	Ledger  []LedgerRow
	Summary Summary
}
