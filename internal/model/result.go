package model

// DispatchResult is the per-hour energy ledger, produced 1:1 with the input
// records and never revised once written.
//
// Energy fields are kWh and non-negative by construction. SOC is the battery
// state of charge in kWh after this hour's actions. Monetary fields are in
// the input price currency (price is per MWh; revenue and cost apply the
// /1000 kWh conversion).
type DispatchResult struct {
	SOC                    float64 `json:"soc"`
	BatteryCharge          float64 `json:"battery_charge"`
	BatteryChargeRenewable float64 `json:"battery_charge_renewable"`
	BatteryDischarge       float64 `json:"battery_discharge"`
	GridImport             float64 `json:"grid_import"`
	GridImportPrice        float64 `json:"grid_import_price"`
	GridExport             float64 `json:"grid_export"`
	GridExportRevenue      float64 `json:"grid_export_revenue"`
}
