package models

import (
	"hybrid-dispatch/internal/analysis"
	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/data"
	"hybrid-dispatch/internal/sim"
)

// SimulateResponse is the result of one simulation run.
type SimulateResponse struct {
	ID      string                  `json:"id"`
	Status  string                  `json:"status"`
	Plant   string                  `json:"plant"`
	Summary sim.Summary             `json:"summary"`
	Monthly []analysis.PeriodReport `json:"monthly"`
	Ledger  []sim.LedgerRow         `json:"ledger,omitempty"`
}

// SweepResponse ranks the swept parameter sets by net revenue.
type SweepResponse struct {
	ID       string               `json:"id"`
	Rankings []analysis.RankedRun `json:"rankings"`
}

// DatasetsResponse lists the server-side datasets.
type DatasetsResponse struct {
	Datasets []data.Dataset `json:"datasets"`
	Count    int            `json:"count"`
}

// PlantsResponse lists the server-side plant presets.
type PlantsResponse struct {
	Plants []config.PlantConfig `json:"plants"`
	Count  int                  `json:"count"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
