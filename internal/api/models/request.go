package models

import "hybrid-dispatch/internal/config"

// InputRecord is one inline hourly row in a simulate request. Timestamps use
// the same layouts as CSV ingestion ("2006-01-02 15:04:05" or the T form).
type InputRecord struct {
	Timestamp       string  `json:"timestamp" binding:"required"`
	SolarGeneration float64 `json:"solar_generation"`
	WindGeneration  float64 `json:"wind_generation"`
	Price           float64 `json:"price"`
}

// SimulateRequest runs one simulation. Input comes either inline (Records)
// or from a server-side dataset by name; exactly one must be set.
type SimulateRequest struct {
	Dataset string        `json:"dataset,omitempty"`
	Records []InputRecord `json:"records,omitempty"`

	// Optional inclusive calendar-day filter, YYYY-MM-DD.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	// PlantPreset names a server-side preset; Plant overlays non-zero
	// overrides on top of it (or on the defaults when no preset is named).
	PlantPreset string             `json:"plant_preset,omitempty"`
	Plant       config.PlantConfig `json:"plant,omitempty"`

	// IncludeLedger returns the full per-hour ledger, not just the summary.
	IncludeLedger bool `json:"include_ledger,omitempty"`
}

// SweepRequest runs the same input under several parameter sets in parallel.
// When Plants is empty, every server-side preset is used.
type SweepRequest struct {
	Dataset   string               `json:"dataset" binding:"required"`
	StartDate string               `json:"start_date,omitempty"`
	EndDate   string               `json:"end_date,omitempty"`
	Plants    []config.PlantConfig `json:"plants,omitempty"`
}
