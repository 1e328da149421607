package model

import "time"

// HourRecord is one row of the input series: one calendar hour of solar and
// wind production plus the spot price for that hour.
//
// Units:
// - SolarGeneration, WindGeneration: kWh (>= 0)
// - Price: currency per MWh (may be negative)
//
// Records are read-only once ingested; the ingestion layer guarantees
// timestamps are unique and strictly increasing.
type HourRecord struct {
	Timestamp       time.Time `json:"timestamp"`
	SolarGeneration float64   `json:"solar_generation"`
	WindGeneration  float64   `json:"wind_generation"`
	Price           float64   `json:"price"`
}

// Generation returns the combined renewable generation for the hour.
func (r HourRecord) Generation() float64 {
	return r.SolarGeneration + r.WindGeneration
}

// HourKey returns the canonical date+hour key used for plan lookups.
// Plans are keyed by this string rather than by time.Time equality so that
// timezone or sub-second parsing differences cannot cause silent misses.
func HourKey(t time.Time) string {
	return t.Format("2006-01-02T15")
}

// DayKey returns the canonical calendar-day key for a timestamp.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
