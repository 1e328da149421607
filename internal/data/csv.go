package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"hybrid-dispatch/internal/logging"
	"hybrid-dispatch/internal/model"
)

// Input timestamps come in either the space or the T separated form.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ReadHourRecordsFile reads an hourly input series from a CSV file.
func ReadHourRecordsFile(path string) ([]model.HourRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	records, err := ReadHourRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// ReadHourRecords decodes hourly records from CSV. Required columns are
// timestamp, solar_generation and price; wind_generation is optional and
// defaults to 0. Non-numeric or empty numeric cells coerce to 0 with an
// informational log entry; an unparseable timestamp is fatal.
func ReadHourRecords(r io.Reader) ([]model.HourRecord, error) {
	log := logging.New("ingest")

	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty input")
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"timestamp", "solar_generation", "price"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	windCol, hasWind := col["wind_generation"]

	out := make([]model.HourRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		ts, err := ParseTimestamp(row[col["timestamp"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		rec := model.HourRecord{
			Timestamp:       ts,
			SolarGeneration: coerceFloat(log, "solar_generation", row[col["solar_generation"]], i+1),
			Price:           coerceFloat(log, "price", row[col["price"]], i+1),
		}
		if hasWind {
			rec.WindGeneration = coerceFloat(log, "wind_generation", row[windCol], i+1)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseTimestamp parses an input timestamp in either accepted layout.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// coerceFloat implements the documented permissive fallback: noisy numeric
// cells become 0.0, logged but never fatal.
func coerceFloat(log zerolog.Logger, field, s string, row int) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Info().Int("row", row).Str("field", field).Str("value", s).Msg("non-numeric value coerced to 0")
		return 0
	}
	return v
}

// ValidateSeries enforces the engine's caller contract: a non-empty series
// with strictly increasing timestamps. Violations are fatal and reported
// with the offending row.
func ValidateSeries(records []model.HourRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("empty input series")
	}
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1].Timestamp, records[i].Timestamp
		if !cur.After(prev) {
			return fmt.Errorf("timestamps not strictly increasing at row %d: %s then %s",
				i+1, prev.Format(time.RFC3339), cur.Format(time.RFC3339))
		}
	}
	return nil
}

// FilterDateRange keeps records whose calendar day falls within
// [start, end], both inclusive. Zero bounds are open on that side.
func FilterDateRange(records []model.HourRecord, start, end time.Time) []model.HourRecord {
	out := make([]model.HourRecord, 0, len(records))
	for _, r := range records {
		day := r.Timestamp.Truncate(24 * time.Hour)
		if !start.IsZero() && day.Before(start.Truncate(24*time.Hour)) {
			continue
		}
		if !end.IsZero() && day.After(end.Truncate(24*time.Hour)) {
			continue
		}
		out = append(out, r)
	}
	return out
}
