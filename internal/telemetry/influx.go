package telemetry

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"hybrid-dispatch/internal/config"
	"hybrid-dispatch/internal/logging"
	"hybrid-dispatch/internal/sim"
)

// Sink receives the dispatch ledger of a completed run.
type Sink interface {
	RecordRun(runID, plant string, ledger []sim.LedgerRow) error
	Close()
}

// NopSink drops everything.
type NopSink struct{}

func (NopSink) RecordRun(string, string, []sim.LedgerRow) error { return nil }
func (NopSink) Close()                                          {}

// InfluxSink writes per-hour dispatch points to InfluxDB.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      zerolog.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(cfg config.TelemetryConfig) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logging.New("influx-sink"),
	}
}

// NewSink returns an InfluxSink when telemetry is enabled and healthy, and
// a NopSink otherwise. A failed health check downgrades rather than fails:
// the simulation result never depends on the sink.
func NewSink(cfg config.TelemetryConfig) Sink {
	if !cfg.Enabled {
		return NopSink{}
	}
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Error().Err(err).Msg("influx health check failed")
		} else {
			sink.log.Error().Str("status", string(health.Status)).Msg("influx unhealthy")
		}
		sink.client.Close()
		return NopSink{}
	}
	return sink
}

// RecordRun writes one point per simulated hour.
func (s *InfluxSink) RecordRun(runID, plant string, ledger []sim.LedgerRow) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, r := range ledger {
		p := write.NewPointWithMeasurement("dispatch_hour").
			AddTag("run_id", runID).
			AddTag("plant", plant).
			AddField("soc_kwh", r.SOC).
			AddField("battery_charge_kwh", r.BatteryCharge).
			AddField("battery_charge_renewable_kwh", r.BatteryChargeRenewable).
			AddField("battery_discharge_kwh", r.BatteryDischarge).
			AddField("grid_import_kwh", r.GridImport).
			AddField("grid_import_price", r.GridImportPrice).
			AddField("grid_export_kwh", r.GridExport).
			AddField("grid_export_revenue", r.GridExportRevenue).
			AddField("price", r.Price).
			SetTime(r.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *InfluxSink) Close() {
	s.client.Close()
}
