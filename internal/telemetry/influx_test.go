package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hybrid-dispatch/internal/config"
)

func TestNewSinkDisabled(t *testing.T) {
	sink := NewSink(config.TelemetryConfig{Enabled: false})
	assert.IsType(t, NopSink{}, sink)
	assert.NoError(t, sink.RecordRun("id", "plant", nil))
	sink.Close()
}

func TestNewSinkDowngradesWhenUnreachable(t *testing.T) {
	// Server is up but reports an unhealthy instance: the sink must
	// downgrade to a nop instead of failing.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"influxdb","status":"fail"}`))
	}))
	defer srv.Close()

	sink := NewSink(config.TelemetryConfig{
		Enabled: true,
		URL:     srv.URL,
		Org:     "org",
		Bucket:  "bucket",
	})
	assert.IsType(t, NopSink{}, sink)
}

func TestNewSinkHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"influxdb","status":"pass"}`))
	}))
	defer srv.Close()

	sink := NewSink(config.TelemetryConfig{
		Enabled: true,
		URL:     srv.URL,
		Org:     "org",
		Bucket:  "bucket",
	})
	defer sink.Close()
	assert.IsType(t, &InfluxSink{}, sink)
}
