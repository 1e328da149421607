package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hybrid-dispatch/internal/model"
)

func TestRunManyPreservesOrderAndMatchesSequential(t *testing.T) {
	rows := syntheticWeek(t)

	configs := []NamedConfig{
		{Name: "small", Config: testConfig(t, 20, 50, 0.9, 0.94, 2, 4, 4)},
		{Name: "default", Config: model.DefaultSimulationConfig()},
		{Name: "large", Config: testConfig(t, 100, 500, 0.95, 0.9, 1, 5, 4)},
	}

	results, err := RunMany(context.Background(), configs, rows)
	require.NoError(t, err)
	require.Len(t, results, len(configs))

	for i, r := range results {
		assert.Equal(t, configs[i].Name, r.Name)
		sequential := mustRun(t, configs[i].Config, rows)
		assert.Equal(t, sequential.Summary, r.Result.Summary)
	}
}

func TestRunManyInvalidConfigFails(t *testing.T) {
	rows := syntheticWeek(t)
	configs := []NamedConfig{
		{Name: "ok", Config: model.DefaultSimulationConfig()},
		{Name: "broken", Config: model.SimulationConfig{}},
	}
	_, err := RunMany(context.Background(), configs, rows)
	assert.Error(t, err)
}
