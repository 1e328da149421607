package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"hybrid-dispatch/internal/model"
)

// NamedConfig pairs a parameter set with a display name for sweep output.
type NamedConfig struct {
	Name   string
	Config model.SimulationConfig
}

// NamedResult is one sweep outcome.
type NamedResult struct {
	Name   string
	Result *Result
}

// RunMany simulates the same series under several independent parameter
// sets. Each run owns its own engine state, so runs execute in parallel,
// bounded by the CPU count. Results come back in input order.
func RunMany(ctx context.Context, configs []NamedConfig, records []model.HourRecord) ([]NamedResult, error) {
	out := make([]NamedResult, len(configs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, nc := range configs {
		g.Go(func() error {
			eng, err := New(nc.Config)
			if err != nil {
				return err
			}
			res, err := eng.Run(records)
			if err != nil {
				return err
			}
			out[i] = NamedResult{Name: nc.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
