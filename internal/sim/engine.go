package sim

import (
	"fmt"
	"math"

	"hybrid-dispatch/internal/model"
)

// Engine walks the full hourly series in chronological order and applies the
// per-hour dispatch state machine. It owns the only state carried across
// hour boundaries: the battery SOC and the daily throughput counter.
//
// Hours must be processed strictly in ascending timestamp order; no hour's
// result is valid independent of its predecessor. A single Engine therefore
// never runs concurrently, but independent engines (one per parameter set or
// input file) are safe to run in parallel.
type Engine struct {
	cfg model.SimulationConfig
}

// simState is the mutable engine state. It is never exposed to callers.
type simState struct {
	soc              float64
	energyMovedToday float64
	currentDay       string
}

func New(cfg model.SimulationConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config invalid: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Run plans every day of the series and dispatches hour by hour, producing
// one ledger row per input record. The input must be validated (non-empty,
// strictly increasing timestamps) before it reaches the engine; Run only
// rejects an empty series.
func (e *Engine) Run(records []model.HourRecord) (*Result, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records")
	}

	plans := BuildDayPlans(e.cfg, records)

	st := simState{soc: e.cfg.DischargeFloorKWh()}
	ledger := make([]LedgerRow, 0, len(records))
	var summary Summary

	for _, rec := range records {
		day := model.DayKey(rec.Timestamp)
		if day != st.currentDay {
			// Day transition: only the throughput counter resets; SOC carries over.
			st.energyMovedToday = 0
			st.currentDay = day
		}

		res := e.dispatchHour(&st, plans[day], rec)

		summary.accumulate(res)
		ledger = append(ledger, LedgerRow{
			Timestamp:       rec.Timestamp,
			SolarGeneration: rec.SolarGeneration,
			WindGeneration:  rec.WindGeneration,
			Price:           rec.Price,
			DispatchResult:  res,
		})
	}

	summary.FinalSOC = st.soc
	summary.Hours = len(ledger)
	summary.Start = records[0].Timestamp
	summary.End = records[len(records)-1].Timestamp

	return &Result{Ledger: ledger, Summary: summary}, nil
}

// dispatchHour applies the fixed priority order for one hour: renewable
// self-charge, renewable export of the remaining surplus, planned grid
// charge, planned grid discharge/export. Each step consumes renewable
// surplus, SOC headroom and throughput budget before the next one runs.
func (e *Engine) dispatchHour(st *simState, plan DayPlan, rec model.HourRecord) model.DispatchResult {
	cfg := e.cfg
	var res model.DispatchResult

	key := model.HourKey(rec.Timestamp)
	surplus := rec.Generation()
	chargeLimit := cfg.ChargeLimitKWh()
	floor := cfg.DischargeFloorKWh()
	maxThroughput := cfg.MaxDailyThroughputKWh()

	// 1. Renewable self-charge. The stored amount is bounded by SOC headroom,
	// the post-loss generation, and the remaining throughput budget. Surplus
	// is debited on the source side (stored / efficiency).
	if surplus > 0 && st.soc < chargeLimit && st.energyMovedToday < maxThroughput {
		stored := math.Min(chargeLimit-st.soc, surplus*cfg.ChargeEfficiency)
		stored = math.Min(stored, maxThroughput-st.energyMovedToday)
		if stored > 0 {
			st.soc += stored
			st.energyMovedToday += stored
			surplus -= stored / cfg.ChargeEfficiency
			res.BatteryCharge += stored
			res.BatteryChargeRenewable += stored
		}
	}

	// 2. Renewable export of whatever surplus is left, capped by the
	// inverter. Anything beyond the cap is curtailed and not recorded.
	if surplus > 0 {
		exported := math.Min(surplus, cfg.InverterPowerKW)
		res.GridExport += exported
		res.GridExportRevenue += exported * rec.Price / 1000
	}

	// 3. Planned grid charge. The planned amount is battery-side kWh; the
	// grid draw is larger by the charge conversion loss.
	if planned, ok := plan.GridChargePlan[key]; ok && st.soc < chargeLimit && st.energyMovedToday < maxThroughput {
		stored := math.Min(planned, chargeLimit-st.soc)
		stored = math.Min(stored, maxThroughput-st.energyMovedToday)
		if stored > 0 {
			gridSide := stored / cfg.ChargeEfficiency
			st.soc += stored
			st.energyMovedToday += stored
			res.BatteryCharge += stored
			res.GridImport = gridSide
			res.GridImportPrice = gridSide * rec.Price / 1000
		}
	}

	// 4. Planned grid discharge. Inverter headroom is recomputed against the
	// export already recorded this hour, so the total hourly inverter-bound
	// flow never exceeds the inverter rating.
	if _, ok := plan.DischargeHours[key]; ok && st.soc > floor && st.energyMovedToday < maxThroughput {
		discharged := math.Min(st.soc-floor, cfg.InverterPowerKW-res.GridExport)
		discharged = math.Min(discharged, maxThroughput-st.energyMovedToday)
		if discharged > 0 {
			delivered := discharged * cfg.DischargeEfficiency
			st.soc -= discharged
			st.energyMovedToday += discharged
			res.BatteryDischarge = discharged
			res.GridExport += delivered
			res.GridExportRevenue += delivered * rec.Price / 1000
		}
	}

	res.SOC = st.soc
	return res
}
