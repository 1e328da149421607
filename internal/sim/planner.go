package sim

import (
	"math"
	"sort"

	"hybrid-dispatch/internal/model"
)

// headroomFactor filters discharge candidates: hours whose renewable
// generation already fills 90% or more of the inverter are skipped so a
// planned discharge is not squeezed out by renewable export.
const headroomFactor = 0.9

// DayPlan is the planner output for one calendar day.
//
// GridChargePlan maps hour keys (model.HourKey) to planned grid charge in
// kWh; only hours with a non-zero allocation are present. DischargeHours is
// the set of hour keys selected for expensive-hour discharge; amounts are
// recomputed at dispatch time against live SOC.
type DayPlan struct {
	GridChargePlan map[string]float64
	DischargeHours map[string]struct{}
}

func newDayPlan() DayPlan {
	return DayPlan{
		GridChargePlan: make(map[string]float64),
		DischargeHours: make(map[string]struct{}),
	}
}

// PlanDay computes the charge plan and discharge-hour set for a single day's
// rows. Days are planned independently: the planner sees only that day's
// data, never the live SOC. A day with no eligible hours yields empty plan
// components. PlanDay is deterministic for identical inputs.
func PlanDay(cfg model.SimulationConfig, rows []model.HourRecord) DayPlan {
	plan := newDayPlan()
	if len(rows) == 0 {
		return plan
	}

	// Charge plan: cover the usable swing out of the cheapest hours, minus
	// what the day's renewables are expected to store after conversion loss.
	// The swing is the target regardless of current SOC; the engine's runtime
	// SOC bound clips any excess.
	totalGen := 0.0
	for _, r := range rows {
		totalGen += r.Generation()
	}
	renewableEstimate := totalGen * cfg.ChargeEfficiency
	gridNeeded := cfg.UsableSwingKWh() - renewableEstimate
	if gridNeeded > 0 {
		cheapest := make([]model.HourRecord, len(rows))
		copy(cheapest, rows)
		// Stable: price ties keep chronological order.
		sort.SliceStable(cheapest, func(i, j int) bool {
			return cheapest[i].Price < cheapest[j].Price
		})
		if len(cheapest) > cfg.ChargeHoursPerDay {
			cheapest = cheapest[:cfg.ChargeHoursPerDay]
		}
		remaining := gridNeeded
		for _, r := range cheapest {
			charge := math.Min(cfg.InverterPowerKW, remaining)
			if charge <= 0 {
				break
			}
			plan.GridChargePlan[model.HourKey(r.Timestamp)] = charge
			remaining -= charge
			if remaining <= 0 {
				break
			}
		}
	}

	// Discharge hours: highest-price hours with inverter headroom, enough of
	// them to move the full usable swing. This budget is not netted against
	// the charge plan.
	candidates := make([]model.HourRecord, 0, len(rows))
	for _, r := range rows {
		if r.Generation() < headroomFactor*cfg.InverterPowerKW {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Price > candidates[j].Price
	})
	if len(candidates) > cfg.DischargeHoursPerDay {
		candidates = candidates[:cfg.DischargeHoursPerDay]
	}
	remaining := cfg.UsableSwingKWh()
	for _, r := range candidates {
		if remaining <= 0 {
			break
		}
		remaining -= math.Min(cfg.InverterPowerKW, remaining)
		plan.DischargeHours[model.HourKey(r.Timestamp)] = struct{}{}
	}

	return plan
}

// BuildDayPlans groups the series by calendar day and plans each day.
// Records must already be in chronological order (enforced at ingestion),
// so grouping is a single pass.
func BuildDayPlans(cfg model.SimulationConfig, records []model.HourRecord) map[string]DayPlan {
	plans := make(map[string]DayPlan)
	var dayRows []model.HourRecord
	var currentDay string
	flush := func() {
		if len(dayRows) > 0 {
			plans[currentDay] = PlanDay(cfg, dayRows)
			dayRows = dayRows[:0]
		}
	}
	for _, r := range records {
		day := model.DayKey(r.Timestamp)
		if day != currentDay {
			flush()
			currentDay = day
		}
		dayRows = append(dayRows, r)
	}
	flush()
	return plans
}
