package model

// Action is a human-friendly operating mode for a simulated hour.
// Keep these values stable; they are intended for report and API output.
type Action string

const (
	ActionCharging    Action = "CHARGING"
	ActionDischarging Action = "DISCHARGING"
	ActionExporting   Action = "EXPORTING"
	ActionIdle        Action = "IDLE"
)

// ActionForHour classifies an hour by its dominant battery activity.
// Battery movement wins over pure renewable export; an hour that both
// charges and discharges is classified by the larger flow.
func ActionForHour(r DispatchResult) Action {
	switch {
	case r.BatteryDischarge > r.BatteryCharge:
		return ActionDischarging
	case r.BatteryCharge > 0:
		return ActionCharging
	case r.GridExport > 0:
		return ActionExporting
	default:
		return ActionIdle
	}
}
