package analysis

import (
	"sort"

	"hybrid-dispatch/internal/sim"
)

// RankedRun is one sweep outcome with its rank by net revenue.
type RankedRun struct {
	Rank    int         `json:"rank"`
	Name    string      `json:"name"`
	Summary sim.Summary `json:"summary"`
}

// RankByNetRevenue orders sweep results descending by net revenue.
// Ties keep input order (stable).
func RankByNetRevenue(results []sim.NamedResult) []RankedRun {
	out := make([]RankedRun, 0, len(results))
	for _, r := range results {
		out = append(out, RankedRun{Name: r.Name, Summary: r.Result.Summary})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Summary.NetRevenue > out[j].Summary.NetRevenue
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
