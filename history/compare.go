package history

import (
	"fmt"

	"github.com/samber/lo"
)

// Delta is the movement of one benchmark between two runs, as percentage
// change of net time and allocation per operation. Positive means worse.
type Delta struct {
	Name     string  `json:"name"`
	TimePct  float64 `json:"time_pct"`
	AllocPct float64 `json:"alloc_pct"`
	Prev     Entry   `json:"prev"`
	Curr     Entry   `json:"curr"`
}

func (d Delta) String() string {
	return fmt.Sprintf("%s: %+.2f%% time, %+.2f%% alloc", d.Name, d.TimePct, d.AllocPct)
}

// Comparison pairs two runs benchmark by benchmark. Benchmarks present in
// only one of the runs are listed as added or removed, never compared.
type Comparison struct {
	Deltas  []Delta  `json:"deltas"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// Regressions returns the deltas whose net time per operation grew by more
// than thresholdPct percent.
func (c Comparison) Regressions(thresholdPct float64) []Delta {
	return lo.Filter(c.Deltas, func(d Delta, _ int) bool {
		return d.TimePct > thresholdPct
	})
}

// Compare matches curr's benchmarks against prev's by name and reports how
// each one moved. Entry order follows curr; added and removed names follow
// their run's order.
func Compare(prev, curr Run) Comparison {
	prevByName := lo.KeyBy(prev.Entries, func(e Entry) string { return e.Name })

	var cmp Comparison
	seen := make(map[string]bool, len(curr.Entries))
	for _, c := range curr.Entries {
		seen[c.Name] = true
		p, ok := prevByName[c.Name]
		if !ok {
			cmp.Added = append(cmp.Added, c.Name)
			continue
		}
		cmp.Deltas = append(cmp.Deltas, Delta{
			Name:     c.Name,
			TimePct:  pctChange(p.NetNsPerOp, c.NetNsPerOp),
			AllocPct: pctChange(p.BytesPerOp, c.BytesPerOp),
			Prev:     p,
			Curr:     c,
		})
	}
	for _, p := range prev.Entries {
		if !seen[p.Name] {
			cmp.Removed = append(cmp.Removed, p.Name)
		}
	}
	return cmp
}

// pctChange treats a non-positive baseline as incomparable and reports it
// as no movement rather than an infinite one.
func pctChange(prev, curr float64) float64 {
	if prev <= 0 {
		return 0
	}
	return (curr - prev) / prev * 100
}
