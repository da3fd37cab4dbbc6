// Package report turns the results of a suite run into ranked comparison
// tables and machine-readable JSON. Benchmarks that produced a measurement
// are ranked fastest first by net time per operation; benchmarks whose
// action failed are listed separately and never ranked.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"github.com/IridiumIO/PerfUnit/internal/units"
	"github.com/IridiumIO/PerfUnit/suite"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Row is one entry of a built report. Measured rows carry a 1-based rank
// and formatted figures; failed rows carry only the name and the error.
type Row struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	NetNsPerOp float64 `json:"net_ns_per_op"`
	BytesPerOp float64 `json:"bytes_per_op"`
	TimePerOp  string  `json:"time_per_op,omitempty"`
	AllocPerOp string  `json:"alloc_per_op,omitempty"`
	VsFastest  string  `json:"vs_fastest,omitempty"`
	Passed     bool    `json:"passed"`
	Error      string  `json:"error,omitempty"`
}

// Report wraps ranked rows for serialization.
type Report struct {
	Suite   string `json:"suite"`
	Results []Row  `json:"results"`
}

// Build ranks measured results by net time per operation and projects them
// into rows. The fastest measured benchmark is the "vs fastest" baseline.
// Failed benchmarks follow the measured ones in their original order.
func Build(results []suite.Result) []Row {
	measured, failed := split(results)

	rows := make([]Row, 0, len(results))
	var fastest float64
	if len(measured) > 0 {
		fastest = measured[0].Outcome.NetNsPerOp
	}
	for i, r := range measured {
		rows = append(rows, Row{
			Rank:       i + 1,
			Name:       r.Name,
			NetNsPerOp: r.Outcome.NetNsPerOp,
			BytesPerOp: r.Outcome.BytesPerOp,
			TimePerOp:  units.FormatNanos(r.Outcome.NetNsPerOp),
			AllocPerOp: units.FormatBytes(r.Outcome.BytesPerOp),
			VsFastest:  vsFastest(r.Outcome.NetNsPerOp, fastest, i+1),
			Passed:     r.Passed(),
		})
	}
	for _, r := range failed {
		rows = append(rows, Row{Name: r.Name, Error: r.Err.Error()})
	}
	return rows
}

// Render writes a section header, the ranked comparison table, and a footer
// naming any failed benchmarks.
func Render(w io.Writer, title string, results []suite.Result) error {
	rows := Build(results)
	ranked := lo.Filter(rows, func(r Row, _ int) bool { return r.Error == "" })

	printSectionHeader(w, title)

	if len(ranked) == 0 {
		red.Fprintln(w, "no benchmark produced a measurement")
		printFailed(w, rows)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Benchmark", "Time/op", "Alloc/op", "vs Fastest", "Verdict")

	for _, r := range ranked {
		_ = table.Append(
			rankIcon(r.Rank),
			r.Name,
			r.TimePerOp,
			r.AllocPerOp,
			r.VsFastest,
			verdict(r.Passed),
		)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("report: render table: %w", err)
	}

	printFailed(w, rows)
	fmt.Fprintln(w)
	green.Fprintf(w, "✓ measured %d/%d benchmarks\n", len(ranked), len(rows))
	return nil
}

// WriteJSON serializes the ranked report, indented, with a trailing newline.
func WriteJSON(w io.Writer, name string, results []suite.Result) error {
	out := Report{Suite: name, Results: Build(results)}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

func split(results []suite.Result) (measured, failed []suite.Result) {
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
			continue
		}
		measured = append(measured, r)
	}
	sort.Slice(measured, func(i, j int) bool {
		return measured[i].Outcome.NetNsPerOp < measured[j].Outcome.NetNsPerOp
	})
	return measured, failed
}

func rankIcon(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

func vsFastest(ns, fastest float64, rank int) string {
	if rank == 1 {
		return "baseline"
	}
	if fastest <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2fx", ns/fastest)
}

func verdict(passed bool) string {
	if passed {
		return green.Sprint("✓ pass")
	}
	return red.Sprint("✗ over limit")
}

func printSectionHeader(w io.Writer, title string) {
	rule := strings.Repeat("═", 59)
	fmt.Fprintln(w)
	bold.Fprintln(w, rule)
	bold.Fprintln(w, title)
	bold.Fprintln(w, rule)
	fmt.Fprintln(w)
}

func printFailed(w io.Writer, rows []Row) {
	failed := lo.Filter(rows, func(r Row, _ int) bool { return r.Error != "" })
	if len(failed) == 0 {
		return
	}
	fmt.Fprintln(w)
	red.Fprintln(w, "failed benchmarks:")
	for _, r := range failed {
		red.Fprintf(w, "  • %s: %s\n", r.Name, r.Error)
	}
}
