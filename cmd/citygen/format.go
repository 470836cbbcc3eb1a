package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/ChicagoDave/citygen/pkg/layout"
	"github.com/ChicagoDave/citygen/pkg/pipeline"
	"github.com/ChicagoDave/citygen/pkg/scene"
	"github.com/ChicagoDave/citygen/pkg/validation"
)

var (
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorCyan   = lipgloss.Color("36")
	colorDim    = lipgloss.Color("240")

	styleValid   = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleInvalid = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

// printValidationReport prints the status line followed by every finding.
func printValidationReport(w io.Writer, r *validation.Report) {
	if r.Valid {
		fmt.Fprintln(w, styleValid.Render(validation.StatusValid))
	} else {
		fmt.Fprintln(w, styleInvalid.Render(validation.StatusInvalid))
	}

	for _, e := range r.Errors {
		printResult(w, styleError.Render(iconError), e)
	}
	for _, warn := range r.Warnings {
		printResult(w, styleWarning.Render(iconWarning), warn)
	}
	for _, i := range r.Info {
		fmt.Fprintf(w, "  %s %s\n", styleDim.Render(iconInfo), i.Message)
	}

	fmt.Fprintln(w, styleDim.Render(r.Summary))
}

func printResult(w io.Writer, icon string, res validation.Result) {
	fmt.Fprintf(w, "  %s %s", icon, res.Message)
	if res.Rule != "" {
		fmt.Fprintf(w, " %s", styleDim.Render("("+string(res.Rule)+")"))
	}
	fmt.Fprintln(w)
	if res.SpecPath != "" {
		fmt.Fprintf(w, "    -> %s = %v\n", res.SpecPath, res.ActualValue)
	}
	if res.Expected != "" {
		fmt.Fprintf(w, "    expected: %s\n", res.Expected)
	}
	for _, s := range res.Suggestions {
		fmt.Fprintf(w, "    * %s\n", s)
	}
}

func printStats(w io.Writer, res *pipeline.Result) {
	st := res.Stats
	fmt.Fprintln(w, styleTitle.Render("Layout"))
	fmt.Fprintf(w, "  Seed:           %d\n", res.Seed)
	fmt.Fprintf(w, "  Buildings:      %d\n", st.Count)
	fmt.Fprintf(w, "  Rows:           %d\n", st.Rows)
	fmt.Fprintf(w, "  Footprint area: %.1f\n", st.FootprintArea)
	fmt.Fprintf(w, "  Coverage:       %.1f%%\n", st.Coverage*100)
	if st.Count > 0 {
		fmt.Fprintf(w, "  Height:         %.2f - %.2f (mean %.2f)\n", st.MinHeight, st.MaxHeight, st.MeanHeight)
	}
	if res.Cached {
		fmt.Fprintln(w, styleDim.Render("  (from cache)"))
	}
}

func printBuildingTable(w io.Writer, buildings []layout.Building) {
	fmt.Fprintf(w, "%-8s %9s %9s %9s %9s %9s\n", "Box", "X", "Z", "Width", "Depth", "Height")
	fmt.Fprintf(w, "%-8s %9s %9s %9s %9s %9s\n", "--------", "---------", "---------", "---------", "---------", "---------")
	for _, b := range buildings {
		fmt.Fprintf(w, "%-8s %9.2f %9.2f %9.2f %9.2f %9.2f\n",
			scene.BoxName(b.ID), b.X, b.Z, b.Width, b.Depth, b.Height)
	}
}

func printBatch(w io.Writer, results []*pipeline.Result) {
	fmt.Fprintf(w, "%-20s %10s %6s %9s %12s\n", "Seed", "Buildings", "Rows", "Coverage", "Mean height")
	fmt.Fprintf(w, "%-20s %10s %6s %9s %12s\n", "--------------------", "----------", "------", "---------", "------------")
	for _, r := range results {
		fmt.Fprintf(w, "%-20d %10d %6d %8.1f%% %12.2f\n",
			r.Seed, r.Stats.Count, r.Stats.Rows, r.Stats.Coverage*100, r.Stats.MeanHeight)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
