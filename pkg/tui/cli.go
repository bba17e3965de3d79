// Package tui renders analysis output for the terminal.
// Simple streaming output - styled lines and a progress bar, no full TUI.
package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/caseflow/caseflow/internal/model"
)

// Colors (Swiss minimal)
var (
	accent  = lipgloss.Color("#FF0000")
	muted   = lipgloss.Color("#666666")
	success = lipgloss.Color("#00CC66")
	white   = lipgloss.Color("#FFFFFF")
)

// Styles
var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(white)
	accentStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	successStyle = lipgloss.NewStyle().Foreground(success).Bold(true)
)

// PrintHeader prints the tool banner.
func PrintHeader(version string) {
	fmt.Println()
	fmt.Println(titleStyle.Render("  CASEFLOW") + mutedStyle.Render(" v"+version))
	fmt.Println(mutedStyle.Render("  Journey reconstruction and flow graph engine"))
	fmt.Println()
}

// PrintResult renders the analysis outcome: a styled summary for
// successful runs, the failure reason otherwise.
func PrintResult(result *model.AnalysisResult) {
	if !result.Success {
		fmt.Println()
		fmt.Println(accentStyle.Render("  ✗ NO USABLE DATA"))
		fmt.Printf("  %s %s\n", mutedStyle.Render("Reason:"), result.Reason)
		fmt.Printf("  %s %v\n", mutedStyle.Render("Tables checked:"), result.TablesChecked)
		fmt.Println()
		return
	}

	g := result.FlowGraph
	fmt.Println()
	fmt.Println(successStyle.Render("  ✓ ANALYSIS COMPLETE"))
	fmt.Println()
	fmt.Printf("  %s %s\n", mutedStyle.Render("Cases:"), titleStyle.Render(fmt.Sprintf("%d", g.Metadata.TotalCases)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Entities:"), titleStyle.Render(fmt.Sprintf("%d", g.Metadata.UniqueEntities)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Transitions:"), titleStyle.Render(fmt.Sprintf("%d", g.Metadata.TotalTransitions)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Unique paths:"), titleStyle.Render(fmt.Sprintf("%d", g.Metadata.UniquePaths)))
	fmt.Printf("  %s %s\n", mutedStyle.Render("Time:"), titleStyle.Render(formatDuration(result.Elapsed)))

	if !g.HasTransitions {
		fmt.Println()
		fmt.Println(mutedStyle.Render("  Every case has a single event - nothing to draw."))
		fmt.Println()
		return
	}

	fmt.Println()
	fmt.Println(accentStyle.Render("  ▸ TOP TRANSITIONS"))
	for _, e := range topEdges(g, 5) {
		fmt.Printf("  %s %s %s %s\n",
			titleStyle.Render(e.FromLabel),
			mutedStyle.Render("→"),
			titleStyle.Render(e.ToLabel),
			mutedStyle.Render(fmt.Sprintf("(%d)", e.Count)))
	}
	fmt.Println()
}

// PrintCases renders the one-line case summaries.
func PrintCases(details []model.CaseDetail, limit int) {
	fmt.Println(accentStyle.Render("  ▸ CASES"))
	for i, d := range details {
		if limit > 0 && i >= limit {
			fmt.Println(mutedStyle.Render(fmt.Sprintf("  … and %d more", len(details)-limit)))
			break
		}
		fmt.Printf("  %s %s\n", mutedStyle.Render(fmt.Sprintf("#%d", d.CaseID)), d.Summary)
	}
	fmt.Println()
}

// topEdges returns up to n edges by descending count, label order on
// ties.
func topEdges(g *model.FlowGraph, n int) []model.FlowEdge {
	edges := append([]model.FlowEdge(nil), g.Edges...)
	sort.SliceStable(edges, func(i, j int) bool {
		if edges[i].Count != edges[j].Count {
			return edges[i].Count > edges[j].Count
		}
		if edges[i].FromLabel != edges[j].FromLabel {
			return edges[i].FromLabel < edges[j].FromLabel
		}
		return edges[i].ToLabel < edges[j].ToLabel
	})
	if len(edges) > n {
		edges = edges[:n]
	}
	return edges
}

// TableProgress creates a progress bar across the dataset's tables.
func TableProgress(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("  reading tables"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "",
			BarEnd:        "",
		}),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
