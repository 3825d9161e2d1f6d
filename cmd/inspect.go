package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/itsmostafa/pagetree/internal/outline"
	"github.com/spf13/cobra"
)

var (
	// titleStyle for section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for clean results
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// errorStyle for gaps and overlaps
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("81")).
			Padding(0, 1)
)

var inspectPolicy string

var inspectCmd = &cobra.Command{
	Use:   "inspect <tree.json>",
	Short: "Check a tree document for inter-sibling gaps and overlaps",
	Long: `Inspect walks every sibling list of a built tree document and reports page
ranges left uncovered between siblings (gaps) and pages owned twice
(overlaps). A successfully built tree reports neither.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read tree document: %w", err)
		}

		var doc outline.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parse tree document: %w", err)
		}

		policy := outline.BoundaryExclusive
		if inspectPolicy == "shared" {
			policy = outline.BoundaryShared
		}

		anomalies := outline.Inspect(doc.Structure, policy)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(doc.SourceFile),
			dimStyle.Render(fmt.Sprintf("(%d pages)", doc.TotalPages)))

		if doc.GapFillInfo != nil {
			info := doc.GapFillInfo
			fmt.Fprintln(out, boxStyle.Render(fmt.Sprintf(
				"%s %d\n%s %d pages\n%s %.1f%%",
				dimStyle.Render("Gaps filled:"), info.GapsFound,
				dimStyle.Render("Original coverage:"), info.OriginalCoverage,
				dimStyle.Render("Coverage:"), info.CoveragePercentage)))
		}

		if len(anomalies) == 0 {
			fmt.Fprintln(out, successStyle.Render("✓ no gaps, no overlaps"))
			return nil
		}

		for _, a := range anomalies {
			kind := "gap"
			pages := a.Missing
			if a.Missing < 0 {
				kind = "overlap"
				pages = -a.Missing
			}
			indent := strings.Repeat("  ", a.Depth)
			fmt.Fprintf(out, "%s%s %s\n", indent,
				errorStyle.Render(fmt.Sprintf("✗ %s of %d page(s)", kind, pages)),
				dimStyle.Render(fmt.Sprintf("between %q and %q", a.Before, a.After)))
		}

		return fmt.Errorf("%d anomalies found", len(anomalies))
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPolicy, "policy", "exclusive", "Boundary policy the tree was built with (exclusive, shared)")
	rootCmd.AddCommand(inspectCmd)
}
