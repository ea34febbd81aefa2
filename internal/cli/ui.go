package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/ontograph/pkg/graph"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader   = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleBoundary = lipgloss.NewStyle().Foreground(colorYellow)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess   = "✓"
	iconError     = "✗"
	iconWarning   = "!"
	iconInfo      = "›"
	iconArrow     = "→"
	iconTruncated = "truncated"
	iconComplete  = "complete"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// =============================================================================
// Closure Output
// =============================================================================

// statsLine formats closure statistics on a single line.
func statsLine(c *graph.Closure) string {
	parts := []string{
		fmt.Sprintf("%d nodes", len(c.Nodes())),
		fmt.Sprintf("%d edges", len(c.Edges)),
	}
	if len(c.Boundary) > 0 {
		parts = append(parts, fmt.Sprintf("%d unextended", len(c.Boundary)))
	}
	status := StyleSuccess.Render(iconComplete)
	if c.Truncated {
		status = StyleWarning.Render(iconTruncated)
	}

	line := "  "
	for _, part := range parts {
		line += StyleDim.Render(part) + StyleDim.Render(" · ")
	}
	return line + status
}

// edgeTable renders edges as a table. far picks the column-one node of each
// edge (the target for outgoing closures, the source for incoming ones).
func edgeTable(g *graph.Graph, edges, boundary []graph.Edge, far func(graph.Edge) string) string {
	rows := make([][]string, 0, len(edges)+len(boundary))
	add := func(e graph.Edge, mark string) {
		ctx := ""
		if e.HasGCI() {
			ctx = g.Name(e.GCIRelation) + " " + g.Name(e.GCIFiller)
		}
		rows = append(rows, []string{
			far(e),
			e.Label.Format(g.Name),
			strconv.Itoa(e.Distance),
			ctx,
			mark,
		})
	}
	for _, e := range edges {
		add(e, "")
	}
	for _, e := range boundary {
		add(e, "boundary")
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Node", "Label", "Dist", "Context", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case row >= len(edges):
				return styleBoundary
			case col == 0:
				return StyleHighlight
			case col == 2:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

// printClosure writes a closure table followed by its statistics.
func printClosure(w io.Writer, g *graph.Graph, c *graph.Closure) {
	title := fmt.Sprintf("%s of %s", map[graph.Direction]string{
		graph.Outgoing: "Ancestors",
		graph.Incoming: "Descendants",
	}[c.Direction], g.Name(c.Start))

	fmt.Fprintln(w, StyleTitle.Render(title))
	fmt.Fprintln(w, edgeTable(g, c.Edges, c.Boundary, func(e graph.Edge) string { return g.Name(c.Far(e)) }))
	fmt.Fprintln(w, statsLine(c))
}
