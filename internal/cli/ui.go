package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen = lipgloss.Color("35")  // Green - success / cache hit
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorCyan  = lipgloss.Color("36")  // Teal - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleValue       = lipgloss.NewStyle().Foreground(colorCyan)
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed    = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconCached  = "cached"
	iconFresh   = "computed"
)

// printSuccess prints a success message prefixed with a green checkmark.
func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printError prints an error message prefixed with a red cross.
func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printStats prints rank/node/edge counts for a reorder run, noting whether
// the result came from the cache.
func printStats(numRanks, numNodes, numEdges int, cached bool) {
	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}
	fmt.Printf("  %s %s %s %s\n",
		styleValue.Render(fmt.Sprintf("%d ranks", numRanks)),
		styleDim.Render("·"),
		styleValue.Render(fmt.Sprintf("%d nodes, %d edges", numNodes, numEdges)),
		statusStyle.Render(status))
}
