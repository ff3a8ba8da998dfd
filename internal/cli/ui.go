package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// uiOut receives user-facing status lines. Logs go to stderr instead.
var uiOut io.Writer = os.Stdout

// =============================================================================
// Styles
// =============================================================================

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#4a6fa5", Dark: "#7aa2f7"}
	colorTag    = lipgloss.Color("#f08a5a")
	colorOK     = lipgloss.Color("35")
	colorFail   = lipgloss.Color("167")
	colorMuted  = lipgloss.Color("244")

	// StyleHighlight marks graph and node names.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	StyleDim       = lipgloss.NewStyle().Foreground(colorMuted)

	styleCount       = lipgloss.NewStyle().Foreground(colorAccent)
	styleWarn        = lipgloss.NewStyle().Foreground(colorTag)
	styleCommand     = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// status icons, each with its style
var (
	iconSuccess = lipgloss.NewStyle().Foreground(colorOK).Render("✓")
	iconError   = lipgloss.NewStyle().Foreground(colorFail).Render("✗")
	iconWarning = styleWarn.Render("!")
	iconInfo    = StyleDim.Render("›")
	iconArrow   = StyleDim.Render("→")
)

// =============================================================================
// Status Output
// =============================================================================

func status(icon, format string, args ...any) {
	fmt.Fprintln(uiOut, icon+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status(iconSuccess, format, args...) }
func printError(format string, args ...any)   { status(iconError, format, args...) }
func printInfo(format string, args ...any)    { status(iconInfo, format, args...) }

func printWarning(format string, args ...any) {
	status(iconWarning, "%s", styleWarn.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, muted line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile points at a file the command wrote.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+iconArrow+" "+path)
}

// printNextStep suggests the command to run next.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// statsLine formats graph counts on one line, leaving out zero counts.
func statsLine(nodes, links, labels int) string {
	var parts []string
	for _, c := range []struct {
		n    int
		unit string
	}{{nodes, "nodes"}, {links, "links"}, {labels, "labels"}} {
		if c.n > 0 {
			parts = append(parts, styleCount.Render(fmt.Sprint(c.n))+StyleDim.Render(" "+c.unit))
		}
	}
	return "  " + strings.Join(parts, StyleDim.Render(" · "))
}

func printStats(nodes, links, labels int) {
	fmt.Fprintln(uiOut, statsLine(nodes, links, labels))
}
