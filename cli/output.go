package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/francis-ohara/model-garden-agent/engine/core"
)

var (
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)
	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
	promptStyle = lipgloss.NewStyle().
			Bold(true)
)

// FormatError renders an error for terminal output: the message in the
// error style, with the stable error code as a detail line when present.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		out := errorStyle.Render(coreErr.Message)
		if coreErr.Code != "" {
			out += "\n" + detailStyle.Render(fmt.Sprintf("Code: %s", coreErr.Code))
		}
		return out
	}
	return errorStyle.Render(err.Error())
}

// OutputError writes a formatted error to stderr.
func OutputError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
