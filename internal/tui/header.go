package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numkit/internal/format"
)

// HeaderModel renders the title bar with the last evaluation time.
type HeaderModel struct {
	version  string
	lastEval time.Duration
	width    int
}

func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{version: version}
}

func (h *HeaderModel) SetLastEval(d time.Duration) { h.lastEval = d }
func (h *HeaderModel) SetWidth(w int)              { h.width = w }

func (h HeaderModel) View() string {
	title := "numkit explorer"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	left := titleStyle.Render(title)
	right := versionStyle.Render(fmt.Sprintf("eval %s", format.FormatExecutionDuration(h.lastEval)))

	gap := h.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return headerStyle.Render(left + fmt.Sprintf("%*s", gap, "") + right)
}
