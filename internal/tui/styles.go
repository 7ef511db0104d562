package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/numkit/internal/ui"
)

// Styles are rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle   lipgloss.Style
	inputStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	titleStyle   lipgloss.Style
	versionStyle lipgloss.Style
	labelStyle   lipgloss.Style
	valueStyle   lipgloss.Style
	evenStyle    lipgloss.Style
	oddStyle     lipgloss.Style
	errorStyle   lipgloss.Style
	dimStyle     lipgloss.Style
	sparkStyle   lipgloss.Style
	sectionStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles is called at init and again from Run, after the caller has
// selected a theme with ui.InitTheme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	inputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	versionStyle = lipgloss.NewStyle().Foreground(t.Dim)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim).Width(labelWidth)
	valueStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	evenStyle = lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	oddStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	sparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text).Underline(true)
}
