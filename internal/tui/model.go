package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/format"
	"github.com/agbru/numkit/internal/numeric"
)

// Layout constants.
const (
	labelWidth      = 16
	historySize     = 48
	defaultWidth    = 72
	inputCharLimit  = 256
	sparkCeilingBit = 64
)

// Model is the root bubbletea model of the explorer: a text input whose
// value is re-evaluated on every keystroke.
type Model struct {
	header HeaderModel
	input  textinput.Model
	help   help.Model
	keymap KeyMap

	eval    Evaluation
	history *History

	width    int
	quitting bool
}

// NewModel creates an explorer pre-filled with initial.
func NewModel(initial, version string) Model {
	ti := textinput.New()
	ti.Placeholder = "type a number or some text"
	ti.CharLimit = inputCharLimit
	ti.Prompt = "› "
	ti.SetValue(initial)
	ti.Focus()

	m := Model{
		header:  NewHeaderModel(version),
		input:   ti,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
		history: NewHistory(historySize),
		width:   defaultWidth,
	}
	m.evaluate()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.header.SetWidth(msg.Width)
		m.help.Width = msg.Width
		m.input.Width = max(10, msg.Width-8)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keymap.Clear):
			m.input.Reset()
			m.evaluate()
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.evaluate()
	}
	return m, cmd
}

func (m *Model) evaluate() {
	m.eval = Evaluate(m.input.Value())
	m.header.SetLastEval(m.eval.Duration)
	if m.eval.HasFib {
		m.history.Push(float64(m.eval.FibBits()))
	}
}

// Evaluation returns the result for the current input.
func (m Model) Evaluation() Evaluation { return m.eval }

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	width := max(m.width, 40)

	sections := []string{
		m.header.View(),
		inputStyle.Width(width - 4).Render(m.input.View()),
		panelStyle.Width(width - 4).Render(m.resultsView()),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func (m Model) resultsView() string {
	ev := m.eval
	var b strings.Builder

	b.WriteString(sectionStyle.Render("Integer"))
	b.WriteByte('\n')
	if !ev.IsInteger {
		b.WriteString(dimStyle.Render("not an integer"))
	} else {
		parity := oddStyle.Render("odd")
		if ev.Even {
			parity = evenStyle.Render("even")
		}
		b.WriteString(row("parity", parity))
		b.WriteByte('\n')
		b.WriteString(row("fibonacci", m.fibView()))
		if m.history.Len() > 0 {
			b.WriteByte('\n')
			b.WriteString(row("bits history", sparkStyle.Render(Sparkline(m.history.Values(), sparkCeilingBit))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Text"))
	b.WriteByte('\n')
	s := ev.Stats
	b.WriteString(row("characters", valueStyle.Render(strconv.Itoa(s.Scalars))))
	b.WriteByte('\n')
	b.WriteString(row("graphemes", valueStyle.Render(strconv.Itoa(s.Graphemes))))
	b.WriteByte('\n')
	b.WriteString(row("bytes", valueStyle.Render(strconv.Itoa(s.Bytes))))
	b.WriteByte('\n')
	b.WriteString(row("display width", valueStyle.Render(strconv.Itoa(s.Width))))
	if !s.Valid {
		b.WriteByte('\n')
		b.WriteString(errorStyle.Render("input is not valid UTF-8"))
	}
	return b.String()
}

func (m Model) fibView() string {
	ev := m.eval
	switch {
	case !ev.HasFib:
		return dimStyle.Render("undefined for negative n")
	case errors.Is(ev.FibErr, numeric.ErrOverflow):
		return errorStyle.Render(fmt.Sprintf("F(%d) exceeds uint64 (max n = %d)", ev.Value, numeric.MaxIndex))
	case ev.FibErr != nil:
		return errorStyle.Render(ev.FibErr.Error())
	}
	return valueStyle.Render(fmt.Sprintf("F(%d) = %s", ev.Value, format.FormatNumberString(strconv.FormatUint(ev.Fib, 10)))) +
		dimStyle.Render(fmt.Sprintf("  (%d bits)", ev.FibBits()))
}

// Run starts the explorer on the terminal and blocks until it exits or ctx
// is canceled.
func Run(ctx context.Context, initial, version string) int {
	initTUIStyles()

	p := tea.NewProgram(NewModel(initial, version), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if apperrors.IsContextError(err) || ctx.Err() != nil {
			return apperrors.ExitErrorCanceled
		}
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
