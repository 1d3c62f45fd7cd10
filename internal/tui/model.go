// Package tui is the interactive shell: a text field with a calendar
// popup that opens beneath it.
package tui

import (
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lululau/calview/internal/picker"
	"github.com/lululau/calview/internal/render"
)

var (
	noColorMode bool // Global flag to disable all color output
)

// SetNoColor sets the global no-color flag
func SetNoColor(disable bool) {
	noColorMode = disable
}

// Options configures Run.
type Options struct {
	ShowLegend    bool
	HolidaysStale bool
}

// Run starts the interactive UI with the field pre-filled from p and
// returns the field's final text.
func Run(p *picker.Picker, opts Options) (string, error) {
	m := newModel(p, opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return "", err
	}
	return final.(model).input.Value(), nil
}

type model struct {
	picker    *picker.Picker
	opts      Options
	input     textinput.Model
	open      bool
	statusMsg string
}

func newModel(p *picker.Picker, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = p.Text()
	ti.CharLimit = 64
	ti.Prompt = "日期 > "
	ti.SetValue(p.Text())
	ti.CursorEnd()
	ti.Focus()
	return model{picker: p, opts: opts, input: ti}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.open {
		return m.handlePopupKey(key)
	}

	switch key.Type {
	case tea.KeyEnter, tea.KeyDown:
		m.openPopup()
		return m, nil
	case tea.KeyEsc:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// openPopup re-reads the field so that hand-edited text moves the popup.
func (m *model) openPopup() {
	if m.picker.Bind(m.input.Value()) {
		log.Printf("bound %q to %s", m.input.Value(), m.picker.Date())
	}
	m.open = true
	m.input.Blur()
	m.statusMsg = ""
}

func (m *model) closePopup() {
	m.open = false
	m.input.Focus()
	m.input.CursorEnd()
}

func (m model) handlePopupKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var ev picker.Event
	switch key.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.closePopup()
		return m, nil
	case "left", "h":
		ev = m.picker.Move(-1)
	case "right", "l":
		ev = m.picker.Move(1)
	case "up", "k":
		ev = m.picker.Move(-7)
	case "down", "j":
		ev = m.picker.Move(7)
	case "[":
		ev = m.picker.Navigate(picker.NavPreviousMonth)
	case "]":
		ev = m.picker.Navigate(picker.NavNextMonth)
	case "{":
		ev = m.picker.Navigate(picker.NavPreviousYear)
	case "}":
		ev = m.picker.Navigate(picker.NavNextYear)
	case "t":
		ev = m.picker.Navigate(picker.NavToday)
	case "+", "=":
		ev = m.picker.SetHour((m.picker.Date().Hour + 1) % 24)
	case "-":
		ev = m.picker.SetHour((m.picker.Date().Hour + 23) % 24)
	case ">", ".":
		ev = m.picker.SetMinute((m.picker.Date().Minute + 1) % 60)
	case "<", ",":
		ev = m.picker.SetMinute((m.picker.Date().Minute + 59) % 60)
	case "enter":
		if cell, ok := m.picker.Grid().Find(m.picker.Date()); ok {
			ev = m.picker.Pick(cell)
		}
	default:
		return m, nil
	}
	m.statusMsg = ""
	if !ev.Changed && key.String() != "enter" && !strings.ContainsAny(key.String(), "+=-<>.,") {
		m.statusMsg = "已到达可选年份范围的边界"
	}
	m.apply(ev)
	return m, nil
}

// apply writes the event back into the field.
func (m *model) apply(ev picker.Event) {
	if ev.Changed {
		m.input.SetValue(ev.Text)
		m.input.CursorEnd()
	}
	if ev.Close {
		m.closePopup()
	}
}

func (m model) View() string {
	sb := strings.Builder{}
	sb.WriteString(m.input.View())
	if m.open {
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(render.BuildBlock(m.picker.Grid()).Lines, "\n"))
		sb.WriteString("\n\n")
		sb.WriteString(render.HelpLine(m.picker.WithTime()))
		if m.opts.ShowLegend {
			sb.WriteString("\n")
			sb.WriteString(render.ColorLegend())
		}
	} else {
		sb.WriteString("\n\n")
		sb.WriteString(m.hint("Enter/↓ 打开日历  Esc 完成  Ctrl+C 退出"))
	}
	if m.statusMsg != "" {
		sb.WriteString("\n")
		sb.WriteString(m.hint(m.statusMsg))
	}
	if m.opts.HolidaysStale {
		sb.WriteString("\n\n")
		sb.WriteString(m.hint(render.StaleHolidaysNotice))
	}
	return sb.String()
}

func (m model) hint(text string) string {
	if noColorMode {
		return text
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Render(text)
}
