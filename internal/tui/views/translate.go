// Package views provides the individual views for the unified TUI.
package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/emojify/internal/clipboard"
	"github.com/f3rmion/emojify/internal/emojify"
	"github.com/f3rmion/emojify/internal/translate"
)

// Styles (shared by the views in this package)
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	emojiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)

	outputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#ffe66d")).
			Padding(0, 1)

	copiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))
)

// NotLoadedWarning replaces the output while the dictionary is empty.
const NotLoadedWarning = "⚠️ Dictionary not loaded. Check the dictionary path and try again."

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// TranslateModel is the live translation view.
type TranslateModel struct {
	input     textarea.Model
	session   *translate.Session
	direction emojify.Direction

	output string
	err    error

	// Clipboard
	copied  bool
	copyErr error
	copyFn  func(string) error

	width  int
	height int
}

// NewTranslateModel creates a translation view starting in direction dir.
func NewTranslateModel(session *translate.Session, dir emojify.Direction) TranslateModel {
	ta := textarea.New()
	ta.Placeholder = placeholder(dir)
	ta.ShowLineNumbers = false
	ta.CharLimit = 4096
	ta.SetWidth(60)
	ta.SetHeight(5)
	ta.Focus()

	return TranslateModel{
		input:     ta,
		session:   session,
		direction: dir,
		copyFn:    clipboard.Write,
	}
}

func placeholder(dir emojify.Direction) string {
	if dir == emojify.TextToEmoji {
		return "Type some text..."
	}
	return "Paste some emoji..."
}

// SetSize updates the view dimensions.
func (m *TranslateModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if width > 4 {
		m.input.SetWidth(width - 4)
	}
}

// Direction returns the current translation direction.
func (m TranslateModel) Direction() emojify.Direction {
	return m.direction
}

// Input returns the current input text.
func (m TranslateModel) Input() string {
	return m.input.Value()
}

// Output returns the current output text.
func (m TranslateModel) Output() string {
	return m.output
}

// SetInput replaces the input text and retranslates.
func (m *TranslateModel) SetInput(s string) {
	m.input.SetValue(s)
	m.retranslate()
}

// Refresh retranslates the current input, e.g. after a dictionary reload.
func (m *TranslateModel) Refresh() {
	m.retranslate()
}

// Update handles messages.
func (m TranslateModel) Update(msg tea.Msg) (TranslateModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			m.toggleDirection()
			return m, nil
		case "ctrl+p":
			m.togglePolicy()
			return m, nil
		case "ctrl+y":
			if m.output == "" {
				return m, nil
			}
			if err := m.copyFn(m.output); err != nil {
				m.copyErr = err
				return m, nil
			}
			m.copied = true
			m.copyErr = nil
			return m, clearCopiedAfter(2 * time.Second)
		}

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.retranslate()
	}
	return m, cmd
}

// toggleDirection flips the direction and swaps input and output, so the
// last result becomes the new source text.
func (m *TranslateModel) toggleDirection() {
	m.direction = m.direction.Opposite()
	m.input.Placeholder = placeholder(m.direction)

	previous := m.input.Value()
	m.input.SetValue(m.output)
	m.output = previous
	m.err = nil
}

func (m *TranslateModel) togglePolicy() {
	next := emojify.SinglePass
	if m.session.Translator().Policy() == emojify.SinglePass {
		next = emojify.Sequential
	}

	if _, err := m.session.SetPolicy(next); err != nil {
		m.err = err
		return
	}
	m.retranslate()
}

func (m *TranslateModel) retranslate() {
	input := m.input.Value()
	if strings.TrimSpace(input) == "" {
		m.output = ""
		m.err = nil
		return
	}
	if m.dictionaryEmpty() {
		m.output = ""
		return
	}
	m.output, m.err = m.session.Translate(m.direction, input)
}

func (m TranslateModel) dictionaryEmpty() bool {
	return m.session.Translator().Maps().Stats().EmojiToText == 0
}

// View renders the translation view.
func (m TranslateModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Translate"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(directionLabel(m.direction)))
	b.WriteString("\n\n")

	b.WriteString(boxStyle.Render(m.input.View()))
	b.WriteString("\n")

	out := m.output
	switch {
	case m.err != nil:
		out = errorStyle.Render(m.err.Error())
	case m.dictionaryEmpty():
		out = errorStyle.Render(NotLoadedWarning)
	case out == "":
		out = helpStyle.Render("Translation appears here")
	default:
		out = valueStyle.Render(out)
	}
	width := m.width - 4
	if width < 20 {
		width = 60
	}
	b.WriteString(outputBoxStyle.Width(width).Render(out))
	b.WriteString("\n")

	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	help := []string{"tab: swap direction", "ctrl+p: policy", "ctrl+y: copy", "esc: menu"}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return b.String()
}

func (m TranslateModel) statusLine() string {
	tr := m.session.Translator()
	stats := tr.Maps().Stats()
	status := fmt.Sprintf("%d emoji • %d phrases • %s", stats.EmojiToText, stats.TextToEmoji, tr.Policy())

	switch {
	case m.copied:
		status += "  " + copiedStyle.Render("✓ Copied!")
	case m.copyErr != nil:
		status += "  " + errorStyle.Render("copy failed: "+m.copyErr.Error())
	}
	return helpStyle.Render(status)
}

func directionLabel(dir emojify.Direction) string {
	if dir == emojify.TextToEmoji {
		return "Text → Emoji"
	}
	return "Emoji → Text"
}
