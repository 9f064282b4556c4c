package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
)

// emojiColumn is the display width reserved for the emoji column.
const emojiColumn = 4

// DictionaryModel browses dictionary entries in insertion order.
type DictionaryModel struct {
	dict     *dictionary.Dictionary
	entries  []emojify.Entry // after filtering
	selected int
	offset   int

	searchInput textinput.Model
	searching   bool
	searchTerm  string

	width  int
	height int
}

// NewDictionaryModel creates a dictionary browser.
func NewDictionaryModel(d *dictionary.Dictionary) DictionaryModel {
	ti := textinput.New()
	ti.Placeholder = "Search emoji, definitions, context..."
	ti.CharLimit = 50
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	m := DictionaryModel{searchInput: ti}
	m.SetDictionary(d)
	return m
}

// SetDictionary replaces the browsed dictionary, keeping the filter.
func (m *DictionaryModel) SetDictionary(d *dictionary.Dictionary) {
	if d == nil {
		d = dictionary.New()
	}
	m.dict = d
	m.applyFilter()
}

// SetSize updates the view dimensions.
func (m *DictionaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Searching reports whether the search box has focus.
func (m DictionaryModel) Searching() bool {
	return m.searching
}

// Selected returns the highlighted entry.
func (m DictionaryModel) Selected() (emojify.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return emojify.Entry{}, false
	}
	return m.entries[m.selected], true
}

// Visible returns the entries that pass the filter.
func (m DictionaryModel) Visible() []emojify.Entry {
	return m.entries
}

// Update handles messages.
func (m DictionaryModel) Update(msg tea.Msg) (DictionaryModel, tea.Cmd) {
	msg2, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch msg2.String() {
		case "enter":
			m.searching = false
			m.searchInput.Blur()
			m.searchTerm = m.searchInput.Value()
			m.applyFilter()
			return m, nil
		case "esc":
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue(m.searchTerm)
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			return m, cmd
		}
	}

	switch msg2.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case "home", "g":
		m.selected = 0
	case "end", "G":
		if len(m.entries) > 0 {
			m.selected = len(m.entries) - 1
		}
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	case "c":
		m.searchTerm = ""
		m.searchInput.SetValue("")
		m.applyFilter()
	}
	m.scroll()
	return m, nil
}

func (m *DictionaryModel) applyFilter() {
	all := m.dict.Entries()
	if m.searchTerm == "" {
		m.entries = all
	} else {
		term := strings.ToLower(m.searchTerm)
		m.entries = nil
		for _, e := range all {
			if matches(e, term) {
				m.entries = append(m.entries, e)
			}
		}
	}
	m.selected = 0
	m.offset = 0
}

func matches(e emojify.Entry, term string) bool {
	if e.Emoji == term || strings.Contains(strings.ToLower(e.Definition), term) {
		return true
	}
	for _, c := range e.Context {
		if strings.Contains(dictionary.NormalizeContextKey(c.Key), term) {
			return true
		}
	}
	return false
}

func (m DictionaryModel) listHeight() int {
	h := m.height - 12
	if h < 5 {
		return 10
	}
	return h
}

// scroll keeps the selection inside the visible window.
func (m *DictionaryModel) scroll() {
	h := m.listHeight()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+h {
		m.offset = m.selected - h + 1
	}
}

// View renders the dictionary view.
func (m DictionaryModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Dictionary"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d of %d entries", len(m.entries), m.dict.Len())))
	b.WriteString("\n\n")

	if m.searching || m.searchTerm != "" {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(helpStyle.Render("No entries"))
		b.WriteString("\n")
	}

	width := m.width - 4
	if width < 30 {
		width = 60
	}
	end := m.offset + m.listHeight()
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		row := FormatRow(m.entries[i], width)
		if i == m.selected {
			row = selectedRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	if e, ok := m.Selected(); ok {
		b.WriteString("\n")
		b.WriteString(m.renderDetail(e))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("j/k: navigate • /: search • c: clear • esc: menu"))
	return b.String()
}

func (m DictionaryModel) renderDetail(e emojify.Entry) string {
	var lines []string
	lines = append(lines, labelStyle.Render("Emoji")+emojiStyle.Render(e.Emoji))
	lines = append(lines, labelStyle.Render("Means")+valueStyle.Render(e.CanonicalDefinition()))
	if e.Definition != e.CanonicalDefinition() {
		lines = append(lines, labelStyle.Render("Full")+valueStyle.Render(e.Definition))
	}
	if len(e.Context) > 0 {
		keys := make([]string, len(e.Context))
		for i, c := range e.Context {
			keys[i] = dictionary.NormalizeContextKey(c.Key)
		}
		lines = append(lines, labelStyle.Render("Also")+valueStyle.Render(strings.Join(keys, ", ")))
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// FormatRow renders one entry as an aligned line of at most width cells.
// Emoji occupy one or two cells depending on the terminal's width tables,
// so the emoji column is padded by display width rather than rune count.
func FormatRow(e emojify.Entry, width int) string {
	emoji := runewidth.FillRight(e.Emoji, emojiColumn)
	rest := e.CanonicalDefinition()
	if len(e.Context) > 0 {
		rest += "  (" + strings.Join(e.ContextKeys(), ", ") + ")"
	}
	avail := width - emojiColumn - 1
	if avail < 1 {
		avail = 1
	}
	return emoji + " " + runewidth.Truncate(rest, avail, "…")
}
