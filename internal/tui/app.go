package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/emojify/internal/dictionary"
	"github.com/f3rmion/emojify/internal/emojify"
	"github.com/f3rmion/emojify/internal/translate"
	"github.com/f3rmion/emojify/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewTranslate ViewType = iota
	ViewDictionary
	ViewFilePicker
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	Icon     string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// DictionaryReloadedMsg is sent when the dictionary file at Path was
// reloaded behind the running UI.
type DictionaryReloadedMsg struct {
	Dict *dictionary.Dictionary
	Path string
	Err  error
}

// DictionaryLoadedMsg is sent when a dictionary picked in the UI was read.
type DictionaryLoadedMsg struct {
	Dict *dictionary.Dictionary
	Path string
	Err  error
}

// AppModel is the main unified TUI model
type AppModel struct {
	session *translate.Session

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	translateView  views.TranslateModel
	dictionaryView views.DictionaryModel
	filePickerView views.FilePickerModel

	dict      *dictionary.Dictionary
	dictPath  string
	reloadErr error

	// Called with the path of a dictionary opened in the UI.
	onOpen func(path string)

	// Help overlay
	showHelp bool
}

// NewApp creates a new unified TUI application. path is the file d was
// loaded from, empty for the built-in dictionary.
func NewApp(session *translate.Session, d *dictionary.Dictionary, path string, dir emojify.Direction) AppModel {
	menuItems := []MenuItem{
		{Label: "Translate", Icon: "🔁", View: ViewTranslate, Shortcut: "1"},
		{Label: "Dictionary", Icon: "📖", View: ViewDictionary, Shortcut: "2"},
		{Label: "Open", Icon: "📂", View: ViewFilePicker, Shortcut: "3"},
	}

	startDir := ""
	if path != "" {
		startDir = filepath.Dir(path)
	}

	return AppModel{
		session:        session,
		sidebarWidth:   20,
		currentView:    ViewTranslate,
		menuItems:      menuItems,
		translateView:  views.NewTranslateModel(session, dir),
		dictionaryView: views.NewDictionaryModel(d),
		filePickerView: views.NewFilePickerModel(startDir),
		dict:           d,
		dictPath:       path,
	}
}

// WithOpenHook returns m with fn called whenever a dictionary file is
// opened from the UI, e.g. to point a file watcher at it.
func (m AppModel) WithOpenHook(fn func(path string)) AppModel {
	m.onOpen = fn
	return m
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if msg.String() == "esc" {
			// The dictionary search box handles its own esc.
			if m.currentView == ViewDictionary && m.dictionaryView.Searching() {
				break
			}
			m.sidebarActive = !m.sidebarActive
			return m, nil
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
			case "1":
				m.switchView(ViewTranslate)
			case "2":
				m.switchView(ViewDictionary)
			case "3":
				m.switchView(ViewFilePicker)
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchView(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2
		m.translateView.SetSize(contentWidth, contentHeight)
		m.dictionaryView.SetSize(contentWidth, contentHeight)
		m.filePickerView.SetSize(contentWidth, contentHeight)
		return m, nil

	case ViewSwitchMsg:
		m.switchView(msg.View)
		return m, nil

	case views.FileSelectedMsg:
		return m, loadDictionary(msg.Path)

	case DictionaryLoadedMsg:
		if msg.Err == nil {
			_, msg.Err = m.session.Reload(msg.Dict)
		}
		m.reloadErr = msg.Err
		if msg.Err == nil {
			m.dict = msg.Dict
			m.dictPath = msg.Path
			m.dictionaryView.SetDictionary(msg.Dict)
			m.translateView.Refresh()
			m.switchView(ViewTranslate)
			if m.onOpen != nil {
				m.onOpen(msg.Path)
			}
		}
		return m, nil

	case DictionaryReloadedMsg:
		if !samePath(msg.Path, m.dictPath) {
			// The reload read a file that is no longer open; put the
			// open dictionary back.
			if msg.Err == nil && m.dict != nil {
				if _, err := m.session.Reload(m.dict); err != nil {
					m.reloadErr = err
				}
				m.translateView.Refresh()
			}
			return m, nil
		}
		m.reloadErr = msg.Err
		if msg.Err == nil && msg.Dict != nil {
			m.dict = msg.Dict
			m.dictionaryView.SetDictionary(msg.Dict)
			m.translateView.Refresh()
		}
		return m, nil
	}

	// Delegate to active view
	var cmd tea.Cmd
	switch m.currentView {
	case ViewTranslate:
		m.translateView, cmd = m.translateView.Update(msg)
	case ViewDictionary:
		m.dictionaryView, cmd = m.dictionaryView.Update(msg)
	case ViewFilePicker:
		m.filePickerView, cmd = m.filePickerView.Update(msg)
	}
	return m, cmd
}

// loadDictionary reads a dictionary file off the UI goroutine.
func loadDictionary(path string) tea.Cmd {
	return func() tea.Msg {
		d, err := dictionary.LoadFile(path)
		return DictionaryLoadedMsg{Dict: d, Path: path, Err: err}
	}
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

func (m *AppModel) switchView(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// CurrentView returns the active view.
func (m AppModel) CurrentView() ViewType {
	return m.currentView
}

// Translate returns the translation view.
func (m AppModel) Translate() views.TranslateModel {
	return m.translateView
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewTranslate:
		content = m.translateView.View()
	case ViewDictionary:
		content = m.dictionaryView.View()
	case ViewFilePicker:
		content = m.filePickerView.View()
	}
	if m.reloadErr != nil {
		content = lipgloss.NewStyle().Foreground(ColorPrimary).Render("Reload failed: "+m.reloadErr.Error()) + "\n\n" + content
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render(" 😀 emojify "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Icon + " " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Current view, not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	if m.height > usedHeight {
		for i := 0; i < m.height-usedHeight-2; i++ {
			items = append(items, "")
		}
	}

	source := "built-in"
	if m.dictPath != "" {
		source = filepath.Base(m.dictPath)
	}
	items = append(items, SidebarItemStyle.Render(source))

	help := "esc Menu"
	if m.sidebarActive {
		help = "? Help  q Quit"
	}
	items = append(items, SidebarHelpStyle.Render(help))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	helpText := helpTitleStyle.Render("emojify - emoji ↔ text") + "\n\n"

	helpText += helpSectionStyle.Render("Menu (esc)") + "\n"
	helpText += helpKeyStyle.Render("1-3") + helpDescStyle.Render("Switch views") + "\n"
	helpText += helpKeyStyle.Render("j/k") + helpDescStyle.Render("Move selection") + "\n"
	helpText += helpKeyStyle.Render("?") + helpDescStyle.Render("Show this help") + "\n"
	helpText += helpKeyStyle.Render("q") + helpDescStyle.Render("Quit") + "\n"

	helpText += helpSectionStyle.Render("Translate View") + "\n"
	helpText += helpKeyStyle.Render("tab") + helpDescStyle.Render("Swap direction and text") + "\n"
	helpText += helpKeyStyle.Render("ctrl+p") + helpDescStyle.Render("Toggle substitution policy") + "\n"
	helpText += helpKeyStyle.Render("ctrl+y") + helpDescStyle.Render("Copy output to clipboard") + "\n"

	helpText += helpSectionStyle.Render("Dictionary View") + "\n"
	helpText += helpKeyStyle.Render("j/k ↑/↓") + helpDescStyle.Render("Navigate entries") + "\n"
	helpText += helpKeyStyle.Render("/") + helpDescStyle.Render("Search") + "\n"
	helpText += helpKeyStyle.Render("c") + helpDescStyle.Render("Clear search") + "\n"

	helpText += helpSectionStyle.Render("Open View") + "\n"
	helpText += helpKeyStyle.Render("enter") + helpDescStyle.Render("Open file/enter dir") + "\n"
	helpText += helpKeyStyle.Render("backspace") + helpDescStyle.Render("Go to parent dir") + "\n"
	helpText += helpKeyStyle.Render("~") + helpDescStyle.Render("Go to home dir") + "\n"

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	helpBox := helpBoxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
