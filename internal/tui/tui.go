// Package tui is the interactive terminal front end.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasklist/internal/controller"
	"github.com/idilsaglam/tasklist/internal/ui"
	"github.com/idilsaglam/tasklist/internal/view"
)

// listItem adapts a view row to bubbles/list.Item
type listItem struct {
	index int
	row   view.Row
}

func (i listItem) Title() string       { return i.row.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.row.Text }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render("> ")
	}
	fmt.Fprintln(w, prefix+ui.RowLine(it.index, it.row))
}

var keys = struct {
	add, toggle, remove, clearDone, clearAll, quit key.Binding
}{
	add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
	remove:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	clearDone: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear done")),
	clearAll:  key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear all")),
	quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model. Actions go through the controller; the
// list is rebuilt from the Screen after each one.
type Model struct {
	ctrl   *controller.Controller
	screen *Screen

	list   list.Model
	width  int
	height int

	// Inline add: input keeps focus and is cleared after each add
	adding bool
	ti     textinput.Model

	// Clear-all confirmation dialog
	confirm    *huh.Form
	confirmYes *bool
}

// New builds a model over ctrl, which must render into screen.
func New(ctrl *controller.Controller, screen *Screen) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 200

	m := Model{ctrl: ctrl, screen: screen, list: l, ti: ti, width: 80, height: 24}
	m.layout()
	m.sync()
	return m
}

// Run starts the program in the alternate screen and blocks until quit.
func Run(ctrl *controller.Controller, screen *Screen) error {
	_, err := tea.NewProgram(New(ctrl, screen), tea.WithAltScreen()).Run()
	return err
}

// sync rebuilds list items from the latest rendered view.
func (m *Model) sync() tea.Cmd {
	v := m.screen.View()
	items := make([]list.Item, 0, len(v.Rows))
	for i, r := range v.Rows {
		items = append(items, listItem{index: i, row: r})
	}
	m.list.Title = ui.Header(v)
	return m.list.SetItems(items)
}

func (m *Model) layout() {
	h := m.height - 4
	if m.adding {
		h -= 3
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

func (m *Model) selectedID() (string, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return "", false
	}
	return it.row.ID, true
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.layout()
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.adding {
		return m.updateAdd(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	filtering := m.list.FilterState() == list.Filtering
	clearingFilter := ok && km.String() == "esc" && m.list.FilterState() == list.FilterApplied
	if !ok || filtering || clearingFilter {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit
	case key.Matches(km, keys.add):
		m.adding = true
		m.ti.SetValue("")
		m.layout()
		cmd := m.ti.Focus()
		return m, cmd
	case key.Matches(km, keys.toggle):
		if id, ok := m.selectedID(); ok {
			m.ctrl.Toggle(id)
			cmd := m.sync()
			return m, cmd
		}
		return m, nil
	case key.Matches(km, keys.remove):
		if id, ok := m.selectedID(); ok {
			m.ctrl.Remove(id)
			cmd := m.sync()
			return m, cmd
		}
		return m, nil
	case key.Matches(km, keys.clearDone):
		m.ctrl.ClearCompleted()
		cmd := m.sync()
		return m, cmd
	case key.Matches(km, keys.clearAll):
		cmd := m.openConfirm()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			// blank input is silently ignored
			if m.ctrl.Add(m.ti.Value()) {
				m.list.Select(0)
			}
			m.ti.SetValue("")
			cmd := m.sync()
			return m, cmd
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			m.layout()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) openConfirm() tea.Cmd {
	m.confirmYes = new(bool)
	m.confirm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("clear_all").
				Title(controller.ClearAllPrompt).
				Description("This cannot be undone").
				Affirmative("Yes").
				Negative("No").
				Value(m.confirmYes),
		),
	).WithTheme(huh.ThemeDracula()).
		WithWidth(m.width - 4).
		WithShowHelp(true)
	return m.confirm.Init()
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return m.resolveConfirm(false)
	}
	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}
	switch m.confirm.State {
	case huh.StateCompleted:
		return m.resolveConfirm(*m.confirmYes)
	case huh.StateAborted:
		return m.resolveConfirm(false)
	}
	return m, cmd
}

// resolveConfirm closes the dialog and hands the answer to the controller.
func (m Model) resolveConfirm(yes bool) (tea.Model, tea.Cmd) {
	m.confirm, m.confirmYes = nil, nil
	if m.ctrl.ClearAll(controller.Answered(yes)) {
		cmd := m.sync()
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	t := ui.Current()
	var content string
	switch {
	case m.confirm != nil:
		content = ui.Header(m.screen.View()) + "\n\n" + m.confirm.View()
	case m.screen.View().Empty():
		content = ui.Header(m.screen.View()) + "\n\n" + t.Muted.Render(m.screen.View().Placeholder)
	default:
		content = m.list.View()
	}
	if m.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render("Add task\n"+m.ti.View())
	}
	content += "\n" + t.Muted.Render(helpLine())
	return ui.PanelString(strings.Split(content, "\n"))
}

func helpLine() string {
	bs := []key.Binding{keys.add, keys.toggle, keys.remove, keys.clearDone, keys.clearAll, keys.quit}
	parts := make([]string, 0, len(bs))
	for _, b := range bs {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	parts = append(parts, "/ filter")
	return strings.Join(parts, " • ")
}
