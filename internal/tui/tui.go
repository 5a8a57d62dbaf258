// Package tui is the interactive task list. Every add, edit and delete is
// dispatched to the controller (and so persisted) as soon as it happens.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// listItem adapts model.Task to bubbles/list.Item
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Title }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.task.Title }

// Custom delegate to control how items render (single line)
type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	text := ui.Truncate(it.task.Title, max(m.Width()-6, 10))
	if it.task.Completed {
		text = t.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render("> ")
	}
	fmt.Fprint(w, prefix+ui.Checkbox(it.task)+" "+text)
}

type mode int

const (
	browsing mode = iota
	adding
	editing
)

type keyMap struct {
	Add, Edit, Delete, Quit key.Binding
}

var keys = keyMap{
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
}

// Model is the Bubble Tea model for the task list.
type Model struct {
	ctl  *app.Controller
	list list.Model
	ti   textinput.Model // shared by add and edit

	mode   mode
	editID int64

	status string
	err    string

	width, height int
}

// New builds the model around ctl.
func New(ctl *app.Controller) Model {
	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{keys.Add, keys.Edit, keys.Delete} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys
	l.DisableQuitKeybindings()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{ctl: ctl, list: l, ti: ti, width: 80, height: 24}
	m.refresh()
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(ctl *app.Controller) error {
	_, err := tea.NewProgram(New(ctl), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	switch m.mode {
	case adding, editing:
		return m.updateInput(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(kmsg, keys.Quit) && m.list.FilterState() == list.Unfiltered:
		return m, tea.Quit
	case kmsg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(kmsg, keys.Add):
		m.mode = adding
		m.err = ""
		m.ti.SetValue("")
		m.ti.Placeholder = "New task title..."
		m.resize()
		return m, m.ti.Focus()
	case key.Matches(kmsg, keys.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = editing
		m.editID = t.ID
		m.err = ""
		m.ti.SetValue(t.Title)
		m.ti.CursorEnd()
		m.ti.Placeholder = "Edit task title..."
		m.resize()
		return m, m.ti.Focus()
	case key.Matches(kmsg, keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.report(m.ctl.Delete(t.ID), "deleted")
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.Type {
		case tea.KeyEnter:
			var err error
			verb := "added"
			if m.mode == adding {
				_, err = m.ctl.Add(m.ti.Value())
			} else {
				verb = "updated"
				err = m.ctl.UpdateTitle(m.editID, m.ti.Value())
			}
			if errors.Is(err, app.ErrEmptyTitle) {
				m.err = "Title cannot be empty"
				return m, nil
			}
			m.report(err, verb)
			m.closeInput()
			m.refresh()
			if verb == "added" {
				m.list.Select(0)
			}
			return m, nil
		case tea.KeyEsc:
			m.closeInput()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// report records the outcome of a dispatch for the status line. A
// persistence failure leaves the in-memory change in place.
func (m *Model) report(err error, verb string) {
	if err != nil {
		m.err = "save failed: " + err.Error()
		m.status = ""
		return
	}
	m.err = ""
	m.status = verb
}

func (m *Model) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

// refresh rebuilds list items from the controller.
func (m *Model) refresh() {
	tasks := m.ctl.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, listItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	m.list.Title = ui.Header(tasks)
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= 4
	}
	m.list.SetSize(max(m.width-4, 20), max(h, 3))
}

// Tasks is the list as currently shown.
func (m Model) Tasks() model.List { return m.ctl.Tasks() }

func (m Model) View() string {
	t := ui.Current()
	content := m.list.View()
	if m.mode != browsing {
		title := "Add task"
		if m.mode == editing {
			title = "Edit task"
		}
		if m.err != "" {
			title += " - " + t.Error.Render(m.err)
		}
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	} else if m.err != "" {
		content += "\n" + t.Error.Render(m.err)
	} else if m.status != "" {
		content += "\n" + t.Success.Render(t.SymDone+" "+m.status)
	}
	return ui.Panel(strings.Split(content, "\n"))
}
