// Package ui is the interactive session: a bubbletea model that
// snapshots the registry every frame, applies the active filters, and
// drives selection and the two-step deletion protocol.
package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/akx/decruft/internal/filter"
	"github.com/akx/decruft/internal/purge"
	"github.com/akx/decruft/internal/scanner"
)

// pollInterval bounds how long the session goes without re-reading the
// registry, so scan progress shows even with no input.
const pollInterval = 100 * time.Millisecond

type tickMsg time.Time

type deleteResultMsg struct {
	path string
	err  error
}

type diskUsageMsg struct {
	usage *disk.UsageStat
}

// Model is the session state. Browsing and confirm-pending are the two
// logical states: pendingDelete names the path awaiting y/n, and is
// empty while browsing.
type Model struct {
	reg      *scanner.Registry
	exec     *purge.Executor
	rootPath string

	cfg   filter.Config
	order filter.SortOrder

	// view is the filtered, sorted snapshot rendered this frame.
	view []scanner.Entry
	// selected is the path of the selected entry, not its index, so
	// the selection survives reordering and concurrent appends.
	selected      string
	pendingDelete string
	deleting      bool
	lastEvent     string

	width  int
	height int
	offset int

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	disk    *disk.UsageStat
}

// New builds a session over the given registry and deletion executor.
func New(reg *scanner.Registry, exec *purge.Executor, rootPath string, cfg filter.Config, order filter.SortOrder) Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	m := Model{
		reg:      reg,
		exec:     exec,
		rootPath: rootPath,
		cfg:      cfg,
		order:    order,
		spinner:  sp,
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, pollCmd(), diskUsageCmd(m.rootPath))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampOffset()
	case spinner.TickMsg:
		if !m.reg.Complete() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tickMsg:
		m.refresh()
		return m, pollCmd()
	case diskUsageMsg:
		m.disk = msg.usage
	case deleteResultMsg:
		m.deleting = false
		if msg.err != nil {
			m.lastEvent = fmt.Sprintf("Delete failed: %v", msg.err)
		} else {
			m.lastEvent = fmt.Sprintf("Deleted %s", msg.path)
		}
		m.refresh()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The executor runs synchronously from the operator's point of
	// view: input is dead until its result lands.
	if m.deleting {
		return m, nil
	}

	if m.pendingDelete != "" {
		switch msg.String() {
		case "y", "Y":
			path := m.pendingDelete
			m.pendingDelete = ""
			m.deleting = true
			return m, m.deleteCmd(path)
		case "n", "N", "esc":
			m.pendingDelete = ""
			m.lastEvent = "Deletion cancelled"
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Types):
		m.cfg.Type = m.cfg.Type.Next()
		m.lastEvent = fmt.Sprintf("Types: %s", m.cfg.Type)
		m.refresh()
	case key.Matches(msg, m.keys.Size):
		m.cfg.Size = m.cfg.Size.Next()
		m.lastEvent = fmt.Sprintf("Size filter: %s", m.cfg.Size)
		m.refresh()
	case key.Matches(msg, m.keys.Age):
		m.cfg.Age = m.cfg.Age.Next()
		m.lastEvent = fmt.Sprintf("Age filter: %s", m.cfg.Age)
		m.refresh()
	case key.Matches(msg, m.keys.Sort):
		m.order = m.order.Next()
		m.lastEvent = fmt.Sprintf("Sorted by %s", m.order)
		m.refresh()
	case key.Matches(msg, m.keys.Delete):
		if m.selected != "" {
			m.pendingDelete = m.selected
		}
	case key.Matches(msg, m.keys.ForceDelete):
		if m.selected != "" {
			m.deleting = true
			return m, m.deleteCmd(m.selected)
		}
	}
	return m, nil
}

// refresh re-derives the filtered view from the registry and
// re-validates the selection: a selection no longer in the view falls
// back to the first entry, or to none when the view is empty.
func (m *Model) refresh() {
	m.view = filter.Apply(m.reg.Snapshot(), m.cfg, m.order)
	if m.indexOf(m.selected) == -1 {
		if len(m.view) > 0 {
			m.selected = m.view[0].Path
		} else {
			m.selected = ""
		}
	}
	m.clampOffset()
}

// moveSelection shifts the selection within the current view, clamping
// at both ends.
func (m *Model) moveSelection(delta int) {
	if len(m.view) == 0 {
		return
	}
	idx := m.indexOf(m.selected)
	if idx == -1 {
		idx = 0
	} else {
		idx += delta
		if idx < 0 {
			idx = 0
		}
		if idx > len(m.view)-1 {
			idx = len(m.view) - 1
		}
	}
	m.selected = m.view[idx].Path
	m.clampOffset()
}

func (m *Model) indexOf(path string) int {
	if path == "" {
		return -1
	}
	for i, e := range m.view {
		if e.Path == path {
			return i
		}
	}
	return -1
}

// clampOffset keeps the selected row inside the visible window.
func (m *Model) clampOffset() {
	h := m.listHeight()
	idx := m.indexOf(m.selected)
	if idx == -1 {
		m.offset = 0
		return
	}
	if idx < m.offset {
		m.offset = idx
	}
	if idx >= m.offset+h {
		m.offset = idx - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *Model) deleteCmd(path string) tea.Cmd {
	exec := m.exec
	return func() tea.Msg {
		return deleteResultMsg{path: path, err: exec.Delete(path)}
	}
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func diskUsageCmd(path string) tea.Cmd {
	return func() tea.Msg {
		// Best effort: a failed lookup just leaves the figure out of
		// the status line.
		usage, err := disk.Usage(path)
		if err != nil {
			return diskUsageMsg{}
		}
		return diskUsageMsg{usage: usage}
	}
}
