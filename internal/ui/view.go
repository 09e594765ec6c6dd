package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akx/decruft/internal/filter"
	"github.com/akx/decruft/internal/scanner"
)

type styles struct {
	banner   lipgloss.Style
	size     lipgloss.Style
	age      lipgloss.Style
	kind     lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	danger   lipgloss.Style
	warning  lipgloss.Style
}

var sty = styles{
	banner: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("238")),
	size:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	age:      lipgloss.NewStyle().Foreground(lipgloss.Color("170")),
	kind:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
	selected: lipgloss.NewStyle().Reverse(true),
	muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	danger:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading…"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.bannerView(),
		m.listView(),
		m.footerView(),
	)
}

// bannerView renders the one-line status region. A pending or running
// deletion replaces the usual scan/filter summary.
func (m Model) bannerView() string {
	banner := sty.banner.Width(m.width)
	switch {
	case m.deleting:
		return banner.Render(sty.danger.Render("Deleting…"))
	case m.pendingDelete != "":
		prompt := fmt.Sprintf("Delete %s? Press y to confirm, n to cancel.", m.pendingDelete)
		return banner.Render(sty.danger.Render(prompt))
	}

	scanned := m.reg.Scanned()
	found := m.reg.Len()
	var header string
	if m.reg.Complete() {
		header = fmt.Sprintf("Decruft: Found %d dirs in %d entities", found, scanned)
	} else {
		header = fmt.Sprintf("%s Decruft: Scanning %d entities, found %d dirs so far", m.spinner.View(), scanned, found)
	}

	parts := []string{m.cfg.Size.String()}
	if _, active := m.cfg.Age.Days(); active {
		parts = append(parts, m.cfg.Age.String())
	}
	if m.cfg.Type.IncludeAll() {
		parts = append(parts, m.cfg.Type.String())
	}
	parts = append(parts, "sort: "+m.order.String())

	status := fmt.Sprintf("%s (showing %d, %s). Total: %s",
		header, len(m.view), strings.Join(parts, ", "), formatMB(filter.TotalSize(m.view)))
	if m.disk != nil {
		status += fmt.Sprintf(" · disk %.0f%% used, %s free", m.disk.UsedPercent, formatBytes(int64(m.disk.Free)))
	}
	if w := m.reg.Warnings(); w > 0 {
		status += sty.warning.Render(fmt.Sprintf(" · %d skipped", w))
	}
	return banner.Render(status)
}

func (m Model) listView() string {
	height := m.listHeight()
	if len(m.view) == 0 {
		empty := sty.muted.Render("Nothing to show with the current filters.")
		return lipgloss.Place(m.width, height, lipgloss.Left, lipgloss.Top, empty)
	}

	lines := make([]string, 0, height)
	for i := m.offset; i < len(m.view) && i < m.offset+height; i++ {
		lines = append(lines, m.rowView(m.view[i], m.view[i].Path == m.selected))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) rowView(e scanner.Entry, selected bool) string {
	size := fmt.Sprintf("%15s ", formatMB(e.Size))
	age := fmt.Sprintf("%10s ", formatAge(e.AgeDays))
	kind := fmt.Sprintf("%-15s ", e.Reason.String())
	if selected {
		return sty.selected.Render(size + age + kind + e.Path)
	}
	return sty.size.Render(size) + sty.age.Render(age) + sty.kind.Render(kind) + e.Path
}

func (m Model) footerView() string {
	helpView := m.help.View(m.keys)
	if m.lastEvent != "" {
		return lipgloss.JoinVertical(lipgloss.Left, sty.muted.Render(m.lastEvent), helpView)
	}
	return helpView
}

// listHeight is the number of entry rows that fit between the banner
// and the footer.
func (m Model) listHeight() int {
	h := m.height - 3
	if m.lastEvent != "" {
		h--
	}
	if m.help.ShowAll {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func formatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", float64(size)/(1<<20))
}

func formatAge(days *float64) string {
	if days == nil {
		return "0 days"
	}
	return fmt.Sprintf("%d days", int(math.Round(*days)))
}

func formatBytes(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	}
	units := []string{"KB", "MB", "GB", "TB", "PB"}
	value := float64(size)
	for _, unit := range units {
		value /= 1024
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
	}
	return fmt.Sprintf("%.1f %s", value, units[len(units)-1])
}
