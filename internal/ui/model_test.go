package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/akx/decruft/internal/filter"
	"github.com/akx/decruft/internal/purge"
	"github.com/akx/decruft/internal/scanner"
)

func agePtr(days float64) *float64 {
	return &days
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	if key == "esc" {
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

// newBrowsingModel builds a session over an in-memory registry with the
// canonical two-entry fixture, all types shown.
func newBrowsingModel(paths ...scanner.Entry) (Model, *scanner.Registry) {
	reg := scanner.NewRegistry()
	for _, e := range paths {
		reg.Append(e)
	}
	m := New(reg, nil, "/", filter.Config{Type: filter.AllTypes}, filter.SizeDescending)
	return m, reg
}

func TestNewSelectsFirstEntry(t *testing.T) {
	t.Parallel()

	m, _ := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules, AgeDays: agePtr(2)},
		scanner.Entry{Path: "/w/dist", Size: 2 << 20, Reason: scanner.ReasonDistDir, AgeDays: agePtr(200)},
	)

	// Size-descending puts the big node_modules first.
	if m.selected != "/w/node_modules" {
		t.Errorf("selected = %q, want /w/node_modules", m.selected)
	}
}

func TestNavigationClampsAtBounds(t *testing.T) {
	t.Parallel()

	m, _ := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules},
		scanner.Entry{Path: "/w/dist", Size: 2 << 20, Reason: scanner.ReasonDistDir},
	)

	m, _ = press(t, m, "k") // already at the top
	if m.selected != "/w/node_modules" {
		t.Errorf("selection moved above the first entry: %q", m.selected)
	}
	m, _ = press(t, m, "j")
	if m.selected != "/w/dist" {
		t.Errorf("selected = %q after j, want /w/dist", m.selected)
	}
	m, _ = press(t, m, "j") // clamp, no wrap
	if m.selected != "/w/dist" {
		t.Errorf("selection wrapped past the last entry: %q", m.selected)
	}
	m, _ = press(t, m, "k")
	if m.selected != "/w/node_modules" {
		t.Errorf("selected = %q after k, want /w/node_modules", m.selected)
	}
}

func TestFilterCycleRevalidatesSelection(t *testing.T) {
	t.Parallel()

	m, _ := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules},
		scanner.Entry{Path: "/w/dist", Size: 2 << 20, Reason: scanner.ReasonDistDir},
	)
	m, _ = press(t, m, "j")
	if m.selected != "/w/dist" {
		t.Fatalf("selected = %q, want /w/dist", m.selected)
	}

	// Cycling to common-only drops the dist dir from the view; the
	// selection falls back to the first remaining entry.
	m, _ = press(t, m, "a")
	if len(m.view) != 1 {
		t.Fatalf("view has %d entries after type cycle, want 1", len(m.view))
	}
	if m.selected != "/w/node_modules" {
		t.Errorf("selected = %q after type cycle, want /w/node_modules", m.selected)
	}

	// And back around to all types.
	m, _ = press(t, m, "a")
	if len(m.view) != 2 {
		t.Errorf("view has %d entries after full cycle, want 2", len(m.view))
	}
}

func TestAgeFilterCycle(t *testing.T) {
	t.Parallel()

	m, _ := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules, AgeDays: agePtr(2)},
		scanner.Entry{Path: "/w/dist", Size: 2 << 20, Reason: scanner.ReasonDistDir, AgeDays: agePtr(200)},
	)

	m, _ = press(t, m, "o") // 90 days
	if len(m.view) != 1 || m.view[0].Path != "/w/dist" {
		t.Fatalf("view after 90-day filter = %v, want only /w/dist", m.view)
	}
	if m.selected != "/w/dist" {
		t.Errorf("selected = %q, want /w/dist", m.selected)
	}
}

func TestSortCycleKeepsSelection(t *testing.T) {
	t.Parallel()

	m, _ := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules, AgeDays: agePtr(2)},
		scanner.Entry{Path: "/w/dist", Size: 2 << 20, Reason: scanner.ReasonDistDir, AgeDays: agePtr(200)},
	)

	// Selection is a path, so reordering must not change what is
	// selected, only where it sits.
	m, _ = press(t, m, "r") // age descending: dist first now
	if m.view[0].Path != "/w/dist" {
		t.Fatalf("view[0] = %q after sort cycle, want /w/dist", m.view[0].Path)
	}
	if m.selected != "/w/node_modules" {
		t.Errorf("selected = %q after sort cycle, want /w/node_modules", m.selected)
	}
}

func TestTickReflectsRegistryAppends(t *testing.T) {
	t.Parallel()

	m, reg := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules},
	)

	reg.Append(scanner.Entry{Path: "/w/.tox", Size: 20 << 20, Reason: scanner.ReasonToxDir})
	next, cmd := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	if cmd == nil {
		t.Error("tick did not reschedule itself")
	}
	if len(m.view) != 2 {
		t.Errorf("view has %d entries after tick, want 2", len(m.view))
	}
	if m.selected != "/w/node_modules" {
		t.Errorf("selected = %q, want the originally selected path", m.selected)
	}
}

func newDeleteFixture(t *testing.T) (Model, *scanner.Registry, string) {
	t.Helper()
	rootPath := t.TempDir()
	root, err := os.OpenRoot(rootPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = root.Close() })

	nm := filepath.Join(rootPath, "app", "node_modules")
	dist := filepath.Join(rootPath, "app", "dist")
	for _, dir := range []string{nm, dist} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	reg := scanner.NewRegistry()
	reg.Append(scanner.Entry{Path: nm, Size: 10 << 20, Reason: scanner.ReasonNodeModules})
	reg.Append(scanner.Entry{Path: dist, Size: 2 << 20, Reason: scanner.ReasonDistDir})
	exec := purge.NewExecutor(root, rootPath, reg)
	m := New(reg, exec, rootPath, filter.Config{Type: filter.AllTypes}, filter.SizeDescending)
	return m, reg, rootPath
}

func TestConfirmedDeleteRemovesEntry(t *testing.T) {
	t.Parallel()

	m, reg, rootPath := newDeleteFixture(t)
	dist := filepath.Join(rootPath, "app", "dist")

	m, _ = press(t, m, "j") // select dist
	m, cmd := press(t, m, "d")
	if cmd != nil {
		t.Error("delete request ran a command before confirmation")
	}
	if m.pendingDelete != dist {
		t.Fatalf("pendingDelete = %q, want %q", m.pendingDelete, dist)
	}

	// Quit and filter keys are dead while the confirmation is pending.
	m, cmd = press(t, m, "q")
	if cmd != nil || m.pendingDelete != dist {
		t.Error("q was not ignored during confirmation")
	}

	m, cmd = press(t, m, "y")
	if m.pendingDelete != "" {
		t.Error("pendingDelete not cleared on confirm")
	}
	if !m.deleting {
		t.Error("deleting flag not set while the executor runs")
	}
	if cmd == nil {
		t.Fatal("confirm produced no executor command")
	}

	next, _ := m.Update(cmd())
	m = next.(Model)
	if m.deleting {
		t.Error("deleting flag still set after the result arrived")
	}
	if _, err := os.Stat(dist); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("dist still on disk: stat err = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("registry len = %d after delete, want 1", reg.Len())
	}
	if want := filepath.Join(rootPath, "app", "node_modules"); m.selected != want {
		t.Errorf("selected = %q after delete, want fallback %q", m.selected, want)
	}
}

func TestCancelledDeleteKeepsEverything(t *testing.T) {
	t.Parallel()

	m, reg, rootPath := newDeleteFixture(t)
	dist := filepath.Join(rootPath, "app", "dist")

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "n")
	if cmd != nil {
		t.Error("cancel ran a command")
	}
	if m.pendingDelete != "" {
		t.Error("pendingDelete not cleared on cancel")
	}
	if _, err := os.Stat(dist); err != nil {
		t.Errorf("dist vanished after a cancelled delete: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("registry len = %d after cancel, want 2", reg.Len())
	}
}

func TestImmediateDeleteSkipsConfirmation(t *testing.T) {
	t.Parallel()

	m, reg, rootPath := newDeleteFixture(t)
	nm := filepath.Join(rootPath, "app", "node_modules")

	m, cmd := press(t, m, "D")
	if m.pendingDelete != "" {
		t.Error("immediate delete entered the confirmation state")
	}
	if cmd == nil {
		t.Fatal("immediate delete produced no executor command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	if _, err := os.Stat(nm); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("node_modules still on disk: stat err = %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("registry len = %d, want 1", reg.Len())
	}
}

func TestFailedDeleteKeepsRegistryEntry(t *testing.T) {
	t.Parallel()

	m, reg, rootPath := newDeleteFixture(t)
	dist := filepath.Join(rootPath, "app", "dist")
	if err := os.RemoveAll(dist); err != nil {
		t.Fatal(err)
	}

	m, _ = press(t, m, "j")
	m, cmd := press(t, m, "D")
	if cmd == nil {
		t.Fatal("immediate delete produced no executor command")
	}
	next, _ := m.Update(cmd())
	m = next.(Model)

	// The stale entry stays visible so the operator can see the
	// failure and retry.
	if reg.Len() != 2 {
		t.Errorf("registry len = %d after failed delete, want 2", reg.Len())
	}
	if !strings.Contains(m.lastEvent, "Delete failed") {
		t.Errorf("lastEvent = %q, want a delete failure message", m.lastEvent)
	}
}

func TestViewRendersColumns(t *testing.T) {
	t.Parallel()

	m, _ := newBrowsingModel(
		scanner.Entry{Path: "/w/node_modules", Size: 10 << 20, Reason: scanner.ReasonNodeModules, AgeDays: agePtr(2)},
	)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m = next.(Model)

	out := m.View()
	for _, want := range []string{"10.00 MB", "2 days", "node_modules", "/w/node_modules"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
