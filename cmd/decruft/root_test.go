package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestTree lays out a small project with one obvious cruft dir and
// one look-alike that must not be reported.
func newTestTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	nm := filepath.Join(root, "app", "node_modules", "pkg")
	if err := os.MkdirAll(nm, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nm, "index.js"), bytes.Repeat([]byte("x"), 2048), 0o644); err != nil {
		t.Fatal(err)
	}
	templates := filepath.Join(root, "app", "templates")
	if err := os.MkdirAll(templates, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(templates, "page.html"), []byte("<html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPlainMode(t *testing.T) {
	root := newTestTree(t)

	stdout, _, err := runCommand(t, "--plain", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	want := filepath.Join(root, "app", "node_modules") + "\t2048\n"
	if stdout != want {
		t.Errorf("plain output = %q, want %q", stdout, want)
	}
}

func TestPlainModeWithProgress(t *testing.T) {
	root := newTestTree(t)

	_, stderr, err := runCommand(t, "--plain", "--progress", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stderr, "scanned=") || !strings.Contains(stderr, "found=1") {
		t.Errorf("progress output = %q, want final scanned/found line", stderr)
	}
}

func TestJSONMode(t *testing.T) {
	root := newTestTree(t)

	stdout, _, err := runCommand(t, "--json", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var doc struct {
		Root    string `json:"root"`
		Entries []struct {
			Path   string `json:"path"`
			Size   int64  `json:"size"`
			Reason string `json:"reason"`
		} `json:"entries"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if doc.Root != root {
		t.Errorf("root = %q, want %q", doc.Root, root)
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(doc.Entries))
	}
	if doc.Entries[0].Reason != "node_modules" || doc.Entries[0].Size != 2048 {
		t.Errorf("entry = %+v", doc.Entries[0])
	}
}

func TestMarkdownReport(t *testing.T) {
	root := newTestTree(t)
	reportPath := filepath.Join(t.TempDir(), "report.md")

	if _, _, err := runCommand(t, "--report", reportPath, root); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	content, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	if !strings.Contains(string(content), "# Decruft Report") {
		t.Errorf("report missing header:\n%s", content)
	}
	if !strings.Contains(string(content), "node_modules") {
		t.Errorf("report missing the found entry:\n%s", content)
	}
}

func TestDepthFromConfigFile(t *testing.T) {
	root := newTestTree(t)
	// Depth 1 stops before app/node_modules is ever visited.
	if err := os.WriteFile(filepath.Join(root, ".decruft.json"), []byte(`{"depth": 1}`), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCommand(t, "--plain", root)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("depth-1 scan found entries: %q", stdout)
	}
}

func TestValidationErrors(t *testing.T) {
	root := newTestTree(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "conflicting formats", args: []string{"--json", "--report", "out.md", root}, wantErr: ErrConflictingFormats},
		{name: "zero depth", args: []string{"--max-depth", "0", root}},
		{name: "missing dir", args: []string{filepath.Join(root, "no-such-dir")}},
		{name: "file instead of dir", args: []string{filepath.Join(root, "app", "templates", "page.html")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, tt.args...)
			if err == nil {
				t.Fatal("Execute() succeeded, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "decruft version") {
		t.Errorf("version output = %q", stdout)
	}
}
