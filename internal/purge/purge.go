// Package purge removes cruft directories, confined to the scan root.
package purge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akx/decruft/internal/scanner"
)

var (
	// ErrOutsideRoot rejects paths that do not resolve inside the scan
	// root.
	ErrOutsideRoot = errors.New("purge: path outside scan root")
	// ErrRootItself rejects deleting the scan root.
	ErrRootItself = errors.New("purge: refusing to delete scan root")
)

// Executor deletes directories through an os.Root handle so no path can
// escape the scanned tree, and keeps the registry in step with the
// filesystem.
type Executor struct {
	root     *os.Root
	rootPath string
	reg      *scanner.Registry
}

// NewExecutor returns an executor deleting inside root. rootPath is the
// absolute path root was opened at.
func NewExecutor(root *os.Root, rootPath string, reg *scanner.Registry) *Executor {
	return &Executor{root: root, rootPath: rootPath, reg: reg}
}

// Delete removes the directory at absPath and drops its registry entry.
// On any failure the entry is kept, so a failed delete stays visible
// and can be retried. A path that no longer exists counts as a failure.
func (e *Executor) Delete(absPath string) error {
	rel, err := e.relativize(absPath)
	if err != nil {
		return err
	}
	if _, err := e.root.Lstat(rel); err != nil {
		return fmt.Errorf("purge %s: %w", absPath, err)
	}
	if err := e.root.RemoveAll(rel); err != nil {
		return fmt.Errorf("purge %s: %w", absPath, err)
	}
	e.reg.Remove(absPath)
	return nil
}

// relativize turns an absolute entry path into a path relative to the
// scan root, rejecting anything that would land on or outside the root.
func (e *Executor) relativize(absPath string) (string, error) {
	if absPath == "" {
		return "", ErrOutsideRoot
	}
	rel, err := filepath.Rel(e.rootPath, absPath)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, absPath)
	}
	rel = filepath.Clean(rel)
	if rel == "." {
		return "", ErrRootItself
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, absPath)
	}
	return rel, nil
}
