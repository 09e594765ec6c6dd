package scanner

import (
	"io/fs"
	"path"
	"strings"
)

// protectedDirs are never classified as cruft, and neither is anything
// beneath them.
var protectedDirs = []string{".git", ".github", ".idea", ".vscode"}

// Classifier decides whether a directory is cruft. The rules run in a
// fixed order and the first match wins, so a directory gets exactly one
// reason.
type Classifier struct {
	fsys      fs.FS
	protected map[string]struct{}
}

// NewClassifier returns a classifier that reads marker files from fsys.
// Names in extraProtected extend the built-in protected set.
func NewClassifier(fsys fs.FS, extraProtected []string) *Classifier {
	protected := make(map[string]struct{}, len(protectedDirs)+len(extraProtected))
	for _, name := range protectedDirs {
		protected[name] = struct{}{}
	}
	for _, name := range extraProtected {
		if name == "" {
			continue
		}
		protected[name] = struct{}{}
	}
	return &Classifier{fsys: fsys, protected: protected}
}

// Classify reports whether the directory at relPath (slash-separated,
// relative to the scan root) is cruft, and why. The scan root itself is
// never a candidate.
func (c *Classifier) Classify(relPath string) (Reason, bool) {
	if relPath == "." || relPath == "" {
		return 0, false
	}
	if c.isProtected(relPath) {
		return 0, false
	}

	name := strings.ToLower(path.Base(relPath))
	lower := strings.ToLower(relPath)

	switch {
	case name == "node_modules":
		return ReasonNodeModules, true
	case strings.Contains(lower, ".cache") || strings.Contains(name, "cache"):
		return ReasonCacheDir, true
	case strings.Contains(name, "build"):
		return ReasonBuildDir, true
	case name == "target" && c.hasRegularFile(path.Join(relPath, ".rustc_info.json")):
		return ReasonRustTarget, true
	case isTempName(name):
		return ReasonTempDir, true
	case isVenvName(name):
		return ReasonVenvDir, true
	case name == "out" || strings.Contains(name, "dist"):
		return ReasonDistDir, true
	case name == ".tox":
		return ReasonToxDir, true
	case c.exists(path.Join(relPath, "CACHEDIR.TAG")):
		return ReasonCacheTag, true
	}
	return 0, false
}

func (c *Classifier) isProtected(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if _, ok := c.protected[segment]; ok {
			return true
		}
	}
	return false
}

// isTempName matches throwaway directory names without catching
// look-alikes such as "templates".
func isTempName(name string) bool {
	switch name {
	case "tmp", "temp", ".tmp", ".temp":
		return true
	}
	if strings.HasPrefix(name, "tmp-") || strings.HasPrefix(name, "temp-") {
		return true
	}
	return strings.HasSuffix(name, "-tmp") || strings.HasSuffix(name, "-temp")
}

func isVenvName(name string) bool {
	switch name {
	case "venv", "env", ".venv", ".env":
		return true
	}
	return strings.HasPrefix(name, "virtualenv")
}

func (c *Classifier) hasRegularFile(relPath string) bool {
	info, err := fs.Stat(c.fsys, relPath)
	return err == nil && info.Mode().IsRegular()
}

func (c *Classifier) exists(relPath string) bool {
	_, err := fs.Stat(c.fsys, relPath)
	return err == nil
}
