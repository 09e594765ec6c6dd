// Package config loads the optional JSON configuration file and
// resolves where to look for it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// FileName is the per-tree configuration file looked up in the scan
// root.
const FileName = ".decruft.json"

// ErrNotFound is returned by Load when the file does not exist.
var ErrNotFound = errors.New("config: file not found")

// Config holds the file-configurable settings. The zero value is a
// valid configuration meaning "defaults everywhere".
type Config struct {
	// Depth overrides the default walk depth when positive.
	Depth int `json:"depth"`
	// Protected lists extra directory names that are never classified
	// as cruft, on top of the built-in protected set.
	Protected []string `json:"protected"`
	// AllTypes starts the session with every cruft type shown.
	AllTypes bool `json:"allTypes"`
}

// Resolve picks the config file to read: the explicit path when given,
// otherwise the scan root's own file, otherwise the XDG config dir.
// ok is false when no candidate exists, which is not an error.
func Resolve(root, explicit string) (path string, ok bool) {
	if explicit != "" {
		return explicit, true
	}
	if root != "" {
		candidate := filepath.Join(root, FileName)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	candidate := filepath.Join(xdg.ConfigHome, "decruft", "config.json")
	if fileExists(candidate) {
		return candidate, true
	}
	return "", false
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Depth < 0 {
		return Config{}, fmt.Errorf("config %s: depth must be >= 0", path)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
