package scanner

// Reason identifies why a directory was classified as cruft.
type Reason int

const (
	ReasonNodeModules Reason = iota
	ReasonCacheDir
	ReasonCacheTag
	ReasonBuildDir
	ReasonRustTarget
	ReasonTempDir
	ReasonVenvDir
	ReasonDistDir
	ReasonToxDir
)

// String returns the label shown in listings and reports.
func (r Reason) String() string {
	switch r {
	case ReasonNodeModules:
		return "node_modules"
	case ReasonCacheDir:
		return "cache dir"
	case ReasonCacheTag:
		return "CACHEDIR.TAG"
	case ReasonBuildDir:
		return "build dir"
	case ReasonRustTarget:
		return "rust target dir"
	case ReasonTempDir:
		return "temp dir"
	case ReasonVenvDir:
		return "venv"
	case ReasonDistDir:
		return "dist dir"
	case ReasonToxDir:
		return "tox dir"
	default:
		return "unknown"
	}
}

// Common reports whether this kind of cruft is shown by default, before
// the operator widens the type filter.
func (r Reason) Common() bool {
	switch r {
	case ReasonNodeModules, ReasonCacheDir, ReasonCacheTag, ReasonBuildDir, ReasonVenvDir, ReasonToxDir:
		return true
	default:
		return false
	}
}

// Entry is one discovered cruft directory. Entries are built by the
// walker and never modified afterwards: Size and AgeDays are measured
// once at discovery.
type Entry struct {
	// Path is the absolute path of the directory and its identity.
	Path string
	// Size is the total size in bytes of all regular files under Path.
	Size int64
	// Reason records which classification rule matched.
	Reason Reason
	// AgeDays is the age of the newest file near the top of the
	// directory, in fractional days. Nil when no age could be
	// determined.
	AgeDays *float64
}
