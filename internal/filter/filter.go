package filter

import (
	"sort"

	"github.com/akx/decruft/internal/scanner"
)

// SizeFilter hides entries below a minimum size.
type SizeFilter int

const (
	ShowAll SizeFilter = iota
	SkipSmall
)

var sizeFilters = []SizeFilter{ShowAll, SkipSmall}

// Next returns the next size filter in the cycle.
func (f SizeFilter) Next() SizeFilter { return cycle(sizeFilters, f) }

// Bytes returns the smallest entry size the filter lets through.
func (f SizeFilter) Bytes() int64 {
	if f == SkipSmall {
		return 1 << 20
	}
	return 0
}

func (f SizeFilter) String() string {
	if f == SkipSmall {
		return "skip small"
	}
	return "all"
}

// AgeFilter hides entries whose newest file is younger than a
// threshold.
type AgeFilter int

const (
	AgeAll AgeFilter = iota
	Age90
	Age180
	Age365
)

var ageFilters = []AgeFilter{AgeAll, Age90, Age180, Age365}

// Next returns the next age filter in the cycle.
func (f AgeFilter) Next() AgeFilter { return cycle(ageFilters, f) }

// Days returns the minimum age in days, with ok false when the filter
// is inactive.
func (f AgeFilter) Days() (float64, bool) {
	switch f {
	case Age90:
		return 90, true
	case Age180:
		return 180, true
	case Age365:
		return 365, true
	default:
		return 0, false
	}
}

func (f AgeFilter) String() string {
	switch f {
	case Age90:
		return "90 days"
	case Age180:
		return "180 days"
	case Age365:
		return "365 days"
	default:
		return "all"
	}
}

// TypeFilter selects which cruft kinds are listed.
type TypeFilter int

const (
	CommonOnly TypeFilter = iota
	AllTypes
)

var typeFilters = []TypeFilter{CommonOnly, AllTypes}

// Next returns the next type filter in the cycle.
func (f TypeFilter) Next() TypeFilter { return cycle(typeFilters, f) }

// IncludeAll reports whether uncommon cruft kinds pass the filter.
func (f TypeFilter) IncludeAll() bool { return f == AllTypes }

func (f TypeFilter) String() string {
	if f == AllTypes {
		return "all types"
	}
	return "common"
}

// SortOrder fixes the presentation order of the filtered view.
type SortOrder int

const (
	SizeDescending SortOrder = iota
	AgeDescending
	Alphabetical
)

var sortOrders = []SortOrder{SizeDescending, AgeDescending, Alphabetical}

// Next returns the next sort order in the cycle.
func (o SortOrder) Next() SortOrder { return cycle(sortOrders, o) }

func (o SortOrder) String() string {
	switch o {
	case AgeDescending:
		return "age"
	case Alphabetical:
		return "name"
	default:
		return "size"
	}
}

// Config is the active filter state of a session.
type Config struct {
	Size SizeFilter
	Age  AgeFilter
	Type TypeFilter
}

// Match reports whether the entry passes every active filter. Entries
// without a determined age count as zero days old.
func (c Config) Match(e scanner.Entry) bool {
	if e.Size < c.Size.Bytes() {
		return false
	}
	if !c.Type.IncludeAll() && !e.Reason.Common() {
		return false
	}
	if days, ok := c.Age.Days(); ok && ageOf(e) < days {
		return false
	}
	return true
}

// Apply returns the entries passing cfg, stably sorted by order. The
// input slice is left untouched, so it can be called on every frame
// against the latest registry snapshot.
func Apply(entries []scanner.Entry, cfg Config, order SortOrder) []scanner.Entry {
	out := make([]scanner.Entry, 0, len(entries))
	for _, e := range entries {
		if cfg.Match(e) {
			out = append(out, e)
		}
	}
	sortEntries(out, order)
	return out
}

// TotalSize sums the sizes of the given entries.
func TotalSize(entries []scanner.Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}

func sortEntries(entries []scanner.Entry, order SortOrder) {
	sort.SliceStable(entries, func(i, j int) bool {
		switch order {
		case AgeDescending:
			return ageOf(entries[i]) > ageOf(entries[j])
		case Alphabetical:
			return entries[i].Path < entries[j].Path
		default:
			return entries[i].Size > entries[j].Size
		}
	})
}

func ageOf(e scanner.Entry) float64 {
	if e.AgeDays == nil {
		return 0
	}
	return *e.AgeDays
}
