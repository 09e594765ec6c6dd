package scanner

import (
	"context"
	"io/fs"
	"time"
)

// stalenessDepth bounds the sub-walk that looks for the newest file.
// Ages are a coarse signal, so a shallow look is enough even for huge
// trees.
const stalenessDepth = 3

const secondsPerDay = 86400

// dirSize sums the sizes of all regular files under relPath, to
// unbounded depth. Unreadable parts are skipped and counted as
// warnings; the only error returned is context cancellation.
func (w *Walker) dirSize(ctx context.Context, relPath string) (int64, error) {
	var size int64
	err := fs.WalkDir(w.FS, relPath, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			w.warn("size", p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			w.warn("size", p, err)
			return nil
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return size, nil
}

// newestAgeDays reports the age in fractional days of the newest
// regular file within stalenessDepth levels of relPath. When the
// sub-walk finds no files it falls back to the directory's own
// modification time, and reports nil when no age can be determined.
func (w *Walker) newestAgeDays(ctx context.Context, relPath string) (*float64, error) {
	now := time.Now()
	var newest time.Time

	err := fs.WalkDir(w.FS, relPath, func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			w.warn("age", p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if relDepth(relPath, p) >= stalenessDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			w.warn("age", p, err)
			return nil
		}
		if mtime := info.ModTime(); mtime.After(newest) {
			newest = mtime
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !newest.IsZero() {
		return daysSince(now, newest), nil
	}
	info, err := fs.Stat(w.FS, relPath)
	if err != nil {
		w.warn("age", relPath, err)
		return nil, nil
	}
	return daysSince(now, info.ModTime()), nil
}

// daysSince converts an mtime to fractional days before now. A
// timestamp in the future yields nil, the "no age" case.
func daysSince(now, mtime time.Time) *float64 {
	if mtime.After(now) {
		return nil
	}
	days := now.Sub(mtime).Seconds() / secondsPerDay
	return &days
}
