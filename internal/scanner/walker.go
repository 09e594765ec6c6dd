package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Walker discovers cruft directories under a single root and feeds them
// to the registry.
type Walker struct {
	// FS is the filesystem rooted at Root, typically os.Root.FS().
	FS fs.FS
	// Root is the absolute path FS is rooted at, used to build
	// absolute entry paths.
	Root string
	// MaxDepth is the deepest directory level that is still
	// classified. The root itself is level zero and directories at
	// MaxDepth are classified but not descended into.
	MaxDepth int

	Classifier *Classifier
	Registry   *Registry
}

// Walk traverses the tree. Every visited entry bumps the scanned
// counter; every classified directory is measured, appended to the
// registry, and pruned from the traversal, so no entry is ever an
// ancestor of another. The registry is marked complete on return.
//
// Walk fails only on context cancellation or when the root itself
// cannot be read. Errors below the root skip the unreadable part and
// count as warnings.
func (w *Walker) Walk(ctx context.Context) error {
	defer w.Registry.MarkComplete()

	err := fs.WalkDir(w.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			if p == "." {
				return err
			}
			w.warn("walk", p, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if p == "." {
			return nil
		}

		w.Registry.AddScanned(1)
		if !d.IsDir() {
			return nil
		}

		if reason, ok := w.Classifier.Classify(p); ok {
			size, age, err := w.measure(ctx, p)
			if err != nil {
				return err
			}
			w.Registry.Append(Entry{
				Path:    filepath.Join(w.Root, filepath.FromSlash(p)),
				Size:    size,
				Reason:  reason,
				AgeDays: age,
			})
			return fs.SkipDir
		}
		if relDepth(".", p) >= w.MaxDepth {
			return fs.SkipDir
		}
		return nil
	})

	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// measure computes the size and staleness of a matched directory. The
// two sub-walks are independent and run concurrently, joining before
// the entry is built.
func (w *Walker) measure(ctx context.Context, relPath string) (int64, *float64, error) {
	var (
		size int64
		age  *float64
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		size, err = w.dirSize(ctx, relPath)
		return err
	})
	g.Go(func() error {
		var err error
		age, err = w.newestAgeDays(ctx, relPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}
	return size, age, nil
}

func (w *Walker) warn(stage, path string, err error) {
	w.Registry.AddWarnings(1)
	slog.Debug("scan warning", "stage", stage, "path", path, "err", err)
}

// relDepth returns how many levels below base the path p lies. Both are
// slash-separated; base "." means the filesystem root.
func relDepth(base, p string) int {
	if p == base {
		return 0
	}
	if base != "." {
		p = strings.TrimPrefix(p, base+"/")
	}
	return strings.Count(p, "/") + 1
}
