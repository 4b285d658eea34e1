package scanner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
)

// ProgressFunc is invoked between directory entries with the entry path
// and the number of matches found so far. Returning false stops the
// scan cooperatively; already-collected matches are kept.
type ProgressFunc func(path string, found int) bool

// Summary reports how much work a scan performed.
type Summary struct {
	// ScannedCount is the number of files whose content was scanned.
	ScannedCount int `json:"scanned_count"`

	// FoundCount is the total number of matches produced.
	FoundCount int `json:"found_count"`
}

// Walker scans filesystem trees for candidate artifacts.
// It walks depth-first, applies the pattern registry to each readable
// text file, and checks file names against the wallet-file vocabulary.
//
// Per-entry failures (unreadable files, permission errors, binary
// content, oversized files) exclude that entry from results but never
// abort the walk.
type Walker struct {
	// maxFileSize is the largest file, in bytes, whose content is read.
	maxFileSize int64

	// extensions restricts content scanning to the listed extensions.
	// Empty means all extensions are scanned.
	extensions map[string]bool

	// includeHidden controls whether dot-prefixed entries are visited.
	includeHidden bool

	// followSymlinks controls whether symbolic links are traversed.
	followSymlinks bool

	// recursive controls whether subdirectories are descended into.
	recursive bool

	// ignorePatterns are glob patterns; matching paths are skipped.
	ignorePatterns []string

	// includePatterns are glob patterns; when non-empty, only matching
	// files are scanned.
	includePatterns []string

	// logger is used for debug output. Never logs matched text.
	logger *slog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker)

// WithMaxFileSize sets the largest file size whose content is read.
func WithMaxFileSize(size int64) WalkerOption {
	return func(w *Walker) {
		if size > 0 {
			w.maxFileSize = size
		}
	}
}

// WithExtensions restricts content scanning to the given extensions
// (with leading dot, e.g. ".txt"). An empty list scans everything.
func WithExtensions(exts []string) WalkerOption {
	return func(w *Walker) {
		w.extensions = make(map[string]bool, len(exts))
		for _, e := range exts {
			w.extensions[strings.ToLower(e)] = true
		}
	}
}

// WithIncludeHidden controls whether dot-prefixed entries are visited.
// Hidden entries are excluded by default.
func WithIncludeHidden(include bool) WalkerOption {
	return func(w *Walker) {
		w.includeHidden = include
	}
}

// WithFollowSymlinks controls whether symbolic links are traversed.
// Links are not followed by default.
func WithFollowSymlinks(follow bool) WalkerOption {
	return func(w *Walker) {
		w.followSymlinks = follow
	}
}

// WithRecursive controls whether subdirectories are descended into.
func WithRecursive(recursive bool) WalkerOption {
	return func(w *Walker) {
		w.recursive = recursive
	}
}

// WithIgnorePatterns sets glob patterns for paths to skip
// (e.g. "*.log", "node_modules").
func WithIgnorePatterns(patterns []string) WalkerOption {
	return func(w *Walker) {
		w.ignorePatterns = patterns
	}
}

// WithIncludePatterns sets glob patterns a file must match to be
// scanned (e.g. "*.txt", "wallet*"). An empty list scans everything.
// Directories are always descended so nested matches are still found.
func WithIncludePatterns(patterns []string) WalkerOption {
	return func(w *Walker) {
		w.includePatterns = patterns
	}
}

// WithWalkerLogger sets a custom logger.
func WithWalkerLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// DefaultMaxFileSize bounds content reads to 10MB. Larger files are
// skipped rather than truncated so a match can never straddle a cut.
const DefaultMaxFileSize = 10 * 1024 * 1024

// NewWalker creates a Walker with the given options.
func NewWalker(opts ...WalkerOption) *Walker {
	w := &Walker{
		maxFileSize: DefaultMaxFileSize,
		recursive:   true,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}
	return w
}

// haltWalk is the sentinel returned from the walk callback when the
// progress callback asks to stop. It never escapes Walk.
type haltWalk struct{}

func (haltWalk) Error() string { return "walk halted by progress callback" }

// Walk scans every root depth-first and returns all matches with a
// summary. Inaccessible entries are skipped. The scan stops early when
// ctx is cancelled (returning ctx.Err()) or when progress returns false
// (returning the matches collected so far with a nil error). progress
// may be nil.
func (w *Walker) Walk(ctx context.Context, roots []string, progress ProgressFunc) ([]Match, Summary, error) {
	matches := make([]Match, 0)
	var summary Summary

	for _, root := range roots {
		err := godirwalk.Walk(root, &godirwalk.Options{
			FollowSymbolicLinks: w.followSymlinks,
			Unsorted:            false,
			Callback: func(path string, de *godirwalk.Dirent) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				if progress != nil && !progress(path, len(matches)) {
					return haltWalk{}
				}

				name := de.Name()
				if de.IsDir() {
					if path == root {
						return nil
					}
					if !w.recursive {
						return filepath.SkipDir
					}
					if w.isHidden(name) || w.isIgnored(path, name) {
						return filepath.SkipDir
					}
					return nil
				}

				if !de.IsRegular() {
					return nil
				}
				if w.isHidden(name) || w.isIgnored(path, name) {
					return nil
				}
				if !w.isIncluded(path, name) {
					return nil
				}

				found := w.scanFile(path, name, &summary)
				matches = append(matches, found...)
				summary.FoundCount += len(found)
				return nil
			},
			ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
				// Cooperative stops and context cancellation must
				// propagate; everything else is a per-entry failure.
				if _, halted := err.(haltWalk); halted || ctx.Err() != nil {
					return godirwalk.Halt
				}
				// Inaccessible entries are excluded, never fatal.
				w.logger.Debug("skipping inaccessible entry", "path", path, "error", err)
				return godirwalk.SkipNode
			},
		})
		if err != nil {
			if _, halted := err.(haltWalk); halted {
				return matches, summary, nil
			}
			if ctx.Err() != nil {
				return matches, summary, ctx.Err()
			}
			// A root that cannot be walked at all is skipped like any
			// other inaccessible entry.
			w.logger.Debug("skipping unreadable root", "root", root, "error", err)
		}
	}

	return matches, summary, nil
}

// scanFile scans a single file's name and, when eligible, its content.
// All failures are swallowed; the file is simply excluded.
func (w *Walker) scanFile(path, name string, summary *Summary) []Match {
	found := make([]Match, 0)

	if m, ok := MatchFileName(name); ok {
		m.Identifier = path
		found = append(found, m)
	}

	if len(w.extensions) > 0 && !w.extensions[strings.ToLower(filepath.Ext(name))] {
		return found
	}

	info, err := os.Stat(path)
	if err != nil {
		w.logger.Debug("skipping unstattable file", "path", path, "error", err)
		return found
	}
	if info.Size() > w.maxFileSize {
		w.logger.Debug("skipping oversized file", "path", path, "size", info.Size())
		return found
	}

	content, err := os.ReadFile(path) //nolint:gosec // scanning user-requested paths is the point
	if err != nil {
		w.logger.Debug("skipping unreadable file", "path", path, "error", err)
		return found
	}

	summary.ScannedCount++
	return append(found, ScanContent(string(content), path)...)
}

// isHidden reports whether an entry name is dot-prefixed.
func (w *Walker) isHidden(name string) bool {
	return !w.includeHidden && strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isIgnored reports whether a path matches any ignore pattern.
// Patterns are matched against both the full path and the base name.
func (w *Walker) isIgnored(path, name string) bool {
	for _, pattern := range w.ignorePatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// isIncluded reports whether a file passes the include filter. With no
// include patterns every file passes; otherwise at least one pattern
// must match the base name or the full path.
func (w *Walker) isIncluded(path, name string) bool {
	if len(w.includePatterns) == 0 {
		return true
	}
	for _, pattern := range w.includePatterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
