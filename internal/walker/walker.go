package walker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/pathfilter"
)

// textExtensions are the extensions treated as text. Everything else,
// including files without an extension, is reported as binary.
var textExtensions = map[string]struct{}{
	".txt":  {},
	".md":   {},
	".json": {},
	".py":   {},
	".html": {},
	".js":   {},
	".css":  {},
}

// IsBinary reports whether a file with the given lower-case extension is
// treated as binary. The decision never looks at content.
func IsBinary(extension string) bool {
	_, ok := textExtensions[extension]
	return !ok
}

// Extension returns the lower-cased extension of name including the dot,
// or model.NoExtension. Dotfiles such as ".gitignore" have no extension.
func Extension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return model.NoExtension
	}
	return strings.ToLower(ext)
}

// LevelCount holds the entry counts of one visited directory.
// For every level Raw == KeptFiles + KeptDirs + IgnoredFiles + IgnoredDirs.
type LevelCount struct {
	Path         string
	Raw          int
	KeptFiles    int
	KeptDirs     int
	IgnoredFiles int
	IgnoredDirs  int
}

// Result is everything a single traversal produces.
type Result struct {
	// Root is the absolute project root.
	Root string

	// Files are the kept files in traversal order.
	Files []model.FileRecord

	// Directories are the kept directories in traversal order.
	Directories []model.DirectoryRecord

	// Tree is the nested view of Directories.
	Tree model.DirectoryTree

	// FileTypes counts kept files per extension.
	FileTypes map[string]int

	// IgnoredFiles are the unmasked relative paths of ignored files.
	IgnoredFiles []string

	// IgnoredDirectories are the unmasked relative paths of pruned
	// directories. Their contents were never visited.
	IgnoredDirectories []string

	// Levels has one entry per visited directory, root first.
	Levels []LevelCount
}

// ProgressFunc is called once for every kept file.
type ProgressFunc func(relativePath string)

// Walker traverses a project root and classifies every entry it visits.
type Walker struct {
	filter   *pathfilter.Filter
	masker   *anonymize.Masker
	salt     string
	logger   *slog.Logger
	progress ProgressFunc
}

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the logger for skipped entries and hash failures.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithProgress sets a callback invoked for every kept file.
func WithProgress(fn ProgressFunc) Option {
	return func(w *Walker) {
		w.progress = fn
	}
}

// WithSalt overrides the salt used for anonymized identifiers.
func WithSalt(salt string) Option {
	return func(w *Walker) {
		w.salt = salt
	}
}

// New creates a Walker with the given filter and masker.
func New(filter *pathfilter.Filter, masker *anonymize.Masker, opts ...Option) *Walker {
	w := &Walker{
		filter: filter,
		masker: masker,
		salt:   anonymize.DefaultSalt,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk traverses root depth-first in lexical order. Ignored directories are
// pruned before descent. Unreadable subdirectories are logged and skipped;
// an unreadable root is an error.
func (w *Walker) Walk(ctx context.Context, root string) (*Result, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, w.masker.Mask(abs))
	}

	res := &Result{
		Root:      abs,
		Tree:      model.DirectoryTree{},
		FileTypes: make(map[string]int),
	}

	if err := w.walkDir(ctx, abs, "", res); err != nil {
		return nil, err
	}
	return res, nil
}

// walkDir classifies the entries of one directory, then descends into each
// kept subdirectory in order.
func (w *Walker) walkDir(ctx context.Context, absDir, rel string, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		if rel == "" {
			return fmt.Errorf("%w: %v", ErrRootUnreadable, err)
		}
		w.logger.Warn("skipping unreadable directory",
			"path", w.masker.Mask(rel),
			"error", err)
		return nil
	}

	level := LevelCount{Path: w.masker.Mask(rel), Raw: len(entries)}
	var descend []string

	for _, entry := range entries {
		relPath := entry.Name()
		if rel != "" {
			relPath = path.Join(rel, entry.Name())
		}

		if isRealDir(entry) {
			if w.filter.IsIgnoredDir(relPath) {
				level.IgnoredDirs++
				res.IgnoredDirectories = append(res.IgnoredDirectories, relPath)
				continue
			}
			level.KeptDirs++
			res.Directories = append(res.Directories, model.DirectoryRecord{
				RelativePath: w.masker.Mask(relPath),
				Name:         entry.Name(),
				SourcePath:   relPath,
			})
			res.Tree.Insert(w.masker.Mask(relPath))
			descend = append(descend, relPath)
			continue
		}

		if w.filter.IsIgnored(relPath) {
			level.IgnoredFiles++
			res.IgnoredFiles = append(res.IgnoredFiles, relPath)
			continue
		}

		level.KeptFiles++
		record := w.fileRecord(filepath.Join(absDir, entry.Name()), relPath, entry)
		res.Files = append(res.Files, record)
		res.FileTypes[record.Extension]++
		if w.progress != nil {
			w.progress(record.RelativePath)
		}
	}

	res.Levels = append(res.Levels, level)

	for _, sub := range descend {
		if err := w.walkDir(ctx, filepath.Join(res.Root, filepath.FromSlash(sub)), sub, res); err != nil {
			return err
		}
	}
	return nil
}

// fileRecord builds the record for a kept file. Stat and read failures are
// logged and leave the record with the hash sentinel; the file still counts.
func (w *Walker) fileRecord(absPath, relPath string, entry fs.DirEntry) model.FileRecord {
	masked := w.masker.Mask(relPath)
	ext := Extension(entry.Name())

	record := model.FileRecord{
		RelativePath: masked,
		Name:         entry.Name(),
		Extension:    ext,
		IsBinary:     IsBinary(ext),
		ContentHash:  model.HashErrorSentinel,
		AnonymizedID: anonymize.Identifier(masked, w.salt),
		KeepListed:   w.filter.IsKept(relPath),
		SourcePath:   relPath,
	}

	info, err := entry.Info()
	if err != nil {
		w.logger.Warn("failed to stat file", "path", masked, "error", err)
		return record
	}
	record.SizeBytes = info.Size()

	d, err := hashFile(absPath)
	if err != nil {
		w.logger.Warn("failed to hash file", "path", masked, "error", err)
		return record
	}
	record.ContentHash = d.hash
	record.MIMEType = d.mimeType
	return record
}

// isRealDir reports whether entry is a directory that is not a symlink.
// Symlinks are recorded as files and never followed.
func isRealDir(entry fs.DirEntry) bool {
	return entry.IsDir() && entry.Type()&fs.ModeSymlink == 0
}
