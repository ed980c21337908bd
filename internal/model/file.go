package model

import (
	"sort"
	"strings"
)

// NoExtension is the extension bucket for files without an extension.
const NoExtension = "no_extension"

// HashErrorSentinel replaces ContentHash when the file could not be read.
const HashErrorSentinel = "ERROR_HASHING"

// FileRecord describes one kept file found during traversal.
// Records are produced once per scan and never mutated afterwards.
type FileRecord struct {
	// RelativePath is the masked, slash-separated path below the project root.
	RelativePath string `json:"relative_path"`

	// Name is the base name of the file.
	Name string `json:"name"`

	// Extension is the lower-cased extension including the dot,
	// or NoExtension.
	Extension string `json:"extension"`

	// SizeBytes is the file size as reported by the file system.
	SizeBytes int64 `json:"size_bytes"`

	// IsBinary is derived from the extension allow-list, not from content.
	IsBinary bool `json:"is_binary"`

	// ContentHash is the first 16 hex characters of the SHA-256 digest,
	// or HashErrorSentinel.
	ContentHash string `json:"content_hash"`

	// AnonymizedID is a salted identifier of the relative path.
	AnonymizedID string `json:"anonymized_id"`

	// MIMEType is sniffed from the file header. Empty when unknown.
	MIMEType string `json:"mime_type,omitempty"`

	// KeepListed reports whether an advisory KEEP pattern matches the path.
	KeepListed bool `json:"keep_listed"`

	// SourcePath is the unmasked relative path used to reach the file on
	// disk. It never leaves the process.
	SourcePath string `json:"-"`
}

// DiskPath returns the relative path to open the file with. Records read
// back from a report carry no SourcePath and fall back to RelativePath.
func (f FileRecord) DiskPath() string {
	if f.SourcePath != "" {
		return f.SourcePath
	}
	return f.RelativePath
}

// SizeKB returns the size in kilobytes rounded to two decimals.
func (f FileRecord) SizeKB() float64 {
	if f.SizeBytes <= 0 {
		return 0
	}
	kb := float64(f.SizeBytes) / 1024
	return float64(int64(kb*100+0.5)) / 100
}

// DirectoryRecord describes one kept directory.
type DirectoryRecord struct {
	// RelativePath is the masked, slash-separated path below the project root.
	RelativePath string `json:"relative_path"`

	// Name is the base name of the directory.
	Name string `json:"name"`

	// SourcePath is the unmasked relative path. It never leaves the process.
	SourcePath string `json:"-"`
}

// DiskPath returns SourcePath, or RelativePath when it is unset.
func (d DirectoryRecord) DiskPath() string {
	if d.SourcePath != "" {
		return d.SourcePath
	}
	return d.RelativePath
}

// DirectoryTree is the nested view of kept directories.
// Each key is a path segment; an empty map is a directory without kept
// subdirectories.
type DirectoryTree map[string]DirectoryTree

// Insert adds a slash-separated relative directory path to the tree,
// creating intermediate segments as needed.
func (t DirectoryTree) Insert(relativePath string) {
	current := t
	for _, part := range strings.Split(relativePath, "/") {
		if part == "" {
			continue
		}
		next, ok := current[part]
		if !ok {
			next = DirectoryTree{}
			current[part] = next
		}
		current = next
	}
}

// Paths returns every directory path in the tree in lexical order.
func (t DirectoryTree) Paths() []string {
	var paths []string
	var visit func(prefix string, node DirectoryTree)
	visit = func(prefix string, node DirectoryTree) {
		for name, child := range node {
			p := name
			if prefix != "" {
				p = prefix + "/" + name
			}
			paths = append(paths, p)
			visit(p, child)
		}
	}
	visit("", t)
	sort.Strings(paths)
	return paths
}
