package rules

import (
	"os"

	"github.com/irsanai/repoprep/internal/textdecode"
)

// DefaultMaxContentSize is the largest file FileLoader reads.
const DefaultMaxContentSize int64 = 5 << 20

// Content is the loaded body of a file.
type Content struct {
	// Text is the decoded content. Always valid UTF-8.
	Text string

	// Raw is the undecoded content, for predicates that inspect bytes.
	Raw []byte

	// Encoding names the decoder that produced Text.
	Encoding string

	// BOM reports whether the file started with a byte order mark.
	BOM bool

	// Loaded is false when the file was too large or unreadable.
	Loaded bool
}

// ContentLoader loads file content for predicates. Implementations must
// never fail; problems degrade to an empty Content with Loaded false.
type ContentLoader interface {
	Load(absPath string) Content
}

// FileLoader reads files from disk and decodes them with textdecode.
type FileLoader struct {
	// MaxSize caps the number of bytes read. Zero means
	// DefaultMaxContentSize.
	MaxSize int64
}

// NewFileLoader returns a FileLoader with the given size cap.
func NewFileLoader(maxSize int64) *FileLoader {
	return &FileLoader{MaxSize: maxSize}
}

// Load implements ContentLoader.
func (l *FileLoader) Load(absPath string) Content {
	limit := l.MaxSize
	if limit <= 0 {
		limit = DefaultMaxContentSize
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() || info.Size() > limit {
		return Content{}
	}

	data, err := os.ReadFile(absPath) //nolint:gosec // Paths come from the walk result
	if err != nil {
		return Content{}
	}

	decoded := textdecode.Decode(data)
	return Content{
		Text:     decoded.Text,
		Raw:      data,
		Encoding: decoded.Encoding,
		BOM:      decoded.BOM,
		Loaded:   true,
	}
}

// LoaderFunc adapts a function to ContentLoader.
type LoaderFunc func(absPath string) Content

// Load implements ContentLoader.
func (f LoaderFunc) Load(absPath string) Content {
	return f(absPath)
}
