package anonymize

import (
	"encoding/hex"
	"runtime"
	"strings"

	"github.com/adrg/xdg"
	"golang.org/x/crypto/sha3"
)

// DefaultSalt is the fixed per-tool salt for Identifier.
// It only separates this tool's identifiers from plain digests; it is not
// a secret.
const DefaultSalt = "irsanai_scanner_salt_2023"

// IdentifierLength is the number of hex characters kept from the digest.
const IdentifierLength = 16

// Placeholders substituted for the user's home directory.
const (
	WindowsPlaceholder = "C:/Users/%username%"
	POSIXPlaceholder   = "/home/%username%"
)

// Masker replaces the home directory prefix in paths with a placeholder.
type Masker struct {
	home        string
	placeholder string
}

// NewMasker creates a Masker for the given home directory and placeholder.
// The home directory is normalized to forward slashes without a trailing
// separator. An empty home or a filesystem root disables masking.
func NewMasker(home, placeholder string) *Masker {
	home = strings.TrimRight(normalize(home), "/")
	return &Masker{home: home, placeholder: placeholder}
}

// DefaultMasker returns a Masker for the current user's home directory with
// the platform's placeholder.
func DefaultMasker() *Masker {
	placeholder := POSIXPlaceholder
	if runtime.GOOS == "windows" {
		placeholder = WindowsPlaceholder
	}
	return NewMasker(xdg.Home, placeholder)
}

// Home returns the normalized home directory being masked.
func (m *Masker) Home() string {
	return m.home
}

// Placeholder returns the replacement token.
func (m *Masker) Placeholder() string {
	return m.placeholder
}

// Mask normalizes separators and replaces every occurrence of the home
// directory that starts a path and ends at a path boundary. An occurrence
// starts a path at index 0 or after a character that cannot be part of a
// path segment, so "src/root/x" is left alone for home "/root".
// Occurrences that already read as the placeholder are left untouched, so
// Mask(Mask(p)) == Mask(p).
func (m *Masker) Mask(path string) string {
	path = normalize(path)
	if m.home == "" || m.home == "." || isDriveRoot(m.home) {
		return path
	}

	var sb strings.Builder
	i := 0
	for i < len(path) {
		if strings.HasPrefix(path[i:], m.placeholder) {
			sb.WriteString(m.placeholder)
			i += len(m.placeholder)
			continue
		}
		if strings.HasPrefix(path[i:], m.home) && startsPath(path, i) && atBoundary(path, i+len(m.home)) {
			sb.WriteString(m.placeholder)
			i += len(m.home)
			continue
		}
		sb.WriteByte(path[i])
		i++
	}
	return sb.String()
}

// startsPath reports whether a path may begin at position start in s.
func startsPath(s string, start int) bool {
	return start == 0 || !isSegmentChar(s[start-1])
}

// isSegmentChar reports whether c can occur inside a path segment name.
func isSegmentChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("._-~%/", c) >= 0
}

// atBoundary reports whether position end in s is the end of a path segment.
func atBoundary(s string, end int) bool {
	return end == len(s) || s[end] == '/'
}

// isDriveRoot reports whether home is "C:" style after trimming.
func isDriveRoot(home string) bool {
	return len(home) == 2 && home[1] == ':'
}

// normalize converts Windows separators to forward slashes.
func normalize(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// Identifier returns the first IdentifierLength hex characters of the
// SHA3-256 digest of input followed by salt. Identifiers are stable across
// runs and calls; collisions are possible and accepted.
func Identifier(input, salt string) string {
	sum := sha3.Sum256([]byte(input + salt))
	return hex.EncodeToString(sum[:])[:IdentifierLength]
}
