package pathfilter

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tells whether a pattern excludes a path or marks it as expected.
type Kind int

const (
	// KindIgnore excludes matching paths from every downstream step.
	KindIgnore Kind = iota

	// KindKeep marks matching paths as expected in a published repository.
	// It is advisory and never overrides KindIgnore.
	KindKeep
)

// String returns the upper-case kind label.
func (k Kind) String() string {
	switch k {
	case KindIgnore:
		return "IGNORE"
	case KindKeep:
		return "KEEP"
	default:
		return "UNKNOWN"
	}
}

// PathPattern is a compiled regular expression together with its kind.
type PathPattern struct {
	// Source is the pattern as declared.
	Source string

	// Kind is IGNORE or KEEP.
	Kind Kind

	re *regexp.Regexp
}

// Match reports whether the pattern occurs anywhere in path.
func (p PathPattern) Match(path string) bool {
	return p.re.MatchString(path)
}

// Filter classifies slash-separated relative paths.
// A Filter is immutable after construction and safe to share.
type Filter struct {
	ignore []PathPattern
	keep   []PathPattern
}

// New compiles the ignore and keep pattern lists.
// Pattern order is preserved; within the ignore list the first match wins.
func New(ignore, keep []string) (*Filter, error) {
	f := &Filter{
		ignore: make([]PathPattern, 0, len(ignore)),
		keep:   make([]PathPattern, 0, len(keep)),
	}

	for _, src := range ignore {
		p, err := compile(src, KindIgnore)
		if err != nil {
			return nil, err
		}
		f.ignore = append(f.ignore, p)
	}
	for _, src := range keep {
		p, err := compile(src, KindKeep)
		if err != nil {
			return nil, err
		}
		f.keep = append(f.keep, p)
	}

	return f, nil
}

// NewDefault returns a Filter built from DefaultIgnorePatterns, the
// artifact patterns of the stock managed directory and DefaultKeepPatterns.
// The defaults are known to compile.
func NewDefault() *Filter {
	ignore := append(append([]string(nil), DefaultIgnorePatterns...), defaultArtifactPatterns...)
	f, err := New(ignore, DefaultKeepPatterns)
	if err != nil {
		panic(err)
	}
	return f
}

// compile builds a PathPattern, wrapping regexp errors with ErrInvalidPattern.
func compile(src string, kind Kind) (PathPattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return PathPattern{}, fmt.Errorf("%w %q: %v", ErrInvalidPattern, src, err)
	}
	return PathPattern{Source: src, Kind: kind, re: re}, nil
}

// Normalize converts Windows separators to forward slashes.
func Normalize(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// IsIgnored reports whether any ignore pattern occurs in the normalized path.
// Patterns are applied in declared order and the first match short-circuits.
// Keep patterns are not consulted.
func (f *Filter) IsIgnored(relativePath string) bool {
	_, ok := f.MatchIgnore(relativePath)
	return ok
}

// IsIgnoredDir is IsIgnored for a directory. The path is matched as is,
// so `$`-anchored patterns such as `\.bak$` apply, and then with a trailing
// slash, so prefix patterns such as `build/.*` match the directory entry
// itself. Either match lets the walker prune it.
func (f *Filter) IsIgnoredDir(relativePath string) bool {
	_, ok := f.MatchIgnoreDir(relativePath)
	return ok
}

// MatchIgnoreDir is MatchIgnore for a directory, using the same two forms
// as IsIgnoredDir.
func (f *Filter) MatchIgnoreDir(relativePath string) (PathPattern, bool) {
	p := strings.TrimSuffix(Normalize(relativePath), "/")
	if pattern, ok := f.MatchIgnore(p); ok {
		return pattern, true
	}
	return f.MatchIgnore(p + "/")
}

// MatchIgnore returns the first ignore pattern matching the path.
func (f *Filter) MatchIgnore(relativePath string) (PathPattern, bool) {
	p := Normalize(relativePath)
	for _, pattern := range f.ignore {
		if pattern.Match(p) {
			return pattern, true
		}
	}
	return PathPattern{}, false
}

// IsKept reports whether an advisory keep pattern matches the path.
func (f *Filter) IsKept(relativePath string) bool {
	p := Normalize(relativePath)
	for _, pattern := range f.keep {
		if pattern.Match(p) {
			return true
		}
	}
	return false
}

// IgnorePatterns returns the compiled ignore patterns in order.
func (f *Filter) IgnorePatterns() []PathPattern {
	return append([]PathPattern(nil), f.ignore...)
}

// KeepPatterns returns the compiled keep patterns in order.
func (f *Filter) KeepPatterns() []PathPattern {
	return append([]PathPattern(nil), f.keep...)
}
