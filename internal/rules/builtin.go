package rules

import (
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/pathfilter"
)

// Default values for Options.
const (
	DefaultManagedDir = ".IrsanAI"
)

var (
	// DefaultManagedDirAllowList are the only entries allowed in the
	// managed metadata directory.
	DefaultManagedDirAllowList = []string{".gitkeep", "README.md"}

	// DefaultArtifactDirs are the tool's own output directories below the
	// managed directory. They are exempt from the structure check.
	DefaultArtifactDirs = []string{"Reports", "Feedback"}

	// DefaultRequiredGitignoreEntries must all be present in .gitignore.
	DefaultRequiredGitignoreEntries = []string{
		"*.pyc",
		"__pycache__",
		".idea",
		".venv",
		"*.log",
		"*.tmp",
		"*.bak",
		"*.backup",
		"*.old",
		".DS_Store",
	}
)

// Options are the inputs the built-in and domain rules are built from.
type Options struct {
	// Filter is consulted by the exclusion compliance rule.
	Filter *pathfilter.Filter

	// Masker is consulted by the unmasked path rule.
	Masker *anonymize.Masker

	// ManagedDir is the relative path of the managed metadata directory.
	ManagedDir string

	// ManagedDirAllowList are the entries allowed in ManagedDir.
	ManagedDirAllowList []string

	// ArtifactDirs are subdirectories of ManagedDir the tool writes itself.
	ArtifactDirs []string

	// RequiredGitignoreEntries must all appear in .gitignore.
	RequiredGitignoreEntries []string

	// CriticalFiles are relative paths that must exist.
	CriticalFiles []string
}

// withDefaults fills empty fields.
func (o Options) withDefaults() Options {
	if o.Filter == nil {
		o.Filter = pathfilter.NewDefault()
	}
	if o.Masker == nil {
		o.Masker = anonymize.DefaultMasker()
	}
	if o.ManagedDir == "" {
		o.ManagedDir = DefaultManagedDir
	}
	if o.ManagedDirAllowList == nil {
		o.ManagedDirAllowList = DefaultManagedDirAllowList
	}
	if o.ArtifactDirs == nil {
		o.ArtifactDirs = DefaultArtifactDirs
	}
	if o.RequiredGitignoreEntries == nil {
		o.RequiredGitignoreEntries = DefaultRequiredGitignoreEntries
	}
	return o
}

// DefaultRules returns the built-in rules followed by the domain rules.
func DefaultRules(opts Options) []Rule {
	return append(BuiltinRules(opts), DomainRules(opts)...)
}

// BuiltinRules returns the three rules that are always present: the managed
// directory structure, .gitignore completeness and exclusion compliance.
func BuiltinRules(opts Options) []Rule {
	opts = opts.withDefaults()
	return []Rule{
		managedDirRule(opts),
		requiredEntriesRule(opts.RequiredGitignoreEntries),
		exclusionRule(opts.Filter),
	}
}

func managedDirRule(opts Options) Rule {
	allowed := append(append([]string(nil), opts.ManagedDirAllowList...), opts.ArtifactDirs...)
	extras := func(in Input) ([]string, error) {
		if !in.IsDir {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, in.Path)
		}
		entries, err := os.ReadDir(in.AbsPath)
		if err != nil {
			return nil, err
		}
		var out []string
		for _, e := range entries {
			if !slices.Contains(allowed, e.Name()) {
				out = append(out, e.Name())
			}
		}
		return out, nil
	}

	return Rule{
		ID:          "structure.managed-dir",
		Name:        "Managed directory layout",
		Description: fmt.Sprintf("%s/ may only contain %s", opts.ManagedDir, strings.Join(opts.ManagedDirAllowList, " and ")),
		Category:    model.CategoryStructure,
		Selector:    regexp.MustCompile("^" + regexp.QuoteMeta(opts.ManagedDir) + "$"),
		Predicate: func(in Input) (bool, error) {
			extra, err := extras(in)
			if err != nil {
				return false, err
			}
			return len(extra) == 0, nil
		},
		Severity:       model.SeverityWarning,
		Recommendation: fmt.Sprintf("Remove everything from %s/ except %s", opts.ManagedDir, strings.Join(opts.ManagedDirAllowList, " and ")),
		Detail: func(in Input) string {
			extra, _ := extras(in)
			return "unexpected entries: " + strings.Join(extra, ", ")
		},
	}
}

func requiredEntriesRule(required []string) Rule {
	return Rule{
		ID:          "gitignore.required-entries",
		Name:        "Complete .gitignore",
		Description: ".gitignore must exclude caches, IDE state, logs, temporary files and backups",
		Category:    model.CategoryGitignore,
		Selector:    regexp.MustCompile(`^\.gitignore$`),
		Predicate: func(in Input) (bool, error) {
			if in.IsDir || !in.Loaded {
				return true, nil
			}
			return len(MissingGitignoreEntries(in.Text, required)) == 0, nil
		},
		Severity:       model.SeverityError,
		Recommendation: "Add the missing entries to .gitignore",
		NeedsContent:   true,
		Detail: func(in Input) string {
			return "missing entries: " + strings.Join(MissingGitignoreEntries(in.Text, required), ", ")
		},
	}
}

func exclusionRule(filter *pathfilter.Filter) Rule {
	match := func(in Input) (pathfilter.PathPattern, bool) {
		if in.IsDir {
			return filter.MatchIgnoreDir(in.Path)
		}
		return filter.MatchIgnore(in.Path)
	}

	return Rule{
		ID:          "exclusion.compliance",
		Name:        "No excluded paths in the kept set",
		Description: "No kept path may match an ignore pattern",
		Category:    model.CategoryExclusion,
		Selector:    regexp.MustCompile(`.+`),
		Predicate: func(in Input) (bool, error) {
			_, matched := match(in)
			return !matched, nil
		},
		Severity:       model.SeverityError,
		Recommendation: "Remove the file from the repository or stop tracking it",
		Detail: func(in Input) string {
			p, _ := match(in)
			return "matches ignore pattern " + p.Source
		},
	}
}

// MissingGitignoreEntries returns the required entries not present in a
// .gitignore body, in required order. An entry counts as present when a
// non-comment line equals it, optionally with a leading or trailing slash.
func MissingGitignoreEntries(content string, required []string) []string {
	present := make(map[string]struct{})
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		present[strings.Trim(line, "/")] = struct{}{}
	}

	var missing []string
	for _, entry := range required {
		if _, ok := present[strings.Trim(entry, "/")]; !ok {
			missing = append(missing, entry)
		}
	}
	return missing
}
