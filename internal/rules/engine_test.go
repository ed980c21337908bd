package rules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/irsanai/repoprep/internal/anonymize"
	"github.com/irsanai/repoprep/internal/model"
	"github.com/irsanai/repoprep/internal/pathfilter"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
}

func fileRecords(paths ...string) []model.FileRecord {
	out := make([]model.FileRecord, 0, len(paths))
	for _, p := range paths {
		out = append(out, model.FileRecord{RelativePath: p, Name: filepath.Base(p)})
	}
	return out
}

func testOptions() Options {
	return Options{
		Filter: pathfilter.NewDefault(),
		Masker: anonymize.NewMasker("", anonymize.POSIXPlaceholder),
	}
}

func violationIDs(vs []model.RuleViolation) []string {
	ids := make([]string, 0, len(vs))
	for _, v := range vs {
		ids = append(ids, v.RuleID)
	}
	return ids
}

// TestManagedDirRule tests the managed directory structure check.
func TestManagedDirRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		files     map[string]string
		extraDir  string
		wantCount int
	}{
		{
			name:  "only allow-listed files",
			files: map[string]string{".IrsanAI/.gitkeep": "", ".IrsanAI/README.md": "# meta"},
		},
		{
			name:      "extra subdirectory",
			files:     map[string]string{".IrsanAI/.gitkeep": "", ".IrsanAI/README.md": "# meta"},
			extraDir:  ".IrsanAI/cache",
			wantCount: 1,
		},
		{
			name:      "extra files and directories still one violation",
			files:     map[string]string{".IrsanAI/notes.txt": "x", ".IrsanAI/todo.md": "y"},
			extraDir:  ".IrsanAI/old",
			wantCount: 1,
		},
		{
			name:     "tool artifact directory is exempt",
			files:    map[string]string{".IrsanAI/.gitkeep": ""},
			extraDir: ".IrsanAI/Reports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := t.TempDir()
			if err := os.MkdirAll(filepath.Join(root, ".IrsanAI"), 0o750); err != nil {
				t.Fatal(err)
			}
			writeFiles(t, root, tt.files)
			if tt.extraDir != "" {
				if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(tt.extraDir)), 0o750); err != nil {
					t.Fatal(err)
				}
			}

			rule := BuiltinRules(testOptions())[0]
			got, err := NewEngine().Evaluate(context.Background(), []Rule{rule}, Target{
				Root: root,
				Dirs: []model.DirectoryRecord{{RelativePath: ".IrsanAI", Name: ".IrsanAI"}},
			})
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("got %d violations, want %d: %+v", len(got), tt.wantCount, got)
			}
			for _, v := range got {
				if v.Severity != model.SeverityWarning {
					t.Errorf("Severity = %v, want WARNING", v.Severity)
				}
				if v.Category != model.CategoryStructure {
					t.Errorf("Category = %q, want structure", v.Category)
				}
			}
		})
	}
}

// TestRequiredEntriesRule tests that each missing entry is named once.
func TestRequiredEntriesRule(t *testing.T) {
	t.Parallel()

	var lines []string
	for _, e := range DefaultRequiredGitignoreEntries {
		if e != "*.bak" {
			lines = append(lines, e)
		}
	}

	root := t.TempDir()
	writeFiles(t, root, map[string]string{".gitignore": strings.Join(lines, "\n") + "\n"})

	rule := BuiltinRules(testOptions())[1]
	got, err := NewEngine().Evaluate(context.Background(), []Rule{rule}, Target{
		Root:  root,
		Files: fileRecords(".gitignore"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d violations, want 1", len(got))
	}
	if got[0].Detail != "missing entries: *.bak" {
		t.Errorf("Detail = %q, want it to name *.bak only", got[0].Detail)
	}
	if got[0].Severity != model.SeverityError {
		t.Errorf("Severity = %v, want ERROR", got[0].Severity)
	}
}

// TestMissingGitignoreEntries tests entry matching.
func TestMissingGitignoreEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		required []string
		want     []string
	}{
		{
			name:     "all present",
			content:  "*.pyc\n__pycache__/\n",
			required: []string{"*.pyc", "__pycache__"},
		},
		{
			name:     "comments do not count",
			content:  "# *.log\n*.tmp\n",
			required: []string{"*.log", "*.tmp"},
			want:     []string{"*.log"},
		},
		{
			name:     "crlf line endings",
			content:  ".idea\r\n.venv\r\n",
			required: []string{".idea", ".venv", ".DS_Store"},
			want:     []string{".DS_Store"},
		},
		{
			name:     "prefix of another entry is not a match",
			content:  "*.bak2\n",
			required: []string{"*.bak"},
			want:     []string{"*.bak"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := MissingGitignoreEntries(tt.content, tt.required); !slices.Equal(got, tt.want) {
				t.Errorf("MissingGitignoreEntries() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestExclusionRule tests the defense-in-depth exclusion check.
func TestExclusionRule(t *testing.T) {
	t.Parallel()

	rule := BuiltinRules(testOptions())[2]
	got, err := NewEngine().Evaluate(context.Background(), []Rule{rule}, Target{
		Root:  t.TempDir(),
		Files: fileRecords("README.md", "debug.log"),
		Dirs:  []model.DirectoryRecord{{RelativePath: "src"}, {RelativePath: "build"}, {RelativePath: "src.bak"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	for _, v := range got {
		paths = append(paths, v.Path)
	}
	if !slices.Equal(paths, []string{"build", "src.bak", "debug.log"}) {
		t.Errorf("violation paths = %v, want [build src.bak debug.log]", paths)
	}
	if got[1].Detail != `matches ignore pattern \.bak$` {
		t.Errorf("Detail = %q", got[1].Detail)
	}
}

// TestEnginePolicy tests fail-open and fail-closed predicate handling.
func TestEnginePolicy(t *testing.T) {
	t.Parallel()

	failing := []Rule{
		{
			ID:        "test.error",
			Category:  model.CategoryStructure,
			Selector:  regexp.MustCompile(`\.md$`),
			Predicate: func(Input) (bool, error) { return false, errors.New("boom") },
			Severity:  model.SeverityError,
		},
		{
			ID:        "test.panic",
			Category:  model.CategoryStructure,
			Selector:  regexp.MustCompile(`\.md$`),
			Predicate: func(Input) (bool, error) { panic("unexpected") },
			Severity:  model.SeverityError,
		},
	}
	target := Target{Root: t.TempDir(), Files: fileRecords("a.md")}

	t.Run("skip emits nothing", func(t *testing.T) {
		t.Parallel()
		got, err := NewEngine(WithPolicy(PolicySkip)).Evaluate(context.Background(), failing, target)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 0 {
			t.Errorf("got %d violations, want 0", len(got))
		}
	})

	t.Run("report emits one per failure", func(t *testing.T) {
		t.Parallel()
		got, err := NewEngine(WithPolicy(PolicyReport)).Evaluate(context.Background(), failing, target)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(violationIDs(got), []string{"test.error", "test.panic"}) {
			t.Fatalf("violations = %v", violationIDs(got))
		}
		if !strings.Contains(got[1].Detail, ErrPredicatePanic.Error()) {
			t.Errorf("Detail = %q, want panic marker", got[1].Detail)
		}
	})
}

// TestEngineRootRule tests that root rules run exactly once.
func TestEngineRootRule(t *testing.T) {
	t.Parallel()

	calls := 0
	rule := Rule{
		ID:       "test.root",
		Selector: regexp.MustCompile(`^$`),
		Predicate: func(in Input) (bool, error) {
			calls++
			if in.Path != "" || !in.IsDir {
				t.Errorf("root input = %+v", in)
			}
			return false, nil
		},
	}

	got, err := NewEngine().Evaluate(context.Background(), []Rule{rule}, Target{
		Root:  t.TempDir(),
		Files: fileRecords("a.md", "b.md"),
		Dirs:  []model.DirectoryRecord{{RelativePath: "x"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 || len(got) != 1 {
		t.Errorf("calls = %d, violations = %d, want 1 and 1", calls, len(got))
	}
}

// TestEngineContentLoading tests that content is loaded once per file and
// only for rules that need it.
func TestEngineContentLoading(t *testing.T) {
	t.Parallel()

	loads := 0
	loader := LoaderFunc(func(string) Content {
		loads++
		return Content{Text: "hello", Loaded: true}
	})

	needs := func(id string) Rule {
		return Rule{
			ID:           id,
			Selector:     regexp.MustCompile(`\.txt$`),
			NeedsContent: true,
			Predicate: func(in Input) (bool, error) {
				return in.Text == "hello", nil
			},
		}
	}
	noContent := Rule{
		ID:       "test.none",
		Selector: regexp.MustCompile(`\.txt$`),
		Predicate: func(in Input) (bool, error) {
			return !in.Loaded, nil
		},
	}

	got, err := NewEngine().Evaluate(context.Background(),
		[]Rule{needs("a"), needs("b"), noContent},
		Target{Root: t.TempDir(), Files: fileRecords("x.txt"), Loader: loader})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("violations = %v, want none", violationIDs(got))
	}
	if loads != 1 {
		t.Errorf("loads = %d, want 1", loads)
	}
}

// TestEngineCanceled tests context cancellation.
func TestEngineCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine().Evaluate(ctx, BuiltinRules(testOptions()), Target{Root: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

// TestParsePolicy tests policy parsing.
func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"", PolicySkip, false},
		{"skip", PolicySkip, false},
		{"REPORT", PolicyReport, false},
		{"explode", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownPolicy) {
				t.Errorf("ParsePolicy(%q) error = %v, want ErrUnknownPolicy", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

// TestFileLoader tests size capping and decoding.
func TestFileLoader(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"small.txt": "caf\xe9",
		"big.txt":   strings.Repeat("x", 64),
	})

	l := NewFileLoader(32)

	small := l.Load(filepath.Join(root, "small.txt"))
	if !small.Loaded || small.Text != "café" {
		t.Errorf("small = %+v", small)
	}
	if big := l.Load(filepath.Join(root, "big.txt")); big.Loaded {
		t.Error("big file should not load")
	}
	if missing := l.Load(filepath.Join(root, "nope.txt")); missing.Loaded {
		t.Error("missing file should not load")
	}
}

// TestCategories tests rank ordering of rule categories.
func TestCategories(t *testing.T) {
	t.Parallel()

	got := Categories(DefaultRules(testOptions()))
	want := []model.Category{
		model.CategoryStructure,
		model.CategoryGitignore,
		model.CategoryExclusion,
		model.CategoryPrivacy,
		model.CategorySecrets,
		model.CategoryWebUI,
		model.CategoryDocumentation,
	}
	if !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}
