package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestSeverityString tests the String method of Severity.
func TestSeverityString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		severity Severity
		expected string
	}{
		{SeverityWarning, "WARNING"},
		{SeverityError, "ERROR"},
		{Severity(99), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.severity.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.severity.String(), tc.expected)
			}
		})
	}
}

// TestSeverityJSON tests that severities serialize as lower-case labels.
func TestSeverityJSON(t *testing.T) {
	t.Parallel()

	t.Run("marshals lower-case label", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(RuleViolation{Severity: SeverityError})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if raw["severity"] != "error" {
			t.Errorf("expected severity %q, got %v", "error", raw["severity"])
		}
	})

	t.Run("unmarshals case-insensitively", func(t *testing.T) {
		t.Parallel()

		var v RuleViolation
		if err := json.Unmarshal([]byte(`{"severity":"WARNING"}`), &v); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v.Severity != SeverityWarning {
			t.Errorf("expected WARNING, got %s", v.Severity)
		}
	})

	t.Run("rejects unknown label", func(t *testing.T) {
		t.Parallel()

		var v RuleViolation
		if err := json.Unmarshal([]byte(`{"severity":"fatal"}`), &v); err == nil {
			t.Error("expected error for unknown severity")
		}
	})
}

// TestSortCategories tests deterministic category ordering.
func TestSortCategories(t *testing.T) {
	t.Parallel()

	got := SortCategories([]Category{
		CategoryDocumentation,
		Category("zz_custom"),
		CategoryGitignore,
		CategoryStructure,
		Category("aa_custom"),
		CategoryPrivacy,
	})
	want := []Category{
		CategoryStructure,
		CategoryGitignore,
		CategoryPrivacy,
		CategoryDocumentation,
		Category("aa_custom"),
		Category("zz_custom"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestDirectoryTreeInsert tests building the nested directory view.
func TestDirectoryTreeInsert(t *testing.T) {
	t.Parallel()

	tree := DirectoryTree{}
	tree.Insert("docs")
	tree.Insert("docs/api")
	tree.Insert("web-tool/assets/img")
	tree.Insert("")

	want := DirectoryTree{
		"docs": {"api": {}},
		"web-tool": {
			"assets": {"img": {}},
		},
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("got %v, want %v", tree, want)
	}

	paths := tree.Paths()
	wantPaths := []string{"docs", "docs/api", "web-tool", "web-tool/assets", "web-tool/assets/img"}
	if !reflect.DeepEqual(paths, wantPaths) {
		t.Errorf("got %v, want %v", paths, wantPaths)
	}
}

// TestFileRecordSizeKB tests kilobyte rounding.
func TestFileRecordSizeKB(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int64
		want float64
	}{
		{0, 0},
		{-1, 0},
		{1024, 1},
		{1536, 1.5},
		{1000, 0.98},
	}

	for _, tt := range tests {
		if got := (FileRecord{SizeBytes: tt.size}).SizeKB(); got != tt.want {
			t.Errorf("SizeKB(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

// TestFeedbackRecommendationsUnmarshal tests both accepted key spellings.
func TestFeedbackRecommendationsUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "snake_case key",
			input: `{"recommendations":{"critical_files":["README.md"]}}`,
			want:  []string{"README.md"},
		},
		{
			name:  "camelCase key",
			input: `{"recommendations":{"criticalFiles":["a.md","b.md"]}}`,
			want:  []string{"a.md", "b.md"},
		},
		{
			name:  "snake_case wins when both present",
			input: `{"recommendations":{"critical_files":["x"],"criticalFiles":["y"]}}`,
			want:  []string{"x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rec FeedbackRecord
			if err := json.Unmarshal([]byte(tt.input), &rec); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(rec.Recommendations.CriticalFiles, tt.want) {
				t.Errorf("got %v, want %v", rec.Recommendations.CriticalFiles, tt.want)
			}
		})
	}
}

// TestReportCounts tests violation aggregation helpers.
func TestReportCounts(t *testing.T) {
	t.Parallel()

	r := &Report{
		Violations: []CategoryViolations{
			{Category: CategoryStructure, Violations: []RuleViolation{{Severity: SeverityWarning}}},
			{Category: CategoryGitignore, Violations: []RuleViolation{{Severity: SeverityError}, {Severity: SeverityError}}},
			{Category: CategoryPrivacy, Violations: []RuleViolation{}},
		},
	}

	if got := r.TotalViolations(); got != 3 {
		t.Errorf("TotalViolations() = %d, want 3", got)
	}
	if got := r.CountBySeverity(SeverityError); got != 2 {
		t.Errorf("CountBySeverity(ERROR) = %d, want 2", got)
	}
	if got := len(r.ViolationsFor(CategoryGitignore)); got != 2 {
		t.Errorf("ViolationsFor(gitignore) = %d, want 2", got)
	}
	if r.ViolationsFor(CategorySecrets) != nil {
		t.Error("expected nil for absent category")
	}
	if !r.HasViolations() {
		t.Error("expected HasViolations to be true")
	}
}
