package feedback

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// TestLoad tests loading and tolerance of broken artifacts.
func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		content       *string
		wantFiles     []string
		wantTimestamp string
		wantWarning   bool
	}{
		{
			name:      "missing file",
			content:   nil,
			wantFiles: nil,
		},
		{
			name:          "snake case keys",
			content:       ptr(`{"recommendations":{"critical_files":["README.md","web-tool/index.html"]},"metadata":{"timestamp":"2024-01-02T03:04:05"}}`),
			wantFiles:     []string{"README.md", "web-tool/index.html"},
			wantTimestamp: "2024-01-02T03:04:05",
		},
		{
			name:      "camel case alias",
			content:   ptr(`{"recommendations":{"criticalFiles":["HUMAN-AI_SYNERGY.md"]}}`),
			wantFiles: []string{"HUMAN-AI_SYNERGY.md"},
		},
		{
			name:        "malformed json",
			content:     ptr(`{"recommendations":`),
			wantWarning: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), DefaultFileName)
			if tt.content != nil {
				if err := os.WriteFile(path, []byte(*tt.content), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			got := Load(path, logger)
			if !slices.Equal(got.Recommendations.CriticalFiles, tt.wantFiles) {
				t.Errorf("CriticalFiles = %v, want %v", got.Recommendations.CriticalFiles, tt.wantFiles)
			}
			if got.Metadata.Timestamp != tt.wantTimestamp {
				t.Errorf("Timestamp = %q, want %q", got.Metadata.Timestamp, tt.wantTimestamp)
			}
			if warned := strings.Contains(buf.String(), "level=WARN"); warned != tt.wantWarning {
				t.Errorf("warning logged = %v, want %v; log: %s", warned, tt.wantWarning, buf.String())
			}
		})
	}
}

// TestPath tests the artifact location.
func TestPath(t *testing.T) {
	t.Parallel()

	got := Path("/project", ".IrsanAI")
	want := filepath.Join("/project", ".IrsanAI", "Feedback", "online_feedback.json")
	if got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func ptr(s string) *string {
	return &s
}
