package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/irsanai/repoprep/internal/report"
)

// TestRunPrepareCmd tests the dry run and the applied remediation.
func TestRunPrepareCmd(t *testing.T) {
	t.Parallel()

	t.Run("dry run changes nothing", func(t *testing.T) {
		t.Parallel()
		root := sampleProject(t)

		stdout, _, err := executeCommand(t, "prepare", "--root", root, "--progress")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Would remove notes.bak", "Would add to .gitignore", "__pycache__", "--apply"} {
			if !strings.Contains(stdout, want) {
				t.Errorf("expected output to contain %q, got %q", want, stdout)
			}
		}

		if _, err := os.Stat(filepath.Join(root, "notes.bak")); err != nil {
			t.Errorf("dry run removed notes.bak: %v", err)
		}
		data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "*.pyc\n" {
			t.Errorf("dry run changed .gitignore: %q", data)
		}
		if _, err := os.Stat(filepath.Join(root, ".IrsanAI", "Reports", report.RemediationFile)); err != nil {
			t.Errorf("expected remediation plan: %v", err)
		}
	})

	t.Run("apply fixes the project", func(t *testing.T) {
		t.Parallel()
		root := sampleProject(t)
		writeProject(t, root, map[string]string{
			".IrsanAI/README.md":  "metadata\n",
			".IrsanAI/scratch.md": "leftover\n",
		})

		stdout, _, err := executeCommand(t, "prepare", "--root", root, "--apply")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "applied") {
			t.Errorf("unexpected output %q", stdout)
		}

		if _, err := os.Stat(filepath.Join(root, "notes.bak")); !errors.Is(err, os.ErrNotExist) {
			t.Error("expected notes.bak to be removed")
		}
		if _, err := os.Stat(filepath.Join(root, ".IrsanAI", "scratch.md")); !errors.Is(err, os.ErrNotExist) {
			t.Error("expected managed directory extra to be removed")
		}
		for _, keep := range []string{".IrsanAI/README.md", ".IrsanAI/Reports/current_scan.json"} {
			if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(keep))); err != nil {
				t.Errorf("expected %s to remain: %v", keep, err)
			}
		}

		data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(data), "*.pyc\n") || !strings.Contains(string(data), "__pycache__") {
			t.Errorf(".gitignore = %q", data)
		}
	})

	t.Run("second apply has nothing to do", func(t *testing.T) {
		t.Parallel()
		root := sampleProject(t)

		if _, _, err := executeCommand(t, "prepare", "--root", root, "--apply"); err != nil {
			t.Fatal(err)
		}
		stdout, _, err := executeCommand(t, "prepare", "--root", root, "--apply")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(stdout, "Nothing to fix.") {
			t.Errorf("expected nothing to fix, got %q", stdout)
		}
	})
}
