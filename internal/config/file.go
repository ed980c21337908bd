package config

import (
	"github.com/irsanai/repoprep/internal/rules"
)

// File is the structure of the .repoprep YAML file. Every field is
// optional; zero values leave the corresponding default in place.
type File struct {
	// ExtraIgnorePatterns are appended to the default ignore patterns.
	ExtraIgnorePatterns []string `yaml:"extraIgnorePatterns,omitempty"`

	// KeepPatterns replace the default advisory keep patterns.
	KeepPatterns []string `yaml:"keepPatterns,omitempty"`

	// RequiredGitignoreEntries replace the default required entries.
	RequiredGitignoreEntries []string `yaml:"requiredGitignoreEntries,omitempty"`

	// PriorityFiles replace the default analyze-first priorities.
	PriorityFiles []string `yaml:"priorityFiles,omitempty"`

	// CriticalFiles replace the default critical file list.
	CriticalFiles []rules.CriticalFile `yaml:"criticalFiles,omitempty"`

	// OnPredicateError is "skip" or "report".
	OnPredicateError string `yaml:"onPredicateError,omitempty"`

	// AnalyzeFirstLimit overrides the analyze-first cap.
	AnalyzeFirstLimit int `yaml:"analyzeFirstLimit,omitempty"`

	// MaxContentSize overrides the per-file content cap in bytes.
	MaxContentSize int64 `yaml:"maxContentSize,omitempty"`

	// ManagedDir overrides the metadata directory name.
	ManagedDir string `yaml:"managedDir,omitempty"`

	// LogFile overrides the log file. An explicit empty string disables it.
	LogFile *string `yaml:"logFile,omitempty"`
}

// Apply merges the file into cfg. Lists replace defaults, except
// ExtraIgnorePatterns which extend them.
func (f *File) Apply(cfg *Config) {
	if f == nil {
		return
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, f.ExtraIgnorePatterns...)
	if len(f.KeepPatterns) > 0 {
		cfg.KeepPatterns = f.KeepPatterns
	}
	if len(f.RequiredGitignoreEntries) > 0 {
		cfg.RequiredGitignoreEntries = f.RequiredGitignoreEntries
	}
	if len(f.PriorityFiles) > 0 {
		cfg.PriorityFiles = f.PriorityFiles
	}
	if len(f.CriticalFiles) > 0 {
		cfg.CriticalFiles = f.CriticalFiles
	}
	if f.OnPredicateError != "" {
		cfg.OnPredicateError = f.OnPredicateError
	}
	if f.AnalyzeFirstLimit != 0 {
		cfg.AnalyzeFirstLimit = f.AnalyzeFirstLimit
	}
	if f.MaxContentSize != 0 {
		cfg.MaxContentSize = f.MaxContentSize
	}
	if f.ManagedDir != "" {
		cfg.ManagedDir = f.ManagedDir
	}
	if f.LogFile != nil {
		cfg.LogFile = *f.LogFile
	}
}
