package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/irsanai/repoprep/internal/pathfilter"
	"github.com/irsanai/repoprep/internal/rules"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "repoprep"

	// DefaultManagedDir is the project's metadata directory. Reports and
	// feedback live below it.
	DefaultManagedDir = rules.DefaultManagedDir

	// DefaultReportsDir is the report directory below the managed directory.
	DefaultReportsDir = "Reports"

	// DefaultAnalyzeFirstLimit caps the analyze-first list.
	DefaultAnalyzeFirstLimit = 3

	// DefaultMaxContentSize is the largest file a rule predicate may load.
	DefaultMaxContentSize = rules.DefaultMaxContentSize

	// DefaultLogFile is written in the project root unless disabled.
	DefaultLogFile = "IrsanAI_scanner.log"

	// DefaultOnPredicateError keeps predicate failures silent.
	DefaultOnPredicateError = string(rules.PolicySkip)
)

// DefaultPriorityFiles are matched as substrings of kept paths, in order,
// when feedback names no critical files.
var DefaultPriorityFiles = []string{
	"README.md",
	"LRP_v1.2_Core_Specification.md",
	"IrsanAI_OS_HW_Detector.py",
	"web-tool/index.html",
	"HUMAN-AI_SYNERGY.md",
}

// Config holds every option of a scan. It is built from defaults, the
// optional YAML file and CLI flags, and then passed explicitly to each
// component.
type Config struct {
	// Root is the project directory to scan.
	Root string

	// ConfigFilePath is the explicitly requested YAML file, if any.
	ConfigFilePath string

	// ManagedDir is the metadata directory relative to Root.
	ManagedDir string

	// IgnorePatterns are the effective ignore patterns in order:
	// the defaults followed by any extra patterns from the config file.
	IgnorePatterns []string

	// KeepPatterns are the advisory keep patterns.
	KeepPatterns []string

	// RequiredGitignoreEntries must all appear in .gitignore.
	RequiredGitignoreEntries []string

	// PriorityFiles drive the default analyze-first ordering.
	PriorityFiles []string

	// CriticalFiles must exist in the project.
	CriticalFiles []rules.CriticalFile

	// OnPredicateError is "skip" or "report".
	OnPredicateError string

	// AnalyzeFirstLimit caps the analyze-first list.
	AnalyzeFirstLimit int

	// MaxContentSize caps the bytes read per file for content rules.
	MaxContentSize int64

	// LogFile is the transcript log path relative to Root.
	// Empty disables the file sink.
	LogFile string

	// Verbose enables debug logging.
	Verbose bool

	// JSONReport prints the report as JSON. Mutually exclusive with
	// MarkdownReport.
	JSONReport bool

	// MarkdownReport prints the report as Markdown.
	MarkdownReport bool

	// ReportFile redirects the printed report to a file.
	ReportFile string

	// Remediation also writes the remediation plan artifact.
	Remediation bool

	// Progress shows a spinner during the walk.
	Progress bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:                     ".",
		ManagedDir:               DefaultManagedDir,
		IgnorePatterns:           append([]string(nil), pathfilter.DefaultIgnorePatterns...),
		KeepPatterns:             append([]string(nil), pathfilter.DefaultKeepPatterns...),
		RequiredGitignoreEntries: append([]string(nil), rules.DefaultRequiredGitignoreEntries...),
		PriorityFiles:            append([]string(nil), DefaultPriorityFiles...),
		CriticalFiles:            append([]rules.CriticalFile(nil), rules.DefaultCriticalFiles...),
		OnPredicateError:         DefaultOnPredicateError,
		AnalyzeFirstLimit:        DefaultAnalyzeFirstLimit,
		MaxContentSize:           DefaultMaxContentSize,
		LogFile:                  DefaultLogFile,
	}
}

// XDGConfigDir returns the XDG config directory for repoprep.
// On Linux: ~/.config/repoprep
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ReportsDir returns the absolute-or-relative directory for report artifacts.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.Root, filepath.FromSlash(c.ManagedDir), DefaultReportsDir)
}

// LogFilePath returns the transcript log path, or "" when disabled.
// Relative log paths are resolved against Root.
func (c *Config) LogFilePath() string {
	if c.LogFile == "" {
		return ""
	}
	if filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.Root, c.LogFile)
}

// Policy returns the parsed predicate error policy.
func (c *Config) Policy() (rules.Policy, error) {
	p, err := rules.ParsePolicy(c.OnPredicateError)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPredicatePolicy, err)
	}
	return p, nil
}

// Filter compiles the configured patterns. Report and feedback directories
// below ManagedDir are always ignored.
func (c *Config) Filter() (*pathfilter.Filter, error) {
	ignore := append(append([]string(nil), c.IgnorePatterns...),
		pathfilter.ArtifactPatterns(c.ManagedDir, rules.DefaultArtifactDirs...)...)
	f, err := pathfilter.New(ignore, c.KeepPatterns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return f, nil
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrEmptyRoot
	}
	if c.ManagedDir == "" {
		return ErrEmptyManagedDir
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.AnalyzeFirstLimit <= 0 {
		return ErrInvalidAnalyzeFirstLimit
	}
	if c.MaxContentSize < 0 {
		return ErrInvalidMaxContentSize
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.Filter(); err != nil {
		return err
	}
	return nil
}
