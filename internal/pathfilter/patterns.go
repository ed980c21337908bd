package pathfilter

import (
	"regexp"
	"strings"
)

// DefaultIgnorePatterns excludes editor state, caches, build output,
// virtual environments, temporary files, OS metadata, local secrets,
// logs, backups and the scanner's own log files.
// Patterns use search semantics over the slash-separated relative path.
var DefaultIgnorePatterns = []string{
	// Version control
	`\.git/.*`,

	// IDE state
	`\.idea/.*`,
	`\.vscode/.*`,
	`\.project$`,
	`\.c9/.*`,
	`\.metadata/.*`,

	// Build and cache output
	`__pycache__/.*`,
	`\.pytest_cache/.*`,
	`\.mypy_cache/.*`,
	`build/.*`,
	`dist/.*`,
	`\.egg-info/.*`,

	// Virtual environments
	`venv/.*`,
	`env/.*`,
	`virtualenv/.*`,
	`\.venv/.*`,

	// Temporary files
	`\.tmp/.*`,
	`\.temp/.*`,
	`\.tmp$`,
	`\.swp$`,
	`\.swo$`,
	`~$`,

	// Operating system metadata
	`Desktop\.ini$`,
	`Thumbs\.db$`,
	`\.DS_Store$`,

	// Local configuration
	`\.env$`,
	`\.env\.local$`,
	`\.env\.development$`,
	`\.env\.production$`,

	// Logs
	`\.logs?/.*`,
	`\.log$`,

	// Local backups
	`\.bak$`,
	`\.backup$`,
	`\.old$`,

	// JetBrains and notebook caches
	`\.cache/.*`,
	`\.local/JetBrains/.*`,
	`cpython-cache/.*`,
	`\.ipynb_checkpoints/.*`,
	`\.jupyter/.*`,

	// Scanner logs. Report and feedback directories follow the managed
	// directory, see ArtifactPatterns.
	`IrsanAI_github_optimizer\.log$`,
	`IrsanAI_scanner\.log$`,
}

// DefaultKeepPatterns lists paths expected in a published repository.
// The list is advisory: IsIgnored never consults it.
var DefaultKeepPatterns = []string{
	`^\.gitignore$`,
	`^README\.md$`,
	`^LICENSE$`,
	`^requirements\.txt$`,
	`^pyproject\.toml$`,
	`^setup\.py$`,
	`^IrsanAI_.*\.py$`,
	`^\.IrsanAI/\.gitkeep$`,
	`^\.IrsanAI/README\.md$`,
	`^docs/.*`,
	`^tests/.*`,
	`^game_assets/.*`,
	`^\.github/.*`,
	`^web-tool/.*`,
	`^lrp-protocol/.*`,
}

// defaultArtifactPatterns cover the stock managed directory layout.
var defaultArtifactPatterns = ArtifactPatterns(".IrsanAI", "Reports", "Feedback")

// ArtifactPatterns returns anchored ignore patterns for the given
// subdirectories of the managed directory, so scanner output under it is
// never scanned.
func ArtifactPatterns(managedDir string, subdirs ...string) []string {
	base := strings.Trim(Normalize(managedDir), "/")
	out := make([]string, 0, len(subdirs))
	for _, sub := range subdirs {
		out = append(out, "^"+regexp.QuoteMeta(base+"/"+strings.Trim(Normalize(sub), "/")+"/"))
	}
	return out
}
