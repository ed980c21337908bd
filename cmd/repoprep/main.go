// Package main provides the entry point for the repoprep CLI.
//
// repoprep checks a project tree against publication hygiene rules
// (.gitignore completeness, leaked home paths, key material, required
// documentation) and writes a machine-readable report next to it.
//
// Usage:
//
//	repoprep scan
//	repoprep scan --root ./project --markdown
//	repoprep prepare --apply
//
// See --help for all available options.
package main

// main is the entry point for repoprep.
func main() {
	Execute()
}
