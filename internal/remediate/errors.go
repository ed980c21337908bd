package remediate

import "errors"

var (
	// ErrOutsideRoot is returned when a plan entry resolves outside the project root.
	ErrOutsideRoot = errors.New("path is outside the project root")

	// ErrUpdateGitignore is returned when .gitignore cannot be written.
	ErrUpdateGitignore = errors.New("failed to update .gitignore")

	// ErrRemove is returned when a planned file or directory cannot be removed.
	ErrRemove = errors.New("failed to remove path")
)
