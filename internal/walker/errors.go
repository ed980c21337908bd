package walker

import "errors"

var (
	// ErrRootNotFound is returned when the project root does not exist.
	ErrRootNotFound = errors.New("project root not found")

	// ErrRootNotDirectory is returned when the project root is a file.
	ErrRootNotDirectory = errors.New("project root is not a directory")

	// ErrRootUnreadable is returned when the root directory cannot be listed.
	ErrRootUnreadable = errors.New("project root is unreadable")
)
