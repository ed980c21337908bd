package pipeline

import "errors"

var (
	// ErrStepOrder is returned when a step runs before the step whose output it needs.
	ErrStepOrder = errors.New("step is missing the output of an earlier step")
)
