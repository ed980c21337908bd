package report

import "errors"

var (
	// ErrCreateReportDir is returned when the report directory cannot be created.
	ErrCreateReportDir = errors.New("failed to create report directory")

	// ErrWriteReport is returned when the current report cannot be written.
	ErrWriteReport = errors.New("failed to write current report")

	// ErrWriteHistory is returned when the scan history cannot be written.
	ErrWriteHistory = errors.New("failed to write scan history")

	// ErrWriteRemediation is returned when the remediation plan cannot be written.
	ErrWriteRemediation = errors.New("failed to write remediation plan")
)
