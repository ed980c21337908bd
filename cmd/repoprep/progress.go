package main

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/irsanai/repoprep/internal/walker"
)

// newProgress returns a walk callback that advances a spinner on w, and a
// function that stops the spinner. When disabled both are no-ops.
func newProgress(w io.Writer, enabled bool) (walker.ProgressFunc, func()) {
	if !enabled {
		return nil, func() {}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetVisibility(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionClearOnFinish(),
	)

	tick := func(string) {
		_ = bar.Add(1)
	}
	stop := func() {
		_ = bar.Finish()
	}
	return tick, stop
}
