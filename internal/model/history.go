package model

import "time"

// ScanHistoryEntry is the compact per-run summary appended to the history.
type ScanHistoryEntry struct {
	Timestamp         time.Time        `json:"timestamp"`
	FileCount         int              `json:"file_count"`
	AnalyzeFirstCount int              `json:"analyze_first_count"`
	ViolationSummary  map[Category]int `json:"violation_summary"`
}

// TotalViolations sums the per-category counts.
func (e ScanHistoryEntry) TotalViolations() int {
	total := 0
	for _, n := range e.ViolationSummary {
		total += n
	}
	return total
}

// ScanHistory is the oldest-first, append-only sequence of runs.
type ScanHistory []ScanHistoryEntry

// Latest returns the most recent entry and false if the history is empty.
func (h ScanHistory) Latest() (ScanHistoryEntry, bool) {
	if len(h) == 0 {
		return ScanHistoryEntry{}, false
	}
	return h[len(h)-1], true
}
