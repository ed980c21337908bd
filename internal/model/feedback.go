package model

import "encoding/json"

// FeedbackRecord is the externally produced review feedback.
// It is read-only input and never written by the scanner.
type FeedbackRecord struct {
	Recommendations FeedbackRecommendations `json:"recommendations"`
	Metadata        FeedbackMetadata        `json:"metadata"`
}

// FeedbackRecommendations holds the reviewer's prioritization hints.
type FeedbackRecommendations struct {
	// CriticalFiles lists relative paths the reviewer wants analyzed first.
	CriticalFiles []string `json:"critical_files,omitempty"`
}

// UnmarshalJSON accepts both "critical_files" and "criticalFiles".
// When both are present the snake_case key wins.
func (r *FeedbackRecommendations) UnmarshalJSON(data []byte) error {
	var raw struct {
		Snake []string `json:"critical_files"`
		Camel []string `json:"criticalFiles"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.CriticalFiles = raw.Snake
	if len(r.CriticalFiles) == 0 {
		r.CriticalFiles = raw.Camel
	}
	return nil
}

// FeedbackMetadata describes the feedback artifact.
type FeedbackMetadata struct {
	Timestamp string `json:"timestamp,omitempty"`
}

// IsEmpty reports whether the record carries no information.
func (f FeedbackRecord) IsEmpty() bool {
	return len(f.Recommendations.CriticalFiles) == 0 && f.Metadata.Timestamp == ""
}
