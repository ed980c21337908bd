package report

import (
	"strings"

	"github.com/irsanai/repoprep/internal/model"
)

// AnalyzeFirst picks the files a reviewer should read first.
//
// When the feedback names critical files, those files are used in feedback
// order, restricted to files present in the scan and without duplicates.
// The result is empty when none of them is present. Only when the feedback
// names no critical files are files chosen in traversal order by the
// priority substrings. The result never exceeds limit entries.
func AnalyzeFirst(files []model.FileRecord, feedback model.FeedbackRecord, priority []string, limit int) []model.AnalyzeFirstEntry {
	if limit <= 0 {
		return []model.AnalyzeFirstEntry{}
	}

	var selected []model.FileRecord
	if critical := feedback.Recommendations.CriticalFiles; len(critical) > 0 {
		selected = fromFeedback(files, critical)
	} else {
		selected = fromPriority(files, priority)
	}
	if len(selected) > limit {
		selected = selected[:limit]
	}

	entries := make([]model.AnalyzeFirstEntry, 0, len(selected))
	for _, f := range selected {
		entries = append(entries, model.AnalyzeFirstEntry{
			Path:      f.RelativePath,
			Hash:      f.ContentHash,
			Extension: f.Extension,
			SizeKB:    f.SizeKB(),
		})
	}
	return entries
}

func fromFeedback(files []model.FileRecord, critical []string) []model.FileRecord {
	byPath := make(map[string]model.FileRecord, len(files))
	for _, f := range files {
		byPath[f.RelativePath] = f
	}

	seen := make(map[string]struct{}, len(critical))
	var out []model.FileRecord
	for _, p := range critical {
		p = normalizePath(p)
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if f, ok := byPath[p]; ok {
			out = append(out, f)
		}
	}
	return out
}

func fromPriority(files []model.FileRecord, priority []string) []model.FileRecord {
	var out []model.FileRecord
	for _, f := range files {
		for _, p := range priority {
			if strings.Contains(f.RelativePath, p) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// normalizePath makes feedback paths comparable with walk paths.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = strings.TrimPrefix(p, "./")
	return strings.TrimPrefix(p, "/")
}
