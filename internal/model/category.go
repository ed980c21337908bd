package model

import "sort"

// Category groups rule violations in reports and history entries.
type Category string

// Known violation categories, listed in report order.
const (
	// CategoryStructure covers the managed metadata directory and the
	// presence of the project's critical files.
	CategoryStructure Category = "structure"

	// CategoryGitignore covers presence, encoding and completeness of .gitignore.
	CategoryGitignore Category = "gitignore"

	// CategoryExclusion catches kept paths that an ignore pattern should
	// have excluded.
	CategoryExclusion Category = "exclusion"

	// CategoryPrivacy covers unmasked personal paths and identifying
	// image metadata.
	CategoryPrivacy Category = "privacy"

	// CategorySecrets covers private key material committed to the tree.
	CategorySecrets Category = "secrets"

	// CategoryWebUI covers the web-tool entry point and its documentation.
	CategoryWebUI Category = "web_ui"

	// CategoryDocumentation covers required sections in project documents.
	CategoryDocumentation Category = "documentation"
)

// CategoryInfo holds presentation metadata for a category.
type CategoryInfo struct {
	// Rank orders categories in reports; lower comes first.
	Rank int

	// Title is the heading used by the console and Markdown writers.
	Title string
}

// categoryInfoMapping is the single source of category order and titles.
var categoryInfoMapping = map[Category]CategoryInfo{
	CategoryStructure:     {Rank: 0, Title: "repository structure"},
	CategoryGitignore:     {Rank: 1, Title: "gitignore"},
	CategoryExclusion:     {Rank: 2, Title: "exclusion compliance"},
	CategoryPrivacy:       {Rank: 3, Title: "privacy"},
	CategorySecrets:       {Rank: 4, Title: "secrets"},
	CategoryWebUI:         {Rank: 5, Title: "web ui"},
	CategoryDocumentation: {Rank: 6, Title: "documentation"},
}

// GetCategoryInfo returns metadata for c. Unknown categories sort after
// all known ones and use their raw name as title.
func GetCategoryInfo(c Category) CategoryInfo {
	if info, ok := categoryInfoMapping[c]; ok {
		return info
	}
	return CategoryInfo{Rank: len(categoryInfoMapping), Title: string(c)}
}

// SortCategories orders categories by rank, then by name.
// The input slice is sorted in place and returned for convenience.
func SortCategories(categories []Category) []Category {
	sort.SliceStable(categories, func(i, j int) bool {
		ri, rj := GetCategoryInfo(categories[i]).Rank, GetCategoryInfo(categories[j]).Rank
		if ri != rj {
			return ri < rj
		}
		return categories[i] < categories[j]
	})
	return categories
}
