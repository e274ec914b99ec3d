package persistence

import (
	"strings"
)

// DefaultLetterSortField orders the archive by insertion.
const DefaultLetterSortField = "archive_seq"

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// LetterSortFields contains allowed sort fields for the archive
var LetterSortFields = map[string]bool{
	"archive_seq":   true,
	"issue_date":    true,
	"title":         true,
	"recipient":     true,
	"type_code":     true,
	"division_code": true,
	"created_at":    true,
	"updated_at":    true,
}

// LetterOrder returns the validated ORDER BY clause of an archive search.
// Ties fall back to insertion order in the same direction.
func LetterOrder(orderBy, orderDir string) (field, dir string) {
	return ValidateSortField(orderBy, LetterSortFields, DefaultLetterSortField), ValidateSortOrder(orderDir)
}
