package controller

import (
	"strings"

	"github.com/gartstein/holdings/internal/holdings/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Filter returns the records whose name or any service contains query,
// ignoring case. Both sides are lower-cased, not folded, so "ss" does not match
// "ß". Input order is preserved and an empty query matches everything.
func Filter(records []models.Company, query string) []models.Company {
	out := make([]models.Company, 0, len(records))
	if query == "" {
		return append(out, records...)
	}

	lower := cases.Lower(language.Und)
	needle := lower.String(query)
	for _, r := range records {
		if matches(lower, r, needle) {
			out = append(out, r)
		}
	}
	return out
}

func matches(lower cases.Caser, r models.Company, needle string) bool {
	if strings.Contains(lower.String(r.Name), needle) {
		return true
	}
	for _, s := range r.Services {
		if strings.Contains(lower.String(s), needle) {
			return true
		}
	}
	return false
}
