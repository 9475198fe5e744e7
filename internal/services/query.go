package services

import (
	"strings"

	"github.com/scriptvault/backend/internal/models"
	"github.com/scriptvault/backend/pkg/response"
)

// likeEscape is the clause suffix making the LIKE escape character explicit,
// so escaped patterns behave the same on sqlite, mysql and postgres. The
// escape character must not be a backslash: mysql string literals treat a
// backslash as an escape, so `ESCAPE '\'` does not even parse there.
const likeEscape = ` ESCAPE '|'`

// escapeLike escapes LIKE metacharacters so a user-supplied search term
// matches literally instead of acting as a pattern.
func escapeLike(term string) string {
	r := strings.NewReplacer(`|`, `||`, `%`, `|%`, `_`, `|_`)
	return r.Replace(term)
}

// likePattern builds a lowercased substring pattern from a raw search term.
// Callers match it against LOWER(column) for case-insensitive search.
func likePattern(term string) string {
	return "%" + strings.ToLower(escapeLike(term)) + "%"
}

// validateStatus checks a status filter against a closed enumeration.
// An unrecognized value is a validation error, never silently ignored.
func validateStatus(status string, allowed []string) *response.AppError {
	for _, s := range allowed {
		if s == status {
			return nil
		}
	}
	return response.NewValidation("Invalid status value", "status")
}

// validatePlatform checks a platform filter against the closed platform set.
func validatePlatform(platform string) *response.AppError {
	for _, p := range models.ScriptPlatforms {
		if p == platform {
			return nil
		}
	}
	return response.NewValidation("Invalid platform value", "platform")
}
