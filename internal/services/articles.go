package services

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Categories is the fixed closed set an article may belong to.
var Categories = map[string]bool{
	"basics":     true,
	"blockchain": true,
	"trading":    true,
	"defi":       true,
	"security":   true,
	"nft":        true,
}

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

func ValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished
}

func Slugify(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}

// IsUniqueViolation reports whether a store error is a unique-constraint
// violation (a duplicate slug on insert). The message-substring fallback
// covers drivers that do not expose the SQLSTATE.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

func NormalizeRequired(value, message string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New(message)
	}
	return trimmed, nil
}

var spaceRun = regexp.MustCompile(`\s+`)

func CleanSearchTerm(term string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(term), " ")
}
