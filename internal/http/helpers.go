package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/services"
)

// mapServiceError writes a ServiceError to the response. Returns true when
// the error was handled.
func mapServiceError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return true
	}
	return false
}

func parseInt(value string, fallback int) int {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func resolveClientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	return r.RemoteAddr
}

func trimString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

func nullIfEmpty(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func ptrToString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
