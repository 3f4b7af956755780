package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// VisitorCookie identifies a browser across visits.
	VisitorCookie = "av_visitor"

	visitorCookieMaxAge = 365 * 24 * time.Hour

	defaultExpenseNameCount = 3
	maxExpenseNameCount     = 50
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// visitorID returns the id stored in the visitor cookie, issuing a new one
// when the cookie is missing or malformed.
func visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(VisitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     VisitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(visitorCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
	return id
}

// parseCount reads ?count=, clamped to [1, maxExpenseNameCount].
func parseCount(r *http.Request) int {
	v := strings.TrimSpace(r.URL.Query().Get("count"))
	if v == "" {
		return defaultExpenseNameCount
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return defaultExpenseNameCount
	}
	return min(n, maxExpenseNameCount)
}
