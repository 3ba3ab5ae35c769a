package respond

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/bitebudget/internal/apperr"
	"github.com/MrJamesThe3rd/bitebudget/internal/auth"
)

// UserID returns the authenticated user. When the request carries none it
// writes a 401 and reports false.
func UserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		Message(w, http.StatusUnauthorized, "authentication required")
	}

	return id, ok
}

// PathID parses the {id} URL parameter. On failure it writes a 400 and reports false.
func PathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		Message(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}

	return id, true
}

// ParseTime accepts RFC 3339 timestamps and plain dates. An empty string is nil.
func ParseTime(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}

	return nil, apperr.Invalid(field, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
}

// QueryInt reads an integer query parameter, returning def when it is absent.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperr.Invalid(name, "must be an integer")
	}

	return n, nil
}
