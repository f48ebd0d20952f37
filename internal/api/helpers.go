package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// idParam parses the {id} URL parameter as a positive int64.
// The second return is false when the parameter is missing or malformed.
func idParam(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt parses an integer query parameter, returning def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryBool parses a boolean query parameter, treating anything but
// "true" as false.
func queryBool(r *http.Request, name string) bool {
	return r.URL.Query().Get(name) == "true"
}
