package endpoints

import (
	"fmt"
	"net/http"
	"strconv"
)

// maxPageLimit caps how many records one request may page through.
const maxPageLimit = 1000

// parseIntParam returns a non-negative integer query parameter,
// falling back to def when the parameter is absent.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", name, raw)
	}
	return value, nil
}

// parsePage reads limit and offset, applying the default page size and
// the global cap.
func parsePage(r *http.Request, defaultLimit int) (limit, offset int, err error) {
	limit, err = parseIntParam(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit == 0 || limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset, err = parseIntParam(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
