package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

// ParseID parses a positive numeric identifier.
func ParseID(raw, field string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.Validation(field, field+" must be a positive integer")
	}
	return uint(id), nil
}

// PathID reads a numeric chi URL parameter.
func PathID(r *http.Request, param string) (uint, error) {
	return ParseID(chi.URLParam(r, param), param)
}

// QueryID reads a numeric query parameter.
func QueryID(r *http.Request, key string) (uint, error) {
	return ParseID(r.URL.Query().Get(key), key)
}
