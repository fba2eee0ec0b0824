package middleware

import (
	"net/http"

	"github.com/growly/growly-web/api/responses"
	"github.com/growly/growly-web/pkg/logger"
)

// writeError answers browsers with plain text and API clients with the
// JSON envelope. Middleware has no page renderer.
func writeError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	if responses.WantsHTML(r) {
		responses.LogError(r.Context(), logg, err)
		p := responses.Describe(err)
		http.Error(w, p.Message, p.Status)
		return
	}
	responses.WriteError(r.Context(), logg, w, err)
}
