package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/library/pkg/httpx"
	"github.com/aussiebroadwan/library/pkg/slogx"
)

const msgInvalidJSON = "Invalid JSON in request body"

// decodeBody decodes a JSON body into v and writes the 400 itself on
// failure. An empty body decodes to the zero value so the handler reports
// the missing fields instead.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := httpx.DecodeJSON(w, r, v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	slogx.FromContext(r.Context()).Info("invalid json body", "err", err)
	httpx.WriteMessage(w, http.StatusBadRequest, msgInvalidJSON)
	return false
}
