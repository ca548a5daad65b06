package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "medq/pkg/errors"
)

// DecodeJSON reads a single JSON object from the request body into dst.
// Unknown fields are rejected so typos in client payloads surface early.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.BadRequest("request body is required")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.BadRequest("request body is required")
		}
		return apperrors.BadRequest("invalid JSON body: " + err.Error())
	}
	if decoder.More() {
		return apperrors.BadRequest("request body must contain a single JSON object")
	}
	return nil
}

// QueryParam returns the raw query value. Callers that need trimming do it
// themselves; search terms are matched exactly as typed.
func QueryParam(r *http.Request, name string) string {
	return r.URL.Query().Get(name)
}
