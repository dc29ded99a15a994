package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("handler: encode response", "error", err)
	}
}

// decodeJSON reads one JSON document from the request body into dst.
// A body over the size limit wraps errTooLarge, a malformed email is passed
// through as openapi_types.ErrValidationEmail, and every other decode
// failure wraps errBadRequest.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return fmt.Errorf("%w: request body is required", errBadRequest)
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		maxErr    *http.MaxBytesError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		timeErr   *time.ParseError
	)
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("%w: limit is %d bytes", errTooLarge, maxErr.Limit)
	case errors.Is(err, openapi_types.ErrValidationEmail):
		return err
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", errBadRequest)
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("%w: malformed JSON at offset %d", errBadRequest, syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Errorf("%w: field %q has the wrong type", errBadRequest, typeErr.Field)
	case errors.As(err, &timeErr):
		return fmt.Errorf("%w: timestamps must be RFC 3339", errBadRequest)
	}
	return fmt.Errorf("%w: %s", errBadRequest, err.Error())
}
