package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// pathUUID binds the named chi path parameter as a UUID using the same
// "simple" style rules as generated OpenAPI servers.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s", errBadRequest, name)
	}
	return id, nil
}

// ExportFormat is the representation requested from the itinerary export.
type ExportFormat string

const (
	FormatJSON ExportFormat = "json"
	FormatCSV  ExportFormat = "csv"
)

// exportFormat binds the optional ?format= query parameter. Absent means JSON.
func exportFormat(r *http.Request) (ExportFormat, error) {
	var f *ExportFormat
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &f); err != nil {
		return "", fmt.Errorf("%w: invalid format", errBadRequest)
	}
	if f == nil {
		return FormatJSON, nil
	}
	switch *f {
	case FormatJSON, FormatCSV:
		return *f, nil
	}
	return "", fmt.Errorf("%w: format must be json or csv", errBadRequest)
}
