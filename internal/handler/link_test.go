package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/handler"
)

// ---- mock LinkServicer -----------------------------------------------------

type mockLinkServicer struct {
	create       func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkServicer) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkServicer) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTripID(ctx, tripID)
}

// compile-time check: mockLinkServicer must satisfy handler.LinkServicer.
var _ handler.LinkServicer = (*mockLinkServicer)(nil)

func newLinkHTTPHandler(svc handler.LinkServicer) http.Handler {
	return handler.NewServer(nil, nil, nil, svc, nil).Routes()
}

func TestCreateLink_201(t *testing.T) {
	tripID := uuid.New()
	svc := &mockLinkServicer{
		create: func(_ context.Context, l domain.Link) (domain.Link, error) {
			assert.Equal(t, tripID, l.TripID)
			l.ID = uuid.New()
			return l, nil
		},
	}
	body := jsonBody(t, map[string]string{"title": "Hotel booking", "url": "https://hotel.example/res/1"})
	rec := httptest.NewRecorder()

	newLinkHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/links", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handler.LinkResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Hotel booking", resp.Link.Title)
	assert.Equal(t, "https://hotel.example/res/1", resp.Link.URL)
}

func TestCreateLink_422(t *testing.T) {
	svc := &mockLinkServicer{
		create: func(context.Context, domain.Link) (domain.Link, error) {
			return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w: %q is not a valid http(s) url", domain.ErrValidation, "ftp://x")
		},
	}
	body := jsonBody(t, map[string]string{"title": "Files", "url": "ftp://x"})
	rec := httptest.NewRecorder()

	newLinkHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/links", body))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, `"ftp://x" is not a valid http(s) url`, decodeError(t, rec).Message)
}

func TestListLinks_EmptyIsArray(t *testing.T) {
	svc := &mockLinkServicer{
		listByTripID: func(context.Context, uuid.UUID) ([]domain.Link, error) {
			return []domain.Link{}, nil
		},
	}
	rec := httptest.NewRecorder()

	newLinkHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/links", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"links":[]}`, rec.Body.String())
}
