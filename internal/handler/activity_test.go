package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripplanner/backend/internal/domain"
	"github.com/tripplanner/backend/internal/handler"
)

// ---- mock ActivityServicer -------------------------------------------------

type mockActivityServicer struct {
	create   func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	schedule func(ctx context.Context, tripID uuid.UUID) ([]domain.DaySchedule, error)
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) Schedule(ctx context.Context, tripID uuid.UUID) ([]domain.DaySchedule, error) {
	return m.schedule(ctx, tripID)
}

// compile-time check: mockActivityServicer must satisfy handler.ActivityServicer.
var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

func newActivityHTTPHandler(svc handler.ActivityServicer) http.Handler {
	return handler.NewServer(nil, nil, svc, nil, nil).Routes()
}

func TestCreateActivity_201(t *testing.T) {
	tripID, newID := uuid.New(), uuid.New()
	at := time.Date(2030, 6, 2, 15, 0, 0, 0, time.UTC)
	svc := &mockActivityServicer{
		create: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			assert.Equal(t, tripID, a.TripID)
			assert.Equal(t, "Louvre", a.Title)
			assert.True(t, a.OccursAt.Equal(at))
			a.ID = newID
			return a, nil
		},
	}
	body := jsonBody(t, map[string]any{"title": "Louvre", "occurs_at": at})
	rec := httptest.NewRecorder()

	newActivityHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/activities", body))

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp handler.CreateActivityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, newID, resp.ActivityID)
}

func TestCreateActivity_422_OutOfWindow(t *testing.T) {
	for name, sentinel := range map[string]error{
		"before start": domain.ErrBeforeTripStart,
		"after end":    domain.ErrAfterTripEnd,
	} {
		t.Run(name, func(t *testing.T) {
			svc := &mockActivityServicer{
				create: func(context.Context, domain.Activity) (domain.Activity, error) {
					return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", sentinel)
				},
			}
			body := jsonBody(t, map[string]any{"title": "Louvre", "occurs_at": time.Now()})
			rec := httptest.NewRecorder()

			newActivityHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/trips/"+uuid.NewString()+"/activities", body))

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, "out_of_window", detail.Code)
			assert.Equal(t, sentinel.Error(), detail.Message)
		})
	}
}

func TestListActivities_GroupedByDay(t *testing.T) {
	tripID := uuid.New()
	day1 := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := &mockActivityServicer{
		schedule: func(context.Context, uuid.UUID) ([]domain.DaySchedule, error) {
			return []domain.DaySchedule{
				{Date: day1, Activities: []domain.Activity{{ID: uuid.New(), Title: "Check in", OccursAt: day1.Add(11 * time.Hour)}}},
				{Date: day1.AddDate(0, 0, 1), Activities: []domain.Activity{}},
			}, nil
		},
	}
	rec := httptest.NewRecorder()

	newActivityHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+tripID.String()+"/activities", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"date":"2030-06-01"`)
	assert.Contains(t, rec.Body.String(), `"date":"2030-06-02","activities":[]`)

	var resp handler.ActivitiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Activities, 2)
	assert.Equal(t, "Check in", resp.Activities[0].Activities[0].Title)
}

func TestListActivities_404(t *testing.T) {
	svc := &mockActivityServicer{
		schedule: func(context.Context, uuid.UUID) ([]domain.DaySchedule, error) {
			return nil, domain.ErrNotFound
		},
	}
	rec := httptest.NewRecorder()

	newActivityHTTPHandler(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/trips/"+uuid.NewString()+"/activities", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
