package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tomoika/tripmag/internal/domain/trip"
	"github.com/tomoika/tripmag/internal/infra/config"
	apperrors "github.com/tomoika/tripmag/pkg/errors"
)

func TestRouter_FullModel(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			require.Equal(t, "japan", slug)
			return loadFixture(t), nil
		},
	}

	recorder := performRequest("/api/v1/trips/japan", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got trip.TripData
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "Japan", got.Trip.Title)
	require.Len(t, got.Days, 2)
}

func TestRouter_TripNotFound(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			return nil, trip.ErrNotFound
		},
	}

	recorder := performRequest("/api/v1/trips/atlantis", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "trip_not_found", errBody["error"]["code"])
}

func TestRouter_InvalidDocument(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			return nil, &trip.ShapeError{Check: "days", Detail: "missing days array"}
		},
	}

	recorder := performRequest("/api/v1/trips/broken/itinerary", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_trip_document", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "days")
}

func TestRouter_Presentation(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			return loadFixture(t), nil
		},
	}

	recorder := performRequest("/api/v1/trips/japan/presentation", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Days []struct {
			Day         trip.Day         `json:"day"`
			Travels     []trip.TravelLeg `json:"travels"`
			Dining      *trip.DayDining  `json:"dining"`
			Hotel       *hotelMatch      `json:"hotel"`
			SplitBanner bool             `json:"splitBanner"`
		} `json:"days"`
		TotalSlides int `json:"totalSlides"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Days, 2)
	require.Equal(t, 4, body.TotalSlides)

	// Day 1 has a travel leg, a dining link and a matched hotel city.
	first := body.Days[0]
	require.Len(t, first.Travels, 1)
	require.NotNil(t, first.Dining)
	require.Equal(t, "tokyo", first.Dining.LocationID)
	require.NotNil(t, first.Hotel)
	require.Equal(t, "tokyo", first.Hotel.Key)

	// Day 2 is the split day of the extended phase.
	require.True(t, body.Days[1].SplitBanner)
}

func TestRouter_ExtendedNotAvailable(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			data := loadFixture(t)
			data.Extended = nil
			return data, nil
		},
	}

	recorder := performRequest("/api/v1/trips/japan/extended", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "extended_not_available", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "japan")
}

func TestRouter_FetchFailureKeepsServiceCode(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			return nil, apperrors.Wrap("trip_error", "document fetch failed", errors.New("bucket unreachable"))
		},
	}

	recorder := performRequest("/api/v1/trips/japan", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "trip_error", errBody["error"]["code"])
}

func TestRouter_UnknownFailureIsInternalError(t *testing.T) {
	svc := &stubTripService{
		loadFn: func(ctx context.Context, slug string) (*trip.TripData, error) {
			return nil, errors.New("boom")
		},
	}

	recorder := performRequest("/api/v1/trips/japan", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "internal_error", errBody["error"]["code"])
}

func TestRouter_Healthz(t *testing.T) {
	recorder := performRequest("/healthz", newRouterUnderTest(t, &stubTripService{}))
	require.Equal(t, http.StatusOK, recorder.Code)
}

const fixtureDoc = `{
	"trip": {"title": "Japan"},
	"days": [
		{"day": 1, "title": "Tokyo", "stay": "Tokyo", "activities": [{"time": "09:00", "name": "Temple"}]},
		{"day": 2, "title": "Kyoto"}
	],
	"hotels": {"tokyo": {"location": "Tokyo", "options": []}},
	"restaurants": {"byLocation": {"tokyo": {"label": "Tokyo", "forDays": [1], "spots": [{"name": "A"}]}}},
	"travels": [{"day": 1, "mode": "train"}],
	"pins": {"items": []},
	"extended": {"splitDay": 2, "days": [{"day": 3, "title": "Osaka"}]}
}`

func loadFixture(t *testing.T) *trip.TripData {
	t.Helper()
	doc, err := trip.DecodeDocument([]byte(fixtureDoc))
	require.NoError(t, err)
	require.NoError(t, trip.ValidateShape(doc))
	return trip.Normalize(doc)
}

func performRequest(path string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc trip.Service) *http.Server {
	t.Helper()
	handler := NewTripHandler(svc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubTripService struct {
	loadFn func(ctx context.Context, slug string) (*trip.TripData, error)
}

func (s *stubTripService) Load(ctx context.Context, slug string) (*trip.TripData, error) {
	if s.loadFn != nil {
		return s.loadFn(ctx, slug)
	}
	return nil, trip.ErrNotFound
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
