package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

type stubLocationRepo struct {
	locations []domain.Location
}

func (s *stubLocationRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.locations, nil
}

func testRouter() http.Handler {
	return NewRouter(Deps{
		Locations: &stubLocationRepo{locations: []domain.Location{
			{ID: 0, Name: "Warehouse", IsDepot: true},
			{ID: 1, Name: "Market", Latitude: 0, Longitude: 0.01, Locality: "East", PackageCount: 2},
		}},
		Config: services.DefaultConfig(),
	})
}

func TestRouterEchoesRequestID(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "client-supplied-id", w.Header().Get("X-Request-ID"))
}

func TestRouterAssignsRequestID(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouterWiresEndpoints(t *testing.T) {
	router := testRouter()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/locations", http.StatusOK},
		{http.MethodGet, "/locations/summary", http.StatusOK},
		{http.MethodPost, "/routes/optimize", http.StatusOK},
		{http.MethodPost, "/routes/compare", http.StatusOK},
		{http.MethodGet, "/runs", http.StatusServiceUnavailable},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
	}
}
