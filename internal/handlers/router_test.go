package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleetkeeper/fleetkeeper/internal/entities"
	"go.uber.org/zap"
)

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) HealthCheck() error {
	return m.err
}

func newTestRouter(health HealthChecker) http.Handler {
	permHandler, _ := newPermissionHandler(&mockAuthority{})
	alertHandler, _ := newAlertHandler(&mockFleetService{snapshot: &entities.FleetSnapshot{}})
	return NewRouter(RouterConfig{
		Permissions: permHandler,
		Alerts:      alertHandler,
		Health:      NewHealthHandler(health, zap.NewNop()),
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(&mockHealthChecker{})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"list permissions", http.MethodGet, "/v1/permissions", http.StatusOK},
		{"list alerts", http.MethodGet, "/v1/alerts", http.StatusOK},
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"unknown path", http.MethodGet, "/v1/unknown", http.StatusNotFound},
		{"wrong method", http.MethodDelete, "/v1/permissions", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_HealthUnavailable(t *testing.T) {
	router := newTestRouter(&mockHealthChecker{err: errors.New("dial tcp: connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	var seen []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	permHandler, _ := newPermissionHandler(&mockAuthority{})
	alertHandler, _ := newAlertHandler(&mockFleetService{snapshot: &entities.FleetSnapshot{}})
	router := NewRouter(RouterConfig{
		Permissions: permHandler,
		Alerts:      alertHandler,
		Health:      NewHealthHandler(&mockHealthChecker{}, zap.NewNop()),
		Middleware:  []func(http.Handler) http.Handler{mark("outer"), mark("inner")},
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	if len(seen) != 2 || seen[0] != "outer" || seen[1] != "inner" {
		t.Errorf("middleware order = %v, want [outer inner]", seen)
	}
}
