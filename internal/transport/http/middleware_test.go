package httptransport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apptokens "summonlink/internal/app/tokens"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestDeviceAuthMiddleware(t *testing.T) {
	h := DeviceAuthMiddleware("secret123")(okHandler())

	cases := []struct {
		name       string
		key        string
		wantStatus int
	}{
		{name: "valid key", key: "secret123", wantStatus: http.StatusOK},
		{name: "wrong key", key: "secret124", wantStatus: http.StatusUnauthorized},
		{name: "missing key", key: "", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tokens", nil)
			if tc.key != "" {
				req.Header.Set("X-API-Key", tc.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	h := AdminAuthMiddleware("admin-key")(okHandler())

	cases := []struct {
		name       string
		header     string
		value      string
		wantStatus int
	}{
		{name: "x-admin-key header", header: "X-Admin-Key", value: "admin-key", wantStatus: http.StatusOK},
		{name: "bearer token", header: "Authorization", value: "Bearer admin-key", wantStatus: http.StatusOK},
		{name: "wrong key", header: "X-Admin-Key", value: "nope", wantStatus: http.StatusUnauthorized},
		{name: "no credentials", wantStatus: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/summons", nil)
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}

	t.Run("empty key leaves routes open", func(t *testing.T) {
		open := AdminAuthMiddleware("")(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/api/summons", nil)
		rec := httptest.NewRecorder()
		open.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestWriteFieldError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFieldError(rec, &apptokens.FieldError{Field: "gps_lat", Message: "gps_lat must be between -90 and 90"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body["error"] != "validation_error" {
		t.Errorf("error = %v, want validation_error", body["error"])
	}
	if body["field"] != "gps_lat" {
		t.Errorf("field = %v, want gps_lat", body["field"])
	}
}
