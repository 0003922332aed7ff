package httptransport

import (
	"encoding/json"
	"net/http"

	appdevices "summonlink/internal/app/devices"
	apptokens "summonlink/internal/app/tokens"
)

type DeviceHandlers struct {
	svc *appdevices.Service
}

func NewDeviceHandlers(svc *appdevices.Service) *DeviceHandlers {
	return &DeviceHandlers{svc: svc}
}

func (h *DeviceHandlers) ReportLocation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appdevices.LocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Report(r.Context(), req)
		if err != nil {
			if fe, ok := apptokens.AsFieldError(err); ok {
				WriteFieldError(w, fe)
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *DeviceHandlers) Locations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			WriteFieldError(w, &apptokens.FieldError{Field: "limit", Message: "limit must be an integer"})
			return
		}
		locs, err := h.svc.Locations(r.Context(), r.URL.Query().Get("device_id"), limit)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"count":     len(locs),
			"locations": locs,
		})
	}
}
