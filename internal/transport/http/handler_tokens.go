package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	apptokens "summonlink/internal/app/tokens"
)

type TokenHandlers struct {
	svc *apptokens.Service
}

func NewTokenHandlers(svc *apptokens.Service) *TokenHandlers {
	return &TokenHandlers{svc: svc}
}

func (h *TokenHandlers) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricRegisterTotal.Add(1)
		var req apptokens.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Register(r.Context(), req)
		if err != nil {
			if fe, ok := apptokens.AsFieldError(err); ok {
				WriteFieldError(w, fe)
				return
			}
			metricRegisterErrors.Add(1)
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *TokenHandlers) Nearby() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricNearbyQueryTotal.Add(1)
		lat, latOK, err := queryFloat(r, "lat")
		if err != nil || !latOK {
			WriteFieldError(w, &apptokens.FieldError{Field: "lat", Message: "lat is required and must be a number"})
			return
		}
		lon, lonOK, err := queryFloat(r, "lon")
		if err != nil || !lonOK {
			WriteFieldError(w, &apptokens.FieldError{Field: "lon", Message: "lon is required and must be a number"})
			return
		}
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			WriteFieldError(w, &apptokens.FieldError{Field: "limit", Message: "limit must be an integer"})
			return
		}
		radius, _, err := queryFloat(r, "radius_km")
		if err != nil {
			WriteFieldError(w, &apptokens.FieldError{Field: "radius_km", Message: "radius_km must be a number"})
			return
		}

		resp, err := h.svc.Nearby(r.Context(), apptokens.NearbyRequest{
			Lat:         lat,
			Lon:         lon,
			Limit:       limit,
			RadiusKM:    radius,
			ActionType:  r.URL.Query().Get("action_type"),
			Temperament: r.URL.Query().Get("mob_type"),
		})
		if err != nil {
			if fe, ok := apptokens.AsFieldError(err); ok {
				WriteFieldError(w, fe)
				return
			}
			metricNearbyQueryErrors.Add(1)
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *TokenHandlers) All() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			WriteFieldError(w, &apptokens.FieldError{Field: "limit", Message: "limit must be an integer"})
			return
		}
		resp, err := h.svc.All(r.Context(), limit)
		if err != nil {
			if errors.Is(err, apptokens.ErrStorage) {
				WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
