package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	appsummon "summonlink/internal/app/summon"
	apptokens "summonlink/internal/app/tokens"
)

type EventHandlers struct {
	svc *appsummon.Service
}

func NewEventHandlers(svc *appsummon.Service) *EventHandlers {
	return &EventHandlers{svc: svc}
}

func (h *EventHandlers) NFCEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricEventTotal.Add(1)
		var req appsummon.EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.HandleEvent(r.Context(), req)
		if err != nil {
			if fe, ok := apptokens.AsFieldError(err); ok {
				WriteFieldError(w, fe)
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		status := http.StatusOK
		if resp.Status == "blocked" {
			metricEventBlockedTotal.Add(1)
			status = http.StatusTooManyRequests
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *EventHandlers) Time() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appsummon.TimeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Time(r.Context(), req)
		if err != nil {
			if fe, ok := apptokens.AsFieldError(err); ok {
				WriteFieldError(w, fe)
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *EventHandlers) Say() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appsummon.SayRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Say(r.Context(), req)
		if err != nil {
			writeBroadcastError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *EventHandlers) Chat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req appsummon.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Chat(r.Context(), req)
		if err != nil {
			writeBroadcastError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func writeBroadcastError(w http.ResponseWriter, err error) {
	if fe, ok := apptokens.AsFieldError(err); ok {
		WriteFieldError(w, fe)
		return
	}
	if errors.Is(err, appsummon.ErrDispatch) {
		WriteHTTPError(w, http.StatusBadGateway, "dispatch_error")
		return
	}
	WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
}

func (h *EventHandlers) Sync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricSyncTotal.Add(1)
		var rec appsummon.SyncRecord
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.Sync(r.Context(), rec)
		if err != nil {
			var verr *appsummon.ValidationError
			if errors.As(err, &verr) {
				WriteValidationError(w, verr)
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

func (h *EventHandlers) SyncBatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metricSyncTotal.Add(1)
		var req appsummon.BatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.svc.SyncBatch(r.Context(), req)
		if err != nil {
			var verr *appsummon.ValidationError
			if errors.As(err, &verr) {
				WriteValidationError(w, verr)
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
