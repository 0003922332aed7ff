package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	apptokens "summonlink/internal/app/tokens"
	"summonlink/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	st *store.Store
}

func NewAdminHandlers(st *store.Store) *AdminHandlers {
	return &AdminHandlers{st: st}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.st.Ping(r.Context()); err != nil {
			WriteHTTPError(w, http.StatusServiceUnavailable, "database_unavailable")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}
}

func (h *AdminHandlers) Summons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := queryInt(r, "limit", 0)
		if err != nil {
			WriteFieldError(w, &apptokens.FieldError{Field: "limit", Message: "limit must be an integer"})
			return
		}
		records, err := h.st.ListSummons(r.Context(), r.URL.Query().Get("player"), limit)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"count":   len(records),
			"summons": records,
		})
	}
}

func (h *AdminHandlers) Summon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "summon_id")
		rec, err := h.st.GetSummon(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteHTTPError(w, http.StatusNotFound, "not_found")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec)
	}
}

func (h *AdminHandlers) PurgeSummons() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := h.st.PurgeSummons(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "storage_error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "ok",
			"deleted": deleted,
		})
	}
}
