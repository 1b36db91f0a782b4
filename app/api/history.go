package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rbhz/ydcv/app/db"
	"github.com/rs/zerolog/log"
)

// historyService implements methods for history API
type historyService struct {
	storage db.Storage
}

// GetHistory returns user lookups
func (h historyService) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(ctxUserIDKey).(db.UserID)
	if !ok {
		log.Error().Interface("user", r.Context().Value(ctxUserIDKey)).Msg("invalid user id in context")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	limit := 0
	if l := r.URL.Query().Get("limit"); l != "" {
		var err error
		if limit, err = strconv.Atoi(l); err != nil || limit < 0 {
			writeText(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}
	history, err := h.storage.GetHistory(userID, limit)
	if err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to get history")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []db.Lookup{}
	}
	response, jerr := json.Marshal(history)
	if jerr != nil {
		log.Error().Err(jerr).Int64("user", int64(userID)).Msg("failed to marshal history")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if _, err := w.Write(response); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// ClearHistory removes user lookups
func (h historyService) ClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(ctxUserIDKey).(db.UserID)
	if !ok {
		log.Error().Interface("user", r.Context().Value(ctxUserIDKey)).Msg("invalid user id in context")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err := h.storage.ClearHistory(userID); err != nil {
		log.Error().Err(err).Int64("user", int64(userID)).Msg("failed to clear history")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
