package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rbhz/ydcv/app/db"
	"github.com/rbhz/ydcv/app/formatters"
	"github.com/rbhz/ydcv/app/lookup"
	"github.com/rbhz/ydcv/app/ydresponse"
	"github.com/rs/zerolog/log"
)

const formatJSON = "json"

// lookupService implements methods for lookup API
type lookupService struct {
	service lookup.Service
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.WriteHeader(status)
	if _, err := w.Write([]byte(text)); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

// Lookup returns parsed dictionary reply or its text explanation
func (l lookupService) Lookup(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(ctxUserIDKey).(db.UserID)
	if !ok {
		log.Error().Interface("user", r.Context().Value(ctxUserIDKey)).Msg("invalid user id in context")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	word, err := url.PathUnescape(chi.URLParam(r, "word"))
	if err != nil || word == "" {
		writeText(w, http.StatusBadRequest, "invalid word")
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJSON
	}
	var formatter formatters.Formatter
	if format != formatJSON {
		if formatter, err = formatters.New(format); err != nil {
			writeText(w, http.StatusBadRequest, "unknown format")
			return
		}
	}

	resp, err := l.service.Lookup(r.Context(), userID, word)
	if err != nil {
		var parseErr *ydresponse.ParseError
		if errors.As(err, &parseErr) {
			log.Error().Err(err).Str("word", word).Msg("invalid dictionary response")
		} else {
			log.Error().Err(err).Str("word", word).Msg("failed to look up")
		}
		writeText(w, http.StatusBadGateway, "dictionary unavailable")
		return
	}

	if formatter == nil {
		response, jerr := json.Marshal(resp)
		if jerr != nil {
			log.Error().Err(jerr).Str("word", word).Msg("failed to marshal response")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if _, err := w.Write(response); err != nil {
			log.Warn().Err(err).Msg("failed to write response")
		}
		return
	}
	contentType := "text/plain; charset=utf-8"
	if format == formatters.NameHTML {
		contentType = "text/html; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	writeText(w, http.StatusOK, resp.Explain(formatter))
}
