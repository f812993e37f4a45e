package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
)

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	target := query.Get("page")
	if target == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "page parameter is required"})
		return
	}
	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "page must be an absolute http(s) URL"})
		return
	}

	maxReviews := s.cfg.MaxReviewsDefault
	if raw := query.Get("max_reviews"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "max_reviews must be an integer"})
			return
		}
		maxReviews = n
	}

	// One session slot per request, held for the whole harvest.
	select {
	case s.sem <- struct{}{}:
		defer func() { <-s.sem }()
	case <-r.Context().Done():
		return
	}

	result, err := s.harvester.Harvest(r.Context(), target, maxReviews)
	if err != nil {
		s.logger.Error("harvest failed", slog.String("url", target), slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "browser unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
