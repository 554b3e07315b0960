package handlers

import (
	"context"
	"mood_tracker/internal/storage"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type HealthHandler struct {
	db      storage.Pinger
	timeout time.Duration
	log     zerolog.Logger
}

func NewHealthHandler(db storage.Pinger, timeout time.Duration, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, timeout: timeout, log: log}
}

func (hh *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hh.timeout)
	defer cancel()

	if err := hh.db.Ping(ctx); err != nil {
		hh.log.Warn().Err(err).Msg("health check failed")
		writeJSON(w, hh.log, http.StatusServiceUnavailable, map[string]string{
			"status":   "unavailable",
			"database": err.Error(),
		})
		return
	}

	writeJSON(w, hh.log, http.StatusOK, map[string]string{
		"status":   "ok",
		"database": "ok",
	})
}
