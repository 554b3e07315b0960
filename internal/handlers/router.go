package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func NewRouter(mh *MoodHandler, ph *PageHandler, hh *HealthHandler, log zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger(log))

	r.HandleFunc("/", ph.HandlePage).Methods(http.MethodGet)
	r.HandleFunc("/", ph.HandleSubmit).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/moods", mh.HandleSaveMood).Methods(http.MethodPost)
	api.HandleFunc("/moods", mh.HandleGetLog).Methods(http.MethodGet)
	api.HandleFunc("/moods/last", mh.HandleGetLast).Methods(http.MethodGet)
	api.HandleFunc("/moods/options", mh.HandleOptions).Methods(http.MethodGet)

	r.HandleFunc("/healthz", hh.HandleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
