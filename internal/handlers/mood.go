package handlers

import (
	"mood_tracker/internal/metrics"
	"mood_tracker/internal/models"
	"mood_tracker/internal/usecases"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type MoodHandler struct {
	tracker *usecases.Tracker
	log     zerolog.Logger
}

func NewMoodHandler(tracker *usecases.Tracker, log zerolog.Logger) *MoodHandler {
	return &MoodHandler{
		tracker: tracker,
		log:     log,
	}
}

func (mh *MoodHandler) HandleSaveMood(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleSaveMood"

	var req usecases.SaveRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		mh.log.Debug().Err(err).Str("op", op).Msg("decode error")
		writeError(w, mh.log, http.StatusBadRequest, "Couldnt decode json. Wrong request.")
		return
	}

	if err := mh.tracker.Save(r.Context(), req); err != nil {
		mh.fail(w, r, op, err)
		return
	}

	mood, _ := models.ParseMood(req.Mood)
	metrics.MoodsSavedTotal.WithLabelValues(mood.String()).Inc()

	writeJSON(w, mh.log, http.StatusCreated, map[string]string{
		"status":  "created",
		"message": "Mood saved successfully",
	})
}

func (mh *MoodHandler) HandleGetLog(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleGetLog"

	log, err := mh.tracker.History(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		mh.fail(w, r, op, err)
		return
	}

	writeJSON(w, mh.log, http.StatusOK, log)
}

type lastMoodResponse struct {
	Mood    models.Mood `json:"mood,omitempty"`
	Found   bool        `json:"found"`
	Default models.Mood `json:"default"`
}

func (mh *MoodHandler) HandleGetLast(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleGetLast"
	name := r.URL.Query().Get("name")

	last, found, err := mh.tracker.LastMood(r.Context(), name)
	if err != nil {
		mh.fail(w, r, op, err)
		return
	}

	writeJSON(w, mh.log, http.StatusOK, lastMoodResponse{
		Mood:    last,
		Found:   found,
		Default: usecases.PickDefault(last, found),
	})
}

func (mh *MoodHandler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, mh.log, http.StatusOK, map[string]any{
		"moods":   models.AllMoods(),
		"default": models.DefaultMood,
	})
}

// fail maps input errors to 400 and everything else to 500. The error text is
// returned to the client so the user can retry by hand.
func (mh *MoodHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if usecases.IsInvalidInput(err) {
		writeError(w, mh.log, http.StatusBadRequest, err.Error())
		return
	}

	metrics.StorageErrorsTotal.WithLabelValues(op).Inc()
	mh.log.Error().Err(err).
		Str("op", op).
		Str("request_id", requestIDFrom(r.Context())).
		Msg("tracker operation failed")
	writeError(w, mh.log, http.StatusInternalServerError, err.Error())
}
