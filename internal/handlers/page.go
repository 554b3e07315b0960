package handlers

import (
	"fmt"
	"html/template"
	"mood_tracker/internal/metrics"
	"mood_tracker/internal/models"
	"mood_tracker/internal/usecases"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

const (
	chartWidth  = 600
	chartHeight = 200
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Mood Tracker</title>
<style>
body {font-family: sans-serif; max-width: 720px; margin: 2em auto;}
h1 {color: #2E86C1; text-align: center;}
.error {color: #B03A2E;} .ok {color: #1E8449;}
table {border-collapse: collapse; width: 100%;} td, th {border-bottom: 1px solid #ddd; padding: 4px;}
</style>
</head>
<body>
<h1>Mood Tracker</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{if .Saved}}<p class="ok">Mood saved successfully!</p>{{end}}
<form method="get" action="/">
<label>Enter your name <input name="name" value="{{.Name}}"></label>
<button type="submit">Continue</button>
</form>
{{if .Name}}
<p>Welcome, {{.Name}}!</p>
<h2>How are you feeling today?</h2>
<form method="post" action="/">
<input type="hidden" name="name" value="{{.Name}}">
<select name="mood">
{{range .Moods}}<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
{{end}}</select>
<button type="submit">Save Mood</button>
</form>
<h2>Your Mood Log</h2>
{{if and .Log (not .Log.Empty)}}
<table>
<tr><th>Mood</th><th>Date</th></tr>
{{range .Log.Rows}}<tr><td>{{.Mood}}</td><td>{{.Date}}</td></tr>
{{end}}</table>
<svg width="{{.ChartWidth}}" height="{{.ChartHeight}}" viewBox="0 0 {{.ChartWidth}} {{.ChartHeight}}">
<polyline fill="none" stroke="#2E86C1" stroke-width="2" points="{{.Polyline}}"/>
</svg>
{{else}}
<p>No mood logs found for you.</p>
{{end}}
{{else}}
<p>Please enter your name to continue.</p>
{{end}}
</body>
</html>
`))

type pageData struct {
	Name        string
	Moods       []models.Mood
	Selected    models.Mood
	Log         *usecases.MoodLog
	Error       string
	Saved       bool
	Polyline    string
	ChartWidth  int
	ChartHeight int
}

// PageHandler serves the HTML form.
type PageHandler struct {
	tracker *usecases.Tracker
	log     zerolog.Logger
}

func NewPageHandler(tracker *usecases.Tracker, log zerolog.Logger) *PageHandler {
	return &PageHandler{tracker: tracker, log: log}
}

func (ph *PageHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := ph.load(r, strings.TrimSpace(q.Get("name")))
	data.Saved = err == nil && q.Get("saved") == "1"

	ph.render(w, ph.status(r, "handlers.HandlePage", err), data)
}

func (ph *PageHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleSubmit"

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		ph.render(w, http.StatusBadRequest, pageData{Moods: models.AllMoods(), Error: "Wrong request."})
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("name"))
	req := usecases.SaveRequest{Name: name, Mood: r.PostForm.Get("mood")}

	if err := ph.tracker.Save(r.Context(), req); err != nil {
		data, _ := ph.load(r, name)
		data.Error = fmt.Sprintf("Could not save mood: %v", err)
		ph.render(w, ph.status(r, op, err), data)
		return
	}

	mood, _ := models.ParseMood(req.Mood)
	metrics.MoodsSavedTotal.WithLabelValues(mood.String()).Inc()

	target := "/?" + url.Values{"name": {name}, "saved": {"1"}}.Encode()
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// status maps err to a response code, logging and counting datastore failures.
func (ph *PageHandler) status(r *http.Request, op string, err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case usecases.IsInvalidInput(err):
		return http.StatusBadRequest
	}

	metrics.StorageErrorsTotal.WithLabelValues(op).Inc()
	ph.log.Error().Err(err).
		Str("op", op).
		Str("request_id", requestIDFrom(r.Context())).
		Msg("tracker operation failed")
	return http.StatusInternalServerError
}

// load fills the page for name. On error the returned data still carries the
// form and the message.
func (ph *PageHandler) load(r *http.Request, name string) (pageData, error) {
	data := pageData{
		Name:        name,
		Moods:       models.AllMoods(),
		Selected:    models.DefaultMood,
		ChartWidth:  chartWidth,
		ChartHeight: chartHeight,
	}
	if name == "" {
		return data, nil
	}

	last, found, err := ph.tracker.LastMood(r.Context(), name)
	if err != nil {
		data.Error = err.Error()
		return data, err
	}
	data.Selected = usecases.PickDefault(last, found)

	log, err := ph.tracker.History(r.Context(), name)
	if err != nil {
		data.Error = err.Error()
		return data, err
	}
	data.Log = log
	data.Polyline = polyline(log.Chart, chartWidth, chartHeight)

	return data, nil
}

func (ph *PageHandler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		ph.log.Error().Err(err).Msg("failed to render page")
	}
}

// polyline lays points out left to right with the mood index on the y axis.
func polyline(points []usecases.ChartPoint, width, height int) string {
	if len(points) == 0 {
		return ""
	}

	steps := len(models.AllMoods()) - 1
	coords := make([]string, 0, len(points))
	for i, p := range points {
		x := width / 2
		if len(points) > 1 {
			x = i * width / (len(points) - 1)
		}
		idx := p.Index
		if idx < 0 {
			idx = 0
		}
		y := height - idx*height/steps
		coords = append(coords, fmt.Sprintf("%d,%d", x, y))
	}
	return strings.Join(coords, " ")
}
