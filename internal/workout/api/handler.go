package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/chart"
	"github.com/2beens/hybridpro/internal/workout/session"
	"github.com/2beens/hybridpro/internal/workout/timer"
	"github.com/2beens/hybridpro/pkg"
)

type Handler struct {
	catalog   *program.Catalog
	session   *session.Session
	analyzer  *workout.Analyzer
	stamper   *workout.Stamper
	restTimer *timer.RestTimer
	canvas    chart.Canvas
	location  *time.Location
	now       func() time.Time
}

type NewHandlerParams struct {
	Catalog    *program.Catalog
	Session    *session.Session
	Stamper    *workout.Stamper
	RestTimer  *timer.RestTimer
	WeightUnit string
	Canvas     chart.Canvas
	Location   *time.Location
	// Now defaults to time.Now
	Now func() time.Time
}

func NewHandler(params NewHandlerParams) *Handler {
	canvas := params.Canvas
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = chart.DefaultCanvas
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	stamper := params.Stamper
	if stamper == nil {
		stamper = workout.NewStamper(now)
		stamper.Observe(params.Session.LastTimestamp())
	}

	return &Handler{
		catalog:   params.Catalog,
		session:   params.Session,
		analyzer:  workout.NewAnalyzer(params.Session, params.WeightUnit),
		stamper:   stamper,
		restTimer: params.RestTimer,
		canvas:    canvas,
		location:  loc,
		now:       now,
	}
}

// SetupRoutes registers the workout routes on r. The middlewares in
// logsWriteMiddlewares wrap only the log saving route.
func (handler *Handler) SetupRoutes(r *mux.Router, logsWriteMiddlewares ...mux.MiddlewareFunc) {
	r.HandleFunc("/program", handler.HandleProgram).Methods("GET", "OPTIONS").Name("get-program")
	r.HandleFunc("/program/day/{day}", handler.HandleProgramDay).Methods("GET", "OPTIONS").Name("get-program-day")

	r.HandleFunc("/session", handler.HandleSession).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/session/day/{day}/start", handler.HandleStartDay).Methods("POST", "OPTIONS").Name("start-day")
	r.HandleFunc("/session/phase/next", handler.HandleNextPhase).Methods("POST", "OPTIONS").Name("next-phase")
	r.HandleFunc("/session/phase/{phase}", handler.HandleSetPhase).Methods("PUT", "OPTIONS").Name("set-phase")
	r.HandleFunc("/session/exercise/{id}/toggle", handler.HandleToggle).Methods("POST", "OPTIONS").Name("toggle-exercise")

	var addLog http.Handler = http.HandlerFunc(handler.HandleAddLog)
	for i := len(logsWriteMiddlewares) - 1; i >= 0; i-- {
		addLog = logsWriteMiddlewares[i](addLog)
	}
	r.Handle("/logs", addLog).Methods("POST", "OPTIONS").Name("add-log")
	r.HandleFunc("/logs", handler.HandleListLogs).Methods("GET", "OPTIONS").Name("list-logs")
	r.HandleFunc("/logs/export.fit", handler.HandleExportFIT).Methods("GET", "OPTIONS").Name("export-fit")
	r.HandleFunc("/logs/form/{id}", handler.HandleLogForm).Methods("GET", "OPTIONS").Name("log-form")
	r.HandleFunc("/logs/exercise/{id}/history", handler.HandleExerciseHistory).Methods("GET", "OPTIONS").Name("exercise-history")
	r.HandleFunc("/logs/exercise/{id}/latest", handler.HandleLatestLog).Methods("GET", "OPTIONS").Name("latest-log")

	r.HandleFunc("/progress", handler.HandleProgress).Methods("GET", "OPTIONS").Name("progress")
	r.HandleFunc("/progress/exercise/{id}/chart", handler.HandleChart).Methods("GET", "OPTIONS").Name("chart")
	r.HandleFunc("/progress/exercise/{id}/chart.svg", handler.HandleChartSVG).Methods("GET", "OPTIONS").Name("chart-svg")
	r.HandleFunc("/progress/exercise/{id}/chart.png", handler.HandleChartPNG).Methods("GET", "OPTIONS").Name("chart-png")

	r.HandleFunc("/timer", handler.HandleTimer).Methods("GET", "OPTIONS").Name("timer")
	r.HandleFunc("/timer/toggle", handler.HandleTimerToggle).Methods("POST", "OPTIONS").Name("timer-toggle")
	r.HandleFunc("/timer/reset", handler.HandleTimerReset).Methods("POST", "OPTIONS").Name("timer-reset")
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	resJson, err := json.Marshal(v)
	if err != nil {
		log.Errorf("failed to marshal response: %s", err)
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resJson, status)
}

func dayFromVars(r *http.Request) (int, bool) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		return 0, false
	}
	return day, true
}
