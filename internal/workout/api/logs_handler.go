package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/fitexport"
	"github.com/2beens/hybridpro/internal/workout/logform"
	"github.com/2beens/hybridpro/pkg"
)

type AddLogRequest struct {
	ExerciseID string        `json:"exerciseId"`
	Sets       []logform.Row `json:"sets"`
	Note       string        `json:"note"`
}

type LogFormResponse struct {
	Exercise program.Exercise        `json:"exercise"`
	Rows     []logform.Row           `json:"rows"`
	LastLog  workout.LastLogResponse `json:"lastLog"`
}

type LogsListResponse struct {
	Logs  []workout.ExerciseLog `json:"logs"`
	Total int                   `json:"total"`
}

func (handler *Handler) HandleAddLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.add")
	defer span.End()

	if r.Header.Get("Content-Type") != pkg.ContentType.JSON {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("add log, unmarshal json params: %s", err)
		http.Error(w, "add log failed", http.StatusBadRequest)
		return
	}

	if req.ExerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}
	exercise, found := handler.catalog.Exercise(req.ExerciseID)
	if !found {
		http.Error(w, "unknown exercise", http.StatusNotFound)
		return
	}

	form, err := logform.FromRows(exercise, req.Sets, req.Note)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := handler.session.LogAndComplete(ctx, form.Build(handler.stamper))
	if errors.Is(err, workout.ErrInvalidLog) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("failed to save log for [%s]: %s", req.ExerciseID, err)
		http.Error(w, "error, failed to save log", http.StatusInternalServerError)
		return
	}

	log.Debugf("log saved: [%s] %d sets, persisted: %t", res.Log.ExerciseID, len(res.Log.Sets), res.Persisted)
	writeJSON(w, res, http.StatusCreated)
}

func (handler *Handler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.list")
	defer span.End()

	logs := handler.session.Logs()
	writeJSON(w, LogsListResponse{
		Logs:  logs,
		Total: len(logs),
	}, http.StatusOK)
}

func (handler *Handler) HandleLogForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.form")
	defer span.End()

	exercise, found := handler.catalog.Exercise(mux.Vars(r)["id"])
	if !found {
		http.Error(w, "unknown exercise", http.StatusNotFound)
		return
	}

	writeJSON(w, LogFormResponse{
		Exercise: exercise,
		Rows:     logform.New(exercise).Rows(),
		LastLog:  handler.analyzer.LastLog(ctx, exercise.ID, handler.now()),
	}, http.StatusOK)
}

func (handler *Handler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.history")
	defer span.End()

	exerciseID := mux.Vars(r)["id"]
	history := handler.analyzer.ExerciseHistory(ctx, exerciseID)
	writeJSON(w, LogsListResponse{
		Logs:  history,
		Total: len(history),
	}, http.StatusOK)
}

func (handler *Handler) HandleLatestLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.latest")
	defer span.End()

	exerciseID := mux.Vars(r)["id"]
	writeJSON(w, handler.analyzer.LastLog(ctx, exerciseID, handler.now()), http.StatusOK)
}

func (handler *Handler) HandleExportFIT(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.logs.exportFit")
	defer span.End()

	logs := handler.session.Logs()
	if exerciseID := r.URL.Query().Get("exercise_id"); exerciseID != "" {
		logs = handler.analyzer.ExerciseHistory(ctx, exerciseID)
	}

	fitBytes, err := fitexport.Encode(ctx, logs)
	if errors.Is(err, fitexport.ErrNoLogs) {
		http.Error(w, "no logs to export", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("fit export: %s", err)
		http.Error(w, "failed to export logs", http.StatusInternalServerError)
		return
	}

	fileName := "hybridpro-" + handler.now().In(handler.location).Format(time.DateOnly) + ".fit"
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	pkg.WriteResponseBytesOK(w, pkg.ContentType.FIT, fitBytes)
}
