package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"github.com/2beens/hybridpro/internal/workout/session"
)

type SessionResponse struct {
	session.State
	// LastLogs maps exercise id to its last-log summary, for exercises logged before
	LastLogs map[string]string `json:"lastLogs"`
}

func (handler *Handler) sessionResponse(r *http.Request, state session.State) SessionResponse {
	now := handler.now()
	lastLogs := make(map[string]string, len(state.Active))
	for _, ex := range state.Active {
		if summary, found := handler.analyzer.LastLogSummary(r.Context(), ex.ID, now); found {
			lastLogs[ex.ID] = summary
		}
	}
	return SessionResponse{
		State:    state,
		LastLogs: lastLogs,
	}
}

func (handler *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.get")
	defer span.End()

	writeJSON(w, handler.sessionResponse(r, handler.session.State()), http.StatusOK)
}

func (handler *Handler) HandleStartDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.startDay")
	defer span.End()

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}

	state, err := handler.session.StartDay(ctx, day)
	if errors.Is(err, program.ErrDayNotFound) {
		http.Error(w, "day not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("start day %d: %s", day, err)
		http.Error(w, "failed to start day", http.StatusInternalServerError)
		return
	}

	log.Debugf("day %d started: %s", day, state.Plan.Title)
	writeJSON(w, handler.sessionResponse(r, state), http.StatusOK)
}

func (handler *Handler) HandleSetPhase(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.setPhase")
	defer span.End()

	phase, err := program.ParsePhase(mux.Vars(r)["phase"])
	if err != nil {
		http.Error(w, "invalid phase", http.StatusBadRequest)
		return
	}

	state, err := handler.session.SetPhase(phase)
	if err != nil {
		log.Errorf("set phase [%s]: %s", phase, err)
		http.Error(w, "failed to set phase", http.StatusInternalServerError)
		return
	}

	writeJSON(w, handler.sessionResponse(r, state), http.StatusOK)
}

func (handler *Handler) HandleNextPhase(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.nextPhase")
	defer span.End()

	writeJSON(w, handler.sessionResponse(r, handler.session.NextPhase()), http.StatusOK)
}

func (handler *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.toggle")
	defer span.End()

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	// exercises outside the active list come back unchanged
	writeJSON(w, handler.session.Toggle(ctx, exerciseID), http.StatusOK)
}
