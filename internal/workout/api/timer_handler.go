package api

import (
	"net/http"

	"github.com/2beens/hybridpro/internal/telemetry/tracing"
)

func (handler *Handler) HandleTimer(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.timer.get")
	defer span.End()

	writeJSON(w, handler.restTimer.State(), http.StatusOK)
}

func (handler *Handler) HandleTimerToggle(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.timer.toggle")
	defer span.End()

	writeJSON(w, handler.restTimer.Toggle(), http.StatusOK)
}

func (handler *Handler) HandleTimerReset(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.timer.reset")
	defer span.End()

	writeJSON(w, handler.restTimer.Reset(), http.StatusOK)
}
