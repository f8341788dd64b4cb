package api

import (
	"errors"
	"net/http"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/telemetry/tracing"
)

type ProgramResponse struct {
	NutritionTip string              `json:"nutritionTip"`
	Warmup       []program.Exercise  `json:"warmup"`
	Cooldown     []program.Exercise  `json:"cooldown"`
	Days         []program.DailyPlan `json:"days"`
}

func (handler *Handler) HandleProgram(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.get")
	defer span.End()

	writeJSON(w, ProgramResponse{
		NutritionTip: handler.catalog.NutritionTip,
		Warmup:       handler.catalog.Warmup,
		Cooldown:     handler.catalog.Cooldown,
		Days:         handler.catalog.Days,
	}, http.StatusOK)
}

func (handler *Handler) HandleProgramDay(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.day")
	defer span.End()

	day, ok := dayFromVars(r)
	if !ok {
		http.Error(w, "error, day NaN", http.StatusBadRequest)
		return
	}

	plan, err := handler.catalog.Day(day)
	if errors.Is(err, program.ErrDayNotFound) {
		http.Error(w, "day not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to get day", http.StatusInternalServerError)
		return
	}

	writeJSON(w, plan, http.StatusOK)
}
