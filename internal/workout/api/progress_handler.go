package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/chart"
	"github.com/2beens/hybridpro/pkg"
)

type ProgressItem struct {
	workout.ProgressEntry
	LatestDate string           `json:"latestDate"`
	Chart      chart.Projection `json:"chart"`
}

type ChartResponse struct {
	chart.Projection
	ExerciseID string `json:"exerciseId"`
	LinePath   string `json:"linePath,omitempty"`
	AreaPath   string `json:"areaPath,omitempty"`
}

func (handler *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.overview")
	defer span.End()

	entries := handler.analyzer.Progress(ctx)
	items := make([]ProgressItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ProgressItem{
			ProgressEntry: e,
			LatestDate:    chart.DateLabel(e.LatestTimestamp, handler.location),
			Chart:         chart.Project(e.History, handler.canvas, handler.location),
		})
	}

	writeJSON(w, items, http.StatusOK)
}

func (handler *Handler) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.chart")
	defer span.End()

	canvas, err := handler.canvasFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	projection := chart.Project(handler.analyzer.ExerciseHistory(ctx, exerciseID), canvas, handler.location)
	writeJSON(w, ChartResponse{
		Projection: projection,
		ExerciseID: exerciseID,
		LinePath:   projection.LinePath(),
		AreaPath:   projection.AreaPath(),
	}, http.StatusOK)
}

func (handler *Handler) HandleChartSVG(w http.ResponseWriter, r *http.Request) {
	handler.renderChart(w, r, pkg.ContentType.SVG, chart.Projection.RenderSVG)
}

func (handler *Handler) HandleChartPNG(w http.ResponseWriter, r *http.Request) {
	handler.renderChart(w, r, pkg.ContentType.PNG, chart.Projection.RenderPNG)
}

func (handler *Handler) renderChart(
	w http.ResponseWriter,
	r *http.Request,
	contentType string,
	render func(chart.Projection, io.Writer, string) error,
) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.renderChart")
	defer span.End()

	canvas, err := handler.canvasFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	history := handler.analyzer.ExerciseHistory(ctx, exerciseID)
	title := exerciseID
	if len(history) > 0 {
		title = history[len(history)-1].ExerciseName
	}

	var buf bytes.Buffer
	if err := render(chart.Project(history, canvas, handler.location), &buf, title); err != nil {
		log.Errorf("render chart for [%s]: %s", exerciseID, err)
		http.Error(w, "failed to render chart", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, contentType, buf.Bytes())
}

func (handler *Handler) canvasFromQuery(r *http.Request) (chart.Canvas, error) {
	canvas := handler.canvas
	query := r.URL.Query()
	for name, target := range map[string]*float64{
		"width":   &canvas.Width,
		"height":  &canvas.Height,
		"padding": &canvas.Padding,
	} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return chart.Canvas{}, fmt.Errorf("invalid %s: %q", name, raw)
		}
		*target = v
	}

	if err := canvas.Validate(); err != nil {
		return chart.Canvas{}, err
	}
	return canvas, nil
}
