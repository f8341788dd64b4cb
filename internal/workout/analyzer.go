package workout

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/hybridpro/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=workout_test

type logSource interface {
	Logs() []ExerciseLog
}

// ProgressEntry describes one logged exercise in the progress overview.
type ProgressEntry struct {
	ExerciseID      string        `json:"exerciseId"`
	ExerciseName    string        `json:"exerciseName"`
	LogsCount       int           `json:"logsCount"`
	LatestTimestamp int64         `json:"latestTimestamp"`
	LatestTotalReps int           `json:"latestTotalReps"`
	History         []ExerciseLog `json:"-"`
}

type LastLogResponse struct {
	Found   bool         `json:"found"`
	Log     *ExerciseLog `json:"log,omitempty"`
	Summary string       `json:"summary,omitempty"`
}

type Analyzer struct {
	source     logSource
	weightUnit string
}

func NewAnalyzer(source logSource, weightUnit string) *Analyzer {
	if weightUnit == "" {
		weightUnit = DefaultWeightUnit
	}
	return &Analyzer{
		source:     source,
		weightUnit: weightUnit,
	}
}

func (a *Analyzer) ExerciseHistory(ctx context.Context, exerciseID string) []ExerciseLog {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.exerciseHistory")
	defer span.End()

	history := HistoryFor(a.source.Logs(), exerciseID)
	span.SetAttributes(
		attribute.String("exercise_id", exerciseID),
		attribute.Int("history", len(history)),
	)
	return history
}

func (a *Analyzer) LastLog(ctx context.Context, exerciseID string, now time.Time) LastLogResponse {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.lastLog")
	defer span.End()
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	latest, found := LatestFor(a.source.Logs(), exerciseID)
	if !found {
		return LastLogResponse{Found: false}
	}

	return LastLogResponse{
		Found:   true,
		Log:     &latest,
		Summary: Summary(latest, a.weightUnit, now),
	}
}

// LastLogSummary is the "Last: ..." line of the most recent log, empty when there is none.
func (a *Analyzer) LastLogSummary(ctx context.Context, exerciseID string, now time.Time) (string, bool) {
	last := a.LastLog(ctx, exerciseID, now)
	return last.Summary, last.Found
}

// Progress lists every logged exercise in first logged order, with its sorted history.
func (a *Analyzer) Progress(ctx context.Context) []ProgressEntry {
	_, span := tracing.GlobalTracer.Start(ctx, "analyzer.workout.progress")
	defer span.End()

	logs := a.source.Logs()
	ids := LoggedExerciseIDs(logs)
	entries := make([]ProgressEntry, 0, len(ids))
	for _, id := range ids {
		history := HistoryFor(logs, id)
		latest := history[len(history)-1]
		entries = append(entries, ProgressEntry{
			ExerciseID:      id,
			ExerciseName:    latest.ExerciseName,
			LogsCount:       len(history),
			LatestTimestamp: latest.Timestamp,
			LatestTotalReps: latest.TotalReps(),
			History:         history,
		})
	}

	span.SetAttributes(attribute.Int("exercises", len(entries)))
	return entries
}
