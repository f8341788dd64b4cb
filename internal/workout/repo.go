package workout

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/hybridpro/internal/storage"
	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultLogsKey = "exerciseLogs"

// LogsRepo persists the whole log list as one JSON array under a single key.
type LogsRepo struct {
	store storage.Store
	key   string
}

func NewLogsRepo(store storage.Store, key string) *LogsRepo {
	if key == "" {
		key = DefaultLogsKey
	}
	return &LogsRepo{
		store: store,
		key:   key,
	}
}

// Load returns an empty list when nothing was saved yet.
// A stored value that is not a valid log array is an error.
func (r *LogsRepo) Load(ctx context.Context) (_ []ExerciseLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.load")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	raw, found, err := r.store.Load(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("load [%s]: %w", r.key, err)
	}
	if !found || raw == "" {
		return []ExerciseLog{}, nil
	}

	var logs []ExerciseLog
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil, fmt.Errorf("unmarshal [%s]: %w", r.key, err)
	}
	if logs == nil {
		logs = []ExerciseLog{}
	}

	span.SetAttributes(attribute.Int("logs", len(logs)))
	return logs, nil
}

func (r *LogsRepo) Save(ctx context.Context, logs []ExerciseLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.logs.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("logs", len(logs)))

	if logs == nil {
		logs = []ExerciseLog{}
	}
	raw, err := json.Marshal(logs)
	if err != nil {
		return fmt.Errorf("marshal logs: %w", err)
	}

	if err := r.store.Save(ctx, r.key, string(raw)); err != nil {
		return fmt.Errorf("save [%s]: %w", r.key, err)
	}
	return nil
}
