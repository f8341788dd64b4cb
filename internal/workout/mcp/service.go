package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/chart"
	"github.com/2beens/hybridpro/internal/workout/session"
)

// exerciseAnalyzer provides log history lookups (for dependency injection and testing).
type exerciseAnalyzer interface {
	ExerciseHistory(ctx context.Context, exerciseID string) []workout.ExerciseLog
	LastLog(ctx context.Context, exerciseID string, now time.Time) workout.LastLogResponse
}

// sessionState provides the current training day state.
type sessionState interface {
	State() session.State
}

// contextService provides workout context data (program, logs, charts, session progress).
// Used by Handler for testability.
type contextService interface {
	GetProgram(ctx context.Context, day int) (string, error)
	GetExerciseHistory(ctx context.Context, exerciseID string) ([]workout.ExerciseLog, error)
	GetLastLog(ctx context.Context, exerciseID string) (workout.LastLogResponse, error)
	GetProgressChart(ctx context.Context, exerciseID string, canvas chart.Canvas) (chart.Projection, error)
	GetSessionProgress(ctx context.Context) (session.State, error)
}

// ContextService holds dependencies and implements the workout context business logic.
type ContextService struct {
	catalog  *program.Catalog
	analyzer exerciseAnalyzer
	session  sessionState
	location *time.Location
	now      func() time.Time
}

// NewContextService builds a ContextService with the given dependencies.
func NewContextService(
	catalog *program.Catalog,
	analyzer exerciseAnalyzer,
	sessionState sessionState,
	location *time.Location,
) *ContextService {
	if location == nil {
		location = time.UTC
	}
	return &ContextService{
		catalog:  catalog,
		analyzer: analyzer,
		session:  sessionState,
		location: location,
		now:      time.Now,
	}
}

// GetProgram renders the weekly program as markdown; day 0 means all days.
func (s *ContextService) GetProgram(_ context.Context, day int) (string, error) {
	if day == 0 {
		return formatProgram(s.catalog), nil
	}
	plan, err := s.catalog.Day(day)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	writeDay(&b, plan)
	return b.String(), nil
}

func formatProgram(catalog *program.Catalog) string {
	var b strings.Builder
	b.WriteString("# HYBRID PRO Weekly Program\n\n")
	if catalog.NutritionTip != "" {
		b.WriteString("Nutrition: ")
		b.WriteString(catalog.NutritionTip)
		b.WriteString("\n\n")
	}

	b.WriteString("## Warm-up (every training day)\n\n")
	writeExercises(&b, catalog.Warmup)
	b.WriteString("## Cool-down (every training day)\n\n")
	writeExercises(&b, catalog.Cooldown)

	for _, plan := range catalog.Days {
		writeDay(&b, plan)
	}

	return strings.TrimSuffix(b.String(), "\n") + "\n"
}

func writeDay(b *strings.Builder, plan program.DailyPlan) {
	fmt.Fprintf(b, "## Day %d: %s\n\n", plan.Day, plan.Title)
	if plan.Focus != "" {
		fmt.Fprintf(b, "Focus: %s\n\n", plan.Focus)
	}
	if plan.IsRestDay {
		b.WriteString("Rest day.")
		if plan.Description != "" {
			b.WriteString(" ")
			b.WriteString(plan.Description)
		}
		b.WriteString("\n\n")
		return
	}
	writeExercises(b, plan.Exercises)
}

func writeExercises(b *strings.Builder, exercises []program.Exercise) {
	b.WriteString("| ID | Exercise | Sets | Reps / Duration | Note |\n|----|----------|------|-----------------|------|\n")
	for _, ex := range exercises {
		volume := ex.Reps
		if volume == "" {
			volume = ex.Duration
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s |\n", ex.ID, ex.Name, orDash(ex.Sets), orDash(volume), orDash(ex.Note))
	}
	b.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// GetExerciseHistory returns the logs of one exercise, oldest first.
func (s *ContextService) GetExerciseHistory(ctx context.Context, exerciseID string) ([]workout.ExerciseLog, error) {
	return s.analyzer.ExerciseHistory(ctx, exerciseID), nil
}

// GetLastLog returns the most recent log of one exercise with its summary line.
func (s *ContextService) GetLastLog(ctx context.Context, exerciseID string) (workout.LastLogResponse, error) {
	return s.analyzer.LastLog(ctx, exerciseID, s.now()), nil
}

// GetProgressChart projects the exercise history onto the given canvas.
func (s *ContextService) GetProgressChart(ctx context.Context, exerciseID string, canvas chart.Canvas) (chart.Projection, error) {
	if err := canvas.Validate(); err != nil {
		return chart.Projection{}, err
	}
	return chart.Project(s.analyzer.ExerciseHistory(ctx, exerciseID), canvas, s.location), nil
}

// GetSessionProgress returns the current day, phase, active exercises and completion.
func (s *ContextService) GetSessionProgress(_ context.Context) (session.State, error) {
	return s.session.State(), nil
}
