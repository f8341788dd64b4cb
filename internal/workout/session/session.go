package session

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/telemetry/metrics"
	"github.com/2beens/hybridpro/internal/telemetry/tracing"
	"github.com/2beens/hybridpro/internal/workout"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=session_test

type logsRepo interface {
	Load(ctx context.Context) ([]workout.ExerciseLog, error)
	Save(ctx context.Context, logs []workout.ExerciseLog) error
}

type ExerciseView struct {
	program.Exercise
	Completed bool `json:"completed"`
}

type State struct {
	Day          int               `json:"day"`
	Plan         program.DailyPlan `json:"plan"`
	Phase        program.Phase     `json:"phase"`
	Finished     bool              `json:"finished"`
	Active       []ExerciseView    `json:"active"`
	Percentage   int               `json:"percentage"`
	NutritionTip string            `json:"nutritionTip,omitempty"`
}

type ToggleResult struct {
	ExerciseID string `json:"exerciseId"`
	Completed  bool   `json:"completed"`
	// Changed is false when the exercise is not part of the active list
	Changed    bool `json:"changed"`
	Percentage int  `json:"percentage"`
}

type LogResult struct {
	Log           workout.ExerciseLog `json:"log"`
	AutoCompleted bool                `json:"autoCompleted"`
	Persisted     bool                `json:"persisted"`
	Percentage    int                 `json:"percentage"`
}

// Session holds the day being trained, its completion marks and the
// append-only log history. Completion is kept per phase and never persisted.
type Session struct {
	catalog        *program.Catalog
	repo           logsRepo
	metricsManager *metrics.Manager

	mutex     sync.RWMutex
	day       int
	phase     program.Phase
	finished  bool
	completed map[program.Phase]map[string]bool
	logs      []workout.ExerciseLog

	// keeps history writes in append order
	persistMutex sync.Mutex
}

func New(catalog *program.Catalog, repo logsRepo, metricsManager *metrics.Manager) *Session {
	day := 1
	if len(catalog.Days) > 0 {
		day = catalog.Days[0].Day
	}
	return &Session{
		catalog:        catalog,
		repo:           repo,
		metricsManager: metricsManager,
		day:            day,
		phase:          program.PhaseWarmup,
		completed:      newCompletion(),
		logs:           []workout.ExerciseLog{},
	}
}

func newCompletion() map[program.Phase]map[string]bool {
	c := make(map[program.Phase]map[string]bool, len(program.Phases))
	for _, p := range program.Phases {
		c[p] = make(map[string]bool)
	}
	return c
}

// Load replaces the in-memory history with the persisted one.
// A failed load is not fatal: the session starts with an empty history.
func (s *Session) Load(ctx context.Context) int {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.load")
	defer span.End()

	logs, err := s.repo.Load(ctx)
	if err != nil {
		log.Warnf("load exercise logs, starting with empty history: %s", err)
		if s.metricsManager != nil {
			s.metricsManager.CounterLogsLoadFailures.Inc()
		}
		logs = []workout.ExerciseLog{}
	}

	s.mutex.Lock()
	s.logs = logs
	s.mutex.Unlock()

	if s.metricsManager != nil {
		s.metricsManager.GaugeLogs.Set(float64(len(logs)))
	}
	span.SetAttributes(attribute.Int("logs", len(logs)))
	log.Debugf("loaded %d exercise logs", len(logs))
	return len(logs)
}

// Logs returns a copy of the history in append order.
func (s *Session) Logs() []workout.ExerciseLog {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	logs := make([]workout.ExerciseLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// LastTimestamp is the newest timestamp in the history, 0 when empty.
func (s *Session) LastTimestamp() int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var last int64
	for _, l := range s.logs {
		last = max(last, l.Timestamp)
	}
	return last
}

// StartDay switches to another day of the program, back at the warm-up with nothing completed.
func (s *Session) StartDay(ctx context.Context, day int) (State, error) {
	_, span := tracing.GlobalTracer.Start(ctx, "session.startDay")
	defer span.End()
	span.SetAttributes(attribute.Int("day", day))

	if _, err := s.catalog.Day(day); err != nil {
		return State{}, err
	}

	s.mutex.Lock()
	s.day = day
	s.phase = program.PhaseWarmup
	s.finished = false
	s.completed = newCompletion()
	state := s.stateLocked()
	s.mutex.Unlock()

	if s.metricsManager != nil {
		s.metricsManager.CounterDaysStarted.Inc()
	}
	s.reportCompletion(state.Percentage)
	return state, nil
}

func (s *Session) SetPhase(phase program.Phase) (State, error) {
	if !phase.IsValid() {
		return State{}, fmt.Errorf("%w: %q", program.ErrInvalidPhase, phase)
	}

	s.mutex.Lock()
	s.phase = phase
	s.finished = false
	state := s.stateLocked()
	s.mutex.Unlock()

	s.reportCompletion(state.Percentage)
	return state, nil
}

// NextPhase walks warm-up, main, cool-down. Moving on from the cool-down finishes the workout.
func (s *Session) NextPhase() State {
	s.mutex.Lock()
	if next, ok := s.phase.Next(); ok {
		s.phase = next
	} else {
		s.finished = true
	}
	state := s.stateLocked()
	s.mutex.Unlock()

	s.reportCompletion(state.Percentage)
	return state
}

func (s *Session) State() State {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.stateLocked()
}

// Toggle flips the completion mark of an exercise in the active list.
// Exercises outside the active list are left alone.
func (s *Session) Toggle(ctx context.Context, exerciseID string) ToggleResult {
	_, span := tracing.GlobalTracer.Start(ctx, "session.toggle")
	defer span.End()
	span.SetAttributes(attribute.String("exercise_id", exerciseID))

	s.mutex.Lock()
	active := s.activeLocked()
	phase := s.phase
	res := ToggleResult{ExerciseID: exerciseID}
	if containsExercise(active, exerciseID) {
		done := s.completed[phase]
		if done[exerciseID] {
			delete(done, exerciseID)
		} else {
			done[exerciseID] = true
		}
		res.Completed = done[exerciseID]
		res.Changed = true
	}
	res.Percentage = Percentage(active, s.completed[phase])
	s.mutex.Unlock()

	if res.Changed {
		if s.metricsManager != nil {
			s.metricsManager.CounterCompletionToggles.With(prometheus.Labels{
				"phase":     string(phase),
				"completed": strconv.FormatBool(res.Completed),
			}).Inc()
		}
		s.reportCompletion(res.Percentage)
	}
	return res
}

func (s *Session) IsCompleted(exerciseID string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.completed[s.phase][exerciseID]
}

func (s *Session) Percentage() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return Percentage(s.activeLocked(), s.completed[s.phase])
}

// LogAndComplete appends the log, writes the whole history to the store and
// marks the exercise completed when it is in the active list.
// Store failures are logged and counted; the in-memory history stays authoritative.
func (s *Session) LogAndComplete(ctx context.Context, exerciseLog workout.ExerciseLog) (_ LogResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "session.logAndComplete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise_id", exerciseLog.ExerciseID))

	if err := exerciseLog.Validate(); err != nil {
		return LogResult{}, err
	}

	s.persistMutex.Lock()
	defer s.persistMutex.Unlock()

	s.mutex.Lock()
	s.logs = append(s.logs, exerciseLog)
	snapshot := make([]workout.ExerciseLog, len(s.logs))
	copy(snapshot, s.logs)

	res := LogResult{Log: exerciseLog}
	active := s.activeLocked()
	done := s.completed[s.phase]
	if containsExercise(active, exerciseLog.ExerciseID) && !done[exerciseLog.ExerciseID] {
		done[exerciseLog.ExerciseID] = true
		res.AutoCompleted = true
	}
	res.Percentage = Percentage(active, done)
	s.mutex.Unlock()

	if s.metricsManager != nil {
		s.metricsManager.CounterLogsSaved.Inc()
		s.metricsManager.GaugeLogs.Set(float64(len(snapshot)))
	}
	s.reportCompletion(res.Percentage)

	res.Persisted = s.persist(ctx, snapshot)
	return res, nil
}

func (s *Session) persist(ctx context.Context, logs []workout.ExerciseLog) bool {
	start := time.Now()
	err := s.repo.Save(ctx, logs)
	if s.metricsManager != nil {
		s.metricsManager.HistPersistDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		log.Errorf("persist %d exercise logs: %s", len(logs), err)
		if s.metricsManager != nil {
			s.metricsManager.CounterLogsPersistFailures.Inc()
		}
		return false
	}
	return true
}

func (s *Session) reportCompletion(percentage int) {
	if s.metricsManager != nil {
		s.metricsManager.GaugePhaseCompletion.Set(float64(percentage))
	}
}

func (s *Session) activeLocked() []program.Exercise {
	active, err := s.catalog.ActiveExercises(s.day, s.phase)
	if err != nil {
		// day and phase are validated on the way in
		log.Errorf("active exercises for day %d [%s]: %s", s.day, s.phase, err)
		return []program.Exercise{}
	}
	return active
}

func (s *Session) stateLocked() State {
	plan, _ := s.catalog.Day(s.day)
	active := s.activeLocked()
	done := s.completed[s.phase]

	views := make([]ExerciseView, 0, len(active))
	for _, ex := range active {
		views = append(views, ExerciseView{
			Exercise:  ex,
			Completed: done[ex.ID],
		})
	}

	return State{
		Day:          s.day,
		Plan:         plan,
		Phase:        s.phase,
		Finished:     s.finished,
		Active:       views,
		Percentage:   Percentage(active, done),
		NutritionTip: s.catalog.NutritionTip,
	}
}

func containsExercise(exercises []program.Exercise, id string) bool {
	for _, ex := range exercises {
		if ex.ID == id {
			return true
		}
	}
	return false
}

// Percentage is round(100 * completed / active) over the active list, 0 for an empty list.
// Completion marks of exercises outside the list do not count.
func Percentage(active []program.Exercise, completed map[string]bool) int {
	if len(active) == 0 {
		return 0
	}
	done := 0
	for _, ex := range active {
		if completed[ex.ID] {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(active))))
}
