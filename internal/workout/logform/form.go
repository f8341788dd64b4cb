package logform

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/workout"
)

const (
	MaxReps   = 1000
	MaxWeight = 10000
)

var (
	ErrInvalidSet    = errors.New("invalid set")
	ErrSetOutOfRange = errors.New("set index out of range")
)

// Row is one editable set line. Rows with zero reps are "not performed".
type Row struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

func (r Row) validate() error {
	if r.Reps < 0 || r.Reps > MaxReps {
		return fmt.Errorf("%w: reps must be between 0 and %d, got %d", ErrInvalidSet, MaxReps, r.Reps)
	}
	if r.Weight < 0 || r.Weight > MaxWeight {
		return fmt.Errorf("%w: weight must be between 0 and %d, got %g", ErrInvalidSet, MaxWeight, r.Weight)
	}
	return nil
}

// Form collects the sets of one exercise before they become an ExerciseLog.
// It always holds at least one row.
type Form struct {
	exercise program.Exercise
	rows     []Row
	note     string
}

// New starts a form with as many empty rows as the exercise targets sets.
func New(exercise program.Exercise) *Form {
	return &Form{
		exercise: exercise,
		rows:     make([]Row, exercise.TargetSets()),
	}
}

// FromRows builds a filled form in one go, as submitted by a client.
func FromRows(exercise program.Exercise, rows []Row, note string) (*Form, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: at least one set required", ErrInvalidSet)
	}
	for i, r := range rows {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("set %d: %w", i+1, err)
		}
	}

	f := &Form{
		exercise: exercise,
		rows:     make([]Row, len(rows)),
		note:     note,
	}
	copy(f.rows, rows)
	return f, nil
}

func (f *Form) Exercise() program.Exercise {
	return f.exercise
}

func (f *Form) Rows() []Row {
	rows := make([]Row, len(f.rows))
	copy(rows, f.rows)
	return rows
}

func (f *Form) Note() string {
	return f.note
}

func (f *Form) AddSet() {
	f.rows = append(f.rows, Row{})
}

// RemoveSet drops row i. Removing the last remaining row is a no-op.
func (f *Form) RemoveSet(i int) error {
	if i < 0 || i >= len(f.rows) {
		return fmt.Errorf("%w: %d", ErrSetOutOfRange, i)
	}
	if len(f.rows) == 1 {
		return nil
	}
	f.rows = append(f.rows[:i], f.rows[i+1:]...)
	return nil
}

func (f *Form) UpdateSet(i int, reps int, weight float64) error {
	if i < 0 || i >= len(f.rows) {
		return fmt.Errorf("%w: %d", ErrSetOutOfRange, i)
	}
	row := Row{Reps: reps, Weight: weight}
	if err := row.validate(); err != nil {
		return err
	}
	f.rows[i] = row
	return nil
}

func (f *Form) SetNote(note string) {
	f.note = note
}

// Build emits the log: rows without reps are dropped, a fresh id and timestamp are assigned.
func (f *Form) Build(stamper *workout.Stamper) workout.ExerciseLog {
	sets := make([]workout.SetResult, 0, len(f.rows))
	for _, r := range f.rows {
		if r.Reps <= 0 {
			continue
		}
		sets = append(sets, workout.SetResult{Reps: r.Reps, Weight: r.Weight})
	}

	return workout.ExerciseLog{
		ID:           uuid.NewString(),
		ExerciseID:   f.exercise.ID,
		ExerciseName: f.exercise.Name,
		Timestamp:    stamper.Next(),
		Sets:         sets,
		Note:         f.note,
	}
}
