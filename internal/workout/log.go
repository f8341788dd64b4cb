package workout

import (
	"errors"
	"fmt"
)

var ErrInvalidLog = errors.New("invalid exercise log")

type SetResult struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight,omitempty"`
}

// ExerciseLog is one logged performance of an exercise.
// Timestamp is epoch milliseconds, assigned when the log is built.
type ExerciseLog struct {
	ID           string      `json:"id"`
	ExerciseID   string      `json:"exerciseId"`
	ExerciseName string      `json:"exerciseName"`
	Timestamp    int64       `json:"timestamp"`
	Sets         []SetResult `json:"sets"`
	Note         string      `json:"note,omitempty"`
}

func (l ExerciseLog) TotalReps() int {
	total := 0
	for _, s := range l.Sets {
		total += s.Reps
	}
	return total
}

// MaxWeight is 0 for a log without sets or without any weighted set.
func (l ExerciseLog) MaxWeight() float64 {
	maxWeight := 0.0
	for _, s := range l.Sets {
		if s.Weight > maxWeight {
			maxWeight = s.Weight
		}
	}
	return maxWeight
}

func (l ExerciseLog) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("%w: id empty", ErrInvalidLog)
	}
	if l.ExerciseID == "" {
		return fmt.Errorf("%w: exercise id empty", ErrInvalidLog)
	}
	if l.Timestamp <= 0 {
		return fmt.Errorf("%w: timestamp not set", ErrInvalidLog)
	}
	for i, s := range l.Sets {
		if s.Reps <= 0 {
			return fmt.Errorf("%w: set %d has no reps", ErrInvalidLog, i)
		}
		if s.Weight < 0 {
			return fmt.Errorf("%w: set %d has negative weight", ErrInvalidLog, i)
		}
	}
	return nil
}
