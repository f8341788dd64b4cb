package logform_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/logform"
)

var pikePushUps = program.Exercise{ID: "d1-1", Name: "Pike Push-ups", Sets: "3", Reps: "5-8"}

func TestNew_RowsFromTargetSets(t *testing.T) {
	assert.Len(t, logform.New(pikePushUps).Rows(), 3)
	assert.Len(t, logform.New(program.Exercise{ID: "d2-1", Sets: "4"}).Rows(), 4)
	assert.Len(t, logform.New(program.Exercise{ID: "w1", Duration: "1 min"}).Rows(), program.DefaultTargetSets)
	assert.Len(t, logform.New(program.Exercise{ID: "x", Sets: "Max"}).Rows(), program.DefaultTargetSets)

	for _, r := range logform.New(pikePushUps).Rows() {
		assert.Equal(t, logform.Row{}, r)
	}
}

func TestForm_AddRemoveSet(t *testing.T) {
	f := logform.New(program.Exercise{ID: "x", Sets: "2"})
	require.NoError(t, f.UpdateSet(0, 10, 0))
	require.NoError(t, f.UpdateSet(1, 8, 0))

	f.AddSet()
	require.Len(t, f.Rows(), 3)
	assert.Equal(t, logform.Row{}, f.Rows()[2])

	require.NoError(t, f.RemoveSet(0))
	require.Len(t, f.Rows(), 2)
	assert.Equal(t, 8, f.Rows()[0].Reps)

	require.NoError(t, f.RemoveSet(1))
	require.Len(t, f.Rows(), 1)

	// the last row stays
	require.NoError(t, f.RemoveSet(0))
	require.Len(t, f.Rows(), 1)
	assert.Equal(t, 8, f.Rows()[0].Reps)

	assert.ErrorIs(t, f.RemoveSet(3), logform.ErrSetOutOfRange)
	assert.ErrorIs(t, f.RemoveSet(-1), logform.ErrSetOutOfRange)
}

func TestForm_UpdateSet_Validation(t *testing.T) {
	f := logform.New(pikePushUps)

	require.NoError(t, f.UpdateSet(0, 0, 0))
	require.NoError(t, f.UpdateSet(1, logform.MaxReps, logform.MaxWeight))

	assert.ErrorIs(t, f.UpdateSet(0, -1, 0), logform.ErrInvalidSet)
	assert.ErrorIs(t, f.UpdateSet(0, 5, -2.5), logform.ErrInvalidSet)
	assert.ErrorIs(t, f.UpdateSet(0, logform.MaxReps+1, 0), logform.ErrInvalidSet)
	assert.ErrorIs(t, f.UpdateSet(0, 5, logform.MaxWeight+1), logform.ErrInvalidSet)
	assert.ErrorIs(t, f.UpdateSet(5, 5, 0), logform.ErrSetOutOfRange)

	// rejected updates leave the row untouched
	assert.Equal(t, logform.Row{}, f.Rows()[0])
}

func TestForm_Build_DropsEmptyRows(t *testing.T) {
	f := logform.New(pikePushUps)
	require.NoError(t, f.UpdateSet(0, 10, 50))
	require.NoError(t, f.UpdateSet(1, 0, 0))
	require.NoError(t, f.UpdateSet(2, 8, 45))
	f.SetNote("felt strong")

	stamper := workout.NewStamper(func() time.Time { return time.UnixMilli(1_700_000_000_000) })
	log := f.Build(stamper)

	assert.NotEmpty(t, log.ID)
	assert.Equal(t, "d1-1", log.ExerciseID)
	assert.Equal(t, "Pike Push-ups", log.ExerciseName)
	assert.Equal(t, int64(1_700_000_000_000), log.Timestamp)
	assert.Equal(t, "felt strong", log.Note)
	require.Len(t, log.Sets, 2)
	assert.Equal(t, workout.SetResult{Reps: 10, Weight: 50}, log.Sets[0])
	assert.Equal(t, workout.SetResult{Reps: 8, Weight: 45}, log.Sets[1])
	require.NoError(t, log.Validate())

	// a second save gets its own id and a later timestamp
	second := f.Build(stamper)
	assert.NotEqual(t, log.ID, second.ID)
	assert.Greater(t, second.Timestamp, log.Timestamp)
}

func TestForm_Build_AllEmpty(t *testing.T) {
	f := logform.New(pikePushUps)
	log := f.Build(workout.NewStamper(nil))
	assert.NotNil(t, log.Sets)
	assert.Empty(t, log.Sets)
	assert.NoError(t, log.Validate())
}

func TestFromRows(t *testing.T) {
	f, err := logform.FromRows(pikePushUps, []logform.Row{{Reps: 10, Weight: 50}, {}, {Reps: 8, Weight: 45}}, "n")
	require.NoError(t, err)
	assert.Len(t, f.Rows(), 3)
	assert.Equal(t, "n", f.Note())
	assert.Equal(t, pikePushUps, f.Exercise())
	assert.Len(t, f.Build(workout.NewStamper(nil)).Sets, 2)

	_, err = logform.FromRows(pikePushUps, nil, "")
	assert.ErrorIs(t, err, logform.ErrInvalidSet)

	_, err = logform.FromRows(pikePushUps, []logform.Row{{Reps: 5}, {Reps: -3}}, "")
	assert.ErrorIs(t, err, logform.ErrInvalidSet)
}
