package workout_test

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/hybridpro/internal/workout"
)

func randomLogs(faker *gofakeit.Faker, n int) []workout.ExerciseLog {
	exerciseIDs := []string{"d1-1", "d1-2", "d2-1", "w3"}
	logs := make([]workout.ExerciseLog, 0, n)
	for i := 0; i < n; i++ {
		logs = append(logs, workout.ExerciseLog{
			ID:         fmt.Sprintf("%d-%s", i, faker.UUID()),
			ExerciseID: faker.RandomString(exerciseIDs),
			// narrow range so timestamp ties happen often
			Timestamp: int64(faker.Number(1, 20)),
			Sets: []workout.SetResult{
				{Reps: faker.Number(1, 30), Weight: float64(faker.Number(0, 100))},
			},
		})
	}
	return logs
}

func indexOf(logs []workout.ExerciseLog, id string) int {
	for i, l := range logs {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func TestHistoryFor_Properties(t *testing.T) {
	faker := gofakeit.New(42)

	for round := 0; round < 50; round++ {
		logs := randomLogs(faker, faker.Number(0, 40))

		total := 0
		for _, id := range []string{"d1-1", "d1-2", "d2-1", "w3"} {
			history := workout.HistoryFor(logs, id)
			total += len(history)

			for i, l := range history {
				assert.Equal(t, id, l.ExerciseID)
				if i == 0 {
					continue
				}
				prev := history[i-1]
				require.LessOrEqual(t, prev.Timestamp, l.Timestamp)
				if prev.Timestamp == l.Timestamp {
					// ties keep append order
					assert.Less(t, indexOf(logs, prev.ID), indexOf(logs, l.ID))
				}
			}
		}
		// partition: every log lands in exactly one history
		assert.Equal(t, len(logs), total)
	}
}

func TestHistoryFor_NoMatch(t *testing.T) {
	history := workout.HistoryFor(nil, "d1-1")
	assert.NotNil(t, history)
	assert.Empty(t, history)

	history = workout.HistoryFor([]workout.ExerciseLog{{ID: "a", ExerciseID: "d1-2", Timestamp: 1}}, "d1-1")
	assert.Empty(t, history)
}

func TestHistoryFor_SortsAscending(t *testing.T) {
	logs := []workout.ExerciseLog{
		{ID: "a", ExerciseID: "d1-1", Timestamp: 300},
		{ID: "b", ExerciseID: "d1-2", Timestamp: 100},
		{ID: "c", ExerciseID: "d1-1", Timestamp: 100},
		{ID: "d", ExerciseID: "d1-1", Timestamp: 200},
		{ID: "e", ExerciseID: "d1-1", Timestamp: 100},
	}

	history := workout.HistoryFor(logs, "d1-1")
	require.Len(t, history, 4)
	assert.Equal(t, "c", history[0].ID)
	assert.Equal(t, "e", history[1].ID)
	assert.Equal(t, "d", history[2].ID)
	assert.Equal(t, "a", history[3].ID)

	// input untouched
	assert.Equal(t, "a", logs[0].ID)
}

func TestLatestFor_Properties(t *testing.T) {
	faker := gofakeit.New(7)

	for round := 0; round < 50; round++ {
		logs := randomLogs(faker, faker.Number(0, 30))
		for _, id := range []string{"d1-1", "d2-1", "missing"} {
			history := workout.HistoryFor(logs, id)
			latest, found := workout.LatestFor(logs, id)

			assert.Equal(t, len(history) > 0, found)
			if !found {
				continue
			}
			for _, h := range history {
				assert.LessOrEqual(t, h.Timestamp, latest.Timestamp)
			}
			// latest agrees with the tail of the sorted history
			assert.Equal(t, history[len(history)-1].ID, latest.ID)
		}
	}
}

func TestLatestFor_TieGoesToLastAppended(t *testing.T) {
	logs := []workout.ExerciseLog{
		{ID: "first", ExerciseID: "d1-1", Timestamp: 500},
		{ID: "older", ExerciseID: "d1-1", Timestamp: 400},
		{ID: "second", ExerciseID: "d1-1", Timestamp: 500},
		{ID: "other", ExerciseID: "d1-2", Timestamp: 900},
	}

	latest, found := workout.LatestFor(logs, "d1-1")
	require.True(t, found)
	assert.Equal(t, "second", latest.ID)

	_, found = workout.LatestFor(logs, "d3-1")
	assert.False(t, found)
}

func TestLoggedExerciseIDs(t *testing.T) {
	logs := []workout.ExerciseLog{
		{ExerciseID: "d2-1"},
		{ExerciseID: "d1-1"},
		{ExerciseID: "d2-1"},
		{ExerciseID: "w3"},
	}
	assert.Equal(t, []string{"d2-1", "d1-1", "w3"}, workout.LoggedExerciseIDs(logs))
	assert.Empty(t, workout.LoggedExerciseIDs(nil))
}
