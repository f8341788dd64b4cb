package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/api"
	"github.com/2beens/hybridpro/internal/workout/session"
)

func (s *IntegrationTestSuite) doRequest(ctx context.Context, method, path, body string) (int, []byte) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reader)
	require.NoError(s.T(), err)
	req.Header.Set("User-Agent", "test-agent")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.httpClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	return resp.StatusCode, respBytes
}

func addLogBody(exerciseID string, reps int) string {
	return fmt.Sprintf(`{"exerciseId":%q,"sets":[{"reps":%d,"weight":50},{"reps":%d,"weight":50}]}`, exerciseID, reps, reps-2)
}

// all log writes live in this one test: the route is rate limited per minute
func (s *IntegrationTestSuite) TestWorkout_LogsPersistedAndRateLimited() {
	ctx := context.Background()
	t := s.T()

	status, body := s.doRequest(ctx, "GET", "/session", "")
	require.Equal(t, http.StatusOK, status)
	var sessionResp api.SessionResponse
	require.NoError(t, json.Unmarshal(body, &sessionResp))
	assert.Equal(t, 1, sessionResp.Day)

	for _, reps := range []int{10, 12, 14} {
		status, body = s.doRequest(ctx, "POST", "/logs", addLogBody("d1-1", reps))
		require.Equal(t, http.StatusCreated, status, string(body))
		var logResult session.LogResult
		require.NoError(t, json.Unmarshal(body, &logResult))
		assert.True(t, logResult.Persisted)
	}

	// the whole history is one json value in the postgres kv_store
	var raw string
	err := s.dbPool.QueryRow(ctx, "SELECT value FROM kv_store WHERE key = $1", "exerciseLogs").Scan(&raw)
	require.NoError(t, err)
	var stored []workout.ExerciseLog
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 3)
	assert.Equal(t, 18, stored[0].TotalReps())
	assert.Equal(t, 26, stored[2].TotalReps())
	for i := 1; i < len(stored); i++ {
		assert.Greater(t, stored[i].Timestamp, stored[i-1].Timestamp)
	}

	status, body = s.doRequest(ctx, "GET", "/logs/exercise/d1-1/latest", "")
	require.Equal(t, http.StatusOK, status)
	var latest workout.LastLogResponse
	require.NoError(t, json.Unmarshal(body, &latest))
	require.True(t, latest.Found)
	assert.Equal(t, "Last: 26 reps, 50 lbs, Just now", latest.Summary)

	status, body = s.doRequest(ctx, "GET", "/logs/export.fit", "")
	require.Equal(t, http.StatusOK, status)
	require.Greater(t, len(body), 12)
	assert.Equal(t, ".FIT", string(body[8:12]))

	// 3 used above, 2 left in this minute
	for i := 0; i < logsWritePerMin-3; i++ {
		status, body = s.doRequest(ctx, "POST", "/logs", addLogBody("d1-2", 8))
		require.Equal(t, http.StatusCreated, status, string(body))
	}
	status, _ = s.doRequest(ctx, "POST", "/logs", addLogBody("d1-2", 8))
	assert.Equal(t, http.StatusTooManyRequests, status)

	// reads are not limited
	status, _ = s.doRequest(ctx, "GET", "/logs", "")
	assert.Equal(t, http.StatusOK, status)

	resp, err := s.httpClient.Get(metricsEndpoint + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	metricsBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(metricsBody), "hybridpro_main_rate_limited_requests 1")
	assert.Contains(t, string(metricsBody), "hybridpro_main_exercise_logs 5")
	assert.Contains(t, string(metricsBody), "pgxpool_")
}

func (s *IntegrationTestSuite) TestWorkout_SessionFlow() {
	ctx := context.Background()
	t := s.T()

	status, body := s.doRequest(ctx, "POST", "/session/day/2/start", "")
	require.Equal(t, http.StatusOK, status, string(body))
	var state session.State
	require.NoError(t, json.Unmarshal(body, &state))
	assert.Equal(t, 2, state.Day)
	assert.Equal(t, "Pull A", state.Plan.Title)
	require.NotEmpty(t, state.Active)

	firstID := state.Active[0].ID
	status, body = s.doRequest(ctx, "POST", "/session/exercise/"+firstID+"/toggle", "")
	require.Equal(t, http.StatusOK, status)
	var toggle session.ToggleResult
	require.NoError(t, json.Unmarshal(body, &toggle))
	assert.True(t, toggle.Changed)
	assert.True(t, toggle.Completed)
	assert.Greater(t, toggle.Percentage, 0)

	status, _ = s.doRequest(ctx, "PUT", "/session/phase/nope", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.doRequest(ctx, "GET", "/program/day/9", "")
	assert.Equal(t, http.StatusNotFound, status)
}
