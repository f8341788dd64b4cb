package chart_test

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/chart"
)

func logWithReps(ts time.Time, reps ...int) workout.ExerciseLog {
	sets := make([]workout.SetResult, 0, len(reps))
	for _, r := range reps {
		sets = append(sets, workout.SetResult{Reps: r})
	}
	return workout.ExerciseLog{
		ID:         ts.String(),
		ExerciseID: "d1-1",
		Timestamp:  ts.UnixMilli(),
		Sets:       sets,
	}
}

func TestProject_InsufficientData(t *testing.T) {
	p := chart.Project(nil, chart.DefaultCanvas, nil)
	assert.True(t, p.InsufficientData)
	assert.Empty(t, p.Points)
	assert.Empty(t, p.LinePath())
	assert.Empty(t, p.AreaPath())

	one := []workout.ExerciseLog{logWithReps(time.Now(), 10)}
	p = chart.Project(one, chart.DefaultCanvas, nil)
	assert.True(t, p.InsufficientData)
	assert.Empty(t, p.Points)
}

func TestProject_TwoSessions(t *testing.T) {
	t1 := time.Date(2025, 3, 4, 18, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 6, 18, 0, 0, 0, time.UTC)
	logs := []workout.ExerciseLog{
		logWithReps(t1, 5, 5, 5),
		logWithReps(t2, 8, 6, 6),
	}

	p := chart.Project(logs, chart.DefaultCanvas, time.UTC)
	require.False(t, p.InsufficientData)
	require.Len(t, p.Points, 2)

	assert.InDelta(t, 13.5, p.MinValue, 1e-9)
	assert.InDelta(t, 22.0, p.MaxValue, 1e-9)

	first, second := p.Points[0], p.Points[1]
	assert.InDelta(t, 20, first.X, 1e-9)
	assert.InDelta(t, 330, second.X, 1e-9)
	assert.InDelta(t, 140-(1.5/8.5)*120, first.Y, 1e-9)
	assert.InDelta(t, 140-(6.5/8.5)*120, second.Y, 1e-9)
	// higher total reps are drawn higher up (smaller y)
	assert.Less(t, second.Y, first.Y)

	assert.Equal(t, "Mar 4", first.Date)
	assert.Equal(t, "Mar 6", second.Date)
	assert.Equal(t, 15, first.TotalReps)
	assert.Equal(t, 20, second.TotalReps)
	assert.Equal(t, t2.UnixMilli(), second.Timestamp)
}

func TestProject_PointsWithinCanvas(t *testing.T) {
	canvas := chart.Canvas{Width: 300, Height: 150, Padding: 20}
	now := time.Now()
	logs := []workout.ExerciseLog{
		logWithReps(now, 10, 10),
		logWithReps(now.Add(time.Hour), 3),
		logWithReps(now.Add(2*time.Hour), 40),
		logWithReps(now.Add(3*time.Hour), 25, 1),
	}

	p := chart.Project(logs, canvas, nil)
	require.Len(t, p.Points, len(logs))
	for i, pt := range p.Points {
		assert.GreaterOrEqual(t, pt.X, canvas.Padding)
		assert.LessOrEqual(t, pt.X, canvas.Width-canvas.Padding)
		assert.GreaterOrEqual(t, pt.Y, canvas.Padding)
		assert.LessOrEqual(t, pt.Y, canvas.Height-canvas.Padding)
		if i > 0 {
			assert.Greater(t, pt.X, p.Points[i-1].X)
		}
	}
}

func TestProject_FlatSeries(t *testing.T) {
	now := time.Now()

	equal := []workout.ExerciseLog{logWithReps(now, 10), logWithReps(now.Add(time.Minute), 10)}
	p := chart.Project(equal, chart.DefaultCanvas, nil)
	require.Len(t, p.Points, 2)
	assert.Equal(t, p.Points[0].Y, p.Points[1].Y)

	// all-zero totals collapse the range; it must not produce NaN
	zeros := []workout.ExerciseLog{logWithReps(now), logWithReps(now.Add(time.Minute))}
	p = chart.Project(zeros, chart.DefaultCanvas, nil)
	require.Len(t, p.Points, 2)
	assert.Equal(t, 0.0, p.MinValue)
	assert.Equal(t, 0.0, p.MaxValue)
	for _, pt := range p.Points {
		assert.False(t, math.IsNaN(pt.Y))
		assert.False(t, math.IsInf(pt.Y, 0))
		assert.InDelta(t, 140, pt.Y, 1e-9)
	}
}

func TestProject_DateLabelLocation(t *testing.T) {
	ts := time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC)
	logs := []workout.ExerciseLog{logWithReps(ts, 1), logWithReps(ts.Add(time.Hour), 2)}

	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata not available: %s", err)
	}
	p := chart.Project(logs, chart.DefaultCanvas, ny)
	assert.Equal(t, "Dec 31", p.Points[0].Date)
}

func TestProjection_Paths(t *testing.T) {
	now := time.Now()
	logs := []workout.ExerciseLog{logWithReps(now, 10), logWithReps(now.Add(time.Minute), 20)}
	canvas := chart.Canvas{Width: 120, Height: 100, Padding: 10}

	p := chart.Project(logs, canvas, nil)
	// min 9, max 22: y1 = 90 - (1/13)*80, y2 = 90 - (11/13)*80
	assert.Equal(t, "M 10 83.85 L 110 22.31", p.LinePath())
	assert.Equal(t, "M 10 83.85 L 110 22.31 L 110 90 L 10 90 Z", p.AreaPath())
}

func TestProjection_RenderSVG(t *testing.T) {
	now := time.Now()
	logs := []workout.ExerciseLog{
		logWithReps(now, 10),
		logWithReps(now.Add(24*time.Hour), 12),
		logWithReps(now.Add(48*time.Hour), 15),
	}

	var buf bytes.Buffer
	p := chart.Project(logs, chart.DefaultCanvas, nil)
	require.NoError(t, p.RenderSVG(&buf, "Pike Push-ups"))
	assert.Contains(t, buf.String(), "<svg")

	buf.Reset()
	require.NoError(t, p.RenderPNG(&buf, "Pike Push-ups"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestProjection_RenderSVG_Placeholder(t *testing.T) {
	var buf bytes.Buffer
	p := chart.Project(nil, chart.DefaultCanvas, nil)
	require.NoError(t, p.RenderSVG(&buf, "x"))
	assert.Contains(t, buf.String(), `width="350"`)
	assert.Contains(t, buf.String(), chart.NotEnoughDataText)

	assert.Error(t, p.RenderPNG(&buf, "x"))
}

func TestCanvas_Validate(t *testing.T) {
	require.NoError(t, chart.DefaultCanvas.Validate())

	for _, c := range []chart.Canvas{
		{Width: math.NaN(), Height: 160, Padding: 20},
		{Width: math.Inf(1), Height: 160, Padding: 20},
		{Width: 350, Height: math.Inf(-1), Padding: 20},
		{Width: 350, Height: 160, Padding: math.NaN()},
		{Width: 350, Height: 160, Padding: -1},
		{Width: 40, Height: 160, Padding: 20},
		{Width: 350, Height: 0, Padding: 0},
	} {
		assert.ErrorIs(t, c.Validate(), chart.ErrInvalidCanvas, "%+v", c)
	}
}
