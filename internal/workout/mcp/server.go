package mcp

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/hybridpro/internal/program"
	"github.com/2beens/hybridpro/internal/workout"
	"github.com/2beens/hybridpro/internal/workout/chart"
	"github.com/2beens/hybridpro/internal/workout/session"
)

type NewServerParams struct {
	Catalog    *program.Catalog
	Session    *session.Session
	WeightUnit string
	Canvas     chart.Canvas
	Location   *time.Location
}

// NewServer builds an MCP server with workout tools: program, exercise history,
// last log, progress chart, session progress.
// Served over stdio by cmd/workout_mcp and mounted at /mcp by the main service.
func NewServer(params NewServerParams) *mcp.Server {
	analyzer := workout.NewAnalyzer(params.Session, params.WeightUnit)
	svc := NewContextService(params.Catalog, analyzer, params.Session, params.Location)
	h := NewHandler(svc, params.Canvas)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "hybridpro-workout",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_program",
		Description: "Returns the HYBRID PRO weekly program as markdown: warm-up and cool-down routines plus every day's exercises (id, name, sets, reps or duration, note). Optional arg: day (1-7) for a single day. Rest days have no exercises.",
	}, h.GetProgramTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_history",
		Description: "Returns every logged session of one exercise, oldest first, with sets (reps, weight) and note. Arg: exercise_id (e.g. d1-1). Use when you need progression over time.",
	}, h.GetExerciseHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_last_log",
		Description: "Returns the most recent log of one exercise and its summary line (e.g. \"Last: 18 reps, 50 lbs, 2 days ago\"). Arg: exercise_id.",
	}, h.GetLastLogTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_progress_chart",
		Description: "Returns chart coordinates of total reps per session for one exercise, with SVG line and area path data. Args: exercise_id; optional width, height, padding. Fewer than two sessions give insufficientData=true.",
	}, h.GetProgressChartTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_session_progress",
		Description: "Returns the current training day, phase (warmup, main, cooldown), active exercises with completion marks and the completion percentage.",
	}, h.GetSessionProgressTool())

	return s
}
