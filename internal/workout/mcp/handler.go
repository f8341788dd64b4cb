package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/hybridpro/internal/workout/chart"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
	canvas  chart.Canvas
}

// NewHandler builds a handler with the given service. The canvas is used
// for charts when the caller does not pass its own size.
func NewHandler(service contextService, canvas chart.Canvas) *Handler {
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = chart.DefaultCanvas
	}
	return &Handler{
		service: service,
		canvas:  canvas,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// ProgramInput is the input for get_program.
type ProgramInput struct {
	Day int `json:"day,omitempty" jsonschema:"Program day 1-7; omit for the whole week"`
}

// GetProgramTool returns the MCP tool handler for get_program.
func (h *Handler) GetProgramTool() func(context.Context, *mcp.CallToolRequest, ProgramInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProgramInput) (*mcp.CallToolResult, any, error) {
		if in.Day < 0 || in.Day > 7 {
			return errorResult("Invalid day: use 1-7"), nil, nil
		}
		text, err := h.service.GetProgram(ctx, in.Day)
		if err != nil {
			return errorResult("Error fetching program: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// ExerciseInput is the input for tools working on a single exercise.
type ExerciseInput struct {
	ExerciseID string `json:"exercise_id" jsonschema:"Exercise id from the program (e.g. d1-1, w3)"`
}

// GetExerciseHistoryTool returns the MCP tool handler for get_exercise_history.
func (h *Handler) GetExerciseHistoryTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseID == "" {
			return errorResult("exercise_id is required"), nil, nil
		}
		history, err := h.service.GetExerciseHistory(ctx, in.ExerciseID)
		if err != nil {
			return errorResult("Error fetching exercise history: " + err.Error()), nil, nil
		}
		return jsonResult(history), nil, nil
	}
}

// GetLastLogTool returns the MCP tool handler for get_last_log.
func (h *Handler) GetLastLogTool() func(context.Context, *mcp.CallToolRequest, ExerciseInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ExerciseInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseID == "" {
			return errorResult("exercise_id is required"), nil, nil
		}
		last, err := h.service.GetLastLog(ctx, in.ExerciseID)
		if err != nil {
			return errorResult("Error fetching last log: " + err.Error()), nil, nil
		}
		if !last.Found {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("No logs for exercise %s yet.", in.ExerciseID)}},
			}, nil, nil
		}
		return jsonResult(last), nil, nil
	}
}

// ProgressChartInput is the input for get_progress_chart.
type ProgressChartInput struct {
	ExerciseID string  `json:"exercise_id" jsonschema:"Exercise id from the program (e.g. d1-1)"`
	Width      float64 `json:"width,omitempty" jsonschema:"Canvas width, default 350"`
	Height     float64 `json:"height,omitempty" jsonschema:"Canvas height, default 160"`
	Padding    float64 `json:"padding,omitempty" jsonschema:"Canvas padding, default 20"`
}

// ProgressChartOutput is the projection plus ready-made SVG path data.
type ProgressChartOutput struct {
	chart.Projection
	LinePath string `json:"linePath,omitempty"`
	AreaPath string `json:"areaPath,omitempty"`
}

// GetProgressChartTool returns the MCP tool handler for get_progress_chart.
func (h *Handler) GetProgressChartTool() func(context.Context, *mcp.CallToolRequest, ProgressChartInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ProgressChartInput) (*mcp.CallToolResult, any, error) {
		if in.ExerciseID == "" {
			return errorResult("exercise_id is required"), nil, nil
		}
		canvas := h.canvas
		if in.Width > 0 {
			canvas.Width = in.Width
		}
		if in.Height > 0 {
			canvas.Height = in.Height
		}
		if in.Padding > 0 {
			canvas.Padding = in.Padding
		}
		if err := canvas.Validate(); err != nil {
			return errorResult("Error building chart: " + err.Error()), nil, nil
		}

		projection, err := h.service.GetProgressChart(ctx, in.ExerciseID, canvas)
		if err != nil {
			return errorResult("Error building chart: " + err.Error()), nil, nil
		}
		return jsonResult(ProgressChartOutput{
			Projection: projection,
			LinePath:   projection.LinePath(),
			AreaPath:   projection.AreaPath(),
		}), nil, nil
	}
}

// GetSessionProgressTool returns the MCP tool handler for get_session_progress.
func (h *Handler) GetSessionProgressTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		state, err := h.service.GetSessionProgress(ctx)
		if err != nil {
			return errorResult("Error fetching session progress: " + err.Error()), nil, nil
		}
		return jsonResult(state), nil, nil
	}
}
