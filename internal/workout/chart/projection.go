package chart

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/hybridpro/internal/workout"
)

const (
	DateLabelLayout = "Jan 2"

	lowerHeadroom = 0.9
	upperHeadroom = 1.1
)

type Canvas struct {
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Padding float64 `json:"padding"`
}

var DefaultCanvas = Canvas{Width: 350, Height: 160, Padding: 20}

var ErrInvalidCanvas = errors.New("invalid chart canvas")

// Validate rejects non-finite or negative dimensions and a padding that
// leaves no drawing area.
func (c Canvas) Validate() error {
	for name, v := range map[string]float64{
		"width":   c.Width,
		"height":  c.Height,
		"padding": c.Padding,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s %g", ErrInvalidCanvas, name, v)
		}
	}
	if c.Width <= 2*c.Padding || c.Height <= 2*c.Padding {
		return fmt.Errorf("%w: %gx%g too small for padding %g", ErrInvalidCanvas, c.Width, c.Height, c.Padding)
	}
	return nil
}

type Point struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Timestamp int64   `json:"timestamp"`
	Date      string  `json:"date"`
	TotalReps int     `json:"totalReps"`
	MaxWeight float64 `json:"maxWeight"`
}

type Projection struct {
	Canvas           Canvas  `json:"canvas"`
	Points           []Point `json:"points"`
	MinValue         float64 `json:"minValue"`
	MaxValue         float64 `json:"maxValue"`
	InsufficientData bool    `json:"insufficientData"`
}

// Project maps logs, already in display order, onto the canvas.
// X is spread evenly by index, Y by total reps between 90% of the lowest
// and 110% of the highest value. Fewer than two logs cannot form a line.
func Project(logs []workout.ExerciseLog, canvas Canvas, loc *time.Location) Projection {
	if loc == nil {
		loc = time.UTC
	}

	projection := Projection{
		Canvas: canvas,
		Points: []Point{},
	}
	if len(logs) < 2 {
		projection.InsufficientData = true
		return projection
	}

	minReps, maxReps := logs[0].TotalReps(), logs[0].TotalReps()
	for _, l := range logs[1:] {
		total := l.TotalReps()
		minReps = min(minReps, total)
		maxReps = max(maxReps, total)
	}
	projection.MinValue = float64(minReps) * lowerHeadroom
	projection.MaxValue = float64(maxReps) * upperHeadroom

	valueRange := projection.MaxValue - projection.MinValue
	if valueRange == 0 {
		valueRange = 1
	}

	chartW := canvas.Width - 2*canvas.Padding
	chartH := canvas.Height - 2*canvas.Padding
	last := float64(len(logs) - 1)

	for i, l := range logs {
		total := l.TotalReps()
		projection.Points = append(projection.Points, Point{
			X:         canvas.Padding + (float64(i)/last)*chartW,
			Y:         canvas.Height - canvas.Padding - ((float64(total)-projection.MinValue)/valueRange)*chartH,
			Timestamp: l.Timestamp,
			Date:      DateLabel(l.Timestamp, loc),
			TotalReps: total,
			MaxWeight: l.MaxWeight(),
		})
	}

	return projection
}

// LinePath is the SVG path data connecting all points.
func (p Projection) LinePath() string {
	if len(p.Points) == 0 {
		return ""
	}

	var b strings.Builder
	for i, pt := range p.Points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s %s %s", cmd, formatCoord(pt.X), formatCoord(pt.Y))
	}
	return b.String()
}

// AreaPath closes the line down to the baseline, for a filled area under the curve.
func (p Projection) AreaPath() string {
	if len(p.Points) == 0 {
		return ""
	}

	baseline := formatCoord(p.Canvas.Height - p.Canvas.Padding)
	first, last := p.Points[0], p.Points[len(p.Points)-1]
	return fmt.Sprintf(
		"%s L %s %s L %s %s Z",
		p.LinePath(),
		formatCoord(last.X), baseline,
		formatCoord(first.X), baseline,
	)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// DateLabel formats an epoch millisecond timestamp as a short date in loc.
func DateLabel(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ts).In(loc).Format(DateLabelLayout)
}
