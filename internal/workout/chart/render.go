package chart

import (
	"fmt"
	"html"
	"io"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	lineColor = drawing.ColorFromHex("10b981")
	fillColor = drawing.ColorFromHex("10b981").WithAlpha(48)
	gridColor = drawing.ColorFromHex("334155")
)

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">` +
	`<rect width="100%%" height="100%%" fill="none" stroke="#334155" stroke-dasharray="4 4"/>` +
	`<text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" fill="#64748b" font-size="12">%s</text></svg>`

const NotEnoughDataText = "Not enough data for chart"

func (p Projection) chart(title string) gochart.Chart {
	xValues := make([]float64, 0, len(p.Points))
	yValues := make([]float64, 0, len(p.Points))
	ticks := make([]gochart.Tick, 0, len(p.Points))
	for i, pt := range p.Points {
		xValues = append(xValues, float64(i))
		yValues = append(yValues, float64(pt.TotalReps))
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: pt.Date})
	}

	minValue, maxValue := p.MinValue, p.MaxValue
	if maxValue == minValue {
		maxValue = minValue + 1
	}

	padding := int(p.Canvas.Padding)
	return gochart.Chart{
		Title:  title,
		Width:  int(p.Canvas.Width),
		Height: int(p.Canvas.Height),
		Background: gochart.Style{
			Padding: gochart.Box{Top: padding, Left: padding, Right: padding, Bottom: padding},
		},
		XAxis: gochart.XAxis{
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: minValue, Max: maxValue},
			GridMajorStyle: gochart.Style{
				StrokeColor: gridColor,
				StrokeWidth: 1,
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Total reps",
				XValues: xValues,
				YValues: yValues,
				Style: gochart.Style{
					StrokeColor: lineColor,
					StrokeWidth: 3,
					FillColor:   fillColor,
					DotColor:    lineColor,
					DotWidth:    4,
				},
			},
		},
	}
}

// RenderSVG draws the projection. Insufficient data gives a placeholder image instead.
func (p Projection) RenderSVG(w io.Writer, title string) error {
	if p.InsufficientData {
		width, height := int(p.Canvas.Width), int(p.Canvas.Height)
		_, err := fmt.Fprintf(w, placeholderSVG, width, height, width, height, html.EscapeString(NotEnoughDataText))
		return err
	}

	ch := p.chart(title)
	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("render svg chart: %w", err)
	}
	return nil
}

func (p Projection) RenderPNG(w io.Writer, title string) error {
	if p.InsufficientData {
		return fmt.Errorf("render png chart: %s", NotEnoughDataText)
	}

	ch := p.chart(title)
	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("render png chart: %w", err)
	}
	return nil
}
