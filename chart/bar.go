package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/glbter/fund-returns/entities"
)

var ErrEmptyChart = errors.New("nothing to draw")

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}

	return "image/png"
}

const (
	height     = 512
	minWidth   = 640
	barWidth   = 40
	barSpacing = 4
)

// BarChart draws the grouped bar chart as a single go-chart bar chart: one
// bar per fund inside each period group, groups separated by an invisible
// spacer bar that carries the period label.
func BarChart(spec entities.ChartSpec) (gochart.BarChart, error) {
	if spec.IsEmpty() {
		return gochart.BarChart{}, ErrEmptyChart
	}

	bars := make([]gochart.Value, 0, len(spec.Categories)*(len(spec.Series)+1))
	lo, hi := 0.0, 0.0

	for c, period := range spec.Categories {
		bars = append(bars, gochart.Value{
			Label: period.String(),
			Value: 0,
			Style: gochart.Style{
				FillColor:   drawing.ColorTransparent,
				StrokeColor: drawing.ColorTransparent,
			},
		})

		for _, s := range spec.Series {
			v := s.Values[c]
			lo, hi = math.Min(lo, v), math.Max(hi, v)

			color := drawing.ColorFromHex(strings.TrimPrefix(s.Color, "#"))
			bars = append(bars, gochart.Value{
				Label: s.Ticker,
				Value: v,
				Style: gochart.Style{
					FillColor:   color,
					StrokeColor: color,
					StrokeWidth: 1,
				},
			})
		}
	}

	if lo == hi {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05

	width := len(bars)*(barWidth+barSpacing) + 160
	if width < minWidth {
		width = minWidth
	}

	return gochart.BarChart{
		Title: spec.Title,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Width:        width,
		Height:       height,
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: gochart.YAxis{
			Name:  spec.YAxisTitle,
			Range: &gochart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Bars: bars,
	}, nil
}

// Render writes the chart as PNG or SVG. An empty spec yields ErrEmptyChart
// and nothing is written.
func Render(w io.Writer, spec entities.ChartSpec, format Format) error {
	bc, err := BarChart(spec)
	if err != nil {
		return err
	}

	rp := gochart.PNG
	if format == SVG {
		rp = gochart.SVG
	}

	if err := bc.Render(rp, w); err != nil {
		return fmt.Errorf("render %s chart: %w", format, err)
	}

	return nil
}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format %q", s)
	}
}
