package view

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrEmptyChart = errors.New("chart has no plottable points")

const maxYearTicks = 12

// RenderChartSVG 把趋势图渲染为 SVG。
// 对比模式下某个区域缺失的年份会让折线断开，而不是连到下一个点。
func RenderChartSVG(c *Chart, width, height int) ([]byte, error) {
	if c == nil || len(c.Years) == 0 {
		return nil, ErrEmptyChart
	}

	var (
		series     []chart.Series
		yMin, yMax = math.Inf(1), math.Inf(-1)
	)
	for _, s := range c.Series {
		for _, seg := range c.segments(s) {
			xs := make([]float64, 0, len(seg)+1)
			ys := make([]float64, 0, len(seg)+1)
			for _, p := range seg {
				xs = append(xs, float64(p.Year))
				ys = append(ys, p.Value)
				yMin = math.Min(yMin, p.Value)
				yMax = math.Max(yMax, p.Value)
			}
			if len(seg) == 1 {
				// 单点线段只画圆点
				xs = append(xs, xs[0])
				ys = append(ys, ys[0])
			}
			series = append(series, chart.ContinuousSeries{
				Name:    s.Name,
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(s.Color),
			})
		}
	}
	if len(series) == 0 {
		return nil, ErrEmptyChart
	}

	xMin, xMax := float64(c.Years[0]), float64(c.Years[len(c.Years)-1])
	if xMin == xMax {
		xMin, xMax = xMin-1, xMax+1
	}
	if yMin == yMax {
		pad := math.Abs(yMin) * 0.1
		if pad == 0 {
			pad = 1
		}
		yMin, yMax = yMin-pad, yMax+pad
	}

	graph := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 24, Bottom: 20}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks: yearTicks(c.Years),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return FormatCurrency(f)
				}
				return ""
			},
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// segments 把一条折线切成连续的线段
func (c *Chart) segments(s Series) [][]Point {
	if c.Mode == SingleSeries {
		pts := make([]Point, len(s.Points))
		copy(pts, s.Points)
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].Year < pts[j].Year })
		if len(pts) == 0 {
			return nil
		}
		return [][]Point{pts}
	}

	var (
		out [][]Point
		cur []Point
	)
	for _, row := range c.Rows {
		v, ok := row.Values[s.Name]
		if !ok {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, Point{Year: row.Year, Value: v})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func yearTicks(years []int) []chart.Tick {
	step := 1
	if len(years) > maxYearTicks {
		step = (len(years) + maxYearTicks - 1) / maxYearTicks
	}
	ticks := make([]chart.Tick, 0, len(years)/step+1)
	for i := 0; i < len(years); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(years[i]), Label: strconv.Itoa(years[i])})
	}
	return ticks
}

func lineStyle(hex string) chart.Style {
	col := drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}
