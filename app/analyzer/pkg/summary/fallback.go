package summary

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
	"github.com/dustin/go-humanize"
)

const priceField = "__price_computed__"

// YearlyPoint 某一年的平均价格
type YearlyPoint struct {
	Year     int     `json:"year"`
	AvgPrice float64 `json:"avg_price"`
}

// Fallback 不依赖 LLM 的规则摘要
type Fallback struct{}

var _ Summarizer = Fallback{}

func (Fallback) Area(_ context.Context, area string, rows []record.Record) string {
	return basicStats(area, rows)
}

func (Fallback) Custom(_ context.Context, area string, rows []record.Record, _ string) string {
	return basicStats(area, rows)
}

func (Fallback) Compare(_ context.Context, groups []model.AreaRows, _ string) string {
	if len(groups) == 0 {
		return "No area data provided for comparison."
	}
	lines := make([]string, 0, len(groups))
	for _, g := range groups {
		condensed := Condense(g.Rows, 3)
		if len(condensed) > 0 && condensed[len(condensed)-1].AvgPrice != 0 {
			latest := condensed[len(condensed)-1].AvgPrice
			lines = append(lines, fmt.Sprintf("%s: %d records. Latest avg: %s", g.Area, len(g.Rows), FormatINR(latest)))
		} else {
			lines = append(lines, fmt.Sprintf("%s: %d records.", g.Area, len(g.Rows)))
		}
	}
	return strings.Join(lines, " | ")
}

func basicStats(area string, rows []record.Record) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No data available for %s.", area)
	}

	prices := Prices(rows)
	var years []int
	for _, r := range rows {
		if y, ok := yearOf(r); ok {
			years = append(years, y)
		}
	}
	if len(prices) == 0 || len(years) == 0 {
		return fmt.Sprintf("Found %d records for %s. Insufficient numeric data to compute price statistics.", len(rows), area)
	}

	avg, lo, hi := stats(prices)
	sort.Ints(years)
	return fmt.Sprintf("Found %d records for %s from %d to %d. Average price: %s. Price range: %s to %s.",
		len(rows), area, years[0], years[len(years)-1], FormatINR(avg), FormatINR(lo), FormatINR(hi))
}

// Prices 所有行中非空的 __price_computed__
func Prices(rows []record.Record) []float64 {
	var out []float64
	for _, r := range rows {
		v, _ := r.Get(priceField)
		if p, ok := record.ToNumber(v); ok {
			out = append(out, p)
		}
	}
	return out
}

// Condense 按年份汇总平均价格，只保留最近 topN 年
func Condense(rows []record.Record, topN int) []YearlyPoint {
	sums := make(map[int][]float64)
	for _, r := range rows {
		y, ok := yearOf(r)
		if !ok {
			continue
		}
		p, ok := priceOf(r)
		if !ok {
			continue
		}
		sums[y] = append(sums[y], p)
	}

	out := make([]YearlyPoint, 0, len(sums))
	for y, vals := range sums {
		avg, _, _ := stats(vals)
		out = append(out, YearlyPoint{Year: y, AvgPrice: avg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	if topN > 0 && len(out) > topN {
		out = out[len(out)-topN:]
	}
	return out
}

// FormatINR 卢比金额，保留两位小数
func FormatINR(v float64) string {
	if v < 0 {
		return "-₹" + humanize.FormatFloat("#,###.##", -v)
	}
	return "₹" + humanize.FormatFloat("#,###.##", v)
}

func stats(vals []float64) (avg, lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range vals {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return sum / float64(len(vals)), lo, hi
}

func yearOf(r record.Record) (int, bool) {
	for _, key := range []string{"year", "Year", "YEAR"} {
		v, ok := r.Get(key)
		if !ok {
			continue
		}
		if f, ok := record.ToNumber(v); ok {
			return int(f), true
		}
		return 0, false
	}
	return 0, false
}

// priceOf 优先 __price_computed__，其次名称含 price 的列，最后任意数值列
func priceOf(r record.Record) (float64, bool) {
	if v, ok := r.Get(priceField); ok {
		return record.ToNumber(v)
	}
	for _, f := range r {
		if strings.Contains(strings.ToLower(f.Key), "price") {
			if p, ok := record.ToNumber(f.Value); ok {
				return p, true
			}
		}
	}
	for _, f := range r {
		if p, ok := record.ToNumber(f.Value); ok {
			return p, true
		}
	}
	return 0, false
}
