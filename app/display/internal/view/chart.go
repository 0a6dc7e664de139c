package view

import (
	"math"
	"sort"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

const (
	FieldYear  = "year"
	FieldArea  = "area"
	FieldPrice = "__price_computed__"
)

// Palette 折线颜色，按区域首次出现的顺序循环使用
var Palette = []string{"#2563eb", "#16a34a", "#f59e0b", "#dc2626", "#7c3aed", "#0891b2"}

type ChartMode int

const (
	SingleSeries ChartMode = iota
	Comparison
)

type Point struct {
	Year  int
	Value float64
}

// Row 对比模式下按年份透视后的一行，Values 以区域名为键
type Row struct {
	Year   int
	Values map[string]float64
}

type Series struct {
	Name   string
	Color  string
	Points []Point
}

// Chart 趋势图数据
type Chart struct {
	Mode ChartMode
	// Years x 轴上出现的年份，升序去重
	Years []int
	// Points 单序列模式下的 {year, price}，保持输入顺序
	Points []Point
	// Rows 对比模式下的透视行，按年份升序
	Rows   []Row
	Series []Series
}

// BuildChart 把后端返回的 chart 记录转换成趋势图。
// 任意一条记录带有 area 字段时进入对比模式，每个区域一条折线；否则是单条价格线。
// 没有可用数据时返回 nil。
func BuildChart(records []record.Record) *Chart {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if _, ok := areaOf(r); ok {
			return buildComparison(records)
		}
	}
	return buildSingle(records)
}

func buildSingle(records []record.Record) *Chart {
	c := &Chart{Mode: SingleSeries}
	for _, r := range records {
		year, ok := yearOf(r)
		if !ok {
			continue
		}
		v, ok := ValueOf(r)
		if !ok {
			continue
		}
		c.Points = append(c.Points, Point{Year: year, Value: v})
	}
	if len(c.Points) == 0 {
		return nil
	}

	seen := make(map[int]bool)
	for _, p := range c.Points {
		if !seen[p.Year] {
			seen[p.Year] = true
			c.Years = append(c.Years, p.Year)
		}
	}
	sort.Ints(c.Years)
	c.Series = []Series{{Name: "Price", Color: Palette[0], Points: c.Points}}
	return c
}

func buildComparison(records []record.Record) *Chart {
	c := &Chart{Mode: Comparison}
	rows := make(map[int]*Row)
	var areas []string
	colors := make(map[string]string)

	for _, r := range records {
		area, ok := areaOf(r)
		if !ok {
			continue
		}
		year, ok := yearOf(r)
		if !ok {
			continue
		}
		v, ok := ValueOf(r)
		if !ok {
			continue
		}
		// 没有任何数值的区域不占颜色，也不出现在图例里
		if _, seen := colors[area]; !seen {
			colors[area] = Palette[len(areas)%len(Palette)]
			areas = append(areas, area)
		}
		row, ok := rows[year]
		if !ok {
			row = &Row{Year: year, Values: make(map[string]float64)}
			rows[year] = row
			c.Years = append(c.Years, year)
		}
		// 同一年同一区域出现多次时以最后一条为准
		row.Values[area] = v
	}
	if len(c.Years) == 0 {
		return nil
	}

	sort.Ints(c.Years)
	for _, y := range c.Years {
		c.Rows = append(c.Rows, *rows[y])
	}
	for _, area := range areas {
		s := Series{Name: area, Color: colors[area]}
		for _, row := range c.Rows {
			if v, ok := row.Values[area]; ok {
				s.Points = append(s.Points, Point{Year: row.Year, Value: v})
			}
		}
		c.Series = append(c.Series, s)
	}
	return c
}

// ValueOf 取记录的绘图数值：优先 __price_computed__（存在且非 null），
// 否则取第一个不是 year 的数值字段
func ValueOf(r record.Record) (float64, bool) {
	if v, ok := r.Number(FieldPrice); ok {
		return v, true
	}
	for _, f := range r {
		if f.Key == FieldYear || f.Key == FieldPrice {
			continue
		}
		if v, ok := record.AsNumber(f.Value); ok {
			return v, true
		}
	}
	return 0, false
}

func yearOf(r record.Record) (int, bool) {
	y, ok := r.Number(FieldYear)
	if !ok || y != math.Trunc(y) {
		return 0, false
	}
	return int(y), true
}

func areaOf(r record.Record) (string, bool) {
	s, ok := r.String(FieldArea)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
