package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

const (
	FieldYear  = "year"
	FieldArea  = "area"
	FieldPrice = "__price_computed__"
)

var (
	locationKeywords = []string{"location", "area", "city"}
	priceKeywords    = []string{"price", "cost", "rate", "value"}
)

// LocationColumns 名称里含 location/area/city 的列
func LocationColumns(columns []string) []string {
	return matchColumns(columns, locationKeywords)
}

// PriceColumns 名称里含 price/cost/rate/value 的列
func PriceColumns(columns []string) []string {
	return matchColumns(columns, priceKeywords)
}

func matchColumns(columns, keywords []string) []string {
	var out []string
	for _, c := range columns {
		if containsAny(strings.ToLower(c), keywords) {
			out = append(out, c)
		}
	}
	return out
}

// FilterByArea 任一位置列包含 area（不区分大小写）的行
func FilterByArea(rows []record.Record, locationCols []string, area string) []record.Record {
	needle := strings.ToLower(area)
	var out []record.Record
	for _, r := range rows {
		for _, col := range locationCols {
			v, ok := r.Get(col)
			if !ok || v == nil {
				continue
			}
			if strings.Contains(strings.ToLower(fmt.Sprint(v)), needle) {
				out = append(out, r.Clone())
				break
			}
		}
	}
	return out
}

// ComputePrices 为每行追加 __price_computed__：价格列中数值的平均值，没有数值时为 null。
// 没有任何价格列时取 0。
func ComputePrices(rows []record.Record, priceCols []string) []record.Record {
	for i := range rows {
		if len(priceCols) == 0 {
			rows[i].Set(FieldPrice, 0.0)
			continue
		}
		var sum float64
		var n int
		for _, col := range priceCols {
			v, _ := rows[i].Get(col)
			if f, ok := record.ToNumber(v); ok {
				sum += f
				n++
			}
		}
		if n == 0 {
			rows[i].Set(FieldPrice, nil)
		} else {
			rows[i].Set(FieldPrice, sum/float64(n))
		}
	}
	return rows
}

// FilterRecentYears 保留 year >= max(year) - n 的行，year 缺失的行会被去掉
func FilterRecentYears(rows []record.Record, n int) []record.Record {
	maxYear, ok := math.Inf(-1), false
	for _, r := range rows {
		if y, has := r.Number(FieldYear); has {
			maxYear = math.Max(maxYear, y)
			ok = true
		}
	}
	if !ok {
		return rows
	}
	var out []record.Record
	for _, r := range rows {
		if y, has := r.Number(FieldYear); has && y >= maxYear-float64(n) {
			out = append(out, r)
		}
	}
	return out
}

// YearlyAverages 按年份求 __price_computed__ 的平均值，年份升序。
// area 非空时每条记录带上 area 字段。
func YearlyAverages(rows []record.Record, area string) []record.Record {
	type acc struct {
		sum float64
		n   int
	}
	byYear := make(map[float64]*acc)
	var years []float64
	for _, r := range rows {
		y, ok := r.Number(FieldYear)
		if !ok {
			continue
		}
		a, seen := byYear[y]
		if !seen {
			a = &acc{}
			byYear[y] = a
			years = append(years, y)
		}
		if p, ok := r.Number(FieldPrice); ok {
			a.sum += p
			a.n++
		}
	}
	sort.Float64s(years)

	out := make([]record.Record, 0, len(years))
	for _, y := range years {
		rec := record.Record{{Key: FieldYear, Value: y}}
		if area != "" {
			rec = append(rec, record.Field{Key: FieldArea, Value: area})
		}
		var avg any
		if a := byYear[y]; a.n > 0 {
			avg = a.sum / float64(a.n)
		}
		rec = append(rec, record.Field{Key: FieldPrice, Value: avg})
		out = append(out, rec)
	}
	return out
}

// TableRows 取前 limit 行，null 填充为空字符串
func TableRows(rows []record.Record, limit int) []record.Record {
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]record.Record, 0, len(rows))
	for _, r := range rows {
		c := r.Clone()
		for i := range c {
			if c[i].Value == nil {
				c[i].Value = ""
			}
		}
		out = append(out, c)
	}
	return out
}
