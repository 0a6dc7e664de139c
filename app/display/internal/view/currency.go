package view

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatCurrency 以卢比符号和千分位格式化金额，整数不带小数位
func FormatCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	format := "#,###.##"
	if v == math.Trunc(v) {
		format = "#,###."
	}
	return sign + "₹" + humanize.FormatFloat(format, v)
}
