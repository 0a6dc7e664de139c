package view

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

// DefaultColumns 表格允许展示的列，顺序即展示顺序
var DefaultColumns = []string{
	"final location",
	"year",
	"city",
	"total_sales - igr",
	"total sold - igr",
	"flat_sold - igr",
	"office_sold - igr",
	"others_sold - igr",
	"shop_sold - igr",
	"commercial_sold - igr",
	"total_carpet_area_supplied (sqft)",
	"flat - weighted average rate",
	"office - weighted average rate",
	"others - weighted average rate",
	"shop - weighted average rate",
	"__price_computed__",
}

type Table struct {
	Columns []string
	Headers []string
	Rows    [][]string
}

// BuildTable 用白名单和第一行的字段求交集确定列，之后每行按这些列取值，缺失或 null 显示为空。
// records 为空时返回 nil。
func BuildTable(records []record.Record, whitelist []string) *Table {
	if len(records) == 0 {
		return nil
	}
	if len(whitelist) == 0 {
		whitelist = DefaultColumns
	}

	first := records[0]
	t := &Table{}
	seen := make(map[string]bool)
	for _, col := range whitelist {
		if seen[col] || !first.Has(col) {
			continue
		}
		seen[col] = true
		t.Columns = append(t.Columns, col)
		t.Headers = append(t.Headers, HeaderLabel(col))
	}

	for _, rec := range records {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			v, _ := rec.Get(col)
			cells[i] = CellText(v)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t
}

// HeaderLabel 列名转表头：去掉双下划线，下划线换成空格，转大写
func HeaderLabel(key string) string {
	s := strings.ReplaceAll(key, "__", "")
	s = strings.ReplaceAll(s, "_", " ")
	return strings.ToUpper(s)
}

// CellText 单元格文本，null 为空字符串
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
