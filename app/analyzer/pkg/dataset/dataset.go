package dataset

import (
	"fmt"
	"strings"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
	"github.com/xuri/excelize/v2"
)

// Table 内存中的数据集，第一行是表头
type Table struct {
	Columns []string
	Rows    []record.Record
}

// LoadError 加载数据集失败
type LoadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *LoadError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("load dataset %s (sheet %s): %v", e.Path, e.Sheet, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load 读取 Excel 工作表。sheet 为空时取第一个工作表。
func Load(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("workbook has no sheets")}
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &LoadError{Path: path, Sheet: sheet, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Sheet: sheet, Err: fmt.Errorf("sheet is empty")}
	}
	return FromRows(rows), nil
}

// FromRows 用二维字符串构建数据集，第一行为表头
func FromRows(rows [][]string) *Table {
	t := &Table{}
	if len(rows) == 0 {
		return t
	}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		t.Columns = append(t.Columns, h)
	}

	for _, raw := range rows[1:] {
		if blank(raw) {
			continue
		}
		rec := make(record.Record, 0, len(t.Columns))
		for i, col := range t.Columns {
			var cell string
			if i < len(raw) {
				cell = raw[i]
			}
			rec = append(rec, record.Field{Key: col, Value: parseCell(cell)})
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseCell 数字单元格转 float64，空单元格和 NA 为 nil，其它保持字符串
func parseCell(s string) any {
	s = strings.TrimSpace(s)
	switch s {
	case "", "NA", "N/A", "-":
		return nil
	}
	if f, ok := record.ToNumber(s); ok {
		return f
	}
	return s
}
