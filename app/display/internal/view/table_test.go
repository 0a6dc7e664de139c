package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTable_ColumnsFromWhitelistAndFirstRow(t *testing.T) {
	rows := records(t, `[
		{"city": "Pune", "year": 2020, "extra": 1, "final location": "Wakad", "__price_computed__": 4000},
		{"final location": "Wakad", "year": 2021, "city": null, "office_sold - igr": 3}
	]`)

	tbl := BuildTable(rows, nil)
	require.NotNil(t, tbl)

	assert.Equal(t, []string{"final location", "year", "city", "__price_computed__"}, tbl.Columns)
	assert.Equal(t, []string{"FINAL LOCATION", "YEAR", "CITY", "PRICE COMPUTED"}, tbl.Headers)
	assert.Equal(t, [][]string{
		{"Wakad", "2020", "Pune", "4000"},
		{"Wakad", "2021", "", ""},
	}, tbl.Rows)
}

func TestBuildTable_Empty(t *testing.T) {
	assert.Nil(t, BuildTable(nil, nil))
}

func TestBuildTable_CustomWhitelist(t *testing.T) {
	tbl := BuildTable(records(t, `[{"a": 1, "b": 2}]`), []string{"b", "missing", "b"})
	assert.Equal(t, []string{"b"}, tbl.Columns)
}

func TestHeaderLabel(t *testing.T) {
	assert.Equal(t, "TOTAL SALES - IGR", HeaderLabel("total_sales - igr"))
	assert.Equal(t, "PRICE COMPUTED", HeaderLabel("__price_computed__"))
	assert.Equal(t, "TOTAL CARPET AREA SUPPLIED (SQFT)", HeaderLabel("total_carpet_area_supplied (sqft)"))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, "", CellText(nil))
	assert.Equal(t, "4800.5", CellText(4800.5))
	assert.Equal(t, "true", CellText(true))
	assert.Equal(t, "Wakad", CellText("Wakad"))
	assert.Equal(t, `[1,2]`, CellText([]any{1.0, 2.0}))
}
