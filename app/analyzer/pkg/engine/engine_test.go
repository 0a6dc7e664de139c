package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/dataset"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	calls []string
}

func (f *fakeSummarizer) Area(_ context.Context, area string, rows []record.Record) string {
	f.calls = append(f.calls, "area:"+area)
	return "area summary"
}

func (f *fakeSummarizer) Custom(_ context.Context, area string, rows []record.Record, question string) string {
	f.calls = append(f.calls, "custom:"+area)
	return "custom summary"
}

func (f *fakeSummarizer) Compare(_ context.Context, groups []model.AreaRows, question string) string {
	f.calls = append(f.calls, "compare")
	return "compare summary"
}

type fakeQueryLog struct {
	entries []model.QueryEntry
	err     error
}

func (f *fakeQueryLog) SaveQuery(_ context.Context, e model.QueryEntry) error {
	f.entries = append(f.entries, e)
	return f.err
}

var limits = config.LimitsConfig{MaxCompareAreas: 3, TableRows: 20, CompareTableRows: 10, CompareTableTotal: 30}

func sampleTable() *dataset.Table {
	return dataset.FromRows([][]string{
		{"year", "final location", "city", "flat - weighted average rate", "total_sales - igr"},
		{"2020", "Wakad", "Pune", "5000", "100"},
		{"2021", "Wakad", "Pune", "6000", "120"},
		{"2022", "Wakad", "Pune", "7000", "130"},
		{"2021", "Akurdi", "Pune", "4000", "50"},
		{"2022", "Akurdi", "Pune", "", "60"},
	})
}

func newTestEngine(store QueryLog) (*Engine, *fakeSummarizer) {
	s := &fakeSummarizer{}
	return NewEngine(sampleTable(), s, store, limits), s
}

func TestAnalyze_EmptyQuery(t *testing.T) {
	e, _ := newTestEngine(nil)
	_, err := e.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestAnalyze_NoArea(t *testing.T) {
	e, s := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "show me the price")
	require.NoError(t, err)
	assert.Equal(t, "Please specify an area name in your query (e.g., Wakad, Akurdi, Hinjewadi).", resp.Summary)
	assert.Empty(t, resp.Chart)
	assert.NotNil(t, resp.Chart)
	assert.Empty(t, resp.QueryType)
	assert.Empty(t, s.calls)
}

func TestAnalyze_SingleArea(t *testing.T) {
	e, s := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "wakad")
	require.NoError(t, err)

	assert.Equal(t, "area summary", resp.Summary)
	assert.Equal(t, model.QueryTypeAnalysis, resp.QueryType)
	assert.Equal(t, "Wakad", resp.Area)
	assert.Equal(t, []string{"area:Wakad"}, s.calls)
	assert.Equal(t, []string{"flat - weighted average rate"}, resp.UsedPriceColumns)

	require.Len(t, resp.Chart, 3)
	for i, want := range []float64{5000, 6000, 7000} {
		year, _ := resp.Chart[i].Number(FieldYear)
		price, _ := resp.Chart[i].Number(FieldPrice)
		assert.Equal(t, float64(2020+i), year)
		assert.Equal(t, want, price)
		assert.False(t, resp.Chart[i].Has(FieldArea))
	}

	require.Len(t, resp.Table, 3)
	price, ok := resp.Table[0].Number(FieldPrice)
	require.True(t, ok)
	assert.Equal(t, 5000.0, price)
}

func TestAnalyze_LongQueryUsesCustomSummary(t *testing.T) {
	e, s := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "Wakad price growth over last 1 years")
	require.NoError(t, err)

	assert.Equal(t, "custom summary", resp.Summary)
	assert.Equal(t, []string{"custom:Wakad"}, s.calls)
	// 2022 is the latest year so only 2021 and 2022 survive
	require.Len(t, resp.Chart, 2)
	year, _ := resp.Chart[0].Number(FieldYear)
	assert.Equal(t, 2021.0, year)
	assert.Len(t, resp.Table, 2)
}

func TestAnalyze_AreaNotFound(t *testing.T) {
	e, s := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "Baner")
	require.NoError(t, err)
	assert.Equal(t, `No data found for "Baner". Try another location like Wakad, Akurdi, or Hinjewadi.`, resp.Summary)
	assert.Empty(t, resp.Table)
	assert.Empty(t, s.calls)
}

func TestAnalyze_Comparison(t *testing.T) {
	e, s := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "Compare Wakad and Akurdi")
	require.NoError(t, err)

	assert.Equal(t, "compare summary", resp.Summary)
	assert.Equal(t, []string{"compare"}, s.calls)
	assert.Equal(t, model.QueryTypeComparison, resp.QueryType)
	assert.Equal(t, []string{"Wakad", "Akurdi"}, resp.Areas)
	assert.Empty(t, resp.Area)

	require.Len(t, resp.Chart, 5)
	area, _ := resp.Chart[3].Get(FieldArea)
	assert.Equal(t, "Akurdi", area)
	// Akurdi 2022 has no price
	v, ok := resp.Chart[4].Get(FieldPrice)
	require.True(t, ok)
	assert.Nil(t, v)

	require.Len(t, resp.Table, 5)
	v, _ = resp.Table[4].Get(FieldPrice)
	assert.Equal(t, "", v)
}

func TestAnalyze_ComparisonSkipsMissingAreas(t *testing.T) {
	e, _ := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "Wakad vs Baner")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wakad"}, resp.Areas)
	assert.Len(t, resp.Chart, 3)
}

func TestAnalyze_ComparisonNothingFound(t *testing.T) {
	e, s := newTestEngine(nil)
	resp, err := e.Analyze(context.Background(), "Compare Baner and Aundh")
	require.NoError(t, err)
	assert.Equal(t, "No data found for areas: Baner, Aundh", resp.Summary)
	assert.Empty(t, resp.QueryType)
	assert.Empty(t, s.calls)
}

func TestAnalyze_ComparisonCapsAreas(t *testing.T) {
	s := &fakeSummarizer{}
	e := NewEngine(sampleTable(), s, nil, config.LimitsConfig{MaxCompareAreas: 1, TableRows: 20, CompareTableRows: 2, CompareTableTotal: 30})
	resp, err := e.Analyze(context.Background(), "Compare Wakad and Akurdi")
	require.NoError(t, err)
	assert.Equal(t, []string{"Wakad"}, resp.Areas)
	assert.Len(t, resp.Table, 2)
}

func TestAnalyze_SavesQuery(t *testing.T) {
	store := &fakeQueryLog{}
	e, _ := newTestEngine(store)
	_, err := e.Analyze(context.Background(), "Wakad")
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, "Wakad", entry.Query)
	assert.Equal(t, model.QueryTypeAnalysis, entry.QueryType)
	assert.Equal(t, []string{"Wakad"}, entry.Areas)
	assert.Equal(t, 3, entry.Records)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestAnalyze_StoreFailureIsIgnored(t *testing.T) {
	store := &fakeQueryLog{err: errors.New("connection refused")}
	e, _ := newTestEngine(store)
	resp, err := e.Analyze(context.Background(), "Akurdi")
	require.NoError(t, err)
	assert.Equal(t, "Akurdi", resp.Area)
}

func TestAnalyze_NoYearColumn(t *testing.T) {
	table := dataset.FromRows([][]string{
		{"location", "price"},
		{"Wakad", "100"},
	})
	e := NewEngine(table, &fakeSummarizer{}, nil, limits)
	resp, err := e.Analyze(context.Background(), "Wakad")
	require.NoError(t, err)
	assert.Empty(t, resp.Chart)
	assert.Len(t, resp.Table, 1)
}
