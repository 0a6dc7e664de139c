package server

import (
	"context"
	"errors"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/dataset"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/engine"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/summary"
)

type analyzerFunc func(ctx context.Context, query string) (*model.Response, error)

func (f analyzerFunc) Analyze(ctx context.Context, query string) (*model.Response, error) {
	return f(ctx, query)
}

type fakeHistory struct {
	entries []model.QueryEntry
	limit   int
}

func (f *fakeHistory) RecentQueries(_ context.Context, limit int) ([]model.QueryEntry, error) {
	f.limit = limit
	return f.entries, nil
}

func newEngine() *engine.Engine {
	table := dataset.FromRows([][]string{
		{"year", "final location", "flat - weighted average rate"},
		{"2020", "Wakad", "5000"},
		{"2021", "Wakad", "6000"},
		{"2021", "Akurdi", "4000"},
	})
	limits := config.LimitsConfig{MaxCompareAreas: 3, TableRows: 20, CompareTableRows: 10, CompareTableTotal: 30}
	return engine.NewEngine(table, summary.Fallback{}, nil, limits)
}

func serve(t *testing.T, a Analyzer, h History, target string) (int, string) {
	t.Helper()
	srv := NewHTTPServer(config.ServerConfig{}, a, h, klog.NewStdLogger(io.Discard))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, target, nil))
	return rec.Code, rec.Body.String()
}

func TestAnalyze_SingleArea(t *testing.T) {
	for _, path := range []string{"/api/analyze/", "/api/analyze"} {
		code, body := serve(t, newEngine(), nil, path+"?area=Wakad")
		require.Equal(t, nethttp.StatusOK, code, path)

		assert.Equal(t, "analysis", gjson.Get(body, "query_type").String())
		assert.Equal(t, "Wakad", gjson.Get(body, "area").String())
		assert.Contains(t, gjson.Get(body, "summary").String(), "Found 2 records for Wakad")
		assert.Equal(t, int64(2), gjson.Get(body, "chart.#").Int())
		assert.Equal(t, 2020.0, gjson.Get(body, "chart.0.year").Float())
		assert.Equal(t, `["flat - weighted average rate"]`, gjson.Get(body, "used_price_columns").Raw)
		assert.False(t, gjson.Get(body, "areas").Exists())
	}
}

func TestAnalyze_Comparison(t *testing.T) {
	code, body := serve(t, newEngine(), nil, "/api/analyze/?area=Compare%20Wakad%20and%20Akurdi")
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "comparison", gjson.Get(body, "query_type").String())
	assert.Equal(t, `["Wakad","Akurdi"]`, gjson.Get(body, "areas").Raw)
	assert.Equal(t, "Akurdi", gjson.Get(body, "chart.2.area").String())
}

func TestAnalyze_NoQuery(t *testing.T) {
	code, body := serve(t, newEngine(), nil, "/api/analyze/?area=%20%20")
	assert.Equal(t, nethttp.StatusBadRequest, code)
	assert.JSONEq(t, `{"error":"No query provided"}`, body)
}

func TestAnalyze_NoAreaKeepsEmptyLists(t *testing.T) {
	code, body := serve(t, newEngine(), nil, "/api/analyze/?area=show%20me%20the%20price")
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "[]", gjson.Get(body, "chart").Raw)
	assert.Equal(t, "[]", gjson.Get(body, "table").Raw)
	assert.Equal(t, "[]", gjson.Get(body, "used_price_columns").Raw)
}

func TestAnalyze_Failure(t *testing.T) {
	a := analyzerFunc(func(context.Context, string) (*model.Response, error) {
		return nil, errors.New("dataset unavailable")
	})
	code, body := serve(t, a, nil, "/api/analyze/?area=Wakad")
	assert.Equal(t, nethttp.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"dataset unavailable"}`, body)
}

func TestAnalyze_PanicRecovered(t *testing.T) {
	a := analyzerFunc(func(context.Context, string) (*model.Response, error) {
		panic("boom")
	})
	code, body := serve(t, a, nil, "/api/analyze/?area=Wakad")
	assert.Equal(t, nethttp.StatusInternalServerError, code)
	assert.True(t, gjson.Get(body, "error").Exists())
}

func TestQueries(t *testing.T) {
	code, _ := serve(t, newEngine(), nil, "/api/queries/")
	assert.Equal(t, nethttp.StatusServiceUnavailable, code)

	h := &fakeHistory{entries: []model.QueryEntry{{
		Query:     "Wakad",
		QueryType: model.QueryTypeAnalysis,
		Areas:     []string{"Wakad"},
		Records:   2,
		Duration:  1500 * time.Millisecond,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}}}
	code, body := serve(t, newEngine(), h, "/api/queries/?limit=5")
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, 5, h.limit)
	assert.Equal(t, "Wakad", gjson.Get(body, "0.query").String())
	assert.Equal(t, int64(1500), gjson.Get(body, "0.duration_ms").Int())
}

func TestHealthz(t *testing.T) {
	code, body := serve(t, newEngine(), nil, "/healthz")
	assert.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "ok", body)
}
