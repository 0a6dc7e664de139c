package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/dataset"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/logger"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/summary"
	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

// ErrEmptyQuery 查询为空
var ErrEmptyQuery = errors.New("no query provided")

// QueryLog 查询日志存储
type QueryLog interface {
	SaveQuery(ctx context.Context, entry model.QueryEntry) error
}

// Engine 查询分析引擎
type Engine struct {
	table      *dataset.Table
	summarizer summary.Summarizer
	store      QueryLog
	limits     config.LimitsConfig

	locationCols []string
	priceCols    []string
	hasYear      bool
}

// NewEngine 创建引擎实例，store 可以为 nil
func NewEngine(table *dataset.Table, s summary.Summarizer, store QueryLog, limits config.LimitsConfig) *Engine {
	return &Engine{
		table:        table,
		summarizer:   s,
		store:        store,
		limits:       limits,
		locationCols: LocationColumns(table.Columns),
		priceCols:    PriceColumns(table.Columns),
		hasYear:      slices.Contains(table.Columns, FieldYear),
	}
}

// Analyze 解析自然语言查询并返回摘要、图表和表格数据
func (e *Engine) Analyze(ctx context.Context, query string) (*model.Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	logger.Log.Infof("收到查询: %s", query)

	var resp *model.Response
	areas := ExtractAreas(query)
	switch {
	case len(areas) == 0:
		resp = model.NewResponse("Please specify an area name in your query (e.g., Wakad, Akurdi, Hinjewadi).")
	case IsComparison(query) && len(areas) >= 2:
		resp = e.compare(ctx, query, areas)
	default:
		resp = e.single(ctx, query, areas[0])
	}

	logger.Log.Infof("查询完成: %s, chart=%d table=%d, 耗时 %s", query, len(resp.Chart), len(resp.Table), time.Since(start))
	e.saveQuery(ctx, query, resp, time.Since(start))
	return resp, nil
}

func (e *Engine) compare(ctx context.Context, query string, areas []string) *model.Response {
	candidates := areas
	if n := e.limits.MaxCompareAreas; n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}

	var groups []model.AreaRows
	chart := []record.Record{}
	table := []record.Record{}
	for _, area := range candidates {
		rows := FilterByArea(e.table.Rows, e.locationCols, area)
		if len(rows) == 0 {
			continue
		}
		rows = ComputePrices(rows, e.priceCols)
		groups = append(groups, model.AreaRows{Area: area, Rows: rows})
		table = append(table, TableRows(rows, e.limits.CompareTableRows)...)
		if e.hasYear {
			chart = append(chart, YearlyAverages(rows, area)...)
		}
	}

	if len(groups) == 0 {
		return model.NewResponse(fmt.Sprintf("No data found for areas: %s", strings.Join(areas, ", ")))
	}
	if n := e.limits.CompareTableTotal; n > 0 && len(table) > n {
		table = table[:n]
	}

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Area)
	}

	resp := model.NewResponse(e.summarizer.Compare(ctx, groups, query))
	resp.Chart = chart
	resp.Table = table
	resp.UsedPriceColumns = e.usedPriceColumns()
	resp.QueryType = model.QueryTypeComparison
	resp.Areas = names
	return resp
}

func (e *Engine) single(ctx context.Context, query, area string) *model.Response {
	rows := FilterByArea(e.table.Rows, e.locationCols, area)
	if len(rows) == 0 {
		return model.NewResponse(fmt.Sprintf("No data found for %q. Try another location like Wakad, Akurdi, or Hinjewadi.", area))
	}
	rows = ComputePrices(rows, e.priceCols)

	if IsTimeBased(query) && e.hasYear {
		if n, ok := YearsWindow(query); ok {
			rows = FilterRecentYears(rows, n)
		}
	}

	chart := []record.Record{}
	if e.hasYear {
		chart = YearlyAverages(rows, "")
	}

	var text string
	if len(strings.Fields(query)) > 2 {
		text = e.summarizer.Custom(ctx, area, rows, query)
	} else {
		text = e.summarizer.Area(ctx, area, rows)
	}

	resp := model.NewResponse(text)
	resp.Chart = chart
	resp.Table = TableRows(rows, e.limits.TableRows)
	resp.UsedPriceColumns = e.usedPriceColumns()
	resp.QueryType = model.QueryTypeAnalysis
	resp.Area = area
	return resp
}

func (e *Engine) usedPriceColumns() []string {
	return append([]string{}, e.priceCols...)
}

func (e *Engine) saveQuery(ctx context.Context, query string, resp *model.Response, d time.Duration) {
	if e.store == nil {
		return
	}
	areas := resp.Areas
	if resp.Area != "" {
		areas = []string{resp.Area}
	}
	entry := model.QueryEntry{
		Query:     query,
		QueryType: resp.QueryType,
		Areas:     areas,
		Records:   len(resp.Table),
		Summary:   resp.Summary,
		Duration:  d,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := e.store.SaveQuery(ctx, entry); err != nil {
		logger.Log.Warnf("保存查询记录失败: %v", err)
	}
}
