package model

import (
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

const (
	QueryTypeAnalysis   = "analysis"
	QueryTypeComparison = "comparison"
)

// Response /api/analyze/ 的返回体
type Response struct {
	Summary          string          `json:"summary"`
	Chart            []record.Record `json:"chart"`
	Table            []record.Record `json:"table"`
	UsedPriceColumns []string        `json:"used_price_columns"`
	QueryType        string          `json:"query_type,omitempty"`
	Areas            []string        `json:"areas,omitempty"`
	Area             string          `json:"area,omitempty"`
}

// NewResponse 只带摘要的空结果，chart/table 编码为 []
func NewResponse(summary string) *Response {
	return &Response{
		Summary:          summary,
		Chart:            []record.Record{},
		Table:            []record.Record{},
		UsedPriceColumns: []string{},
	}
}

// AreaRows 一个区域筛选出的数据行
type AreaRows struct {
	Area string
	Rows []record.Record
}

// QueryEntry 查询日志
type QueryEntry struct {
	Query     string
	QueryType string
	Areas     []string
	Records   int
	Summary   string
	Duration  time.Duration
	CreatedAt time.Time
}
