package domain

import "github.com/Sami210105/Real-estate-Chatbot/app/common/record"

// AnalysisResponse 分析后端 /api/analyze/ 的返回结果。
// 除 Summary 外的字段都可能缺失，缺失时对应的面板不展示。
type AnalysisResponse struct {
	Summary          string
	QueryType        string
	UsedPriceColumns []string
	Areas            []string
	Area             string
	Chart            []record.Record
	Table            []record.Record
}

// HasChart 是否需要展示趋势图
func (r *AnalysisResponse) HasChart() bool {
	return r != nil && len(r.Chart) > 0
}

// HasTable 是否需要展示数据表
func (r *AnalysisResponse) HasTable() bool {
	return r != nil && len(r.Table) > 0
}

// AnalyzedAreas 本次分析涉及的区域：对比查询取 Areas，否则取单个 Area
func (r *AnalysisResponse) AnalyzedAreas() []string {
	if r == nil {
		return nil
	}
	if len(r.Areas) > 0 {
		return r.Areas
	}
	if r.Area != "" {
		return []string{r.Area}
	}
	return nil
}
