package view

import (
	"strings"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/domain"
)

// Summary 摘要面板
type Summary struct {
	Text      string
	Provider  string
	QueryType string
	Sources   []string
	Areas     string
}

func BuildSummary(resp *domain.AnalysisResponse, provider string) *Summary {
	if resp == nil {
		return nil
	}
	return &Summary{
		Text:      resp.Summary,
		Provider:  provider,
		QueryType: resp.QueryType,
		Sources:   resp.UsedPriceColumns,
		Areas:     strings.Join(resp.AnalyzedAreas(), ", "),
	}
}
