package repo

import (
	"context"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/domain"
)

// AnalysisRepo 分析后端接口
type AnalysisRepo interface {
	// Analyze 以自然语言查询请求分析结果。
	// 失败时返回 *domain.APIError 或 *domain.NetworkError。
	Analyze(ctx context.Context, query string) (*domain.AnalysisResponse, error)
}
