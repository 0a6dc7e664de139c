package summary

import (
	"context"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

// Summarizer 生成分析摘要。实现不返回错误，失败时自行退回到规则摘要。
type Summarizer interface {
	// Area 单个区域的概览
	Area(ctx context.Context, area string, rows []record.Record) string
	// Custom 针对用户的具体问题作答
	Custom(ctx context.Context, area string, rows []record.Record, question string) string
	// Compare 多区域对比
	Compare(ctx context.Context, groups []model.AreaRows, question string) string
}
