package summary

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"golang.org/x/time/rate"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/logger"
)

// NewSummarizer 根据配置创建摘要器：配置了 api_key 时走 LLM，否则只用规则摘要
func NewSummarizer(ctx context.Context, cfg *config.Config) (Summarizer, error) {
	if cfg.LLM.APIKey == "" {
		logger.Log.Info("未配置 LLM api_key，使用规则摘要")
		return Fallback{}, nil
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	limit := rate.Inf
	if cfg.Concurrency.RPM > 0 {
		limit = rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	}
	limiter := rate.NewLimiter(limit, max(cfg.Concurrency.QPS, 1))

	logger.Log.Infof("使用 LLM 生成摘要: %s", cfg.LLM.Model)
	return NewLLM(chatModel, limiter), nil
}
