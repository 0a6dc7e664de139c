package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/logger"
	dm "github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
)

const systemPrompt = "You are a professional real estate market analyst."

// LLM 通过大模型生成摘要，调用失败时退回规则摘要
type LLM struct {
	chatModel  model.ChatModel
	limiter    *rate.Limiter
	maxRetries int
	baseDelay  time.Duration
	fallback   Fallback
}

var _ Summarizer = (*LLM)(nil)

// NewLLM 用已初始化的模型和限流器创建摘要器
func NewLLM(cm model.ChatModel, limiter *rate.Limiter) *LLM {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &LLM{
		chatModel:  cm,
		limiter:    limiter,
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}
}

func (s *LLM) Area(ctx context.Context, area string, rows []record.Record) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No data found for %s.", area)
	}

	condensed := Condense(rows, 6)
	yearRange := "N/A"
	if len(condensed) > 0 {
		yearRange = fmt.Sprintf("%d to %d", condensed[0].Year, condensed[len(condensed)-1].Year)
	}
	var avg, lo, hi float64
	if prices := Prices(rows); len(prices) > 0 {
		avg, lo, hi = stats(prices)
	}
	yearly, _ := json.Marshal(condensed)

	prompt := fmt.Sprintf(`You are a real estate analyst. Provide a concise 3-4 sentence data-driven summary using the stats and the compact yearly data below.

Area: %s
Total Records: %d
Year Range: %s
Average Price: %s
Price Range: %s to %s

Compact Yearly Averages: %s

Write 3-4 sentences covering: an overview of the market, notable price trends, and 1-2 key insights or cautions. Keep it professional and concise.`,
		area, len(rows), yearRange, FormatINR(avg), FormatINR(lo), FormatINR(hi), yearly)

	text, err := s.generate(ctx, prompt, 220, 0.5)
	if err != nil {
		logger.Log.Errorf("生成区域摘要失败 [%s]: %v", area, err)
		return s.fallback.Area(ctx, area, rows)
	}
	return text
}

func (s *LLM) Custom(ctx context.Context, area string, rows []record.Record, question string) string {
	if question == "" {
		question = area
	}

	var prompt string
	if len(rows) == 0 {
		prompt = question + "\n\nNote: No rows are available for this query."
	} else {
		sample := rows
		if len(sample) > 5 {
			sample = sample[:5]
		}
		contextJSON, _ := json.Marshal(map[string]any{
			"description":      "Condensed yearly averages and a small sample of rows for the user's query.",
			"condensed_yearly": Condense(rows, 8),
			"sample_rows":      sample,
		})
		prompt = strings.Join([]string{
			"You are a professional real estate market analyst. Use the JSON context to answer the user's question precisely and concisely.",
			"User question: " + question,
			"Context JSON:",
			string(contextJSON),
		}, "\n\n")
	}

	text, err := s.generate(ctx, prompt, 350, 0.6)
	if err != nil {
		logger.Log.Errorf("生成问答摘要失败 [%s]: %v", area, err)
		return s.fallback.Custom(ctx, area, rows, question)
	}
	return text
}

func (s *LLM) Compare(ctx context.Context, groups []dm.AreaRows, question string) string {
	if len(groups) == 0 {
		return "No area data provided for comparison."
	}

	areas := make(map[string][]YearlyPoint, len(groups))
	for _, g := range groups {
		areas[g.Area] = Condense(g.Rows, 6)
	}
	contextJSON, _ := json.Marshal(map[string]any{
		"description": "Yearly averages for each area (compact).",
		"areas":       areas,
	})
	if question == "" {
		question = "Compare the listed areas in terms of recent price trends, relative growth, and notable differences. Provide a concise comparison and highlight any area with exceptional behavior."
	}
	prompt := strings.Join([]string{
		"You are a professional real estate market analyst.",
		"Task: " + question,
		"Context JSON:",
		string(contextJSON),
	}, "\n\n")

	text, err := s.generate(ctx, prompt, 400, 0.6)
	if err != nil {
		logger.Log.Errorf("生成对比摘要失败: %v", err)
		return s.fallback.Compare(ctx, groups, question)
	}
	return text
}

// generate 调用模型，遇到 429 时指数退避重试
func (s *LLM) generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	var lastErr error
	for i := 0; i <= s.maxRetries; i++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return "", err
		}

		messages := []*schema.Message{
			{Role: schema.System, Content: systemPrompt},
			{Role: schema.User, Content: prompt},
		}
		resp, err := s.chatModel.Generate(ctx, messages,
			model.WithMaxTokens(maxTokens),
			model.WithTemperature(temperature),
		)
		if err != nil {
			if isRateLimited(err) && i < s.maxRetries {
				lastErr = err
				logger.Log.Warnf("LLM 限流，第 %d 次重试", i+1)
				select {
				case <-time.After(s.baseDelay * time.Duration(1<<i)):
					continue
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
			return "", err
		}

		text := strings.TrimSpace(resp.Content)
		if text == "" {
			return "", errors.New("empty completion")
		}
		return text, nil
	}
	return "", lastErr
}

func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "too many requests")
}
