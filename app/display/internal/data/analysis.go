package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Sami210105/Real-estate-Chatbot/app/common/record"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/domain"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/repo"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/tidwall/gjson"
)

const (
	analyzePath     = "/api/analyze/"
	maxResponseSize = 16 << 20
)

type analysisRepo struct {
	data *Data
	log  *log.Helper
}

func NewAnalysisRepo(data *Data, logger log.Logger) repo.AnalysisRepo {
	return &analysisRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *analysisRepo) Analyze(ctx context.Context, query string) (*domain.AnalysisResponse, error) {
	u := *r.data.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + analyzePath
	// 与浏览器 encodeURIComponent 保持一致，空格编码为 %20
	u.RawQuery = "area=" + strings.ReplaceAll(url.QueryEscape(query), "+", "%20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("create request failed: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	res, err := r.data.client.Do(req)
	if err != nil {
		r.log.Warnf("analysis request failed: %v", err)
		return nil, &domain.NetworkError{Err: err}
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return nil, &domain.NetworkError{Err: fmt.Errorf("read response failed: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg := errorMessage(body)
		r.log.Warnf("analysis backend returned status %d: %s", res.StatusCode, msg)
		return nil, &domain.APIError{Status: res.StatusCode, Message: msg}
	}

	resp, err := parseAnalysis(body)
	if err != nil {
		r.log.Warnf("malformed analysis response: %v", err)
		return nil, &domain.NetworkError{Err: fmt.Errorf("decode response failed: %w", err)}
	}
	return resp, nil
}

// errorMessage 取错误响应体中的 error 字段，取不到时使用通用提示
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return domain.DefaultAPIErrorMessage
	}
	msg := gjson.GetBytes(body, "error")
	if msg.Type != gjson.String || strings.TrimSpace(msg.Str) == "" {
		return domain.DefaultAPIErrorMessage
	}
	return msg.Str
}

func parseAnalysis(body []byte) (*domain.AnalysisResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("invalid JSON payload")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("expected a JSON object, got %s", root.Type)
	}

	resp := &domain.AnalysisResponse{
		Summary:          root.Get("summary").String(),
		QueryType:        root.Get("query_type").String(),
		Area:             root.Get("area").String(),
		UsedPriceColumns: stringList(root.Get("used_price_columns")),
		Areas:            stringList(root.Get("areas")),
	}

	var err error
	if resp.Chart, err = recordList("chart", root.Get("chart")); err != nil {
		return nil, err
	}
	if resp.Table, err = recordList("table", root.Get("table")); err != nil {
		return nil, err
	}
	return resp, nil
}

func stringList(res gjson.Result) []string {
	if !res.IsArray() {
		return nil
	}
	var out []string
	res.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.Null {
			out = append(out, v.String())
		}
		return true
	})
	return out
}

func recordList(field string, res gjson.Result) ([]record.Record, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	if !res.IsArray() {
		return nil, fmt.Errorf("field %s: expected an array", field)
	}
	var (
		out []record.Record
		err error
	)
	res.ForEach(func(_, v gjson.Result) bool {
		rec, ok := record.FromResult(v)
		if !ok {
			err = fmt.Errorf("field %s[%d]: expected an object", field, len(out))
			return false
		}
		out = append(out, rec)
		return true
	})
	return out, err
}
