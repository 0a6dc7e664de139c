package server

import (
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	klog "github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/config"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/engine"
	"github.com/Sami210105/Real-estate-Chatbot/app/analyzer/pkg/model"
)

const errNoQuery = "No query provided"

// Analyzer 处理一次查询
type Analyzer interface {
	Analyze(ctx context.Context, query string) (*model.Response, error)
}

// History 最近的查询记录，未配置数据库时为 nil
type History interface {
	RecentQueries(ctx context.Context, limit int) ([]model.QueryEntry, error)
}

type errorBody struct {
	Error string `json:"error"`
}

type historyItem struct {
	Query      string    `json:"query"`
	QueryType  string    `json:"query_type"`
	Areas      []string  `json:"areas"`
	Records    int       `json:"records"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewHTTPServer 创建分析服务的 HTTP server
func NewHTTPServer(c config.ServerConfig, a Analyzer, h History, logger klog.Logger) *http.Server {
	opts := []http.ServerOption{
		http.StrictSlash(false),
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
	}
	if c.Addr != "" {
		opts = append(opts, http.Address(c.Addr))
	}
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}

	srv := http.NewServer(opts...)
	r := srv.Route("/")
	analyze := analyzeHandler(a)
	r.GET("/api/analyze/", analyze)
	r.GET("/api/analyze", analyze)
	r.GET("/api/queries/", historyHandler(h))
	r.GET("/healthz", func(ctx http.Context) error {
		return ctx.String(nethttp.StatusOK, "ok")
	})
	return srv
}

func analyzeHandler(a Analyzer) http.HandlerFunc {
	return func(ctx http.Context) error {
		query := ctx.Query().Get("area")
		h := ctx.Middleware(func(c context.Context, req interface{}) (interface{}, error) {
			return a.Analyze(c, req.(string))
		})
		out, err := h(ctx, query)
		if errors.Is(err, engine.ErrEmptyQuery) {
			return ctx.JSON(nethttp.StatusBadRequest, errorBody{Error: errNoQuery})
		}
		if err != nil {
			return ctx.JSON(nethttp.StatusInternalServerError, errorBody{Error: errors.FromError(err).Message})
		}
		return ctx.JSON(nethttp.StatusOK, out)
	}
}

func historyHandler(h History) http.HandlerFunc {
	return func(ctx http.Context) error {
		if h == nil {
			return ctx.JSON(nethttp.StatusServiceUnavailable, errorBody{Error: "Query log is not configured"})
		}
		limit, _ := strconv.Atoi(ctx.Query().Get("limit"))
		entries, err := h.RecentQueries(ctx, limit)
		if err != nil {
			return ctx.JSON(nethttp.StatusInternalServerError, errorBody{Error: err.Error()})
		}
		items := make([]historyItem, 0, len(entries))
		for _, e := range entries {
			items = append(items, historyItem{
				Query:      e.Query,
				QueryType:  e.QueryType,
				Areas:      e.Areas,
				Records:    e.Records,
				DurationMs: e.Duration.Milliseconds(),
				CreatedAt:  e.CreatedAt,
			})
		}
		return ctx.JSON(nethttp.StatusOK, items)
	}
}
