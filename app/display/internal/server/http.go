package server

import (
	nethttp "net/http"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/service"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"
)

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Filter(recoveryFilter(logger)),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	srv.HandlePrefix("/", s.Handler())
	return srv
}

// recoveryFilter 页面处理函数 panic 时返回 500 而不是断开连接。
// HandlePrefix 挂载的 net/http handler 不经过 kratos middleware 链，recovery.Recovery() 对它不生效。
func recoveryFilter(logger log.Logger) http.FilterFunc {
	helper := log.NewHelper(logger)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			defer func() {
				if err := recover(); err != nil {
					helper.Errorw("msg", "panic recovered", "error", err, "path", r.URL.Path)
					nethttp.Error(w, "Internal Server Error", nethttp.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
