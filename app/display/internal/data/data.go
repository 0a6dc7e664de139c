package data

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Sami210105/Real-estate-Chatbot/app/display/internal/conf"
	"github.com/go-kratos/kratos/v2/log"
)

const defaultBackendTimeout = 60 * time.Second

// Data 持有访问分析后端所需的 HTTP 客户端
type Data struct {
	client  *http.Client
	baseURL *url.URL
}

func NewData(c *conf.Backend, logger log.Logger) (*Data, func(), error) {
	raw := conf.DefaultBackendURL
	timeout := defaultBackendTimeout
	if c != nil {
		if c.BaseUrl != "" {
			raw = c.BaseUrl
		}
		timeout = conf.Duration(c.Timeout, defaultBackendTimeout)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid backend base_url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, nil, fmt.Errorf("invalid backend base_url %q: scheme and host are required", raw)
	}

	d := &Data{
		client:  &http.Client{Timeout: timeout},
		baseURL: u,
	}
	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		d.client.CloseIdleConnections()
	}
	return d, cleanup, nil
}
