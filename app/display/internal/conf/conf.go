package conf

import "time"

type Bootstrap struct {
	Server  *Server  `json:"server"`
	Backend *Backend `json:"backend"`
	Ui      *UI      `json:"ui"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

// Backend 分析后端的访问配置
type Backend struct {
	BaseUrl string `json:"base_url"`
	Timeout string `json:"timeout"`
}

// UI 页面展示相关配置
type UI struct {
	ProviderLabel string   `json:"provider_label"`
	SessionTtl    string   `json:"session_ttl"`
	PollInterval  string   `json:"poll_interval"`
	TableColumns  []string `json:"table_columns"`
	ChartWidth    int32    `json:"chart_width"`
	ChartHeight   int32    `json:"chart_height"`
}

const (
	DefaultBackendURL    = "http://127.0.0.1:8001"
	DefaultProviderLabel = "Groq AI"
)

// Duration 解析配置中的时长字符串，为空或非法时返回 def
func Duration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return def
	}
	return d
}
