package domain

const (
	DefaultAPIErrorMessage     = "Failed to fetch analysis"
	DefaultNetworkErrorMessage = "Network error, please try again"
)

// APIError 后端返回了非 2xx 状态码
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return DefaultAPIErrorMessage
	}
	return e.Message
}

// NetworkError 请求未能完成：连接失败、超时或 2xx 响应体无法解析
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return DefaultNetworkErrorMessage
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
