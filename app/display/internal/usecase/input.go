package usecase

import "strings"

// QueryInput 查询输入框
type QueryInput struct {
	Value   string
	Loading bool
}

// Disabled 请求进行中时输入框和提交按钮不可用
func (in QueryInput) Disabled() bool {
	return in.Loading
}

// Submit 提交当前输入。
// 加载中或去除首尾空白后为空时什么都不做并返回 false；
// 否则以去除空白后的文本调用 onSubmit，并清空输入框。
func (in *QueryInput) Submit(onSubmit func(query string)) bool {
	if in.Loading {
		return false
	}
	q := strings.TrimSpace(in.Value)
	if q == "" {
		return false
	}
	if onSubmit != nil {
		onSubmit(q)
	}
	in.Value = ""
	return true
}
