package harvest

import "fmt"

// ErrorKind 运行级错误分类
// 只有导航落点错误和空列表会让一次运行整体失败,
// 其余一切失败都降级为"字段缺失"或"本轮无进展",保住部分结果
type ErrorKind string

const (
	KindAccessDenied ErrorKind = "access_denied"
	KindNoItemsFound ErrorKind = "no_items_found"
	KindMessageFail  ErrorKind = "message_failed"
)

// HarvestError 带分类与上下文的运行级错误,
// 对应宿主侧的 {error, message, job_id, current_url} 结构
type HarvestError struct {
	Kind    ErrorKind         `json:"error"`
	Message string            `json:"message"`
	Context map[string]string `json:"context,omitempty"`
}

func (e *HarvestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newHarvestError(kind ErrorKind, message string, context map[string]string) *HarvestError {
	return &HarvestError{Kind: kind, Message: message, Context: context}
}
