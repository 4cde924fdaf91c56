package result

import "github.com/SlpAus/good-night-backend/pkg/pagination"

// Kind 描述服务层操作失败的类别。
// 表现层只依赖它来选择HTTP状态码，不解析Message的内容。
type Kind string

const (
	// KindOK 表示操作成功。
	KindOK Kind = "ok"

	// KindNotFound 表示请求引用的实体不存在。
	KindNotFound Kind = "not_found"

	// KindInvalid 表示实体未通过字段级校验，Errors中带有具体的违规信息。
	KindInvalid Kind = "invalid"

	// KindFailed 表示一次状态相关的领域操作在当前状态下不被允许，
	// 例如在已有未完成睡眠记录时再次clock-in。只携带单条Message。
	KindFailed Kind = "failed"
)

// ServiceResult 是所有服务层操作的统一返回信封。
// 服务层内部产生的任何错误都会在服务边界被收敛为这个结构，
// 不会有error直接越过服务层传给表现层。
type ServiceResult struct {
	Success bool             `json:"success"`
	Kind    Kind             `json:"-"`
	Data    any              `json:"data,omitempty"`
	Message string           `json:"message,omitempty"`
	Errors  []string         `json:"errors,omitempty"`
	Meta    *pagination.Meta `json:"meta,omitempty"`
}

// OK 构造一个携带数据和消息的成功结果。
func OK(data any, message string) *ServiceResult {
	return &ServiceResult{Success: true, Kind: KindOK, Data: data, Message: message}
}

// OKWithMeta 构造一个携带分页元数据的成功结果，用于所有列表类操作。
func OKWithMeta(data any, meta *pagination.Meta) *ServiceResult {
	return &ServiceResult{Success: true, Kind: KindOK, Data: data, Meta: meta}
}

// NotFound 构造一个"实体不存在"的失败结果。
func NotFound(message string) *ServiceResult {
	return &ServiceResult{Success: false, Kind: KindNotFound, Message: message}
}

// Invalid 构造一个校验失败的结果，errors中是人类可读的违规信息列表。
func Invalid(message string, errors []string) *ServiceResult {
	return &ServiceResult{Success: false, Kind: KindInvalid, Message: message, Errors: errors}
}

// Failed 构造一个一般性的领域失败结果。
func Failed(message string) *ServiceResult {
	return &ServiceResult{Success: false, Kind: KindFailed, Message: message}
}

// Failure 报告结果是否为失败。
func (r *ServiceResult) Failure() bool {
	return !r.Success
}
