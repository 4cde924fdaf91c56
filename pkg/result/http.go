package result

import "net/http"

// HTTPStatus 把失败类别映射为HTTP状态码。
// 成功结果的状态码由各控制器自行决定（200/201/204）。
func (r *ServiceResult) HTTPStatus() int {
	switch r.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid:
		return http.StatusUnprocessableEntity
	case KindFailed:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}
