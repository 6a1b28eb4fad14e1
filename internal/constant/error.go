package constant

// 响应码
const (
	CodeSuccess         = 0
	CodeMissingParams   = 1001
	CodeParamsTypeError = 1002
	CodeOrderFailed     = 2001
	CodeRefundFailed    = 2002
	CodeQueryFailed     = 2003
	CodeSystemError     = 5000
)

type ErrorInfo struct {
	CN string
	EN string
}

var ErrorMessages = map[int]ErrorInfo{
	CodeMissingParams:   {"缺少必要参数", "Missing required parameters"},
	CodeParamsTypeError: {"参数类型错误", "Parameter type error"},
	CodeOrderFailed:     {"下单失败", "Place order failed"},
	CodeRefundFailed:    {"退款申请失败", "Refund request failed"},
	CodeQueryFailed:     {"退款查询失败", "Refund query failed"},
	CodeSystemError:     {"系统错误", "System error"},
}

// GetErrorInfo 获取错误信息
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}
