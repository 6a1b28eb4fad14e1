package wxpay

import (
	"errors"
	"fmt"
)

// FailureKind 核心失败分类，便于调用方与测试区分失败种类
type FailureKind int

const (
	FailureTransport FailureKind = iota + 1 // 网络/HTTP 异常
	FailureProtocol                         // 网关返回非 SUCCESS
	FailureSignature                        // 回调验签不通过
	FailureDecrypt                          // req_info 解密失败
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureProtocol:
		return "protocol"
	case FailureSignature:
		return "signature"
	case FailureDecrypt:
		return "decrypt"
	}
	return "unknown"
}

// Error 核心操作的失败结果。不跨信任边界抛异常：
// 导出的操作同时返回空哨兵值，Error 仅用于判断失败种类与记录日志。
type Error struct {
	Kind FailureKind
	Op   string
	Err  error
	Msg  string
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("wxpay.%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	if e.Msg != "" {
		return fmt.Sprintf("wxpay.%s: %s: %s", e.Op, e.Kind, e.Msg)
	}
	return fmt.Sprintf("wxpay.%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf 返回错误的失败分类，非 wxpay 错误返回 0
func KindOf(err error) FailureKind {
	var we *Error
	if errors.As(err, &we) {
		return we.Kind
	}
	return 0
}
