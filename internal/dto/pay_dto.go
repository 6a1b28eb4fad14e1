package dto

import (
	"github.com/shopspring/decimal"

	"wx-pay-api/internal/wxpay"
)

// CreateOrderReq 下单请求，金额单位为元
type CreateOrderReq struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	OpenID string          `json:"openId" binding:"required"`
	Attach string          `json:"attach"`
}

// CreateOrderResp 返回给小程序端的拉起支付参数
type CreateOrderResp struct {
	OutTradeNo string           `json:"outTradeNo"`
	PayParams  *wxpay.PayParams `json:"payParams"`
}

// RefundReq 退款申请，金额单位为元
type RefundReq struct {
	OutTradeNo    string          `json:"outTradeNo" binding:"required"`
	TransactionID string          `json:"transactionId"`
	TotalAmount   decimal.Decimal `json:"totalAmount" binding:"required"`
	RefundAmount  decimal.Decimal `json:"refundAmount" binding:"required"`
	RefundDesc    string          `json:"refundDesc"`
}

type RefundResp struct {
	OutRefundNo string `json:"outRefundNo"`
	RefundID    string `json:"refundId"`
}

type QueryRefundResp struct {
	RefundID string `json:"refundId"`
	Status   string `json:"status"`
	Code     int    `json:"code"`
}

// OrderPaidEvent 支付回调验签通过后发布
type OrderPaidEvent struct {
	OutTradeNo    string `json:"out_trade_no"`
	TransactionID string `json:"transaction_id"`
	Status        int    `json:"status"`
	ErrDesc       string `json:"err_desc,omitempty"`
	Attach        string `json:"attach,omitempty"`
	NotifiedAt    int64  `json:"notified_at"`
}

// OrderRefundedEvent 退款回调解密成功后发布
type OrderRefundedEvent struct {
	RefundID    string `json:"refund_id"`
	RecvAccount string `json:"recv_account"`
	StatusText  string `json:"status_text"`
	Status      int    `json:"status"`
	NotifiedAt  int64  `json:"notified_at"`
}
