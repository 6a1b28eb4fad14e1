package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"wx-pay-api/internal/dto"
	"wx-pay-api/internal/event"
	"wx-pay-api/internal/idgen"
	"wx-pay-api/internal/notify"
	"wx-pay-api/internal/wxpay"
)

// PayService 下单/退款编排：生成单号，调用网关客户端，
// 回调确认后向 MQ 发布事件
type PayService struct {
	wx  *wxpay.Client
	pub event.Publisher
}

func NewPayService(wx *wxpay.Client, pub event.Publisher) *PayService {
	return &PayService{wx: wx, pub: pub}
}

func toFen(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).Round(0).String()
}

// CreateOrder 生成商户订单号并统一下单，返回拉起支付的参数
func (s *PayService) CreateOrder(req dto.CreateOrderReq, clientIP string) (*dto.CreateOrderResp, error) {
	outTradeNo := strconv.FormatUint(idgen.New(), 10)
	params, err := s.wx.Preplace(outTradeNo, req.Amount, req.OpenID, clientIP, req.Attach)
	if err != nil {
		return nil, err
	}
	return &dto.CreateOrderResp{OutTradeNo: outTradeNo, PayParams: params}, nil
}

// Refund 生成退款单号并发起退款
func (s *PayService) Refund(req dto.RefundReq) (*dto.RefundResp, error) {
	outRefundNo := strconv.FormatUint(idgen.New(), 10)
	refundID, err := s.wx.Refund(wxpay.RefundRequest{
		OutRefundNo:   outRefundNo,
		OutTradeNo:    req.OutTradeNo,
		TotalFee:      toFen(req.TotalAmount),
		TransactionID: req.TransactionID,
		RefundFee:     toFen(req.RefundAmount),
		RefundDesc:    req.RefundDesc,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RefundResp{OutRefundNo: outRefundNo, RefundID: refundID}, nil
}

// QueryRefund 查询退款状态，code 含义见 wxpay.Client.QueryRefund
func (s *PayService) QueryRefund(refundID string) dto.QueryRefundResp {
	status, code := s.wx.QueryRefund(refundID)
	return dto.QueryRefundResp{RefundID: refundID, Status: status, Code: code}
}

// HandlePaymentNotify 处理支付回调，返回应答网关的 XML。
// 验签不通过时告警并回 FAIL，绝不据此变更业务状态。
func (s *PayService) HandlePaymentNotify(body string) string {
	n, err := s.wx.VerifyPaymentCallback(body)
	if err != nil {
		if wxpay.KindOf(err) == wxpay.FailureSignature {
			notify.Alert(fmt.Sprintf("⚠️ 支付回调验签失败，已丢弃: %v", err))
		}
		return ackXML("FAIL", "invalid notify")
	}

	if s.pub != nil {
		_ = s.pub.Publish("order.paid", dto.OrderPaidEvent{
			OutTradeNo:    n.OutTradeNo,
			TransactionID: n.TransactionID,
			Status:        n.Status,
			ErrDesc:       n.ErrDesc,
			Attach:        n.Attach,
			NotifiedAt:    time.Now().Unix(),
		})
	}
	return ackXML("SUCCESS", "OK")
}

// HandleRefundNotify 处理退款回调，返回应答网关的 XML。
// 解密失败即视为不可信回调。
func (s *PayService) HandleRefundNotify(body string) string {
	n, err := s.wx.VerifyRefundCallback(body)
	if err != nil {
		notify.Alert(fmt.Sprintf("⚠️ 退款回调解密失败，已丢弃: %v", err))
		return ackXML("FAIL", "invalid notify")
	}

	if s.pub != nil {
		_ = s.pub.Publish("order.refunded", dto.OrderRefundedEvent{
			RefundID:    n.RefundID,
			RecvAccount: n.RecvAccount,
			StatusText:  n.StatusText,
			Status:      n.Status,
			NotifiedAt:  time.Now().Unix(),
		})
	}
	return ackXML("SUCCESS", "OK")
}

func ackXML(code, msg string) string {
	return "<xml><return_code><![CDATA[" + code + "]]></return_code>" +
		"<return_msg><![CDATA[" + msg + "]]></return_msg></xml>"
}
