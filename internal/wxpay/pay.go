package wxpay

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PayParams 小程序/JSAPI 拉起支付所需的客户端参数
type PayParams struct {
	AppID     string `json:"appId"`
	TimeStamp string `json:"timeStamp"`
	NonceStr  string `json:"nonceStr"`
	Package   string `json:"package"`
	SignType  string `json:"signType"`
	PaySign   string `json:"paySign"`
}

// PaymentNotice 验签通过的支付回调结果。
// Status: 1 支付成功；2 业务失败（如银行拒付），ErrDesc 带原因。
// 验签不通过时不会产生 PaymentNotice，回调不可信。
type PaymentNotice struct {
	TransactionID string
	OutTradeNo    string
	Status        int
	ErrDesc       string
	Attach        string
}

// 支付回调文档字段，按网关文档的参数顺序。coupon_count 位置展开下标字段组。
var paymentNoticeOrder = []string{
	"appid",
	"attach",
	"bank_type",
	"cash_fee",
	"cash_fee_type",
	"coupon_count",
	"device_info",
	"err_code",
	"err_code_des",
	"fee_type",
	"is_subscribe",
	"mch_id",
	"nonce_str",
	"openid",
	"out_trade_no",
	"result_code",
	"return_code",
	"return_msg",
	"settlement_total_fee",
	"sign_type",
	"time_end",
	"total_fee",
	"trade_type",
	"transaction_id",
}

// unifiedOrderFields 统一下单参数表，一张表同时驱动签名串与 XML 输出，
// 两边的顺序和跳空规则不会漂移。
func (c *Client) unifiedOrderFields(nonce, outTradeNo, totalFee, openID, clientIP, attach string) []Field {
	return []Field{
		{"appid", c.opt.AppID},
		{"attach", attach},
		{"body", c.opt.PlatformName + "订单"},
		{"detail", ""},
		{"device_info", ""},
		{"fee_type", ""},
		{"goods_tag", ""},
		{"limit_pay", ""},
		{"mch_id", c.opt.MchID},
		{"nonce_str", nonce},
		{"notify_url", c.opt.PaymentNotifyURL},
		{"openid", openID},
		{"out_trade_no", outTradeNo},
		{"product_id", ""},
		{"receipt", ""},
		{"scene_info", ""},
		{"sign_type", "MD5"},
		{"spbill_create_ip", clientIP},
		{"time_expire", ""},
		{"time_start", ""},
		{"total_fee", totalFee},
		{"trade_type", "JSAPI"},
	}
}

// PlaceOrder 统一下单，成功返回 prepay_id，失败返回空串与分类错误。
// nonce_str 取订单号的 MD5：同一订单号重试生成字节级相同的请求，
// 网关侧天然幂等，防止重复扣款。不要改成随机值。
// 金额单位为元，内部四舍五入转换为分。
func (c *Client) PlaceOrder(outTradeNo string, amount decimal.Decimal, openID, clientIP, attach string) (string, error) {
	nonce := MD5Hex(outTradeNo)
	totalFee := amount.Mul(decimal.NewFromInt(100)).Round(0).String()

	fields := c.unifiedOrderFields(nonce, outTradeNo, totalFee, openID, clientIP, attach)
	sign := Sign(fields, c.opt.MchKey)
	reqXML := EncodeXML(withSign(fields, sign))
	c.debugf("UnifiedOrder: %s", reqXML)

	respXML, err := c.post("/pay/unifiedorder", reqXML)
	if err != nil {
		e := &Error{Kind: FailureTransport, Op: "PlaceOrder", Err: err}
		c.logf("%s", e.Error())
		return "", e
	}
	c.debugf("%s", respXML)

	if !IsReturnSuccessAck(respXML) {
		e := &Error{Kind: FailureProtocol, Op: "PlaceOrder", Msg: respXML}
		c.logf("%s", e.Error())
		return "", e
	}
	if !hasResultSuccess(respXML) {
		e := &Error{Kind: FailureProtocol, Op: "PlaceOrder", Msg: respXML}
		c.logf("%s", e.Error())
		return "", e
	}

	m := prepayIDPattern.FindStringSubmatch(respXML)
	if m == nil {
		e := &Error{Kind: FailureProtocol, Op: "PlaceOrder", Msg: "prepay_id missing"}
		c.logf("%s", e.Error())
		return "", e
	}
	return m[1], nil
}

// Preplace 下单并生成客户端拉起支付的参数集
func (c *Client) Preplace(outTradeNo string, amount decimal.Decimal, openID, clientIP, attach string) (*PayParams, error) {
	prepayID, err := c.PlaceOrder(outTradeNo, amount, openID, clientIP, attach)
	if err != nil {
		return nil, err
	}

	nonce := MD5Hex(outTradeNo)
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	pkg := "prepay_id=" + prepayID
	paySign := MD5Hex(CanonicalString([]Field{
		{"appId", c.opt.AppID},
		{"nonceStr", nonce},
		{"package", pkg},
		{"signType", "MD5"},
		{"timeStamp", ts},
	}, c.opt.MchKey))

	return &PayParams{
		AppID:     c.opt.AppID,
		TimeStamp: ts,
		NonceStr:  nonce,
		Package:   pkg,
		SignType:  "MD5",
		PaySign:   paySign,
	}, nil
}

// VerifyPaymentCallback 验证支付回调：
// 按文档顺序逐字段提取（sign 除外），重建签名串并重新计算 MD5，
// 与回调的 sign 做区分大小写的精确比对（网关恒为大写）。
// 验签不通过返回 FailureSignature，回调必须丢弃。
func (c *Client) VerifyPaymentCallback(doc string) (*PaymentNotice, error) {
	c.debugf("WxPayCallback: %s", doc)

	var fields []Field
	vals := make(map[string]string, len(paymentNoticeOrder))
	for _, name := range paymentNoticeOrder {
		if name == "coupon_count" {
			fields = append(fields, couponFields(doc)...)
			continue
		}
		v := MatchField(doc, name)
		vals[name] = v
		if v != "" {
			fields = append(fields, Field{name, v})
		}
	}

	sign := MatchField(doc, "sign")
	computed := Sign(fields, c.opt.MchKey)
	c.debugf("WxPayCallback SignString: %s Hash: %s", CanonicalString(fields, c.opt.MchKey), computed)

	if sign == "" || computed != sign {
		e := &Error{Kind: FailureSignature, Op: "VerifyPaymentCallback"}
		c.logf("%s", e.Error())
		return nil, e
	}

	notice := &PaymentNotice{
		TransactionID: vals["transaction_id"],
		OutTradeNo:    vals["out_trade_no"],
		Status:        1,
		Attach:        vals["attach"],
	}
	if vals["return_code"] != "SUCCESS" || vals["result_code"] != "SUCCESS" {
		notice.Status = 2
		notice.ErrDesc = vals["err_code_des"]
	}
	return notice, nil
}
