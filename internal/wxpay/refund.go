package wxpay

// RefundRequest 退款申请参数。金额字段单位为分。
// OutRefundNo 商户系统内唯一，同一退款单号多次请求只退一笔。
type RefundRequest struct {
	OutRefundNo   string
	OutTradeNo    string
	TotalFee      string
	TransactionID string
	RefundFee     string
	RefundAccount string
	RefundDesc    string
	RefundFeeType string
	DeviceInfo    string
}

// RefundNotice 退款回调解密结果。
// Status: 1 SUCCESS；2 CHANGE；3 REFUNDCLOSE；4 未知状态。
type RefundNotice struct {
	RefundID    string
	RecvAccount string
	StatusText  string
	Status      int
}

func (c *Client) refundFields(req RefundRequest, nonce string) []Field {
	feeType := req.RefundFeeType
	if feeType == "" {
		feeType = "CNY"
	}
	return []Field{
		{"appid", c.opt.AppID},
		{"device_info", req.DeviceInfo},
		{"mch_id", c.opt.MchID},
		{"nonce_str", nonce},
		{"notify_url", c.opt.RefundNotifyURL},
		{"out_refund_no", req.OutRefundNo},
		{"out_trade_no", req.OutTradeNo},
		{"refund_account", req.RefundAccount},
		{"refund_desc", req.RefundDesc},
		{"refund_fee", req.RefundFee},
		{"refund_fee_type", feeType},
		{"sign_type", "MD5"},
		{"total_fee", req.TotalFee},
		{"transaction_id", req.TransactionID},
	}
}

// Refund 申请退款，成功返回微信退款单号 refund_id。
// nonce_str 取退款单号的 MD5，重放同一退款单号得到相同请求（幂等重试）。
// 退款接口要求商户证书，由注入的 http.Client 配置。
func (c *Client) Refund(req RefundRequest) (string, error) {
	nonce := MD5Hex(req.OutRefundNo)
	fields := c.refundFields(req, nonce)
	sign := Sign(fields, c.opt.MchKey)
	reqXML := EncodeXML(withSign(fields, sign))
	c.debugf("WxRefundXml: %s", reqXML)

	respXML, err := c.post("/secapi/pay/refund", reqXML)
	if err != nil {
		e := &Error{Kind: FailureTransport, Op: "Refund", Err: err}
		c.logf("%s", e.Error())
		return "", e
	}
	c.debugf("WxRefundRes: %s", respXML)

	if !hasReturnSuccess(respXML) {
		e := &Error{Kind: FailureProtocol, Op: "Refund", Msg: respXML}
		c.logf("%s", e.Error())
		return "", e
	}
	if !hasResultSuccess(respXML) {
		e := &Error{Kind: FailureProtocol, Op: "Refund", Msg: respXML}
		c.logf("%s", e.Error())
		return "", e
	}

	m := refundIDPattern.FindStringSubmatch(respXML)
	if m == nil {
		e := &Error{Kind: FailureProtocol, Op: "Refund", Msg: "refund_id missing"}
		c.logf("%s", e.Error())
		return "", e
	}
	return m[1], nil
}

// VerifyRefundCallback 处理退款回调。
// 该回调外层没有 sign 字段，真实性来自能用商户密钥解开 req_info：
// 解密失败即视为不可信，返回 FailureDecrypt。
func (c *Client) VerifyRefundCallback(doc string) (*RefundNotice, error) {
	c.debugf("WxRefundCallback: %s", doc)

	reqInfo := MatchField(doc, "req_info")
	plain, err := DecryptReqInfo(reqInfo, c.opt.MchKey)
	if err != nil {
		c.logf("%s", err.Error())
		return nil, err
	}

	statusText := MatchField(plain, "refund_status")
	status := 4
	switch statusText {
	case "SUCCESS":
		status = 1
	case "CHANGE":
		status = 2
	case "REFUNDCLOSE":
		status = 3
	}

	return &RefundNotice{
		RefundID: MatchField(plain, "refund_id"),
		// 网关字段名就叫 refund_recv_accout，不是拼写错误
		RecvAccount: MatchField(plain, "refund_recv_accout"),
		StatusText:  statusText,
		Status:      status,
	}, nil
}

// QueryRefund 查询退款状态，返回 refund_status_0 文本与状态码。
// code: 1 成功；-1 通信层失败（可重试）；-2 业务失败（勿重试）；-3 请求异常。
func (c *Client) QueryRefund(refundID string) (string, int) {
	nonce := MD5Hex(refundID)
	fields := []Field{
		{"appid", c.opt.AppID},
		{"mch_id", c.opt.MchID},
		{"nonce_str", nonce},
		{"offset", ""},
		{"out_refund_no", ""},
		{"out_trade_no", ""},
		{"refund_id", refundID},
		{"sign_type", "MD5"},
		{"transaction_id", ""},
	}
	sign := Sign(fields, c.opt.MchKey)
	reqXML := EncodeXML(withSign(fields, sign))

	respXML, err := c.post("/pay/refundquery", reqXML)
	if err != nil {
		c.logf("wxpay.QueryRefund: %v", err)
		return "", -3
	}

	if !hasReturnSuccess(respXML) {
		c.logf("%s", respXML)
		return "", -1
	}
	if !hasResultSuccess(respXML) {
		c.logf("%s", respXML)
		return "", -2
	}

	status := ""
	if m := refundStatusPattern.FindStringSubmatch(respXML); m != nil {
		status = m[1]
	}
	return status, 1
}
