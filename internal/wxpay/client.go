package wxpay

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"wx-pay-api/internal/wxlog"
)

const defaultAPIBase = "https://api.mch.weixin.qq.com"

// Options 微信支付商户配置，由 config 注入
type Options struct {
	AppID            string
	MchID            string
	MchKey           string
	PlatformName     string
	PaymentNotifyURL string
	RefundNotifyURL  string
	Debug            bool
}

// Client 微信支付 v2 客户端：构造签名请求、提交、验证异步回调。
// 所有操作无共享可变状态，可并发使用。
// 超时/重试/证书由注入的 http.Client 承担，这里不做任何重试。
type Client struct {
	opt     Options
	http    *http.Client
	log     *wxlog.Logger
	apiBase string
}

func NewClient(opt Options, hc *http.Client, lg *wxlog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{opt: opt, http: hc, log: lg, apiBase: defaultAPIBase}
}

// SetAPIBase 覆盖网关地址（测试用）
func (c *Client) SetAPIBase(base string) { c.apiBase = base }

// post 发送原始 UTF-8 XML 请求体，返回应答体文本。不设置 Content-Type。
func (c *Client) post(path, body string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, c.apiBase+path, strings.NewReader(body))
	if err != nil {
		return "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// withSign 把 sign 插入到字段表的字典序位置，仅用于 XML 输出；
// 签名串本身永远不含 sign 字段。
func withSign(fields []Field, sign string) []Field {
	out := make([]Field, 0, len(fields)+1)
	inserted := false
	for _, f := range fields {
		if !inserted && f.Name > "sign" {
			out = append(out, Field{"sign", sign})
			inserted = true
		}
		out = append(out, f)
	}
	if !inserted {
		out = append(out, Field{"sign", sign})
	}
	return out
}

func (c *Client) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Enqueue(fmt.Sprintf(format, args...))
	}
}

func (c *Client) debugf(format string, args ...any) {
	if c.opt.Debug {
		c.logf(format, args...)
	}
}
