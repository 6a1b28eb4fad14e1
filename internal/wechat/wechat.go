package wechat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"wx-pay-api/internal/wxlog"
)

const (
	defaultAuthBase = "https://api.weixin.qq.com"
	accessTokenKey  = "wxaccesstoken"
)

var (
	// session_key 偶带非法 base64 字符，按 JSON 反序列化会在下游炸掉，
	// 跟 openid 一起直接正则截取
	sessionKeyPattern = regexp.MustCompile(`"session_key":"([^"]+)"`)
	openIDPattern     = regexp.MustCompile(`"openid":"([^"]+)"`)
)

// Client 微信开放平台接口：access_token 取或拉缓存、登录凭证换取。
// 失败一律降级为空串哨兵，不向调用方抛错。
type Client struct {
	appID     string
	secretKey string
	http      *http.Client
	cache     *redis.Client
	log       *wxlog.Logger
	authBase  string
}

func NewClient(appID, secretKey string, hc *http.Client, cache *redis.Client, lg *wxlog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{appID: appID, secretKey: secretKey, http: hc, cache: cache, log: lg, authBase: defaultAuthBase}
}

// SetAuthBase 覆盖接口地址（测试用）
func (c *Client) SetAuthBase(base string) { c.authBase = base }

func (c *Client) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Enqueue(fmt.Sprintf(format, args...))
	}
}

func (c *Client) get(url string) (string, error) {
	resp, err := c.http.Get(url)
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

// GetAccessToken 先查缓存，缓存未命中再向微信拉取，
// 按返回的 expires_in 秒数写回缓存。失败返回空串。
func (c *Client) GetAccessToken(ctx context.Context) string {
	if c.cache != nil {
		if token, err := c.cache.Get(ctx, accessTokenKey).Result(); err == nil && token != "" {
			return token
		}
	}

	body, err := c.get(fmt.Sprintf(
		"%s/cgi-bin/token?grant_type=client_credential&appid=%s&secret=%s",
		c.authBase, c.appID, c.secretKey))
	if err != nil {
		c.logf("wechat.GetAccessToken error: %v", err)
		return ""
	}
	if strings.Contains(strings.ToLower(body), "errcode") {
		c.logf("wechat.GetAccessToken error, details: %s", body)
		return ""
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal([]byte(body), &result); err != nil || result.AccessToken == "" {
		c.logf("wechat.GetAccessToken decode error, details: %s", body)
		return ""
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, accessTokenKey, result.AccessToken,
			time.Duration(result.ExpiresIn)*time.Second).Err(); err != nil {
			c.logf("wechat.GetAccessToken cache set error: %v", err)
		}
	}
	return result.AccessToken
}

// CodeToSession 小程序登录凭证换取 session_key 和 openid，失败返回空串对
func (c *Client) CodeToSession(code string) (sessionKey, openID string) {
	body, err := c.get(fmt.Sprintf(
		"%s/sns/jscode2session?appid=%s&secret=%s&js_code=%s&grant_type=authorization_code",
		c.authBase, c.appID, c.secretKey, code))
	if err != nil {
		c.logf("wechat.CodeToSession error: %v", err)
		return "", ""
	}

	if m := sessionKeyPattern.FindStringSubmatch(body); m != nil {
		sessionKey = m[1]
	}
	if m := openIDPattern.FindStringSubmatch(body); m != nil {
		openID = m[1]
	}
	if sessionKey == "" || openID == "" {
		c.logf("wechat.CodeToSession unexpected response: %s", body)
	}
	return sessionKey, openID
}
