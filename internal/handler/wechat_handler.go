package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wx-pay-api/internal/constant"
	"wx-pay-api/internal/utils"
	"wx-pay-api/internal/wechat"
)

type WechatHandler struct {
	wc *wechat.Client
}

func NewWechatHandler(wc *wechat.Client) *WechatHandler {
	return &WechatHandler{wc: wc}
}

// Login 小程序登录凭证换取 openid
func (h *WechatHandler) Login(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusOK, utils.Error(constant.CodeMissingParams))
		return
	}
	sessionKey, openID := h.wc.CodeToSession(code)
	if sessionKey == "" || openID == "" {
		c.JSON(http.StatusOK, utils.Error(constant.CodeSystemError))
		return
	}
	c.JSON(http.StatusOK, utils.Success(gin.H{"openId": openID}))
}
