package handler

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wx-pay-api/internal/constant"
	"wx-pay-api/internal/dto"
	"wx-pay-api/internal/service"
	"wx-pay-api/internal/utils"
)

type PayHandler struct {
	svc *service.PayService
}

func NewPayHandler(svc *service.PayService) *PayHandler {
	return &PayHandler{svc: svc}
}

// CreateOrder 下单并返回拉起支付参数
func (h *PayHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeMissingParams))
		return
	}
	resp, err := h.svc.CreateOrder(req, clientIP(c))
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeOrderFailed))
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Refund 发起退款
func (h *PayHandler) Refund(c *gin.Context) {
	var req dto.RefundReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeMissingParams))
		return
	}
	resp, err := h.svc.Refund(req)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeRefundFailed))
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// QueryRefund 查询退款状态
func (h *PayHandler) QueryRefund(c *gin.Context) {
	refundID := c.Param("id")
	if refundID == "" {
		c.JSON(http.StatusOK, utils.Error(constant.CodeMissingParams))
		return
	}
	resp := h.svc.QueryRefund(refundID)
	if resp.Code != 1 {
		c.JSON(http.StatusOK, utils.Error(constant.CodeQueryFailed))
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// PaymentNotify 微信支付结果回调，应答体为 XML
func (h *PayHandler) PaymentNotify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "")
		return
	}
	c.Data(http.StatusOK, "text/xml", []byte(h.svc.HandlePaymentNotify(string(body))))
}

// RefundNotify 微信退款结果回调，应答体为 XML
func (h *PayHandler) RefundNotify(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "")
		return
	}
	c.Data(http.StatusOK, "text/xml", []byte(h.svc.HandleRefundNotify(string(body))))
}

func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		parts := strings.Split(ip, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.ClientIP()
}
