package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wx-pay-api/internal/config"
	"wx-pay-api/internal/dal"
	"wx-pay-api/internal/handler"
	"wx-pay-api/internal/idgen"
	"wx-pay-api/internal/middleware"
	"wx-pay-api/internal/mq"
	"wx-pay-api/internal/service"
	"wx-pay-api/internal/wechat"
	"wx-pay-api/internal/wxlog"
	"wx-pay-api/internal/wxpay"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// wxpay client
	wlog := wxlog.New(config.C.Log.Dir)
	defer wlog.Close()

	wc := config.C.Wechat
	// 退款接口要求商户证书，部署时在此挂 TLS 配置；超时策略也由这里给定
	hc := &http.Client{Timeout: 10 * time.Second}
	wx := wxpay.NewClient(wxpay.Options{
		AppID:            wc.AppID,
		MchID:            wc.MchID,
		MchKey:           wc.MchKey,
		PlatformName:     wc.PlatformName,
		PaymentNotifyURL: wc.PaymentNotifyURL,
		RefundNotifyURL:  wc.RefundNotifyURL,
		Debug:            wc.Debug,
	}, hc, wlog)
	wechatClient := wechat.NewClient(wc.AppID, wc.SecretKey, hc, dal.RedisClient, wlog)

	svc := service.NewPayService(wx, mq.NewPublisher())

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover())

	ph := handler.NewPayHandler(svc)
	wh := handler.NewWechatHandler(wechatClient)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/orders", ph.CreateOrder)
		v1.POST("/refunds", ph.Refund)
		v1.GET("/refunds/:id", ph.QueryRefund)
		v1.GET("/wechat/login", wh.Login)
	}

	// 微信服务器回调入口
	notifyGroup := r.Group("/notify")
	notifyGroup.Use(middleware.BodyBuffer())
	{
		notifyGroup.POST("/payment", ph.PaymentNotify)
		notifyGroup.POST("/refund", ph.RefundNotify)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
