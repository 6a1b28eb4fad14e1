package config

import (
	"flag"
	"log"
	"strings"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type LogCfg struct {
	Dir string `mapstructure:"dir"`
}

// WechatCfg 微信支付商户配置
type WechatCfg struct {
	AppID            string `mapstructure:"appId"`
	MchID            string `mapstructure:"mchId"`
	MchKey           string `mapstructure:"mchKey"`
	SecretKey        string `mapstructure:"secretKey"`
	PlatformName     string `mapstructure:"platformName"`
	PaymentNotifyURL string `mapstructure:"paymentNotifyUrl"`
	RefundNotifyURL  string `mapstructure:"refundNotifyUrl"`
	Debug            bool   `mapstructure:"debug"`
}

type Root struct {
	Server   ServerCfg `mapstructure:"server"`
	Redis    RedisCfg  `mapstructure:"redis"`
	RabbitMQ RabbitCfg `mapstructure:"rabbitmq"`
	Log      LogCfg    `mapstructure:"log"`
	Wechat   WechatCfg `mapstructure:"wechat"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if strings.TrimSpace(C.Log.Dir) == "" {
		C.Log.Dir = "./logs/wxpay"
	}
	if C.Wechat.AppID == "" || C.Wechat.MchID == "" || C.Wechat.MchKey == "" {
		log.Fatalf("wechat appId/mchId/mchKey must be configured")
	}
}
