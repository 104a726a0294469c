package ioc

import (
	"github.com/ecodeclub/emall/internal/sms/client"
	"github.com/gotomicro/ego/core/econf"
)

func initSMSClient() client.Client {
	type Config struct {
		Enabled         bool   `yaml:"enabled"`
		AccessKeyID     string `yaml:"accessKeyID"`
		AccessKeySecret string `yaml:"accessKeySecret"`
		SignName        string `yaml:"signName"`
	}
	var cfg Config
	err := econf.UnmarshalKey("sms.aliyun", &cfg)
	if err != nil {
		panic(err)
	}
	// 本地联调不配短信, 打日志代替真实发送
	if !cfg.Enabled {
		return client.NewConsoleSMS()
	}
	aliClient, err := client.NewAliyunSMS(cfg.AccessKeyID, cfg.AccessKeySecret, cfg.SignName)
	if err != nil {
		panic(err)
	}
	return aliClient
}
