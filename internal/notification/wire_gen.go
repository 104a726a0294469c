// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package notification

import (
	"github.com/ecodeclub/emall/internal/email"
	"github.com/ecodeclub/emall/internal/notification/internal/service"
	"github.com/ecodeclub/emall/internal/pkg/snowflake"
	"github.com/ecodeclub/emall/internal/sms/client"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

// Injectors from wire.go:

func InitModule(emailSvc email.Service, smsClient client.Client, idGen *snowflake.MallIDGenerator) *Module {
	config := InitConfig()
	v := service.NewService(emailSvc, smsClient, idGen, config)
	module := &Module{
		Svc: v,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitConfig, service.NewService, wire.Struct(new(Module), "*"),
)

func InitConfig() service.Config {
	var cfg service.Config
	err := econf.UnmarshalKey("notification", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}
