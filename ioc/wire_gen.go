// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package ioc

import (
	"github.com/ecodeclub/emall/internal/checkout"
	"github.com/ecodeclub/emall/internal/customer"
	"github.com/ecodeclub/emall/internal/notification"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitApp() (*App, error) {
	cmdable := InitRedis()
	provider := InitSession(cmdable)
	mq := InitMQ()
	cache := InitCache(cmdable)
	v := InitDB()
	module := order.InitModule(v)
	v2 := orderService(module)
	paymentModule := payment.InitModule(v, mq)
	v3 := paymentService(paymentModule)
	service := initEmailService()
	customerModule := customer.InitModule(v, service)
	v4 := customerService(customerModule)
	client := initSMSClient()
	mallIDGenerator := initIDGenerator()
	notificationModule := notification.InitModule(service, client, mallIDGenerator)
	v5 := notificationService(notificationModule)
	checkoutModule := checkout.InitModule(mq, cache, v2, v3, v4, v5)
	v6 := checkoutHandler(checkoutModule)
	v7 := orderHandler(module)
	v8 := paymentHandler(paymentModule)
	component := initGinxServer(provider, v6, v7, v8)
	v9 := initCloseExpiredOrdersJob(v2)
	v10 := paymentSyncJob(paymentModule)
	v11 := initCronJobs(v9, v10)
	productModule, err := product.InitModule(v, mq)
	if err != nil {
		return nil, err
	}
	v12 := initMQConsumers(checkoutModule, productModule)
	app := &App{
		Web:       component,
		Crons:     v11,
		Consumers: v12,
	}
	return app, nil
}

// wire.go:

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)
