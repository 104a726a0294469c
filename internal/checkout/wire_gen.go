// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package checkout

import (
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/checkout/internal/event"
	"github.com/ecodeclub/emall/internal/checkout/internal/repository/cache"
	"github.com/ecodeclub/emall/internal/checkout/internal/service"
	"github.com/ecodeclub/emall/internal/checkout/internal/web"
	"github.com/ecodeclub/emall/internal/checkout/ioc"
	"github.com/ecodeclub/emall/internal/customer"
	"github.com/ecodeclub/emall/internal/notification"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

// Injectors from wire.go:

func InitModule(q mq.MQ, ec ecache.Cache, orderSvc order.Service, paymentSvc payment.Service, customerSvc customer.Service, notificationSvc notification.Service) *Module {
	draftCache := cache.NewDraftCache(ec)
	producer := InitStockDeductEventProducer(q)
	generator := sequencenumber.NewGenerator()
	config := ioc.InitConfig()
	v := service.NewService(draftCache, orderSvc, paymentSvc, customerSvc, notificationSvc, producer, generator, config)
	v2 := web.NewHandler(v, paymentSvc, config)
	v3 := InitPaymentEventConsumer(v, q)
	module := &Module{
		Svc:      v,
		Hdl:      v2,
		Consumer: v3,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(ioc.InitConfig, cache.NewDraftCache, sequencenumber.NewGenerator, InitStockDeductEventProducer, service.NewService, web.NewHandler, InitPaymentEventConsumer, wire.Struct(new(Module), "*"))

func InitStockDeductEventProducer(q mq.MQ) mqx.Producer[product.StockDeductEvent] {
	p, err := mqx.NewGeneralProducer[product.StockDeductEvent](q, product.StockDeductEventName)
	if err != nil {
		panic(err)
	}
	return p
}

func InitPaymentEventConsumer(svc service.Service, q mq.MQ) *event.PaymentEventConsumer {
	c, err := event.NewPaymentEventConsumer(svc, q)
	if err != nil {
		panic(err)
	}
	return c
}
