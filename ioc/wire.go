//go:build wireinject

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

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		InitSession,
		initEmailService,
		initSMSClient,
		initIDGenerator,
		customer.InitModule,
		customerService,
		product.InitModule,
		order.InitModule,
		orderService,
		orderHandler,
		initCloseExpiredOrdersJob,
		payment.InitModule,
		paymentService,
		paymentHandler,
		paymentSyncJob,
		notification.InitModule,
		notificationService,
		checkout.InitModule,
		checkoutHandler,
		initGinxServer,
		initCronJobs,
		initMQConsumers)
	return new(App), nil
}
