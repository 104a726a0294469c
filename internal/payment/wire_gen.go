// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package payment

import (
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/job"
	"github.com/ecodeclub/emall/internal/payment/internal/repository"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/emall/internal/payment/internal/web"
	"github.com/ecodeclub/emall/internal/payment/ioc"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ) *Module {
	wechatConfig := ioc.InitWechatConfig()
	handler := ioc.InitWechatNotifyHandler(wechatConfig)
	paymentDAO := InitTablesOnce(db)
	paymentRepository := repository.NewPaymentRepository(paymentDAO)
	client := ioc.InitWechatClient(wechatConfig)
	nativeAPIService := ioc.InitNativeAPIService(client)
	nativePaymentService := ioc.InitWechatNativePaymentService(nativeAPIService, wechatConfig)
	producer := InitPaymentEventProducer(q)
	channelsConfig := ioc.InitChannelsConfig()
	v := ioc.InitPaymentChannels(channelsConfig, wechatConfig)
	serviceService := service.NewService(paymentRepository, nativePaymentService, producer, v)
	v2 := web.NewHandler(handler, serviceService)
	v3 := InitSyncWechatOrderJob(serviceService)
	module := &Module{
		Hdl:                v2,
		Svc:                serviceService,
		SyncWechatOrderJob: v3,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	InitPaymentEventProducer, ioc.InitWechatConfig, ioc.InitWechatClient, ioc.InitNativeAPIService, ioc.InitWechatNativePaymentService, ioc.InitWechatNotifyHandler, ioc.InitChannelsConfig, ioc.InitPaymentChannels, repository.NewPaymentRepository, service.NewService, web.NewHandler, InitSyncWechatOrderJob, wire.Struct(new(Module), "*"),
)

func InitPaymentEventProducer(q mq.MQ) mqx.Producer[event.PaymentEvent] {
	p, err := mqx.NewGeneralProducer[event.PaymentEvent](q, event.PaymentEventName)
	if err != nil {
		panic(err)
	}
	return p
}

func InitSyncWechatOrderJob(svc service.Service) *job.SyncWechatOrderJob {

	return job.NewSyncWechatOrderJob(svc, 30, 100)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPaymentGORMDAO(db)
}
