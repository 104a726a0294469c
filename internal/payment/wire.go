// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package payment

import (
	"sync"

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
)

var ModuleSet = wire.NewSet(
	InitTablesOnce,
	InitPaymentEventProducer,
	ioc.InitWechatConfig,
	ioc.InitWechatClient,
	ioc.InitNativeAPIService,
	ioc.InitWechatNativePaymentService,
	ioc.InitWechatNotifyHandler,
	ioc.InitChannelsConfig,
	ioc.InitPaymentChannels,
	repository.NewPaymentRepository,
	service.NewService,
	web.NewHandler,
	InitSyncWechatOrderJob,
	wire.Struct(new(Module), "*"),
)

func InitModule(db *egorm.Component, q mq.MQ) *Module {
	wire.Build(ModuleSet)
	return new(Module)
}

func InitPaymentEventProducer(q mq.MQ) mqx.Producer[event.PaymentEvent] {
	p, err := mqx.NewGeneralProducer[event.PaymentEvent](q, event.PaymentEventName)
	if err != nil {
		panic(err)
	}
	return p
}

func InitSyncWechatOrderJob(svc service.Service) *job.SyncWechatOrderJob {
	// 半小时没付的再去网关问一眼, 单批100条
	return job.NewSyncWechatOrderJob(svc, 30, 100)
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.PaymentDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewPaymentGORMDAO(db)
}
