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

var ModuleSet = wire.NewSet(
	ioc.InitConfig,
	cache.NewDraftCache,
	sequencenumber.NewGenerator,
	InitStockDeductEventProducer,
	service.NewService,
	web.NewHandler,
	InitPaymentEventConsumer,
	wire.Struct(new(Module), "*"),
)

func InitModule(q mq.MQ,
	ec ecache.Cache,
	orderSvc order.Service,
	paymentSvc payment.Service,
	customerSvc customer.Service,
	notificationSvc notification.Service) *Module {
	wire.Build(ModuleSet)
	return new(Module)
}

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
