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

package checkout

import (
	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/ecodeclub/emall/internal/checkout/internal/event"
	"github.com/ecodeclub/emall/internal/checkout/internal/service"
	"github.com/ecodeclub/emall/internal/checkout/internal/web"
)

type Draft = domain.Draft
type CartLine = domain.CartLine
type Contact = domain.Contact
type Pricing = domain.Pricing
type ShippingMethod = domain.ShippingMethod
type TaxFunc = domain.TaxFunc
type WidgetResult = domain.WidgetResult
type Step = domain.Step

const (
	StepContact  = domain.StepContact
	StepDelivery = domain.StepDelivery
	StepPayment  = domain.StepPayment

	WidgetStatusSuccess   = domain.WidgetStatusSuccess
	WidgetStatusCancelled = domain.WidgetStatusCancelled
)

type Service = service.Service
type Config = service.Config
type PaymentAttempt = service.PaymentAttempt
type Handler = web.Handler
type PaymentEventConsumer = event.PaymentEventConsumer

var (
	ErrDraftNotFound       = service.ErrDraftNotFound
	ErrInvalidStep         = service.ErrInvalidStep
	ErrValidation          = service.ErrValidation
	ErrChannelNotAvailable = service.ErrChannelNotAvailable
)

type Module struct {
	Svc      Service
	Hdl      *Handler
	Consumer *PaymentEventConsumer
}
