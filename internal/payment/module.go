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

package payment

import (
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/job"
	"github.com/ecodeclub/emall/internal/payment/internal/service"
	"github.com/ecodeclub/emall/internal/payment/internal/web"
)

type (
	Handler            = web.Handler
	Payment            = domain.Payment
	Channel            = domain.PaymentChannel
	Service            = service.Service
	SyncWechatOrderJob = job.SyncWechatOrderJob

	PaymentEvent = event.PaymentEvent
)

const (
	ChannelTypeWidget = domain.ChannelTypeWidget
	ChannelTypeCOD    = domain.ChannelTypeCOD

	StatusUnpaid        = domain.PaymentStatusUnpaid
	StatusPaidSuccess   = domain.PaymentStatusPaidSuccess
	StatusPaidFailed    = domain.PaymentStatusPaidFailed
	StatusTimeoutClosed = domain.PaymentStatusTimeoutClosed

	PaymentEventName = event.PaymentEventName

	EventStatusPaidSuccess = event.EventStatusPaidSuccess
	EventStatusPaidFailed  = event.EventStatusPaidFailed
)

// ErrGatewayNotConfigured 商户凭证缺失时发起托管支付返回该错误
var ErrGatewayNotConfigured = service.ErrGatewayNotConfigured

type Module struct {
	Hdl                *Handler
	Svc                Service
	SyncWechatOrderJob *SyncWechatOrderJob
}
