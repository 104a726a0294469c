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

package order

import (
	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/job"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
)

type (
	Order     = domain.Order
	OrderItem = domain.OrderItem
	Address   = domain.Address

	OrderStatus   = domain.OrderStatus
	PaymentStatus = domain.PaymentStatus

	Service = service.Service
	Handler = web.Handler

	CloseExpiredOrdersJob = job.CloseExpiredOrdersJob
)

const (
	StatusPending    = domain.StatusPending
	StatusProcessing = domain.StatusProcessing
	StatusCancelled  = domain.StatusCancelled
	StatusExpired    = domain.StatusExpired

	PaymentStatusUnpaid = domain.PaymentStatusUnpaid
	PaymentStatusPaid   = domain.PaymentStatusPaid
)

// ErrDuplicateReference 支付参考号已存在, 调用方换号重试
var ErrDuplicateReference = repository.ErrDuplicateReference

var NewCloseExpiredOrdersJob = job.NewCloseExpiredOrdersJob

type Module struct {
	Svc Service
	Hdl *Handler
}
