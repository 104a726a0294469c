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

package repository

import (
	"context"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/repository/dao"
)

var (
	ErrPaymentNotFound  = dao.ErrDataNotFound
	ErrDuplicatePayment = dao.ErrDuplicatePayment
)

type PaymentRepository interface {
	AddPayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	UpdateTxnIDAndStatus(ctx context.Context, orderSN string, txnID string, status domain.PaymentStatus) error
	FindPaymentByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	FindTimeoutPayments(ctx context.Context, offset int, limit int, ctime int64) ([]domain.Payment, int64, error)
}

func NewPaymentRepository(d dao.PaymentDAO) PaymentRepository {
	return &paymentRepository{dao: d}
}

type paymentRepository struct {
	dao dao.PaymentDAO
}

func (p *paymentRepository) AddPayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	id, err := p.dao.Insert(ctx, p.toEntity(pmt))
	if err != nil {
		return domain.Payment{}, err
	}
	pmt.ID = id
	return pmt, nil
}

func (p *paymentRepository) UpdateTxnIDAndStatus(ctx context.Context, orderSN string, txnID string, status domain.PaymentStatus) error {
	return p.dao.UpdateTxnIDAndStatus(ctx, orderSN, txnID, status.ToUint8())
}

func (p *paymentRepository) FindPaymentByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	pmt, err := p.dao.FindByOrderSN(ctx, orderSN)
	if err != nil {
		return domain.Payment{}, err
	}
	return p.toDomain(pmt), nil
}

func (p *paymentRepository) FindTimeoutPayments(ctx context.Context, offset int, limit int, ctime int64) ([]domain.Payment, int64, error) {
	pmts, err := p.dao.FindTimeoutPayments(ctx, offset, limit, ctime)
	if err != nil {
		return nil, 0, err
	}
	total, err := p.dao.CountTimeoutPayments(ctx, ctime)
	if err != nil {
		return nil, 0, err
	}
	return slice.Map(pmts, func(idx int, src dao.Payment) domain.Payment {
		return p.toDomain(src)
	}), total, nil
}

func (p *paymentRepository) toEntity(pmt domain.Payment) dao.Payment {
	return dao.Payment{
		OrderSN:      pmt.OrderSN,
		BuyerID:      pmt.BuyerID,
		Channel:      pmt.Channel,
		Amount:       pmt.Amount,
		Currency:     pmt.Currency,
		Description:  pmt.Description,
		GatewayTxnID: pmt.GatewayTxnID,
		Status:       pmt.Status.ToUint8(),
		PaidAt:       pmt.PaidAt,
	}
}

func (p *paymentRepository) toDomain(pmt dao.Payment) domain.Payment {
	return domain.Payment{
		ID:           pmt.ID,
		OrderSN:      pmt.OrderSN,
		BuyerID:      pmt.BuyerID,
		Channel:      pmt.Channel,
		Amount:       pmt.Amount,
		Currency:     pmt.Currency,
		Description:  pmt.Description,
		GatewayTxnID: pmt.GatewayTxnID,
		Status:       domain.PaymentStatus(pmt.Status),
		PaidAt:       pmt.PaidAt,
		Ctime:        pmt.Ctime,
		Utime:        pmt.Utime,
	}
}
