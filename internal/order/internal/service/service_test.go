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

package service

import (
	"context"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderRepo struct {
	orders map[string]domain.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]domain.Order{}}
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if _, ok := f.orders[order.SN]; ok {
		return domain.Order{}, repository.ErrDuplicateReference
	}
	f.nextID++
	order.ID = f.nextID
	f.orders[order.SN] = order
	return order, nil
}

func (f *fakeOrderRepo) UpdateOrder(_ context.Context, order domain.Order) error {
	for sn, o := range f.orders {
		if o.ID == order.ID {
			order.SN = sn
			f.orders[sn] = order
			return nil
		}
	}
	return repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) MarkPaid(_ context.Context, sn string, gatewayTxnID string) error {
	o, ok := f.orders[sn]
	if !ok {
		return repository.ErrOrderNotFound
	}
	o.PaymentStatus = domain.PaymentStatusPaid
	o.Status = domain.StatusProcessing
	o.GatewayTxnID = gatewayTxnID
	f.orders[sn] = o
	return nil
}

func (f *fakeOrderRepo) FindOrderBySN(_ context.Context, sn string) (domain.Order, error) {
	o, ok := f.orders[sn]
	if !ok {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) FindOrderBySNAndBuyerID(_ context.Context, sn string, buyerID int64) (domain.Order, error) {
	o, ok := f.orders[sn]
	if !ok || o.BuyerID != buyerID {
		return domain.Order{}, repository.ErrOrderNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) ListOrders(_ context.Context, _ int, _ int, uid int64) ([]domain.Order, error) {
	var res []domain.Order
	for _, o := range f.orders {
		if o.BuyerID == uid {
			res = append(res, o)
		}
	}
	return res, nil
}

func (f *fakeOrderRepo) TotalOrders(_ context.Context, uid int64) (int64, error) {
	var total int64
	for _, o := range f.orders {
		if o.BuyerID == uid {
			total++
		}
	}
	return total, nil
}

func (f *fakeOrderRepo) CloseExpiredOrders(_ context.Context, beforeCtime int64) (int64, error) {
	var n int64
	for sn, o := range f.orders {
		if o.Status == domain.StatusPending && o.PaymentStatus == domain.PaymentStatusUnpaid && o.Ctime < beforeCtime {
			o.Status = domain.StatusExpired
			f.orders[sn] = o
			n++
		}
	}
	return n, nil
}

func TestService_MarkPaid(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	_, err := svc.CreateOrder(context.Background(), domain.Order{
		SN:            "OrderSN-1",
		BuyerID:       234,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkPaid(context.Background(), "OrderSN-1", "tok_123"))
	// webhook和前端确认会竞争调用, 重复执行结果一致
	require.NoError(t, svc.MarkPaid(context.Background(), "OrderSN-1", "tok_123"))

	o, err := svc.FindOrderBySN(context.Background(), "OrderSN-1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, domain.StatusProcessing, o.Status)
	assert.Equal(t, "tok_123", o.GatewayTxnID)
}

func TestService_CancelOrder(t *testing.T) {
	testCases := []struct {
		name      string
		status    domain.OrderStatus
		assertErr assert.ErrorAssertionFunc
	}{
		{
			name:      "待支付订单可以取消",
			status:    domain.StatusPending,
			assertErr: assert.NoError,
		},
		{
			name:      "处理中订单不能取消",
			status:    domain.StatusProcessing,
			assertErr: assert.Error,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			svc := NewService(repo)
			o, err := svc.CreateOrder(context.Background(), domain.Order{
				SN:     "OrderSN-" + tc.name,
				Status: tc.status,
			})
			require.NoError(t, err)
			tc.assertErr(t, svc.CancelOrder(context.Background(), o))
		})
	}
}

func TestService_CloseExpiredOrders(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewService(repo)
	old := domain.Order{
		SN:            "OrderSN-old",
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Ctime:         time.Now().Add(-2 * time.Hour).UnixMilli(),
	}
	fresh := domain.Order{
		SN:            "OrderSN-fresh",
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Ctime:         time.Now().UnixMilli(),
	}
	repo.orders[old.SN] = old
	repo.orders[fresh.SN] = fresh

	n, err := svc.CloseExpiredOrders(context.Background(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := svc.FindOrderBySN(context.Background(), "OrderSN-old")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
	got, err = svc.FindOrderBySN(context.Background(), "OrderSN-fresh")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)
}
