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

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/service/wechat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wechatpay-apiv3/wechatpay-go/core"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments/native"
)

type fakePaymentRepo struct {
	payments map[string]domain.Payment
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]domain.Payment{}}
}

func (f *fakePaymentRepo) AddPayment(_ context.Context, pmt domain.Payment) (domain.Payment, error) {
	f.nextID++
	pmt.ID = f.nextID
	f.payments[pmt.OrderSN] = pmt
	return pmt, nil
}

func (f *fakePaymentRepo) UpdateTxnIDAndStatus(_ context.Context, orderSN string, txnID string, status domain.PaymentStatus) error {
	pmt := f.payments[orderSN]
	pmt.OrderSN = orderSN
	pmt.GatewayTxnID = txnID
	pmt.Status = status
	f.payments[orderSN] = pmt
	return nil
}

func (f *fakePaymentRepo) FindPaymentByOrderSN(_ context.Context, orderSN string) (domain.Payment, error) {
	return f.payments[orderSN], nil
}

func (f *fakePaymentRepo) FindTimeoutPayments(_ context.Context, _ int, _ int, _ int64) ([]domain.Payment, int64, error) {
	return nil, 0, nil
}

type fakeNativeAPI struct {
	codeURL    string
	tradeState string
	txnID      string
}

func (f *fakeNativeAPI) Prepay(_ context.Context, _ native.PrepayRequest) (*native.PrepayResponse, *core.APIResult, error) {
	return &native.PrepayResponse{CodeUrl: core.String(f.codeURL)}, nil, nil
}

func (f *fakeNativeAPI) QueryOrderByOutTradeNo(_ context.Context, req native.QueryOrderByOutTradeNoRequest) (*payments.Transaction, *core.APIResult, error) {
	return &payments.Transaction{
		OutTradeNo:    req.OutTradeNo,
		TransactionId: core.String(f.txnID),
		TradeState:    core.String(f.tradeState),
	}, nil, nil
}

type fakePaymentEventProducer struct {
	events []event.PaymentEvent
}

func (f *fakePaymentEventProducer) Produce(_ context.Context, evt event.PaymentEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func TestService_CreatePayment(t *testing.T) {
	t.Run("托管支付页渠道_返回支付页地址", func(t *testing.T) {
		repo := newFakePaymentRepo()
		producer := &fakePaymentEventProducer{}
		nativeSvc := wechat.NewNativePaymentService(&fakeNativeAPI{codeURL: "weixin://wxpay/bizpayurl?pr=abc"},
			"appid", "mchid", "https://shop.example.com/pay/callback")
		svc := NewService(repo, nativeSvc, producer, nil)

		created, err := svc.CreatePayment(context.Background(), domain.Payment{
			OrderSN:  "OrderSN-1",
			Channel:  domain.ChannelTypeWidget,
			Amount:   10890,
			Currency: "CNY",
		})
		require.NoError(t, err)
		assert.Equal(t, "weixin://wxpay/bizpayurl?pr=abc", created.CodeURL)
		assert.Equal(t, domain.PaymentStatusUnpaid, repo.payments["OrderSN-1"].Status)
	})

	t.Run("网关未配置_阻塞性报错且不落库", func(t *testing.T) {
		repo := newFakePaymentRepo()
		producer := &fakePaymentEventProducer{}
		nativeSvc := wechat.NewNativePaymentService(nil, "", "", "")
		svc := NewService(repo, nativeSvc, producer, nil)

		_, err := svc.CreatePayment(context.Background(), domain.Payment{
			OrderSN: "OrderSN-2",
			Channel: domain.ChannelTypeWidget,
			Amount:  10890,
		})
		assert.ErrorIs(t, err, wechat.ErrGatewayNotConfigured)
		assert.Empty(t, repo.payments)
	})

	t.Run("货到付款_无网关交互", func(t *testing.T) {
		repo := newFakePaymentRepo()
		producer := &fakePaymentEventProducer{}
		nativeSvc := wechat.NewNativePaymentService(nil, "", "", "")
		svc := NewService(repo, nativeSvc, producer, nil)

		created, err := svc.CreatePayment(context.Background(), domain.Payment{
			OrderSN: "OrderSN-3",
			Channel: domain.ChannelTypeCOD,
			Amount:  10890,
		})
		require.NoError(t, err)
		assert.Empty(t, created.CodeURL)
		assert.Equal(t, domain.PaymentStatusUnpaid, repo.payments["OrderSN-3"].Status)
	})
}

func TestService_HandleWechatCallback(t *testing.T) {
	newTxn := func(state string) *payments.Transaction {
		return &payments.Transaction{
			OutTradeNo:    core.String("OrderSN-1"),
			TransactionId: core.String("42000123"),
			TradeState:    core.String(state),
		}
	}

	t.Run("支付成功_落库并发出支付事件", func(t *testing.T) {
		repo := newFakePaymentRepo()
		producer := &fakePaymentEventProducer{}
		nativeSvc := wechat.NewNativePaymentService(&fakeNativeAPI{}, "appid", "mchid", "")
		svc := NewService(repo, nativeSvc, producer, nil)

		require.NoError(t, svc.HandleWechatCallback(context.Background(), newTxn("SUCCESS")))

		assert.Equal(t, domain.PaymentStatusPaidSuccess, repo.payments["OrderSN-1"].Status)
		assert.Equal(t, "42000123", repo.payments["OrderSN-1"].GatewayTxnID)
		require.Len(t, producer.events, 1)
		assert.Equal(t, event.PaymentEvent{
			OrderSN:      "OrderSN-1",
			GatewayTxnID: "42000123",
			Status:       event.EventStatusPaidSuccess,
		}, producer.events[0])
	})

	t.Run("重复回调_结果一致", func(t *testing.T) {
		repo := newFakePaymentRepo()
		producer := &fakePaymentEventProducer{}
		nativeSvc := wechat.NewNativePaymentService(&fakeNativeAPI{}, "appid", "mchid", "")
		svc := NewService(repo, nativeSvc, producer, nil)

		require.NoError(t, svc.HandleWechatCallback(context.Background(), newTxn("SUCCESS")))
		require.NoError(t, svc.HandleWechatCallback(context.Background(), newTxn("SUCCESS")))

		assert.Equal(t, domain.PaymentStatusPaidSuccess, repo.payments["OrderSN-1"].Status)
	})

	t.Run("非终态_忽略不落库", func(t *testing.T) {
		repo := newFakePaymentRepo()
		producer := &fakePaymentEventProducer{}
		nativeSvc := wechat.NewNativePaymentService(&fakeNativeAPI{}, "appid", "mchid", "")
		svc := NewService(repo, nativeSvc, producer, nil)

		err := svc.HandleWechatCallback(context.Background(), newTxn("NOTPAY"))
		assert.Error(t, err)
		assert.Empty(t, repo.payments)
		assert.Empty(t, producer.events)
	})
}
