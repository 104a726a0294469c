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

package event

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/ecodeclub/emall/internal/checkout/internal/service"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finalizeCall struct {
	orderSN string
	token   string
}

type fakeCheckoutService struct {
	finalized []finalizeCall
}

func (f *fakeCheckoutService) StartCheckout(_ context.Context, _ int64, _ []domain.CartLine) (domain.Draft, error) {
	return domain.Draft{}, nil
}

func (f *fakeCheckoutService) GetDraft(_ context.Context, _ string) (domain.Draft, error) {
	return domain.Draft{}, nil
}

func (f *fakeCheckoutService) SubmitContact(_ context.Context, _ string, _ domain.Contact) (domain.Draft, error) {
	return domain.Draft{}, nil
}

func (f *fakeCheckoutService) SubmitDelivery(_ context.Context, _ string, _ string) (domain.Draft, bool, error) {
	return domain.Draft{}, false, nil
}

func (f *fakeCheckoutService) ContinueAsGuest(_ context.Context, _ string) (domain.Draft, error) {
	return domain.Draft{}, nil
}

func (f *fakeCheckoutService) Authenticated(_ context.Context, _ string, _ int64) (domain.Draft, error) {
	return domain.Draft{}, nil
}

func (f *fakeCheckoutService) Preview(_ context.Context, _ string) (domain.Pricing, error) {
	return domain.Pricing{}, nil
}

func (f *fakeCheckoutService) SubmitPayment(_ context.Context, _ string, _ int64) (service.PaymentAttempt, error) {
	return service.PaymentAttempt{}, nil
}

func (f *fakeCheckoutService) ConfirmWidgetResult(_ context.Context, _ string, _ domain.WidgetResult) (order.Order, error) {
	return order.Order{}, nil
}

func (f *fakeCheckoutService) Finalize(_ context.Context, orderSN string, token string) (order.Order, error) {
	f.finalized = append(f.finalized, finalizeCall{orderSN: orderSN, token: token})
	return order.Order{}, nil
}

func TestPaymentEventConsumer_Consume(t *testing.T) {
	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(context.Background(), payment.PaymentEventName, 1))
	svc := &fakeCheckoutService{}
	c, err := NewPaymentEventConsumer(svc, q)
	require.NoError(t, err)

	producer, err := q.Producer(payment.PaymentEventName)
	require.NoError(t, err)
	produce := func(evt payment.PaymentEvent) {
		data, merr := json.Marshal(evt)
		require.NoError(t, merr)
		_, perr := producer.Produce(context.Background(), &mq.Message{Value: data})
		require.NoError(t, perr)
	}
	// 支付失败事件不触发收尾
	produce(payment.PaymentEvent{
		OrderSN: "OrderSN-1",
		Status:  payment.EventStatusPaidFailed,
	})
	produce(payment.PaymentEvent{
		OrderSN:      "OrderSN-2",
		GatewayTxnID: "4200001",
		Status:       payment.EventStatusPaidSuccess,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, c.Consume(ctx))
	require.NoError(t, c.Consume(ctx))

	assert.Equal(t, []finalizeCall{
		{orderSN: "OrderSN-2", token: "4200001"},
	}, svc.finalized)
}
