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
	"errors"
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deduction struct {
	variantID int64
	quantity  int64
}

type fakeProductService struct {
	deductions []deduction
	failFor    int64
}

func (f *fakeProductService) FindProductBySN(_ context.Context, _ string) (domain.Product, error) {
	return domain.Product{}, nil
}

func (f *fakeProductService) FindVariantByID(_ context.Context, _ int64) (domain.Variant, error) {
	return domain.Variant{}, nil
}

func (f *fakeProductService) DecrStock(_ context.Context, variantId int64, quantity int64) error {
	if f.failFor == variantId {
		return errors.New("库存不足")
	}
	f.deductions = append(f.deductions, deduction{variantID: variantId, quantity: quantity})
	return nil
}

func TestStockDeductConsumer_Consume(t *testing.T) {
	q := memory.NewMQ()
	require.NoError(t, q.CreateTopic(context.Background(), StockDeductEventName, 1))
	svc := &fakeProductService{failFor: 99}
	c, err := NewStockDeductConsumer(svc, q)
	require.NoError(t, err)

	producer, err := q.Producer(StockDeductEventName)
	require.NoError(t, err)
	evt := StockDeductEvent{
		OrderSN: "OrderSN-1",
		Items: []StockDeductItem{
			{VariantID: 1, Quantity: 2},
			// 这一行扣减失败, 但不能影响后面的行
			{VariantID: 99, Quantity: 1},
			{VariantID: 5, Quantity: 3},
		},
	}
	data, err := json.Marshal(evt)
	require.NoError(t, err)
	_, err = producer.Produce(context.Background(), &mq.Message{Value: data})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = c.Consume(ctx)
	require.NoError(t, err)

	assert.Equal(t, []deduction{
		{variantID: 1, quantity: 2},
		{variantID: 5, quantity: 3},
	}, svc.deductions)
}
