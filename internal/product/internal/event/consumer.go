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
	"fmt"

	"github.com/ecodeclub/emall/internal/product/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

type StockDeductConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewStockDeductConsumer(svc service.Service, q mq.MQ) (*StockDeductConsumer, error) {
	const groupID = "product"
	consumer, err := q.Consumer(StockDeductEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &StockDeductConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *StockDeductConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费库存扣减事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *StockDeductConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt StockDeductEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	// 单行失败只记日志, 不影响其他行的扣减
	for _, item := range evt.Items {
		er := c.svc.DecrStock(ctx, item.VariantID, item.Quantity)
		if er != nil {
			c.logger.Error("扣减库存失败",
				elog.FieldErr(er),
				elog.String("order_sn", evt.OrderSN),
				elog.Int64("variant_id", item.VariantID),
				elog.Int64("quantity", item.Quantity),
			)
		}
	}
	return nil
}
