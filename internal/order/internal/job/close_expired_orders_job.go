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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/gotomicro/ego/core/elog"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*CloseExpiredOrdersJob)(nil)

// CloseExpiredOrdersJob 定时把超时未支付的待支付订单关闭为已过期
// 弹窗被放弃的订单不会收到任何回调, 全靠这里兜底
type CloseExpiredOrdersJob struct {
	svc     service.Service
	ttl     time.Duration
	timeout time.Duration
	logger  *elog.Component
}

func NewCloseExpiredOrdersJob(svc service.Service, ttl time.Duration, timeout time.Duration) *CloseExpiredOrdersJob {
	return &CloseExpiredOrdersJob{
		svc:     svc,
		ttl:     ttl,
		timeout: timeout,
		logger:  elog.DefaultLogger,
	}
}

func (c *CloseExpiredOrdersJob) Name() string {
	return "CloseExpiredOrdersJob"
}

func (c *CloseExpiredOrdersJob) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, c.timeout)
	defer cancelFunc()
	n, err := c.svc.CloseExpiredOrders(ctx, c.ttl)
	if err != nil {
		return fmt.Errorf("关闭过期订单失败: %w", err)
	}
	if n > 0 {
		c.logger.Info("关闭过期订单", elog.Int64("count", n))
	}
	return nil
}
