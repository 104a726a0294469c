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
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/order/internal/domain"
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	FindOrderBySN(ctx context.Context, sn string) (domain.Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error)
	// MarkPaid 幂等确认支付, 结算流程和网关webhook都会调用
	MarkPaid(ctx context.Context, sn string, gatewayTxnID string) error
	ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error)
	CancelOrder(ctx context.Context, order domain.Order) error
	CloseExpiredOrders(ctx context.Context, ttl time.Duration) (int64, error)
}

func NewService(repo repository.OrderRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.OrderRepository
}

func (s *service) CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	return s.repo.CreateOrder(ctx, order)
}

func (s *service) FindOrderBySN(ctx context.Context, sn string) (domain.Order, error) {
	return s.repo.FindOrderBySN(ctx, sn)
}

func (s *service) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (domain.Order, error) {
	return s.repo.FindOrderBySNAndBuyerID(ctx, sn, buyerID)
}

func (s *service) MarkPaid(ctx context.Context, sn string, gatewayTxnID string) error {
	// 已收到付款, 不管订单当前状态是什么都标记为已支付
	return s.repo.MarkPaid(ctx, sn, gatewayTxnID)
}

func (s *service) ListOrders(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error) {
	var (
		eg    errgroup.Group
		os    []domain.Order
		total int64
	)
	eg.Go(func() error {
		var err error
		os, err = s.repo.ListOrders(ctx, offset, limit, uid)
		return err
	})

	eg.Go(func() error {
		var err error
		total, err = s.repo.TotalOrders(ctx, uid)
		return err
	})
	return os, total, eg.Wait()
}

func (s *service) CancelOrder(ctx context.Context, order domain.Order) error {
	if order.Status != domain.StatusPending {
		return fmt.Errorf("订单状态非法")
	}
	order.Status = domain.StatusCancelled
	order.ClosedAt = time.Now().UnixMilli()
	return s.repo.UpdateOrder(ctx, order)
}

func (s *service) CloseExpiredOrders(ctx context.Context, ttl time.Duration) (int64, error) {
	beforeCtime := time.Now().Add(-ttl).UnixMilli()
	return s.repo.CloseExpiredOrders(ctx, beforeCtime)
}
