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

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/ecodeclub/emall/internal/payment/internal/event"
	"github.com/ecodeclub/emall/internal/payment/internal/repository"
	"github.com/ecodeclub/emall/internal/payment/internal/service/wechat"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/gotomicro/ego/core/elog"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
)

var ErrGatewayNotConfigured = wechat.ErrGatewayNotConfigured

type Service interface {
	// GetPaymentChannels 返回店铺启用的支付渠道
	GetPaymentChannels(ctx context.Context) []domain.PaymentChannel
	// CreatePayment 创建支付记录, 托管支付页渠道会同步换取支付页地址
	CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error)
	FindPaymentByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error)
	// HandleWechatCallback 网关回调, 落库后发出支付事件
	HandleWechatCallback(ctx context.Context, txn *payments.Transaction) error
	FindTimeoutPayments(ctx context.Context, offset int, limit int, ctime int64) ([]domain.Payment, int64, error)
	// SyncWechatInfo 主动向网关查询并补录状态
	SyncWechatInfo(ctx context.Context, pmt domain.Payment) error
	CloseTimeoutPayment(ctx context.Context, pmt domain.Payment) error
}

func NewService(repo repository.PaymentRepository,
	nativeSvc *wechat.NativePaymentService,
	producer mqx.Producer[event.PaymentEvent],
	channels []domain.PaymentChannel) Service {
	return &service{
		repo:      repo,
		nativeSvc: nativeSvc,
		producer:  producer,
		channels:  channels,
		l:         elog.DefaultLogger,
	}
}

type service struct {
	repo      repository.PaymentRepository
	nativeSvc *wechat.NativePaymentService
	producer  mqx.Producer[event.PaymentEvent]
	channels  []domain.PaymentChannel
	l         *elog.Component
}

func (s *service) GetPaymentChannels(_ context.Context) []domain.PaymentChannel {
	return s.channels
}

func (s *service) CreatePayment(ctx context.Context, pmt domain.Payment) (domain.Payment, error) {
	switch pmt.Channel {
	case domain.ChannelTypeWidget:
		codeURL, err := s.nativeSvc.Prepay(ctx, pmt)
		if err != nil {
			return domain.Payment{}, err
		}
		pmt.Status = domain.PaymentStatusUnpaid
		created, err := s.repo.AddPayment(ctx, pmt)
		if err != nil {
			return domain.Payment{}, err
		}
		created.CodeURL = codeURL
		return created, nil
	case domain.ChannelTypeCOD:
		// 货到付款没有网关交互, 支付记录只做对账用
		pmt.Status = domain.PaymentStatusUnpaid
		return s.repo.AddPayment(ctx, pmt)
	default:
		return domain.Payment{}, fmt.Errorf("支付渠道非法: %d", pmt.Channel)
	}
}

func (s *service) FindPaymentByOrderSN(ctx context.Context, orderSN string) (domain.Payment, error) {
	return s.repo.FindPaymentByOrderSN(ctx, orderSN)
}

func (s *service) HandleWechatCallback(ctx context.Context, txn *payments.Transaction) error {
	pmt, err := s.nativeSvc.ConvertCallbackTransactionToDomain(txn)
	if err != nil {
		return err
	}
	return s.updatePayment(ctx, pmt)
}

func (s *service) FindTimeoutPayments(ctx context.Context, offset int, limit int, ctime int64) ([]domain.Payment, int64, error) {
	return s.repo.FindTimeoutPayments(ctx, offset, limit, ctime)
}

func (s *service) SyncWechatInfo(ctx context.Context, pmt domain.Payment) error {
	p, err := s.nativeSvc.QueryOrderBySN(ctx, pmt.OrderSN)
	if err != nil {
		return fmt.Errorf("同步网关支付状态失败: %w", err)
	}
	return s.updatePayment(ctx, p)
}

func (s *service) CloseTimeoutPayment(ctx context.Context, pmt domain.Payment) error {
	pmt.Status = domain.PaymentStatusTimeoutClosed
	return s.repo.UpdateTxnIDAndStatus(ctx, pmt.OrderSN, pmt.GatewayTxnID, pmt.Status)
}

// updatePayment 回调和主动同步共用的幂等落库路径
func (s *service) updatePayment(ctx context.Context, pmt domain.Payment) error {
	err := s.repo.UpdateTxnIDAndStatus(ctx, pmt.OrderSN, pmt.GatewayTxnID, pmt.Status)
	if err != nil {
		return fmt.Errorf("更新支付状态失败: %w", err)
	}
	evt := event.PaymentEvent{
		OrderSN:      pmt.OrderSN,
		GatewayTxnID: pmt.GatewayTxnID,
		Status:       pmt.Status.ToUint8(),
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.producer.Produce(sendCtx, evt); err != nil {
		// 事件丢了还有定时同步兜底, 只记日志
		s.l.Error("发送支付事件失败",
			elog.FieldErr(err),
			elog.String("order_sn", pmt.OrderSN),
			elog.Any("event", evt),
		)
	}
	return nil
}
