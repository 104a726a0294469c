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
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/ecodeclub/emall/internal/checkout/internal/repository/cache"
	"github.com/ecodeclub/emall/internal/customer"
	"github.com/ecodeclub/emall/internal/notification"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/pkg/mqx"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

var (
	ErrDraftNotFound = cache.ErrDraftNotFound
	// ErrInvalidStep 当前步骤不允许该操作
	ErrInvalidStep = errors.New("结算步骤非法")
	// ErrValidation 字段校验失败, 本地拒绝不发起任何网络调用
	ErrValidation = errors.New("字段校验失败")
	// ErrChannelNotAvailable 支付渠道未启用或凭证缺失
	ErrChannelNotAvailable = errors.New("支付渠道不可用")
	// ErrCreateOrderFailed 下单失败, 调用方可以重试
	ErrCreateOrderFailed = errors.New("创建订单失败")
)

// maxReferenceRetries 支付参考号撞唯一索引时换号重试的次数
const maxReferenceRetries = 3

type Config struct {
	Currency        string
	ShippingMethods []domain.ShippingMethod
	// Tax 税费计算外部注入, 为nil表示不收税
	Tax domain.TaxFunc
}

// PaymentAttempt 一次支付发起的结果
type PaymentAttempt struct {
	Order order.Order
	// CodeURL 托管支付页地址, 仅托管渠道有值
	CodeURL string
}

//go:generate mockgen -source=./service.go -package=checkoutmocks -destination=./mocks/checkout.mock.go -typed Service
type Service interface {
	// StartCheckout 开始一次结算尝试, 返回的草稿Key标识后续所有请求
	StartCheckout(ctx context.Context, buyerID int64, lines []domain.CartLine) (domain.Draft, error)
	GetDraft(ctx context.Context, key string) (domain.Draft, error)
	// SubmitContact 联系与地址信息, 校验通过后进入配送步骤
	SubmitContact(ctx context.Context, key string, c domain.Contact) (domain.Draft, error)
	// SubmitDelivery 第二个返回值为true表示要先过认证门:
	// 要么登录, 要么明确选择游客结算, 每次尝试最多弹一次
	SubmitDelivery(ctx context.Context, key string, shippingMethodID string) (domain.Draft, bool, error)
	ContinueAsGuest(ctx context.Context, key string) (domain.Draft, error)
	// Authenticated 认证门里登录成功后恢复推进
	Authenticated(ctx context.Context, key string, buyerID int64) (domain.Draft, error)
	// Preview 纯计算, 选择每变一次就重算一次
	Preview(ctx context.Context, key string) (domain.Pricing, error)
	// SubmitPayment 发起支付, 托管渠道先落订单再给支付页地址
	SubmitPayment(ctx context.Context, key string, channel int64) (PaymentAttempt, error)
	// ConfirmWidgetResult 支付组件弹窗的终态回报
	ConfirmWidgetResult(ctx context.Context, key string, result domain.WidgetResult) (order.Order, error)
	// Finalize 支付确认后的收尾, 幂等, 前端确认和网关webhook都会走到
	Finalize(ctx context.Context, orderSN string, token string) (order.Order, error)
}

func NewService(draftCache cache.DraftCache,
	orderSvc order.Service,
	paymentSvc payment.Service,
	customerSvc customer.Service,
	notificationSvc notification.Service,
	stockProducer mqx.Producer[product.StockDeductEvent],
	snGenerator *sequencenumber.Generator,
	cfg Config) Service {
	return &checkoutService{
		draftCache:      draftCache,
		orderSvc:        orderSvc,
		paymentSvc:      paymentSvc,
		customerSvc:     customerSvc,
		notificationSvc: notificationSvc,
		stockProducer:   stockProducer,
		snGenerator:     snGenerator,
		cfg:             cfg,
		logger:          elog.DefaultLogger,
	}
}

type checkoutService struct {
	draftCache      cache.DraftCache
	orderSvc        order.Service
	paymentSvc      payment.Service
	customerSvc     customer.Service
	notificationSvc notification.Service
	stockProducer   mqx.Producer[product.StockDeductEvent]
	snGenerator     *sequencenumber.Generator
	cfg             Config
	logger          *elog.Component
}

func (s *checkoutService) StartCheckout(ctx context.Context, buyerID int64, lines []domain.CartLine) (domain.Draft, error) {
	if len(lines) == 0 {
		return domain.Draft{}, fmt.Errorf("%w: 购物车为空", ErrValidation)
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return domain.Draft{}, fmt.Errorf("%w: 商品数量非法", ErrValidation)
		}
	}
	draft := domain.Draft{
		Key:     shortuuid.New(),
		Step:    domain.StepContact,
		BuyerID: buyerID,
		Lines:   lines,
	}
	if err := s.draftCache.SetDraft(ctx, draft); err != nil {
		return domain.Draft{}, err
	}
	return draft, nil
}

func (s *checkoutService) GetDraft(ctx context.Context, key string) (domain.Draft, error) {
	return s.draftCache.GetDraft(ctx, key)
}

func (s *checkoutService) SubmitContact(ctx context.Context, key string, c domain.Contact) (domain.Draft, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return domain.Draft{}, err
	}
	if c.Email == "" || c.Name == "" || c.Line == "" || c.City == "" {
		return domain.Draft{}, fmt.Errorf("%w: 联系信息不完整", ErrValidation)
	}
	draft.Contact = c
	draft.Step = domain.StepDelivery
	if err := s.draftCache.SetDraft(ctx, draft); err != nil {
		return domain.Draft{}, err
	}
	return draft, nil
}

func (s *checkoutService) SubmitDelivery(ctx context.Context, key string, shippingMethodID string) (domain.Draft, bool, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return domain.Draft{}, false, err
	}
	// 允许从支付步骤回来改配送方式, 不重新过认证门
	if draft.Step != domain.StepDelivery && draft.Step != domain.StepPayment {
		return domain.Draft{}, false, ErrInvalidStep
	}
	if !s.shippingMethodEnabled(shippingMethodID) {
		return domain.Draft{}, false, fmt.Errorf("%w: 配送方式非法", ErrValidation)
	}
	draft.ShippingMethod = shippingMethodID
	// 认证门: 没登录也没明确选游客, 先别进支付步骤
	// 游客标记一旦置位本次尝试不再评估
	if draft.BuyerID == 0 && !draft.Guest {
		if err := s.draftCache.SetDraft(ctx, draft); err != nil {
			return domain.Draft{}, false, err
		}
		return draft, true, nil
	}
	draft.Step = domain.StepPayment
	if err := s.draftCache.SetDraft(ctx, draft); err != nil {
		return domain.Draft{}, false, err
	}
	return draft, false, nil
}

func (s *checkoutService) ContinueAsGuest(ctx context.Context, key string) (domain.Draft, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return domain.Draft{}, err
	}
	draft.Guest = true
	if draft.Step == domain.StepDelivery && draft.ShippingMethod != "" {
		draft.Step = domain.StepPayment
	}
	if err := s.draftCache.SetDraft(ctx, draft); err != nil {
		return domain.Draft{}, err
	}
	return draft, nil
}

func (s *checkoutService) Authenticated(ctx context.Context, key string, buyerID int64) (domain.Draft, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return domain.Draft{}, err
	}
	draft.BuyerID = buyerID
	if draft.Step == domain.StepDelivery && draft.ShippingMethod != "" {
		draft.Step = domain.StepPayment
	}
	if err := s.draftCache.SetDraft(ctx, draft); err != nil {
		return domain.Draft{}, err
	}
	return draft, nil
}

func (s *checkoutService) Preview(ctx context.Context, key string) (domain.Pricing, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return domain.Pricing{}, err
	}
	return domain.ComputePricing(draft.Lines, s.cfg.ShippingMethods, draft.ShippingMethod, s.cfg.Tax), nil
}

func (s *checkoutService) SubmitPayment(ctx context.Context, key string, channel int64) (PaymentAttempt, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return PaymentAttempt{}, err
	}
	if draft.Step != domain.StepPayment {
		return PaymentAttempt{}, ErrInvalidStep
	}
	// 渠道可用性在建单前检查, 凭证缺失不会留下订单
	if !s.channelEnabled(ctx, channel) {
		return PaymentAttempt{}, ErrChannelNotAvailable
	}
	draft.PaymentChannel = channel

	pricing := domain.ComputePricing(draft.Lines, s.cfg.ShippingMethods, draft.ShippingMethod, s.cfg.Tax)

	buyerID := draft.BuyerID
	if buyerID == 0 && draft.Guest {
		// 游客按邮箱复用或开户, 开户失败降级为匿名订单
		identity := s.customerSvc.ResolveGuest(ctx, draft.Contact.Email, draft.Contact.Name)
		buyerID = identity.ID
		draft.BuyerID = buyerID
	}

	o, err := s.createOrder(ctx, draft, pricing, channel, buyerID)
	if err != nil {
		return PaymentAttempt{}, err
	}
	ordersCreatedCounter.WithLabelValues(strconv.FormatInt(channel, 10)).Inc()

	pmt, err := s.paymentSvc.CreatePayment(ctx, payment.Payment{
		OrderSN:     o.SN,
		BuyerID:     buyerID,
		Channel:     channel,
		Amount:      pricing.Total,
		Currency:    s.cfg.Currency,
		Description: s.orderDescription(draft),
	})
	if err != nil {
		// 订单已落库, 留作待支付记录, 错误原样上抛
		return PaymentAttempt{}, fmt.Errorf("发起支付失败: %w", err)
	}

	if channel == payment.ChannelTypeWidget {
		draft.Processing = true
		draft.OrderSN = o.SN
		if err := s.draftCache.SetDraft(ctx, draft); err != nil {
			return PaymentAttempt{}, err
		}
		return PaymentAttempt{Order: o, CodeURL: pmt.CodeURL}, nil
	}

	// 货到付款: 订单直接进入处理中, 收尾动作同步执行, 不标记已支付
	s.sideEffects(ctx, o)
	if err := s.draftCache.DelDraft(ctx, key); err != nil {
		s.logger.Warn("清理结算草稿失败", elog.FieldErr(err), elog.String("key", key))
	}
	return PaymentAttempt{Order: o}, nil
}

func (s *checkoutService) ConfirmWidgetResult(ctx context.Context, key string, result domain.WidgetResult) (order.Order, error) {
	draft, err := s.draftCache.GetDraft(ctx, key)
	if err != nil {
		return order.Order{}, err
	}
	if draft.OrderSN == "" {
		return order.Order{}, ErrInvalidStep
	}

	if result.Status == domain.WidgetStatusCancelled {
		// 取消是一等终态: 订单保留为待支付的遗留记录, 回到支付步骤
		// 重新提交会生成新参考号和新订单
		widgetCancelledCounter.Inc()
		draft.Processing = false
		draft.OrderSN = ""
		if err := s.draftCache.SetDraft(ctx, draft); err != nil {
			return order.Order{}, err
		}
		return order.Order{}, nil
	}

	o, err := s.Finalize(ctx, draft.OrderSN, result.Token)
	if err != nil {
		return order.Order{}, err
	}
	// 草稿到此用完即弃, 购物车清理交给确认页
	if err := s.draftCache.DelDraft(ctx, key); err != nil {
		s.logger.Warn("清理结算草稿失败", elog.FieldErr(err), elog.String("key", key))
	}
	return o, nil
}

func (s *checkoutService) Finalize(ctx context.Context, orderSN string, token string) (order.Order, error) {
	o, err := s.orderSvc.FindOrderBySN(ctx, orderSN)
	if err != nil {
		return order.Order{}, fmt.Errorf("订单未找到: %w", err)
	}
	alreadyPaid := o.PaymentStatus == order.PaymentStatusPaid

	// 权威状态更新: 幂等的末次写入, webhook和前端确认都会走到这
	// 失败只记日志, 另一个写入方是兜底
	if err := s.orderSvc.MarkPaid(ctx, orderSN, token); err != nil {
		s.logger.Error("标记订单已支付失败",
			elog.FieldErr(err),
			elog.String("order_sn", orderSN),
		)
	} else {
		o.PaymentStatus = order.PaymentStatusPaid
		o.Status = order.StatusProcessing
		o.GatewayTxnID = token
	}

	if alreadyPaid {
		// 另一个写入方已经做过收尾, 不重复发通知扣库存
		return o, nil
	}

	s.sideEffects(ctx, o)
	ordersFinalizedCounter.Inc()
	return o, nil
}

// sideEffects 收尾动作: 通知等待完成再返回, 库存扣减发消息不等结果
// 任何一步失败都不回滚支付状态
func (s *checkoutService) sideEffects(ctx context.Context, o order.Order) {
	if err := s.notificationSvc.SendCustomerConfirmation(ctx, o); err != nil {
		s.logger.Error("发送买家确认邮件失败",
			elog.FieldErr(err),
			elog.String("order_sn", o.SN),
		)
	}
	if err := s.notificationSvc.SendStaffNotification(ctx, o); err != nil {
		s.logger.Error("发送店员通知失败",
			elog.FieldErr(err),
			elog.String("order_sn", o.SN),
		)
	}

	evt := product.StockDeductEvent{
		OrderSN: o.SN,
		Items: slice.Map(o.Items, func(idx int, src order.OrderItem) product.StockDeductItem {
			return product.StockDeductItem{
				VariantID: src.VariantID,
				Quantity:  src.Quantity,
			}
		}),
	}
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.stockProducer.Produce(sendCtx, evt); err != nil {
		s.logger.Error("发送库存扣减事件失败",
			elog.FieldErr(err),
			elog.String("order_sn", o.SN),
			elog.Any("event", evt),
		)
	}
}

func (s *checkoutService) createOrder(ctx context.Context, draft domain.Draft, pricing domain.Pricing, channel int64, buyerID int64) (order.Order, error) {
	status := order.StatusPending
	if channel == payment.ChannelTypeCOD {
		status = order.StatusProcessing
	}
	var lastErr error
	for i := 0; i < maxReferenceRetries; i++ {
		sn, err := s.snGenerator.Generate(buyerID)
		if err != nil {
			return order.Order{}, fmt.Errorf("%w: 生成支付参考号失败: %w", ErrCreateOrderFailed, err)
		}
		o, err := s.orderSvc.CreateOrder(ctx, order.Order{
			SN:             sn,
			BuyerID:        buyerID,
			Subtotal:       pricing.Subtotal,
			Shipping:       pricing.Shipping,
			Tax:            pricing.Tax,
			Total:          pricing.Total,
			Currency:       s.cfg.Currency,
			Status:         status,
			PaymentStatus:  order.PaymentStatusUnpaid,
			PaymentChannel: channel,
			Address: order.Address{
				Name:     draft.Contact.Name,
				Email:    draft.Contact.Email,
				Phone:    draft.Contact.Phone,
				Line:     draft.Contact.Line,
				City:     draft.Contact.City,
				Region:   draft.Contact.Region,
				Shipping: s.shippingMethodName(draft.ShippingMethod),
			},
			Items: slice.Map(draft.Lines, func(idx int, src domain.CartLine) order.OrderItem {
				return order.OrderItem{
					ProductID: src.ProductID,
					VariantID: src.VariantID,
					Name:      src.Name,
					Image:     src.Image,
					UnitPrice: src.Price(),
					Quantity:  src.Quantity,
				}
			}),
		})
		if err == nil {
			return o, nil
		}
		if errors.Is(err, order.ErrDuplicateReference) {
			// 参考号撞了唯一索引, 换号重试而不是报系统错误
			lastErr = err
			continue
		}
		return order.Order{}, fmt.Errorf("%w: %w", ErrCreateOrderFailed, err)
	}
	return order.Order{}, fmt.Errorf("%w: %w", ErrCreateOrderFailed, lastErr)
}

func (s *checkoutService) channelEnabled(ctx context.Context, channel int64) bool {
	for _, c := range s.paymentSvc.GetPaymentChannels(ctx) {
		if c.Type == channel {
			return true
		}
	}
	return false
}

func (s *checkoutService) shippingMethodEnabled(id string) bool {
	for _, m := range s.cfg.ShippingMethods {
		if m.ID == id && m.Enabled {
			return true
		}
	}
	return false
}

func (s *checkoutService) shippingMethodName(id string) string {
	for _, m := range s.cfg.ShippingMethods {
		if m.ID == id {
			return m.Name
		}
	}
	return id
}

func (s *checkoutService) orderDescription(draft domain.Draft) string {
	if len(draft.Lines) == 1 {
		return draft.Lines[0].Name
	}
	return fmt.Sprintf("%s 等%d件商品", draft.Lines[0].Name, len(draft.Lines))
}
