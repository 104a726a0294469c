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
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/ecodeclub/emall/internal/checkout/internal/repository/cache"
	"github.com/ecodeclub/emall/internal/customer"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/emall/internal/pkg/sequencenumber"
	"github.com/ecodeclub/emall/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wechatpay-apiv3/wechatpay-go/services/payments"
)

type fakeDraftCache struct {
	drafts map[string]domain.Draft
}

func newFakeDraftCache() *fakeDraftCache {
	return &fakeDraftCache{drafts: make(map[string]domain.Draft)}
}

func (f *fakeDraftCache) SetDraft(_ context.Context, draft domain.Draft) error {
	f.drafts[draft.Key] = draft
	return nil
}

func (f *fakeDraftCache) GetDraft(_ context.Context, key string) (domain.Draft, error) {
	draft, ok := f.drafts[key]
	if !ok {
		return domain.Draft{}, cache.ErrDraftNotFound
	}
	return draft, nil
}

func (f *fakeDraftCache) DelDraft(_ context.Context, key string) error {
	delete(f.drafts, key)
	return nil
}

type fakeOrderService struct {
	orders map[string]order.Order
	nextID int64
	// dupTimes 前几次建单强制报参考号重复
	dupTimes int
	attempts int
}

func newFakeOrderService() *fakeOrderService {
	return &fakeOrderService{orders: make(map[string]order.Order)}
}

func (f *fakeOrderService) CreateOrder(_ context.Context, o order.Order) (order.Order, error) {
	f.attempts++
	if f.dupTimes > 0 {
		f.dupTimes--
		return order.Order{}, order.ErrDuplicateReference
	}
	if _, ok := f.orders[o.SN]; ok {
		return order.Order{}, order.ErrDuplicateReference
	}
	f.nextID++
	o.ID = f.nextID
	o.Ctime = time.Now().UnixMilli()
	f.orders[o.SN] = o
	return o, nil
}

func (f *fakeOrderService) FindOrderBySN(_ context.Context, sn string) (order.Order, error) {
	o, ok := f.orders[sn]
	if !ok {
		return order.Order{}, errors.New("订单未找到")
	}
	return o, nil
}

func (f *fakeOrderService) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (order.Order, error) {
	o, err := f.FindOrderBySN(ctx, sn)
	if err != nil || o.BuyerID != buyerID {
		return order.Order{}, errors.New("订单未找到")
	}
	return o, nil
}

func (f *fakeOrderService) MarkPaid(_ context.Context, sn string, gatewayTxnID string) error {
	o, ok := f.orders[sn]
	if !ok {
		return errors.New("订单未找到")
	}
	o.PaymentStatus = order.PaymentStatusPaid
	o.Status = order.StatusProcessing
	o.GatewayTxnID = gatewayTxnID
	f.orders[sn] = o
	return nil
}

func (f *fakeOrderService) ListOrders(_ context.Context, _, _ int, _ int64) ([]order.Order, int64, error) {
	return nil, 0, nil
}

func (f *fakeOrderService) CancelOrder(_ context.Context, _ order.Order) error {
	return nil
}

func (f *fakeOrderService) CloseExpiredOrders(_ context.Context, _ time.Duration) (int64, error) {
	return 0, nil
}

type fakePaymentService struct {
	channels []payment.Channel
	payments []payment.Payment
	codeURL  string
}

func (f *fakePaymentService) GetPaymentChannels(_ context.Context) []payment.Channel {
	return f.channels
}

func (f *fakePaymentService) CreatePayment(_ context.Context, pmt payment.Payment) (payment.Payment, error) {
	f.payments = append(f.payments, pmt)
	if pmt.Channel == payment.ChannelTypeWidget {
		pmt.CodeURL = f.codeURL
	}
	return pmt, nil
}

func (f *fakePaymentService) FindPaymentByOrderSN(_ context.Context, _ string) (payment.Payment, error) {
	return payment.Payment{}, errors.New("未实现")
}

func (f *fakePaymentService) HandleWechatCallback(_ context.Context, _ *payments.Transaction) error {
	return nil
}

func (f *fakePaymentService) FindTimeoutPayments(_ context.Context, _, _ int, _ int64) ([]payment.Payment, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentService) SyncWechatInfo(_ context.Context, _ payment.Payment) error {
	return nil
}

func (f *fakePaymentService) CloseTimeoutPayment(_ context.Context, _ payment.Payment) error {
	return nil
}

type fakeCustomerService struct {
	identity customer.Identity
	calls    int
}

func (f *fakeCustomerService) Profile(_ context.Context, _ int64) (customer.Customer, error) {
	return customer.Customer{}, errors.New("未实现")
}

func (f *fakeCustomerService) ResolveGuest(_ context.Context, _, _ string) customer.Identity {
	f.calls++
	return f.identity
}

type fakeNotificationService struct {
	customerCalls int
	staffCalls    int
	customerErr   error
	staffErr      error
}

func (f *fakeNotificationService) SendCustomerConfirmation(_ context.Context, _ order.Order) error {
	f.customerCalls++
	return f.customerErr
}

func (f *fakeNotificationService) SendStaffNotification(_ context.Context, _ order.Order) error {
	f.staffCalls++
	return f.staffErr
}

type fakeStockProducer struct {
	events []product.StockDeductEvent
}

func (f *fakeStockProducer) Produce(_ context.Context, evt product.StockDeductEvent) error {
	f.events = append(f.events, evt)
	return nil
}

type testFixture struct {
	svc          Service
	draftCache   *fakeDraftCache
	orderSvc     *fakeOrderService
	paymentSvc   *fakePaymentService
	customerSvc  *fakeCustomerService
	notification *fakeNotificationService
	stock        *fakeStockProducer
}

func newTestFixture() *testFixture {
	f := &testFixture{
		draftCache: newFakeDraftCache(),
		orderSvc:   newFakeOrderService(),
		paymentSvc: &fakePaymentService{
			channels: []payment.Channel{
				{Type: payment.ChannelTypeCOD, Desc: "货到付款"},
				{Type: payment.ChannelTypeWidget, Desc: "微信支付"},
			},
			codeURL: "weixin://wxpay/bizpayurl?pr=test",
		},
		customerSvc:  &fakeCustomerService{identity: customer.Identity{ID: 1001, Email: "guest@example.com"}},
		notification: &fakeNotificationService{},
		stock:        &fakeStockProducer{},
	}
	f.svc = NewService(f.draftCache, f.orderSvc, f.paymentSvc, f.customerSvc,
		f.notification, f.stock, sequencenumber.NewGenerator(), Config{
			Currency: "CNY",
			ShippingMethods: []domain.ShippingMethod{
				{ID: "standard", Name: "标准快递", Cost: 500, Enabled: true},
				{ID: "express", Name: "加急快递", Cost: 1500, Enabled: true},
				{ID: "pickup", Name: "自提", Cost: 0, Enabled: false},
			},
		})
	return f
}

func testLines() []domain.CartLine {
	return []domain.CartLine{
		{ProductID: 1, VariantID: 11, Quantity: 2, UnitPrice: 3000, Name: "帆布包"},
		{ProductID: 2, VariantID: 21, Quantity: 1, UnitPrice: 5000, SalePrice: 4000, OnSale: true, Name: "马克杯"},
	}
}

func testContact() domain.Contact {
	return domain.Contact{
		Email: "guest@example.com",
		Name:  "张三",
		Line:  "人民路1号",
		City:  "上海",
	}
}

// 游客一路走到货到付款下单
func TestService_GuestCODCheckout(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	draft, err := f.svc.StartCheckout(ctx, 0, testLines())
	require.NoError(t, err)
	assert.Equal(t, domain.StepContact, draft.Step)

	draft, err = f.svc.SubmitContact(ctx, draft.Key, testContact())
	require.NoError(t, err)
	assert.Equal(t, domain.StepDelivery, draft.Step)

	// 未登录也未选游客, 认证门弹出, 不进支付步骤
	draft, gate, err := f.svc.SubmitDelivery(ctx, draft.Key, "standard")
	require.NoError(t, err)
	assert.True(t, gate)
	assert.Equal(t, domain.StepDelivery, draft.Step)

	draft, err = f.svc.ContinueAsGuest(ctx, draft.Key)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, draft.Step)

	pricing, err := f.svc.Preview(ctx, draft.Key)
	require.NoError(t, err)
	// 2*3000 + 折扣价4000 = 10000, 标准快递500
	assert.Equal(t, int64(10000), pricing.Subtotal)
	assert.Equal(t, int64(10500), pricing.Total)

	attempt, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeCOD)
	require.NoError(t, err)
	o := attempt.Order
	assert.Empty(t, attempt.CodeURL)
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus)
	assert.Equal(t, int64(10500), o.Total)
	// 游客身份解析到既有或新开账号
	assert.Equal(t, int64(1001), o.BuyerID)
	assert.Equal(t, 1, f.customerSvc.calls)

	// 收尾动作同步完成: 通知各一次, 库存扣减事件数量精确到行
	assert.Equal(t, 1, f.notification.customerCalls)
	assert.Equal(t, 1, f.notification.staffCalls)
	require.Len(t, f.stock.events, 1)
	evt := f.stock.events[0]
	assert.Equal(t, o.SN, evt.OrderSN)
	assert.Equal(t, []product.StockDeductItem{
		{VariantID: 11, Quantity: 2},
		{VariantID: 21, Quantity: 1},
	}, evt.Items)

	// 草稿用完即弃
	_, err = f.svc.GetDraft(ctx, draft.Key)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

// 认证门每次结算尝试最多弹一次
func TestService_AuthGateOnce(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	draft, err := f.svc.StartCheckout(ctx, 0, testLines())
	require.NoError(t, err)
	_, err = f.svc.SubmitContact(ctx, draft.Key, testContact())
	require.NoError(t, err)

	_, gate, err := f.svc.SubmitDelivery(ctx, draft.Key, "standard")
	require.NoError(t, err)
	assert.True(t, gate)

	_, err = f.svc.ContinueAsGuest(ctx, draft.Key)
	require.NoError(t, err)

	// 游客标记置位后改配送方式不再弹门, 停留在支付步骤
	draft, gate, err = f.svc.SubmitDelivery(ctx, draft.Key, "express")
	require.NoError(t, err)
	assert.False(t, gate)
	assert.Equal(t, domain.StepPayment, draft.Step)
	assert.Equal(t, "express", draft.ShippingMethod)
}

func TestService_AuthGateSkippedWhenLoggedIn(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	draft, err := f.svc.StartCheckout(ctx, 2024, testLines())
	require.NoError(t, err)
	_, err = f.svc.SubmitContact(ctx, draft.Key, testContact())
	require.NoError(t, err)

	draft, gate, err := f.svc.SubmitDelivery(ctx, draft.Key, "standard")
	require.NoError(t, err)
	assert.False(t, gate)
	assert.Equal(t, domain.StepPayment, draft.Step)

	attempt, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeCOD)
	require.NoError(t, err)
	assert.Equal(t, int64(2024), attempt.Order.BuyerID)
	// 已登录买家不走游客身份解析
	assert.Equal(t, 0, f.customerSvc.calls)
}

// 托管支付页: 先落订单再返回支付页地址
func TestService_WidgetPayment(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	draft := f.startPaidableDraft(t, 2024)

	attempt, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeWidget)
	require.NoError(t, err)
	assert.Equal(t, "weixin://wxpay/bizpayurl?pr=test", attempt.CodeURL)

	// 返回地址时订单已经存在, 待支付未支付
	o, err := f.orderSvc.FindOrderBySN(ctx, attempt.Order.SN)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, order.PaymentStatusUnpaid, o.PaymentStatus)

	// 支付页打开前不做任何收尾
	assert.Equal(t, 0, f.notification.customerCalls)
	assert.Empty(t, f.stock.events)

	cur, err := f.svc.GetDraft(ctx, draft.Key)
	require.NoError(t, err)
	assert.True(t, cur.Processing)
	assert.Equal(t, o.SN, cur.OrderSN)
}

// 取消是一等终态: 订单保留为遗留记录, 重新提交换新参考号
func TestService_WidgetCancelled(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	draft := f.startPaidableDraft(t, 2024)

	first, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeWidget)
	require.NoError(t, err)

	_, err = f.svc.ConfirmWidgetResult(ctx, draft.Key, domain.WidgetResult{
		Status: domain.WidgetStatusCancelled,
	})
	require.NoError(t, err)

	// 第一单留在待支付, 没有任何收尾动作
	o, err := f.orderSvc.FindOrderBySN(ctx, first.Order.SN)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, 0, f.notification.customerCalls)
	assert.Empty(t, f.stock.events)

	cur, err := f.svc.GetDraft(ctx, draft.Key)
	require.NoError(t, err)
	assert.False(t, cur.Processing)
	assert.Empty(t, cur.OrderSN)

	// 重新提交: 新参考号新订单
	second, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeWidget)
	require.NoError(t, err)
	assert.NotEqual(t, first.Order.SN, second.Order.SN)
	assert.Len(t, f.orderSvc.orders, 2)
}

// 前端确认拿到凭证后收尾
func TestService_WidgetConfirmed(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	// 买家邮件失败不影响店员通知和库存扣减
	f.notification.customerErr = errors.New("SMTP超时")
	ctx := context.Background()

	draft := f.startPaidableDraft(t, 2024)
	attempt, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeWidget)
	require.NoError(t, err)

	o, err := f.svc.ConfirmWidgetResult(ctx, draft.Key, domain.WidgetResult{
		Status: domain.WidgetStatusSuccess,
		Token:  "tok_123",
	})
	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusPaid, o.PaymentStatus)
	assert.Equal(t, order.StatusProcessing, o.Status)
	assert.Equal(t, "tok_123", o.GatewayTxnID)

	stored, err := f.orderSvc.FindOrderBySN(ctx, attempt.Order.SN)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentStatusPaid, stored.PaymentStatus)

	assert.Equal(t, 1, f.notification.customerCalls)
	assert.Equal(t, 1, f.notification.staffCalls)
	assert.Len(t, f.stock.events, 1)

	_, err = f.svc.GetDraft(ctx, draft.Key)
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

// webhook和前端确认会竞争收尾, 第二次到达不重复发通知扣库存
func TestService_FinalizeIdempotent(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	draft := f.startPaidableDraft(t, 2024)
	attempt, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeWidget)
	require.NoError(t, err)
	sn := attempt.Order.SN

	first, err := f.svc.Finalize(ctx, sn, "tok_123")
	require.NoError(t, err)
	second, err := f.svc.Finalize(ctx, sn, "tok_123")
	require.NoError(t, err)

	assert.Equal(t, first.PaymentStatus, second.PaymentStatus)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, 1, f.notification.customerCalls)
	assert.Equal(t, 1, f.notification.staffCalls)
	assert.Len(t, f.stock.events, 1)
}

// 渠道不可用时不留下任何订单
func TestService_ChannelNotAvailable(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	// 网关未配置时托管渠道不在列表里
	f.paymentSvc.channels = []payment.Channel{
		{Type: payment.ChannelTypeCOD, Desc: "货到付款"},
	}
	ctx := context.Background()

	draft := f.startPaidableDraft(t, 2024)
	_, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeWidget)
	assert.ErrorIs(t, err, ErrChannelNotAvailable)
	assert.Empty(t, f.orderSvc.orders)
	assert.Empty(t, f.paymentSvc.payments)
}

// 参考号撞唯一索引时换号重试
func TestService_DuplicateReferenceRetry(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	f.orderSvc.dupTimes = 2
	ctx := context.Background()

	draft := f.startPaidableDraft(t, 2024)
	attempt, err := f.svc.SubmitPayment(ctx, draft.Key, payment.ChannelTypeCOD)
	require.NoError(t, err)
	assert.NotEmpty(t, attempt.Order.SN)
	assert.Equal(t, 3, f.orderSvc.attempts)
}

func TestService_Validation(t *testing.T) {
	t.Parallel()
	f := newTestFixture()
	ctx := context.Background()

	_, err := f.svc.StartCheckout(ctx, 0, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.StartCheckout(ctx, 0, []domain.CartLine{{VariantID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, ErrValidation)

	draft, err := f.svc.StartCheckout(ctx, 0, testLines())
	require.NoError(t, err)

	// 本地校验拒绝, 不发起任何下游调用
	c := testContact()
	c.Email = ""
	_, err = f.svc.SubmitContact(ctx, draft.Key, c)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = f.svc.SubmitContact(ctx, draft.Key, testContact())
	require.NoError(t, err)
	_, _, err = f.svc.SubmitDelivery(ctx, draft.Key, "pickup")
	assert.ErrorIs(t, err, ErrValidation)
}

// startPaidableDraft 推进到支付步骤的已登录买家草稿
func (f *testFixture) startPaidableDraft(t *testing.T, buyerID int64) domain.Draft {
	t.Helper()
	ctx := context.Background()
	draft, err := f.svc.StartCheckout(ctx, buyerID, testLines())
	require.NoError(t, err)
	_, err = f.svc.SubmitContact(ctx, draft.Key, testContact())
	require.NoError(t, err)
	draft, gate, err := f.svc.SubmitDelivery(ctx, draft.Key, "standard")
	require.NoError(t, err)
	require.False(t, gate)
	return draft
}
