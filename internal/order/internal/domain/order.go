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

package domain

type OrderStatus uint8

func (s OrderStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	// StatusPending 订单已创建, 等待支付
	// 支付组件弹窗被放弃后订单停留在该状态, 作为可追查的遗留记录
	StatusPending OrderStatus = 1
	// StatusProcessing 已确认, 等待履约
	StatusProcessing OrderStatus = 2
	StatusCancelled  OrderStatus = 3
	// StatusExpired 超时未支付, 由定时任务关闭
	StatusExpired OrderStatus = 4
)

type PaymentStatus uint8

func (s PaymentStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	PaymentStatusUnpaid PaymentStatus = 1
	// PaymentStatusPaid 结算流程里只会从Unpaid单向迁移到Paid
	PaymentStatusPaid PaymentStatus = 2
)

type Order struct {
	ID int64
	// SN 即支付参考号, 全局唯一, 也是网关侧的交易参考号
	SN string
	// BuyerID 为0表示匿名游客订单
	BuyerID int64

	Subtotal int64
	Shipping int64
	Tax      int64
	// Total == Subtotal + Shipping + Tax, 单位为分
	Total    int64
	Currency string

	Status         OrderStatus
	PaymentStatus  PaymentStatus
	PaymentChannel int64
	// GatewayTxnID 网关回传的确认凭证
	GatewayTxnID string
	PaidAt       int64

	// 收货信息快照, 创建订单时从结算草稿冻结, 之后不随客户资料变化
	Address Address

	Items    []OrderItem
	ClosedAt int64
	Ctime    int64
	Utime    int64
}

type Address struct {
	Name     string
	Email    string
	Phone    string
	Line     string
	City     string
	Region   string
	Shipping string
}

type OrderItem struct {
	OrderID   int64
	ProductID int64
	// VariantID 为0表示商品没有规格
	VariantID int64
	Name      string
	Image     string
	// UnitPrice 下单时的成交单价, 单位为分
	UnitPrice int64
	Quantity  int64
}
