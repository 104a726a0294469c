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

type Step uint8

const (
	StepContact  Step = 1
	StepDelivery Step = 2
	StepPayment  Step = 3
)

// CartLine 购物车行, 结算流程只读不改
type CartLine struct {
	ProductID int64
	// VariantID 为0表示无规格商品
	VariantID int64
	Quantity  int64
	// UnitPrice 加购时的快照价, 单位为分
	UnitPrice int64
	SalePrice int64
	OnSale    bool
	Name      string
	Image     string
}

// Price 本行成交单价
func (l CartLine) Price() int64 {
	if l.OnSale {
		return l.SalePrice
	}
	return l.UnitPrice
}

type Contact struct {
	Email  string
	Phone  string
	Name   string
	Line   string
	City   string
	Region string
}

// Draft 一次结算尝试的过程态
// 只存在于缓存里, 完成或放弃后即丢弃
type Draft struct {
	Key     string
	Step    Step
	BuyerID int64
	Contact Contact
	// ShippingMethod 已选配送方式ID
	ShippingMethod string
	PaymentChannel int64
	// Guest 一旦置位本次尝试不再弹认证门
	Guest bool
	// Processing 支付组件弹窗打开期间为true
	Processing bool
	// OrderSN 当前支付尝试对应的订单, 弹窗取消后重试会换新订单
	OrderSN string
	Lines   []CartLine
}
