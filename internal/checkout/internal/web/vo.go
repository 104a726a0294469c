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

package web

// StartCheckoutReq 开始结算, 购物车由客户端快照传入
type StartCheckoutReq struct {
	Lines []CartLine `json:"lines"`
}

type CartLine struct {
	ProductID int64  `json:"productID"`
	VariantID int64  `json:"variantID,omitempty"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	SalePrice int64  `json:"salePrice,omitempty"`
	OnSale    bool   `json:"onSale,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
}

type DraftResp struct {
	Key  string `json:"key"`
	Step uint8  `json:"step"`
	// AuthGate 为true时前端要弹认证门: 登录或明确选择游客结算
	AuthGate bool    `json:"authGate,omitempty"`
	Guest    bool    `json:"guest,omitempty"`
	Pricing  Pricing `json:"pricing"`
}

type Pricing struct {
	Subtotal int64  `json:"subtotal"`
	Shipping int64  `json:"shipping"`
	Tax      int64  `json:"tax"`
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

// SubmitContactReq 联系与地址信息
type SubmitContactReq struct {
	Key    string `json:"key"`
	Email  string `json:"email"`
	Phone  string `json:"phone,omitempty"`
	Name   string `json:"name"`
	Line   string `json:"line"`
	City   string `json:"city"`
	Region string `json:"region,omitempty"`
}

// SubmitDeliveryReq 配送方式
type SubmitDeliveryReq struct {
	Key            string `json:"key"`
	ShippingMethod string `json:"shippingMethod"`
}

// DraftKeyReq 只带草稿Key的请求
type DraftKeyReq struct {
	Key string `json:"key"`
}

// SubmitPaymentReq 发起支付
type SubmitPaymentReq struct {
	Key     string `json:"key"`
	Channel int64  `json:"channel"`
}

type SubmitPaymentResp struct {
	OrderSN string `json:"orderSN"`
	Status  uint8  `json:"status"`
	// CodeURL 托管支付页地址, 仅托管渠道返回
	CodeURL string `json:"codeURL,omitempty"`
}

// ConfirmWidgetReq 支付组件弹窗终态回报
type ConfirmWidgetReq struct {
	Key string `json:"key"`
	// Cancelled 为true表示用户关闭了弹窗
	Cancelled bool `json:"cancelled,omitempty"`
	// Token 网关确认凭证, 成功时必填
	Token string `json:"token,omitempty"`
}

type ConfirmWidgetResp struct {
	OrderSN       string `json:"orderSN,omitempty"`
	Status        uint8  `json:"status,omitempty"`
	PaymentStatus uint8  `json:"paymentStatus,omitempty"`
	// Cancelled 回显取消, 前端留在支付步骤
	Cancelled bool `json:"cancelled,omitempty"`
}

type ShippingMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Cost int64  `json:"cost"`
}

type PaymentChannel struct {
	Type int64  `json:"type"`
	Desc string `json:"desc"`
}

// SettingsResp 结算页可选项
type SettingsResp struct {
	ShippingMethods []ShippingMethod `json:"shippingMethods"`
	PaymentChannels []PaymentChannel `json:"paymentChannels"`
	Currency        string           `json:"currency"`
}
