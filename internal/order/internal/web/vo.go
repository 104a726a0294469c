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

// RetrieveOrderStatusReq 获取订单状态, 前端在支付弹窗关闭后轮询该接口
type RetrieveOrderStatusReq struct {
	OrderSN string `json:"sn"`
}

type RetrieveOrderStatusResp struct {
	OrderStatus   uint8 `json:"status"`
	PaymentStatus uint8 `json:"paymentStatus"`
}

// ListOrdersReq 分页查询用户所有订单
type ListOrdersReq struct {
	Offset int `json:"offset,omitempty"`
	Limit  int `json:"limit,omitempty"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total,omitempty"`
	Orders []Order `json:"orders,omitempty"`
}

// RetrieveOrderDetailReq 获取订单详情
type RetrieveOrderDetailReq struct {
	OrderSN string `json:"sn"`
}

type RetrieveOrderDetailResp struct {
	Order Order `json:"order"`
}

type Order struct {
	SN             string      `json:"sn"`
	Subtotal       int64       `json:"subtotal"`
	Shipping       int64       `json:"shipping"`
	Tax            int64       `json:"tax"`
	Total          int64       `json:"total"`
	Currency       string      `json:"currency"`
	Status         uint8       `json:"status"`
	PaymentStatus  uint8       `json:"paymentStatus"`
	PaymentChannel int64       `json:"paymentChannel"`
	Address        Address     `json:"address"`
	Items          []OrderItem `json:"items"`
	Ctime          int64       `json:"ctime"`
	Utime          int64       `json:"utime"`
}

type Address struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Line     string `json:"line"`
	City     string `json:"city"`
	Region   string `json:"region,omitempty"`
	Shipping string `json:"shipping"`
}

type OrderItem struct {
	ProductID int64  `json:"productID"`
	VariantID int64  `json:"variantID,omitempty"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int64  `json:"quantity"`
}

// CancelOrderReq 取消订单
type CancelOrderReq struct {
	OrderSN string `json:"sn"`
}
