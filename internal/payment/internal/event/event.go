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

const PaymentEventName = "payment_events"

// PaymentEvent 网关回调或主动同步得到终态后发出
// 结算模块消费该事件补录订单状态并触发收尾动作
type PaymentEvent struct {
	OrderSN      string `json:"orderSN"`
	GatewayTxnID string `json:"gatewayTxnID"`
	Status       uint8  `json:"status"`
}

const (
	EventStatusPaidSuccess uint8 = 2
	EventStatusPaidFailed  uint8 = 3
)
