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

const (
	// ChannelTypeWidget 托管支付页, 跳转微信Native收银台
	ChannelTypeWidget int64 = iota + 1
	// ChannelTypeCOD 货到付款, 下单即确认, 无网关交互
	ChannelTypeCOD
)

type PaymentStatus uint8

func (s PaymentStatus) ToUint8() uint8 {
	return uint8(s)
}

const (
	PaymentStatusUnpaid      PaymentStatus = 1
	PaymentStatusPaidSuccess PaymentStatus = 2
	PaymentStatusPaidFailed  PaymentStatus = 3
	// PaymentStatusTimeoutClosed 超时后由同步任务关闭
	PaymentStatusTimeoutClosed PaymentStatus = 4
)

type Payment struct {
	ID int64
	// OrderSN 即支付参考号, 与订单一一对应
	OrderSN     string
	BuyerID     int64
	Channel     int64
	Amount      int64
	Currency    string
	Description string
	// GatewayTxnID 网关侧交易凭证, 回调或主动查询后回填
	GatewayTxnID string
	// CodeURL 托管支付页地址, 只在发起支付时填充, 不落库
	CodeURL string
	Status  PaymentStatus
	PaidAt  int64
	Ctime   int64
	Utime   int64
}

type PaymentChannel struct {
	Type int64
	Desc string
}
