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

const StockDeductEventName = "stock_deduct_events"

// StockDeductEvent 支付成功后由结算模块发出, 库存扣减是最终一致的
type StockDeductEvent struct {
	OrderSN string            `json:"orderSN"`
	Items   []StockDeductItem `json:"items"`
}

type StockDeductItem struct {
	VariantID int64 `json:"variantID"`
	Quantity  int64 `json:"quantity"`
}
