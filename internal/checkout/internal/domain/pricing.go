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

// ShippingMethod 店铺配置的配送方式
type ShippingMethod struct {
	ID      string
	Name    string
	Cost    int64
	Enabled bool
}

// TaxFunc 税费计算由外部注入, 入参和结果都是分
type TaxFunc func(subtotal int64) int64

type Pricing struct {
	Subtotal int64
	Shipping int64
	Tax      int64
	Total    int64
}

// ComputePricing 纯函数, 每次选择变化都会重算
// 未选配送方式时用启用方式里的最低价做预估
func ComputePricing(lines []CartLine, methods []ShippingMethod, selectedID string, tax TaxFunc) Pricing {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Price() * l.Quantity
	}

	var shipping int64
	var selected, minSet bool
	var minCost int64
	for _, m := range methods {
		if !m.Enabled {
			continue
		}
		if m.ID == selectedID {
			shipping = m.Cost
			selected = true
			break
		}
		if !minSet || m.Cost < minCost {
			minCost, minSet = m.Cost, true
		}
	}
	if !selected {
		shipping = minCost
	}

	var taxAmount int64
	if tax != nil {
		taxAmount = tax(subtotal)
	}

	return Pricing{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      taxAmount,
		Total:    subtotal + shipping + taxAmount,
	}
}
