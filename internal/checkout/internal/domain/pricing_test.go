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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputePricing(t *testing.T) {
	methods := []ShippingMethod{
		{ID: "express", Name: "加急", Cost: 1500, Enabled: true},
		{ID: "standard", Name: "标准快递", Cost: 500, Enabled: true},
		{ID: "drone", Name: "无人机", Cost: 100, Enabled: false},
	}
	lines := []CartLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 3000},
		{ProductID: 2, Quantity: 1, UnitPrice: 5000, SalePrice: 4000, OnSale: true},
	}

	testCases := []struct {
		name     string
		lines    []CartLine
		selected string
		tax      TaxFunc
		want     Pricing
	}{
		{
			name:     "已选配送方式_折扣价生效",
			lines:    lines,
			selected: "express",
			want:     Pricing{Subtotal: 10000, Shipping: 1500, Total: 11500},
		},
		{
			name:  "未选配送方式_用启用方式里的最低价预估",
			lines: lines,
			want:  Pricing{Subtotal: 10000, Shipping: 500, Total: 10500},
		},
		{
			name:     "注入税费函数",
			lines:    lines,
			selected: "standard",
			tax: func(subtotal int64) int64 {
				return subtotal / 10
			},
			want: Pricing{Subtotal: 10000, Shipping: 500, Tax: 1000, Total: 11500},
		},
		{
			name: "空购物车",
			want: Pricing{Shipping: 500, Total: 500},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePricing(tc.lines, methods, tc.selected, tc.tax)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got.Subtotal+got.Shipping+got.Tax, got.Total)
		})
	}
}

func TestComputePricing_QuantityMonotone(t *testing.T) {
	methods := []ShippingMethod{{ID: "standard", Cost: 500, Enabled: true}}
	prev := int64(0)
	for q := int64(1); q <= 10; q++ {
		p := ComputePricing([]CartLine{{ProductID: 1, Quantity: q, UnitPrice: 1999}}, methods, "standard", nil)
		assert.GreaterOrEqual(t, p.Total, prev)
		prev = p.Total
	}
}
