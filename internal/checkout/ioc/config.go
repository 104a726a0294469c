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

package ioc

import (
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/ecodeclub/emall/internal/checkout/internal/service"
	"github.com/gotomicro/ego/core/econf"
)

// 支持的支付渠道键, 配置里出现别的键直接在启动时报错
// 而不是运行期按字符串碰运气
var supportedPaymentChannels = map[string]bool{
	"widget": true,
	"cod":    true,
}

type ShippingMethodConfig struct {
	ID      string
	Name    string
	Cost    int64
	Enabled bool
}

// StorefrontConfig 店铺结算配置, 封闭结构, 加载即校验
type StorefrontConfig struct {
	Currency string
	// TaxBasisPoints 税率, 万分位, 0表示不收税
	TaxBasisPoints  int64
	ShippingMethods []ShippingMethodConfig
	PaymentChannels []string
}

func (c StorefrontConfig) Validate() error {
	if c.Currency == "" {
		return fmt.Errorf("币种未配置")
	}
	if c.TaxBasisPoints < 0 {
		return fmt.Errorf("税率非法: %d", c.TaxBasisPoints)
	}
	var enabled int
	for _, m := range c.ShippingMethods {
		if m.ID == "" {
			return fmt.Errorf("配送方式缺少ID")
		}
		if m.Cost < 0 {
			return fmt.Errorf("配送方式 %s 费用非法: %d", m.ID, m.Cost)
		}
		if m.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("没有启用任何配送方式")
	}
	for _, ch := range c.PaymentChannels {
		if !supportedPaymentChannels[ch] {
			return fmt.Errorf("未知的支付渠道键: %q", ch)
		}
	}
	if len(c.PaymentChannels) == 0 {
		return fmt.Errorf("没有启用任何支付渠道")
	}
	return nil
}

func (c StorefrontConfig) toServiceConfig() service.Config {
	var tax domain.TaxFunc
	if c.TaxBasisPoints > 0 {
		bp := c.TaxBasisPoints
		tax = func(subtotal int64) int64 {
			return subtotal * bp / 10000
		}
	}
	return service.Config{
		Currency: c.Currency,
		ShippingMethods: slice.Map(c.ShippingMethods, func(idx int, src ShippingMethodConfig) domain.ShippingMethod {
			return domain.ShippingMethod{
				ID:      src.ID,
				Name:    src.Name,
				Cost:    src.Cost,
				Enabled: src.Enabled,
			}
		}),
		Tax: tax,
	}
}

func InitConfig() service.Config {
	var cfg StorefrontConfig
	if err := econf.UnmarshalKey("storefront", &cfg); err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Errorf("店铺配置非法: %w", err))
	}
	return cfg.toServiceConfig()
}
