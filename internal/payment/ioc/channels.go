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

	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/gotomicro/ego/core/econf"
)

// ChannelsConfig 店铺配置里启用的支付渠道键
type ChannelsConfig struct {
	PaymentChannels []string
}

func InitChannelsConfig() ChannelsConfig {
	var cfg ChannelsConfig
	err := econf.UnmarshalKey("storefront", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}

// InitPaymentChannels 按店铺配置决定对外暴露哪些支付渠道
// 渠道键是封闭集合, 配置里出现未知键启动直接失败
// widget 额外要求微信网关配置就绪, 否则即便配了也不暴露
func InitPaymentChannels(cfg ChannelsConfig, wechatCfg WechatConfig) []domain.PaymentChannel {
	channels := make([]domain.PaymentChannel, 0, len(cfg.PaymentChannels))
	for _, key := range cfg.PaymentChannels {
		switch key {
		case "cod":
			channels = append(channels, domain.PaymentChannel{Type: domain.ChannelTypeCOD, Desc: "货到付款"})
		case "widget":
			if wechatCfg.Enabled {
				channels = append(channels, domain.PaymentChannel{Type: domain.ChannelTypeWidget, Desc: "在线支付"})
			}
		default:
			panic(fmt.Errorf("未知的支付渠道键: %q", key))
		}
	}
	return channels
}
