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
	"testing"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/payment/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestInitPaymentChannels(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		keys      []string
		wechat    WechatConfig
		wantTypes []int64
	}{
		{
			name:      "全部渠道且微信就绪",
			keys:      []string{"widget", "cod"},
			wechat:    WechatConfig{Enabled: true},
			wantTypes: []int64{domain.ChannelTypeWidget, domain.ChannelTypeCOD},
		},
		{
			name:      "只配货到付款时不暴露在线支付",
			keys:      []string{"cod"},
			wechat:    WechatConfig{Enabled: true},
			wantTypes: []int64{domain.ChannelTypeCOD},
		},
		{
			name:      "微信未就绪时在线支付不暴露",
			keys:      []string{"widget", "cod"},
			wechat:    WechatConfig{Enabled: false},
			wantTypes: []int64{domain.ChannelTypeCOD},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			channels := InitPaymentChannels(ChannelsConfig{PaymentChannels: tc.keys}, tc.wechat)
			types := slice.Map(channels, func(_ int, src domain.PaymentChannel) int64 {
				return src.Type
			})
			assert.Equal(t, tc.wantTypes, types)
		})
	}
}

func TestInitPaymentChannels_UnknownKey(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		InitPaymentChannels(ChannelsConfig{PaymentChannels: []string{"bank_transfer"}}, WechatConfig{})
	})
}
