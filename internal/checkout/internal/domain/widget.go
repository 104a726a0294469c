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

type WidgetStatus uint8

const (
	WidgetStatusSuccess   WidgetStatus = 1
	WidgetStatusCancelled WidgetStatus = 2
)

// WidgetResult 支付组件弹窗的终态
// 成功带确认凭证, 取消是一等公民而不是错误
type WidgetResult struct {
	Status WidgetStatus
	// Token 网关侧确认凭证, 仅成功时有值
	Token string
}
