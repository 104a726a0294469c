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

type Customer struct {
	ID    int64
	SN    string
	Email string
	Name  string
	// 游客下单时自动开通的账号
	Guest bool
	Ctime int64
	Utime int64
}

// Identity 结算流程里使用的买家身份
// ID为0表示彻底的匿名订单, 游客开户失败时降级使用
type Identity struct {
	ID    int64
	Email string
}

func (i Identity) Anonymous() bool {
	return i.ID == 0
}
