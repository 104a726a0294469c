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

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOffShelf Status = 1 // 下架
	StatusOnShelf  Status = 2 // 上架
)

type Product struct {
	ID       int64
	SN       string
	Name     string
	Desc     string
	Variants []Variant
	Status   Status
}

// Variant 商品规格, 比如同一件衣服的不同颜色尺码
type Variant struct {
	ID        int64
	ProductID int64
	SN        string
	Name      string

	// 单位为分
	Price     int64
	SalePrice int64
	OnSale    bool

	Stock  int64
	Image  string
	Status Status
}
