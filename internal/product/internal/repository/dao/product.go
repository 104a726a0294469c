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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

// ErrInsufficientStock 库存不足, 扣减被拒绝
var ErrInsufficientStock = errors.New("库存不足")

type ProductDAO interface {
	FindProductByID(ctx context.Context, id int64) (Product, error)
	FindProductBySN(ctx context.Context, sn string) (Product, error)
	FindVariantByID(ctx context.Context, id int64) (Variant, error)
	FindVariantsByProductID(ctx context.Context, productId int64) ([]Variant, error)
	CreateProduct(ctx context.Context, p Product) (int64, error)
	CreateVariant(ctx context.Context, v Variant) (int64, error)
	DecrStock(ctx context.Context, variantId int64, quantity int64) error
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindProductByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("id = ? AND status = ?", id, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindProductBySN(ctx context.Context, sn string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("sn = ? AND status = ?", sn, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariantByID(ctx context.Context, id int64) (Variant, error) {
	var res Variant
	err := d.db.WithContext(ctx).Where("id = ? AND status = ?", id, domain.StatusOnShelf.ToUint8()).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariantsByProductID(ctx context.Context, productId int64) ([]Variant, error) {
	var res []Variant
	err := d.db.WithContext(ctx).Where("product_id = ? AND status = ?", productId, domain.StatusOnShelf.ToUint8()).
		Order("ctime DESC").
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) CreateProduct(ctx context.Context, p Product) (int64, error) {
	now := time.Now()
	p.Utime, p.Ctime = now.UnixMilli(), now.UnixMilli()
	return p.Id, d.db.WithContext(ctx).Create(&p).Error
}

func (d *ProductGORMDAO) CreateVariant(ctx context.Context, v Variant) (int64, error) {
	now := time.Now()
	v.Utime, v.Ctime = now.UnixMilli(), now.UnixMilli()
	return v.Id, d.db.WithContext(ctx).Create(&v).Error
}

// DecrStock 原子扣减库存, 不做读改写
// 并发订单抢同一规格时靠数据库保证不丢更新
func (d *ProductGORMDAO) DecrStock(ctx context.Context, variantId int64, quantity int64) error {
	res := d.db.WithContext(ctx).Model(&Variant{}).
		Where("id = ? AND stock >= ?", variantId, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{}, &Variant{})
}

type Product struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	SN          string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_product_sn;comment:商品序列号"`
	Name        string `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description string `gorm:"not null;comment:商品描述"`
	Status      uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime       int64
	Utime       int64
}

type Variant struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:商品规格自增ID"`
	SN        string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_variant_sn;comment:规格序列号"`
	ProductID int64  `gorm:"column:product_id;not null;index:idx_product_id;comment:商品自增ID"`
	Name      string `gorm:"type:varchar(255);not null;comment:规格名称"`
	Price     int64  `gorm:"not null;comment:规格单价;单位为分, 999表示9.99元"`
	SalePrice int64  `gorm:"not null;default:0;comment:促销单价;单位为分"`
	OnSale    bool   `gorm:"not null;default:false;comment:是否促销中"`
	Stock     int64  `gorm:"not null;comment:库存数量"`
	Image     string `gorm:"type:varchar(512);not null;comment:商品缩略图,CDN绝对路径"`
	Status    uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=下架 2=上架"`
	Ctime     int64
	Utime     int64
}
