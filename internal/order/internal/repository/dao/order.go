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

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrDataNotFound 通用的数据没找到
	ErrDataNotFound = gorm.ErrRecordNotFound
	// ErrDuplicateReference 支付参考号撞了唯一索引
	// 调用方应该换一个参考号重试, 而不是报系统错误
	ErrDuplicateReference = errors.New("支付参考号重复")
)

type OrderDAO interface {
	CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error)
	UpdateOrder(ctx context.Context, order Order) error
	MarkPaidBySN(ctx context.Context, sn string, gatewayTxnID string, status uint8) error
	FindOrderBySN(ctx context.Context, sn string) (Order, error)
	FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error)
	FindOrderItemsByOrderID(ctx context.Context, oid int64) ([]OrderItem, error)
	List(ctx context.Context, offset, limit int, uid int64) ([]Order, error)
	Count(ctx context.Context, uid int64) (int64, error)
	CloseExpiredOrders(ctx context.Context, beforeCtime int64) (int64, error)
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &orderGORMDAO{db: db}
}

type orderGORMDAO struct {
	db *egorm.Component
}

// CreateOrder 订单主记录和订单项在同一个事务里落库
// 任何一步失败整体回滚, 不会留下半截订单
func (d *orderGORMDAO) CreateOrder(ctx context.Context, order Order, items []OrderItem) (int64, error) {
	now := time.Now().UnixMilli()
	order.Ctime, order.Utime = now, now
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = order.Id
			items[i].Ctime, items[i].Utime = now, now
		}
		return tx.Create(&items).Error
	})
	if me, ok := err.(*mysql.MySQLError); ok {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return 0, ErrDuplicateReference
		}
	}
	return order.Id, err
}

func (d *orderGORMDAO) UpdateOrder(ctx context.Context, order Order) error {
	order.Utime = time.Now().UnixMilli()
	return d.db.WithContext(ctx).Where("id = ?", order.Id).Updates(&order).Error
}

// MarkPaidBySN 幂等的支付确认
// 结算流程和网关webhook会竞争更新同一行, 两边写的都是同样的终值, 重复执行无害
func (d *orderGORMDAO) MarkPaidBySN(ctx context.Context, sn string, gatewayTxnID string, status uint8) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&Order{}).
		Where("sn = ?", sn).
		Updates(map[string]any{
			"payment_status": PaymentStatusPaid,
			"status":         status,
			"gateway_txn_id": gatewayTxnID,
			"paid_at":        now,
			"utime":          now,
		}).Error
}

func (d *orderGORMDAO) FindOrderBySN(ctx context.Context, sn string) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("sn = ?", sn).First(&res).Error
	return res, err
}

func (d *orderGORMDAO) FindOrderBySNAndBuyerID(ctx context.Context, sn string, buyerID int64) (Order, error) {
	var res Order
	err := d.db.WithContext(ctx).Where("sn = ? AND buyer_id = ?", sn, buyerID).First(&res).Error
	return res, err
}

func (d *orderGORMDAO) FindOrderItemsByOrderID(ctx context.Context, oid int64) ([]OrderItem, error) {
	var res []OrderItem
	err := d.db.WithContext(ctx).Where("order_id = ?", oid).Find(&res).Error
	return res, err
}

func (d *orderGORMDAO) List(ctx context.Context, offset, limit int, uid int64) ([]Order, error) {
	var res []Order
	err := d.db.WithContext(ctx).Where("buyer_id = ?", uid).
		Order("ctime DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *orderGORMDAO) Count(ctx context.Context, uid int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Order{}).Where("buyer_id = ?", uid).Count(&count).Error
	return count, err
}

// CloseExpiredOrders 把超时未支付的Pending订单批量置为Expired
func (d *orderGORMDAO) CloseExpiredOrders(ctx context.Context, beforeCtime int64) (int64, error) {
	now := time.Now().UnixMilli()
	res := d.db.WithContext(ctx).Model(&Order{}).
		Where("status = ? AND payment_status = ? AND ctime < ?", StatusPending, PaymentStatusUnpaid, beforeCtime).
		Updates(map[string]any{
			"status":    StatusExpired,
			"closed_at": now,
			"utime":     now,
		})
	return res.RowsAffected, res.Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderItem{})
}

const (
	StatusPending       uint8 = 1
	StatusExpired       uint8 = 4
	PaymentStatusUnpaid uint8 = 1
	PaymentStatusPaid   uint8 = 2
)

type Order struct {
	Id int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	SN string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:支付参考号"`
	// 为0表示匿名游客订单
	BuyerId int64 `gorm:"not null;index:idx_buyer_id;comment:买家ID"`

	Subtotal int64  `gorm:"not null;comment:商品小计;单位为分"`
	Shipping int64  `gorm:"not null;comment:运费;单位为分"`
	Tax      int64  `gorm:"not null;comment:税费;单位为分"`
	Total    int64  `gorm:"not null;comment:应付总额;单位为分, 999表示9.99元"`
	Currency string `gorm:"type:varchar(8);not null;comment:币种"`

	Status         uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:订单状态 1=待支付 2=处理中 3=已取消 4=已超时"`
	PaymentStatus  uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:支付状态 1=未支付 2=已支付"`
	PaymentChannel int64  `gorm:"type:tinyint unsigned;not null;comment:支付渠道 1=托管支付组件 2=货到付款"`
	GatewayTxnId   string `gorm:"type:varchar(255);not null;default:'';comment:网关确认凭证"`
	PaidAt         int64  `gorm:"comment:支付时间"`

	ReceiverName   string `gorm:"type:varchar(255);not null;comment:收货人"`
	ReceiverEmail  string `gorm:"type:varchar(255);not null;comment:收货人邮箱"`
	ReceiverPhone  string `gorm:"type:varchar(64);not null;default:'';comment:收货人电话"`
	AddressLine    string `gorm:"type:varchar(512);not null;comment:收货地址"`
	AddressCity    string `gorm:"type:varchar(255);not null;comment:城市"`
	AddressRegion  string `gorm:"type:varchar(255);not null;default:'';comment:省份/州"`
	ShippingMethod string `gorm:"type:varchar(64);not null;comment:配送方式"`

	ClosedAt int64 `gorm:"comment:订单关闭时间"`
	Ctime    int64
	Utime    int64
}

type OrderItem struct {
	Id        int64  `gorm:"primaryKey;autoIncrement;comment:订单项自增ID"`
	OrderId   int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId int64  `gorm:"not null;comment:商品自增ID"`
	VariantId int64  `gorm:"not null;default:0;index:idx_variant_id;comment:规格自增ID,0表示无规格"`
	Name      string `gorm:"type:varchar(255);not null;comment:商品名称快照"`
	Image     string `gorm:"type:varchar(512);not null;default:'';comment:商品缩略图快照"`
	UnitPrice int64  `gorm:"not null;comment:成交单价;单位为分, 999表示9.99元"`
	Quantity  int64  `gorm:"not null;comment:购买数量"`
	Ctime     int64
	Utime     int64
}
